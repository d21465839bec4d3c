package session

import "sync"

// Namespace is the fixed key the session is persisted under.
const Namespace = "ratehub/session"

// Persistence is the durable storage boundary of the session store. Load
// returns the empty session when nothing is persisted.
type Persistence interface {
	Load() (Session, error)
	Save(Session) error
}

// MemoryPersistence keeps the session in memory only. It backs tests and
// SESSION_DRIVER=memory; state is lost on process exit.
type MemoryPersistence struct {
	mu   sync.Mutex
	sess Session
}

// NewMemoryPersistence creates an empty in-memory persistence.
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

// Load returns the last saved session.
func (m *MemoryPersistence) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess, nil
}

// Save stores the session.
func (m *MemoryPersistence) Save(sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = sess
	return nil
}
