package session

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// sessionRecord is the single durable row the session lives in, keyed by
// the fixed namespace.
type sessionRecord struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Data      []byte
	UpdatedAt time.Time
}

func (sessionRecord) TableName() string {
	return "client_sessions"
}

// GormPersistence stores the session in a database row. With a non-nil
// sealer the serialized session is sealed before it touches the row, so
// the credential token is never at rest in the clear.
type GormPersistence struct {
	db     *gorm.DB
	sealer *Sealer
}

// NewGormPersistence migrates the session table and returns the
// persistence. sealer may be nil to store the session unsealed.
func NewGormPersistence(db *gorm.DB, sealer *Sealer) (*GormPersistence, error) {
	if err := db.AutoMigrate(&sessionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session table: %w", err)
	}
	return &GormPersistence{db: db, sealer: sealer}, nil
}

// Load reads the persisted session; a missing row is the empty session.
func (g *GormPersistence) Load() (Session, error) {
	var rec sessionRecord
	if err := g.db.First(&rec, "key = ?", Namespace).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("failed to read session row: %w", err)
	}

	data := rec.Data
	if g.sealer != nil {
		opened, err := g.sealer.Open(data)
		if err != nil {
			return Session{}, fmt.Errorf("failed to unseal session: %w", err)
		}
		data = opened
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return sess, nil
}

// Save upserts the session row.
func (g *GormPersistence) Save(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if g.sealer != nil {
		if data, err = g.sealer.Seal(data); err != nil {
			return fmt.Errorf("failed to seal session: %w", err)
		}
	}

	rec := sessionRecord{Key: Namespace, Data: data}
	if err := g.db.Save(&rec).Error; err != nil {
		return fmt.Errorf("failed to write session row: %w", err)
	}
	return nil
}
