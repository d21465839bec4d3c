package upstream

import (
	"context"
	"fmt"
	"sync"

	"ratehub/internal/models"

	"github.com/google/uuid"
)

// Fake is an in-memory implementation of Client with the server's
// semantics. It backs the integration tests and the offline dev mode, so
// the rest of the process exercises the real control flow without a
// backend.
type Fake struct {
	mu     sync.RWMutex
	tokens TokenSource

	nextID    int64
	users     map[int64]models.User
	passwords map[int64]string
	stores    map[int64]models.Store
	owners    map[int64]int64         // storeID -> owning userID
	ratings   map[int64]map[int64]int // storeID -> userID -> value
	issued    map[string]int64        // token -> userID

	// AddStoreErr, when set, fails the next AddStore call. Lets tests
	// force the partial-failure path of the add-user workflow.
	AddStoreErr error
}

// NewFake creates an empty fake backend. tokens resolves the caller the
// same way the real client attaches its bearer token.
func NewFake(tokens TokenSource) *Fake {
	return &Fake{
		tokens:    tokens,
		users:     make(map[int64]models.User),
		passwords: make(map[int64]string),
		stores:    make(map[int64]models.Store),
		owners:    make(map[int64]int64),
		ratings:   make(map[int64]map[int64]int),
		issued:    make(map[string]int64),
	}
}

// SeedUser adds a user account, assigning an ID when none is set.
func (f *Fake) SeedUser(user models.User, password string) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	} else if user.ID > f.nextID {
		f.nextID = user.ID
	}
	f.users[user.ID] = user
	f.passwords[user.ID] = password
	return user
}

// SeedStore adds a store, optionally owned by ownerID (0 for none).
func (f *Fake) SeedStore(store models.Store, ownerID int64) models.Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	if store.ID == 0 {
		f.nextID++
		store.ID = f.nextID
	} else if store.ID > f.nextID {
		f.nextID = store.ID
	}
	f.stores[store.ID] = store
	if ownerID != 0 {
		f.owners[store.ID] = ownerID
	}
	return store
}

// SeedRating records an existing rating for a (user, store) pair.
func (f *Fake) SeedRating(userID, storeID int64, value int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putRating(userID, storeID, value)
}

func (f *Fake) putRating(userID, storeID int64, value int) {
	byUser, ok := f.ratings[storeID]
	if !ok {
		byUser = make(map[int64]int)
		f.ratings[storeID] = byUser
	}
	byUser[userID] = value
}

// Login matches credentials against seeded users and issues a fresh token.
func (f *Fake) Login(ctx context.Context, req models.LoginRequest) (models.User, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Email == req.Email && f.passwords[id] == req.Password {
			token := "fake-" + uuid.New().String()
			f.issued[token] = id
			return u, token, nil
		}
	}
	return models.User{}, "", fmt.Errorf("login failed: %w", ErrUnauthorized)
}

// Register creates a normal user account.
func (f *Fake) Register(ctx context.Context, req models.RegisterRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == req.Email {
			return fmt.Errorf("email %s already registered: %w", req.Email, ErrUpstream)
		}
	}
	f.nextID++
	f.users[f.nextID] = models.User{
		ID:      f.nextID,
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Role:    models.RoleNormal,
	}
	f.passwords[f.nextID] = req.Password
	return nil
}

// UpdatePassword verifies the current password and replaces it.
func (f *Fake) UpdatePassword(ctx context.Context, role models.Role, req models.UpdatePasswordRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, err := f.caller()
	if err != nil {
		return err
	}
	if f.passwords[user.ID] != req.CurrentPassword {
		return fmt.Errorf("current password does not match: %w", ErrUpstream)
	}
	f.passwords[user.ID] = req.NewPassword
	return nil
}

// ListRatedStores returns every store with its average and the caller's
// own rating.
func (f *Fake) ListRatedStores(ctx context.Context) ([]models.RatedStore, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	user, err := f.caller()
	if err != nil {
		return nil, err
	}

	stores := make([]models.RatedStore, 0, len(f.stores))
	for id, s := range f.stores {
		rated := models.RatedStore{
			ID:            id,
			Name:          s.Name,
			Address:       s.Address,
			AverageRating: f.average(id),
		}
		if v, ok := f.ratings[id][user.ID]; ok {
			value := v
			rated.YourRating = &value
		}
		stores = append(stores, rated)
	}
	return stores, nil
}

// CreateRating records a first rating; rating the same store twice via the
// create path is rejected the way the server rejects it.
func (f *Fake) CreateRating(ctx context.Context, req models.RateRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, err := f.caller()
	if err != nil {
		return err
	}
	if _, ok := f.stores[req.StoreID]; !ok {
		return fmt.Errorf("store %d: %w", req.StoreID, ErrNotFound)
	}
	if _, ok := f.ratings[req.StoreID][user.ID]; ok {
		return fmt.Errorf("rating already exists for store %d: %w", req.StoreID, ErrUpstream)
	}
	f.putRating(user.ID, req.StoreID, req.Rating)
	return nil
}

// UpdateRating overwrites an existing rating; updating a pair that was
// never rated is rejected.
func (f *Fake) UpdateRating(ctx context.Context, req models.RateRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, err := f.caller()
	if err != nil {
		return err
	}
	if _, ok := f.ratings[req.StoreID][user.ID]; !ok {
		return fmt.Errorf("no rating to update for store %d: %w", req.StoreID, ErrNotFound)
	}
	f.putRating(user.ID, req.StoreID, req.Rating)
	return nil
}

// AdminDashboard returns the platform counts.
func (f *Fake) AdminDashboard(ctx context.Context) (models.DashboardStats, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.requireAdmin(); err != nil {
		return models.DashboardStats{}, err
	}
	total := 0
	for _, byUser := range f.ratings {
		total += len(byUser)
	}
	return models.DashboardStats{
		Users:   len(f.users),
		Stores:  len(f.stores),
		Ratings: total,
	}, nil
}

// ListUsers returns every account.
func (f *Fake) ListUsers(ctx context.Context) ([]models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.requireAdmin(); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

// ListStores returns every store with its computed average.
func (f *Fake) ListStores(ctx context.Context) ([]models.Store, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.requireAdmin(); err != nil {
		return nil, err
	}
	stores := make([]models.Store, 0, len(f.stores))
	for id, s := range f.stores {
		s.AverageRating = f.average(id)
		stores = append(stores, s)
	}
	return stores, nil
}

// AddUser creates an account of the requested role.
func (f *Fake) AddUser(ctx context.Context, req models.AddUserRequest) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.requireAdmin(); err != nil {
		return models.User{}, err
	}
	for _, u := range f.users {
		if u.Email == req.Email {
			return models.User{}, fmt.Errorf("email %s already registered: %w", req.Email, ErrUpstream)
		}
	}
	f.nextID++
	user := models.User{
		ID:      f.nextID,
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Role:    req.Role,
	}
	f.users[user.ID] = user
	f.passwords[user.ID] = req.Password
	return user, nil
}

// AddStore creates a store owned by an existing store owner.
func (f *Fake) AddStore(ctx context.Context, req models.AddStoreRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.requireAdmin(); err != nil {
		return err
	}
	if f.AddStoreErr != nil {
		err := f.AddStoreErr
		f.AddStoreErr = nil
		return err
	}
	owner, ok := f.users[req.OwnerID]
	if !ok || owner.Role != models.RoleStoreOwner {
		return fmt.Errorf("owner %d is not a store owner: %w", req.OwnerID, ErrUpstream)
	}
	f.nextID++
	f.stores[f.nextID] = models.Store{
		ID:      f.nextID,
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	}
	f.owners[f.nextID] = req.OwnerID
	return nil
}

// OwnerDashboard returns the caller's own store summary.
func (f *Fake) OwnerDashboard(ctx context.Context) (models.OwnerDashboard, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	user, err := f.caller()
	if err != nil {
		return models.OwnerDashboard{}, err
	}
	if user.Role != models.RoleStoreOwner {
		return models.OwnerDashboard{}, fmt.Errorf("not a store owner: %w", ErrForbidden)
	}

	for storeID, ownerID := range f.owners {
		if ownerID != user.ID {
			continue
		}
		dash := models.OwnerDashboard{
			AverageRating: f.average(storeID),
			Ratings:       []models.OwnerRating{},
		}
		for raterID, value := range f.ratings[storeID] {
			rater := f.users[raterID]
			dash.Ratings = append(dash.Ratings, models.OwnerRating{
				User:   models.RatingUser{Name: rater.Name, Email: rater.Email},
				Rating: value,
			})
		}
		return dash, nil
	}
	return models.OwnerDashboard{}, fmt.Errorf("no store for owner %d: %w", user.ID, ErrNotFound)
}

// caller resolves the user behind the current bearer token.
func (f *Fake) caller() (models.User, error) {
	tok := f.tokens.Token()
	if tok == "" {
		return models.User{}, fmt.Errorf("no token presented: %w", ErrUnauthorized)
	}
	id, ok := f.issued[tok]
	if !ok {
		return models.User{}, fmt.Errorf("unknown token: %w", ErrUnauthorized)
	}
	return f.users[id], nil
}

func (f *Fake) requireAdmin() error {
	user, err := f.caller()
	if err != nil {
		return err
	}
	if user.Role != models.RoleAdmin {
		return fmt.Errorf("admin endpoint called as %s: %w", user.Role, ErrForbidden)
	}
	return nil
}

func (f *Fake) average(storeID int64) float64 {
	byUser := f.ratings[storeID]
	if len(byUser) == 0 {
		return 0
	}
	sum := 0
	for _, v := range byUser {
		sum += v
	}
	return float64(sum) / float64(len(byUser))
}
