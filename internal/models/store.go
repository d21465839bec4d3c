package models

// Store is a store record as the admin list endpoint returns it.
type Store struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"averageRating"`
}

// RatedStore is a store as seen by a normal user browsing the catalog.
// YourRating is nil until the user has rated the store.
type RatedStore struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"averageRating"`
	YourRating    *int    `json:"yourRating"`
}

// HasRated reports whether the current user already rated this store.
func (s RatedStore) HasRated() bool {
	return s.YourRating != nil
}

// DashboardStats are the platform-wide counts on the admin dashboard.
type DashboardStats struct {
	Users   int `json:"users"`
	Stores  int `json:"stores"`
	Ratings int `json:"ratings"`
}

// OwnerRating is one user's rating of the owner's store.
type OwnerRating struct {
	User   RatingUser `json:"user"`
	Rating int        `json:"rating"`
}

// RatingUser identifies the author of a rating on the owner dashboard.
type RatingUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OwnerDashboard is the store owner's view of their own store.
type OwnerDashboard struct {
	AverageRating float64       `json:"averageRating"`
	Ratings       []OwnerRating `json:"ratings"`
}
