package models

// User is the identity record returned by the rating service.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
	Role    Role   `json:"role"`
}
