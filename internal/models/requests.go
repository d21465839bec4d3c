package models

// LoginRequest is the credentials form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the self-service signup form. Registration always
// creates a normal user; the role is not caller-controlled.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required,max=400"`
	Password string `json:"password" validate:"required,password"`
}

// AddUserRequest is the admin form for creating an account of any role.
// Field constraints are enforced locally before any request is issued.
type AddUserRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address" validate:"max=400"`
	Role     Role   `json:"role" validate:"required,oneof=admin store_owner normal"`
}

// AddStoreRequest creates the store linked to a newly created store owner.
type AddStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID int64  `json:"ownerId"`
}

// UpdatePasswordRequest changes the logged-in user's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password,nefield=CurrentPassword"`
}

// RateRequest is the rating submission body for both the create and the
// update path.
type RateRequest struct {
	StoreID int64 `json:"storeId"`
	Rating  int   `json:"rating" validate:"min=1,max=5"`
}
