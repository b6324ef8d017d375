package models

import "time"

// Role is the access level attached to a User and carried in their token.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a registered account. PasswordHash is the salted verifier, never
// the plaintext password.
type User struct {
	ID             int64     `json:"id" db:"id"`
	IdentityID     string    `json:"identityId" db:"identity_id"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Role           Role      `json:"role" db:"role"`
	FirstName      string    `json:"firstName" db:"first_name"`
	LastName       string    `json:"lastName" db:"last_name"`
	Phone          string    `json:"phone" db:"phone"`
	AddressLine    string    `json:"addressLine" db:"address_line"`
	City           string    `json:"city" db:"city"`
	State          string    `json:"state" db:"state"`
	Zip            string    `json:"zip" db:"zip"`
	ProfileImgURL  string    `json:"profileImageUrl,omitempty" db:"profile_image_url"`
	IsActive       bool      `json:"isActive" db:"is_active"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// RegisterRequest is the wire payload for POST /api/users.
type RegisterRequest struct {
	IdentityID string `json:"identityId"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	AddressLine string `json:"addressLine"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
}

// UpdateUserRequest is the wire payload for PATCH /api/users/:id. Pointer
// fields are optional partial updates.
type UpdateUserRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Phone       *string `json:"phone"`
	AddressLine *string `json:"addressLine"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Zip         *string `json:"zip"`
}

// LoginRequest is the wire payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user"`
}
