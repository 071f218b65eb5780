package model

import "time"

// User represents a user record in the database.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
}

// UserUpdate carries the fields a user update may change.
type UserUpdate struct {
	Name         string
	PasswordHash string
}

// AuthClaims is the identity embedded in an issued token.
type AuthClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// CreateUserRequest represents a user creation request.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Admin    bool   `json:"admin"`
}

// LoginRequest represents an authentication request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest represents a user update request. Only name and password can change.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AuthResponse represents a successful authentication response.
type AuthResponse struct {
	Error bool   `json:"error"`
	Token string `json:"token"`
}

// UserResponse represents user data safe for API responses (no password hash).
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// ToResponse strips the user down to its public fields.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Admin: u.Admin,
	}
}

// Claims derives the token claims for the user.
func (u User) Claims() AuthClaims {
	return AuthClaims{
		Name:  u.Name,
		Email: u.Email,
		Admin: u.Admin,
	}
}
