package dto

import "time"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	PhoneNumber string   `json:"phone_number"`
	BloodGroup  string   `json:"blood_group"`
	Location    string   `json:"location"`
	Skills      []string `json:"skills"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries optional self-service profile changes.
// Omitted fields stay unchanged; explicit zero values are applied.
type UpdateProfileRequest struct {
	Name        *string   `json:"name"`
	Email       *string   `json:"email"`
	Password    *string   `json:"password"`
	PhoneNumber *string   `json:"phone_number"`
	BloodGroup  *string   `json:"blood_group"`
	Location    *string   `json:"location"`
	Skills      *[]string `json:"skills"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
