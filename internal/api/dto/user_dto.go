package dto

import (
	"time"

	"github.com/spec-kit/volunteer-service/internal/domain"
)

// UserResponse is the full account view. The password hash is never part of
// any response shape.
type UserResponse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Role             domain.UserRole   `json:"role"`
	Status           domain.UserStatus `json:"status"`
	PhoneNumber      string            `json:"phone_number,omitempty"`
	BloodGroup       string            `json:"blood_group,omitempty"`
	Location         string            `json:"location,omitempty"`
	Skills           []string          `json:"skills"`
	RegisteredEvents []string          `json:"registered_events"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// VolunteerDirectoryEntry is the reduced view exposed to all members.
type VolunteerDirectoryEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BloodGroup string `json:"blood_group,omitempty"`
	Location   string `json:"location,omitempty"`
}

// UpdateUserRequest carries optional admin-set changes.
// Omitted fields stay unchanged; explicit zero values are applied.
type UpdateUserRequest struct {
	Name        *string            `json:"name"`
	Email       *string            `json:"email"`
	Role        *domain.UserRole   `json:"role"`
	Status      *domain.UserStatus `json:"status"`
	PhoneNumber *string            `json:"phone_number"`
	BloodGroup  *string            `json:"blood_group"`
	Location    *string            `json:"location"`
	Skills      *[]string          `json:"skills"`
}

// UpdateUserStatusRequest payload for approval decisions.
type UpdateUserStatusRequest struct {
	Status domain.UserStatus `json:"status"`
}

// NewUserResponse maps a domain user to its response shape.
func NewUserResponse(user *domain.User) UserResponse {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	registered := user.RegisteredEvents
	if registered == nil {
		registered = []string{}
	}
	return UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		Status:           user.Status,
		PhoneNumber:      user.PhoneNumber,
		BloodGroup:       user.BloodGroup,
		Location:         user.Location,
		Skills:           skills,
		RegisteredEvents: registered,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}
