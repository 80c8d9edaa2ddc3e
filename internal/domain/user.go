package domain

import "time"

// UserRole enumerates authorization roles.
type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleVolunteer UserRole = "VOLUNTEER"
)

// UserStatus represents the approval lifecycle of an account.
type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusApproved UserStatus = "APPROVED"
	UserStatusRejected UserStatus = "REJECTED"
)

// ValidUserRole reports whether the value is a known role.
func ValidUserRole(role UserRole) bool {
	switch role {
	case UserRoleAdmin, UserRoleVolunteer:
		return true
	}
	return false
}

// ValidUserStatus reports whether the value is a known status.
func ValidUserStatus(status UserStatus) bool {
	switch status {
	case UserStatusPending, UserStatusApproved, UserStatusRejected:
		return true
	}
	return false
}

// User is the aggregate for volunteers and administrators.
// RegisteredEvents is derived from the registrations relation and holds event ids.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Role             UserRole
	Status           UserStatus
	PhoneNumber      string
	BloodGroup       string
	Location         string
	Skills           []string
	RegisteredEvents []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsRegisteredFor reports whether the event id is in the user's registered set.
func (u *User) IsRegisteredFor(eventID string) bool {
	for _, id := range u.RegisteredEvents {
		if id == eventID {
			return true
		}
	}
	return false
}
