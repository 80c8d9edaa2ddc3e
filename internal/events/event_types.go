package events

import (
	"time"

	"github.com/spec-kit/volunteer-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered        EventType = "user_registered"
	EventUserStatusChanged     EventType = "user_status_changed"
	EventEventCreated          EventType = "event_created"
	EventEventUpdated          EventType = "event_updated"
	EventEventDeleted          EventType = "event_deleted"
	EventVolunteerRegistered   EventType = "volunteer_registered"
	EventVolunteerUnregistered EventType = "volunteer_unregistered"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// UserStatusChangedPayload payload.
type UserStatusChangedPayload struct {
	UserID    string            `json:"user_id"`
	OldStatus domain.UserStatus `json:"old_status"`
	NewStatus domain.UserStatus `json:"new_status"`
}

// EventCreatedPayload payload.
type EventCreatedPayload struct {
	EventID   string    `json:"event_id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
}

// EventStatusChangedPayload payload.
type EventStatusChangedPayload struct {
	EventID   string             `json:"event_id"`
	OldStatus domain.EventStatus `json:"old_status"`
	NewStatus domain.EventStatus `json:"new_status"`
}

// RegistrationPayload payload for register/unregister events.
type RegistrationPayload struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}
