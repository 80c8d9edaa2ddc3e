package domain

import "time"

// EventStatus enumerates display states for events.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "UPCOMING"
	EventStatusOngoing   EventStatus = "ONGOING"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// ValidEventStatus reports whether the value is a known status.
func ValidEventStatus(status EventStatus) bool {
	switch status {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event is the aggregate for volunteer events.
// MaxVolunteers is nil when the event has no capacity bound.
// RegisteredVolunteers is derived from the registrations relation and holds user ids.
type Event struct {
	ID                   string
	Title                string
	Description          string
	Location             string
	StartDate            time.Time
	EndDate              time.Time
	Status               EventStatus
	MaxVolunteers        *int32
	Skills               []string
	RegisteredVolunteers []string
	CreatedBy            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AtCapacity reports whether the event cannot accept another volunteer.
func (e *Event) AtCapacity() bool {
	return e.MaxVolunteers != nil && int32(len(e.RegisteredVolunteers)) >= *e.MaxVolunteers
}

// HasVolunteer reports whether the user id is in the registered set.
func (e *Event) HasVolunteer(userID string) bool {
	for _, id := range e.RegisteredVolunteers {
		if id == userID {
			return true
		}
	}
	return false
}
