package dto

import (
	"time"

	"github.com/spec-kit/volunteer-service/internal/domain"
)

// CreateEventRequest payload.
type CreateEventRequest struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Location      string             `json:"location"`
	StartDate     time.Time          `json:"start_date"`
	EndDate       time.Time          `json:"end_date"`
	Status        domain.EventStatus `json:"status"`
	MaxVolunteers *int32             `json:"max_volunteers"`
	Skills        []string           `json:"skills"`
}

// UpdateEventRequest carries optional changes.
// Omitted fields stay unchanged; explicit zero values are applied.
type UpdateEventRequest struct {
	Title         *string             `json:"title"`
	Description   *string             `json:"description"`
	Location      *string             `json:"location"`
	StartDate     *time.Time          `json:"start_date"`
	EndDate       *time.Time          `json:"end_date"`
	Status        *domain.EventStatus `json:"status"`
	MaxVolunteers *int32              `json:"max_volunteers"`
	Skills        *[]string           `json:"skills"`
}

// EventResponse is the list/summary view of an event.
type EventResponse struct {
	ID                   string             `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	Location             string             `json:"location"`
	StartDate            time.Time          `json:"start_date"`
	EndDate              time.Time          `json:"end_date"`
	Status               domain.EventStatus `json:"status"`
	MaxVolunteers        *int32             `json:"max_volunteers"`
	Skills               []string           `json:"skills"`
	RegisteredVolunteers []string           `json:"registered_volunteers"`
	CreatedBy            string             `json:"created_by"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// VolunteerSummaryResponse is the event-detail view of a registered volunteer.
type VolunteerSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventDetailResponse adds volunteer summaries to the event view.
type EventDetailResponse struct {
	EventResponse
	Volunteers []VolunteerSummaryResponse `json:"volunteers"`
}

// NewEventResponse maps a domain event to its response shape.
func NewEventResponse(event *domain.Event) EventResponse {
	skills := event.Skills
	if skills == nil {
		skills = []string{}
	}
	volunteers := event.RegisteredVolunteers
	if volunteers == nil {
		volunteers = []string{}
	}
	return EventResponse{
		ID:                   event.ID,
		Title:                event.Title,
		Description:          event.Description,
		Location:             event.Location,
		StartDate:            event.StartDate,
		EndDate:              event.EndDate,
		Status:               event.Status,
		MaxVolunteers:        event.MaxVolunteers,
		Skills:               skills,
		RegisteredVolunteers: volunteers,
		CreatedBy:            event.CreatedBy,
		CreatedAt:            event.CreatedAt,
		UpdatedAt:            event.UpdatedAt,
	}
}
