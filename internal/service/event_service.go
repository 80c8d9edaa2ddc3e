package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/volunteer-service/internal/domain"
	"github.com/spec-kit/volunteer-service/internal/events"
	"github.com/spec-kit/volunteer-service/internal/repository"
	apperrors "github.com/spec-kit/volunteer-service/pkg/util"
)

const (
	eventListCacheKey = "events:all"
	eventListCacheTTL = 30 * time.Second
)

// ListCache is the subset of the Redis wrapper the event service relies on.
// A nil cache disables caching entirely.
type ListCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// EventService coordinates event CRUD.
type EventService struct {
	evts       repository.EventRepository
	users      repository.UserRepository
	cache      ListCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// EventDependencies bundles requirements for the event service.
type EventDependencies struct {
	EventRepo  repository.EventRepository
	UserRepo   repository.UserRepository
	Cache      ListCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		evts:       deps.EventRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// EventCreateInput describes event creation payload.
type EventCreateInput struct {
	Title         string
	Description   string
	Location      string
	StartDate     time.Time
	EndDate       time.Time
	Status        domain.EventStatus
	MaxVolunteers *int32
	Skills        []string
}

// EventUpdateInput carries optional changes. Nil means unchanged, so zero
// values and empty slices remain expressible.
type EventUpdateInput struct {
	Title         *string
	Description   *string
	Location      *string
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *domain.EventStatus
	MaxVolunteers *int32
	Skills        *[]string
}

// VolunteerSummary is the event-detail view of a registered volunteer.
type VolunteerSummary struct {
	ID    string
	Name  string
	Email string
}

// CreateEvent creates an event owned by the acting admin.
func (s *EventService) CreateEvent(ctx context.Context, createdBy string, input EventCreateInput) (*domain.Event, error) {
	status := input.Status
	if status == "" {
		status = domain.EventStatusUpcoming
	}
	if !domain.ValidEventStatus(status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}

	event := &domain.Event{
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Status:        status,
		MaxVolunteers: input.MaxVolunteers,
		Skills:        input.Skills,
		CreatedBy:     createdBy,
	}
	if event.Skills == nil {
		event.Skills = []string{}
	}
	if err := s.evts.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventEventCreated,
		Actor: events.Actor{UserID: createdBy, Role: domain.UserRoleAdmin},
		Payload: events.EventCreatedPayload{
			EventID:   event.ID,
			Title:     event.Title,
			StartDate: event.StartDate,
		},
	})
	return event, nil
}

// ListEvents returns all events ordered by ascending start date, served from
// cache when a fresh copy exists.
func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	if s.cache != nil {
		if raw, err := s.cache.GetBytes(ctx, eventListCacheKey); err == nil {
			var cached []domain.Event
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	list, err := s.evts.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(list); err == nil {
			if err := s.cache.SetBytes(ctx, eventListCacheKey, raw, eventListCacheTTL); err != nil {
				s.logger.Debug("event list cache write failed", zap.Error(err))
			}
		}
	}
	return list, nil
}

// GetEvent fetches a single event.
func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.evts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", nil)
		}
		return nil, err
	}
	return event, nil
}

// GetEventDetail fetches an event plus summaries of its registered volunteers.
func (s *EventService) GetEventDetail(ctx context.Context, id string) (*domain.Event, []VolunteerSummary, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	volunteers := make([]VolunteerSummary, 0, len(event.RegisteredVolunteers))
	for _, userID := range event.RegisteredVolunteers {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, nil, err
		}
		volunteers = append(volunteers, VolunteerSummary{ID: user.ID, Name: user.Name, Email: user.Email})
	}
	return event, volunteers, nil
}

// UpdateEvent applies present fields only. The owner reference is immutable.
func (s *EventService) UpdateEvent(ctx context.Context, id string, input EventUpdateInput) (*domain.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := event.Status

	if input.Status != nil {
		if !domain.ValidEventStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		event.Status = *input.Status
	}
	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.StartDate != nil {
		event.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		event.EndDate = *input.EndDate
	}
	if input.MaxVolunteers != nil {
		event.MaxVolunteers = input.MaxVolunteers
	}
	if input.Skills != nil {
		event.Skills = *input.Skills
	}

	if err := s.evts.Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	if event.Status != oldStatus {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:  events.EventEventUpdated,
			Actor: events.Actor{},
			Payload: events.EventStatusChangedPayload{
				EventID:   event.ID,
				OldStatus: oldStatus,
				NewStatus: event.Status,
			},
		})
	}
	return event, nil
}

// DeleteEvent removes an event. Registrations cascade with the row, so users
// never keep a reference to a deleted event.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.evts.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("event", nil)
		}
		return err
	}

	s.invalidateListCache(ctx)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventEventDeleted,
		Payload: events.RegistrationPayload{EventID: id},
	})
	return nil
}

func (s *EventService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, eventListCacheKey); err != nil {
		s.logger.Debug("event list cache invalidation failed", zap.Error(err))
	}
}
