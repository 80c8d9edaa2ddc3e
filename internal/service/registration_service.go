package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/volunteer-service/internal/domain"
	"github.com/spec-kit/volunteer-service/internal/events"
	"github.com/spec-kit/volunteer-service/internal/repository"
	apperrors "github.com/spec-kit/volunteer-service/pkg/util"
)

// RegistrationService enforces capacity and duplicate rules and keeps the
// user/event membership sets consistent.
type RegistrationService struct {
	evts          repository.EventRepository
	users         repository.UserRepository
	registrations repository.RegistrationRepository
	cache         ListCache
	dispatcher    events.Dispatcher
}

// RegistrationDependencies bundles requirements for the registration service.
type RegistrationDependencies struct {
	EventRepo        repository.EventRepository
	UserRepo         repository.UserRepository
	RegistrationRepo repository.RegistrationRepository
	Cache            ListCache
	Dispatcher       events.Dispatcher
}

// NewRegistrationService constructs the service.
func NewRegistrationService(deps RegistrationDependencies) *RegistrationService {
	return &RegistrationService{
		evts:          deps.EventRepo,
		users:         deps.UserRepo,
		registrations: deps.RegistrationRepo,
		cache:         deps.Cache,
		dispatcher:    deps.Dispatcher,
	}
}

// Register signs the user up for the event.
func (s *RegistrationService) Register(ctx context.Context, eventID, userID string) error {
	event, user, err := s.loadPair(ctx, eventID, userID)
	if err != nil {
		return err
	}

	if event.AtCapacity() {
		return apperrors.NewCapacityExceeded(event.ID)
	}
	if event.HasVolunteer(user.ID) {
		return apperrors.NewAlreadyRegistered(event.ID)
	}

	// The repository re-checks both rules under a row lock, so a concurrent
	// registration racing past the reads above still cannot overfill the event.
	if err := s.registrations.Add(ctx, event.ID, user.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityExceeded):
			return apperrors.NewCapacityExceeded(event.ID)
		case errors.Is(err, repository.ErrAlreadyRegistered):
			return apperrors.NewAlreadyRegistered(event.ID)
		case errors.Is(err, pgx.ErrNoRows):
			return apperrors.NewNotFound("event", nil)
		}
		return err
	}

	s.invalidateListCache(ctx)
	s.publishRegistration(ctx, events.EventVolunteerRegistered, event.ID, user)
	return nil
}

// Unregister removes the user from the event.
func (s *RegistrationService) Unregister(ctx context.Context, eventID, userID string) error {
	event, user, err := s.loadPair(ctx, eventID, userID)
	if err != nil {
		return err
	}

	if !event.HasVolunteer(user.ID) {
		return apperrors.NewNotRegistered(event.ID)
	}

	if err := s.registrations.Remove(ctx, event.ID, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotRegistered) {
			return apperrors.NewNotRegistered(event.ID)
		}
		return err
	}

	s.invalidateListCache(ctx)
	s.publishRegistration(ctx, events.EventVolunteerUnregistered, event.ID, user)
	return nil
}

func (s *RegistrationService) loadPair(ctx context.Context, eventID, userID string) (*domain.Event, *domain.User, error) {
	event, err := s.evts.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("event", nil)
		}
		return nil, nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("user", nil)
		}
		return nil, nil, err
	}
	return event, user, nil
}

func (s *RegistrationService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, eventListCacheKey)
}

func (s *RegistrationService) publishRegistration(ctx context.Context, eventType events.EventType, eventID string, user *domain.User) {
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    eventType,
		Actor:   events.Actor{UserID: user.ID, Role: user.Role},
		Payload: events.RegistrationPayload{EventID: eventID, UserID: user.ID},
	})
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
