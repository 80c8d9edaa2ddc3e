package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/volunteer-service/internal/domain"
	"github.com/spec-kit/volunteer-service/internal/events"
	"github.com/spec-kit/volunteer-service/internal/repository"
	apperrors "github.com/spec-kit/volunteer-service/pkg/util"
)

// UserService covers the administrative user workflows.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// UserUpdateInput carries optional admin-set changes. Nil means unchanged.
type UserUpdateInput struct {
	Name        *string
	Email       *string
	Role        *domain.UserRole
	Status      *domain.UserStatus
	PhoneNumber *string
	BloodGroup  *string
	Location    *string
	Skills      *[]string
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx, repository.UserFilter{})
}

// ListPendingUsers returns accounts awaiting approval.
func (s *UserService) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	status := domain.UserStatusPending
	return s.users.List(ctx, repository.UserFilter{Status: &status})
}

// VolunteerDirectory returns approved accounts for the public directory.
func (s *UserService) VolunteerDirectory(ctx context.Context) ([]domain.User, error) {
	status := domain.UserStatusApproved
	return s.users.List(ctx, repository.UserFilter{Status: &status})
}

// GetUser fetches a single account.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies present fields only. Role and status values are validated
// against their enums.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := user.Status

	if input.Role != nil {
		if !domain.ValidUserRole(*input.Role) {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		if !domain.ValidUserStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		user.Status = *input.Status
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			if _, err := s.users.GetByEmail(ctx, email); err == nil {
				return nil, apperrors.NewConflict("email already in use", map[string]any{"email": email})
			} else if !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
		}
		user.Email = email
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.BloodGroup != nil {
		user.BloodGroup = *input.BloodGroup
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Skills != nil {
		user.Skills = *input.Skills
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if user.Status != oldStatus {
		s.publishStatusChange(ctx, user, oldStatus)
	}
	return user, nil
}

// UpdateStatus approves or rejects an account.
func (s *UserService) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	if !domain.ValidUserStatus(status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := user.Status
	user.Status = status
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if status != oldStatus {
		s.publishStatusChange(ctx, user, oldStatus)
	}
	return user, nil
}

// DeleteUser removes an account. Registrations cascade with the row, so events
// never keep a reference to a deleted volunteer.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}

func (s *UserService) publishStatusChange(ctx context.Context, user *domain.User, oldStatus domain.UserStatus) {
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserStatusChanged,
		Actor: events.Actor{UserID: user.ID, Role: user.Role},
		Payload: events.UserStatusChangedPayload{
			UserID:    user.ID,
			OldStatus: oldStatus,
			NewStatus: user.Status,
		},
	})
}
