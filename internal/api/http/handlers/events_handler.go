package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/volunteer-service/internal/api/dto"
	"github.com/spec-kit/volunteer-service/internal/auth"
	"github.com/spec-kit/volunteer-service/internal/service"
	apperrors "github.com/spec-kit/volunteer-service/pkg/util"
)

// EventsHandler exposes event CRUD and registration endpoints.
type EventsHandler struct {
	events        *service.EventService
	registrations *service.RegistrationService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService, registrationService *service.RegistrationService) *EventsHandler {
	return &EventsHandler{events: eventService, registrations: registrationService}
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Description == "" || req.Location == "" {
		return apperrors.NewValidationError("title, description, location required", nil)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return apperrors.NewValidationError("start_date and end_date required", nil)
	}

	event, err := h.events.CreateEvent(c.Context(), principal.User.ID, service.EventCreateInput{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        req.Status,
		MaxVolunteers: req.MaxVolunteers,
		Skills:        req.Skills,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// List handles GET /api/events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	events, err := h.events.ListEvents(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, dto.NewEventResponse(&events[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /api/events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	event, volunteers, err := h.events.GetEventDetail(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	detail := dto.EventDetailResponse{
		EventResponse: dto.NewEventResponse(event),
		Volunteers:    make([]dto.VolunteerSummaryResponse, 0, len(volunteers)),
	}
	for _, v := range volunteers {
		detail.Volunteers = append(detail.Volunteers, dto.VolunteerSummaryResponse{
			ID:    v.ID,
			Name:  v.Name,
			Email: v.Email,
		})
	}
	return c.JSON(fiber.Map{"data": detail})
}

// Update handles PUT /api/events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	event, err := h.events.UpdateEvent(c.Context(), c.Params("id"), service.EventUpdateInput{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        req.Status,
		MaxVolunteers: req.MaxVolunteers,
		Skills:        req.Skills,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Delete handles DELETE /api/events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	if err := h.events.DeleteEvent(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Event removed"}})
}

// Register handles POST /api/events/:id/register.
func (h *EventsHandler) Register(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.registrations.Register(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"message": "Successfully registered for event"},
	})
}

// Unregister handles POST /api/events/:id/unregister.
func (h *EventsHandler) Unregister(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.registrations.Unregister(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "Successfully unregistered from event"},
	})
}
