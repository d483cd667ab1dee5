package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-backend/internal/model"
	"github.com/gatherly/event-backend/internal/service"
)

// EventHandler covers event CRUD, sessions and organiser management.
type EventHandler struct {
	Events *service.EventService
}

func NewEventHandler(s *service.EventService) *EventHandler {
	return &EventHandler{Events: s}
}

// ----- DTOs -----

type eventReq struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Venue       string    `json:"venue"`
	Address     string    `json:"address"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

type eventResp struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Venue       string    `json:"venue"`
	Address     string    `json:"address"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedBy   uint64    `json:"created_by"`
}

type sessionReq struct {
	Title       string    `json:"title"`
	Speaker     string    `json:"speaker"`
	Description *string   `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

type sessionResp struct {
	ID          uint64    `json:"id"`
	EventID     uint64    `json:"event_id"`
	Title       string    `json:"title"`
	Speaker     string    `json:"speaker"`
	Description *string   `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

type organiserReq struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
}

type organiserResp struct {
	UserID  uint64    `json:"user_id"`
	Role    string    `json:"role"`
	AddedAt time.Time `json:"added_at"`
}

func toEventResp(e model.Event) eventResp {
	return eventResp{
		ID: e.ID, Title: e.Title, Description: e.Description,
		Venue: e.Venue, Address: e.Address,
		StartsAt: e.StartsAt, EndsAt: e.EndsAt, CreatedBy: e.CreatedBy,
	}
}

func toSessionResp(s model.EventSession) sessionResp {
	return sessionResp{
		ID: s.ID, EventID: s.EventID, Title: s.Title, Speaker: s.Speaker,
		Description: s.Description, StartsAt: s.StartsAt, EndsAt: s.EndsAt,
	}
}

// Create makes a new event; the creator becomes its admin.
func (h *EventHandler) Create(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	e := model.Event{
		Title: req.Title, Description: req.Description,
		Venue: req.Venue, Address: req.Address,
		StartsAt: req.StartsAt, EndsAt: req.EndsAt,
	}
	created, err := h.Events.Create(c.Request().Context(), currentUserID(c), &e)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toEventResp(created))
}

// Get returns one event.  Public.
func (h *EventHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	e, err := h.Events.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResp(e))
}

// List returns all events ordered by start time.  Public.
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.Events.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e))
	}
	return c.JSON(http.StatusOK, out)
}

// Update rewrites an event.  Admin on the event only.
func (h *EventHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	e := model.Event{
		ID: id, Title: req.Title, Description: req.Description,
		Venue: req.Venue, Address: req.Address,
		StartsAt: req.StartsAt, EndsAt: req.EndsAt,
	}
	updated, err := h.Events.Update(c.Request().Context(), currentUserID(c), &e)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResp(updated))
}

// Delete removes an event.  Admin on the event only.
func (h *EventHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	if err := h.Events.Delete(c.Request().Context(), currentUserID(c), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddOrganiser grants a role on the event, replacing any existing one.
func (h *EventHandler) AddOrganiser(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	var req organiserReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.UserID == 0 {
		return badRequest(c, "user_id required")
	}
	role, err := model.ParseOrganiserRole(req.Role)
	if err != nil {
		return badRequest(c, "invalid role")
	}
	if err := h.Events.AddOrganiser(c.Request().Context(), currentUserID(c), eventID, req.UserID, role); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListOrganisers lists the event's memberships.  Admin or staff.
func (h *EventHandler) ListOrganisers(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	organisers, err := h.Events.ListOrganisers(c.Request().Context(), currentUserID(c), eventID)
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]organiserResp, 0, len(organisers))
	for _, o := range organisers {
		out = append(out, organiserResp{UserID: o.UserID, Role: string(o.Role), AddedAt: o.AddedAt})
	}
	return c.JSON(http.StatusOK, out)
}

// CreateSession schedules a session inside the event.  Admin or staff.
func (h *EventHandler) CreateSession(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	sess := model.EventSession{
		EventID: eventID, Title: req.Title, Speaker: req.Speaker,
		Description: req.Description, StartsAt: req.StartsAt, EndsAt: req.EndsAt,
	}
	created, err := h.Events.CreateSession(c.Request().Context(), currentUserID(c), &sess)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toSessionResp(created))
}

// ListSessions lists the event's sessions.  Public.
func (h *EventHandler) ListSessions(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	sessions, err := h.Events.ListSessions(c.Request().Context(), eventID)
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]sessionResp, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResp(s))
	}
	return c.JSON(http.StatusOK, out)
}
