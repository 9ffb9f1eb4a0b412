package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-event-management/internal/domain/entity"
	"github.com/oksasatya/go-ddd-event-management/internal/domain/repository"
	"github.com/oksasatya/go-ddd-event-management/pkg/helpers"
	"github.com/oksasatya/go-ddd-event-management/pkg/response"
	"github.com/oksasatya/go-ddd-event-management/pkg/validation"
)

const (
	msgEventNotFound = "event not found"
	publishTimeout   = 5 * time.Second
)

type EventHandler struct {
	Events repository.EventRepository
	Pub    helpers.JSONPublisher // nil disables change notifications
	Logger *logrus.Logger
}

func NewEventHandler(events repository.EventRepository, pub helpers.JSONPublisher, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Events: events, Pub: pub, Logger: logger}
}

// eventRequest is the body of create and update. Limits mirror the column sizes.
type eventRequest struct {
	Name        *string `json:"name" binding:"required,max=80"`
	Date        *string `json:"date" binding:"required,max=80"`
	Location    *string `json:"location" binding:"required,max=120"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

func (r eventRequest) toEntity(id int64) *entity.Event {
	return &entity.Event{
		ID:          id,
		Name:        *r.Name,
		Date:        *r.Date,
		Location:    *r.Location,
		Description: r.Description,
	}
}

type eventEnvelope struct {
	Event *entity.Event `json:"event"`
}

// Create POST /api/:backend/event
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "error creating event", validation.ToDetails(err))
		return
	}

	e := req.toEntity(0)
	if err := h.Events.Create(c.Request.Context(), e); err != nil {
		helpers.LogError(h.Logger, "create event failed", err, logFields(c, nil))
		response.Error(c, http.StatusInternalServerError, "error creating event", response.InternalError)
		return
	}

	h.publish(c, entity.EventCreated, e.ID, e)
	response.JSON(c, http.StatusCreated, e)
}

// List GET /api/:backend/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Events.List(c.Request.Context())
	if err != nil {
		helpers.LogError(h.Logger, "list events failed", err, logFields(c, nil))
		response.Error(c, http.StatusInternalServerError, "error getting events", response.InternalError)
		return
	}
	if events == nil {
		events = []entity.Event{}
	}
	response.JSON(c, http.StatusOK, events)
}

// Get GET /api/:backend/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		response.Message(c, http.StatusNotFound, msgEventNotFound)
		return
	}

	e, err := h.Events.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Message(c, http.StatusNotFound, msgEventNotFound)
			return
		}
		helpers.LogError(h.Logger, "get event failed", err, logFields(c, logrus.Fields{"event_id": id}))
		response.Error(c, http.StatusInternalServerError, "error getting event", response.InternalError)
		return
	}
	response.JSON(c, http.StatusOK, eventEnvelope{Event: e})
}

// Update PUT /api/:backend/events/:id replaces all four fields.
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		response.Message(c, http.StatusNotFound, msgEventNotFound)
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "error updating event", validation.ToDetails(err))
		return
	}

	e := req.toEntity(id)
	if err := h.Events.Update(c.Request.Context(), e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Message(c, http.StatusNotFound, msgEventNotFound)
			return
		}
		helpers.LogError(h.Logger, "update event failed", err, logFields(c, logrus.Fields{"event_id": id}))
		response.Error(c, http.StatusInternalServerError, "error updating event", response.InternalError)
		return
	}

	h.publish(c, entity.EventUpdated, id, e)
	response.Message(c, http.StatusOK, "event updated")
}

// Delete DELETE /api/:backend/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		response.Message(c, http.StatusNotFound, msgEventNotFound)
		return
	}

	if err := h.Events.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Message(c, http.StatusNotFound, msgEventNotFound)
			return
		}
		helpers.LogError(h.Logger, "delete event failed", err, logFields(c, logrus.Fields{"event_id": id}))
		response.Error(c, http.StatusInternalServerError, "error deleting event", response.InternalError)
		return
	}

	h.publish(c, entity.EventDeleted, id, nil)
	response.Message(c, http.StatusOK, "event deleted")
}

// publish emits a change notification. Failures are logged only; the
// mutation has already been committed.
func (h *EventHandler) publish(c *gin.Context, kind string, id int64, e *entity.Event) {
	if h.Pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), publishTimeout)
	defer cancel()

	msg := entity.EventChange{Type: kind, EventID: id, Event: e, OccurredAt: time.Now().UTC()}
	if err := h.Pub.PublishJSON(ctx, msg); err != nil {
		helpers.LogError(h.Logger, "publish event change failed", err, logFields(c, logrus.Fields{"event_id": id, "type": kind}))
	}
}

// eventID parses the :id path segment. Non-numeric or non-positive ids
// cannot exist and are reported as not found.
func eventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
