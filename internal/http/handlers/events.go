package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suinigeria/events-api/internal/domain/event"
)

type EventsHandler struct{}

func NewEventsHandler() *EventsHandler {
	return &EventsHandler{}
}

// List serves the offered-events catalog the registration form is built from.
func (h *EventsHandler) List(ctx *gin.Context) {
	events := event.All()

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": events,
		"count": len(events),
	})
}
