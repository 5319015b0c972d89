package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suinigeria/events-api/internal/config"
	"github.com/suinigeria/events-api/internal/domain/registration"
	"github.com/suinigeria/events-api/internal/notifications"
)

type RegistrationCreator interface {
	Create(ctx context.Context, req registration.CreateRegistrationRequest, prov registration.Provenance) (registration.Registration, error)
}

type ConfirmationSender interface {
	SendRegistrationConfirmation(ctx context.Context, reg registration.Registration) error
}

type RegistrationHandler struct {
	repo       RegistrationCreator
	sender     ConfirmationSender
	dispatcher *notifications.Dispatcher
	log        *slog.Logger
}

func NewRegistrationHandler(repo RegistrationCreator, sender ConfirmationSender, dispatcher *notifications.Dispatcher, log *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		repo:       repo,
		sender:     sender,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Register runs the submission workflow: validate, duplicate-check, persist,
// then hand the confirmation email to the dispatcher. Success is defined by the
// write; delivery never changes the response.
func (h *RegistrationHandler) Register(ctx *gin.Context) {
	var req registration.CreateRegistrationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	h.log.DebugContext(ctx.Request.Context(), "registration.received", "email", req.Email, "event", req.Event)

	prov := registration.Provenance{
		IP:        ctx.ClientIP(),
		UserAgent: ctx.Request.UserAgent(),
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)

	defer cancel()

	reg, err := h.repo.Create(cctx, req, prov)

	if err != nil {
		if errors.Is(err, registration.ErrAlreadyRegistered) {
			RespondBadRequest(ctx, "You have already registered for this event")
			return
		}

		h.log.ErrorContext(ctx.Request.Context(), "registration.persist_failed", "err", err)
		RespondInternal(ctx, "Failed to process registration")
		return
	}

	h.log.InfoContext(ctx.Request.Context(), "registration.created", "registration_id", reg.ID, "event", reg.Event)

	h.dispatcher.Dispatch("registration_confirmation", func(sendCtx context.Context) error {
		return h.sender.SendRegistrationConfirmation(sendCtx, reg)
	})

	ctx.JSON(http.StatusOK, gin.H{
		"message":        "Registration successful",
		"registrationId": reg.ID,
	})
}
