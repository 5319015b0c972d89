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

type RegistrationAdminStore interface {
	List(ctx context.Context) ([]registration.Registration, error)
	UpdateStatus(ctx context.Context, id string, status registration.Status) (registration.Registration, error)
}

type StatusSender interface {
	SendStatusUpdate(ctx context.Context, reg registration.Registration) error
	SendTest(ctx context.Context) (string, error)
}

type AdminHandler struct {
	store      RegistrationAdminStore
	sender     StatusSender
	dispatcher *notifications.Dispatcher
	log        *slog.Logger
}

func NewAdminHandler(store RegistrationAdminStore, sender StatusSender, dispatcher *notifications.Dispatcher, log *slog.Logger) *AdminHandler {
	return &AdminHandler{
		store:      store,
		sender:     sender,
		dispatcher: dispatcher,
		log:        log,
	}
}

type updateStatusRequest struct {
	RegistrationID string `json:"registrationId"`
	Status         string `json:"status"`
}

// UpdateStatus moves a registration between pending/approved/rejected. Any status is
// reachable from any other; there are no transition guards. The registrant gets a
// best-effort email about the change.
func (h *AdminHandler) UpdateStatus(ctx *gin.Context) {
	var req updateStatusRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(ctx, "Invalid request body")
		return
	}

	if req.RegistrationID == "" || req.Status == "" {
		RespondBadRequest(ctx, "Missing required fields")
		return
	}

	status := registration.Status(req.Status)

	if !status.IsValid() {
		RespondBadRequest(ctx, "Invalid status value")
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)

	defer cancel()

	reg, err := h.store.UpdateStatus(cctx, req.RegistrationID, status)

	if err != nil {
		// an unknown id fails loudly; the admin UI treats it like any other
		// update failure
		if errors.Is(err, registration.ErrNotFound) {
			h.log.WarnContext(ctx.Request.Context(), "status_update.unknown_id", "registration_id", req.RegistrationID)
		} else {
			h.log.ErrorContext(ctx.Request.Context(), "status_update.failed", "err", err)
		}

		RespondInternal(ctx, "Failed to update status")
		return
	}

	h.log.InfoContext(ctx.Request.Context(), "status_update.applied", "registration_id", reg.ID, "status", string(reg.Status))

	h.dispatcher.Dispatch("status_update", func(sendCtx context.Context) error {
		return h.sender.SendStatusUpdate(sendCtx, reg)
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// List returns every registration, newest first, for the admin table. No pagination;
// the dataset is a handful of meetups.
func (h *AdminHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(5 * time.Second)

	defer cancel()

	regs, err := h.store.List(cctx)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "registrations.list_failed", "err", err)
		RespondInternal(ctx, "Failed to fetch registrations")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"count":         len(regs),
		"registrations": regs,
	})
}

// TestEmail checks deliverability end to end by mailing the admin address.
func (h *AdminHandler) TestEmail(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(15 * time.Second)

	defer cancel()

	id, err := h.sender.SendTest(cctx)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "test_email.failed", "err", err)
		RespondInternal(ctx, "Failed to send test email")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Test email sent successfully",
		"id":      id,
	})
}
