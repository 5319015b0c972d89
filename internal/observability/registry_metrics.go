package observability

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/suinigeria/events-api/internal/domain/registration"
	"go.mongodb.org/mongo-driver/mongo"
)

// ObserveRegistry times one logical store operation and classifies its failure mode.
// Domain sentinels get their own classes so dashboards can tell a duplicate
// submission from a flapping database.
func (p *Prom) ObserveRegistry(op string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"

	if err != nil {
		status = "error"
		p.RegistryErrorsTotal.WithLabelValues(op, classifyRegistryErr(err)).Inc()
	}
	p.RegistryOpDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	return err
}

func classifyRegistryErr(err error) string {
	switch {
	case errors.Is(err, registration.ErrAlreadyRegistered):
		return "duplicate"
	case errors.Is(err, registration.ErrNotFound):
		return "not_found"
	case mongo.IsDuplicateKeyError(err):
		return "duplicate_key"
	case mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case mongo.IsNetworkError(err):
		return "connection"
	case errors.Is(err, mongo.ErrNoDocuments):
		return "no_documents"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "unknown"
	}
}
