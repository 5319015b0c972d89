package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/suinigeria/events-api/internal/observability"
)

// Dispatcher runs notification sends off the request path. A registration (or status
// change) is defined by its write; delivery is best effort, so send outcomes are
// logged and counted here and never reach the caller.
type Dispatcher struct {
	log     *slog.Logger
	timeout time.Duration
	prom    *observability.Prom
	wg      sync.WaitGroup
}

func NewDispatcher(log *slog.Logger, timeout time.Duration, prom *observability.Prom) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Dispatcher{
		log:     log,
		timeout: timeout,
		prom:    prom,
	}
}

// Dispatch fires fn on its own goroutine with a fresh context, detached from the
// request that triggered it. kind labels the message for logs and metrics.
func (d *Dispatcher) Dispatch(kind string, fn func(ctx context.Context) error) {
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		err := fn(ctx)

		result := "sent"

		if err != nil {
			result = "failed"
			d.log.Error("notification failed", "kind", kind, "err", err)
		} else {
			d.log.Info("notification sent", "kind", kind)
		}

		if d.prom != nil {
			d.prom.EmailSendsTotal.WithLabelValues(kind, result).Inc()
		}
	}()
}

// Wait blocks until every dispatched send has finished. Called on shutdown and by
// tests that assert on send outcomes.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
