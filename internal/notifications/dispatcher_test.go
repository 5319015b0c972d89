package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/suinigeria/events-api/internal/observability"
)

func TestDispatcher_CountsOutcomes(t *testing.T) {
	prom := observability.NewProm()
	d := NewDispatcher(testLogger(), time.Second, prom)

	d.Dispatch("registration_confirmation", func(ctx context.Context) error {
		return nil
	})
	d.Dispatch("registration_confirmation", func(ctx context.Context) error {
		return errors.New("provider down")
	})

	d.Wait()

	sent := testutil.ToFloat64(prom.EmailSendsTotal.WithLabelValues("registration_confirmation", "sent"))
	failed := testutil.ToFloat64(prom.EmailSendsTotal.WithLabelValues("registration_confirmation", "failed"))

	if sent != 1 {
		t.Fatalf("got %v sent, want 1", sent)
	}

	if failed != 1 {
		t.Fatalf("got %v failed, want 1", failed)
	}
}

func TestDispatcher_FailureStaysContained(t *testing.T) {
	d := NewDispatcher(testLogger(), time.Second, nil)

	// a failing send must neither panic nor surface anywhere
	d.Dispatch("status_update", func(ctx context.Context) error {
		return errors.New("boom")
	})

	d.Wait()
}

func TestDispatcher_DetachedFromCallerContext(t *testing.T) {
	d := NewDispatcher(testLogger(), time.Second, nil)

	done := make(chan error, 1)

	d.Dispatch("registration_confirmation", func(ctx context.Context) error {
		// the dispatched context must be live even though the request
		// that triggered the send is long gone
		select {
		case <-ctx.Done():
			done <- ctx.Err()
		default:
			done <- nil
		}
		return nil
	})

	d.Wait()

	if err := <-done; err != nil {
		t.Fatalf("dispatched context should not be cancelled: %v", err)
	}
}

func TestDispatcher_AppliesTimeout(t *testing.T) {
	d := NewDispatcher(testLogger(), 10*time.Millisecond, nil)

	expired := make(chan bool, 1)

	d.Dispatch("status_update", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			expired <- true
		case <-time.After(2 * time.Second):
			expired <- false
		}
		return ctx.Err()
	})

	d.Wait()

	if !<-expired {
		t.Fatalf("dispatched context should expire after the configured timeout")
	}
}
