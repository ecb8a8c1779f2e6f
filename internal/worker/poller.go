package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"sparkwash-api/internal/pkg/config"
	"sparkwash-api/internal/usecase/commands"
)

// Poller drives confirmation for in-flight checkouts. Each watched reference
// gets its own goroutine that verifies with the gateway on a fixed interval
// until the intent reaches a terminal outcome or the deadline expires, at
// which point the intent is expired server-side.
type Poller struct {
	payments commands.PaymentCommands
	interval time.Duration
	deadline time.Duration

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
	closed  bool
}

func NewPoller(payments commands.PaymentCommands, cfg config.PaymentsConfig) *Poller {
	return &Poller{
		payments: payments,
		interval: cfg.PollInterval,
		deadline: cfg.PollDeadline,
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Watch starts polling the reference. Watching an already-watched reference
// is a no-op; confirmation itself is idempotent, so a duplicate watcher would
// be harmless but wasteful.
func (p *Poller) Watch(reference string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if _, ok := p.cancels[reference]; ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancels[reference] = cancel
	p.wg.Add(1)
	go p.run(ctx, reference)
}

// Cancel stops the watcher for a reference without touching the intent. The
// caller cancels the intent through the command layer separately.
func (p *Poller) Cancel(reference string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cancel, ok := p.cancels[reference]; ok {
		cancel()
		delete(p.cancels, reference)
	}
}

// Shutdown stops all watchers and waits for them to drain.
func (p *Poller) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	for ref, cancel := range p.cancels {
		cancel()
		delete(p.cancels, ref)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (p *Poller) run(ctx context.Context, reference string) {
	defer p.wg.Done()
	defer p.Cancel(reference)

	expireAt := time.NewTimer(p.deadline)
	defer expireAt.Stop()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-expireAt.C:
			p.expire(reference)
			return
		case <-ticker.C:
			if done := p.confirmOnce(ctx, reference); done {
				return
			}
		}
	}
}

// confirmOnce reports whether polling should stop.
func (p *Poller) confirmOnce(ctx context.Context, reference string) bool {
	result, err := p.payments.Confirm(ctx, reference)
	switch {
	case err == nil:
		slog.Info("payment confirmed and booking committed",
			"reference", reference,
			"booking_id", result.BookingID,
			"replayed", result.IsReplayed)
		return true
	case errors.Is(err, commands.ErrPaymentPending),
		errors.Is(err, commands.ErrConfirmInProgress),
		errors.Is(err, commands.ErrGatewayUnavailable):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true
	default:
		slog.Warn("payment polling stopped", "reference", reference, "error", err.Error())
		return true
	}
}

func (p *Poller) expire(reference string) {
	// The watcher's context is about to go away; expiry still has to land.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.payments.Expire(ctx, reference); err != nil {
		slog.Error("failed to expire payment intent", "reference", reference, "error", err.Error())
		return
	}
	slog.Info("payment intent expired after polling deadline", "reference", reference)
}
