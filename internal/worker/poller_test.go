//go:build unit

package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	reqdto "sparkwash-api/internal/handler/dto/request"
	"sparkwash-api/internal/pkg/config"
	"sparkwash-api/internal/pkg/errs"
	"sparkwash-api/internal/usecase/commands"
	"sparkwash-api/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakePayments struct {
	mu           sync.Mutex
	confirmCalls map[string]int
	expireCalls  map[string]int
	script       func(reference string, call int) (*commands.ConfirmResult, error)
}

func newFakePayments(script func(reference string, call int) (*commands.ConfirmResult, error)) *fakePayments {
	return &fakePayments{
		confirmCalls: make(map[string]int),
		expireCalls:  make(map[string]int),
		script:       script,
	}
}

func (f *fakePayments) Confirm(_ context.Context, reference string) (*commands.ConfirmResult, error) {
	f.mu.Lock()
	f.confirmCalls[reference]++
	call := f.confirmCalls[reference]
	f.mu.Unlock()
	return f.script(reference, call)
}

func (f *fakePayments) Expire(_ context.Context, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expireCalls[reference]++
	return nil
}

func (f *fakePayments) StartCheckout(_ context.Context, _ reqdto.StartCheckoutRequest, _ uuid.UUID) (*commands.StartCheckoutResult, error) {
	return nil, nil
}

func (f *fakePayments) Cancel(_ context.Context, _ string, _ uuid.UUID) error { return nil }

func (f *fakePayments) Fail(_ context.Context, _ string, _ string) error { return nil }

func (f *fakePayments) confirms(reference string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmCalls[reference]
}

func (f *fakePayments) expires(reference string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expireCalls[reference]
}

func testPoller(t *testing.T, payments commands.PaymentCommands, interval, deadline time.Duration) *worker.Poller {
	t.Helper()
	p := worker.NewPoller(payments, config.PaymentsConfig{
		PollInterval: interval,
		PollDeadline: deadline,
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, p.Shutdown(ctx))
	})
	return p
}

func TestPoller_ConfirmsAfterPending(t *testing.T) {
	bookingID := uuid.New()
	payments := newFakePayments(func(_ string, call int) (*commands.ConfirmResult, error) {
		if call < 3 {
			return nil, commands.ErrPaymentPending
		}
		return &commands.ConfirmResult{BookingID: bookingID}, nil
	})
	poller := testPoller(t, payments, 5*time.Millisecond, time.Minute)

	poller.Watch("ref_001")

	require.Eventually(t, func() bool {
		return payments.confirms("ref_001") >= 3
	}, time.Second, time.Millisecond)

	// No further polls after the successful confirmation.
	calls := payments.confirms("ref_001")
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, calls, payments.confirms("ref_001"))
	require.Zero(t, payments.expires("ref_001"))
}

func TestPoller_ExpiresAtDeadline(t *testing.T) {
	payments := newFakePayments(func(_ string, _ int) (*commands.ConfirmResult, error) {
		return nil, commands.ErrPaymentPending
	})
	poller := testPoller(t, payments, 5*time.Millisecond, 40*time.Millisecond)

	poller.Watch("ref_002")

	require.Eventually(t, func() bool {
		return payments.expires("ref_002") == 1
	}, time.Second, time.Millisecond)

	calls := payments.confirms("ref_002")
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, calls, payments.confirms("ref_002"))
}

func TestPoller_StopsOnTerminalFailure(t *testing.T) {
	payments := newFakePayments(func(_ string, _ int) (*commands.ConfirmResult, error) {
		return nil, commands.ErrPaymentFailed
	})
	poller := testPoller(t, payments, 5*time.Millisecond, time.Minute)

	poller.Watch("ref_003")

	require.Eventually(t, func() bool {
		return payments.confirms("ref_003") == 1
	}, time.Second, time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, payments.confirms("ref_003"))
	require.Zero(t, payments.expires("ref_003"))
}

// Gateway outages surface as transport errors marked ErrGatewayUnavailable,
// never as the bare sentinel. The watcher must ride them out.
func TestPoller_KeepsPollingThroughGatewayOutages(t *testing.T) {
	bookingID := uuid.New()
	payments := newFakePayments(func(_ string, call int) (*commands.ConfirmResult, error) {
		if call == 1 {
			return nil, errs.Mark(errs.New("connection refused"), commands.ErrGatewayUnavailable)
		}
		return &commands.ConfirmResult{BookingID: bookingID}, nil
	})
	poller := testPoller(t, payments, 5*time.Millisecond, time.Minute)

	poller.Watch("ref_004")

	require.Eventually(t, func() bool {
		return payments.confirms("ref_004") >= 2
	}, time.Second, time.Millisecond)
	require.Zero(t, payments.expires("ref_004"))
}

func TestPoller_CancelStopsWatcher(t *testing.T) {
	payments := newFakePayments(func(_ string, _ int) (*commands.ConfirmResult, error) {
		return nil, commands.ErrPaymentPending
	})
	poller := testPoller(t, payments, 5*time.Millisecond, time.Minute)

	poller.Watch("ref_005")
	require.Eventually(t, func() bool {
		return payments.confirms("ref_005") >= 1
	}, time.Second, time.Millisecond)

	poller.Cancel("ref_005")
	time.Sleep(20 * time.Millisecond)
	calls := payments.confirms("ref_005")
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, calls, payments.confirms("ref_005"))
	require.Zero(t, payments.expires("ref_005"))
}

func TestPoller_DuplicateWatchIsNoop(t *testing.T) {
	payments := newFakePayments(func(_ string, _ int) (*commands.ConfirmResult, error) {
		return nil, commands.ErrPaymentPending
	})
	poller := testPoller(t, payments, 20*time.Millisecond, time.Minute)

	poller.Watch("ref_006")
	poller.Watch("ref_006")

	time.Sleep(70 * time.Millisecond)
	// A second watcher would roughly double the call count.
	require.LessOrEqual(t, payments.confirms("ref_006"), 4)
}
