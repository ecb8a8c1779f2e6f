//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"sparkwash-api/internal/domain/booking"
	"sparkwash-api/internal/domain/payment"
	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/infra/db"
	"sparkwash-api/internal/pkg/clock"
	"sparkwash-api/internal/usecase/commands"
	"sparkwash-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type lockKey struct {
	loc  uuid.UUID
	date string
}

// fakeStore is the in-memory stand-in for the Postgres unit of work. The
// per-(location, date) mutex plays the advisory lock; the store mutex only
// guards map access.
type fakeStore struct {
	mu        sync.Mutex
	locks     map[lockKey]*sync.Mutex
	rowLocks  map[string]*sync.Mutex
	locations map[uuid.UUID]shared.LocationSnapshot
	services  map[uuid.UUID]shared.ServiceSnapshot
	bays      map[lockKey]int
	blocked   map[lockKey]map[schedule.Slot]struct{}
	bookings  []*booking.Booking
	intents   map[string]*payment.Intent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		locks:     make(map[lockKey]*sync.Mutex),
		rowLocks:  make(map[string]*sync.Mutex),
		locations: make(map[uuid.UUID]shared.LocationSnapshot),
		services:  make(map[uuid.UUID]shared.ServiceSnapshot),
		bays:      make(map[lockKey]int),
		blocked:   make(map[lockKey]map[schedule.Slot]struct{}),
		intents:   make(map[string]*payment.Intent),
	}
}

func (s *fakeStore) lockFor(k lockKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[k] == nil {
		s.locks[k] = &sync.Mutex{}
	}
	return s.locks[k]
}

func (s *fakeStore) rowLockFor(reference string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rowLocks[reference] == nil {
		s.rowLocks[reference] = &sync.Mutex{}
	}
	return s.rowLocks[reference]
}

func (s *fakeStore) committedBookings() []*booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*booking.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if b.IsCommitted() {
			out = append(out, b)
		}
	}
	return out
}

func (s *fakeStore) intentByReference(t *testing.T, reference string) *payment.Intent {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.intents[reference]
	require.True(t, ok, "intent %s not stored", reference)
	return cloneIntent(intent)
}

func cloneIntent(i *payment.Intent) *payment.Intent {
	return payment.Reconstruct(
		i.Reference(), i.AmountCents(), i.Email(), i.Draft(),
		i.Status(), i.BookingID(), i.FailureReason(),
		i.CreatedAt(), i.UpdatedAt(),
	)
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &fakeTx{store: u.store, rows: make(map[string]struct{})}
	defer tx.releaseLocks()
	return fn(ctx, tx)
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
	held  []*sync.Mutex
	rows  map[string]struct{}
}

func (t *fakeTx) LockSchedule(_ context.Context, locationID uuid.UUID, date schedule.Date) error {
	m := t.store.lockFor(lockKey{loc: locationID, date: date.String()})
	m.Lock()
	t.held = append(t.held, m)
	return nil
}

// lockRow mimics Postgres row locking: UPDATE and SELECT FOR UPDATE hold the
// intent row until the transaction ends. Re-acquiring within the same
// transaction is a no-op, as it is in Postgres.
func (t *fakeTx) lockRow(reference string) {
	if _, ok := t.rows[reference]; ok {
		return
	}
	m := t.store.rowLockFor(reference)
	m.Lock()
	t.held = append(t.held, m)
	t.rows[reference] = struct{}{}
}

func (t *fakeTx) releaseLocks() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
	t.held = nil
}

func (t *fakeTx) Bookings() shared.BookingRepository             { return &fakeBookingRepo{t.store} }
func (t *fakeTx) BlockedSlots() shared.BlockedSlotRepository     { return &fakeBlockedRepo{t.store} }
func (t *fakeTx) DaySettings() shared.DaySettingsRepository      { return &fakeDaySettingsRepo{t.store} }
func (t *fakeTx) PaymentIntents() shared.PaymentIntentRepository {
	return &fakeIntentRepo{store: t.store, tx: t}
}
func (t *fakeTx) Reads() shared.CommandReads                     { return &fakeReads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                                    { return nil }

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) LocationByID(_ context.Context, id uuid.UUID) (*shared.LocationSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	loc, ok := r.store.locations[id]
	if !ok {
		return nil, notFoundErr("location not found")
	}
	return &loc, nil
}

func (r *fakeReads) ServiceByID(_ context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	svc, ok := r.store.services[id]
	if !ok {
		return nil, notFoundErr("service not found")
	}
	return &svc, nil
}

func (r *fakeReads) ScheduleSnapshot(_ context.Context, locationID uuid.UUID, date schedule.Date) (*schedule.Snapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	loc, ok := r.store.locations[locationID]
	if !ok {
		return nil, notFoundErr("location not found")
	}

	key := lockKey{loc: locationID, date: date.String()}
	bays := loc.DefaultBays
	if v, ok := r.store.bays[key]; ok {
		bays = v
	}

	blocked := make(map[schedule.Slot]struct{}, len(r.store.blocked[key]))
	for s := range r.store.blocked[key] {
		blocked[s] = struct{}{}
	}

	var booked []schedule.BookedInterval
	for _, b := range r.store.bookings {
		if b.LocationID() == locationID && b.Date() == date && b.IsCommitted() {
			booked = append(booked, schedule.BookedInterval{Interval: b.Interval(), Bay: b.Bay()})
		}
	}

	return &schedule.Snapshot{
		Hours:      loc.Hours,
		ActiveBays: bays,
		Blocked:    blocked,
		Booked:     booked,
	}, nil
}

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.bookings = append(r.store.bookings, b)
	return b.ID(), nil
}

type fakeBlockedRepo struct{ store *fakeStore }

func (r *fakeBlockedRepo) Block(_ context.Context, _ db.DBTX, locationID uuid.UUID, date schedule.Date, slot schedule.Slot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := lockKey{loc: locationID, date: date.String()}
	if r.store.blocked[key] == nil {
		r.store.blocked[key] = make(map[schedule.Slot]struct{})
	}
	r.store.blocked[key][slot] = struct{}{}
	return nil
}

func (r *fakeBlockedRepo) Unblock(_ context.Context, _ db.DBTX, locationID uuid.UUID, date schedule.Date, slot schedule.Slot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.blocked[lockKey{loc: locationID, date: date.String()}], slot)
	return nil
}

type fakeDaySettingsRepo struct{ store *fakeStore }

func (r *fakeDaySettingsRepo) SetActiveBays(_ context.Context, _ db.DBTX, locationID uuid.UUID, date schedule.Date, bays int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.bays[lockKey{loc: locationID, date: date.String()}] = bays
	return nil
}

type fakeIntentRepo struct {
	store *fakeStore
	tx    *fakeTx
}

func (r *fakeIntentRepo) Create(_ context.Context, _ db.DBTX, intent *payment.Intent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.intents[intent.Reference()]; exists {
		return infra.WrapRepoErr("intent already exists", nil, infra.KindDuplicateKey)
	}
	r.store.intents[intent.Reference()] = cloneIntent(intent)
	return nil
}

func (r *fakeIntentRepo) Update(_ context.Context, _ db.DBTX, intent *payment.Intent) error {
	r.tx.lockRow(intent.Reference())
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.intents[intent.Reference()]; !exists {
		return notFoundErr("intent not found")
	}
	r.store.intents[intent.Reference()] = cloneIntent(intent)
	return nil
}

func (r *fakeIntentRepo) FindByReference(_ context.Context, _ db.DBTX, reference string) (*payment.Intent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	intent, ok := r.store.intents[reference]
	if !ok {
		return nil, notFoundErr("intent not found")
	}
	return cloneIntent(intent), nil
}

func (r *fakeIntentRepo) FindByReferenceForUpdate(ctx context.Context, dbtx db.DBTX, reference string) (*payment.Intent, error) {
	r.tx.lockRow(reference)
	return r.FindByReference(ctx, dbtx, reference)
}

func (r *fakeIntentRepo) ClaimConfirm(_ context.Context, _ db.DBTX, reference string, now time.Time) (bool, error) {
	r.tx.lockRow(reference)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	intent, ok := r.store.intents[reference]
	if !ok {
		return false, nil
	}
	if !intent.Claimable() {
		return false, nil
	}
	if err := intent.Confirm(now); err != nil {
		return false, nil
	}
	return true, nil
}

type fakeGateway struct {
	mu       sync.Mutex
	issued   int
	verified int
	statuses map[string]commands.GatewayStatus
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{statuses: make(map[string]commands.GatewayStatus)}
}

func (g *fakeGateway) Initialize(_ context.Context, _ int64, _ string) (*commands.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	ref := fmt.Sprintf("ref_%03d", g.issued)
	g.statuses[ref] = commands.GatewayPending
	return &commands.CheckoutSession{
		AuthorizationURL: "https://checkout.example/" + ref,
		Reference:        ref,
	}, nil
}

func (g *fakeGateway) Verify(_ context.Context, reference string) (commands.GatewayStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verified++
	status, ok := g.statuses[reference]
	if !ok {
		return commands.GatewayFailed, nil
	}
	return status, nil
}

func (g *fakeGateway) report(reference string, status commands.GatewayStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses[reference] = status
}

type env struct {
	store        *fakeStore
	gw           *fakeGateway
	clk          *clock.MockClock
	reservations commands.ReservationCommands
	payments     commands.PaymentCommands
	capacity     commands.CapacityCommands
	blockedSlots commands.BlockedSlotCommands

	locationID uuid.UUID
	washID     uuid.UUID // 30 min
	rinseID    uuid.UUID // 15 min
	userID     uuid.UUID
	date       string
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := newFakeStore()
	uow := &fakeUoW{store: store}
	gw := newFakeGateway()
	clk := clock.NewMockClock(time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))

	e := &env{
		store:      store,
		gw:         gw,
		clk:        clk,
		locationID: uuid.New(),
		washID:     uuid.New(),
		rinseID:    uuid.New(),
		userID:     uuid.New(),
		date:       "2025-07-14",
	}

	open := mustSlot(t, "08:00")
	closeAt := mustSlot(t, "16:00")
	hours, err := schedule.NewOperatingHours(open, closeAt, schedule.SlotIntervalMin)
	require.NoError(t, err)

	store.locations[e.locationID] = shared.LocationSnapshot{
		ID:          e.locationID,
		Name:        "Main Street",
		Timezone:    "Africa/Johannesburg",
		Hours:       hours,
		DefaultBays: 1,
	}
	store.services[e.washID] = shared.ServiceSnapshot{
		ID:         e.washID,
		LocationID: e.locationID,
		Name:       "Full Wash",
		Duration:   mustDuration(t, 30),
		PriceCents: 15000,
		Active:     true,
	}
	store.services[e.rinseID] = shared.ServiceSnapshot{
		ID:         e.rinseID,
		LocationID: e.locationID,
		Name:       "Quick Rinse",
		Duration:   mustDuration(t, 15),
		PriceCents: 9000,
		Active:     true,
	}

	e.reservations = commands.NewReservationUseCase(uow, clk)
	e.payments = commands.NewPaymentUseCase(uow, gw, e.reservations, clk)
	e.capacity = commands.NewCapacityUseCase(uow)
	e.blockedSlots = commands.NewBlockedSlotUseCase(uow)
	return e
}

func (e *env) setBays(t *testing.T, bays int) {
	t.Helper()
	loc := e.store.locations[e.locationID]
	loc.DefaultBays = bays
	e.store.locations[e.locationID] = loc
}

func (e *env) seedBooking(t *testing.T, serviceID uuid.UUID, start string, bay int) {
	t.Helper()
	svc := e.store.services[serviceID]
	date, err := schedule.ParseDate(e.date)
	require.NoError(t, err)
	draft, err := booking.NewDraft(uuid.New(), e.locationID, serviceID, date, mustSlot(t, start), svc.Duration)
	require.NoError(t, err)
	b, err := booking.Commit(draft, bay, "seed_"+start+"_"+fmt.Sprint(bay), e.clk.Now())
	require.NoError(t, err)
	e.store.bookings = append(e.store.bookings, b)
}

func mustSlot(t *testing.T, s string) schedule.Slot {
	t.Helper()
	slot, err := schedule.ParseSlot(s)
	require.NoError(t, err)
	return slot
}

func mustDuration(t *testing.T, minutes int) schedule.Duration {
	t.Helper()
	d, err := schedule.NewDuration(minutes)
	require.NoError(t, err)
	return d
}
