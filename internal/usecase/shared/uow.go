package shared

import (
	"context"
	"time"

	"sparkwash-api/internal/domain/booking"
	"sparkwash-api/internal/domain/payment"
	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	// LockSchedule serializes all mutations of one (location, date) schedule
	// for the remainder of the transaction. Every commit path and every
	// manager mutation takes this lock before re-validating.
	LockSchedule(ctx context.Context, locationID uuid.UUID, date schedule.Date) error
	Bookings() BookingRepository
	BlockedSlots() BlockedSlotRepository
	DaySettings() DaySettingsRepository
	PaymentIntents() PaymentIntentRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	LocationByID(ctx context.Context, id uuid.UUID) (*LocationSnapshot, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	// ScheduleSnapshot assembles hours, active bays, blocked slots and
	// committed bookings for one (location, date). Inside a transaction that
	// holds the schedule lock the snapshot is authoritative; outside it is
	// advisory only.
	ScheduleSnapshot(ctx context.Context, locationID uuid.UUID, date schedule.Date) (*schedule.Snapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
}

type BlockedSlotRepository interface {
	Block(ctx context.Context, tx db.DBTX, locationID uuid.UUID, date schedule.Date, slot schedule.Slot) error
	Unblock(ctx context.Context, tx db.DBTX, locationID uuid.UUID, date schedule.Date, slot schedule.Slot) error
}

type DaySettingsRepository interface {
	SetActiveBays(ctx context.Context, tx db.DBTX, locationID uuid.UUID, date schedule.Date, bays int) error
}

type PaymentIntentRepository interface {
	Create(ctx context.Context, tx db.DBTX, intent *payment.Intent) error
	Update(ctx context.Context, tx db.DBTX, intent *payment.Intent) error
	FindByReference(ctx context.Context, tx db.DBTX, reference string) (*payment.Intent, error)
	// FindByReferenceForUpdate additionally locks the intent row for the rest
	// of the transaction. Status checks made on the result stay true until the
	// caller's update lands; use it on every read-then-write of an intent.
	FindByReferenceForUpdate(ctx context.Context, tx db.DBTX, reference string) (*payment.Intent, error)
	// ClaimConfirm flips a claimable intent to confirmed in one conditional
	// update. False with a nil error means another caller already claimed the
	// reference or it is no longer claimable.
	ClaimConfirm(ctx context.Context, tx db.DBTX, reference string, now time.Time) (bool, error)
}
