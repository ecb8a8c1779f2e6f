//go:build unit

package booking_test

import (
	"testing"
	"time"

	"sparkwash-api/internal/domain/booking"
	"sparkwash-api/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft(t *testing.T) booking.Draft {
	t.Helper()
	date, err := schedule.ParseDate("2025-07-14")
	require.NoError(t, err)
	slot, err := schedule.ParseSlot("10:30")
	require.NoError(t, err)
	dur, err := schedule.NewDuration(30)
	require.NoError(t, err)

	draft, err := booking.NewDraft(uuid.New(), uuid.New(), uuid.New(), date, slot, dur)
	require.NoError(t, err)
	return draft
}

func TestNewDraft(t *testing.T) {
	date, err := schedule.ParseDate("2025-07-14")
	require.NoError(t, err)
	slot, err := schedule.ParseSlot("10:30")
	require.NoError(t, err)
	dur, err := schedule.NewDuration(15)
	require.NoError(t, err)

	t.Run("rejects nil user", func(t *testing.T) {
		_, err := booking.NewDraft(uuid.Nil, uuid.New(), uuid.New(), date, slot, dur)
		assert.ErrorIs(t, err, booking.ErrMissingUser)
	})

	t.Run("rejects nil location", func(t *testing.T) {
		_, err := booking.NewDraft(uuid.New(), uuid.Nil, uuid.New(), date, slot, dur)
		assert.ErrorIs(t, err, booking.ErrMissingDraft)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := booking.NewDraft(uuid.New(), uuid.New(), uuid.New(), schedule.Date{}, slot, dur)
		assert.ErrorIs(t, err, booking.ErrMissingDraft)
	})
}

func TestDraftInterval(t *testing.T) {
	draft := validDraft(t)
	iv := draft.Interval()

	assert.Equal(t, "10:30", iv.Start().String())
	assert.Equal(t, "11:00", iv.End().String())
}

func TestCommit(t *testing.T) {
	now := time.Now()
	draft := validDraft(t)

	t.Run("valid", func(t *testing.T) {
		b, err := booking.Commit(draft, 2, "ref_xyz", now)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCommitted, b.Status())
		assert.True(t, b.IsCommitted())
		assert.Equal(t, 2, b.Bay())
		assert.Equal(t, "ref_xyz", b.PaymentReference())
		assert.Equal(t, draft.UserID, b.UserID())
		assert.Equal(t, draft.Interval(), b.Interval())
		assert.NotEqual(t, uuid.Nil, b.ID())
	})

	t.Run("rejects bay below one", func(t *testing.T) {
		_, err := booking.Commit(draft, 0, "ref_xyz", now)
		assert.ErrorIs(t, err, booking.ErrInvalidBay)
	})

	t.Run("rejects empty payment reference", func(t *testing.T) {
		_, err := booking.Commit(draft, 1, "", now)
		assert.ErrorIs(t, err, booking.ErrMissingDraft)
	})
}

func TestReconstruct(t *testing.T) {
	now := time.Now()
	draft := validDraft(t)
	id := uuid.New()

	b := booking.Reconstruct(id, draft, 1, booking.StatusCancelled, "ref_abc", now)
	assert.Equal(t, id, b.ID())
	assert.Equal(t, booking.StatusCancelled, b.Status())
	assert.False(t, b.IsCommitted())
}
