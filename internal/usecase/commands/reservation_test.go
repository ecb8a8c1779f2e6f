//go:build unit

package commands_test

import (
	"context"
	"testing"

	"sparkwash-api/internal/handler/dto/request"
	"sparkwash-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reserveReq(e *env, serviceID uuid.UUID, start string) request.ReserveSlotRequest {
	return request.ReserveSlotRequest{
		ServiceID:  serviceID,
		LocationID: e.locationID,
		Date:       e.date,
		StartTime:  start,
	}
}

func TestReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns advisory draft with price", func(t *testing.T) {
		e := newEnv(t)

		got, err := e.reservations.Reserve(ctx, reserveReq(e, e.washID, "09:00"), e.userID)
		require.NoError(t, err)
		assert.Equal(t, int64(15000), got.PriceCents)
		assert.Equal(t, e.userID, got.Draft.UserID)
		assert.Equal(t, "09:00", got.Draft.StartSlot.String())
		assert.Equal(t, 30, got.Draft.Duration.Minutes())

		// Advisory only: no capacity consumed, a second reserve still works.
		_, err = e.reservations.Reserve(ctx, reserveReq(e, e.washID, "09:00"), uuid.New())
		require.NoError(t, err)
	})

	t.Run("unknown service", func(t *testing.T) {
		e := newEnv(t)
		req := reserveReq(e, uuid.New(), "09:00")
		_, err := e.reservations.Reserve(ctx, req, e.userID)
		assert.ErrorIs(t, err, commands.ErrServiceNotFound)
	})

	t.Run("service from another location", func(t *testing.T) {
		e := newEnv(t)
		req := reserveReq(e, e.washID, "09:00")
		req.LocationID = uuid.New()
		_, err := e.reservations.Reserve(ctx, req, e.userID)
		assert.ErrorIs(t, err, commands.ErrServiceNotFound)
	})

	t.Run("inactive service", func(t *testing.T) {
		e := newEnv(t)
		svc := e.store.services[e.washID]
		svc.Active = false
		e.store.services[e.washID] = svc

		_, err := e.reservations.Reserve(ctx, reserveReq(e, e.washID, "09:00"), e.userID)
		assert.ErrorIs(t, err, commands.ErrServiceInactive)
	})

	t.Run("malformed start time", func(t *testing.T) {
		e := newEnv(t)
		_, err := e.reservations.Reserve(ctx, reserveReq(e, e.washID, "9 o'clock"), e.userID)
		assert.ErrorIs(t, err, commands.ErrInvalidTimeSlot)
	})

	t.Run("outside operating hours", func(t *testing.T) {
		e := newEnv(t)
		_, err := e.reservations.Reserve(ctx, reserveReq(e, e.washID, "07:30"), e.userID)
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
	})

	t.Run("slot already committed", func(t *testing.T) {
		e := newEnv(t)
		e.seedBooking(t, e.washID, "09:00", 1)

		_, err := e.reservations.Reserve(ctx, reserveReq(e, e.washID, "09:00"), e.userID)
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)

		// The 30-minute wash also occupies 09:15; a 15-minute rinse cannot
		// start there, but 09:30 is free again.
		_, err = e.reservations.Reserve(ctx, reserveReq(e, e.rinseID, "09:15"), e.userID)
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
		_, err = e.reservations.Reserve(ctx, reserveReq(e, e.rinseID, "09:30"), e.userID)
		require.NoError(t, err)
	})
}
