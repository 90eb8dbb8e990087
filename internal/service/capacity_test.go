package service

import (
	"context"
	"testing"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRemaining(t *testing.T) {
	r := &model.Room{Capacity: 3}
	assert.Equal(t, 3, r.Remaining(0))
	assert.Equal(t, 1, r.Remaining(2))
	assert.Equal(t, 0, r.Remaining(3))
}

func TestRemainingCapacity(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	room := mustRoom(t, store, "101", 3)
	other := mustRoom(t, store, "102", 3)

	remaining, err := RemainingCapacity(ctx, store, room, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	first, err := store.InsertBooking(ctx, uuid.New(), room.ID)
	require.NoError(t, err)
	_, err = store.InsertBooking(ctx, uuid.New(), room.ID)
	require.NoError(t, err)
	elsewhere, err := store.InsertBooking(ctx, uuid.New(), other.ID)
	require.NoError(t, err)

	remaining, err = RemainingCapacity(ctx, store, room, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining, "reflects committed bookings at call time")

	t.Run("excluded occupant of the room is not counted", func(t *testing.T) {
		remaining, err := RemainingCapacity(ctx, store, room, first.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, remaining)
	})

	t.Run("excluded booking in another room changes nothing", func(t *testing.T) {
		remaining, err := RemainingCapacity(ctx, store, room, elsewhere.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)
	})

	t.Run("unknown excluded booking changes nothing", func(t *testing.T) {
		remaining, err := RemainingCapacity(ctx, store, room, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)
	})
}

func TestRemainingCapacity_PropagatesStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := newFaultyStore("CountBookingsForRoom")
	room := mustRoom(t, store.mem, "101", 1)

	_, err := RemainingCapacity(ctx, store, room, uuid.Nil)
	assert.ErrorIs(t, err, errStore)
}
