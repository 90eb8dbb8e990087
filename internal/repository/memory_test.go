package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoomsAndBookings(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	room, err := store.CreateRoom(ctx, "101", 2)
	require.NoError(t, err)

	got, err := store.FindRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, *room, *got)

	_, err = store.FindRoom(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	user := uuid.New()
	b, err := store.InsertBooking(ctx, user, room.ID)
	require.NoError(t, err)
	assert.Equal(t, user, b.UserID)
	assert.Equal(t, room.ID, b.RoomID)

	n, err := store.CountBookingsForRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	byUser, err := store.FindBookingByUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, b.ID, byUser.ID)

	byID, err := store.FindBookingByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, user, byID.UserID)

	_, err = store.FindBookingByUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.FindBookingByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_InsertRejectsSecondBookingForUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a, _ := store.CreateRoom(ctx, "a", 5)
	b, _ := store.CreateRoom(ctx, "b", 5)
	user := uuid.New()

	_, err := store.InsertBooking(ctx, user, a.ID)
	require.NoError(t, err)

	_, err = store.InsertBooking(ctx, user, b.ID)
	assert.ErrorIs(t, err, ErrDuplicateBooking)

	_, err = store.InsertBooking(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateBookingRoom(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	from, _ := store.CreateRoom(ctx, "from", 1)
	to, _ := store.CreateRoom(ctx, "to", 1)

	b, err := store.InsertBooking(ctx, uuid.New(), from.ID)
	require.NoError(t, err)

	moved, err := store.UpdateBookingRoom(ctx, b.ID, to.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, moved.ID)
	assert.Equal(t, to.ID, moved.RoomID)

	n, _ := store.CountBookingsForRoom(ctx, from.ID)
	assert.Zero(t, n)
	n, _ = store.CountBookingsForRoom(ctx, to.ID)
	assert.Equal(t, 1, n)

	_, err = store.UpdateBookingRoom(ctx, uuid.New(), to.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.UpdateBookingRoom(ctx, b.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_WithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	room, _ := store.CreateRoom(ctx, "101", 3)
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(q Queries) error {
		if _, err := q.InsertBooking(ctx, uuid.New(), room.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := store.CountBookingsForRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "a failed transaction must leave no booking behind")
}

func TestMemoryStore_WithTxCommits(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	room, _ := store.CreateRoom(ctx, "101", 3)
	user := uuid.New()

	err := store.WithTx(ctx, func(q Queries) error {
		_, err := q.InsertBooking(ctx, user, room.ID)
		return err
	})
	require.NoError(t, err)

	b, err := store.FindBookingByUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, room.ID, b.RoomID)
}
