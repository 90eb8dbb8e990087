package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errStore = errors.New("store unavailable")

func newStore() *repository.MemoryStore {
	return repository.NewMemoryStore()
}

func newService(store repository.Store) *BookingService {
	return NewBookingService(store, zap.NewNop())
}

func mustRoom(t *testing.T, store *repository.MemoryStore, name string, capacity int) *model.Room {
	t.Helper()
	room, err := store.CreateRoom(context.Background(), name, capacity)
	require.NoError(t, err)
	return room
}

func mustBook(t *testing.T, svc *BookingService, userID, roomID uuid.UUID) uuid.UUID {
	t.Helper()
	id, err := svc.CreateBooking(context.Background(), userID, roomID)
	require.NoError(t, err)
	return id
}

// faultyQueries fails the named operation with errStore. With hideExisting
// set, FindBookingByUser never finds anything, as a concurrent caller that
// read before another's insert committed would see.
type faultyQueries struct {
	repository.Queries
	failOn       string
	hideExisting bool
}

func (f *faultyQueries) FindRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	if f.failOn == "FindRoom" {
		return nil, errStore
	}
	return f.Queries.FindRoom(ctx, roomID)
}

func (f *faultyQueries) CountBookingsForRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	if f.failOn == "CountBookingsForRoom" {
		return 0, errStore
	}
	return f.Queries.CountBookingsForRoom(ctx, roomID)
}

func (f *faultyQueries) FindBookingByUser(ctx context.Context, userID uuid.UUID) (*model.Booking, error) {
	if f.failOn == "FindBookingByUser" {
		return nil, errStore
	}
	if f.hideExisting {
		return nil, repository.ErrNotFound
	}
	return f.Queries.FindBookingByUser(ctx, userID)
}

func (f *faultyQueries) FindBookingByID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	if f.failOn == "FindBookingByID" {
		return nil, errStore
	}
	return f.Queries.FindBookingByID(ctx, bookingID)
}

func (f *faultyQueries) InsertBooking(ctx context.Context, userID, roomID uuid.UUID) (*model.Booking, error) {
	if f.failOn == "InsertBooking" {
		return nil, errStore
	}
	return f.Queries.InsertBooking(ctx, userID, roomID)
}

func (f *faultyQueries) UpdateBookingRoom(ctx context.Context, bookingID, roomID uuid.UUID) (*model.Booking, error) {
	if f.failOn == "UpdateBookingRoom" {
		return nil, errStore
	}
	return f.Queries.UpdateBookingRoom(ctx, bookingID, roomID)
}

// faultyStore wraps a MemoryStore, injecting faults both outside and inside transactions.
type faultyStore struct {
	faultyQueries
	mem *repository.MemoryStore
}

func newFaultyStore(failOn string) *faultyStore {
	mem := repository.NewMemoryStore()
	return &faultyStore{faultyQueries: faultyQueries{Queries: mem, failOn: failOn}, mem: mem}
}

func (f *faultyStore) WithTx(ctx context.Context, fn func(q repository.Queries) error) error {
	return f.mem.WithTx(ctx, func(q repository.Queries) error {
		return fn(&faultyQueries{Queries: q, failOn: f.failOn, hideExisting: f.hideExisting})
	})
}

// kinds reports which failure kinds err matches.
func kinds(err error) []error {
	var matched []error
	for _, k := range []error{ErrNotFound, ErrBusinessRule, ErrUnauthorized} {
		if errors.Is(err, k) {
			matched = append(matched, k)
		}
	}
	return matched
}
