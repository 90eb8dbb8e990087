package repository

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/google/uuid"
)

// MemoryStore keeps rooms and bookings in process memory. It honours the
// same contract as BookingStore: WithTx holds the store lock for the whole
// callback and restores the previous state if the callback fails, and
// inserts reject a second booking for the same user.
type MemoryStore struct {
	mu    sync.Mutex
	state memState
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: memState{
		rooms:    make(map[uuid.UUID]model.Room),
		bookings: make(map[uuid.UUID]model.Booking),
	}}
}

// CreateRoom adds a room with a generated UUID.
func (m *MemoryStore) CreateRoom(_ context.Context, name string, capacity int) (*model.Room, error) {
	room := model.Room{
		ID:        uuid.New(),
		Name:      name,
		Capacity:  capacity,
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.rooms[room.ID] = room
	return &room, nil
}

// WithTx runs fn with exclusive access to the store.
func (m *MemoryStore) WithTx(_ context.Context, fn func(q Queries) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(&m.state); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

func (m *MemoryStore) FindRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.FindRoom(ctx, roomID)
}

func (m *MemoryStore) CountBookingsForRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.CountBookingsForRoom(ctx, roomID)
}

func (m *MemoryStore) FindBookingByUser(ctx context.Context, userID uuid.UUID) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.FindBookingByUser(ctx, userID)
}

func (m *MemoryStore) FindBookingByID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.FindBookingByID(ctx, bookingID)
}

func (m *MemoryStore) InsertBooking(ctx context.Context, userID, roomID uuid.UUID) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.InsertBooking(ctx, userID, roomID)
}

func (m *MemoryStore) UpdateBookingRoom(ctx context.Context, bookingID, roomID uuid.UUID) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.UpdateBookingRoom(ctx, bookingID, roomID)
}

// memState implements Queries without locking; callers hold MemoryStore.mu.
type memState struct {
	rooms    map[uuid.UUID]model.Room
	bookings map[uuid.UUID]model.Booking
}

func (s *memState) clone() memState {
	return memState{rooms: maps.Clone(s.rooms), bookings: maps.Clone(s.bookings)}
}

func (s *memState) FindRoom(_ context.Context, roomID uuid.UUID) (*model.Room, error) {
	r, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *memState) CountBookingsForRoom(_ context.Context, roomID uuid.UUID) (int, error) {
	n := 0
	for _, b := range s.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (s *memState) FindBookingByUser(_ context.Context, userID uuid.UUID) (*model.Booking, error) {
	for _, b := range s.bookings {
		if b.UserID == userID {
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memState) FindBookingByID(_ context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (s *memState) InsertBooking(ctx context.Context, userID, roomID uuid.UUID) (*model.Booking, error) {
	if _, ok := s.rooms[roomID]; !ok {
		return nil, ErrNotFound
	}
	if _, err := s.FindBookingByUser(ctx, userID); err == nil {
		return nil, ErrDuplicateBooking
	}

	now := time.Now().UTC()
	b := model.Booking{
		ID:        uuid.New(),
		UserID:    userID,
		RoomID:    roomID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.bookings[b.ID] = b
	return &b, nil
}

func (s *memState) UpdateBookingRoom(_ context.Context, bookingID, roomID uuid.UUID) (*model.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	if _, ok := s.rooms[roomID]; !ok {
		return nil, ErrNotFound
	}
	b.RoomID = roomID
	b.UpdatedAt = time.Now().UTC()
	s.bookings[bookingID] = b
	return &b, nil
}
