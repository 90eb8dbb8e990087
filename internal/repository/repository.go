// Package repository implements the booking store used by the allocation
// engine. BookingStore talks to PostgreSQL through pgx directly (no ORM);
// MemoryStore is a drop-in in-process implementation of the same contract.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested room or booking does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateBooking is returned when a user would end up holding two bookings.
var ErrDuplicateBooking = errors.New("user already holds a booking")

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Queries is the read/write surface the allocation engine needs from storage.
// Lookups report absence with ErrNotFound.
type Queries interface {
	FindRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error)
	CountBookingsForRoom(ctx context.Context, roomID uuid.UUID) (int, error)
	FindBookingByUser(ctx context.Context, userID uuid.UUID) (*model.Booking, error)
	FindBookingByID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error)
	InsertBooking(ctx context.Context, userID, roomID uuid.UUID) (*model.Booking, error)
	UpdateBookingRoom(ctx context.Context, bookingID, roomID uuid.UUID) (*model.Booking, error)
}

// Store is a Queries that can also run a group of queries as one atomic unit.
// Writes made inside fn are discarded when fn returns an error.
type Store interface {
	Queries
	WithTx(ctx context.Context, fn func(q Queries) error) error
}

var (
	_ Store = (*BookingStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BookingStore handles persistence for rooms and bookings in PostgreSQL.
type BookingStore struct {
	pgQueries
	pool *pgxpool.Pool
}

// NewBookingStore constructs a BookingStore.
func NewBookingStore(pool *pgxpool.Pool) *BookingStore {
	return &BookingStore{pgQueries: pgQueries{db: pool}, pool: pool}
}

// WithTx runs fn inside a single transaction.
//
// Inside the transaction FindRoom and FindBookingByID take row-level locks
// (SELECT ... FOR UPDATE). Every create or reassign targeting a room locks that
// room's row first, so concurrent capacity checks for one room run one at a
// time and each sees the bookings committed by the previous holder:
//
//	tx A: SELECT ... FROM rooms WHERE id = R FOR UPDATE   → lock acquired
//	tx B: SELECT ... FROM rooms WHERE id = R FOR UPDATE   → blocks
//	tx A: COUNT = C-1, INSERT booking, COMMIT             → lock released
//	tx B: COUNT = C → room full, ROLLBACK
//
// Two bookings for the same user in different rooms do not share a room lock;
// the bookings_user_id_key unique index rejects the second insert instead.
func (s *BookingStore) WithTx(ctx context.Context, fn func(q Queries) error) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(&pgQueries{db: tx, lock: true}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CreateRoom inserts a new room with a generated UUID.
func (s *BookingStore) CreateRoom(ctx context.Context, name string, capacity int) (*model.Room, error) {
	room := &model.Room{
		ID:        uuid.New(),
		Name:      name,
		Capacity:  capacity,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO rooms (id, name, capacity, created_at)
		 VALUES ($1, $2, $3, $4)`,
		room.ID, room.Name, room.Capacity, room.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}
	return room, nil
}

type pgQueries struct {
	db   querier
	lock bool
}

func (q *pgQueries) forUpdate(sql string) string {
	if q.lock {
		return sql + " FOR UPDATE"
	}
	return sql
}

// FindRoom returns a room or ErrNotFound.
func (q *pgQueries) FindRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	var r model.Room
	err := q.db.QueryRow(ctx,
		q.forUpdate(`SELECT id, name, capacity, created_at FROM rooms WHERE id = $1`),
		roomID,
	).Scan(&r.ID, &r.Name, &r.Capacity, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &r, nil
}

// CountBookingsForRoom returns the number of bookings currently referencing the room.
func (q *pgQueries) CountBookingsForRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	var n int
	err := q.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_id = $1`,
		roomID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

// FindBookingByUser returns the user's booking or ErrNotFound.
func (q *pgQueries) FindBookingByUser(ctx context.Context, userID uuid.UUID) (*model.Booking, error) {
	return q.scanBooking(ctx,
		`SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE user_id = $1`,
		userID,
	)
}

// FindBookingByID returns a booking or ErrNotFound.
func (q *pgQueries) FindBookingByID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	return q.scanBooking(ctx,
		q.forUpdate(`SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = $1`),
		bookingID,
	)
}

// InsertBooking creates a booking for the user in the room.
func (q *pgQueries) InsertBooking(ctx context.Context, userID, roomID uuid.UUID) (*model.Booking, error) {
	now := time.Now().UTC()
	b := &model.Booking{
		ID:        uuid.New(),
		UserID:    userID,
		RoomID:    roomID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := q.db.Exec(ctx,
		`INSERT INTO bookings (id, user_id, room_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.UserID, b.RoomID, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return nil, translateWriteError("insert booking", err)
	}
	return b, nil
}

// UpdateBookingRoom moves the booking to another room and returns the updated record.
func (q *pgQueries) UpdateBookingRoom(ctx context.Context, bookingID, roomID uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := q.db.QueryRow(ctx,
		`UPDATE bookings SET room_id = $2, updated_at = $3
		 WHERE id = $1
		 RETURNING id, user_id, room_id, created_at, updated_at`,
		bookingID, roomID, time.Now().UTC(),
	).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, translateWriteError("update booking", err)
	}
	return &b, nil
}

func (q *pgQueries) scanBooking(ctx context.Context, sql string, arg uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := q.db.QueryRow(ctx, sql, arg).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// translateWriteError maps constraint violations that mirror domain rules
// onto the package sentinels; everything else is wrapped unchanged.
func translateWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == "bookings_user_id_key" {
				return ErrDuplicateBooking
			}
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
