// Package service implements the booking allocation rules: room capacity,
// one booking per user, and owner-only reassignment.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService decides whether a booking may be created or moved and
// performs the write. Checks and write for one call run inside a single
// store transaction, so they are atomic with respect to concurrent calls.
type BookingService struct {
	store repository.Store
	log   *zap.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(store repository.Store, log *zap.Logger) *BookingService {
	return &BookingService{store: store, log: log}
}

// GetCurrentBooking returns the caller's booking with its room, or
// ErrBookingNotFound when the user holds none.
func (s *BookingService) GetCurrentBooking(ctx context.Context, userID uuid.UUID) (*model.BookingDetails, error) {
	b, err := s.store.FindBookingByUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	room, err := s.store.FindRoom(ctx, b.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get booked room: %w", err)
	}
	return &model.BookingDetails{ID: b.ID, Room: *room}, nil
}

// CreateBooking books roomID for userID and returns the new booking's id.
//
// Checks, in order: the room exists (ErrRoomNotFound), the room has a free
// place (ErrRoomFull), the user holds no booking yet (ErrDuplicateBooking).
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uuid.UUID) (uuid.UUID, error) {
	var booking *model.Booking
	err := s.store.WithTx(ctx, func(q repository.Queries) error {
		room, err := s.lockRoomWithSpace(ctx, q, roomID, uuid.Nil)
		if err != nil {
			return err
		}

		switch _, err := q.FindBookingByUser(ctx, userID); {
		case err == nil:
			return ErrDuplicateBooking
		case !isNotFound(err):
			return fmt.Errorf("check existing booking: %w", err)
		}

		booking, err = q.InsertBooking(ctx, userID, room.ID)
		switch {
		case errors.Is(err, repository.ErrDuplicateBooking):
			return ErrDuplicateBooking
		case isNotFound(err):
			return ErrRoomNotFound
		case err != nil:
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("create booking", err, zap.Stringer("user_id", userID), zap.Stringer("room_id", roomID))
		return uuid.Nil, err
	}

	s.log.Info("booking created",
		zap.Stringer("booking_id", booking.ID),
		zap.Stringer("user_id", userID),
		zap.Stringer("room_id", roomID),
	)
	return booking.ID, nil
}

// ReassignBooking moves bookingID to roomID on behalf of userID and returns
// the (unchanged) booking id.
//
// Checks, in order: the target room exists (ErrRoomNotFound), it has a free
// place (ErrRoomFull), the booking exists (ErrBookingNotFound), the booking
// belongs to userID (ErrNotBookingOwner). A booking already in the target
// room does not count against that room's capacity.
func (s *BookingService) ReassignBooking(ctx context.Context, userID, roomID, bookingID uuid.UUID) (uuid.UUID, error) {
	err := s.store.WithTx(ctx, func(q repository.Queries) error {
		room, err := s.lockRoomWithSpace(ctx, q, roomID, bookingID)
		if err != nil {
			return err
		}

		b, err := q.FindBookingByID(ctx, bookingID)
		if err != nil {
			if isNotFound(err) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("get booking: %w", err)
		}
		if b.UserID != userID {
			return ErrNotBookingOwner
		}

		if _, err := q.UpdateBookingRoom(ctx, b.ID, room.ID); err != nil {
			if isNotFound(err) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("update booking room: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("reassign booking", err,
			zap.Stringer("user_id", userID),
			zap.Stringer("room_id", roomID),
			zap.Stringer("booking_id", bookingID),
		)
		return uuid.Nil, err
	}

	s.log.Info("booking reassigned",
		zap.Stringer("booking_id", bookingID),
		zap.Stringer("user_id", userID),
		zap.Stringer("room_id", roomID),
	)
	return bookingID, nil
}

// lockRoomWithSpace loads the room (locking it inside a transaction) and
// verifies at least one place is free, ignoring exclude's own occupancy.
func (s *BookingService) lockRoomWithSpace(ctx context.Context, q repository.Queries, roomID, exclude uuid.UUID) (*model.Room, error) {
	room, err := q.FindRoom(ctx, roomID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	remaining, err := RemainingCapacity(ctx, q, room, exclude)
	if err != nil {
		return nil, err
	}
	if remaining < 1 {
		return nil, ErrRoomFull
	}
	return room, nil
}

// logFailure records expected rejections at debug and store failures at error.
func (s *BookingService) logFailure(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrBusinessRule) || errors.Is(err, ErrUnauthorized) {
		s.log.Debug(op+" rejected", fields...)
		return
	}
	s.log.Error(op+" failed", fields...)
}
