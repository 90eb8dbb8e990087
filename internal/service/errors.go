package service

import (
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
)

// Failure kinds. Every error returned by BookingService matches at most one
// of them with errors.Is; store failures match none.
var (
	ErrNotFound     = errors.New("not found")
	ErrBusinessRule = errors.New("business rule violation")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrRoomNotFound     = fmt.Errorf("room %w", ErrNotFound)
	ErrBookingNotFound  = fmt.Errorf("booking %w", ErrNotFound)
	ErrRoomFull         = fmt.Errorf("%w: room is full", ErrBusinessRule)
	ErrDuplicateBooking = fmt.Errorf("%w: user already holds a booking", ErrBusinessRule)
	ErrNotBookingOwner  = fmt.Errorf("%w: booking belongs to another user", ErrUnauthorized)
)

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
