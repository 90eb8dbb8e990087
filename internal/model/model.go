// Package model defines the core domain types for the hotel booking system.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Room is a bookable hotel room. Capacity is the maximum number of
// bookings that may reference the room at the same time.
type Room struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// Remaining returns how many more bookings the room accepts given its
// current occupancy.
func (r *Room) Remaining(occupancy int) int {
	return r.Capacity - occupancy
}

// Booking associates exactly one user with one room.
type Booking struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	RoomID    uuid.UUID `json:"room_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingDetails is a user's current booking together with its room.
type BookingDetails struct {
	ID   uuid.UUID `json:"id"`
	Room Room      `json:"room"`
}

// BookingRequest is the payload for creating or moving a booking.
type BookingRequest struct {
	RoomID string `json:"roomId" validate:"required,uuid"`
}

// BookingResponse carries the identity of a created or moved booking.
type BookingResponse struct {
	ID uuid.UUID `json:"id"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BookingResult summarises the outcome of a single booking attempt.
// Used by the concurrent test harnesses.
type BookingResult struct {
	UserID    uuid.UUID
	BookingID uuid.UUID
	Error     error
}
