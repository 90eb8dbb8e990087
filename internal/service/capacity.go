package service

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/repository"
	"github.com/google/uuid"
)

// RemainingCapacity returns how many more bookings room accepts, counting
// occupants from q at call time. A booking equal to exclude that already sits
// in the room is not counted; pass uuid.Nil to count every occupant.
func RemainingCapacity(ctx context.Context, q repository.Queries, room *model.Room, exclude uuid.UUID) (int, error) {
	occupancy, err := q.CountBookingsForRoom(ctx, room.ID)
	if err != nil {
		return 0, fmt.Errorf("count bookings for room: %w", err)
	}

	if exclude != uuid.Nil {
		b, err := q.FindBookingByID(ctx, exclude)
		switch {
		case err == nil:
			if b.RoomID == room.ID {
				occupancy--
			}
		case isNotFound(err):
		default:
			return 0, fmt.Errorf("find excluded booking: %w", err)
		}
	}

	return room.Remaining(occupancy), nil
}
