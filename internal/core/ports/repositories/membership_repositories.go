package repositories

import (
	"context"

	"github.com/roomate/household_ledger/internal/core/domain"
)

// RoomMemberReader reads room membership from storage owned by the room management system.
type RoomMemberReader interface {
	// FindRoomMember returns the membership of userID in roomID, or apperrors.ErrNotFound.
	FindRoomMember(ctx context.Context, roomID, userID string) (*domain.RoomMember, error)

	// ListRoomMembers returns the room's members ordered by join time, then member ID.
	ListRoomMembers(ctx context.Context, roomID string) ([]domain.RoomMember, error)
}
