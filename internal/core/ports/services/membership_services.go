package services

import (
	"context"

	"github.com/roomate/household_ledger/internal/core/domain"
)

// MembershipOracle answers who belongs to a room and with which role.
// Room membership is owned by another system; the ledger only reads it.
type MembershipOracle interface {
	// ResolveMember returns the caller's membership in the room, or apperrors.ErrNotFound.
	ResolveMember(ctx context.Context, roomID string, userID string) (*domain.RoomMember, error)

	// ListMembers returns the room's members ordered by join time, then member ID.
	ListMembers(ctx context.Context, roomID string) ([]domain.RoomMember, error)
}
