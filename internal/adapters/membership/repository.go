package membership

import (
	"context"

	"github.com/roomate/household_ledger/internal/core/domain"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	portssvc "github.com/roomate/household_ledger/internal/core/ports/services"
)

// RepositoryOracle reads membership from the room_members table shared with the room service.
type RepositoryOracle struct {
	repo portsrepo.RoomMemberReader
}

var _ portssvc.MembershipOracle = (*RepositoryOracle)(nil)

func NewRepositoryOracle(repo portsrepo.RoomMemberReader) *RepositoryOracle {
	return &RepositoryOracle{repo: repo}
}

func (o *RepositoryOracle) ResolveMember(ctx context.Context, roomID string, userID string) (*domain.RoomMember, error) {
	return o.repo.FindRoomMember(ctx, roomID, userID)
}

func (o *RepositoryOracle) ListMembers(ctx context.Context, roomID string) ([]domain.RoomMember, error) {
	return o.repo.ListRoomMembers(ctx, roomID)
}
