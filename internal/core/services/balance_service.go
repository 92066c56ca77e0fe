package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
)

// MemberBalances aggregates owed and paid amounts for every non-landlord member of the room.
func (s *ledgerService) MemberBalances(ctx context.Context, roomID string, userID string) ([]domain.MemberBalance, error) {
	if _, err := s.ResolveCaller(ctx, roomID, userID); err != nil {
		return nil, err
	}

	members, err := s.Membership.ListMembers(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list room members", slog.String("room_id", roomID))
		return nil, err
	}

	byMember, err := s.splitsByMember(ctx, roomID)
	if err != nil {
		return nil, err
	}

	balances := make([]domain.MemberBalance, 0, len(members))
	for _, m := range members {
		if m.HasRole(domain.RoleLandlord) {
			continue
		}
		balances = append(balances, domain.NewMemberBalance(m, byMember[m.MemberID]))
	}
	return balances, nil
}

// MemberBalance aggregates the balance of one member of the room.
func (s *ledgerService) MemberBalance(ctx context.Context, roomID string, memberID string, userID string) (*domain.MemberBalance, error) {
	if _, err := s.ResolveCaller(ctx, roomID, userID); err != nil {
		return nil, err
	}

	target, err := s.findRoomMember(ctx, roomID, memberID)
	if err != nil {
		return nil, err
	}

	byMember, err := s.splitsByMember(ctx, roomID)
	if err != nil {
		return nil, err
	}

	balance := domain.NewMemberBalance(*target, byMember[memberID])
	return &balance, nil
}

// MemberSplits lists one member's splits in the room.
func (s *ledgerService) MemberSplits(ctx context.Context, roomID string, memberID string, unpaidOnly bool, userID string) ([]domain.MemberSplit, error) {
	if _, err := s.ResolveCaller(ctx, roomID, userID); err != nil {
		return nil, err
	}
	if _, err := s.findRoomMember(ctx, roomID, memberID); err != nil {
		return nil, err
	}

	splits, err := s.ledgerRepo.ListMemberSplits(ctx, roomID, memberID, unpaidOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list member splits",
			slog.String("room_id", roomID),
			slog.String("member_id", memberID))
		return nil, err
	}
	return splits, nil
}

func (s *ledgerService) findRoomMember(ctx context.Context, roomID, memberID string) (*domain.RoomMember, error) {
	members, err := s.Membership.ListMembers(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list room members", slog.String("room_id", roomID))
		return nil, err
	}
	for i := range members {
		if members[i].MemberID == memberID {
			return &members[i], nil
		}
	}
	return nil, fmt.Errorf("%w: member %s in room %s", apperrors.ErrNotFound, memberID, roomID)
}

func (s *ledgerService) splitsByMember(ctx context.Context, roomID string) (map[string][]domain.LedgerSplit, error) {
	splits, err := s.ledgerRepo.ListSplitsByRoom(ctx, roomID, !s.excludeCancelledBalances)
	if err != nil {
		s.LogError(ctx, err, "Failed to list room splits", slog.String("room_id", roomID))
		return nil, err
	}
	byMember := make(map[string][]domain.LedgerSplit)
	for _, split := range splits {
		byMember[split.MemberID] = append(byMember[split.MemberID], split)
	}
	return byMember, nil
}
