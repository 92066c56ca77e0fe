package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	"github.com/roomate/household_ledger/internal/dto"
	"github.com/roomate/household_ledger/internal/utils/money"
	"github.com/shopspring/decimal"
)

// AssignSplits replaces an entry's splits with explicit per-member amounts.
// The amounts must add up to the entry total exactly. The entry keeps its split type.
func (s *ledgerService) AssignSplits(ctx context.Context, entryID string, req dto.AssignSplitsRequest, userID string) (*domain.LedgerEntry, error) {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if _, err := s.AuthorizeRoles(ctx, entry.RoomID, userID, domain.RoleHeadRoommate); err != nil {
		s.LogWarn(ctx, err, "Authorization failed for AssignSplits",
			slog.String("user_id", userID),
			slog.String("entry_id", entryID))
		return nil, err
	}

	if err := checkSplitsReplaceable(entry); err != nil {
		return nil, err
	}

	if len(req.Splits) == 0 {
		return nil, fmt.Errorf("%w: at least one split is required", apperrors.ErrValidation)
	}

	members, err := s.Membership.ListMembers(ctx, entry.RoomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list room members", slog.String("room_id", entry.RoomID))
		return nil, err
	}
	inRoom := make(map[string]bool, len(members))
	for _, m := range members {
		inRoom[m.MemberID] = true
	}

	seen := make(map[string]bool, len(req.Splits))
	amounts := make([]decimal.Decimal, 0, len(req.Splits))
	splits := make([]domain.LedgerSplit, 0, len(req.Splits))
	for _, a := range req.Splits {
		if !inRoom[a.MemberID] {
			return nil, fmt.Errorf("%w: room member %s", apperrors.ErrNotFound, a.MemberID)
		}
		if seen[a.MemberID] {
			return nil, fmt.Errorf("%w: member %s appears more than once", apperrors.ErrValidation, a.MemberID)
		}
		seen[a.MemberID] = true

		if err := money.ValidatePositive(a.Amount); err != nil {
			return nil, fmt.Errorf("%w: split for member %s: %v", apperrors.ErrValidation, a.MemberID, err)
		}
		amounts = append(amounts, a.Amount)
		splits = append(splits, domain.NewLedgerSplit(s.newID(), entryID, a.MemberID, a.Amount, trimmedNotes(a.Notes)))
	}

	if sum := money.Sum(amounts...); !sum.Equal(entry.TotalAmount) {
		return nil, fmt.Errorf("%w: split amounts must equal total amount. Expected: %s, Got: %s",
			apperrors.ErrValidation, money.String(entry.TotalAmount), money.String(sum))
	}

	updated, err := s.replaceSplits(ctx, entryID, "", splits)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Manual splits assigned",
		slog.String("entry_id", entryID),
		slog.Int("split_count", len(splits)))
	return updated, nil
}

// CalculateEqualSplits divides the entry total evenly across every member except
// landlords and guests. The rounding residual goes to the first eligible member in
// membership order so the splits always add up to the total.
func (s *ledgerService) CalculateEqualSplits(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error) {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if _, err := s.AuthorizeRoles(ctx, entry.RoomID, userID, domain.RoleHeadRoommate); err != nil {
		s.LogWarn(ctx, err, "Authorization failed for CalculateEqualSplits",
			slog.String("user_id", userID),
			slog.String("entry_id", entryID))
		return nil, err
	}

	if err := checkSplitsReplaceable(entry); err != nil {
		return nil, err
	}

	members, err := s.Membership.ListMembers(ctx, entry.RoomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list room members", slog.String("room_id", entry.RoomID))
		return nil, err
	}

	eligible := make([]domain.RoomMember, 0, len(members))
	for _, m := range members {
		if m.SplitsEqually() {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: no eligible members to split between", apperrors.ErrValidation)
	}

	per, residual, err := money.SplitEvenly(entry.TotalAmount, len(eligible))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if first := per.Add(residual); !money.IsPositive(per) || !money.IsPositive(first) {
		return nil, fmt.Errorf("%w: %s is too small to split between %d members",
			apperrors.ErrValidation, money.String(entry.TotalAmount), len(eligible))
	}

	splits := make([]domain.LedgerSplit, len(eligible))
	for i, m := range eligible {
		amount := per
		if i == 0 {
			amount = per.Add(residual)
		}
		splits[i] = domain.NewLedgerSplit(s.newID(), entryID, m.MemberID, amount, nil)
	}

	updated, err := s.replaceSplits(ctx, entryID, domain.SplitEqual, splits)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Equal splits calculated",
		slog.String("entry_id", entryID),
		slog.Int("member_count", len(eligible)),
		slog.String("per_member", money.String(per)),
		slog.String("residual", money.String(residual)))
	return updated, nil
}

// replaceSplits swaps the entry's splits under the repository's entry lock and re-checks
// that nothing changed since the entry was read. An empty splitType leaves the entry's type as is.
func (s *ledgerService) replaceSplits(ctx context.Context, entryID string, splitType domain.SplitType, splits []domain.LedgerSplit) (*domain.LedgerEntry, error) {
	amounts := make([]decimal.Decimal, len(splits))
	for i := range splits {
		amounts[i] = splits[i].AmountOwed
	}
	sum := money.Sum(amounts...)

	updated, err := s.ledgerRepo.ReplaceSplits(ctx, entryID, func(locked *domain.LedgerEntry) error {
		if err := checkSplitsReplaceable(locked); err != nil {
			return err
		}
		if !sum.Equal(locked.TotalAmount) {
			return fmt.Errorf("%w: split amounts must equal total amount. Expected: %s, Got: %s",
				apperrors.ErrValidation, money.String(locked.TotalAmount), money.String(sum))
		}
		locked.Splits = splits
		if splitType != "" {
			locked.SplitType = splitType
		}
		locked.Status = domain.EntryApproved
		locked.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to replace splits", slog.String("entry_id", entryID))
		return nil, err
	}
	return updated, nil
}

// checkSplitsReplaceable rejects replacing splits that would drop payment history or revive a cancelled entry.
func checkSplitsReplaceable(entry *domain.LedgerEntry) error {
	if entry.IsCancelled() {
		return fmt.Errorf("%w: ledger entry %s is cancelled", apperrors.ErrConflict, entry.EntryID)
	}
	if entry.HasPayments() {
		return fmt.Errorf("%w: ledger entry %s already has payments recorded", apperrors.ErrConflict, entry.EntryID)
	}
	return nil
}

func trimmedNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	n := strings.TrimSpace(*notes)
	if n == "" {
		return nil
	}
	return &n
}
