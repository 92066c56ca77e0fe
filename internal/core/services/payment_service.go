package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	"github.com/roomate/household_ledger/internal/dto"
	"github.com/roomate/household_ledger/internal/utils/money"
)

// RecordPayment adds a payment to a split and rolls the owning entry's status forward.
// Payments larger than what remains on the split are rejected.
func (s *ledgerService) RecordPayment(ctx context.Context, splitID string, req dto.RecordPaymentRequest, userID string) (*domain.LedgerEntry, error) {
	if err := money.ValidatePositive(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: payment amount: %v", apperrors.ErrValidation, err)
	}

	split, err := s.ledgerRepo.FindSplitByID(ctx, splitID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ledger split %s", apperrors.ErrNotFound, splitID)
		}
		s.LogError(ctx, err, "Failed to find ledger split", slog.String("split_id", splitID))
		return nil, err
	}

	entry, err := s.findEntry(ctx, split.EntryID)
	if err != nil {
		return nil, err
	}

	caller, err := s.ResolveCaller(ctx, entry.RoomID, userID)
	if err != nil {
		return nil, err
	}
	if caller.MemberID != split.MemberID {
		if err := RequireRole(caller, domain.RoleHeadRoommate); err != nil {
			s.LogWarn(ctx, err, "Authorization failed for RecordPayment",
				slog.String("user_id", userID),
				slog.String("split_id", splitID))
			return nil, fmt.Errorf("%w: only the split owner or the head roommate can record payments", apperrors.ErrForbidden)
		}
	}

	notes := trimmedNotes(req.Notes)
	updated, err := s.ledgerRepo.ApplySplitPayment(ctx, splitID, func(locked *domain.LedgerEntry, lockedSplit *domain.LedgerSplit) error {
		if locked.IsCancelled() {
			return fmt.Errorf("%w: ledger entry %s is cancelled", apperrors.ErrConflict, locked.EntryID)
		}
		if len(locked.Splits) == 0 {
			return fmt.Errorf("%w: ledger entry %s has no splits", apperrors.ErrConflict, locked.EntryID)
		}
		remaining := lockedSplit.RemainingBalance()
		if req.Amount.GreaterThan(remaining) {
			return fmt.Errorf("%w: payment of %s exceeds remaining balance of %s",
				apperrors.ErrValidation, money.String(req.Amount), money.String(remaining))
		}

		now := s.now()
		lockedSplit.ApplyPayment(req.Amount, now)
		if notes != nil {
			lockedSplit.Notes = notes
		}
		locked.RefreshPaymentStatus(now)
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to record payment",
			slog.String("split_id", splitID),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("split_id", splitID),
		slog.String("entry_id", updated.EntryID),
		slog.String("amount", money.String(req.Amount)),
		slog.String("entry_status", string(updated.Status)))
	return updated, nil
}
