package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	"github.com/roomate/household_ledger/internal/dto"
	"github.com/roomate/household_ledger/internal/utils/money"
	"github.com/roomate/household_ledger/internal/utils/pagination"
)

var entryTypePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// CreateEntry records a new PENDING entry with no splits.
func (s *ledgerService) CreateEntry(ctx context.Context, roomID string, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error) {
	creator, err := s.AuthorizeRoles(ctx, roomID, userID, domain.RoleLandlord, domain.RoleHeadRoommate)
	if err != nil {
		s.LogWarn(ctx, err, "Authorization failed for CreateEntry",
			slog.String("user_id", userID),
			slog.String("room_id", roomID))
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	if err := money.ValidatePositive(req.TotalAmount); err != nil {
		return nil, fmt.Errorf("%w: total amount: %v", apperrors.ErrValidation, err)
	}

	entryType := domain.EntryType(strings.ToUpper(strings.TrimSpace(string(req.EntryType))))
	if !entryTypePattern.MatchString(string(entryType)) {
		return nil, fmt.Errorf("%w: entry type %q is not a valid category", apperrors.ErrValidation, req.EntryType)
	}

	splitType := req.SplitType
	if splitType == "" {
		splitType = domain.SplitEqual
	}
	if !splitType.IsValid() {
		return nil, fmt.Errorf("%w: unknown split type %q", apperrors.ErrValidation, req.SplitType)
	}

	var description *string
	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d != "" {
			description = &d
		}
	}

	now := s.now()
	entry := domain.LedgerEntry{
		EntryID:     s.newID(),
		RoomID:      roomID,
		CreatedBy:   creator.MemberID,
		Title:       title,
		Description: description,
		EntryType:   entryType,
		TotalAmount: req.TotalAmount,
		SplitType:   splitType,
		Status:      domain.EntryPending,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		Splits:      []domain.LedgerSplit{},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save ledger entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("room_id", roomID))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("room_id", roomID),
		slog.String("total_amount", entry.TotalAmount.String()))
	return &entry, nil
}

// GetEntry retrieves an entry for any member of its room.
func (s *ledgerService) GetEntry(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error) {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ResolveCaller(ctx, entry.RoomID, userID); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves a page of a room's entries, newest first.
// CANCELLED entries are skipped unless requested explicitly or by status filter.
func (s *ledgerService) ListEntries(ctx context.Context, roomID string, userID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	if _, err := s.ResolveCaller(ctx, roomID, userID); err != nil {
		s.LogWarn(ctx, err, "Authorization failed for ListEntries",
			slog.String("user_id", userID),
			slog.String("room_id", roomID))
		return nil, err
	}

	filter := portsrepo.EntryListFilter{
		IncludeCancelled: params.IncludeCancelled,
		Limit:            pagination.NormalizeLimit(params.Limit),
		NextToken:        params.NextToken,
	}
	if params.Status != nil && *params.Status != "" {
		status := domain.EntryStatus(strings.ToUpper(string(*params.Status)))
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &status
		if status == domain.EntryCancelled {
			filter.IncludeCancelled = true
		}
	}
	if filter.NextToken != nil {
		if _, err := pagination.DecodeToken(*filter.NextToken); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByRoom(ctx, roomID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("room_id", roomID))
		return nil, err
	}

	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// CancelEntry moves an entry to CANCELLED from any status. Cancelling twice is a no-op.
func (s *ledgerService) CancelEntry(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error) {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	caller, err := s.ResolveCaller(ctx, entry.RoomID, userID)
	if err != nil {
		return nil, err
	}
	if caller.MemberID != entry.CreatedBy {
		if err := RequireRole(caller, domain.RoleHeadRoommate); err != nil {
			s.LogWarn(ctx, err, "Authorization failed for CancelEntry",
				slog.String("user_id", userID),
				slog.String("entry_id", entryID))
			return nil, fmt.Errorf("%w: only the head roommate or the entry creator can cancel", apperrors.ErrForbidden)
		}
	}

	if entry.IsCancelled() {
		return entry, nil
	}

	now := s.now()
	if err := s.ledgerRepo.UpdateEntryStatus(ctx, entryID, domain.EntryCancelled, now); err != nil {
		s.LogError(ctx, err, "Failed to cancel ledger entry", slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Status = domain.EntryCancelled
	entry.UpdatedAt = now

	s.LogInfo(ctx, "Ledger entry cancelled",
		slog.String("entry_id", entryID),
		slog.String("cancelled_by", caller.MemberID))
	return entry, nil
}

// DeleteEntry removes an entry and all of its splits.
func (s *ledgerService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return err
	}

	if _, err := s.AuthorizeRoles(ctx, entry.RoomID, userID, domain.RoleHeadRoommate); err != nil {
		s.LogWarn(ctx, err, "Authorization failed for DeleteEntry",
			slog.String("user_id", userID),
			slog.String("entry_id", entryID))
		return err
	}

	if err := s.ledgerRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete ledger entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Ledger entry deleted",
		slog.String("entry_id", entryID),
		slog.Int("split_count", len(entry.Splits)))
	return nil
}

func (s *ledgerService) findEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ledger entry %s", apperrors.ErrNotFound, entryID)
		}
		s.LogError(ctx, err, "Failed to find ledger entry", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}
