package services

import (
	"context"

	"github.com/roomate/household_ledger/internal/core/domain"
	"github.com/roomate/household_ledger/internal/dto"
)

// LedgerEntryReaderSvc defines read operations for ledger entries
type LedgerEntryReaderSvc interface {
	// GetEntry retrieves an entry with its splits. The caller must belong to the entry's room.
	GetEntry(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of a room's entries, newest first.
	ListEntries(ctx context.Context, roomID string, userID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)
}

// LedgerEntryWriterSvc defines lifecycle operations for ledger entries
type LedgerEntryWriterSvc interface {
	// CreateEntry records a new PENDING entry. Only a LANDLORD or HEAD_ROOMMATE may create entries.
	CreateEntry(ctx context.Context, roomID string, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error)

	// CancelEntry moves an entry to CANCELLED. Allowed for the HEAD_ROOMMATE or the entry's creator.
	CancelEntry(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error)

	// DeleteEntry removes an entry and its splits. Only the HEAD_ROOMMATE may delete.
	DeleteEntry(ctx context.Context, entryID string, userID string) error
}

// SplitAssignmentSvc defines the operations that populate an entry's splits
type SplitAssignmentSvc interface {
	// AssignSplits replaces the entry's splits with the given per-member amounts.
	AssignSplits(ctx context.Context, entryID string, req dto.AssignSplitsRequest, userID string) (*domain.LedgerEntry, error)

	// CalculateEqualSplits replaces the entry's splits with an equal division across eligible members.
	CalculateEqualSplits(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error)
}

// PaymentRecorderSvc defines payment operations against splits
type PaymentRecorderSvc interface {
	// RecordPayment applies a payment to a split and returns the owning entry after the status cascade.
	RecordPayment(ctx context.Context, splitID string, req dto.RecordPaymentRequest, userID string) (*domain.LedgerEntry, error)
}

// BalanceSvc defines read-only balance aggregation for a room
type BalanceSvc interface {
	// MemberBalances returns one balance per non-landlord member, in membership order.
	MemberBalances(ctx context.Context, roomID string, userID string) ([]domain.MemberBalance, error)

	// MemberBalance returns the balance of a single member of the room.
	MemberBalance(ctx context.Context, roomID string, memberID string, userID string) (*domain.MemberBalance, error)

	// MemberSplits lists a member's splits in the room, optionally only those not yet paid.
	MemberSplits(ctx context.Context, roomID string, memberID string, unpaidOnly bool, userID string) ([]domain.MemberSplit, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerEntryReaderSvc
	LedgerEntryWriterSvc
	SplitAssignmentSvc
	PaymentRecorderSvc
	BalanceSvc
}
