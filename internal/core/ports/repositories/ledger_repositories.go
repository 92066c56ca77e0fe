package repositories

import (
	"context"
	"time"

	"github.com/roomate/household_ledger/internal/core/domain"
)

// EntryListFilter narrows ListEntriesByRoom.
type EntryListFilter struct {
	Status           *domain.EntryStatus
	IncludeCancelled bool
	Limit            int
	NextToken        *string
}

// EntryMutation changes a locked entry in place. Returning an error aborts the write.
type EntryMutation func(entry *domain.LedgerEntry) error

// SplitPayment changes a locked entry and one of its splits in place. Returning an error aborts the write.
type SplitPayment func(entry *domain.LedgerEntry, split *domain.LedgerSplit) error

// LedgerEntryReader defines read operations for ledger entries
type LedgerEntryReader interface {
	// FindEntryByID retrieves an entry together with all of its splits.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByRoom retrieves a room's entries, newest first, using token-based pagination.
	// Splits are loaded for every returned entry.
	ListEntriesByRoom(ctx context.Context, roomID string, filter EntryListFilter) ([]domain.LedgerEntry, *string, error)
}

// LedgerEntryWriter defines write operations for ledger entries
type LedgerEntryWriter interface {
	// SaveEntry inserts a new entry. Splits on the entry are ignored.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntryStatus sets the status of an entry.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedAt time.Time) error

	// DeleteEntry removes an entry and all of its splits.
	DeleteEntry(ctx context.Context, entryID string) error

	// ReplaceSplits locks the entry, lets mutate rewrite its header and splits, then persists
	// the header and swaps the old split rows for the new ones in the same transaction.
	ReplaceSplits(ctx context.Context, entryID string, mutate EntryMutation) (*domain.LedgerEntry, error)
}

// LedgerSplitReader defines read operations for ledger splits
type LedgerSplitReader interface {
	// FindSplitByID retrieves a single split.
	FindSplitByID(ctx context.Context, splitID string) (*domain.LedgerSplit, error)

	// ListSplitsByRoom retrieves every split of every entry in the room.
	ListSplitsByRoom(ctx context.Context, roomID string, includeCancelled bool) ([]domain.LedgerSplit, error)

	// ListMemberSplits retrieves a member's splits in a room with their entries, newest entry first.
	ListMemberSplits(ctx context.Context, roomID, memberID string, unpaidOnly bool) ([]domain.MemberSplit, error)
}

// LedgerSplitWriter defines write operations for ledger splits
type LedgerSplitWriter interface {
	// ApplySplitPayment locks the split's entry and all its splits, runs pay, then persists the
	// split and the entry header. Concurrent calls for the same entry are serialized.
	ApplySplitPayment(ctx context.Context, splitID string, pay SplitPayment) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
	LedgerSplitReader
	LedgerSplitWriter
}
