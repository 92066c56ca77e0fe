// Package memory keeps the ledger in process memory. It backs the memory storage
// driver and the service test suites.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	"github.com/roomate/household_ledger/internal/utils/pagination"
)

// LedgerRepository is a mutex-guarded ledger store. Every method works on copies so
// callers never share slices with the store.
type LedgerRepository struct {
	mu         sync.Mutex
	entries    map[string]*domain.LedgerEntry
	splitEntry map[string]string // split ID -> entry ID
}

// NewLedgerRepository creates an empty store.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		entries:    make(map[string]*domain.LedgerEntry),
		splitEntry: make(map[string]string),
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) SaveEntry(_ context.Context, entry domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[entry.EntryID]; exists {
		return apperrors.NewConflictError("ledger entry " + entry.EntryID + " already exists")
	}
	entry.Splits = []domain.LedgerSplit{}
	r.entries[entry.EntryID] = cloneEntry(&entry)
	return nil
}

func (r *LedgerRepository) FindEntryByID(_ context.Context, entryID string) (*domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cloneEntry(entry), nil
}

func (r *LedgerRepository) ListEntriesByRoom(_ context.Context, roomID string, filter portsrepo.EntryListFilter) ([]domain.LedgerEntry, *string, error) {
	var cursor *pagination.Cursor
	if filter.NextToken != nil {
		c, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}
	limit := pagination.NormalizeLimit(filter.Limit)

	r.mu.Lock()
	matched := make([]domain.LedgerEntry, 0)
	for _, e := range r.entries {
		if e.RoomID != roomID {
			continue
		}
		if e.Status == domain.EntryCancelled && !filter.IncludeCancelled {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if cursor != nil && !cursor.After(e.CreatedAt, e.EntryID) {
			continue
		}
		matched = append(matched, *cloneEntry(e))
	}
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].EntryID > matched[j].EntryID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	var nextToken *string
	if len(matched) > limit {
		matched = matched[:limit]
		last := matched[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextToken = &token
	}
	return matched, nextToken, nil
}

func (r *LedgerRepository) UpdateEntryStatus(_ context.Context, entryID string, status domain.EntryStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	entry.Status = status
	entry.UpdatedAt = updatedAt
	return nil
}

func (r *LedgerRepository) DeleteEntry(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	for _, s := range entry.Splits {
		delete(r.splitEntry, s.SplitID)
	}
	delete(r.entries, entryID)
	return nil
}

func (r *LedgerRepository) ReplaceSplits(_ context.Context, entryID string, mutate portsrepo.EntryMutation) (*domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	working := cloneEntry(current)
	if err := mutate(working); err != nil {
		return nil, err
	}

	for _, s := range current.Splits {
		delete(r.splitEntry, s.SplitID)
	}
	for i := range working.Splits {
		working.Splits[i].EntryID = entryID
		r.splitEntry[working.Splits[i].SplitID] = entryID
	}
	r.entries[entryID] = cloneEntry(working)
	return working, nil
}

func (r *LedgerRepository) FindSplitByID(_ context.Context, splitID string) (*domain.LedgerSplit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entryID, ok := r.splitEntry[splitID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	split, ok := r.entries[entryID].SplitByID(splitID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := cloneSplit(*split)
	return &cp, nil
}

func (r *LedgerRepository) ListSplitsByRoom(_ context.Context, roomID string, includeCancelled bool) ([]domain.LedgerSplit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	splits := make([]domain.LedgerSplit, 0)
	for _, e := range r.entries {
		if e.RoomID != roomID || (!includeCancelled && e.IsCancelled()) {
			continue
		}
		for _, s := range e.Splits {
			splits = append(splits, cloneSplit(s))
		}
	}
	return splits, nil
}

func (r *LedgerRepository) ListMemberSplits(_ context.Context, roomID, memberID string, unpaidOnly bool) ([]domain.MemberSplit, error) {
	r.mu.Lock()
	result := make([]domain.MemberSplit, 0)
	for _, e := range r.entries {
		if e.RoomID != roomID {
			continue
		}
		for _, s := range e.Splits {
			if s.MemberID != memberID || (unpaidOnly && s.IsPaid()) {
				continue
			}
			header := *e
			header.Splits = nil
			result = append(result, domain.MemberSplit{Split: cloneSplit(s), Entry: header})
		}
	}
	r.mu.Unlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Entry, result[j].Entry
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.EntryID > b.EntryID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return result, nil
}

func (r *LedgerRepository) ApplySplitPayment(_ context.Context, splitID string, pay portsrepo.SplitPayment) (*domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entryID, ok := r.splitEntry[splitID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	working := cloneEntry(r.entries[entryID])
	split, ok := working.SplitByID(splitID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if err := pay(working, split); err != nil {
		return nil, err
	}
	r.entries[entryID] = working
	return cloneEntry(working), nil
}

func cloneEntry(e *domain.LedgerEntry) *domain.LedgerEntry {
	cp := *e
	if e.Description != nil {
		d := *e.Description
		cp.Description = &d
	}
	if e.DueDate != nil {
		d := *e.DueDate
		cp.DueDate = &d
	}
	cp.Splits = make([]domain.LedgerSplit, len(e.Splits))
	for i, s := range e.Splits {
		cp.Splits[i] = cloneSplit(s)
	}
	return &cp
}

func cloneSplit(s domain.LedgerSplit) domain.LedgerSplit {
	if s.PaidAt != nil {
		t := *s.PaidAt
		s.PaidAt = &t
	}
	if s.Notes != nil {
		n := *s.Notes
		s.Notes = &n
	}
	return s
}
