package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(id, roomID string, createdAt time.Time, status domain.EntryStatus) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     id,
		RoomID:      roomID,
		CreatedBy:   "m-head",
		Title:       "Entry " + id,
		EntryType:   domain.EntryTypeRent,
		TotalAmount: decimal.RequireFromString("100.00"),
		SplitType:   domain.SplitEqual,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestListEntriesByRoom_PaginatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SaveEntry(ctx, newEntry(fmt.Sprintf("e%d", i), "room-1", base.Add(time.Duration(i)*time.Hour), domain.EntryPending)))
	}
	require.NoError(t, repo.SaveEntry(ctx, newEntry("cancelled", "room-1", base.Add(10*time.Hour), domain.EntryCancelled)))
	require.NoError(t, repo.SaveEntry(ctx, newEntry("other-room", "room-2", base, domain.EntryPending)))

	page1, next, err := repo.ListEntriesByRoom(ctx, "room-1", portsrepo.EntryListFilter{Limit: 2})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"e4", "e3"}, entryIDs(page1))

	page2, next, err := repo.ListEntriesByRoom(ctx, "room-1", portsrepo.EntryListFilter{Limit: 2, NextToken: next})
	require.NoError(t, err)
	assert.Equal(t, []string{"e2", "e1"}, entryIDs(page2))

	page3, next, err := repo.ListEntriesByRoom(ctx, "room-1", portsrepo.EntryListFilter{Limit: 2, NextToken: next})
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, []string{"e0"}, entryIDs(page3))

	withCancelled, _, err := repo.ListEntriesByRoom(ctx, "room-1", portsrepo.EntryListFilter{IncludeCancelled: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"cancelled"}, entryIDs(withCancelled))
}

func TestReplaceSplits_FailedMutationKeepsPreviousSplits(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()
	require.NoError(t, repo.SaveEntry(ctx, newEntry("e1", "room-1", time.Now(), domain.EntryPending)))

	_, err := repo.ReplaceSplits(ctx, "e1", func(e *domain.LedgerEntry) error {
		e.Splits = []domain.LedgerSplit{domain.NewLedgerSplit("s1", "e1", "m1", decimal.RequireFromString("100.00"), nil)}
		e.Status = domain.EntryApproved
		return nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.ReplaceSplits(ctx, "e1", func(e *domain.LedgerEntry) error {
		e.Splits = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, stored.Splits, 1)
	assert.Equal(t, "s1", stored.Splits[0].SplitID)
	assert.Equal(t, domain.EntryApproved, stored.Status)

	split, err := repo.FindSplitByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "m1", split.MemberID)
}

func TestApplySplitPayment_SerializesConcurrentPayments(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()
	require.NoError(t, repo.SaveEntry(ctx, newEntry("e1", "room-1", time.Now(), domain.EntryPending)))
	_, err := repo.ReplaceSplits(ctx, "e1", func(e *domain.LedgerEntry) error {
		e.Splits = []domain.LedgerSplit{domain.NewLedgerSplit("s1", "e1", "m1", decimal.RequireFromString("100.00"), nil)}
		return nil
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ApplySplitPayment(ctx, "s1", func(e *domain.LedgerEntry, s *domain.LedgerSplit) error {
				s.ApplyPayment(decimal.RequireFromString("1.00"), time.Now())
				e.RefreshPaymentStatus(time.Now())
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, stored.Splits[0].AmountPaid.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, domain.EntryPartiallyPaid, stored.Status)
}

func TestDeleteEntry_RemovesSplits(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()
	require.NoError(t, repo.SaveEntry(ctx, newEntry("e1", "room-1", time.Now(), domain.EntryPending)))
	_, err := repo.ReplaceSplits(ctx, "e1", func(e *domain.LedgerEntry) error {
		e.Splits = []domain.LedgerSplit{domain.NewLedgerSplit("s1", "e1", "m1", decimal.RequireFromString("100.00"), nil)}
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteEntry(ctx, "e1"))

	_, err = repo.FindEntryByID(ctx, "e1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindSplitByID(ctx, "s1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteEntry(ctx, "e1"), apperrors.ErrNotFound)
}

func entryIDs(entries []domain.LedgerEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	return ids
}
