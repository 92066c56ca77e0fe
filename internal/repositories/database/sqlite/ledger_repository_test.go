package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	"github.com/roomate/household_ledger/internal/repositories/database/sqlite"
	"github.com/roomate/household_ledger/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SQLiteLedgerRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo *sqlite.LedgerRepository
	base time.Time
}

func (s *SQLiteLedgerRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.base = time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)

	db, err := database.OpenSQLite(s.ctx, filepath.Join(s.T().TempDir(), "ledger.db"))
	s.Require().NoError(err)
	s.T().Cleanup(func() { db.Close() })
	s.Require().NoError(database.RunSQLiteMigrations(db))

	s.repo = sqlite.NewLedgerRepository(db)
}

func TestSQLiteLedgerRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteLedgerRepositoryTestSuite))
}

func (s *SQLiteLedgerRepositoryTestSuite) saveEntry(id string, offset time.Duration, status domain.EntryStatus) domain.LedgerEntry {
	desc := "shared"
	entry := domain.LedgerEntry{
		EntryID:     id,
		RoomID:      "room-1",
		CreatedBy:   "m-head",
		Title:       "Entry " + id,
		Description: &desc,
		EntryType:   domain.EntryTypeUtility,
		TotalAmount: decimal.RequireFromString("50.00"),
		SplitType:   domain.SplitEqual,
		Status:      status,
		CreatedAt:   s.base.Add(offset),
		UpdatedAt:   s.base.Add(offset),
	}
	s.Require().NoError(s.repo.SaveEntry(s.ctx, entry))
	return entry
}

func (s *SQLiteLedgerRepositoryTestSuite) assignSplits(entryID string, amounts map[string]string, order ...string) *domain.LedgerEntry {
	updated, err := s.repo.ReplaceSplits(s.ctx, entryID, func(e *domain.LedgerEntry) error {
		e.Splits = nil
		for _, memberID := range order {
			e.Splits = append(e.Splits, domain.NewLedgerSplit(entryID+"-"+memberID, entryID, memberID, decimal.RequireFromString(amounts[memberID]), nil))
		}
		e.Status = domain.EntryApproved
		e.UpdatedAt = s.base.Add(time.Hour)
		return nil
	})
	s.Require().NoError(err)
	return updated
}

func (s *SQLiteLedgerRepositoryTestSuite) TestSaveAndFindEntry() {
	due := s.base.Add(72 * time.Hour)
	entry := domain.LedgerEntry{
		EntryID:     "e1",
		RoomID:      "room-1",
		CreatedBy:   "m-head",
		Title:       "Internet",
		EntryType:   domain.EntryTypeInternet,
		TotalAmount: decimal.RequireFromString("39.99"),
		SplitType:   domain.SplitManual,
		Status:      domain.EntryPending,
		DueDate:     &due,
		CreatedAt:   s.base,
		UpdatedAt:   s.base,
	}
	s.Require().NoError(s.repo.SaveEntry(s.ctx, entry))

	found, err := s.repo.FindEntryByID(s.ctx, "e1")
	s.Require().NoError(err)
	s.Equal("Internet", found.Title)
	s.Nil(found.Description)
	s.True(found.TotalAmount.Equal(decimal.RequireFromString("39.99")))
	s.Require().NotNil(found.DueDate)
	s.True(found.DueDate.Equal(due))
	s.True(found.CreatedAt.Equal(s.base))
	s.Empty(found.Splits)

	s.ErrorIs(s.repo.SaveEntry(s.ctx, entry), apperrors.ErrConflict)

	_, err = s.repo.FindEntryByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SQLiteLedgerRepositoryTestSuite) TestReplaceSplits() {
	s.saveEntry("e1", 0, domain.EntryPending)
	s.assignSplits("e1", map[string]string{"m-b": "20.00", "m-a": "30.00"}, "m-b", "m-a")

	found, err := s.repo.FindEntryByID(s.ctx, "e1")
	s.Require().NoError(err)
	s.Equal(domain.EntryApproved, found.Status)
	s.Require().Len(found.Splits, 2)
	s.Equal("m-b", found.Splits[0].MemberID)
	s.Equal("m-a", found.Splits[1].MemberID)

	boom := errors.New("boom")
	_, err = s.repo.ReplaceSplits(s.ctx, "e1", func(e *domain.LedgerEntry) error {
		e.Splits = nil
		return boom
	})
	s.ErrorIs(err, boom)

	found, err = s.repo.FindEntryByID(s.ctx, "e1")
	s.Require().NoError(err)
	s.Len(found.Splits, 2)

	_, err = s.repo.ReplaceSplits(s.ctx, "missing", func(*domain.LedgerEntry) error { return nil })
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SQLiteLedgerRepositoryTestSuite) TestApplySplitPayment() {
	s.saveEntry("e1", 0, domain.EntryPending)
	s.assignSplits("e1", map[string]string{"m-a": "50.00"}, "m-a")

	paidAt := s.base.Add(2 * time.Hour)
	updated, err := s.repo.ApplySplitPayment(s.ctx, "e1-m-a", func(e *domain.LedgerEntry, split *domain.LedgerSplit) error {
		split.ApplyPayment(decimal.RequireFromString("50.00"), paidAt)
		e.RefreshPaymentStatus(paidAt)
		return nil
	})
	s.Require().NoError(err)
	s.Equal(domain.EntryPaid, updated.Status)

	split, err := s.repo.FindSplitByID(s.ctx, "e1-m-a")
	s.Require().NoError(err)
	s.Equal(domain.PaymentPaid, split.PaymentStatus)
	s.Require().NotNil(split.PaidAt)
	s.True(split.PaidAt.Equal(paidAt))

	_, err = s.repo.ApplySplitPayment(s.ctx, "missing", func(*domain.LedgerEntry, *domain.LedgerSplit) error { return nil })
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SQLiteLedgerRepositoryTestSuite) TestConcurrentPaymentsSerialize() {
	s.saveEntry("e1", 0, domain.EntryPending)
	s.assignSplits("e1", map[string]string{"m-a": "50.00"}, "m-a")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.ApplySplitPayment(s.ctx, "e1-m-a", func(e *domain.LedgerEntry, split *domain.LedgerSplit) error {
				split.ApplyPayment(decimal.RequireFromString("1.00"), s.base)
				e.RefreshPaymentStatus(s.base)
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	split, err := s.repo.FindSplitByID(s.ctx, "e1-m-a")
	s.Require().NoError(err)
	s.Equal("10.00", split.AmountPaid.StringFixed(2))
}

func (s *SQLiteLedgerRepositoryTestSuite) TestListEntriesByRoom() {
	for i := 0; i < 3; i++ {
		s.saveEntry(fmt.Sprintf("e%d", i), time.Duration(i)*time.Minute, domain.EntryPending)
	}
	s.saveEntry("cancelled", time.Hour, domain.EntryCancelled)
	s.assignSplits("e2", map[string]string{"m-a": "50.00"}, "m-a")

	page, next, err := s.repo.ListEntriesByRoom(s.ctx, "room-1", portsrepo.EntryListFilter{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("e2", page[0].EntryID)
	s.Len(page[0].Splits, 1)
	s.Equal("e1", page[1].EntryID)
	s.Require().NotNil(next)

	rest, next, err := s.repo.ListEntriesByRoom(s.ctx, "room-1", portsrepo.EntryListFilter{Limit: 2, NextToken: next})
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal("e0", rest[0].EntryID)
	s.Nil(next)

	status := domain.EntryCancelled
	cancelled, _, err := s.repo.ListEntriesByRoom(s.ctx, "room-1", portsrepo.EntryListFilter{Status: &status, IncludeCancelled: true})
	s.Require().NoError(err)
	s.Require().Len(cancelled, 1)
	s.Equal("cancelled", cancelled[0].EntryID)
}

func (s *SQLiteLedgerRepositoryTestSuite) TestSplitQueriesAndDelete() {
	s.saveEntry("e1", 0, domain.EntryPending)
	s.saveEntry("e2", time.Minute, domain.EntryPending)
	s.assignSplits("e1", map[string]string{"m-a": "25.00", "m-b": "25.00"}, "m-a", "m-b")
	s.assignSplits("e2", map[string]string{"m-a": "50.00"}, "m-a")
	s.Require().NoError(s.repo.UpdateEntryStatus(s.ctx, "e2", domain.EntryCancelled, s.base.Add(time.Hour)))

	all, err := s.repo.ListSplitsByRoom(s.ctx, "room-1", true)
	s.Require().NoError(err)
	s.Len(all, 3)

	active, err := s.repo.ListSplitsByRoom(s.ctx, "room-1", false)
	s.Require().NoError(err)
	s.Len(active, 2)

	mine, err := s.repo.ListMemberSplits(s.ctx, "room-1", "m-a", false)
	s.Require().NoError(err)
	s.Require().Len(mine, 2)
	s.Equal("e2", mine[0].Entry.EntryID)
	s.Equal("e1", mine[1].Entry.EntryID)

	s.Require().NoError(s.repo.DeleteEntry(s.ctx, "e1"))
	_, err = s.repo.FindSplitByID(s.ctx, "e1-m-a")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ErrorIs(s.repo.DeleteEntry(s.ctx, "e1"), apperrors.ErrNotFound)
	s.ErrorIs(s.repo.UpdateEntryStatus(s.ctx, "e1", domain.EntryCancelled, s.base), apperrors.ErrNotFound)
}
