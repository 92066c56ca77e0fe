package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/roomate/household_ledger/internal/adapters/membership"
	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	portssvc "github.com/roomate/household_ledger/internal/core/ports/services"
	"github.com/roomate/household_ledger/internal/core/services"
	"github.com/roomate/household_ledger/internal/dto"
	"github.com/roomate/household_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testRoomID = "room-1"

var (
	userLandlord = "u-landlord"
	userHead     = "u-head"
	userAlice    = "u-alice"
	userBob      = "u-bob"
	userGuest    = "u-guest"
	userOutsider = "u-outsider"
)

func testMembers() []domain.RoomMember {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.RoomMember{
		{MemberID: "m-guest", RoomID: testRoomID, UserID: userGuest, DisplayName: "Gus", Role: domain.RoleGuest, JoinedAt: base.Add(4 * time.Hour)},
		{MemberID: "m-bob", RoomID: testRoomID, UserID: userBob, DisplayName: "Bob", Role: domain.RoleRoommate, JoinedAt: base.Add(3 * time.Hour)},
		{MemberID: "m-alice", RoomID: testRoomID, UserID: userAlice, DisplayName: "Alice", Role: domain.RoleRoommate, JoinedAt: base.Add(2 * time.Hour)},
		{MemberID: "m-head", RoomID: testRoomID, UserID: userHead, DisplayName: "Hanna", Role: domain.RoleHeadRoommate, JoinedAt: base.Add(time.Hour)},
		{MemberID: "m-landlord", RoomID: testRoomID, UserID: userLandlord, DisplayName: "Lars", Role: domain.RoleLandlord, JoinedAt: base},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// LedgerServiceTestSuite runs the ledger service against the in-memory repository.
type LedgerServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *memory.LedgerRepository
	service portssvc.LedgerSvcFacade
	clock   time.Time
	ids     int
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = memory.NewLedgerRepository()
	s.clock = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.ids = 0
	s.service = s.newService()
}

func (s *LedgerServiceTestSuite) newService(opts ...services.LedgerServiceOption) portssvc.LedgerSvcFacade {
	return s.newServiceWithOracle(membership.NewStaticOracle(testMembers()), opts...)
}

func (s *LedgerServiceTestSuite) newServiceWithOracle(oracle portssvc.MembershipOracle, opts ...services.LedgerServiceOption) portssvc.LedgerSvcFacade {
	opts = append([]services.LedgerServiceOption{
		services.WithClock(func() time.Time {
			s.clock = s.clock.Add(time.Minute)
			return s.clock
		}),
		services.WithIDGenerator(func() string {
			s.ids++
			return fmt.Sprintf("id-%03d", s.ids)
		}),
	}, opts...)
	return services.NewLedgerService(s.repo, oracle, opts...)
}

func (s *LedgerServiceTestSuite) createEntry(total string) *domain.LedgerEntry {
	entry, err := s.service.CreateEntry(s.ctx, testRoomID, dto.CreateLedgerEntryRequest{
		Title:       "March rent",
		EntryType:   "rent",
		TotalAmount: dec(total),
	}, userHead)
	s.Require().NoError(err)
	return entry
}

func (s *LedgerServiceTestSuite) splitFor(entry *domain.LedgerEntry, memberID string) domain.LedgerSplit {
	for _, split := range entry.Splits {
		if split.MemberID == memberID {
			return split
		}
	}
	s.FailNow("split not found", "member %s", memberID)
	return domain.LedgerSplit{}
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestCreateEntry_Defaults() {
	desc := "  paid to landlord  "
	entry, err := s.service.CreateEntry(s.ctx, testRoomID, dto.CreateLedgerEntryRequest{
		Title:       "  Electricity ",
		Description: &desc,
		EntryType:   "utility",
		TotalAmount: dec("84.20"),
	}, userLandlord)
	s.Require().NoError(err)

	s.Equal("Electricity", entry.Title)
	s.Equal("paid to landlord", *entry.Description)
	s.Equal(domain.EntryTypeUtility, entry.EntryType)
	s.Equal(domain.SplitEqual, entry.SplitType)
	s.Equal(domain.EntryPending, entry.Status)
	s.Equal("m-landlord", entry.CreatedBy)
	s.Empty(entry.Splits)

	stored, err := s.service.GetEntry(s.ctx, entry.EntryID, userBob)
	s.Require().NoError(err)
	s.Equal(entry.EntryID, stored.EntryID)
}

func (s *LedgerServiceTestSuite) TestCreateEntry_Authorization() {
	req := dto.CreateLedgerEntryRequest{Title: "Rent", EntryType: "RENT", TotalAmount: dec("10.00")}

	_, err := s.service.CreateEntry(s.ctx, testRoomID, req, userAlice)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.service.CreateEntry(s.ctx, testRoomID, req, userOutsider)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.service.CreateEntry(s.ctx, testRoomID, req, "")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *LedgerServiceTestSuite) TestCreateEntry_Validation() {
	tests := []struct {
		name string
		req  dto.CreateLedgerEntryRequest
	}{
		{name: "blank title", req: dto.CreateLedgerEntryRequest{Title: "  ", EntryType: "RENT", TotalAmount: dec("1")}},
		{name: "zero amount", req: dto.CreateLedgerEntryRequest{Title: "Rent", EntryType: "RENT", TotalAmount: dec("0")}},
		{name: "negative amount", req: dto.CreateLedgerEntryRequest{Title: "Rent", EntryType: "RENT", TotalAmount: dec("-5")}},
		{name: "three decimals", req: dto.CreateLedgerEntryRequest{Title: "Rent", EntryType: "RENT", TotalAmount: dec("1.005")}},
		{name: "above storable maximum", req: dto.CreateLedgerEntryRequest{Title: "Rent", EntryType: "RENT", TotalAmount: dec("10000000000.00")}},
		{name: "bad entry type", req: dto.CreateLedgerEntryRequest{Title: "Rent", EntryType: "9 lives", TotalAmount: dec("1")}},
		{name: "bad split type", req: dto.CreateLedgerEntryRequest{Title: "Rent", EntryType: "RENT", TotalAmount: dec("1"), SplitType: "THIRDS"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateEntry(s.ctx, testRoomID, tt.req, userHead)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (s *LedgerServiceTestSuite) TestGetEntry_NotFoundAndOutsider() {
	_, err := s.service.GetEntry(s.ctx, "missing", userHead)
	s.ErrorIs(err, apperrors.ErrNotFound)

	entry := s.createEntry("10.00")
	_, err = s.service.GetEntry(s.ctx, entry.EntryID, userOutsider)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LedgerServiceTestSuite) TestCalculateEqualSplits_ResidualToFirstEligible() {
	entry := s.createEntry("100.00")

	updated, err := s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)

	s.Equal(domain.EntryApproved, updated.Status)
	s.Equal(domain.SplitEqual, updated.SplitType)
	s.Require().Len(updated.Splits, 3)

	got := map[string]string{}
	for _, split := range updated.Splits {
		got[split.MemberID] = split.AmountOwed.StringFixed(2)
		s.Equal(domain.PaymentUnpaid, split.PaymentStatus)
	}
	s.Equal(map[string]string{"m-head": "33.34", "m-alice": "33.33", "m-bob": "33.33"}, got)
	s.True(updated.RemainingBalance().Equal(dec("100.00")))
}

func (s *LedgerServiceTestSuite) TestCalculateEqualSplits_TooSmallToSplit() {
	for _, total := range []string{"0.01", "0.02"} {
		s.Run(total, func() {
			entry := s.createEntry(total)

			_, err := s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
			s.ErrorIs(err, apperrors.ErrValidation)

			stored, err := s.service.GetEntry(s.ctx, entry.EntryID, userHead)
			s.Require().NoError(err)
			s.Empty(stored.Splits)
			s.Equal(domain.EntryPending, stored.Status)
		})
	}

	entry := s.createEntry("0.03")
	updated, err := s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)
	s.Require().Len(updated.Splits, 3)
	for _, split := range updated.Splits {
		s.True(split.AmountOwed.Equal(dec("0.01")), "member %s owes %s", split.MemberID, split.AmountOwed)
	}
}

func (s *LedgerServiceTestSuite) TestCalculateEqualSplits_SingleEligibleMemberTakesAll() {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	service := s.newServiceWithOracle(membership.NewStaticOracle([]domain.RoomMember{
		{MemberID: "m2-landlord", RoomID: "room-2", UserID: userLandlord, Role: domain.RoleLandlord, JoinedAt: base},
		{MemberID: "m2-head", RoomID: "room-2", UserID: userHead, Role: domain.RoleHeadRoommate, JoinedAt: base.Add(time.Hour)},
		{MemberID: "m2-guest", RoomID: "room-2", UserID: userGuest, Role: domain.RoleGuest, JoinedAt: base.Add(2 * time.Hour)},
	}))

	entry, err := service.CreateEntry(s.ctx, "room-2", dto.CreateLedgerEntryRequest{
		Title: "Boiler repair", EntryType: "MAINTENANCE", TotalAmount: dec("123.45"),
	}, userLandlord)
	s.Require().NoError(err)

	_, err = service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)

	stored, err := s.repo.FindEntryByID(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	s.Require().Len(stored.Splits, 1)
	s.Equal("m2-head", stored.Splits[0].MemberID)
	s.True(stored.Splits[0].AmountOwed.Equal(dec("123.45")))
	s.Equal(domain.EntryApproved, stored.Status)
}

// rosterOracle authorizes callers against one roster but enumerates another, as happens when
// members leave between the caller check and the member listing.
type rosterOracle struct {
	*membership.StaticOracle
	listed *membership.StaticOracle
}

func (o rosterOracle) ListMembers(ctx context.Context, roomID string) ([]domain.RoomMember, error) {
	return o.listed.ListMembers(ctx, roomID)
}

func (s *LedgerServiceTestSuite) TestCalculateEqualSplits_NoEligibleMembers() {
	members := testMembers()
	var remaining []domain.RoomMember
	for _, m := range members {
		if m.Role == domain.RoleLandlord || m.Role == domain.RoleGuest {
			remaining = append(remaining, m)
		}
	}
	service := s.newServiceWithOracle(rosterOracle{
		StaticOracle: membership.NewStaticOracle(members),
		listed:       membership.NewStaticOracle(remaining),
	})
	entry := s.createEntry("60.00")

	_, err := service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.ErrorIs(err, apperrors.ErrValidation)

	stored, err := s.repo.FindEntryByID(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	s.Empty(stored.Splits)
	s.Equal(domain.EntryPending, stored.Status)
}

func (s *LedgerServiceTestSuite) TestCalculateEqualSplits_RecalculateReplaces() {
	entry := s.createEntry("90.00")

	first, err := s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)
	second, err := s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)

	s.Len(second.Splits, 3)
	s.NotEqual(first.Splits[0].SplitID, second.Splits[0].SplitID)

	stored, err := s.service.GetEntry(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)
	s.Len(stored.Splits, 3)
}

func (s *LedgerServiceTestSuite) TestCalculateEqualSplits_OnlyHeadRoommate() {
	entry := s.createEntry("90.00")

	_, err := s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userLandlord)
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userAlice)
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.service.CalculateEqualSplits(s.ctx, "missing", userHead)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestAssignSplits_Manual() {
	entry := s.createEntry("100.00")
	note := " first month "

	updated, err := s.service.AssignSplits(s.ctx, entry.EntryID, dto.AssignSplitsRequest{Splits: []dto.SplitAssignment{
		{MemberID: "m-alice", Amount: dec("60.00"), Notes: &note},
		{MemberID: "m-bob", Amount: dec("40.00")},
	}}, userHead)
	s.Require().NoError(err)

	s.Equal(domain.SplitEqual, updated.SplitType, "manual assignment keeps the split type chosen at creation")
	s.Equal(domain.EntryApproved, updated.Status)
	s.Require().Len(updated.Splits, 2)
	alice := s.splitFor(updated, "m-alice")
	s.True(alice.AmountOwed.Equal(dec("60")))
	s.Equal("first month", *alice.Notes)
}

func (s *LedgerServiceTestSuite) TestAssignSplits_MismatchPersistsNothing() {
	entry := s.createEntry("100.00")

	_, err := s.service.AssignSplits(s.ctx, entry.EntryID, dto.AssignSplitsRequest{Splits: []dto.SplitAssignment{
		{MemberID: "m-alice", Amount: dec("60.00")},
		{MemberID: "m-bob", Amount: dec("39.99")},
	}}, userHead)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "Expected: 100.00, Got: 99.99")

	stored, err := s.service.GetEntry(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)
	s.Empty(stored.Splits)
	s.Equal(domain.EntryPending, stored.Status)
}

func (s *LedgerServiceTestSuite) TestAssignSplits_RejectsBadMembers() {
	entry := s.createEntry("100.00")

	_, err := s.service.AssignSplits(s.ctx, entry.EntryID, dto.AssignSplitsRequest{Splits: []dto.SplitAssignment{
		{MemberID: "m-stranger", Amount: dec("100.00")},
	}}, userHead)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.service.AssignSplits(s.ctx, entry.EntryID, dto.AssignSplitsRequest{Splits: []dto.SplitAssignment{
		{MemberID: "m-alice", Amount: dec("50.00")},
		{MemberID: "m-alice", Amount: dec("50.00")},
	}}, userHead)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.AssignSplits(s.ctx, entry.EntryID, dto.AssignSplitsRequest{}, userHead)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestRecordPayment_PartialThenPaid() {
	entry := s.createEntry("50.00")
	entry, err := s.service.AssignSplits(s.ctx, entry.EntryID, dto.AssignSplitsRequest{Splits: []dto.SplitAssignment{
		{MemberID: "m-alice", Amount: dec("50.00")},
	}}, userHead)
	s.Require().NoError(err)
	splitID := entry.Splits[0].SplitID

	updated, err := s.service.RecordPayment(s.ctx, splitID, dto.RecordPaymentRequest{Amount: dec("20.00")}, userAlice)
	s.Require().NoError(err)
	split, _ := updated.SplitByID(splitID)
	s.Equal(domain.PaymentPartial, split.PaymentStatus)
	s.Nil(split.PaidAt)
	s.Equal(domain.EntryPartiallyPaid, updated.Status)

	updated, err = s.service.RecordPayment(s.ctx, splitID, dto.RecordPaymentRequest{Amount: dec("30.00")}, userAlice)
	s.Require().NoError(err)
	split, _ = updated.SplitByID(splitID)
	s.Equal(domain.PaymentPaid, split.PaymentStatus)
	s.True(split.AmountPaid.Equal(dec("50")))
	s.Require().NotNil(split.PaidAt)
	s.Equal(domain.EntryPaid, updated.Status)
	s.True(updated.RemainingBalance().IsZero())
}

func (s *LedgerServiceTestSuite) TestRecordPayment_EntryCascade() {
	entry := s.createEntry("50.00")
	entry, err := s.service.AssignSplits(s.ctx, entry.EntryID, dto.AssignSplitsRequest{Splits: []dto.SplitAssignment{
		{MemberID: "m-alice", Amount: dec("25.00")},
		{MemberID: "m-bob", Amount: dec("25.00")},
	}}, userHead)
	s.Require().NoError(err)

	alice := s.splitFor(entry, "m-alice")
	bob := s.splitFor(entry, "m-bob")

	updated, err := s.service.RecordPayment(s.ctx, alice.SplitID, dto.RecordPaymentRequest{Amount: dec("25.00")}, userAlice)
	s.Require().NoError(err)
	s.Equal(domain.EntryPartiallyPaid, updated.Status)

	// The head roommate may record on behalf of another member.
	updated, err = s.service.RecordPayment(s.ctx, bob.SplitID, dto.RecordPaymentRequest{Amount: dec("25.00")}, userHead)
	s.Require().NoError(err)
	s.Equal(domain.EntryPaid, updated.Status)
}

func (s *LedgerServiceTestSuite) TestRecordPayment_Rejections() {
	entry := s.createEntry("50.00")
	entry, err := s.service.AssignSplits(s.ctx, entry.EntryID, dto.AssignSplitsRequest{Splits: []dto.SplitAssignment{
		{MemberID: "m-alice", Amount: dec("25.00")},
		{MemberID: "m-bob", Amount: dec("25.00")},
	}}, userHead)
	s.Require().NoError(err)
	alice := s.splitFor(entry, "m-alice")

	_, err = s.service.RecordPayment(s.ctx, alice.SplitID, dto.RecordPaymentRequest{Amount: dec("25.01")}, userAlice)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.RecordPayment(s.ctx, alice.SplitID, dto.RecordPaymentRequest{Amount: dec("0")}, userAlice)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.RecordPayment(s.ctx, alice.SplitID, dto.RecordPaymentRequest{Amount: dec("5.00")}, userBob)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.service.RecordPayment(s.ctx, "missing", dto.RecordPaymentRequest{Amount: dec("5.00")}, userAlice)
	s.ErrorIs(err, apperrors.ErrNotFound)

	stored, err := s.service.GetEntry(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)
	s.True(stored.TotalPaid().IsZero())
}

func (s *LedgerServiceTestSuite) TestCancelledEntryRejectsChanges() {
	entry := s.createEntry("30.00")
	entry, err := s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)

	cancelled, err := s.service.CancelEntry(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)
	s.Equal(domain.EntryCancelled, cancelled.Status)

	_, err = s.service.RecordPayment(s.ctx, entry.Splits[0].SplitID, dto.RecordPaymentRequest{Amount: dec("1.00")}, userHead)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.ErrorIs(err, apperrors.ErrConflict)

	again, err := s.service.CancelEntry(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)
	s.Equal(domain.EntryCancelled, again.Status)
}

func (s *LedgerServiceTestSuite) TestSplitsLockedOncePaid() {
	entry := s.createEntry("30.00")
	entry, err := s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)

	_, err = s.service.RecordPayment(s.ctx, s.splitFor(entry, "m-alice").SplitID, dto.RecordPaymentRequest{Amount: dec("1.00")}, userAlice)
	s.Require().NoError(err)

	_, err = s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerServiceTestSuite) TestCancelEntry_CreatorOrHead() {
	entry, err := s.service.CreateEntry(s.ctx, testRoomID, dto.CreateLedgerEntryRequest{
		Title: "Deposit", EntryType: "OTHER", TotalAmount: dec("10.00"),
	}, userLandlord)
	s.Require().NoError(err)

	_, err = s.service.CancelEntry(s.ctx, entry.EntryID, userAlice)
	s.ErrorIs(err, apperrors.ErrForbidden)

	cancelled, err := s.service.CancelEntry(s.ctx, entry.EntryID, userLandlord)
	s.Require().NoError(err)
	s.Equal(domain.EntryCancelled, cancelled.Status)
}

func (s *LedgerServiceTestSuite) TestDeleteEntry_OnlyHeadRoommate() {
	entry := s.createEntry("30.00")
	_, err := s.service.CalculateEqualSplits(s.ctx, entry.EntryID, userHead)
	s.Require().NoError(err)

	s.ErrorIs(s.service.DeleteEntry(s.ctx, entry.EntryID, userLandlord), apperrors.ErrForbidden)
	s.Require().NoError(s.service.DeleteEntry(s.ctx, entry.EntryID, userHead))

	_, err = s.service.GetEntry(s.ctx, entry.EntryID, userHead)
	s.ErrorIs(err, apperrors.ErrNotFound)

	balances, err := s.service.MemberBalances(s.ctx, testRoomID, userHead)
	s.Require().NoError(err)
	for _, b := range balances {
		s.True(b.TotalOwed.IsZero(), b.Member.MemberID)
	}
}

func (s *LedgerServiceTestSuite) TestListEntries_FiltersAndPages() {
	for i := 0; i < 3; i++ {
		s.createEntry("10.00")
	}
	cancelled := s.createEntry("10.00")
	_, err := s.service.CancelEntry(s.ctx, cancelled.EntryID, userHead)
	s.Require().NoError(err)

	page, err := s.service.ListEntries(s.ctx, testRoomID, userAlice, dto.ListLedgerEntriesParams{Limit: 2})
	s.Require().NoError(err)
	s.Len(page.Entries, 2)
	s.Require().NotNil(page.NextToken)

	rest, err := s.service.ListEntries(s.ctx, testRoomID, userAlice, dto.ListLedgerEntriesParams{Limit: 2, NextToken: page.NextToken})
	s.Require().NoError(err)
	s.Len(rest.Entries, 1)
	s.Nil(rest.NextToken)

	status := domain.EntryStatus("cancelled")
	onlyCancelled, err := s.service.ListEntries(s.ctx, testRoomID, userAlice, dto.ListLedgerEntriesParams{Status: &status})
	s.Require().NoError(err)
	s.Require().Len(onlyCancelled.Entries, 1)
	s.Equal(cancelled.EntryID, onlyCancelled.Entries[0].EntryID)

	bad := domain.EntryStatus("SETTLED")
	_, err = s.service.ListEntries(s.ctx, testRoomID, userAlice, dto.ListLedgerEntriesParams{Status: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)

	token := "not-a-token"
	_, err = s.service.ListEntries(s.ctx, testRoomID, userAlice, dto.ListLedgerEntriesParams{NextToken: &token})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.ListEntries(s.ctx, testRoomID, userOutsider, dto.ListLedgerEntriesParams{})
	s.ErrorIs(err, apperrors.ErrForbidden)
}
