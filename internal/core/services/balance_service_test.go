package services_test

import (
	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	"github.com/roomate/household_ledger/internal/core/services"
	"github.com/roomate/household_ledger/internal/dto"
)

func (s *LedgerServiceTestSuite) seedBalances() (*domain.LedgerEntry, *domain.LedgerEntry) {
	rent := s.createEntry("90.00")
	rent, err := s.service.CalculateEqualSplits(s.ctx, rent.EntryID, userHead)
	s.Require().NoError(err)

	_, err = s.service.RecordPayment(s.ctx, s.splitFor(rent, "m-alice").SplitID, dto.RecordPaymentRequest{Amount: dec("30.00")}, userAlice)
	s.Require().NoError(err)
	_, err = s.service.RecordPayment(s.ctx, s.splitFor(rent, "m-bob").SplitID, dto.RecordPaymentRequest{Amount: dec("10.00")}, userBob)
	s.Require().NoError(err)

	internet := s.createEntry("20.00")
	internet, err = s.service.AssignSplits(s.ctx, internet.EntryID, dto.AssignSplitsRequest{Splits: []dto.SplitAssignment{
		{MemberID: "m-alice", Amount: dec("20.00")},
	}}, userHead)
	s.Require().NoError(err)
	return rent, internet
}

func balanceByMember(balances []domain.MemberBalance) map[string]domain.MemberBalance {
	out := make(map[string]domain.MemberBalance, len(balances))
	for _, b := range balances {
		out[b.Member.MemberID] = b
	}
	return out
}

func (s *LedgerServiceTestSuite) TestMemberBalances_Aggregates() {
	s.seedBalances()

	balances, err := s.service.MemberBalances(s.ctx, testRoomID, userGuest)
	s.Require().NoError(err)

	byMember := balanceByMember(balances)
	s.NotContains(byMember, "m-landlord")
	s.Contains(byMember, "m-guest")
	s.Len(balances, 4)

	alice := byMember["m-alice"]
	s.Equal("50.00", alice.TotalOwed.StringFixed(2))
	s.Equal("30.00", alice.TotalPaid.StringFixed(2))
	s.Equal("20.00", alice.OutstandingBalance.StringFixed(2))
	s.Equal(1, alice.UnpaidSplitsCount)

	bob := byMember["m-bob"]
	s.Equal("20.00", bob.OutstandingBalance.StringFixed(2))
	s.Equal(1, bob.UnpaidSplitsCount)

	guest := byMember["m-guest"]
	s.True(guest.TotalOwed.IsZero())
	s.Equal(0, guest.UnpaidSplitsCount)

	again, err := s.service.MemberBalances(s.ctx, testRoomID, userGuest)
	s.Require().NoError(err)
	s.Equal(balances, again)
}

func (s *LedgerServiceTestSuite) TestMemberBalances_CancelledEntries() {
	_, internet := s.seedBalances()
	_, err := s.service.CancelEntry(s.ctx, internet.EntryID, userHead)
	s.Require().NoError(err)

	included, err := s.service.MemberBalances(s.ctx, testRoomID, userHead)
	s.Require().NoError(err)
	s.Equal("50.00", balanceByMember(included)["m-alice"].TotalOwed.StringFixed(2))

	excluding := s.newService(services.WithBalancesExcludeCancelled(true))
	excluded, err := excluding.MemberBalances(s.ctx, testRoomID, userHead)
	s.Require().NoError(err)
	s.Equal("30.00", balanceByMember(excluded)["m-alice"].TotalOwed.StringFixed(2))
}

func (s *LedgerServiceTestSuite) TestMemberBalance_Single() {
	s.seedBalances()

	balance, err := s.service.MemberBalance(s.ctx, testRoomID, "m-head", userAlice)
	s.Require().NoError(err)
	s.Equal("30.00", balance.TotalOwed.StringFixed(2))
	s.Equal("30.00", balance.OutstandingBalance.StringFixed(2))

	_, err = s.service.MemberBalance(s.ctx, testRoomID, "m-nobody", userAlice)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.service.MemberBalance(s.ctx, testRoomID, "m-head", userOutsider)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LedgerServiceTestSuite) TestMemberSplits_UnpaidOnly() {
	rent, internet := s.seedBalances()

	all, err := s.service.MemberSplits(s.ctx, testRoomID, "m-alice", false, userAlice)
	s.Require().NoError(err)
	s.Len(all, 2)

	unpaid, err := s.service.MemberSplits(s.ctx, testRoomID, "m-alice", true, userAlice)
	s.Require().NoError(err)
	s.Require().Len(unpaid, 1)
	s.Equal(internet.EntryID, unpaid[0].Entry.EntryID)
	s.NotEqual(rent.EntryID, unpaid[0].Entry.EntryID)
	s.Equal(domain.PaymentUnpaid, unpaid[0].Split.PaymentStatus)

	_, err = s.service.MemberSplits(s.ctx, testRoomID, "m-nobody", false, userAlice)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
