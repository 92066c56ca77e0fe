package services

import (
	"time"

	"github.com/google/uuid"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	portssvc "github.com/roomate/household_ledger/internal/core/ports/services"
)

// ledgerService implements the LedgerSvcFacade interface. Its methods are split by
// concern across ledger_entry_service.go, split_service.go, payment_service.go and
// balance_service.go.
type ledgerService struct {
	BaseService
	ledgerRepo               portsrepo.LedgerRepositoryFacade
	excludeCancelledBalances bool
	now                      func() time.Time
	newID                    func() string
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithBalancesExcludeCancelled drops CANCELLED entries from balance aggregation.
func WithBalancesExcludeCancelled(exclude bool) LedgerServiceOption {
	return func(s *ledgerService) {
		s.excludeCancelledBalances = exclude
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// WithIDGenerator overrides how entry and split IDs are generated.
func WithIDGenerator(newID func() string) LedgerServiceOption {
	return func(s *ledgerService) {
		s.newID = newID
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, membership portssvc.MembershipOracle, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		BaseService: BaseService{Membership: membership},
		ledgerRepo:  repo,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
