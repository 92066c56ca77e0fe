package services

import (
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	portssvc "github.com/roomate/household_ledger/internal/core/ports/services"
	"github.com/roomate/household_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, membership portssvc.MembershipOracle) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Membership: membership,
		Ledger: NewLedgerService(
			repos.LedgerRepo,
			membership,
			WithBalancesExcludeCancelled(cfg.BalancesExcludeCancelled),
		),
	}
}
