package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	ledgerRepo := newPgxLedgerRepository(dbPool)
	memberRepo := newPgxRoomMemberRepository(dbPool)

	return portsrepo.RepositoryProvider{
		LedgerRepo: ledgerRepo,
		MemberRepo: memberRepo,
	}
}
