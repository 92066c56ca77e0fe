package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roomate/household_ledger/internal/core/domain"
	portsrepo "github.com/roomate/household_ledger/internal/core/ports/repositories"
	"github.com/roomate/household_ledger/internal/models"
	"github.com/roomate/household_ledger/internal/utils/mapping"
)

const memberColumns = `member_id, room_id, user_id, display_name, role, joined_at`

// PgxRoomMemberRepository reads the room_members table maintained by the room service.
type PgxRoomMemberRepository struct {
	BaseRepository
}

func newPgxRoomMemberRepository(pool *pgxpool.Pool) portsrepo.RoomMemberReader {
	return &PgxRoomMemberRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RoomMemberReader = (*PgxRoomMemberRepository)(nil)

func (r *PgxRoomMemberRepository) FindRoomMember(ctx context.Context, roomID, userID string) (*domain.RoomMember, error) {
	var m models.RoomMember
	err := r.Pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM room_members WHERE room_id = $1 AND user_id = $2`,
		roomID, userID,
	).Scan(&m.MemberID, &m.RoomID, &m.UserID, &m.DisplayName, &m.Role, &m.JoinedAt)
	if err != nil {
		return nil, mapError(err, "member of room "+roomID)
	}
	member := mapping.ToDomainRoomMember(m)
	return &member, nil
}

// ListRoomMembers returns the room's members ordered by join time, then member ID.
func (r *PgxRoomMemberRepository) ListRoomMembers(ctx context.Context, roomID string) ([]domain.RoomMember, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+memberColumns+` FROM room_members WHERE room_id = $1 ORDER BY joined_at, member_id`,
		roomID)
	if err != nil {
		return nil, mapError(err, "members of room "+roomID)
	}
	defer rows.Close()

	members := make([]domain.RoomMember, 0)
	for rows.Next() {
		var m models.RoomMember
		if err := rows.Scan(&m.MemberID, &m.RoomID, &m.UserID, &m.DisplayName, &m.Role, &m.JoinedAt); err != nil {
			return nil, mapError(err, "room member row")
		}
		members = append(members, mapping.ToDomainRoomMember(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "members of room "+roomID)
	}
	return members, nil
}
