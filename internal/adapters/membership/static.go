package membership

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	portssvc "github.com/roomate/household_ledger/internal/core/ports/services"
	"github.com/spf13/viper"
)

type rosterFile struct {
	Rooms []rosterRoom `mapstructure:"rooms"`
}

type rosterRoom struct {
	ID      string         `mapstructure:"id"`
	Members []rosterMember `mapstructure:"members"`
}

type rosterMember struct {
	MemberID    string    `mapstructure:"member_id"`
	UserID      string    `mapstructure:"user_id"`
	DisplayName string    `mapstructure:"display_name"`
	Role        string    `mapstructure:"role"`
	JoinedAt    time.Time `mapstructure:"joined_at"`
}

// StaticOracle serves membership from a fixed roster. It backs the sqlite and memory
// storage drivers, where no room_members table is shared with the room service.
type StaticOracle struct {
	rooms map[string][]domain.RoomMember
}

var _ portssvc.MembershipOracle = (*StaticOracle)(nil)

// NewStaticOracle builds an oracle from in-memory members. Members are grouped by RoomID.
func NewStaticOracle(members []domain.RoomMember) *StaticOracle {
	rooms := make(map[string][]domain.RoomMember)
	for _, m := range members {
		rooms[m.RoomID] = append(rooms[m.RoomID], m)
	}
	for roomID := range rooms {
		sortMembers(rooms[roomID])
	}
	return &StaticOracle{rooms: rooms}
}

// LoadStaticOracle reads a roster file in any format viper understands (YAML, JSON, TOML).
func LoadStaticOracle(path string) (*StaticOracle, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read membership roster %s: %w", path, err)
	}

	var roster rosterFile
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
	))
	if err := v.Unmarshal(&roster, hook); err != nil {
		return nil, fmt.Errorf("failed to decode membership roster %s: %w", path, err)
	}

	members := make([]domain.RoomMember, 0)
	seen := make(map[string]bool)
	for _, room := range roster.Rooms {
		if room.ID == "" {
			return nil, fmt.Errorf("membership roster %s: room without id", path)
		}
		for _, m := range room.Members {
			role := domain.RoomRole(m.Role)
			if !role.IsValid() {
				return nil, fmt.Errorf("membership roster %s: member %s has unknown role %q", path, m.MemberID, m.Role)
			}
			if m.MemberID == "" || m.UserID == "" {
				return nil, fmt.Errorf("membership roster %s: room %s has a member without member_id or user_id", path, room.ID)
			}
			key := room.ID + "/" + m.MemberID
			if seen[key] {
				return nil, fmt.Errorf("membership roster %s: duplicate member %s in room %s", path, m.MemberID, room.ID)
			}
			seen[key] = true
			members = append(members, domain.RoomMember{
				MemberID:    m.MemberID,
				RoomID:      room.ID,
				UserID:      m.UserID,
				DisplayName: m.DisplayName,
				Role:        role,
				JoinedAt:    m.JoinedAt.UTC(),
			})
		}
	}
	return NewStaticOracle(members), nil
}

func (o *StaticOracle) ResolveMember(_ context.Context, roomID string, userID string) (*domain.RoomMember, error) {
	for _, m := range o.rooms[roomID] {
		if m.UserID == userID {
			member := m
			return &member, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (o *StaticOracle) ListMembers(_ context.Context, roomID string) ([]domain.RoomMember, error) {
	members := o.rooms[roomID]
	out := make([]domain.RoomMember, len(members))
	copy(out, members)
	return out, nil
}

// sortMembers orders members by join time, then member ID.
func sortMembers(members []domain.RoomMember) {
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].JoinedAt.Equal(members[j].JoinedAt) {
			return members[i].MemberID < members[j].MemberID
		}
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
}
