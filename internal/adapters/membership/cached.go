package membership

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	portssvc "github.com/roomate/household_ledger/internal/core/ports/services"
	"github.com/roomate/household_ledger/internal/middleware"
	"golang.org/x/sync/singleflight"
)

// CachedOracle keeps each room's member list for a short TTL. Concurrent misses for the
// same room share one upstream call.
type CachedOracle struct {
	next  portssvc.MembershipOracle
	cache *expirable.LRU[string, []domain.RoomMember]
	group singleflight.Group
}

var _ portssvc.MembershipOracle = (*CachedOracle)(nil)

// NewCachedOracle wraps next with an LRU of at most size rooms, each kept for ttl.
func NewCachedOracle(next portssvc.MembershipOracle, size int, ttl time.Duration) *CachedOracle {
	return &CachedOracle{
		next:  next,
		cache: expirable.NewLRU[string, []domain.RoomMember](size, nil, ttl),
	}
}

// ResolveMember looks the user up in the room's cached member list.
func (o *CachedOracle) ResolveMember(ctx context.Context, roomID string, userID string) (*domain.RoomMember, error) {
	members, err := o.ListMembers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.UserID == userID {
			member := m
			return &member, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (o *CachedOracle) ListMembers(ctx context.Context, roomID string) ([]domain.RoomMember, error) {
	if members, ok := o.cache.Get(roomID); ok {
		return copyMembers(members), nil
	}

	// The lookup is shared with other callers, so one caller's cancellation must not fail theirs.
	lookupCtx := context.WithoutCancel(ctx)
	v, err, shared := o.group.Do(roomID, func() (interface{}, error) {
		members, err := o.next.ListMembers(lookupCtx, roomID)
		if err != nil {
			return nil, err
		}
		o.cache.Add(roomID, members)
		return members, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		middleware.GetLoggerFromCtx(ctx).Debug("Room membership lookup shared", slog.String("room_id", roomID))
	}
	return copyMembers(v.([]domain.RoomMember)), nil
}

// Invalidate drops a room from the cache.
func (o *CachedOracle) Invalidate(roomID string) {
	o.cache.Remove(roomID)
}

func copyMembers(in []domain.RoomMember) []domain.RoomMember {
	out := make([]domain.RoomMember, len(in))
	copy(out, in)
	return out
}
