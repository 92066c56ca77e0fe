package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roomate/household_ledger/internal/apperrors"
	"github.com/roomate/household_ledger/internal/core/domain"
	portssvc "github.com/roomate/household_ledger/internal/core/ports/services"
	"github.com/roomate/household_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Membership portssvc.MembershipOracle
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// ResolveCaller resolves userID to a member of roomID.
// A user who is not a member gets ErrForbidden, never a silent default.
func (s *BaseService) ResolveCaller(ctx context.Context, roomID, userID string) (*domain.RoomMember, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: caller identity is required", apperrors.ErrUnauthorized)
	}
	member, err := s.Membership.ResolveMember(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User is not a member of room",
				slog.String("user_id", userID),
				slog.String("room_id", roomID))
			return nil, fmt.Errorf("%w: user is not a member of room %s", apperrors.ErrForbidden, roomID)
		}
		s.LogError(ctx, err, "Failed to resolve room member",
			slog.String("user_id", userID),
			slog.String("room_id", roomID))
		return nil, err
	}
	return member, nil
}

// RequireRole fails with ErrForbidden unless member holds one of allowed.
func RequireRole(member *domain.RoomMember, allowed ...domain.RoomRole) error {
	if member.HasRole(allowed...) {
		return nil
	}
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = string(r)
	}
	return fmt.Errorf("%w: role %s is not allowed, requires one of %s",
		apperrors.ErrForbidden, member.Role, strings.Join(names, ", "))
}

// AuthorizeRoles resolves the caller in roomID and checks their role in one step.
func (s *BaseService) AuthorizeRoles(ctx context.Context, roomID, userID string, allowed ...domain.RoomRole) (*domain.RoomMember, error) {
	member, err := s.ResolveCaller(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if err := RequireRole(member, allowed...); err != nil {
		s.LogDebug(ctx, "Caller lacks required role",
			slog.String("user_id", userID),
			slog.String("room_id", roomID),
			slog.String("role", string(member.Role)))
		return nil, err
	}
	return member, nil
}
