package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/roomate/household_ledger/internal/core/ports/services"
	"github.com/roomate/household_ledger/internal/dto"
	"github.com/roomate/household_ledger/internal/middleware"
)

type balanceHandler struct {
	balanceService portssvc.BalanceSvc
}

func newBalanceHandler(balanceService portssvc.BalanceSvc) *balanceHandler {
	return &balanceHandler{balanceService: balanceService}
}

// listBalances godoc
// @Summary Member balances for a room
// @Description Totals owed, paid and outstanding per member. Landlords are not listed.
// @Tags balances
// @Produce  json
// @Param   room_id path string true "Room ID"
// @Success 200 {array} dto.MemberBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a member of the room"
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Security BearerAuth
// @Router /rooms/{room_id}/ledger/balances [get]
func (h *balanceHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roomID := c.Param("room_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("room_id", roomID))

	balances, err := h.balanceService.MemberBalances(c.Request.Context(), roomID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "compute balances")
		return
	}

	logger.Debug("Balances computed successfully", slog.Int("member_count", len(balances)))
	c.JSON(http.StatusOK, dto.ToMemberBalanceResponses(balances))
}

// getMemberBalance godoc
// @Summary One member's balance
// @Tags balances
// @Produce  json
// @Param   room_id path string true "Room ID"
// @Param   member_id path string true "Member ID"
// @Success 200 {object} dto.MemberBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a member of the room"
// @Failure 404 {object} map[string]string "Member not found in room"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /rooms/{room_id}/ledger/balances/{member_id} [get]
func (h *balanceHandler) getMemberBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roomID := c.Param("room_id")
	memberID := c.Param("member_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("room_id", roomID), slog.String("member_id", memberID))

	balance, err := h.balanceService.MemberBalance(c.Request.Context(), roomID, memberID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "compute balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberBalanceResponse(balance))
}

type memberSplitsQuery struct {
	UnpaidOnly bool `form:"unpaidOnly"`
}

// listMemberSplits godoc
// @Summary A member's splits
// @Description Lists the member's splits in the room with their entries, newest first
// @Tags balances
// @Produce  json
// @Param   room_id path string true "Room ID"
// @Param   member_id path string true "Member ID"
// @Param   unpaidOnly query bool false "Only splits that are not fully paid"
// @Success 200 {array} dto.MemberSplitResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a member of the room"
// @Failure 404 {object} map[string]string "Member not found in room"
// @Failure 500 {object} map[string]string "Failed to list member splits"
// @Security BearerAuth
// @Router /rooms/{room_id}/ledger/members/{member_id}/splits [get]
func (h *balanceHandler) listMemberSplits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roomID := c.Param("room_id")
	memberID := c.Param("member_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var q memberSplitsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query params for ListMemberSplits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	logger = logger.With(slog.String("room_id", roomID), slog.String("member_id", memberID))

	splits, err := h.balanceService.MemberSplits(c.Request.Context(), roomID, memberID, q.UnpaidOnly, userID)
	if err != nil {
		respondServiceError(c, logger, err, "list member splits")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberSplitResponses(splits))
}
