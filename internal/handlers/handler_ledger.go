package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/roomate/household_ledger/internal/core/ports/services"
	"github.com/roomate/household_ledger/internal/dto"
	"github.com/roomate/household_ledger/internal/middleware"
)

// ledgerHandler handles HTTP requests for ledger entries, splits and payments.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ledgerService,
	}
}

// registerLedgerRoutes registers ledger routes. Room-scoped routes sit under
// /rooms/:room_id/ledger, entry and split routes under /ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)
	b := newBalanceHandler(ledgerService)

	roomLedger := rg.Group("/rooms/:room_id/ledger")
	{
		roomLedger.POST("", h.createEntry)
		roomLedger.GET("", h.listEntries)
		roomLedger.GET("/balances", b.listBalances)
		roomLedger.GET("/balances/:member_id", b.getMemberBalance)
		roomLedger.GET("/members/:member_id/splits", b.listMemberSplits)
	}

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/:entry_id", h.getEntry)
		ledger.DELETE("/:entry_id", h.deleteEntry)
		ledger.PUT("/:entry_id/splits", h.assignSplits)
		ledger.POST("/:entry_id/splits/equal", h.calculateEqualSplits)
		ledger.POST("/:entry_id/cancel", h.cancelEntry)
		ledger.POST("/splits/:split_id/pay", h.recordPayment)
	}
}

// createEntry godoc
// @Summary Create a ledger entry
// @Description Records a new shared expense in a room. Only a landlord or head roommate may create entries.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   room_id path string true "Room ID"
// @Param   entry body dto.CreateLedgerEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller may not create entries in this room"
// @Failure 500 {object} map[string]string "Failed to create ledger entry"
// @Security BearerAuth
// @Router /rooms/{room_id}/ledger [post]
func (h *ledgerHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roomID := c.Param("room_id")

	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("room_id", roomID))

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), roomID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create ledger entry")
		return
	}

	logger.Info("Ledger entry created successfully", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// listEntries godoc
// @Summary List a room's ledger entries
// @Description Lists entries newest first. Cancelled entries are hidden unless includeCancelled is set or status=CANCELLED.
// @Tags ledger
// @Produce  json
// @Param   room_id path string true "Room ID"
// @Param   status query string false "Filter by status" Enums(PENDING, APPROVED, PARTIALLY_PAID, PAID, CANCELLED)
// @Param   includeCancelled query bool false "Include cancelled entries"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a member of the room"
// @Failure 500 {object} map[string]string "Failed to list ledger entries"
// @Security BearerAuth
// @Router /rooms/{room_id}/ledger [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roomID := c.Param("room_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	logger = logger.With(slog.String("room_id", roomID))

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), roomID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "list ledger entries")
		return
	}

	logger.Debug("Ledger entries listed successfully", slog.Int("count", len(resp.Entries)))
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a ledger entry
// @Description Retrieves an entry with its splits
// @Tags ledger
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a member of the entry's room"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to get ledger entry"
// @Security BearerAuth
// @Router /ledger/{entry_id} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("entry_id", entryID))

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "get ledger entry")
		return
	}

	logger.Debug("Ledger entry retrieved successfully")
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// assignSplits godoc
// @Summary Assign manual splits
// @Description Replaces the entry's splits with explicit amounts that must add up to the entry total. Head roommate only.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Param   splits body dto.AssignSplitsRequest true "Split amounts per member"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or amounts do not add up"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not the head roommate"
// @Failure 404 {object} map[string]string "Entry or member not found"
// @Failure 409 {object} map[string]string "Entry is cancelled or already has payments"
// @Failure 500 {object} map[string]string "Failed to assign splits"
// @Security BearerAuth
// @Router /ledger/{entry_id}/splits [put]
func (h *ledgerHandler) assignSplits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	var req dto.AssignSplitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AssignSplits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("entry_id", entryID))

	entry, err := h.ledgerService.AssignSplits(c.Request.Context(), entryID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "assign splits")
		return
	}

	logger.Info("Splits assigned successfully", slog.Int("split_count", len(entry.Splits)))
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// calculateEqualSplits godoc
// @Summary Split an entry equally
// @Description Divides the total evenly between all members except landlords and guests. Head roommate only.
// @Tags ledger
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "No eligible members"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not the head roommate"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is cancelled or already has payments"
// @Failure 500 {object} map[string]string "Failed to calculate equal splits"
// @Security BearerAuth
// @Router /ledger/{entry_id}/splits/equal [post]
func (h *ledgerHandler) calculateEqualSplits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("entry_id", entryID))

	entry, err := h.ledgerService.CalculateEqualSplits(c.Request.Context(), entryID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "calculate equal splits")
		return
	}

	logger.Info("Equal splits calculated successfully", slog.Int("split_count", len(entry.Splits)))
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a ledger entry
// @Description Marks the entry CANCELLED. Allowed for the head roommate or the entry's creator. Cancelling twice is a no-op.
// @Tags ledger
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller may not cancel this entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to cancel ledger entry"
// @Security BearerAuth
// @Router /ledger/{entry_id}/cancel [post]
func (h *ledgerHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("entry_id", entryID))

	entry, err := h.ledgerService.CancelEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "cancel ledger entry")
		return
	}

	logger.Info("Ledger entry cancelled successfully")
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a ledger entry
// @Description Removes an entry and all of its splits. Head roommate only.
// @Tags ledger
// @Param   entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not the head roommate"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to delete ledger entry"
// @Security BearerAuth
// @Router /ledger/{entry_id} [delete]
func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("entry_id", entryID))

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), entryID, userID); err != nil {
		respondServiceError(c, logger, err, "delete ledger entry")
		return
	}

	logger.Info("Ledger entry deleted successfully")
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment against a split
// @Description Adds a payment to the split and rolls the entry status forward. Allowed for the split's member or the head roommate.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   split_id path string true "Split ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid amount or payment exceeds the remaining balance"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller may not pay this split"
// @Failure 404 {object} map[string]string "Split not found"
// @Failure 409 {object} map[string]string "Entry is cancelled"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /ledger/splits/{split_id}/pay [post]
func (h *ledgerHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	splitID := c.Param("split_id")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger = logger.With(slog.String("split_id", splitID))

	entry, err := h.ledgerService.RecordPayment(c.Request.Context(), splitID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record payment")
		return
	}

	resp, ok := dto.ToPaymentResponse(entry, splitID)
	if !ok {
		logger.Error("Split missing from entry returned by payment", slog.String("entry_id", entry.EntryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	logger.Info("Payment recorded successfully", slog.String("entry_status", string(entry.Status)))
	c.JSON(http.StatusOK, resp)
}
