package dto

import (
	"time"

	"github.com/roomate/household_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest defines the data needed to record a new shared expense.
type CreateLedgerEntryRequest struct {
	Title       string           `json:"title" binding:"required,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	EntryType   domain.EntryType `json:"entryType" binding:"required,max=50"`
	TotalAmount decimal.Decimal  `json:"totalAmount" binding:"required,money"`
	SplitType   domain.SplitType `json:"splitType" binding:"omitempty,oneof=EQUAL MANUAL PERCENTAGE"` // Defaults to EQUAL
	DueDate     *time.Time       `json:"dueDate"`
}

// SplitAssignment is one member's share in a manual split request.
type SplitAssignment struct {
	MemberID string          `json:"memberID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required,money"`
	Notes    *string         `json:"notes" binding:"omitempty,max=500"`
}

// AssignSplitsRequest replaces an entry's splits with explicit amounts.
type AssignSplitsRequest struct {
	Splits []SplitAssignment `json:"splits" binding:"required,min=1,dive"`
}

// RecordPaymentRequest applies a payment to a split.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,money"`
	Notes  *string         `json:"notes" binding:"omitempty,max=500"`
}

// ListLedgerEntriesParams are the query parameters accepted when listing a room's entries.
type ListLedgerEntriesParams struct {
	Status           *domain.EntryStatus `form:"status"`
	IncludeCancelled bool                `form:"includeCancelled"`
	Limit            int                 `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken        *string             `form:"nextToken"`
}

// LedgerSplitResponse defines the data returned for a split.
type LedgerSplitResponse struct {
	SplitID          string               `json:"splitID"`
	EntryID          string               `json:"entryID"`
	MemberID         string               `json:"memberID"`
	AmountOwed       decimal.Decimal      `json:"amountOwed"`
	AmountPaid       decimal.Decimal      `json:"amountPaid"`
	RemainingBalance decimal.Decimal      `json:"remainingBalance"`
	PaymentStatus    domain.PaymentStatus `json:"paymentStatus"`
	PaidAt           *time.Time           `json:"paidAt,omitempty"`
	Notes            *string              `json:"notes,omitempty"`
}

// LedgerEntryResponse defines the data returned for an entry, including its splits.
type LedgerEntryResponse struct {
	EntryID          string                `json:"entryID"`
	RoomID           string                `json:"roomID"`
	CreatedBy        string                `json:"createdBy"`
	Title            string                `json:"title"`
	Description      *string               `json:"description,omitempty"`
	EntryType        domain.EntryType      `json:"entryType"`
	TotalAmount      decimal.Decimal       `json:"totalAmount"`
	SplitType        domain.SplitType      `json:"splitType"`
	Status           domain.EntryStatus    `json:"status"`
	DueDate          *time.Time            `json:"dueDate,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	Splits           []LedgerSplitResponse `json:"splits"`
	TotalPaid        decimal.Decimal       `json:"totalPaid"`
	RemainingBalance decimal.Decimal       `json:"remainingBalance"`
}

// ListLedgerEntriesResponse wraps a page of entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// PaymentResponse is returned after a payment: the updated split and the entry status it rolled to.
type PaymentResponse struct {
	Split                 LedgerSplitResponse `json:"split"`
	EntryStatus           domain.EntryStatus  `json:"entryStatus"`
	EntryRemainingBalance decimal.Decimal     `json:"entryRemainingBalance"`
}

// ToLedgerSplitResponse converts a domain.LedgerSplit to LedgerSplitResponse DTO
func ToLedgerSplitResponse(s *domain.LedgerSplit) LedgerSplitResponse {
	return LedgerSplitResponse{
		SplitID:          s.SplitID,
		EntryID:          s.EntryID,
		MemberID:         s.MemberID,
		AmountOwed:       s.AmountOwed,
		AmountPaid:       s.AmountPaid,
		RemainingBalance: s.RemainingBalance(),
		PaymentStatus:    s.PaymentStatus,
		PaidAt:           s.PaidAt,
		Notes:            s.Notes,
	}
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	splits := make([]LedgerSplitResponse, len(e.Splits))
	for i := range e.Splits {
		splits[i] = ToLedgerSplitResponse(&e.Splits[i])
	}
	return LedgerEntryResponse{
		EntryID:          e.EntryID,
		RoomID:           e.RoomID,
		CreatedBy:        e.CreatedBy,
		Title:            e.Title,
		Description:      e.Description,
		EntryType:        e.EntryType,
		TotalAmount:      e.TotalAmount,
		SplitType:        e.SplitType,
		Status:           e.Status,
		DueDate:          e.DueDate,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		Splits:           splits,
		TotalPaid:        e.TotalPaid(),
		RemainingBalance: e.RemainingBalance(),
	}
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry to []LedgerEntryResponse.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}

// ToPaymentResponse builds the payment result for splitID from the entry returned by the recorder.
func ToPaymentResponse(entry *domain.LedgerEntry, splitID string) (PaymentResponse, bool) {
	split, ok := entry.SplitByID(splitID)
	if !ok {
		return PaymentResponse{}, false
	}
	return PaymentResponse{
		Split:                 ToLedgerSplitResponse(split),
		EntryStatus:           entry.Status,
		EntryRemainingBalance: entry.RemainingBalance(),
	}, true
}
