package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the row stored in ledger_entries.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`
	RoomID      string          `json:"roomID"`
	CreatedBy   string          `json:"createdBy"` // member_id, not user_id
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	EntryType   string          `json:"entryType"`
	TotalAmount decimal.Decimal `json:"totalAmount"` // NUMERIC(12,2)
	SplitType   string          `json:"splitType"`
	Status      string          `json:"status"`
	DueDate     *time.Time      `json:"dueDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// LedgerSplit is the row stored in ledger_splits.
type LedgerSplit struct {
	SplitID       string          `json:"splitID"`
	EntryID       string          `json:"entryID"` // FK -> ledger_entries, ON DELETE CASCADE
	MemberID      string          `json:"memberID"`
	Position      int             `json:"position"` // order within the entry
	AmountOwed    decimal.Decimal `json:"amountOwed"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	PaymentStatus string          `json:"paymentStatus"`
	PaidAt        *time.Time      `json:"paidAt"`
	Notes         *string         `json:"notes"`
}
