package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a ledger entry.
type EntryStatus string

const (
	EntryPending       EntryStatus = "PENDING"
	EntryApproved      EntryStatus = "APPROVED"
	EntryPartiallyPaid EntryStatus = "PARTIALLY_PAID"
	EntryPaid          EntryStatus = "PAID"
	EntryCancelled     EntryStatus = "CANCELLED"
)

// IsValid reports whether s is a known entry status.
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryPending, EntryApproved, EntryPartiallyPaid, EntryPaid, EntryCancelled:
		return true
	}
	return false
}

// SplitType describes how an entry's total was divided.
type SplitType string

const (
	SplitEqual      SplitType = "EQUAL"
	SplitManual     SplitType = "MANUAL"
	SplitPercentage SplitType = "PERCENTAGE"
)

// IsValid reports whether t is a known split type.
func (t SplitType) IsValid() bool {
	switch t {
	case SplitEqual, SplitManual, SplitPercentage:
		return true
	}
	return false
}

// EntryType is an open category such as RENT or UTILITY.
type EntryType string

const (
	EntryTypeRent        EntryType = "RENT"
	EntryTypeUtility     EntryType = "UTILITY"
	EntryTypeGroceries   EntryType = "GROCERIES"
	EntryTypeInternet    EntryType = "INTERNET"
	EntryTypeMaintenance EntryType = "MAINTENANCE"
	EntryTypeOther       EntryType = "OTHER"
)

// PaymentStatus is derived from a split's paid amount against what it owes.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// LedgerEntry is one shared expense within a room.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`
	RoomID      string          `json:"roomID"`
	CreatedBy   string          `json:"createdBy"` // member ID of the creator
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	EntryType   EntryType       `json:"entryType"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	SplitType   SplitType       `json:"splitType"`
	Status      EntryStatus     `json:"status"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Splits      []LedgerSplit   `json:"splits"`
}

// TotalPaid sums what has been paid across all splits.
func (e *LedgerEntry) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.Splits {
		total = total.Add(s.AmountPaid)
	}
	return total
}

// RemainingBalance is the total amount less everything paid so far.
func (e *LedgerEntry) RemainingBalance() decimal.Decimal {
	return e.TotalAmount.Sub(e.TotalPaid())
}

// IsFullyPaid reports whether payments cover the entry's total.
func (e *LedgerEntry) IsFullyPaid() bool {
	return e.TotalPaid().GreaterThanOrEqual(e.TotalAmount)
}

// HasPayments reports whether any split has received money.
func (e *LedgerEntry) HasPayments() bool {
	return e.TotalPaid().GreaterThan(decimal.Zero)
}

// IsCancelled reports whether the entry has been cancelled.
func (e *LedgerEntry) IsCancelled() bool {
	return e.Status == EntryCancelled
}

// SplitByID returns the entry's split with the given ID.
func (e *LedgerEntry) SplitByID(splitID string) (*LedgerSplit, bool) {
	for i := range e.Splits {
		if e.Splits[i].SplitID == splitID {
			return &e.Splits[i], true
		}
	}
	return nil, false
}

// RefreshPaymentStatus rolls the entry status forward from the state of its splits.
// A fully paid entry becomes PAID, otherwise any payment at all makes it PARTIALLY_PAID.
// Entries without payments keep their current status.
func (e *LedgerEntry) RefreshPaymentStatus(now time.Time) {
	switch {
	case e.IsFullyPaid():
		e.Status = EntryPaid
	case e.HasPayments():
		e.Status = EntryPartiallyPaid
	default:
		return
	}
	e.UpdatedAt = now
}

// LedgerSplit is one member's share of an entry.
type LedgerSplit struct {
	SplitID       string          `json:"splitID"`
	EntryID       string          `json:"entryID"`
	MemberID      string          `json:"memberID"`
	AmountOwed    decimal.Decimal `json:"amountOwed"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
}

// NewLedgerSplit creates an unpaid split.
func NewLedgerSplit(splitID, entryID, memberID string, amountOwed decimal.Decimal, notes *string) LedgerSplit {
	return LedgerSplit{
		SplitID:       splitID,
		EntryID:       entryID,
		MemberID:      memberID,
		AmountOwed:    amountOwed,
		AmountPaid:    decimal.Zero,
		PaymentStatus: PaymentUnpaid,
		Notes:         notes,
	}
}

// RemainingBalance is what the member still owes on this split.
func (s *LedgerSplit) RemainingBalance() decimal.Decimal {
	return s.AmountOwed.Sub(s.AmountPaid)
}

// IsPaid reports whether the split is settled.
func (s *LedgerSplit) IsPaid() bool {
	return s.PaymentStatus == PaymentPaid
}

// ApplyPayment adds amount to what has been paid and recomputes the payment status.
// PaidAt is stamped only when the split first becomes PAID.
func (s *LedgerSplit) ApplyPayment(amount decimal.Decimal, now time.Time) {
	s.AmountPaid = s.AmountPaid.Add(amount)
	wasPaid := s.IsPaid()
	switch {
	case s.AmountPaid.IsZero():
		s.PaymentStatus = PaymentUnpaid
	case s.AmountPaid.GreaterThanOrEqual(s.AmountOwed):
		s.PaymentStatus = PaymentPaid
		if !wasPaid || s.PaidAt == nil {
			paidAt := now
			s.PaidAt = &paidAt
		}
	default:
		s.PaymentStatus = PaymentPartial
	}
}
