package domain

import "github.com/shopspring/decimal"

// MemberBalance summarises what one member owes and has paid across a room. It is never persisted.
type MemberBalance struct {
	Member             RoomMember      `json:"member"`
	TotalOwed          decimal.Decimal `json:"totalOwed"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	UnpaidSplitsCount  int             `json:"unpaidSplitsCount"`
}

// NewMemberBalance folds the given splits into a balance for member.
func NewMemberBalance(member RoomMember, splits []LedgerSplit) MemberBalance {
	b := MemberBalance{
		Member:    member,
		TotalOwed: decimal.Zero,
		TotalPaid: decimal.Zero,
	}
	for _, s := range splits {
		b.TotalOwed = b.TotalOwed.Add(s.AmountOwed)
		b.TotalPaid = b.TotalPaid.Add(s.AmountPaid)
		if !s.IsPaid() {
			b.UnpaidSplitsCount++
		}
	}
	b.OutstandingBalance = b.TotalOwed.Sub(b.TotalPaid)
	return b
}

// MemberSplit is a split together with the entry it belongs to.
type MemberSplit struct {
	Split LedgerSplit
	Entry LedgerEntry
}
