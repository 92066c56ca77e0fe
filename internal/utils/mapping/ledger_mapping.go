package mapping

import (
	"github.com/roomate/household_ledger/internal/core/domain"
	"github.com/roomate/household_ledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry. Splits are mapped separately.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:     d.EntryID,
		RoomID:      d.RoomID,
		CreatedBy:   d.CreatedBy,
		Title:       d.Title,
		Description: d.Description,
		EntryType:   string(d.EntryType),
		TotalAmount: d.TotalAmount,
		SplitType:   string(d.SplitType),
		Status:      string(d.Status),
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry with no splits loaded.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		RoomID:      m.RoomID,
		CreatedBy:   m.CreatedBy,
		Title:       m.Title,
		Description: m.Description,
		EntryType:   domain.EntryType(m.EntryType),
		TotalAmount: m.TotalAmount,
		SplitType:   domain.SplitType(m.SplitType),
		Status:      domain.EntryStatus(m.Status),
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Splits:      []domain.LedgerSplit{},
	}
}

// ToModelLedgerSplit converts a domain LedgerSplit to a model LedgerSplit at the given position.
func ToModelLedgerSplit(d domain.LedgerSplit, position int) models.LedgerSplit {
	return models.LedgerSplit{
		SplitID:       d.SplitID,
		EntryID:       d.EntryID,
		MemberID:      d.MemberID,
		Position:      position,
		AmountOwed:    d.AmountOwed,
		AmountPaid:    d.AmountPaid,
		PaymentStatus: string(d.PaymentStatus),
		PaidAt:        d.PaidAt,
		Notes:         d.Notes,
	}
}

// ToDomainLedgerSplit converts a model LedgerSplit to a domain LedgerSplit
func ToDomainLedgerSplit(m models.LedgerSplit) domain.LedgerSplit {
	return domain.LedgerSplit{
		SplitID:       m.SplitID,
		EntryID:       m.EntryID,
		MemberID:      m.MemberID,
		AmountOwed:    m.AmountOwed,
		AmountPaid:    m.AmountPaid,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		PaidAt:        m.PaidAt,
		Notes:         m.Notes,
	}
}

// ToDomainRoomMember converts a model RoomMember to a domain RoomMember
func ToDomainRoomMember(m models.RoomMember) domain.RoomMember {
	return domain.RoomMember{
		MemberID:    m.MemberID,
		RoomID:      m.RoomID,
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		Role:        domain.RoomRole(m.Role),
		JoinedAt:    m.JoinedAt,
	}
}
