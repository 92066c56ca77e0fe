package dto

import (
	"time"

	"github.com/roomate/household_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RoomMemberResponse defines the data returned for a room member.
type RoomMemberResponse struct {
	MemberID    string          `json:"memberID"`
	UserID      string          `json:"userID"`
	DisplayName string          `json:"displayName"`
	Role        domain.RoomRole `json:"role"`
	JoinedAt    time.Time       `json:"joinedAt"`
}

// MemberBalanceResponse defines the data returned for a member's balance.
type MemberBalanceResponse struct {
	MemberID           string             `json:"memberID"`
	Member             RoomMemberResponse `json:"member"`
	TotalOwed          decimal.Decimal    `json:"totalOwed"`
	TotalPaid          decimal.Decimal    `json:"totalPaid"`
	OutstandingBalance decimal.Decimal    `json:"outstandingBalance"`
	UnpaidSplitsCount  int                `json:"unpaidSplitsCount"`
}

// MemberSplitResponse is a split shown together with a summary of its entry.
type MemberSplitResponse struct {
	LedgerSplitResponse
	RoomID      string             `json:"roomID"`
	EntryTitle  string             `json:"entryTitle"`
	EntryType   domain.EntryType   `json:"entryType"`
	EntryStatus domain.EntryStatus `json:"entryStatus"`
	DueDate     *time.Time         `json:"dueDate,omitempty"`
}

// ToRoomMemberResponse converts a domain.RoomMember to RoomMemberResponse DTO
func ToRoomMemberResponse(m *domain.RoomMember) RoomMemberResponse {
	return RoomMemberResponse{
		MemberID:    m.MemberID,
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		Role:        m.Role,
		JoinedAt:    m.JoinedAt,
	}
}

// ToMemberBalanceResponse converts a domain.MemberBalance to MemberBalanceResponse DTO
func ToMemberBalanceResponse(b *domain.MemberBalance) MemberBalanceResponse {
	return MemberBalanceResponse{
		MemberID:           b.Member.MemberID,
		Member:             ToRoomMemberResponse(&b.Member),
		TotalOwed:          b.TotalOwed,
		TotalPaid:          b.TotalPaid,
		OutstandingBalance: b.OutstandingBalance,
		UnpaidSplitsCount:  b.UnpaidSplitsCount,
	}
}

// ToMemberBalanceResponses converts a slice of domain.MemberBalance to []MemberBalanceResponse.
func ToMemberBalanceResponses(balances []domain.MemberBalance) []MemberBalanceResponse {
	responses := make([]MemberBalanceResponse, len(balances))
	for i := range balances {
		responses[i] = ToMemberBalanceResponse(&balances[i])
	}
	return responses
}

// ToMemberSplitResponses converts a slice of domain.MemberSplit to []MemberSplitResponse.
func ToMemberSplitResponses(splits []domain.MemberSplit) []MemberSplitResponse {
	responses := make([]MemberSplitResponse, len(splits))
	for i := range splits {
		ms := &splits[i]
		responses[i] = MemberSplitResponse{
			LedgerSplitResponse: ToLedgerSplitResponse(&ms.Split),
			RoomID:              ms.Entry.RoomID,
			EntryTitle:          ms.Entry.Title,
			EntryType:           ms.Entry.EntryType,
			EntryStatus:         ms.Entry.Status,
			DueDate:             ms.Entry.DueDate,
		}
	}
	return responses
}
