package domain

import "time"

// RoomRole is the role a member holds within a room.
type RoomRole string

const (
	RoleLandlord     RoomRole = "LANDLORD"
	RoleHeadRoommate RoomRole = "HEAD_ROOMMATE"
	RoleRoommate     RoomRole = "ROOMMATE"
	RoleAssistant    RoomRole = "ASSISTANT"
	RoleGuest        RoomRole = "GUEST"
)

// IsValid reports whether r is one of the known room roles.
func (r RoomRole) IsValid() bool {
	switch r {
	case RoleLandlord, RoleHeadRoommate, RoleRoommate, RoleAssistant, RoleGuest:
		return true
	}
	return false
}

// RoomMember is a user's membership in a room as reported by the membership oracle.
type RoomMember struct {
	MemberID    string    `json:"memberID"`
	RoomID      string    `json:"roomID"`
	UserID      string    `json:"userID"`
	DisplayName string    `json:"displayName"`
	Role        RoomRole  `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// HasRole reports whether the member holds any of the given roles.
func (m RoomMember) HasRole(roles ...RoomRole) bool {
	for _, r := range roles {
		if m.Role == r {
			return true
		}
	}
	return false
}

// SplitsEqually reports whether the member takes a share of an equal split.
// Landlords and guests never do.
func (m RoomMember) SplitsEqually() bool {
	return !m.HasRole(RoleLandlord, RoleGuest)
}
