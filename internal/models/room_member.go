package models

import "time"

// RoomMember is a row of room_members. The table is owned by the room service; the
// ledger only reads it.
type RoomMember struct {
	MemberID    string    `json:"memberID"`
	RoomID      string    `json:"roomID"`
	UserID      string    `json:"userID"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
}
