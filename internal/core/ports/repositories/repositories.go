package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LedgerRepo LedgerRepositoryFacade
	// MemberRepo is nil for storage drivers that do not share the room_members table.
	MemberRepo RoomMemberReader
}
