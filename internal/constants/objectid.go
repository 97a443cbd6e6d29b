package constants

// Actor UUID ranges.
//
// Players use their connection index as UUID (0..MaxClients-1).
// NPCs created inside a room start at NpcUUIDStart.
const (
	// NpcUUIDStart is the UUID of the first NPC of a room.
	NpcUUIDStart = 10000
)

// IsNpcUUID returns true if uuid is in the NPC range.
func IsNpcUUID(uuid int64) bool {
	return uuid >= NpcUUIDStart
}
