package constants

// Room Server Protocol Constants
//
// Wire-level sizes shared by the packet codec, the connection buffers and the
// Unity game client. Changing any of these breaks compatibility with deployed clients.

// Packet Structure Constants
const (
	// PacketHeaderSize is {length u16, messageId u16, typeFlags u8}, little-endian.
	PacketHeaderSize = 5

	// PacketLengthOffset is the offset of the total length field.
	PacketLengthOffset = 0

	// PacketIDOffset is the offset of the message id field.
	PacketIDOffset = 2

	// PacketTypeOffset is the offset of the type flags byte (always 0, ignored on read).
	PacketTypeOffset = 4
)

// Fixed-capacity field sizes (NUL-padded on the wire).
const (
	// MaxUserIDLen is the user id capacity including the terminator (32 + 1).
	MaxUserIDLen = 33

	// MaxUserPWLen is the password capacity including the terminator (32 + 1).
	MaxUserPWLen = 33

	// MaxChatMsgLen is the chat message capacity including the terminator (256 + 1).
	MaxChatMsgLen = 257

	// MaxQuestTitleLen is the quest title capacity.
	MaxQuestTitleLen = 32

	// MaxQuestDescLen is the quest description capacity.
	MaxQuestDescLen = 64

	// MaxPathPoints is the number of waypoints a MovePathResponse can carry.
	MaxPathPoints = 10
)

// Buffer Size Constants
const (
	// DefaultConnBufferSize is the per-connection receive buffer capacity.
	DefaultConnBufferSize = 8096

	// DefaultReadChunkSize is the size of a single socket read.
	DefaultReadChunkSize = 1024

	// DefaultSendQueueSize is the per-connection outbound queue depth.
	DefaultSendQueueSize = 256
)
