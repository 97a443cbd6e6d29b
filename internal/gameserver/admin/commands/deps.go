// Package commands implements the room chat commands.
package commands

// NoticePublisher queues a GM notice for delivery to every room.
// Interface to avoid import cycle with gameserver package.
type NoticePublisher interface {
	PushNotice(connIdx uint32, userID, message string) error
}
