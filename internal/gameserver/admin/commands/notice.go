package commands

import (
	"errors"
	"fmt"

	"github.com/udisondev/roomserver/internal/gameserver/admin"
)

// Notice handles /n <text> — broadcasts a GM notice to every room.
// Delivery goes through the task queue so other server processes receive it too.
type Notice struct {
	publisher NoticePublisher
}

// NewNotice creates the notice command.
func NewNotice(publisher NoticePublisher) *Notice {
	return &Notice{publisher: publisher}
}

func (c *Notice) Names() []string { return []string{"n"} }

func (c *Notice) Handle(issuer admin.Issuer, params string) error {
	if params == "" {
		return errors.New("usage: /n <text>")
	}
	if err := c.publisher.PushNotice(issuer.User.Index(), issuer.User.UserID(), params); err != nil {
		return fmt.Errorf("queueing notice: %w", err)
	}
	return nil
}
