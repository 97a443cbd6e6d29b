// Package admin dispatches slash commands typed into room chat (/c, /n, /p).
package admin

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/udisondev/roomserver/internal/model"
)

// Room is the part of a room a command may act on.
// Interface to avoid import cycle with the room package.
type Room interface {
	Number() int32
	EnterNpc() *model.Npc
	FindPath(start, end model.Vec3) []model.Vec3
	SendToAllUser(data []byte, passIdx uint32, exceptMe bool)
}

// Issuer identifies who typed the command and where.
type Issuer struct {
	User *model.User
	Room Room
}

// Command is a chat command (/name params).
type Command interface {
	// Handle executes the command. params is the rest of the message after the name.
	Handle(issuer Issuer, params string) error
	// Names returns all registered command names (without / prefix).
	Names() []string
}

// Handler dispatches chat commands.
// Commands are registered once at startup, then read-only.
type Handler struct {
	mu   sync.RWMutex
	cmds map[string]Command // name → Command (lowercase)
}

// NewHandler creates an empty command handler.
func NewHandler() *Handler {
	return &Handler{cmds: make(map[string]Command, 8)}
}

// Register registers cmd under all its names.
// All command names are lowercased for case-insensitive lookup.
func (h *Handler) Register(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, name := range cmd.Names() {
		h.cmds[strings.ToLower(name)] = cmd
	}
}

// Handle processes a chat message starting with /.
// Returns true if a command was found and executed, even when it failed:
// a recognised command is never echoed to the room as chat.
func (h *Handler) Handle(issuer Issuer, msg string) bool {
	text, ok := strings.CutPrefix(msg, "/")
	if !ok {
		return false
	}
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return false
	}
	name := strings.ToLower(parts[0])

	h.mu.RLock()
	cmd, ok := h.cmds[name]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	params := strings.TrimSpace(text[len(parts[0]):])

	slog.Info("chat command",
		"userID", issuer.User.UserID(),
		"room", issuer.Room.Number(),
		"command", name)

	if err := cmd.Handle(issuer, params); err != nil {
		slog.Error("chat command failed",
			"userID", issuer.User.UserID(),
			"command", text,
			"error", err)
	}
	return true
}

// Count returns number of registered command names.
func (h *Handler) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.cmds)
}
