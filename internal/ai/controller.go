package ai

import "github.com/udisondev/roomserver/internal/model"

// Controller represents AI controller interface for enemies
type Controller interface {
	// Start starts AI controller
	Start()

	// Stop stops AI controller
	Stop()

	// SetState sets AI state
	SetState(state model.EnemyState)

	// CurrentState returns current AI state
	CurrentState() model.EnemyState

	// Tick advances AI by dt seconds (driven by the room tick loop)
	Tick(dt float32)
}
