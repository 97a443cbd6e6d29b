package ai

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// debugLoggingEnabled gates per-tick debug logs; set once from main via EnableDebugLogging.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables per-tick debug logging for the AI subsystem.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if per-tick debug logging is enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}

// TickManager keeps the AI controllers of one room.
// The room tick loop calls TickAll with the measured delta.
type TickManager struct {
	controllers     sync.Map // map[int64]Controller — enemyID → controller
	controllerCount atomic.Int32
}

// NewTickManager creates new AI tick manager
func NewTickManager() *TickManager {
	return &TickManager{}
}

// Register registers AI controller for an enemy
func (m *TickManager) Register(enemyID int64, controller Controller) {
	if _, loaded := m.controllers.Swap(enemyID, controller); !loaded {
		m.controllerCount.Add(1)
	}
	controller.Start()

	slog.Debug("AI controller registered",
		"enemyID", enemyID,
		"state", controller.CurrentState())
}

// Unregister unregisters AI controller
func (m *TickManager) Unregister(enemyID int64) {
	value, ok := m.controllers.LoadAndDelete(enemyID)
	if !ok {
		return
	}

	m.controllerCount.Add(-1)

	controller := value.(Controller)
	controller.Stop()

	slog.Debug("AI controller unregistered", "enemyID", enemyID)
}

// TickAll ticks all registered controllers
func (m *TickManager) TickAll(dt float32) {
	count := 0

	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick(dt)
		count++
		return true
	})

	if count > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", count, "dt", dt)
	}
}

// Clear stops and removes every controller.
func (m *TickManager) Clear() {
	m.controllers.Range(func(key, _ any) bool {
		m.Unregister(key.(int64))
		return true
	})
}

// Count returns number of registered controllers (O(1) cached count)
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns controller for an enemy
func (m *TickManager) GetController(enemyID int64) (Controller, error) {
	value, ok := m.controllers.Load(enemyID)
	if !ok {
		return nil, fmt.Errorf("controller not found for enemyID %d", enemyID)
	}
	return value.(Controller), nil
}
