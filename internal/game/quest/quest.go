// Package quest implements kill-count quests handed out by room NPCs.
// Provides quest definitions, the registry keyed by NPC and per-user progress tracking.
package quest

import (
	"fmt"
	"sync"

	"github.com/udisondev/roomserver/internal/model"
)

// Definition describes a quest offered by an NPC.
type Definition struct {
	ID          int32
	NpcID       int32
	Title       string
	Description string

	// TargetType limits which kills count; 0 counts any enemy.
	TargetType model.EnemyType
	Required   uint16

	RewardItemID uint32
	RewardQty    uint16
}

// Counts reports whether killing an enemy of type t advances this quest.
func (d Definition) Counts(t model.EnemyType) bool {
	return d.TargetType == 0 || d.TargetType == t
}

// DefaultDefinitions returns the quests shipped with the client build.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			ID:           1,
			NpcID:        10000,
			Title:        "Slime Hunt",
			Description:  "Clear the field: defeat 3 monsters.",
			Required:     3,
			RewardItemID: 1001,
			RewardQty:    1,
		},
	}
}

// Registry holds quest definitions. Read-mostly, safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	byID  map[int32]Definition
	byNpc map[int32]int32 // npcID → questID
}

// NewRegistry creates a registry populated with defs.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		byID:  make(map[int32]Definition, len(defs)),
		byNpc: make(map[int32]int32, len(defs)),
	}
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a definition.
func (r *Registry) Register(d Definition) error {
	if d.Required == 0 {
		return fmt.Errorf("register quest %d: required count must be positive", d.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[d.ID]; ok {
		return fmt.Errorf("register quest %d: duplicate id", d.ID)
	}
	if other, ok := r.byNpc[d.NpcID]; ok {
		return fmt.Errorf("register quest %d: npc %d already gives quest %d", d.ID, d.NpcID, other)
	}

	r.byID[d.ID] = d
	r.byNpc[d.NpcID] = d.ID
	return nil
}

// Get returns the definition for questID.
func (r *Registry) Get(questID int32) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byID[questID]
	return d, ok
}

// ForNpc returns the quest offered by npcID.
func (r *Registry) ForNpc(npcID int32) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byNpc[npcID]
	if !ok {
		return Definition{}, false
	}
	return r.byID[id], true
}
