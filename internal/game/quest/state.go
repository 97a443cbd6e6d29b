package quest

import (
	"errors"
	"sync"

	"github.com/udisondev/roomserver/internal/model"
)

// State constants matching the client QuestState enum.
const (
	StateNotAccepted byte = 0
	StateInProgress  byte = 1
	StateCompleted   byte = 2
)

var (
	// ErrAlreadyAccepted is returned by Accept on an existing record.
	ErrAlreadyAccepted = errors.New("quest already accepted")

	// ErrNotCompleted is returned by Claim before the quest is completed.
	ErrNotCompleted = errors.New("quest not completed")

	// ErrAlreadyClaimed is returned by Claim after the reward was handed out.
	ErrAlreadyClaimed = errors.New("quest reward already claimed")
)

// Progress tracks one user's progress in one quest.
// Thread-safe via mutex.
type Progress struct {
	mu sync.RWMutex

	def      Definition
	state    byte
	current  uint16
	rewarded bool
}

// NewProgress creates a NOT_ACCEPTED record for def.
func NewProgress(def Definition) *Progress {
	return &Progress{def: def}
}

// Definition returns the quest definition.
func (p *Progress) Definition() Definition {
	return p.def
}

// QuestID returns the quest identifier.
func (p *Progress) QuestID() int32 {
	return p.def.ID
}

// Snapshot returns state, current and required counts.
func (p *Progress) Snapshot() (state byte, current, required uint16) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state, p.current, p.def.Required
}

// State returns the current quest state.
func (p *Progress) State() byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Accept moves NOT_ACCEPTED → IN_PROGRESS with current = 0.
func (p *Progress) Accept() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateNotAccepted {
		return ErrAlreadyAccepted
	}
	p.state = StateInProgress
	p.current = 0
	return nil
}

// RecordKill advances an IN_PROGRESS quest for a qualifying kill.
// Returns true when the record changed. COMPLETED is reached exactly at current == required.
func (p *Progress) RecordKill(t model.EnemyType) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateInProgress || !p.def.Counts(t) {
		return false
	}

	if p.current < p.def.Required {
		p.current++
	}
	if p.current == p.def.Required {
		p.state = StateCompleted
	}
	return true
}

// Claim hands out the reward of a COMPLETED quest once.
func (p *Progress) Claim() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateCompleted {
		return ErrNotCompleted
	}
	if p.rewarded {
		return ErrAlreadyClaimed
	}
	p.rewarded = true
	return nil
}
