package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/udisondev/roomserver/internal/model"
)

func newTestEnemy(t *testing.T, id int64) *model.Enemy {
	t.Helper()
	e, err := model.NewEnemy(id, model.EnemySlime, model.Vec3{X: 20, Z: 60})
	if err != nil {
		t.Fatalf("NewEnemy failed: %v", err)
	}
	return e
}

func TestTickManager_RegisterUnregister(t *testing.T) {
	mgr := NewTickManager()
	ai := NewPatrolAI(newTestEnemy(t, 1), DefaultPatrolBounds, rand.New(rand.NewPCG(1, 2)))

	mgr.Register(1, ai)

	if mgr.Count() != 1 {
		t.Errorf("Count() after Register() = %d, want 1", mgr.Count())
	}

	controller, err := mgr.GetController(1)
	if err != nil {
		t.Fatalf("GetController() error = %v", err)
	}
	if controller.CurrentState() != model.EnemyPatrol {
		t.Errorf("controller.CurrentState() = %v, want PATROL", controller.CurrentState())
	}

	// Re-registering the same id must not inflate the count.
	mgr.Register(1, ai)
	if mgr.Count() != 1 {
		t.Errorf("Count() after duplicate Register() = %d, want 1", mgr.Count())
	}

	mgr.Unregister(1)

	if mgr.Count() != 0 {
		t.Errorf("Count() after Unregister() = %d, want 0", mgr.Count())
	}
	if _, err := mgr.GetController(1); err == nil {
		t.Error("GetController() after Unregister() should return error")
	}
}

func TestTickManager_TickAll(t *testing.T) {
	mgr := NewTickManager()
	rng := rand.New(rand.NewPCG(1, 2))

	enemies := []*model.Enemy{newTestEnemy(t, 1), newTestEnemy(t, 2)}
	for _, e := range enemies {
		mgr.Register(e.ID(), NewPatrolAI(e, DefaultPatrolBounds, rng))
	}

	mgr.TickAll(0.1)

	for _, e := range enemies {
		if _, ok := e.PatrolTarget(); !ok {
			t.Errorf("enemy %d: expected patrol target after tick", e.ID())
		}
	}

	mgr.Clear()
	if mgr.Count() != 0 {
		t.Errorf("Count() after Clear() = %d, want 0", mgr.Count())
	}
}
