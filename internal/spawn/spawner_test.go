package spawn

import (
	"errors"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/udisondev/roomserver/internal/model"
)

func testPoint() Point {
	return Point{
		ID:           1,
		EnemyType:    model.EnemySlime,
		Position:     model.Vec3{X: 20, Z: 60},
		RespawnDelay: 3 * time.Second,
	}
}

func TestSpawner_SpawnEnemy(t *testing.T) {
	s := NewSpawner(testPoint())

	if s.State() != StateEmpty {
		t.Errorf("State() = %v, want EMPTY", s.State())
	}

	enemy, err := s.SpawnEnemy(100)
	if err != nil {
		t.Fatalf("SpawnEnemy() error = %v", err)
	}
	if enemy.ID() != 100 {
		t.Errorf("enemy.ID() = %d, want 100", enemy.ID())
	}
	if enemy.Position() != (model.Vec3{X: 20, Z: 60}) {
		t.Errorf("enemy.Position() = %+v, want spawn point", enemy.Position())
	}
	if s.State() != StateLive {
		t.Errorf("State() = %v, want LIVE", s.State())
	}

	if _, err := s.SpawnEnemy(101); !errors.Is(err, ErrAlreadySpawned) {
		t.Errorf("second SpawnEnemy() error = %v, want ErrAlreadySpawned", err)
	}
}

func TestSpawner_DefaultDelay(t *testing.T) {
	p := testPoint()
	p.RespawnDelay = 0
	s := NewSpawner(p)

	if s.Point().RespawnDelay != DefaultRespawnDelay {
		t.Errorf("RespawnDelay = %v, want %v", s.Point().RespawnDelay, DefaultRespawnDelay)
	}
}

func TestSpawner_RespawnCycle(t *testing.T) {
	s := NewSpawner(testPoint())
	if _, err := s.SpawnEnemy(1); err != nil {
		t.Fatalf("SpawnEnemy() error = %v", err)
	}

	s.OnEnemyDeath()

	if s.State() != StateWaiting {
		t.Fatalf("State() = %v, want WAITING", s.State())
	}
	if id, ok := s.Retired(); !ok || id != 1 {
		t.Errorf("Retired() = %d, %v, want 1, true", id, ok)
	}
	if _, err := s.SpawnEnemy(2); !errors.Is(err, ErrRespawnPending) {
		t.Errorf("SpawnEnemy() during countdown error = %v, want ErrRespawnPending", err)
	}

	if s.Tick(2.0) {
		t.Error("Tick(2.0) signaled before delay elapsed")
	}
	if !s.Tick(1.0) {
		t.Fatal("Tick(1.0) did not signal when countdown reached zero")
	}
	if s.Tick(1.0) {
		t.Error("Tick signaled twice")
	}
	if s.State() != StateReady {
		t.Errorf("State() = %v, want READY", s.State())
	}

	enemy, err := s.SpawnEnemy(2)
	if err != nil {
		t.Fatalf("SpawnEnemy() after countdown error = %v", err)
	}
	if enemy.Health() != enemy.MaxHealth() {
		t.Errorf("respawned enemy health = %d, want %d", enemy.Health(), enemy.MaxHealth())
	}
	if s.State() != StateLive {
		t.Errorf("State() = %v, want LIVE", s.State())
	}
}

func TestSpawner_OnEnemyDeathWithoutEnemy(t *testing.T) {
	s := NewSpawner(testPoint())
	s.OnEnemyDeath()

	if s.State() != StateEmpty {
		t.Errorf("State() = %v, want EMPTY", s.State())
	}
	if s.Tick(100) {
		t.Error("Tick signaled without a pending respawn")
	}
}

func TestSpawner_Release(t *testing.T) {
	s := NewSpawner(testPoint())
	if _, err := s.SpawnEnemy(1); err != nil {
		t.Fatalf("SpawnEnemy() error = %v", err)
	}

	s.Release()

	if _, ok := s.EnemyID(); ok {
		t.Error("EnemyID() still set after Release()")
	}
	if s.State() != StateEmpty {
		t.Errorf("State() = %v, want EMPTY", s.State())
	}
}

// No respawn is possible before the delay has elapsed, and the ready signal fires once.
func TestSpawner_CountdownProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		delay := rapid.IntRange(1, 60).Draw(t, "delaySeconds")
		p := testPoint()
		p.RespawnDelay = time.Duration(delay) * time.Second
		s := NewSpawner(p)

		if _, err := s.SpawnEnemy(1); err != nil {
			t.Fatalf("SpawnEnemy() error = %v", err)
		}
		s.OnEnemyDeath()

		var elapsed float32
		signals := 0
		steps := rapid.SliceOfN(rapid.Float32Range(0.001, 5), 1, 200).Draw(t, "steps")
		for _, dt := range steps {
			if s.Tick(dt) {
				signals++
			}
			elapsed += dt

			_, err := s.SpawnEnemy(2)
			if err == nil {
				if elapsed < float32(delay)-0.01 {
					t.Fatalf("respawned after %.3fs, delay %ds", elapsed, delay)
				}
				return
			}
			if !errors.Is(err, ErrRespawnPending) {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if signals > 1 {
			t.Fatalf("ready signaled %d times", signals)
		}
	})
}
