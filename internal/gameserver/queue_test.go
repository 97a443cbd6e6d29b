package gameserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFifo_Order(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var q fifo[uint32]
		var model []uint32

		ops := rapid.SliceOf(rapid.Uint32Range(0, 100)).Draw(t, "ops")
		for _, op := range ops {
			// чётные значения кладём, нечётные забирают
			if op%2 == 0 {
				q.push(op)
				model = append(model, op)
				continue
			}
			got, ok := q.pop()
			if len(model) == 0 {
				if ok {
					t.Fatalf("pop from empty queue returned %d", got)
				}
				continue
			}
			if !ok || got != model[0] {
				t.Fatalf("pop = %d,%v want %d", got, ok, model[0])
			}
			model = model[1:]
		}
		if q.len() != len(model) {
			t.Fatalf("len = %d want %d", q.len(), len(model))
		}
	})
}

func TestFifo_Empty(t *testing.T) {
	var q fifo[string]
	_, ok := q.pop()
	assert.False(t, ok)

	q.push("a")
	q.push("b")
	v, _ := q.pop()
	assert.Equal(t, "a", v)
	assert.Equal(t, 1, q.len())
}

func TestFifo_SteadyLoadStaysBounded(t *testing.T) {
	var q fifo[int]
	for i := range 8 {
		q.push(i)
	}

	// очередь никогда не пустеет: на каждый pop приходит push
	for i := 8; i < 10000; i++ {
		q.push(i)
		v, ok := q.pop()
		assert.True(t, ok)
		assert.Equal(t, i-8, v)
	}

	assert.Equal(t, 8, q.len())
	assert.LessOrEqual(t, len(q.items), 32)
}
