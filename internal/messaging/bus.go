// Package messaging carries GM notices between room server processes.
package messaging

import (
	"errors"
	"sync"
)

// ErrClosed is returned by a bus after Close.
var ErrClosed = errors.New("bus closed")

// Handler receives the payload of a published message.
type Handler func(data []byte)

// Bus is a subject-based publish/subscribe transport.
type Bus interface {
	Publish(subject string, data []byte) error
	// Subscribe registers handler for subject and returns an unsubscribe function.
	Subscribe(subject string, handler Handler) (func(), error)
	Close() error
}

// LocalBus delivers messages inside the process.
// Handlers run synchronously on the publishing goroutine.
type LocalBus struct {
	mu     sync.RWMutex
	subs   map[string]map[uint64]Handler
	nextID uint64
	closed bool
}

var _ Bus = (*LocalBus)(nil)

// NewLocalBus creates an in-process bus.
func NewLocalBus() *LocalBus {
	return &LocalBus{subs: make(map[string]map[uint64]Handler)}
}

// Publish delivers a copy of data to every handler of subject.
func (b *LocalBus) Publish(subject string, data []byte) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrClosed
	}
	handlers := make([]Handler, 0, len(b.subs[subject]))
	for _, h := range b.subs[subject] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(append([]byte(nil), data...))
	}
	return nil
}

// Subscribe implements Bus.
func (b *LocalBus) Subscribe(subject string, handler Handler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	b.nextID++
	id := b.nextID
	if b.subs[subject] == nil {
		b.subs[subject] = make(map[uint64]Handler)
	}
	b.subs[subject][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[subject], id)
	}, nil
}

// Close drops all subscriptions.
func (b *LocalBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	clear(b.subs)
	return nil
}
