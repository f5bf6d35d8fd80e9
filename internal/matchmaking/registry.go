// Package matchmaking holds the single-slot rendezvous that pairs two independent sessions.
package matchmaking

import "sync"

// Registry is a waiting room with room for exactly one session.
// The lock is held only while the slot is inspected or swapped.
type Registry[T comparable] struct {
	mu      sync.Mutex
	waiting T
	filled  bool
}

func NewRegistry[T comparable]() *Registry[T] {
	return &Registry[T]{}
}

// TryPair - takes the waiting session if there is one, otherwise parks session in the slot.
// paired is false when session became the waiter.
func (that *Registry[T]) TryPair(session T) (peer T, paired bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.filled {
		peer = that.waiting

		var zero T
		that.waiting = zero
		that.filled = false

		return peer, true
	}

	that.waiting = session
	that.filled = true

	return peer, false
}

// Withdraw - removes session from the slot if it is still the waiter.
func (that *Registry[T]) Withdraw(session T) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.filled || that.waiting != session {
		return false
	}

	var zero T
	that.waiting = zero
	that.filled = false

	return true
}

// IsWaiting - reports whether a session occupies the slot.
func (that *Registry[T]) IsWaiting() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.filled
}
