package matchmaking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	name string
}

func TestRegistry_TryPair(t *testing.T) {
	t.Run("A waits, B pairs with A, C waits again", func(t *testing.T) {
		// Given: an empty registry and three sessions
		registry := NewRegistry[*session]()
		a, b, c := &session{"A"}, &session{"B"}, &session{"C"}

		// When: A arrives first
		_, paired := registry.TryPair(a)

		// Then: A waits in the slot
		assert.False(t, paired)
		assert.True(t, registry.IsWaiting())

		// When: B arrives
		peer, paired := registry.TryPair(b)

		// Then: B is paired with A and the slot is empty
		require.True(t, paired)
		assert.Same(t, a, peer)
		assert.False(t, registry.IsWaiting())

		// When: C arrives after the pair formed
		_, paired = registry.TryPair(c)

		// Then: C becomes the new waiter
		assert.False(t, paired)
		assert.True(t, registry.IsWaiting())
	})

	t.Run("Concurrent arrivals form disjoint pairs", func(t *testing.T) {
		// Given: an even number of sessions arriving at once
		const sessions = 200
		registry := NewRegistry[*session]()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			waiters int
			seen    = make(map[*session]int)
		)

		for i := range sessions {
			wg.Add(1)
			go func(s *session) {
				defer wg.Done()

				peer, paired := registry.TryPair(s)

				mu.Lock()
				defer mu.Unlock()
				if !paired {
					waiters++
					return
				}
				seen[peer]++
				seen[s]++
			}(&session{name: string(rune('a' + i%26))})
		}
		wg.Wait()

		// Then: every pairing consumed exactly one waiter and nobody is paired twice
		assert.Equal(t, sessions/2, waiters)
		assert.Len(t, seen, sessions)
		for _, count := range seen {
			assert.Equal(t, 1, count)
		}
		assert.False(t, registry.IsWaiting())
	})
}

func TestRegistry_Withdraw(t *testing.T) {
	t.Run("Waiter can leave the slot", func(t *testing.T) {
		registry := NewRegistry[*session]()
		a := &session{"A"}
		registry.TryPair(a)

		assert.True(t, registry.Withdraw(a))
		assert.False(t, registry.IsWaiting())
	})

	t.Run("Only the current waiter is removed", func(t *testing.T) {
		registry := NewRegistry[*session]()
		a, b := &session{"A"}, &session{"B"}
		registry.TryPair(a)

		assert.False(t, registry.Withdraw(b))
		assert.True(t, registry.IsWaiting())
	})

	t.Run("Paired session is no longer withdrawable", func(t *testing.T) {
		registry := NewRegistry[*session]()
		a, b := &session{"A"}, &session{"B"}
		registry.TryPair(a)
		registry.TryPair(b)

		assert.False(t, registry.Withdraw(a))
	})
}
