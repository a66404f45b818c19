package runtime

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"relay-chat/domain"
	errs "relay-chat/errors"
)

type nopSink struct{}

func (nopSink) Consume(e domain.Event) error { return nil }

func TestRegistry_Add_Keeps_Insertion_Order(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// Given no session is connected
	req.Empty(registry.Snapshot())

	// When three sessions register in order
	req.NoError(registry.Add("s1", nopSink{}))
	req.NoError(registry.Add("s2", nopSink{}))
	req.NoError(registry.Add("s3", nopSink{}))

	// Then the snapshot preserves insertion order
	req.Equal([]string{"s1", "s2", "s3"}, registry.Snapshot())
}

func TestRegistry_Add_Rejects_Duplicate_Id(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := uuid.NewString()

	// Given a registered session
	req.NoError(registry.Add(id, nopSink{}))

	// When the same id registers again
	err := registry.Add(id, nopSink{})

	// Then the duplicate is rejected and the roster is unchanged
	req.True(errors.Is(err, errs.ErrDuplicateSession))
	req.Equal([]string{id}, registry.Snapshot())
}

func TestRegistry_Remove_Reports_Membership_Change(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := uuid.NewString()

	req.NoError(registry.Add(id, nopSink{}))

	// When the session is removed twice
	req.True(registry.Remove(id))
	req.False(registry.Remove(id))

	// Then only the first removal changed membership
	req.Empty(registry.Snapshot())
}

func TestRegistry_Remove_Absent_Id_Is_Noop(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	req.NoError(registry.Add("s1", nopSink{}))

	// When removing an id that never connected
	changed := registry.Remove(uuid.NewString())

	// Then nothing happens
	req.False(changed)
	req.Equal([]string{"s1"}, registry.Snapshot())
}

func TestRegistry_Sink_Resolves_Registered_Sessions(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := nopSink{}

	req.NoError(registry.Add("s1", sink))

	got, ok := registry.Sink("s1")
	req.True(ok)
	req.Equal(sink, got)

	_, ok = registry.Sink("s2")
	req.False(ok)
}

func TestRegistry_Sessions_Pairs_Ids_With_Sinks(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	req.NoError(registry.Add("s1", nopSink{}))
	req.NoError(registry.Add("s2", nopSink{}))

	sessions := registry.Sessions()

	req.Len(sessions, 2)
	req.Equal("s1", sessions[0].ID)
	req.Equal("s2", sessions[1].ID)
	req.NotNil(sessions[0].Sink)
}

func TestRegistry_Concurrent_Mutations_Leave_Exact_Survivor_Set(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	const sessions = 100

	// When many connections register concurrently
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = registry.Add(fmt.Sprintf("s%03d", n), nopSink{})
		}(i)
	}
	wg.Wait()
	req.Len(registry.Snapshot(), sessions)

	// And every even-numbered session disconnects concurrently,
	// interleaved with snapshot readers
	for i := 0; i < sessions; i += 2 {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = registry.Remove(fmt.Sprintf("s%03d", n))
		}(i)
		go func() {
			defer wg.Done()
			registry.Snapshot()
		}()
	}
	wg.Wait()

	// Then exactly the odd-numbered sessions survive, no duplicates
	roster := registry.Snapshot()
	req.Len(roster, sessions/2)
	seen := make(map[string]struct{})
	for _, id := range roster {
		_, dup := seen[id]
		req.False(dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
