package daemon

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpscout/internal/domain"
)

func TestConnectionTable(t *testing.T) {
	t.Parallel()

	table := NewConnectionTable()

	_, ok := table.Get("echo")
	require.False(t, ok)

	r := domain.Active("echo", []domain.ToolDescriptor{{Name: "ping"}})
	table.Put(r)

	// Stored records do not alias the caller's slices.
	r.Tools[0].Name = "changed"
	got, ok := table.Get("echo")
	require.True(t, ok)
	require.Equal(t, "ping", got.Tools[0].Name)

	got.Tools[0].Name = "changed"
	again, _ := table.Get("echo")
	require.Equal(t, "ping", again.Tools[0].Name)

	table.Put(domain.Failed("echo", "Missing command"))
	got, _ = table.Get("echo")
	require.Equal(t, domain.ConnectionStatusFailed, got.Status)

	table.Put(domain.Pending("other", 1))
	table.Remove("other")
	_, ok = table.Get("other")
	require.False(t, ok)

	table.Reset()
	_, ok = table.Get("echo")
	require.False(t, ok)
}

func TestConnectionTable_Concurrent(t *testing.T) {
	t.Parallel()

	table := NewConnectionTable()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("server-%d", i%10)
			table.Put(domain.Pending(name, uint64(i)))
			_, _ = table.Get(name)
		}()
	}
	wg.Wait()

	for i := range 10 {
		_, ok := table.Get(fmt.Sprintf("server-%d", i))
		require.True(t, ok)
	}
}
