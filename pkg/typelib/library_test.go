package typelib

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle string

func (h fakeHandle) TypeKey() string { return string(h) }

func TestAddIdempotent(t *testing.T) {
	lib := NewMemoryLibrary()

	id1, err := lib.Add(fakeHandle("src/types.ts:10"), "Props", "src/types.ts")
	require.NoError(t, err)
	assert.Equal(t, "src/types.ts::Props", id1)

	id2, err := lib.Add(fakeHandle("src/types.ts:10"), "Props", "src/types.ts")
	require.NoError(t, err)
	assert.Equal(t, id1, id2, "same type identity returns the id minted first")
	assert.Equal(t, 1, lib.Len())
}

func TestAddDisambiguatesCollidingNames(t *testing.T) {
	lib := NewMemoryLibrary()

	id1, err := lib.Add(fakeHandle("a"), "Props", "src/types.ts")
	require.NoError(t, err)
	id2, err := lib.Add(fakeHandle("b"), "Props", "src/types.ts")
	require.NoError(t, err)
	id3, err := lib.Add(fakeHandle("c"), "Props", "src/types.ts")
	require.NoError(t, err)

	assert.Equal(t, "src/types.ts::Props", id1)
	assert.Equal(t, "src/types.ts::Props$2", id2)
	assert.Equal(t, "src/types.ts::Props$3", id3)
	assert.Equal(t, 3, lib.Len())
}

func TestAddRejectsBadHandles(t *testing.T) {
	lib := NewMemoryLibrary()

	_, err := lib.Add(nil, "Props", "src/types.ts")
	assert.ErrorIs(t, err, ErrNilType)

	_, err = lib.Add(fakeHandle(""), "Props", "src/types.ts")
	assert.Error(t, err)

	assert.Equal(t, 0, lib.Len(), "failed registrations leave no entries")
}

func TestEntriesSnapshot(t *testing.T) {
	lib := NewMemoryLibrary()
	_, err := lib.Add(fakeHandle("a"), "A", "a.ts")
	require.NoError(t, err)
	_, err = lib.Add(fakeHandle("b"), "B", "b.ts")
	require.NoError(t, err)

	entries := lib.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{ID: "a.ts::A", Name: "A", Path: "a.ts"}, entries[0])
	assert.Equal(t, Entry{ID: "b.ts::B", Name: "B", Path: "b.ts"}, entries[1])

	entries[0].ID = "mutated"
	assert.Equal(t, "a.ts::A", lib.Entries()[0].ID, "Entries returns a copy")
}

func TestAddConcurrent(t *testing.T) {
	lib := NewMemoryLibrary()

	const workers = 16
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := lib.Add(fakeHandle("shared"), "Props", "src/types.ts")
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id, "racing registrations must not mint two ids")
	}
	assert.Equal(t, 1, lib.Len())
}
