package session

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitquest/internal/engine"
	"github.com/kurobon/gitquest/internal/puzzle"
)

func testManager(t *testing.T) (*Manager, *puzzle.Puzzle) {
	t.Helper()
	tier := puzzle.Tier{
		Name:     "test",
		Files:    2,
		MinDepth: 1,
		MaxDepth: 2,
		Branches: []string{"main", "feature"},
		ParMin:   2,
		ParMax:   8,
		Constraints: engine.Constraints{
			MaxCommands:  8,
			MaxCommits:   6,
			MaxCheckouts: 4,
		},
	}
	gen := puzzle.NewGenerator([]puzzle.Tier{tier}, nil)
	p, err := gen.GenerateDaily(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), "test")
	require.NoError(t, err)

	store := puzzle.NewStore(memfs.New(), "puzzles")
	require.NoError(t, store.Save(p))
	return NewManager(store), p
}

func TestHydrateReturnsSameSession(t *testing.T) {
	m, p := testManager(t)

	s1, err := m.Hydrate(p.ID, "alice")
	require.NoError(t, err)
	s2, err := m.Hydrate(p.ID, "alice")
	require.NoError(t, err)
	assert.Same(t, s1, s2, "one authoritative holder per user+puzzle")

	s3, err := m.Hydrate(p.ID, "bob")
	require.NoError(t, err)
	assert.NotSame(t, s1, s3)
	assert.Equal(t, 2, m.Len())
}

func TestSessionsDoNotShareState(t *testing.T) {
	m, p := testManager(t)

	res, err := m.ApplyCommand(p.ID, "alice", engine.Command{Type: engine.CmdCommit})
	require.NoError(t, err)
	require.True(t, res.Success)

	alice, _ := m.Hydrate(p.ID, "alice")
	bob, _ := m.Hydrate(p.ID, "bob")
	assert.Equal(t, 1, alice.State.CommandsUsed)
	assert.Equal(t, 0, bob.State.CommandsUsed)
	assert.NotEqual(t, alice.State.Graph.Len(), bob.State.Graph.Len())
}

func TestHydrateUnknownPuzzle(t *testing.T) {
	m, _ := testManager(t)
	_, err := m.Hydrate("daily-2099-12-31", "alice")
	assert.Error(t, err)
}

func TestUndoThroughManager(t *testing.T) {
	m, p := testManager(t)

	_, err := m.ApplyCommand(p.ID, "alice", engine.Command{Type: engine.CmdCommit})
	require.NoError(t, err)

	_, ok, err := m.Undo(p.ID, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	// Nothing left to undo.
	_, ok, err = m.Undo(p.ID, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	alice, _ := m.Hydrate(p.ID, "alice")
	assert.Equal(t, 0, alice.State.CommandsUsed)
}

func TestAbandonDropsSession(t *testing.T) {
	m, p := testManager(t)

	_, err := m.Hydrate(p.ID, "alice")
	require.NoError(t, err)
	require.NoError(t, m.Abandon(p.ID, "alice"))
	assert.Equal(t, 0, m.Len())

	assert.Error(t, m.Abandon(p.ID, "alice"))

	// A new attempt starts fresh.
	s, err := m.Hydrate(p.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, engine.StatusInProgress, s.State.Status)
}
