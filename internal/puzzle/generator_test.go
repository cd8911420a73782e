package puzzle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitquest/internal/engine"
)

func testTier() Tier {
	return Tier{
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
}

func TestGenerateDailyIsDeterministic(t *testing.T) {
	gen := NewGenerator([]Tier{testTier()}, nil)
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	p1, err := gen.GenerateDaily(date, "test")
	require.NoError(t, err)
	p2, err := gen.GenerateDaily(date, "test")
	require.NoError(t, err)

	assert.Equal(t, "daily-2026-03-14", p1.ID)
	assert.Equal(t, "2026-03-14", p1.Date)
	assert.Equal(t, p1.FileTargets, p2.FileTargets)
	assert.Equal(t, p1.ParScore, p2.ParScore)
	assert.Equal(t, p1.Solution, p2.Solution)
}

func TestGeneratedPuzzleSolutionWins(t *testing.T) {
	gen := NewGenerator([]Tier{testTier()}, nil)

	p, err := gen.GenerateDaily(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), "test")
	require.NoError(t, err)
	require.Len(t, p.Solution, p.ParScore)

	state, err := p.NewGameState()
	require.NoError(t, err)
	require.NoError(t, state.Graph.CheckInvariants())

	won := false
	for _, cmd := range p.Solution {
		res := engine.Apply(state, cmd)
		require.True(t, res.Success, "solution step %s rejected: %s", cmd, res.Message)
		won = res.GameWon
	}
	assert.True(t, won, "replaying the stored solution must win in exactly parScore steps")

	// At least one target is off-trunk so a merge or rebase is required.
	offTrunk := false
	for _, target := range p.FileTargets {
		if target.Branch != p.TrunkBranch {
			offTrunk = true
		}
	}
	assert.True(t, offTrunk)
}

func TestGenerateArchiveGetsUniqueID(t *testing.T) {
	gen := NewGenerator([]Tier{testTier()}, nil)

	p1, err := gen.GenerateArchive("practice-1", "test")
	require.NoError(t, err)
	p2, err := gen.GenerateArchive("practice-1", "test")
	require.NoError(t, err)

	assert.Empty(t, p1.Date)
	assert.NotEqual(t, p1.ID, p2.ID, "archive puzzles get fresh ids")
	assert.Equal(t, p1.FileTargets, p2.FileTargets, "content still follows the seed")
}

func TestGenerationFailureIsSurfaced(t *testing.T) {
	// A par band no candidate can land in exhausts the retry budget and
	// must fail loudly rather than fall back to a default puzzle.
	impossible := testTier()
	impossible.ParMin = 1
	impossible.ParMax = 1

	gen := NewGenerator([]Tier{impossible}, nil)
	gen.MaxAttempts = 3

	_, err := gen.GenerateDaily(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), "test")
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, 3, genErr.Attempts)
}

func TestGenerateUnknownTier(t *testing.T) {
	gen := NewGenerator([]Tier{testTier()}, nil)
	_, err := gen.GenerateDaily(time.Now(), "nope")
	assert.Error(t, err)
}
