package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitquest/internal/engine"
	"github.com/kurobon/gitquest/internal/graph"
)

func newPuzzleState(targets []engine.FileTarget, branches []string, constraints engine.Constraints) *engine.GameState {
	return engine.NewGameState(graph.New("main"), targets, "main", branches, constraints)
}

// replay runs a solution against a fresh copy of the initial state and
// returns whether the final command won.
func replay(t *testing.T, initial *engine.GameState, cmds []engine.Command) bool {
	t.Helper()
	s := initial.Clone()
	won := false
	for _, cmd := range cmds {
		res := engine.Apply(s, cmd)
		require.True(t, res.Success, "solution step %s rejected: %s", cmd, res.Message)
		won = res.GameWon
	}
	return won
}

func TestSolveTrivialTrunkPuzzle(t *testing.T) {
	// Example scenario 1: single file at (main, 2) has par 2.
	initial := newPuzzleState(
		[]engine.FileTarget{{ID: "f0", Branch: "main", Depth: 2}},
		[]string{"main"},
		engine.Constraints{MaxCommands: 8},
	)

	sol, ok := Solve(initial)
	require.True(t, ok)
	assert.Equal(t, 2, sol.Par)
	assert.True(t, replay(t, initial, sol.Commands))
}

func TestSolveTwoBranchPuzzle(t *testing.T) {
	// Example scenario 2: file A at (feature, 1), file B at (main, 1).
	// The optimal line branches early, collects on both branches and merges
	// back; ordering may vary but the length is exactly 6.
	initial := newPuzzleState(
		[]engine.FileTarget{
			{ID: "a", Branch: "feature", Depth: 1},
			{ID: "b", Branch: "main", Depth: 1},
		},
		[]string{"main", "feature"},
		engine.Constraints{MaxCommands: 10},
	)

	sol, ok := Solve(initial)
	require.True(t, ok)
	assert.Equal(t, 6, sol.Par)
	assert.True(t, replay(t, initial, sol.Commands))
}

func TestSolveRespectsCommandBound(t *testing.T) {
	// Same puzzle as the trivial one, but the command budget is too small:
	// the search must report unsolvable instead of running forever.
	initial := newPuzzleState(
		[]engine.FileTarget{{ID: "f0", Branch: "main", Depth: 2}},
		[]string{"main"},
		engine.Constraints{MaxCommands: 1},
	)

	_, ok := Solve(initial)
	assert.False(t, ok)
}

func TestSolveUnreachableTargetIsUnsolvable(t *testing.T) {
	// The target sits on a branch that is not in the puzzle's vocabulary,
	// so no command sequence can ever land on it.
	initial := newPuzzleState(
		[]engine.FileTarget{{ID: "f0", Branch: "ghost", Depth: 1}},
		[]string{"main"},
		engine.Constraints{MaxCommands: 5},
	)

	_, ok := Solve(initial)
	assert.False(t, ok)
}

func TestSolverDoesNotMutateInput(t *testing.T) {
	initial := newPuzzleState(
		[]engine.FileTarget{{ID: "f0", Branch: "main", Depth: 1}},
		[]string{"main"},
		engine.Constraints{MaxCommands: 5},
	)
	before := Signature(initial.Graph, initial.Targets)

	_, ok := Solve(initial)
	require.True(t, ok)
	assert.Equal(t, before, Signature(initial.Graph, initial.Targets))
	assert.Equal(t, 0, initial.CommandsUsed)
}

func TestSignature(t *testing.T) {
	a := newPuzzleState(nil, []string{"main"}, engine.Constraints{})
	b := newPuzzleState(nil, []string{"main"}, engine.Constraints{})
	assert.Equal(t, Signature(a.Graph, a.Targets), Signature(b.Graph, b.Targets))

	// Moving HEAD changes the signature.
	res := engine.Apply(b, engine.Command{Type: engine.CmdCheckout, Target: "c0"})
	require.True(t, res.Success)
	assert.NotEqual(t, Signature(a.Graph, a.Targets), Signature(b.Graph, b.Targets))

	// Collection status changes the signature.
	c := newPuzzleState([]engine.FileTarget{{ID: "f0", Branch: "main", Depth: 1}}, []string{"main"}, engine.Constraints{})
	before := Signature(c.Graph, c.Targets)
	res = engine.Apply(c, engine.Command{Type: engine.CmdCommit})
	require.True(t, res.Success)
	assert.NotEqual(t, before, Signature(c.Graph, c.Targets))
}
