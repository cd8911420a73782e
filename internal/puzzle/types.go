// Package puzzle defines the daily puzzle artifact, the difficulty tiers the
// generator draws from, the seeded generator itself and the file-backed
// store that persists generated puzzles.
package puzzle

import (
	"fmt"

	"github.com/kurobon/gitquest/internal/engine"
	"github.com/kurobon/gitquest/internal/graph"
)

// Puzzle is generated once per day, immutable thereafter, and shared by
// every player attempting that day.
type Puzzle struct {
	ID           string              `json:"id"`
	Date         string              `json:"date,omitempty"` // YYYY-MM-DD, empty for archive puzzles
	Tier         string              `json:"tier"`
	TrunkBranch  string              `json:"trunkBranch"`
	BranchNames  []string            `json:"branchNames"`
	InitialGraph *graph.Serialized   `json:"initialGraph"`
	FileTargets  []engine.FileTarget `json:"fileTargets"`
	Constraints  engine.Constraints  `json:"constraints"`
	ParScore     int                 `json:"parScore"`
	Solution     []engine.Command    `json:"solution"`
}

// NewGameState instantiates a fresh session for this puzzle. Each call
// rebuilds the graph from the serialized artifact so sessions never share
// mutable state.
func (p *Puzzle) NewGameState() (*engine.GameState, error) {
	g, err := graph.FromSerialized(p.InitialGraph)
	if err != nil {
		return nil, fmt.Errorf("puzzle %s: %w", p.ID, err)
	}
	return engine.NewGameState(g, p.FileTargets, p.TrunkBranch, p.BranchNames, p.Constraints), nil
}
