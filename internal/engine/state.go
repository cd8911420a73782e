package engine

import (
	"github.com/kurobon/gitquest/internal/graph"
)

// FileTarget is a collectible placed at a (branch, depth) coordinate.
// Collection is set once a commit lands exactly on that position and is
// never unset; CollectedBy records the collecting commit so the win
// predicate can check it has been merged back to the trunk.
type FileTarget struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Branch      string `json:"branch"`
	Depth       int    `json:"depth"`
	Collected   bool   `json:"collected"`
	CollectedBy string `json:"collectedBy,omitempty"`
}

// Constraints bound a puzzle session. Zero means unlimited for every field
// except AllowedCommands, where empty means all command types are allowed.
type Constraints struct {
	MaxCommands           int           `json:"maxCommands"`
	MaxCommits            int           `json:"maxCommits"`
	MaxCheckouts          int           `json:"maxCheckouts"`
	MaxConsecutiveCommits int           `json:"maxConsecutiveCommits"`
	MaxBranches           int           `json:"maxBranches"`
	AllowedCommands       []CommandType `json:"allowedCommandTypes"`
}

// Allows reports whether the command type is permitted.
func (c Constraints) Allows(t CommandType) bool {
	if t == CmdUndo || len(c.AllowedCommands) == 0 {
		return true
	}
	for _, allowed := range c.AllowedCommands {
		if allowed == t {
			return true
		}
	}
	return false
}

// Status is the lifecycle of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusAbandoned  Status = "abandoned"
)

// snapshot is one undo-stack entry: the full (graph, fileTargets) pair plus
// the counters the undone command had consumed.
type snapshot struct {
	graph              *graph.Graph
	targets            []*FileTarget
	cmd                Command
	consecutiveCommits int
	status             Status
}

// GameState is the complete per-session state. It is mutated exclusively by
// Apply and Undo; callers needing concurrency safety must serialize access
// externally (single writer per session).
type GameState struct {
	Graph           *graph.Graph
	Targets         []*FileTarget
	TrunkBranch     string
	BranchNames     []string // the fixed, pre-declared branch vocabulary
	Constraints     Constraints
	CommandHistory  []Command
	CommandsUsed    int
	CheckoutsUsed   int
	ConsecutiveCmts int
	Status          Status

	undo []snapshot
}

// NewGameState builds a fresh session over the given graph. Targets are
// deep-copied so every session tracks its own collection flags.
func NewGameState(g *graph.Graph, targets []FileTarget, trunk string, branchNames []string, constraints Constraints) *GameState {
	s := &GameState{
		Graph:       g,
		TrunkBranch: trunk,
		BranchNames: append([]string(nil), branchNames...),
		Constraints: constraints,
		Status:      StatusInProgress,
	}
	for i := range targets {
		t := targets[i]
		s.Targets = append(s.Targets, &t)
	}
	return s
}

// Clone deep-copies the state. The undo stack is not carried over; the
// solver, the only caller, never undoes.
func (s *GameState) Clone() *GameState {
	c := &GameState{
		Graph:           s.Graph.Clone(),
		TrunkBranch:     s.TrunkBranch,
		BranchNames:     append([]string(nil), s.BranchNames...),
		Constraints:     s.Constraints,
		CommandHistory:  append([]Command(nil), s.CommandHistory...),
		CommandsUsed:    s.CommandsUsed,
		CheckoutsUsed:   s.CheckoutsUsed,
		ConsecutiveCmts: s.ConsecutiveCmts,
		Status:          s.Status,
	}
	c.Targets = cloneTargets(s.Targets)
	return c
}

func cloneTargets(targets []*FileTarget) []*FileTarget {
	out := make([]*FileTarget, 0, len(targets))
	for _, t := range targets {
		dup := *t
		out = append(out, &dup)
	}
	return out
}

// UndoDepth returns the number of snapshots available to undo.
func (s *GameState) UndoDepth() int { return len(s.undo) }

// pushSnapshot records the pre-command state. The stack is bounded by
// MaxCommands since at most that many mutations can succeed.
func (s *GameState) pushSnapshot(cmd Command) {
	s.undo = append(s.undo, snapshot{
		graph:              s.Graph.Clone(),
		targets:            cloneTargets(s.Targets),
		cmd:                cmd,
		consecutiveCommits: s.ConsecutiveCmts,
		status:             s.Status,
	})
}

// popSnapshot restores the most recent snapshot verbatim and reports the
// command it belonged to. Counters and history are the caller's business:
// Undo adjusts them, internal rollbacks (which run before counters and
// history are touched) must not.
func (s *GameState) popSnapshot() (Command, bool) {
	if len(s.undo) == 0 {
		return Command{}, false
	}
	snap := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.Graph = snap.graph
	s.Targets = snap.targets
	s.ConsecutiveCmts = snap.consecutiveCommits
	s.Status = snap.status
	return snap.cmd, true
}

// commitCommandsUsed counts executed commit commands; derived from history so
// undo keeps it consistent for free.
func (s *GameState) commitCommandsUsed() int {
	n := 0
	for _, cmd := range s.CommandHistory {
		if cmd.Type == CmdCommit {
			n++
		}
	}
	return n
}

// collectAt marks any uncollected target sitting exactly at (branch, depth)
// as collected by the given commit. Returns the ids of newly collected
// targets.
func (s *GameState) collectAt(branch string, depth int, commitID string) []string {
	var collected []string
	for _, t := range s.Targets {
		if !t.Collected && t.Branch == branch && t.Depth == depth {
			t.Collected = true
			t.CollectedBy = commitID
			collected = append(collected, t.ID)
		}
	}
	return collected
}

// allCollected reports whether every target has been collected.
func (s *GameState) allCollected() bool {
	for _, t := range s.Targets {
		if !t.Collected {
			return false
		}
	}
	return true
}
