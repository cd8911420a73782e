package solver

import (
	"github.com/kurobon/gitquest/internal/engine"
)

// DefaultMaxDepth bounds the search when a puzzle declares no command limit.
const DefaultMaxDepth = 15

// Solution is the optimal winning command sequence; Par is its length.
type Solution struct {
	Commands []engine.Command
	Par      int
}

type node struct {
	state *engine.GameState
	path  []engine.Command
}

// Solve runs a breadth-first search from the given initial state. Each edge
// is one legal command at uniform cost, so the first winning state dequeued
// yields the optimal par score. Returns false if no winning sequence exists
// within the puzzle's command limit.
func Solve(initial *engine.GameState) (*Solution, bool) {
	maxDepth := initial.Constraints.MaxCommands
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	start := initial.Clone()
	visited := map[string]bool{Signature(start.Graph, start.Targets): true}
	queue := []node{{state: start}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if len(current.path) >= maxDepth {
			continue
		}

		for _, cmd := range candidateCommands(current.state) {
			next := current.state.Clone()
			res := engine.Apply(next, cmd)
			if !res.Success {
				continue
			}

			path := make([]engine.Command, len(current.path), len(current.path)+1)
			copy(path, current.path)
			path = append(path, cmd)

			if res.GameWon {
				return &Solution{Commands: path, Par: len(path)}, true
			}

			sig := Signature(next.Graph, next.Targets)
			if visited[sig] {
				continue
			}
			visited[sig] = true
			queue = append(queue, node{state: next, path: path})
		}
	}
	return nil, false
}

// candidateCommands enumerates every legal argument choice: the single
// commit variant (message content never affects state), each not-yet-created
// declared branch, each branch and each commit id as a checkout target, and
// each other branch for merge and rebase.
func candidateCommands(s *engine.GameState) []engine.Command {
	var cmds []engine.Command

	cmds = append(cmds, engine.Command{Type: engine.CmdCommit, Message: "work"})

	existing := s.Graph.BranchNames()
	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}
	for _, name := range s.BranchNames {
		if !existingSet[name] {
			cmds = append(cmds, engine.Command{Type: engine.CmdBranch, Name: name})
		}
	}

	currentBranch, attached := s.Graph.CurrentBranch()
	for _, name := range existing {
		if attached && name == currentBranch {
			continue
		}
		cmds = append(cmds, engine.Command{Type: engine.CmdCheckout, Target: name})
	}
	for _, id := range s.Graph.CommitIDs() {
		cmds = append(cmds, engine.Command{Type: engine.CmdCheckout, Target: id})
	}

	if attached {
		for _, name := range existing {
			if name == currentBranch {
				continue
			}
			cmds = append(cmds, engine.Command{Type: engine.CmdMerge, Name: name})
			cmds = append(cmds, engine.Command{Type: engine.CmdRebase, Name: name})
		}
	}

	return cmds
}
