package engine

import (
	"fmt"
	"time"

	"github.com/kurobon/gitquest/internal/graph"
)

func applyRebase(s *GameState, cmd Command) CommandResult {
	currentBranch, attached := s.Graph.CurrentBranch()
	if !attached {
		return failf(ErrState, "cannot rebase with a detached HEAD; checkout a branch first")
	}
	onto, ok := s.Graph.Branch(cmd.Name)
	if !ok {
		return failf(ErrReference, "rebase: unknown branch '%s'", cmd.Name)
	}
	current, ok := s.Graph.Branch(currentBranch)
	if !ok {
		return failf(ErrState, "HEAD branch '%s' does not resolve", currentBranch)
	}

	chain := s.Graph.RebaseChain(current.TipCommitID, onto.TipCommitID)
	if len(chain) == 0 {
		// Still counts as a command and still re-checks the win predicate:
		// a previous merge may already have put the trunk in a winning shape.
		s.pushSnapshot(cmd)
		res := success("Already up to date.")
		res.GameWon = checkWin(s, currentBranch)
		return res
	}

	s.pushSnapshot(cmd)
	parentID := onto.TipCommitID
	var collected []string
	for _, original := range chain {
		parent, ok := s.Graph.Commit(parentID)
		if !ok {
			s.popSnapshot()
			return failf(ErrState, "rebase failed: base %s does not resolve", parentID)
		}
		replayed := &graph.Commit{
			ID:           s.Graph.NewCommitID(),
			Message:      original.Message,
			ParentIDs:    []string{parentID},
			OriginBranch: currentBranch,
			Depth:        parent.Depth + 1,
			Timestamp:    time.Now().UTC(),
		}
		if err := s.Graph.AddCommit(replayed); err != nil {
			s.popSnapshot()
			return failf(ErrState, "rebase failed: %v", err)
		}

		// Replay preserves collection provenance: targets collected by the
		// original commit now point at its replayed counterpart, and the
		// replayed position may collect targets of its own.
		for _, t := range s.Targets {
			if t.Collected && t.CollectedBy == original.ID {
				t.CollectedBy = replayed.ID
			}
		}
		collected = append(collected, s.collectAt(currentBranch, replayed.Depth, replayed.ID)...)

		parentID = replayed.ID
	}

	if err := s.Graph.MoveBranchTip(currentBranch, parentID); err != nil {
		s.popSnapshot()
		return failf(ErrState, "rebase failed: %v", err)
	}

	res := success(fmt.Sprintf("Successfully rebased %s onto '%s' (%d commits replayed)", currentBranch, cmd.Name, len(chain)))
	res.FilesCollected = collected
	res.GameWon = checkWin(s, currentBranch)
	return res
}
