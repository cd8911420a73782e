package engine

import (
	"fmt"
	"time"

	"github.com/kurobon/gitquest/internal/graph"
)

func applyMerge(s *GameState, cmd Command) CommandResult {
	currentBranch, attached := s.Graph.CurrentBranch()
	if !attached {
		return failf(ErrState, "cannot merge with a detached HEAD; checkout a branch first")
	}
	target, ok := s.Graph.Branch(cmd.Name)
	if !ok {
		return failf(ErrReference, "merge: unknown branch '%s'", cmd.Name)
	}
	current, ok := s.Graph.Branch(currentBranch)
	if !ok {
		return failf(ErrState, "HEAD branch '%s' does not resolve", currentBranch)
	}

	// Fast-forward: the current tip is already in the target's history, so
	// the branch pointer just moves and no commit is created.
	if s.Graph.IsAncestor(current.TipCommitID, target.TipCommitID) {
		s.pushSnapshot(cmd)
		if err := s.Graph.MoveBranchTip(currentBranch, target.TipCommitID); err != nil {
			s.popSnapshot()
			return failf(ErrState, "merge failed: %v", err)
		}
		res := success(fmt.Sprintf("Fast-forward %s to %s", currentBranch, target.TipCommitID))
		res.GameWon = checkWin(s, currentBranch)
		return res
	}

	currentTip, _ := s.Graph.Commit(current.TipCommitID)
	targetTip, _ := s.Graph.Commit(target.TipCommitID)
	if currentTip == nil || targetTip == nil {
		return failf(ErrState, "branch tips do not resolve")
	}

	depth := currentTip.Depth
	if targetTip.Depth > depth {
		depth = targetTip.Depth
	}
	depth++

	s.pushSnapshot(cmd)
	mergeCommit := &graph.Commit{
		ID:           s.Graph.NewCommitID(),
		Message:      fmt.Sprintf("Merge branch '%s'", cmd.Name),
		ParentIDs:    []string{currentTip.ID, targetTip.ID},
		OriginBranch: currentBranch,
		Depth:        depth,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.Graph.AddCommit(mergeCommit); err != nil {
		s.popSnapshot()
		return failf(ErrState, "merge failed: %v", err)
	}
	if err := s.Graph.MoveBranchTip(currentBranch, mergeCommit.ID); err != nil {
		s.popSnapshot()
		return failf(ErrState, "merge failed: %v", err)
	}

	res := success(fmt.Sprintf("Merged '%s' into %s (%s)", cmd.Name, currentBranch, mergeCommit.ID))
	res.FilesCollected = s.collectAt(currentBranch, mergeCommit.Depth, mergeCommit.ID)
	res.GameWon = checkWin(s, currentBranch)
	return res
}
