package engine

import (
	"fmt"
	"time"

	"github.com/kurobon/gitquest/internal/graph"
)

func applyCommit(s *GameState, cmd Command) CommandResult {
	if max := s.Constraints.MaxCommits; max > 0 && s.commitCommandsUsed() >= max {
		return failf(ErrValidation, "commit limit reached (%d)", max)
	}
	if max := s.Constraints.MaxConsecutiveCommits; max > 0 && s.ConsecutiveCmts >= max {
		return failf(ErrValidation, "no more than %d consecutive commits allowed", max)
	}

	parent, ok := s.Graph.CurrentCommit()
	if !ok {
		return failf(ErrState, "HEAD does not resolve to a commit")
	}

	branchLabel := graph.DetachedLabel
	branchName, attached := s.Graph.CurrentBranch()
	if attached {
		branchLabel = branchName
	}

	message := cmd.Message
	if message == "" {
		message = "work"
	}

	s.pushSnapshot(cmd)
	newCommit := &graph.Commit{
		ID:           s.Graph.NewCommitID(),
		Message:      message,
		ParentIDs:    []string{parent.ID},
		OriginBranch: branchLabel,
		Depth:        parent.Depth + 1,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.Graph.AddCommit(newCommit); err != nil {
		s.popSnapshot()
		return failf(ErrState, "commit failed: %v", err)
	}

	// Detached HEAD advances itself; an attached HEAD advances its branch.
	if attached {
		if err := s.Graph.MoveBranchTip(branchName, newCommit.ID); err != nil {
			s.popSnapshot()
			return failf(ErrState, "commit failed: %v", err)
		}
	} else {
		if err := s.Graph.SetHead(graph.DetachedHead(newCommit.ID)); err != nil {
			s.popSnapshot()
			return failf(ErrState, "commit failed: %v", err)
		}
	}

	res := success(fmt.Sprintf("[%s %s] %s", branchLabel, newCommit.ID, message))
	res.FilesCollected = s.collectAt(branchLabel, newCommit.Depth, newCommit.ID)
	res.GameWon = checkWin(s, branchName)
	return res
}
