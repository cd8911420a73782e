package engine

import (
	"fmt"

	"github.com/kurobon/gitquest/internal/graph"
)

func applyCheckout(s *GameState, cmd Command) CommandResult {
	if max := s.Constraints.MaxCheckouts; max > 0 && s.CheckoutsUsed >= max {
		return failf(ErrValidation, "checkout limit reached (%d)", max)
	}

	kind, resolved := s.Graph.ResolveTarget(cmd.Target)
	switch kind {
	case graph.TargetBranch:
		s.pushSnapshot(cmd)
		if err := s.Graph.SetHead(graph.AttachedHead(resolved)); err != nil {
			s.popSnapshot()
			return failf(ErrState, "checkout failed: %v", err)
		}
		return success(fmt.Sprintf("Switched to branch '%s'", resolved))
	case graph.TargetCommit:
		s.pushSnapshot(cmd)
		if err := s.Graph.SetHead(graph.DetachedHead(resolved)); err != nil {
			s.popSnapshot()
			return failf(ErrState, "checkout failed: %v", err)
		}
		return success(fmt.Sprintf("HEAD is now detached at %s", resolved))
	default:
		return failf(ErrReference, "'%s' did not match any branch or commit", cmd.Target)
	}
}
