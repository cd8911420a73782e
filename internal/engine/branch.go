package engine

import "fmt"

func applyBranch(s *GameState, cmd Command) CommandResult {
	if !s.declaredBranch(cmd.Name) {
		return failf(ErrReference, "'%s' is not a branch name in this puzzle", cmd.Name)
	}
	if _, exists := s.Graph.Branch(cmd.Name); exists {
		return failf(ErrValidation, "branch '%s' already exists", cmd.Name)
	}
	if max := s.Constraints.MaxBranches; max > 0 && len(s.Graph.BranchNames()) >= max {
		return failf(ErrValidation, "branch limit reached (%d)", max)
	}

	current, ok := s.Graph.CurrentCommit()
	if !ok {
		return failf(ErrState, "HEAD does not resolve to a commit")
	}

	s.pushSnapshot(cmd)
	if err := s.Graph.CreateBranch(cmd.Name, current.ID); err != nil {
		s.popSnapshot()
		return failf(ErrState, "branch failed: %v", err)
	}
	return success(fmt.Sprintf("Created branch '%s' at %s", cmd.Name, current.ID))
}
