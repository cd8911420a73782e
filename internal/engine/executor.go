package engine

// Apply is the single mutation entry point for player commands. The contract
// for every command: reject before mutating anything if the command type is
// not allowed or a relevant quota is exhausted; on success push an undo
// snapshot, mutate in place, run the file-collection check and evaluate the
// win predicate. Rejections consume no quota.
func Apply(s *GameState, cmd Command) CommandResult {
	if cmd.Type == CmdUndo {
		return Undo(s)
	}

	if s.Status != StatusInProgress {
		return failf(ErrValidation, "game is %s; no further commands accepted", s.Status)
	}
	if err := cmd.Validate(); err != nil {
		return failf(ErrValidation, "%v", err)
	}
	if !s.Constraints.Allows(cmd.Type) {
		return failf(ErrValidation, "command '%s' is not allowed in this puzzle", cmd.Type)
	}
	if max := s.Constraints.MaxCommands; max > 0 && s.CommandsUsed >= max {
		return failf(ErrValidation, "command limit reached (%d)", max)
	}

	var res CommandResult
	switch cmd.Type {
	case CmdCommit:
		res = applyCommit(s, cmd)
	case CmdBranch:
		res = applyBranch(s, cmd)
	case CmdCheckout:
		res = applyCheckout(s, cmd)
	case CmdMerge:
		res = applyMerge(s, cmd)
	case CmdRebase:
		res = applyRebase(s, cmd)
	default:
		return failf(ErrValidation, "unknown command type %q", cmd.Type)
	}
	if !res.Success {
		return res
	}

	s.CommandsUsed++
	if cmd.Type == CmdCommit {
		s.ConsecutiveCmts++
	} else {
		s.ConsecutiveCmts = 0
	}
	if cmd.Type == CmdCheckout {
		s.CheckoutsUsed++
	}
	s.CommandHistory = append(s.CommandHistory, cmd)
	if res.GameWon {
		s.Status = StatusWon
	}
	res.NewGraph = s.Graph.Serialize()
	return res
}

// checkWin evaluates the win predicate after a command that advanced a
// branch: every target collected, the advanced branch is the trunk, and
// every collecting commit is in the trunk tip's ancestry (everything merged
// back). advancedBranch is empty when no branch moved (detached commit).
func checkWin(s *GameState, advancedBranch string) bool {
	if advancedBranch != s.TrunkBranch || !s.allCollected() {
		return false
	}
	trunk, ok := s.Graph.Branch(s.TrunkBranch)
	if !ok {
		return false
	}
	for _, t := range s.Targets {
		if !s.Graph.IsAncestor(t.CollectedBy, trunk.TipCommitID) {
			return false
		}
	}
	return true
}

// declaredBranch reports whether name belongs to the puzzle's fixed branch
// vocabulary. Players cannot invent arbitrary names.
func (s *GameState) declaredBranch(name string) bool {
	for _, b := range s.BranchNames {
		if b == name {
			return true
		}
	}
	return false
}
