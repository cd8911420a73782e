package engine

// Undo pops the most recent snapshot and restores the live (graph, targets)
// pair verbatim. It decrements commandsUsed, and checkoutsUsed only when the
// undone command was itself a checkout. Undo never consumes a quota slot;
// with an empty stack it fails without mutating anything.
func Undo(s *GameState) CommandResult {
	undone, ok := s.popSnapshot()
	if !ok {
		return failf(ErrState, "nothing to undo")
	}
	s.CommandsUsed--
	if undone.Type == CmdCheckout {
		s.CheckoutsUsed--
	}
	if len(s.CommandHistory) > 0 {
		s.CommandHistory = s.CommandHistory[:len(s.CommandHistory)-1]
	}
	res := success("Undid " + undone.String())
	res.NewGraph = s.Graph.Serialize()
	return res
}
