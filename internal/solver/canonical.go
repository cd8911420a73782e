// Package solver finds the optimal command sequence for a puzzle by
// breadth-first search over canonical session states. It runs offline in the
// generator, never on the interactive command path.
package solver

import (
	"sort"
	"strings"

	"github.com/kurobon/gitquest/internal/engine"
	"github.com/kurobon/gitquest/internal/graph"
)

// Signature reduces a (graph, fileTargets) pair to a canonical string: the
// sorted branch tips, the HEAD descriptor and the sorted collected file ids.
// Only branch-reachable structure and collection status affect future legal
// moves and the win predicate, so states sharing a signature are
// interchangeable for search purposes.
func Signature(g *graph.Graph, targets []*engine.FileTarget) string {
	var sb strings.Builder

	for _, name := range g.BranchNames() {
		b, _ := g.Branch(name)
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(b.TipCommitID)
		sb.WriteByte(';')
	}

	head := g.Head()
	if head.Detached() {
		sb.WriteString("HEAD@")
		sb.WriteString(head.ID)
	} else {
		sb.WriteString("HEAD:")
		sb.WriteString(head.Ref)
	}
	sb.WriteByte(';')

	var collected []string
	for _, t := range targets {
		if t.Collected {
			collected = append(collected, t.ID)
		}
	}
	sort.Strings(collected)
	sb.WriteString(strings.Join(collected, ","))

	return sb.String()
}
