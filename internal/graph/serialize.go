package graph

import (
	"fmt"
	"sort"
)

// Serialized is the persistence shape of a graph. Map-like structures are
// encoded as plain key/value records; this is the only place the graph
// crosses a serialization boundary.
type Serialized struct {
	Commits    map[string]*Commit `json:"commits"`
	Branches   map[string]*Branch `json:"branches"`
	Head       Head               `json:"head"`
	IsDetached bool               `json:"isDetached"`
}

// Serialize converts the graph into its persistence shape. The returned value
// holds deep copies, so the live graph can keep mutating.
func (g *Graph) Serialize() *Serialized {
	s := &Serialized{
		Commits:    make(map[string]*Commit, len(g.commits)),
		Branches:   make(map[string]*Branch, len(g.branches)),
		Head:       g.head,
		IsDetached: g.head.Detached(),
	}
	for id, c := range g.commits {
		dup := *c
		dup.ParentIDs = append([]string(nil), c.ParentIDs...)
		s.Commits[id] = &dup
	}
	for name, b := range g.branches {
		dup := *b
		s.Branches[name] = &dup
	}
	return s
}

// FromSerialized rebuilds a live graph from its persistence shape and
// verifies the structural invariants. Insertion order is reconstructed by
// (depth, timestamp, id) which is stable for generated graphs.
func FromSerialized(s *Serialized) (*Graph, error) {
	g := &Graph{
		commits:  make(map[string]*Commit, len(s.Commits)),
		branches: make(map[string]*Branch, len(s.Branches)),
		head:     s.Head,
		seq:      len(s.Commits),
	}
	for id, c := range s.Commits {
		if c.ID != id {
			return nil, fmt.Errorf("commit key %s does not match id %s", id, c.ID)
		}
		dup := *c
		dup.ParentIDs = append([]string(nil), c.ParentIDs...)
		g.commits[id] = &dup
		g.order = append(g.order, id)
	}
	sort.Slice(g.order, func(i, j int) bool {
		a, b := g.commits[g.order[i]], g.commits[g.order[j]]
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.ID < b.ID
	})
	for name, b := range s.Branches {
		if b.Name != name {
			return nil, fmt.Errorf("branch key %s does not match name %s", name, b.Name)
		}
		dup := *b
		g.branches[name] = &dup
	}
	if err := g.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("deserialized graph invalid: %w", err)
	}
	return g, nil
}
