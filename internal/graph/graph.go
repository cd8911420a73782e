// Package graph implements the simplified commit graph that puzzle sessions
// mutate: commits, branch pointers and a HEAD descriptor. It is not a git
// implementation; commits are opaque nodes addressed by short ids and
// positioned by (branch, depth) coordinates.
package graph

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DetachedLabel is the origin branch recorded on commits created while HEAD
// is detached. File targets never sit on it.
const DetachedLabel = "detached"

// Commit is an opaque node in the puzzle DAG. ParentIDs holds one entry for a
// normal commit and two for a merge commit; the root commit has none.
type Commit struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	ParentIDs    []string  `json:"parentIds"`
	OriginBranch string    `json:"originBranch"`
	Depth        int       `json:"depth"`
	Timestamp    time.Time `json:"timestamp"`
}

// Branch is a named pointer to a commit.
type Branch struct {
	Name        string `json:"name"`
	TipCommitID string `json:"tipCommitId"`
}

// Head points at the player's current position, attached to a branch or
// detached at a raw commit.
type Head struct {
	Type string `json:"type"` // "branch" or "commit"
	Ref  string `json:"ref,omitempty"`
	ID   string `json:"id,omitempty"`
}

const (
	HeadBranch = "branch"
	HeadCommit = "commit"
)

// AttachedHead returns a HEAD attached to the named branch.
func AttachedHead(branch string) Head { return Head{Type: HeadBranch, Ref: branch} }

// DetachedHead returns a HEAD detached at the given commit.
func DetachedHead(commitID string) Head { return Head{Type: HeadCommit, ID: commitID} }

// Detached reports whether the head points at a raw commit.
func (h Head) Detached() bool { return h.Type == HeadCommit }

// Graph is the single canonical in-memory representation of a puzzle
// repository. Commits are kept in insertion order so listings and prefix
// resolution stay deterministic across runs.
type Graph struct {
	commits  map[string]*Commit
	order    []string
	branches map[string]*Branch
	head     Head
	seq      int
}

// New creates a graph seeded with a root commit on the trunk branch, with
// HEAD attached to it.
func New(trunk string) *Graph {
	g := &Graph{
		commits:  make(map[string]*Commit),
		branches: make(map[string]*Branch),
	}
	root := &Commit{
		ID:           g.nextID(),
		Message:      "Initial commit",
		OriginBranch: trunk,
		Depth:        0,
		Timestamp:    time.Now().UTC(),
	}
	g.commits[root.ID] = root
	g.order = append(g.order, root.ID)
	g.branches[trunk] = &Branch{Name: trunk, TipCommitID: root.ID}
	g.head = AttachedHead(trunk)
	return g
}

func (g *Graph) nextID() string {
	for {
		id := fmt.Sprintf("c%d", g.seq)
		g.seq++
		if _, taken := g.commits[id]; !taken {
			return id
		}
	}
}

// NewCommitID reserves the next free commit id.
func (g *Graph) NewCommitID() string { return g.nextID() }

// Commit looks up a commit by id.
func (g *Graph) Commit(id string) (*Commit, bool) {
	c, ok := g.commits[id]
	return c, ok
}

// Branch looks up a branch by name.
func (g *Graph) Branch(name string) (*Branch, bool) {
	b, ok := g.branches[name]
	return b, ok
}

// BranchNames returns all branch names, sorted.
func (g *Graph) BranchNames() []string {
	names := make([]string, 0, len(g.branches))
	for name := range g.branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CommitIDs returns all commit ids in insertion order (root first).
func (g *Graph) CommitIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Len returns the number of commits in the graph.
func (g *Graph) Len() int { return len(g.order) }

// Head returns the HEAD descriptor.
func (g *Graph) Head() Head { return g.head }

// CurrentBranch returns the branch HEAD is attached to, or false when
// detached.
func (g *Graph) CurrentBranch() (string, bool) {
	if g.head.Detached() {
		return "", false
	}
	return g.head.Ref, true
}

// CurrentCommit resolves HEAD to a commit: the attached branch tip, or the
// detached commit itself.
func (g *Graph) CurrentCommit() (*Commit, bool) {
	if g.head.Detached() {
		return g.Commit(g.head.ID)
	}
	b, ok := g.branches[g.head.Ref]
	if !ok {
		return nil, false
	}
	return g.Commit(b.TipCommitID)
}

// AddCommit inserts a new commit. Parents must already exist and the depth
// rule (max parent depth + 1) must hold; the graph is acyclic by
// construction because a commit can only name existing commits as parents.
func (g *Graph) AddCommit(c *Commit) error {
	if c.ID == "" {
		return fmt.Errorf("commit id must not be empty")
	}
	if _, exists := g.commits[c.ID]; exists {
		return fmt.Errorf("commit %s already exists", c.ID)
	}
	if len(c.ParentIDs) == 0 {
		return fmt.Errorf("commit %s has no parent; only the root may", c.ID)
	}
	maxDepth := -1
	for _, pid := range c.ParentIDs {
		p, ok := g.commits[pid]
		if !ok {
			return fmt.Errorf("commit %s references unknown parent %s", c.ID, pid)
		}
		if p.Depth > maxDepth {
			maxDepth = p.Depth
		}
	}
	if c.Depth != maxDepth+1 {
		return fmt.Errorf("commit %s depth %d, want %d", c.ID, c.Depth, maxDepth+1)
	}
	g.commits[c.ID] = c
	g.order = append(g.order, c.ID)
	return nil
}

// CreateBranch adds a branch pointer at the given commit. HEAD does not move.
func (g *Graph) CreateBranch(name, commitID string) error {
	if _, exists := g.branches[name]; exists {
		return fmt.Errorf("branch %s already exists", name)
	}
	if _, ok := g.commits[commitID]; !ok {
		return fmt.Errorf("branch %s targets unknown commit %s", name, commitID)
	}
	g.branches[name] = &Branch{Name: name, TipCommitID: commitID}
	return nil
}

// MoveBranchTip reassigns a branch pointer to an existing commit.
func (g *Graph) MoveBranchTip(name, commitID string) error {
	b, ok := g.branches[name]
	if !ok {
		return fmt.Errorf("unknown branch %s", name)
	}
	if _, ok := g.commits[commitID]; !ok {
		return fmt.Errorf("unknown commit %s", commitID)
	}
	b.TipCommitID = commitID
	return nil
}

// SetHead replaces the HEAD descriptor, validating the reference.
func (g *Graph) SetHead(h Head) error {
	switch h.Type {
	case HeadBranch:
		if _, ok := g.branches[h.Ref]; !ok {
			return fmt.Errorf("unknown branch %s", h.Ref)
		}
	case HeadCommit:
		if _, ok := g.commits[h.ID]; !ok {
			return fmt.Errorf("unknown commit %s", h.ID)
		}
	default:
		return fmt.Errorf("invalid head type %q", h.Type)
	}
	g.head = h
	return nil
}

// TargetKind classifies what a checkout target resolved to.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetBranch
	TargetCommit
)

// ResolveTarget resolves a checkout target in priority order: exact branch
// name, exact commit id, then commit id prefix (first match in insertion
// order).
func (g *Graph) ResolveTarget(target string) (TargetKind, string) {
	if target == "" {
		return TargetNone, ""
	}
	if _, ok := g.branches[target]; ok {
		return TargetBranch, target
	}
	if _, ok := g.commits[target]; ok {
		return TargetCommit, target
	}
	for _, id := range g.order {
		if strings.HasPrefix(id, target) {
			return TargetCommit, id
		}
	}
	return TargetNone, ""
}

// Clone returns a deep copy. Used only at undo-stack push points and by the
// solver when expanding states; reads elsewhere return views.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		commits:  make(map[string]*Commit, len(g.commits)),
		order:    make([]string, len(g.order)),
		branches: make(map[string]*Branch, len(g.branches)),
		head:     g.head,
		seq:      g.seq,
	}
	copy(c.order, g.order)
	for id, commit := range g.commits {
		dup := *commit
		dup.ParentIDs = append([]string(nil), commit.ParentIDs...)
		c.commits[id] = &dup
	}
	for name, b := range g.branches {
		dup := *b
		c.branches[name] = &dup
	}
	return c
}

// CheckInvariants verifies the structural rules: exactly one root at depth 0,
// every parent and branch tip resolvable, HEAD valid, depth rule everywhere.
func (g *Graph) CheckInvariants() error {
	roots := 0
	for _, id := range g.order {
		c, ok := g.commits[id]
		if !ok {
			return fmt.Errorf("order references unknown commit %s", id)
		}
		if len(c.ParentIDs) == 0 {
			roots++
			if c.Depth != 0 {
				return fmt.Errorf("root commit %s has depth %d", c.ID, c.Depth)
			}
			continue
		}
		maxDepth := -1
		for _, pid := range c.ParentIDs {
			p, ok := g.commits[pid]
			if !ok {
				return fmt.Errorf("commit %s references unknown parent %s", c.ID, pid)
			}
			if p.Depth > maxDepth {
				maxDepth = p.Depth
			}
		}
		if c.Depth != maxDepth+1 {
			return fmt.Errorf("commit %s depth %d, want %d", c.ID, c.Depth, maxDepth+1)
		}
	}
	if roots != 1 {
		return fmt.Errorf("graph has %d root commits, want exactly 1", roots)
	}
	for name, b := range g.branches {
		if _, ok := g.commits[b.TipCommitID]; !ok {
			return fmt.Errorf("branch %s tip %s does not resolve", name, b.TipCommitID)
		}
	}
	if g.head.Detached() {
		if _, ok := g.commits[g.head.ID]; !ok {
			return fmt.Errorf("detached HEAD %s does not resolve", g.head.ID)
		}
	} else if _, ok := g.branches[g.head.Ref]; !ok {
		return fmt.Errorf("HEAD attached to unknown branch %s", g.head.Ref)
	}
	return nil
}
