package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addCommit(t *testing.T, g *Graph, parents []string, branch string, depth int) *Commit {
	t.Helper()
	c := &Commit{
		ID:           g.NewCommitID(),
		Message:      "work",
		ParentIDs:    parents,
		OriginBranch: branch,
		Depth:        depth,
		Timestamp:    time.Now().UTC(),
	}
	require.NoError(t, g.AddCommit(c))
	return c
}

func TestNewGraphSeedsRoot(t *testing.T) {
	g := New("main")

	require.NoError(t, g.CheckInvariants())
	assert.Equal(t, 1, g.Len())

	root, ok := g.CurrentCommit()
	require.True(t, ok)
	assert.Equal(t, 0, root.Depth)
	assert.Empty(t, root.ParentIDs)

	branch, attached := g.CurrentBranch()
	require.True(t, attached)
	assert.Equal(t, "main", branch)
}

func TestAddCommitEnforcesDepthRule(t *testing.T) {
	g := New("main")
	root, _ := g.CurrentCommit()

	bad := &Commit{ID: g.NewCommitID(), ParentIDs: []string{root.ID}, Depth: 5}
	assert.Error(t, g.AddCommit(bad))

	// Unknown parent is rejected before any mutation.
	bad2 := &Commit{ID: g.NewCommitID(), ParentIDs: []string{"nope"}, Depth: 1}
	assert.Error(t, g.AddCommit(bad2))
	require.NoError(t, g.CheckInvariants())
}

func TestIsAncestorReflexiveAndMergeEdges(t *testing.T) {
	g := New("main")
	root, _ := g.CurrentCommit()

	a := addCommit(t, g, []string{root.ID}, "main", 1)
	b := addCommit(t, g, []string{root.ID}, "feature", 1)
	merge := addCommit(t, g, []string{a.ID, b.ID}, "main", 2)

	for _, id := range g.CommitIDs() {
		assert.True(t, g.IsAncestor(id, id), "ancestry must be reflexive for %s", id)
	}

	// Merge ancestry follows BOTH parent edges.
	assert.True(t, g.IsAncestor(a.ID, merge.ID))
	assert.True(t, g.IsAncestor(b.ID, merge.ID))
	assert.True(t, g.IsAncestor(root.ID, merge.ID))
	assert.False(t, g.IsAncestor(merge.ID, a.ID))
	assert.False(t, g.IsAncestor(a.ID, b.ID))
}

func TestResolveTargetPriority(t *testing.T) {
	g := New("main")
	root, _ := g.CurrentCommit()
	addCommit(t, g, []string{root.ID}, "main", 1) // c1
	require.NoError(t, g.CreateBranch("c1-lookalike", root.ID))

	// Exact branch beats commit prefix.
	kind, resolved := g.ResolveTarget("c1-lookalike")
	assert.Equal(t, TargetBranch, kind)
	assert.Equal(t, "c1-lookalike", resolved)

	kind, resolved = g.ResolveTarget("c1")
	assert.Equal(t, TargetCommit, kind)
	assert.Equal(t, "c1", resolved)

	// Prefix resolution picks the first match in insertion order.
	kind, resolved = g.ResolveTarget("c")
	assert.Equal(t, TargetCommit, kind)
	assert.Equal(t, "c0", resolved)

	kind, _ = g.ResolveTarget("zzz")
	assert.Equal(t, TargetNone, kind)
}

func TestRebaseChainWalksFirstParentOnly(t *testing.T) {
	g := New("main")
	root, _ := g.CurrentCommit()

	base := addCommit(t, g, []string{root.ID}, "main", 1)
	f1 := addCommit(t, g, []string{base.ID}, "feature", 2)
	f2 := addCommit(t, g, []string{f1.ID}, "feature", 3)

	chain := g.RebaseChain(f2.ID, base.ID)
	require.Len(t, chain, 2)
	assert.Equal(t, f1.ID, chain[0].ID, "oldest first")
	assert.Equal(t, f2.ID, chain[1].ID)

	assert.Empty(t, g.RebaseChain(base.ID, base.ID))

	// Diverged histories stop at the common point, which is excluded.
	other := addCommit(t, g, []string{root.ID}, "bugfix", 1)
	chain = g.RebaseChain(other.ID, f2.ID)
	require.Len(t, chain, 1)
	assert.Equal(t, other.ID, chain[0].ID)

	// A tip already contained in the onto history has nothing to replay.
	assert.Empty(t, g.RebaseChain(base.ID, f2.ID))
}

func TestCloneIsIndependent(t *testing.T) {
	g := New("main")
	root, _ := g.CurrentCommit()

	clone := g.Clone()
	addCommit(t, g, []string{root.ID}, "main", 1)
	require.NoError(t, g.MoveBranchTip("main", "c1"))

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 1, clone.Len())
	tip, _ := clone.Branch("main")
	assert.Equal(t, root.ID, tip.TipCommitID)
}

func TestSerializeRoundTrip(t *testing.T) {
	g := New("main")
	root, _ := g.CurrentCommit()
	c1 := addCommit(t, g, []string{root.ID}, "main", 1)
	require.NoError(t, g.MoveBranchTip("main", c1.ID))
	require.NoError(t, g.CreateBranch("feature", root.ID))
	require.NoError(t, g.SetHead(DetachedHead(root.ID)))

	s := g.Serialize()
	assert.True(t, s.IsDetached)

	restored, err := FromSerialized(s)
	require.NoError(t, err)
	require.NoError(t, restored.CheckInvariants())
	assert.Equal(t, g.CommitIDs(), restored.CommitIDs())
	assert.Equal(t, g.BranchNames(), restored.BranchNames())
	assert.Equal(t, g.Head(), restored.Head())

	// The restored graph must hand out fresh ids, not clash with stored ones.
	assert.NotContains(t, restored.CommitIDs(), restored.NewCommitID())
}

func TestFromSerializedRejectsBrokenGraphs(t *testing.T) {
	g := New("main")
	s := g.Serialize()
	s.Branches["ghost"] = &Branch{Name: "ghost", TipCommitID: "missing"}

	_, err := FromSerialized(s)
	assert.Error(t, err)
}
