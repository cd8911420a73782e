package graph

// IsAncestor reports whether a is reachable from b by breadth-first traversal
// over all parent edges. A commit is its own ancestor.
func (g *Graph) IsAncestor(a, b string) bool {
	if a == b {
		return true
	}
	visited := map[string]bool{b: true}
	queue := []string{b}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == a {
			return true
		}
		c, ok := g.commits[current]
		if !ok {
			continue
		}
		for _, pid := range c.ParentIDs {
			if !visited[pid] {
				visited[pid] = true
				queue = append(queue, pid)
			}
		}
	}
	return false
}

// RebaseChain collects the commits to replay when rebasing the chain ending
// at fromID onto ontoID: it walks first-parent links backward from fromID
// until reaching the common point with ontoID (the first commit already in
// ontoID's ancestry, excluded), and returns the collected commits oldest
// first. Every graph has a single root, so the walk always terminates.
func (g *Graph) RebaseChain(fromID, ontoID string) []*Commit {
	var chain []*Commit
	current := fromID
	for !g.IsAncestor(current, ontoID) {
		c, ok := g.commits[current]
		if !ok {
			break
		}
		chain = append(chain, c)
		if len(c.ParentIDs) == 0 {
			break
		}
		current = c.ParentIDs[0]
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
