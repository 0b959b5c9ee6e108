package domain

import "sort"

// FavoriteNodes returns the favorited nodes still present in the tree,
// in tree order, filtered by query.
func FavoriteNodes(root *Node, state UserState, query string) []*Node {
	var nodes []*Node
	Walk(root, func(n *Node, _ int) bool {
		if state.IsFavorite(n.ID) && NodeMatchesQuery(n, query) {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// RecentNodes returns recently launched nodes newest first, filtered by
// query. Entries whose node is gone are skipped.
func RecentNodes(root *Node, state UserState, query string) []*Node {
	nodes := make([]*Node, 0, len(state.Recent))
	for _, entry := range state.Recent {
		n := FindNode(root, entry.ID)
		if n == nil || !NodeMatchesQuery(n, query) {
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// SortedIDs returns the ids of a set in lexical order
func SortedIDs(s IDSet) []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
