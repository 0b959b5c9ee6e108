package domain

import "strings"

// NodeMatchesQuery reports whether the query is a case-insensitive
// substring of the node's name, target or type. An empty query matches.
func NodeMatchesQuery(node *Node, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}
	return matchesNeedle(node, needle)
}

func matchesNeedle(node *Node, needle string) bool {
	for _, hay := range []string{node.Name, node.Target, string(node.Type)} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// ComputeVisibleIDs returns the ids that stay visible in a view filtered
// by query. A blank query keeps every node. Otherwise:
//   - a matching group reveals its whole subtree
//   - a group is visible when any child is
//   - a separator is visible when one of its children is visible and is not a separator
//   - path and url leaves must match or sit under a matching group
func ComputeVisibleIDs(root *Node, query string) IDSet {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return AllIDs(root)
	}

	visible := make(IDSet)
	if root != nil {
		visibleWalk(root, needle, false, visible)
	}
	return visible
}

func visibleWalk(node *Node, needle string, forced bool, visible IDSet) bool {
	matched := matchesNeedle(node, needle)
	childForced := forced || (node.Type == NodeTypeGroup && matched)

	anyChild := false
	anyContentChild := false
	for _, child := range node.Children {
		if visibleWalk(child, needle, childForced, visible) {
			anyChild = true
			if child.Type != NodeTypeSeparator {
				anyContentChild = true
			}
		}
	}

	shown := matched || forced
	switch node.Type {
	case NodeTypeGroup:
		shown = shown || anyChild
	case NodeTypeSeparator:
		shown = shown || anyContentChild
	case NodeTypePath, NodeTypeURL:
	}

	if shown {
		visible.Add(node.ID)
	}
	return shown
}
