package domain

// ResolveInsertAnchor decides where a new node lands relative to the
// selected node:
//   - no selection, or an unknown id: end of root's children
//   - a group: its last child
//   - a leaf: the sibling right after it, in its own parent
func ResolveInsertAnchor(root *Node, selectedID string) (*Node, int) {
	if selectedID == "" {
		return root, len(root.Children)
	}

	ref, ok := FindNodeRef(root, selectedID)
	if !ok {
		return root, len(root.Children)
	}

	if ref.Node.Type == NodeTypeGroup {
		return ref.Node, len(ref.Node.Children)
	}

	if ref.Parent == nil {
		return root, len(root.Children)
	}

	return ref.Parent, ref.Index + 1
}

// InsertRelativeToSelection inserts newNode at the anchor resolved from
// selectedID. Returns false without mutating when the anchor is not a group.
func InsertRelativeToSelection(root *Node, selectedID string, newNode *Node) bool {
	parent, row := ResolveInsertAnchor(root, selectedID)
	if parent.Type != NodeTypeGroup {
		return false
	}
	insertAt(parent, row, newNode)
	return true
}

// MoveNode detaches sourceID and inserts it under destParentID at destRow.
// The move is rejected, and the tree left untouched, when either id is
// missing, the source is the root, the destination is the source or one of
// its descendants, or the destination is not a group.
//
// destRow is interpreted against the sibling list before the source is
// removed; when moving later within the same parent it is shifted down by one.
func MoveNode(root *Node, sourceID, destParentID string, destRow int) bool {
	srcRef, ok := FindNodeRef(root, sourceID)
	if !ok {
		return false
	}
	dstRef, ok := FindNodeRef(root, destParentID)
	if !ok {
		return false
	}

	source := srcRef.Node
	dest := dstRef.Node

	if source.ID == root.ID {
		return false
	}
	if source.ID == dest.ID {
		return false
	}
	if ContainsID(source, dest.ID) {
		return false
	}
	if dest.Type != NodeTypeGroup {
		return false
	}
	if srcRef.Parent == nil {
		return false
	}

	srcParent := srcRef.Parent
	node := detachAt(srcParent, srcRef.Index)

	if srcParent.ID == dest.ID && destRow > srcRef.Index {
		destRow--
	}

	insertAt(dest, clamp(destRow, 0, len(dest.Children)), node)
	return true
}

// RemoveNode detaches the node with id from its parent and returns it.
// The root cannot be removed.
func RemoveNode(root *Node, id string) (*Node, bool) {
	ref, ok := FindNodeRef(root, id)
	if !ok || ref.Parent == nil {
		return nil, false
	}
	return detachAt(ref.Parent, ref.Index), true
}

func insertAt(parent *Node, row int, node *Node) {
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[row+1:], parent.Children[row:])
	parent.Children[row] = node
}

func detachAt(parent *Node, index int) *Node {
	node := parent.Children[index]
	parent.Children = append(parent.Children[:index], parent.Children[index+1:]...)
	return node
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
