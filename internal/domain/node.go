package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NodeType is the closed set of node kinds in a launcher tree
type NodeType string

const (
	NodeTypeGroup     NodeType = "group"
	NodeTypePath      NodeType = "path"
	NodeTypeURL       NodeType = "url"
	NodeTypeSeparator NodeType = "separator"
)

// RootID is the conventional id of the tree root
const RootID = "root"

// NoIndex is the sibling index reported for the root node
const NoIndex = -1

// NodeTypes lists every allowed node type in display order
var NodeTypes = []NodeType{NodeTypeGroup, NodeTypePath, NodeTypeURL, NodeTypeSeparator}

// ParseNodeType converts a string into a NodeType.
// Surrounding whitespace and case are ignored.
func ParseNodeType(s string) (NodeType, bool) {
	t := NodeType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t, true
	}
	return "", false
}

// IsValid reports whether t is one of the allowed node types
func (t NodeType) IsValid() bool {
	switch t {
	case NodeTypeGroup, NodeTypePath, NodeTypeURL, NodeTypeSeparator:
		return true
	default:
		return false
	}
}

// IsLeaf reports whether t may never own children
func (t NodeType) IsLeaf() bool {
	return t != NodeTypeGroup
}

// IsLaunchable reports whether nodes of this type carry a target that can be opened
func (t NodeType) IsLaunchable() bool {
	switch t {
	case NodeTypePath, NodeTypeURL:
		return true
	default:
		return false
	}
}

// RequiresTarget reports whether t needs a non-empty target
func (t NodeType) RequiresTarget() bool {
	return t.IsLaunchable()
}

func (t NodeType) String() string {
	return string(t)
}

// Node is an entry of the launcher tree. Children are owned exclusively
// by their parent; parent links are never stored, use FindNodeRef.
type Node struct {
	ID       string
	Name     string
	Type     NodeType
	Target   string
	Children []*Node
}

// NodeRef locates a node inside a tree. Parent is nil and Index is NoIndex
// for the root. Never persisted.
type NodeRef struct {
	Node   *Node
	Parent *Node
	Index  int
}

// NewID returns a fresh globally unique node id
func NewID() string {
	return uuid.NewString()
}

// MakeNode creates a node with a fresh id. Type and target consistency
// is not checked here.
func MakeNode(name string, nodeType NodeType, target string) *Node {
	return &Node{
		ID:     NewID(),
		Name:   name,
		Type:   nodeType,
		Target: target,
	}
}

// DefaultRoot returns the empty tree used when nothing can be loaded
func DefaultRoot() *Node {
	return &Node{
		ID:   RootID,
		Name: "Root",
		Type: NodeTypeGroup,
	}
}

// FindNodeRef searches the tree depth-first for id
func FindNodeRef(root *Node, id string) (NodeRef, bool) {
	if root == nil {
		return NodeRef{}, false
	}
	if root.ID == id {
		return NodeRef{Node: root, Parent: nil, Index: NoIndex}, true
	}
	return findInChildren(root, id)
}

func findInChildren(parent *Node, id string) (NodeRef, bool) {
	for i, child := range parent.Children {
		if child.ID == id {
			return NodeRef{Node: child, Parent: parent, Index: i}, true
		}
		if ref, ok := findInChildren(child, id); ok {
			return ref, true
		}
	}
	return NodeRef{}, false
}

// FindNode returns the node with the given id, or nil
func FindNode(root *Node, id string) *Node {
	ref, ok := FindNodeRef(root, id)
	if !ok {
		return nil
	}
	return ref.Node
}

// ContainsID reports whether id is node itself or any of its descendants
func ContainsID(node *Node, id string) bool {
	if node == nil {
		return false
	}
	if node.ID == id {
		return true
	}
	for _, child := range node.Children {
		if ContainsID(child, id) {
			return true
		}
	}
	return false
}

// Walk visits node and its descendants in pre-order with their depth.
// Returning false from fn skips the node's children.
func Walk(node *Node, fn func(n *Node, depth int) bool) {
	walk(node, 0, fn)
}

func walk(node *Node, depth int, fn func(n *Node, depth int) bool) {
	if node == nil {
		return
	}
	if !fn(node, depth) {
		return
	}
	for _, child := range node.Children {
		walk(child, depth+1, fn)
	}
}

// Count returns the number of nodes in the subtree rooted at node
func Count(node *Node) int {
	n := 0
	Walk(node, func(*Node, int) bool {
		n++
		return true
	})
	return n
}

// Depth returns how many ancestors the node with id has, or -1 if absent
func Depth(root *Node, id string) int {
	found := -1
	Walk(root, func(n *Node, depth int) bool {
		if found >= 0 {
			return false
		}
		if n.ID == id {
			found = depth
			return false
		}
		return true
	})
	return found
}

// IDSet is a set of node ids
type IDSet map[string]struct{}

// Add inserts id into the set
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// AllIDs returns every id in the subtree rooted at node
func AllIDs(node *Node) IDSet {
	ids := make(IDSet)
	Walk(node, func(n *Node, _ int) bool {
		ids.Add(n.ID)
		return true
	})
	return ids
}
