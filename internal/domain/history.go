package domain

import "time"

// LaunchRecord is one entry of the launch history
type LaunchRecord struct {
	NodeID string
	Name   string
	Type   NodeType
	Target string
	At     time.Time
	OK     bool
	Error  string
}

// DropEntry is a candidate node built from a dropped path or URL
type DropEntry struct {
	Type   NodeType
	Name   string
	Target string
}

// Node builds a fresh node from the entry
func (e DropEntry) Node() *Node {
	return MakeNode(e.Name, e.Type, e.Target)
}
