package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// PlaceholderName is substituted for missing or empty names when decoding
const PlaceholderName = "Unnamed"

// Serialize converts a node and its subtree into a generic record.
// Children order is preserved.
func Serialize(node *Node) map[string]any {
	children := make([]any, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, Serialize(child))
	}
	return map[string]any{
		"id":       node.ID,
		"name":     node.Name,
		"type":     string(node.Type),
		"target":   node.Target,
		"children": children,
	}
}

// Deserialize builds a node from an untrusted record. Missing or invalid
// fields get defaults: a fresh id, PlaceholderName, group type and an empty
// target. Non-record entries in children are dropped.
func Deserialize(record map[string]any) *Node {
	node := &Node{
		ID:     NewID(),
		Name:   PlaceholderName,
		Type:   NodeTypeGroup,
		Target: "",
	}

	if id, ok := coerceString(record["id"]); ok && id != "" {
		node.ID = id
	}
	if name, ok := coerceString(record["name"]); ok && name != "" {
		node.Name = name
	}
	if raw, ok := record["type"].(string); ok {
		if t, ok := ParseNodeType(raw); ok {
			node.Type = t
		}
	}
	if target, ok := coerceString(record["target"]); ok {
		node.Target = target
	}

	if rawChildren, ok := record["children"].([]any); ok {
		for _, rc := range rawChildren {
			if child, ok := rc.(map[string]any); ok {
				node.Children = append(node.Children, Deserialize(child))
			}
		}
	}

	return node
}

// coerceString turns scalar JSON values into strings.
// Booleans, nulls and containers are rejected.
func coerceString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", false
		}
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10), true
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case json.Number:
		return val.String(), true
	default:
		return "", false
	}
}

// wireNode fixes the field order of the on-disk format
type wireNode struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Target   string     `json:"target"`
	Children []wireNode `json:"children"`
}

func toWire(node *Node) wireNode {
	w := wireNode{
		ID:       node.ID,
		Name:     node.Name,
		Type:     string(node.Type),
		Target:   node.Target,
		Children: make([]wireNode, 0, len(node.Children)),
	}
	for _, child := range node.Children {
		w.Children = append(w.Children, toWire(child))
	}
	return w
}

// EncodeTree renders the tree as pretty-printed UTF-8 JSON with a trailing newline
func EncodeTree(root *Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(root)); err != nil {
		return nil, fmt.Errorf("failed to encode tree: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeTree parses JSON data into a tree. The top level must be an object;
// everything below it is decoded leniently via Deserialize.
func DecodeTree(data []byte) (*Node, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode tree: %w", err)
	}
	record, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to decode tree: top level is %T, want object", payload)
	}
	return Deserialize(record), nil
}
