package application

import (
	"fmt"
	"strings"

	"launchtree/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "nodeID" -> "node ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"nodeID":     "node ID",
		"sourceID":   "source ID",
		"parentID":   "parent ID",
		"selectedID": "selected ID",
		"name":       "name",
		"target":     "target",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// NodeUpdate carries the fields an edit wants to change. Nil fields keep
// the node's current value.
type NodeUpdate struct {
	Name   *string
	Type   *string
	Target *string
}

// ApplyNodeUpdate validates an edit against the node and applies it only
// when every rule holds. Groups and separators always end up with an
// empty target; paths and urls need one.
func ApplyNodeUpdate(node *domain.Node, update NodeUpdate) error {
	name := node.Name
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
	}
	rawType := string(node.Type)
	if update.Type != nil {
		rawType = strings.TrimSpace(*update.Type)
	}

	if name == "" {
		return &ValidationError{Field: "name", Message: "name cannot be empty"}
	}

	nodeType := domain.NodeType(rawType)
	if !nodeType.IsValid() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unsupported type: %s", rawType)}
	}

	if nodeType != domain.NodeTypeGroup && len(node.Children) > 0 {
		return &ValidationError{Field: "type", Message: "cannot change type: non-group node cannot keep children"}
	}

	target := ""
	switch nodeType {
	case domain.NodeTypeGroup, domain.NodeTypeSeparator:
	case domain.NodeTypePath, domain.NodeTypeURL:
		target = node.Target
		if update.Target != nil {
			target = *update.Target
		}
		target = strings.TrimSpace(target)
		if target == "" {
			return &ValidationError{Field: "target", Message: "target is required for path/url"}
		}
	}

	node.Name = name
	node.Type = nodeType
	node.Target = target
	return nil
}

// ValidateNewNode checks a freshly built node with the same rules as an edit
func ValidateNewNode(name string, nodeType domain.NodeType, target string) (*domain.Node, error) {
	node := domain.MakeNode("", domain.NodeTypeGroup, "")
	t := string(nodeType)
	if err := ApplyNodeUpdate(node, NodeUpdate{Name: &name, Type: &t, Target: &target}); err != nil {
		return nil, err
	}
	return node, nil
}
