package domain

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestSerializeDeserialize_RoundTrip(t *testing.T) {
	root := sampleTree()
	root.Children = append(root.Children, &Node{ID: "s", Name: "----", Type: NodeTypeSeparator})

	got := Deserialize(Serialize(root))

	if !reflect.DeepEqual(got, root) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, root)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	root := sampleTree()

	data, err := EncodeTree(root)
	if err != nil {
		t.Fatalf("EncodeTree failed: %v", err)
	}

	got, err := DecodeTree(data)
	if err != nil {
		t.Fatalf("DecodeTree failed: %v", err)
	}
	if !reflect.DeepEqual(got, root) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, root)
	}
}

func TestEncodeTree_Format(t *testing.T) {
	root := &Node{ID: RootID, Name: "Wurzel & <Co>", Type: NodeTypeGroup}

	data, err := EncodeTree(root)
	if err != nil {
		t.Fatalf("EncodeTree failed: %v", err)
	}

	if !bytes.HasSuffix(data, []byte("}\n")) {
		t.Error("expected trailing newline")
	}
	if !strings.Contains(string(data), "\n  \"id\": \"root\"") {
		t.Errorf("expected two-space indentation, got:\n%s", data)
	}
	if !strings.Contains(string(data), "Wurzel & <Co>") {
		t.Error("expected HTML characters to be written unescaped")
	}
	if !strings.Contains(string(data), `"children": []`) {
		t.Error("expected empty children to encode as an array")
	}
	idPos := strings.Index(string(data), `"id"`)
	childrenPos := strings.Index(string(data), `"children"`)
	if idPos > childrenPos {
		t.Error("expected id before children")
	}
}

func TestDeserialize_Defaults(t *testing.T) {
	node := Deserialize(map[string]any{
		"children": []any{
			"not a record",
			42.0,
			map[string]any{"id": "c1", "name": "Child", "type": "url", "target": "https://x"},
			map[string]any{"id": 7.0, "type": "bogus"},
		},
	})

	if node.ID == "" {
		t.Error("expected a generated id")
	}
	if node.Name != PlaceholderName {
		t.Errorf("name = %q, want %q", node.Name, PlaceholderName)
	}
	if node.Type != NodeTypeGroup {
		t.Errorf("type = %q, want group", node.Type)
	}
	if node.Target != "" {
		t.Errorf("target = %q, want empty", node.Target)
	}
	if len(node.Children) != 2 {
		t.Fatalf("expected 2 well-formed children, got %d", len(node.Children))
	}

	c1 := node.Children[0]
	if c1.ID != "c1" || c1.Type != NodeTypeURL || c1.Target != "https://x" {
		t.Errorf("unexpected child %+v", c1)
	}

	c2 := node.Children[1]
	if c2.ID != "7" {
		t.Errorf("numeric id should be coerced, got %q", c2.ID)
	}
	if c2.Type != NodeTypeGroup {
		t.Errorf("unknown type should default to group, got %q", c2.Type)
	}
}

func TestDeserialize_InvalidIDReplaced(t *testing.T) {
	for _, raw := range []any{nil, "", true, map[string]any{}} {
		node := Deserialize(map[string]any{"id": raw})
		if node.ID == "" {
			t.Errorf("id %v: expected a generated id", raw)
		}
	}
}

func TestDecodeTree_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "not-json"},
		{"array top level", `[1, 2]`},
		{"string top level", `"root"`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTree([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
