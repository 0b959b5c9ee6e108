package domain

import "testing"

func TestDisplayName(t *testing.T) {
	if got := DisplayName(&Node{Name: "G", Type: NodeTypeGroup}); got != "G" {
		t.Errorf("group display = %q", got)
	}
	if got := DisplayName(&Node{Name: "Doc", Type: NodeTypePath, Target: "C:/Docs/readme.txt"}); got != "Doc" {
		t.Errorf("path display = %q", got)
	}
	if got := DisplayName(&Node{Name: "ignore", Type: NodeTypeSeparator}); got != SeparatorLabel {
		t.Errorf("separator display = %q, want %q", got, SeparatorLabel)
	}
}

func TestIconCategory(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"group", &Node{Type: NodeTypeGroup}, IconGroup},
		{"url", &Node{Type: NodeTypeURL, Target: "https://x"}, IconURL},
		{"separator", &Node{Type: NodeTypeSeparator}, IconSeparator},
		{"exe", &Node{Type: NodeTypePath, Target: "C:/A/app.exe"}, IconPathExe},
		{"upper exe", &Node{Type: NodeTypePath, Target: `C:\A\APP.EXE`}, IconPathExe},
		{"folder slash", &Node{Type: NodeTypePath, Target: "C:/A/"}, IconPathFolder},
		{"folder backslash", &Node{Type: NodeTypePath, Target: `C:\A\`}, IconPathFolder},
		{"no extension", &Node{Type: NodeTypePath, Target: "/usr/local/bin"}, IconPathFolder},
		{"file", &Node{Type: NodeTypePath, Target: "C:/A/readme.txt"}, IconPathFile},
		{"unknown", &Node{Type: NodeType("bogus")}, IconDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IconCategory(tt.node); got != tt.want {
				t.Errorf("IconCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}
