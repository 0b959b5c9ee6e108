package styles

import (
	"github.com/charmbracelet/lipgloss"

	"launchtree/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Node type colors
	GroupColor = lipgloss.Color("#60A5FA") // Blue
	PathColor  = lipgloss.Color("#E5E7EB")
	URLColor   = lipgloss.Color("#34D399") // Teal

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tree node styles
	NodeGroup = lipgloss.NewStyle().
			Foreground(GroupColor).
			Bold(true)

	NodePath = lipgloss.NewStyle().
			Foreground(PathColor)

	NodeURL = lipgloss.NewStyle().
		Foreground(URLColor)

	NodeSeparator = lipgloss.NewStyle().
			Foreground(Muted)

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	NodeCut = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Favorite = lipgloss.NewStyle().
			Foreground(Warning).
			SetString("★")

	TargetText = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tree indicators
	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Search
	SearchMatch = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// Icons maps domain icon categories to glyphs
var Icons = map[string]string{
	domain.IconGroup:      "📁",
	domain.IconURL:        "🌐",
	domain.IconSeparator:  "──",
	domain.IconPathExe:    "⚙",
	domain.IconPathFolder: "📂",
	domain.IconPathFile:   "📄",
	domain.IconDefault:    "•",
}

// Icon returns the glyph for a node
func Icon(node *domain.Node) string {
	if icon, ok := Icons[domain.IconCategory(node)]; ok {
		return icon
	}
	return Icons[domain.IconDefault]
}

// NodeStyle returns the text style for a node type
func NodeStyle(t domain.NodeType) lipgloss.Style {
	switch t {
	case domain.NodeTypeGroup:
		return NodeGroup
	case domain.NodeTypePath:
		return NodePath
	case domain.NodeTypeURL:
		return NodeURL
	case domain.NodeTypeSeparator:
		return NodeSeparator
	default:
		return lipgloss.NewStyle()
	}
}
