package domain

import (
	"path"
	"strings"
)

// SeparatorLabel is shown in place of a separator's name
const SeparatorLabel = "—"

// Icon categories understood by presentation layers
const (
	IconGroup      = "group"
	IconURL        = "url"
	IconSeparator  = "separator"
	IconPathExe    = "path_exe"
	IconPathFolder = "path_folder"
	IconPathFile   = "path_file"
	IconDefault    = "default"
)

// DisplayName returns the label to render for a node
func DisplayName(node *Node) string {
	if node.Type == NodeTypeSeparator {
		return SeparatorLabel
	}
	return node.Name
}

// IconCategory classifies a node for icon selection. Paths are guessed
// from the target: ".exe" files, folders (trailing slash or no extension)
// and plain files.
func IconCategory(node *Node) string {
	switch node.Type {
	case NodeTypeGroup:
		return IconGroup
	case NodeTypeURL:
		return IconURL
	case NodeTypeSeparator:
		return IconSeparator
	case NodeTypePath:
		target := strings.TrimSpace(node.Target)
		ext := strings.ToLower(path.Ext(strings.ReplaceAll(target, `\`, "/")))
		if ext == ".exe" {
			return IconPathExe
		}
		if strings.HasSuffix(target, "/") || strings.HasSuffix(target, `\`) || ext == "" {
			return IconPathFolder
		}
		return IconPathFile
	default:
		return IconDefault
	}
}
