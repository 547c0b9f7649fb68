package components

import (
	"fmt"

	"github.com/Digital-Shane/clip-tidy/internal/core"
	"github.com/Digital-Shane/clip-tidy/internal/tui/theme"

	"github.com/Digital-Shane/treeview"
	"github.com/charmbracelet/lipgloss"
)

// ---- predicate helpers ----
// metaRule adapts a metadata predicate to a node predicate. If a node lacks
// metadata the predicate returns false.
func metaRule(cond func(*core.ClipMeta) bool) func(*treeview.Node[treeview.FileInfo]) bool {
	return func(n *treeview.Node[treeview.FileInfo]) bool {
		if cm := core.GetMeta(n); cm != nil {
			return cond(cm)
		}
		return false
	}
}

// statusIs returns a predicate matching nodes whose rename status equals s
func statusIs(s core.RenameStatus) func(*treeview.Node[treeview.FileInfo]) bool {
	return metaRule(func(cm *core.ClipMeta) bool { return cm.RenameStatus == s })
}

// typeIs returns a predicate matching nodes of clip type t
func typeIs(t core.ClipType) func(*treeview.Node[treeview.FileInfo]) bool {
	return metaRule(func(cm *core.ClipMeta) bool { return cm.Type == t })
}

// statusNoneType matches nodes with no status yet and a specific clip type
func statusNoneType(t core.ClipType) func(*treeview.Node[treeview.FileInfo]) bool {
	return metaRule(func(cm *core.ClipMeta) bool {
		return cm.RenameStatus == core.RenameStatusNone && !cm.Unrecognized && cm.Type == t
	})
}

// unrecognized matches files that matched no legacy pattern
func unrecognized() func(*treeview.Node[treeview.FileInfo]) bool {
	return metaRule(func(cm *core.ClipMeta) bool { return cm.Unrecognized })
}

// CreateRenameProvider constructs the [treeview.DefaultNodeProvider] used by
// the TUI and instant execution paths. It wires together:
//   - icon rules (status precedes type so success/error override type icons)
//   - style rules (normal & focused variants) with precedence similar to icons
//   - the custom [RenameFormatter] for inline original→new labeling.
func CreateRenameProvider() *treeview.DefaultNodeProvider[treeview.FileInfo] {
	th := theme.Default()
	colors := th.Colors()
	iconSet := th.IconSet()

	// Icon rules (order matters: status first)
	successIconRule := treeview.WithIconRule(statusIs(core.RenameStatusSuccess), iconSet["success"])
	errorIconRule := treeview.WithIconRule(statusIs(core.RenameStatusError), iconSet["error"])
	unrecognizedIconRule := treeview.WithIconRule(unrecognized(), iconSet["unknown"])
	videoIconRule := treeview.WithIconRule(statusNoneType(core.ClipVideo), iconSet["video"])
	sidecarIconRule := treeview.WithIconRule(statusNoneType(core.ClipSidecar), iconSet["sidecar"])
	mappingIconRule := treeview.WithIconRule(statusNoneType(core.ClipMapping), iconSet["mapping"])
	folderIconRule := treeview.WithIconRule(statusNoneType(core.ClipFolder), iconSet["folder"])
	defaultIconRule := treeview.WithDefaultIcon[treeview.FileInfo](iconSet["default"])

	// Style rules (most specific first)
	folderStyleRule := treeview.WithStyleRule(
		typeIs(core.ClipFolder),
		lipgloss.NewStyle().Foreground(colors.Primary).Bold(true),
		lipgloss.NewStyle().Foreground(colors.Background).Bold(true).Background(colors.Secondary).PaddingRight(1),
	)
	videoStyleRule := treeview.WithStyleRule(
		typeIs(core.ClipVideo),
		lipgloss.NewStyle().Foreground(colors.Secondary),
		lipgloss.NewStyle().Foreground(colors.Background).Background(colors.Primary),
	)
	sidecarStyleRule := treeview.WithStyleRule(
		typeIs(core.ClipSidecar),
		lipgloss.NewStyle().Foreground(colors.Muted),
		lipgloss.NewStyle().Foreground(colors.Background).Background(colors.Primary),
	)
	mappingStyleRule := treeview.WithStyleRule(
		typeIs(core.ClipMapping),
		lipgloss.NewStyle().Foreground(colors.Accent).Bold(true),
		lipgloss.NewStyle().Foreground(colors.Background).Bold(true).Background(colors.Primary),
	)
	successStyleRule := treeview.WithStyleRule(
		statusIs(core.RenameStatusSuccess),
		lipgloss.NewStyle().Foreground(colors.Success),
		lipgloss.NewStyle().Foreground(colors.Success).Background(colors.Background),
	)
	errorStyleRule := treeview.WithStyleRule(
		statusIs(core.RenameStatusError),
		lipgloss.NewStyle().Foreground(colors.Error),
		lipgloss.NewStyle().Foreground(colors.Error).Background(colors.Background),
	)
	unrecognizedStyleRule := treeview.WithStyleRule(
		unrecognized(),
		lipgloss.NewStyle().Foreground(colors.Error),
		lipgloss.NewStyle().Foreground(colors.Error).Background(colors.Background),
	)
	defaultStyleRule := treeview.WithStyleRule(
		func(*treeview.Node[treeview.FileInfo]) bool { return true },
		lipgloss.NewStyle().Foreground(colors.Primary),
		lipgloss.NewStyle().Foreground(colors.Background).Background(colors.Primary),
	)

	formatterRule := treeview.WithFormatter(RenameFormatter)

	return treeview.NewDefaultNodeProvider(
		// Icon rules (order matters - most specific first)
		successIconRule, errorIconRule, unrecognizedIconRule,
		videoIconRule, sidecarIconRule, mappingIconRule, folderIconRule, defaultIconRule,
		// Style rules (order matters - most specific first)
		successStyleRule, errorStyleRule, unrecognizedStyleRule,
		folderStyleRule, videoStyleRule, sidecarStyleRule, mappingStyleRule, defaultStyleRule,
		// Formatter
		formatterRule,
	)
}

// RenameFormatter produces the display label for a node during visualization.
//
//   - If no metadata or no proposed NewName exists, the original name is returned unchanged.
//   - Unrecognized files show the name with a skip note.
//   - On success, only the new name is shown (keeps the tree clean post-apply).
//   - On error, the original name plus the error message are shown.
//   - If the new name equals the original, the original is shown.
//   - Otherwise: "<new> ← <old>" conveys the pending rename mapping.
func RenameFormatter(node *treeview.Node[treeview.FileInfo]) (string, bool) {
	cm := core.GetMeta(node)
	if cm == nil {
		return node.Name(), true
	}

	if cm.Unrecognized {
		return fmt.Sprintf("%s (unrecognized, skipped)", node.Name()), true
	}

	if cm.NewName == "" {
		// no proposed rename
		return node.Name(), true
	}
	// Status specific
	switch cm.RenameStatus {
	case core.RenameStatusSuccess:
		return cm.NewName, true
	case core.RenameStatusError:
		return fmt.Sprintf("%s: %s", node.Name(), cm.RenameError), true
	}
	// Unchanged name, keep original
	if cm.NewName == node.Name() {
		return node.Name(), true
	}
	return fmt.Sprintf("%s ← %s", cm.NewName, node.Name()), true
}
