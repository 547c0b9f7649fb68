package rename

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Digital-Shane/clip-tidy/internal/clip"
	"github.com/Digital-Shane/clip-tidy/internal/core"
	"github.com/Digital-Shane/clip-tidy/internal/log"
	"github.com/Digital-Shane/clip-tidy/internal/tui/components"
	"github.com/Digital-Shane/clip-tidy/internal/tui/theme"

	"github.com/Digital-Shane/treeview"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// UndoCompleteMsg is emitted when an undo operation completes.
type UndoCompleteMsg struct{ successCount, errorCount int }

func (u UndoCompleteMsg) SuccessCount() int { return u.successCount }
func (u UndoCompleteMsg) ErrorCount() int   { return u.errorCount }

// RenameModel wraps the underlying treeview TUI model to add clip rename
// functionality and real‑time statistics.
type RenameModel struct {
	*treeview.TuiTreeModel[treeview.FileInfo]
	renameInProgress bool
	renameComplete   bool
	successCount     int
	errorCount       int
	progressModel    progress.Model
	progressVisible  bool
	progress         OperationProgress
	engine           *OperationEngine
	width            int
	height           int

	// Engine config
	Parser        *clip.Parser
	CSVClipColumn string
	Command       string
	CommandArgs   []string
	WorkDir       string

	// Layout metrics
	treeWidth   int
	treeHeight  int
	statsWidth  int
	statsHeight int

	// Stat tracking
	statsCache Statistics
	statsDirty bool

	theme theme.Theme

	// Undo support
	undoAvailable  bool
	undoInProgress bool
	undoComplete   bool
	undoSuccess    int
	undoFailed     int

	// Diagnostics from the last engine run
	unrecognizedClasses []string
	csvMisses           []string
	missingMapping      bool

	// Stats panel scrolling
	statsViewport *viewport.Model
	statsFocused  bool // whether the stats panel is focused for scrolling
}

// Option configures a RenameModel during construction.
type Option func(*RenameModel)

// WithTheme overrides the theme used by the rename TUI.
func WithTheme(th theme.Theme) Option {
	return func(m *RenameModel) {
		m.theme = th
	}
}

// NewOperationEngine constructs a fresh operation engine snapshot using the
// current rename model configuration and tree state.
func (m *RenameModel) NewOperationEngine() *OperationEngine {
	if m.TuiTreeModel == nil {
		return NewOperationEngine(OperationConfig{})
	}
	return NewOperationEngine(OperationConfig{
		Tree:          m.TuiTreeModel.Tree,
		Parser:        m.Parser,
		CSVClipColumn: m.CSVClipColumn,
		Command:       m.Command,
		CommandArgs:   m.CommandArgs,
	})
}

func (m *RenameModel) headerStyle() lipgloss.Style {
	return m.theme.HeaderStyle()
}

func (m *RenameModel) statusBarStyle() lipgloss.Style {
	return m.theme.StatusBarStyle()
}

func (m *RenameModel) panelStyle() lipgloss.Style {
	return m.theme.PanelStyle()
}

func (m *RenameModel) panelTitleStyle() lipgloss.Style {
	return m.theme.PanelTitleStyle()
}

// NewRenameModel returns an initialized RenameModel for the provided tree with
// default dimensions (later adjusted on the first WindowSize message).
func NewRenameModel(tree *treeview.Tree[treeview.FileInfo], opts ...Option) *RenameModel {
	m := &RenameModel{
		width:      80,
		height:     24,
		statsDirty: true,
	}

	initOpts := append([]Option{WithTheme(theme.Default())}, opts...)
	for _, opt := range initOpts {
		opt(m)
	}

	runewidth.DefaultCondition.EastAsianWidth = false
	runewidth.DefaultCondition.StrictEmojiNeutral = true

	gradient := m.theme.ProgressGradient()
	if len(gradient) < 2 {
		gradient = []string{string(m.theme.Colors().Primary), string(m.theme.Colors().Accent)}
	}
	m.progressModel = progress.New(progress.WithGradient(gradient[0], gradient[1]))
	m.progressModel.Width = 40
	// establish initial layout metrics before building underlying model
	m.CalculateLayout()

	// Initialize stats viewport
	m.statsViewport = components.NewViewport(m.statsWidth, m.statsHeight, m.theme)

	m.TuiTreeModel = m.createSizedTuiModel(tree)
	return m
}

// getIcon returns the appropriate icon for the current terminal
func (m *RenameModel) getIcon(iconType string) string {
	return m.theme.Icon(iconType)
}

func (m *RenameModel) arrowIcons() (string, string) {
	icons := []rune(m.getIcon("arrows"))
	switch {
	case len(icons) >= 4:
		return string(icons[0:2]), string(icons[2:4])
	case len(icons) >= 2:
		return string(icons[0]), string(icons[1:])
	default:
		return "↑↓", "←→"
	}
}

// CalculateLayout recomputes panel dimensions from current window size.
func (m *RenameModel) CalculateLayout() {
	// Set tree width to 60%
	tw := m.width * 6 / 10
	// Reserve space for header (1) + newline after header (1) + newline before status (1) + status bar (1) = 4 lines
	th := m.height - 4
	// Ensure min height
	if th < 5 {
		th = 5
	}
	m.treeWidth = tw
	m.treeHeight = th
	// Stats panel uses remaining width
	m.statsWidth = m.width - tw
	// Stats panel has same height as tree (both panels should align)
	m.statsHeight = th
	// ensure a minimal positive stats height
	if m.statsHeight < 1 {
		m.statsHeight = 1
	}

	// Update stats viewport dimensions if initialized
	if m.statsViewport != nil && (m.statsViewport.Width > 0 || m.statsViewport.Height > 0) {
		// Account for border and padding in viewport dimensions
		// Border (2) + padding (2) = 4 total horizontal frame size
		frameWidth := 4
		frameHeight := 4

		viewportWidth := m.statsWidth - frameWidth
		viewportHeight := m.statsHeight - frameHeight

		if viewportWidth < 1 {
			viewportWidth = 1
		}
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		m.statsViewport.Width = viewportWidth
		m.statsViewport.Height = viewportHeight
	}
}

// createSizedTuiModel builds a tree model sized to current dimensions and
// disables treeview features (search/reset) not needed for this application.
func (m *RenameModel) createSizedTuiModel(tree *treeview.Tree[treeview.FileInfo]) *treeview.TuiTreeModel[treeview.FileInfo] {
	// Create custom key map without search and reset
	keyMap := treeview.DefaultKeyMap()
	keyMap.SearchStart = []string{} // Disable search
	keyMap.Reset = []string{}       // Disable ctrl+r reset

	return treeview.NewTuiTreeModel(tree,
		treeview.WithTuiWidth[treeview.FileInfo](m.treeWidth),
		treeview.WithTuiHeight[treeview.FileInfo](m.treeHeight),
		treeview.WithTuiAllowResize[treeview.FileInfo](true),
		treeview.WithTuiDisableNavBar[treeview.FileInfo](true),
		treeview.WithTuiKeyMap[treeview.FileInfo](keyMap),
	)
}

// Init initializes the embedded tree model and requests an initial window size.
func (m *RenameModel) Init() tea.Cmd {
	return tea.Batch(
		m.TuiTreeModel.Init(),
		tea.WindowSize(),
	)
}

// Update handles Bubble Tea messages (resize, key events, internal completion).
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window size changes
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Record full window size
		m.width = msg.Width
		m.height = msg.Height
		// Recalculate layout metrics once, then forward scaled size to tree model
		m.CalculateLayout()
		internalMsg := tea.WindowSizeMsg{Width: m.treeWidth, Height: m.treeHeight}
		updated, cmd := m.TuiTreeModel.Update(internalMsg)
		if tm, ok := updated.(*treeview.TuiTreeModel[treeview.FileInfo]); ok {
			m.TuiTreeModel = tm
		}
		return m, cmd

	case tea.KeyMsg:
		// Handle custom keys before passing to tree model
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			// Toggle between tree and stats panel focus
			m.statsFocused = !m.statsFocused
			return m, nil

		case "delete", "d":
			if focusedNode := m.TuiTreeModel.Tree.GetFocusedNode(); focusedNode != nil {
				retargetFocusAfterRemoval(m.TuiTreeModel.Tree)
				m.removeNodeFromTree(focusedNode)
				m.statsDirty = true
			}
			return m, nil
		case "r":
			if !m.renameInProgress {
				m.renameInProgress = true
				m.renameComplete = false
				m.successCount = 0
				m.errorCount = 0
				m.engine = m.NewOperationEngine()
				m.progress = OperationProgress{
					OverallTotal: m.engine.TotalOperations(),
				}
				m.progressVisible = true
				cmds := []tea.Cmd{m.progressModel.SetPercent(0)}
				cmds = append(cmds, m.engine.ProcessNextCmd())
				return m, tea.Batch(cmds...)
			}
		case "u", "U":
			if m.undoAvailable && !m.undoInProgress {
				m.undoInProgress = true
				m.undoAvailable = false
				m.progressVisible = true
				return m, m.performUndo()
			}
		case "up":
			if m.statsFocused {
				// Scroll stats panel up
				m.statsViewport.ScrollUp(1)
				return m, nil
			}
		case "down":
			if m.statsFocused {
				// Scroll stats panel down
				m.statsViewport.ScrollDown(1)
				return m, nil
			}
		case "pgup":
			if m.statsFocused {
				// Page up in stats panel
				m.statsViewport.HalfPageUp()
				return m, nil
			}
			// Page up - move up by viewport height in tree
			pageSize := max(m.treeHeight, 10)
			m.TuiTreeModel.Tree.Move(context.Background(), -pageSize)
			return m, nil
		case "pgdown":
			if m.statsFocused {
				// Page down in stats panel
				m.statsViewport.HalfPageDown()
				return m, nil
			}
			// Page down - move down by viewport height in tree
			pageSize := max(m.treeHeight, 10)
			m.TuiTreeModel.Tree.Move(context.Background(), pageSize)
			return m, nil
		}

	case tea.MouseMsg:
		// Handle mouse wheel scrolling
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButton(4): // Mouse wheel up
			if m.statsFocused {
				// Scroll stats panel up
				m.statsViewport.ScrollUp(1)
			} else {
				// Scroll tree up by 1 line
				m.TuiTreeModel.Tree.Move(context.Background(), -1)
			}
			return m, nil
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButton(5): // Mouse wheel down
			if m.statsFocused {
				// Scroll stats panel down
				m.statsViewport.ScrollDown(1)
			} else {
				// Scroll tree down by 1 line
				m.TuiTreeModel.Tree.Move(context.Background(), 1)
			}
			return m, nil
		}

	case RenameCompleteMsg:
		m.renameInProgress = false
		m.renameComplete = true
		m.successCount = msg.successCount
		m.errorCount = msg.errorCount
		m.statsDirty = true
		m.progressVisible = false
		m.undoAvailable = msg.successCount > 0
		if m.engine != nil {
			m.unrecognizedClasses = m.engine.UnrecognizedClasses()
			m.csvMisses = m.engine.CSVMisses()
			m.missingMapping = m.engine.MissingMapping()
		}
		m.engine = nil
		m.progress.SuccessCount = msg.successCount
		m.progress.ErrorCount = msg.errorCount
		m.progress.OverallCompleted = m.progress.OverallTotal
		cmd := m.progressModel.SetPercent(1)
		return m, cmd
	case UndoCompleteMsg:
		m.undoInProgress = false
		m.undoComplete = true
		m.undoSuccess = msg.successCount
		m.undoFailed = msg.errorCount
		m.progressVisible = false
		return m, nil
	case OperationProgressMsg:
		m.progress = msg.Progress
		m.successCount = msg.Progress.SuccessCount
		m.errorCount = msg.Progress.ErrorCount
		m.statsDirty = true
		var pct float64
		if msg.Progress.OverallTotal > 0 {
			pct = math.Min(float64(msg.Progress.OverallCompleted)/float64(msg.Progress.OverallTotal), 1)
		}
		cmds := []tea.Cmd{m.progressModel.SetPercent(pct)}
		if m.engine != nil {
			cmds = append(cmds, m.engine.ProcessNextCmd())
		}
		return m, tea.Batch(cmds...)
	case progress.FrameMsg:
		// propagate animation frames for the progress bar so percent updates render
		pm, cmd := m.progressModel.Update(msg)
		m.progressModel = pm.(progress.Model)
		return m, cmd
	}

	// Pass through to embedded tree model for other messages
	updatedModel, cmd := m.TuiTreeModel.Update(msg)
	if tm, ok := updatedModel.(*treeview.TuiTreeModel[treeview.FileInfo]); ok {
		m.TuiTreeModel = tm
	}

	return m, cmd
}

// View returns the full TUI string (header, tree+stats layout, status bar).
func (m *RenameModel) View() string {
	var b strings.Builder

	// Render header
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')

	// Stats Panel
	b.WriteString(m.renderTwoPanelLayout())
	b.WriteByte('\n')

	// Render integrated status bar
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderHeader creates the single‑line header bar with player + working directory.
func (m *RenameModel) renderHeader() string {
	style := m.headerStyle().Width(m.width)

	player := ""
	if m.Parser != nil {
		player = m.Parser.Player().FullName()
	}
	title := fmt.Sprintf("%s Clip Rename - %s - %s", m.getIcon("player"), player, m.WorkDir)
	return style.Render(title)
}

// renderStatusBar renders a single line of key hints and actions.
func (m *RenameModel) renderStatusBar() string {
	if m.progressVisible && m.renameInProgress {
		// show progress bar with styled text
		bar := m.progressModel.View()
		textStyle := m.statusBarStyle()
		completed := m.progress.OverallCompleted
		total := m.progress.OverallTotal
		statusText := textStyle.Render(fmt.Sprintf("%d/%d - Renaming...", completed, total))
		// Combine bar and styled text, then apply the full width style
		combined := fmt.Sprintf("%s  %s", bar, statusText)
		return m.statusBarStyle().Width(m.width - 1).Render(combined)
	}

	if m.progressVisible && m.undoInProgress {
		// show progress bar with undo text
		bar := m.progressModel.View()
		textStyle := m.statusBarStyle()
		statusText := textStyle.Render("Undoing operations...")
		combined := fmt.Sprintf("%s  %s", bar, statusText)
		return m.statusBarStyle().Width(m.width).Render(combined)
	}

	// Add undo info if available or completed
	undoInfo := ""
	if m.undoAvailable {
		undoInfo = "u: Undo  │  "
	} else if m.undoComplete {
		if m.undoFailed > 0 {
			undoInfo = fmt.Sprintf("Undo: %d success, %d failed  │  ", m.undoSuccess, m.undoFailed)
		} else {
			undoInfo = fmt.Sprintf("Undo: %d operations reversed  │  ", m.undoSuccess)
		}
	}

	focusInfo := ""
	if m.statsFocused {
		focusInfo = "Tab: Tree Focus  │  "
	} else {
		focusInfo = "Tab: Stats Focus  │  "
	}

	upDown, leftRight := m.arrowIcons()
	statusText := fmt.Sprintf("%s%s: Navigate  PgUp/PgDn: Page  %s: Expand/Collapse  │  r: Rename  │  %sd: Remove  │  Esc/Ctrl+C: Quit",
		focusInfo,
		upDown,
		leftRight,
		undoInfo)
	return m.statusBarStyle().Width(m.width - 1).Render(statusText)
}

// renderTwoPanelLayout joins the tree view and statistics panel horizontally.
func (m *RenameModel) renderTwoPanelLayout() string {
	statsPanel := m.renderStatsPanel()
	treeView := m.TuiTreeModel.View()

	// Force tree view to use exact allocated width to prevent stats panel from jumping
	treeContainer := lipgloss.NewStyle().
		Width(m.treeWidth).
		MaxWidth(m.treeWidth).
		Render(treeView)

	// Stats panel already handles its own width internally, don't double-wrap
	return lipgloss.JoinHorizontal(lipgloss.Top, treeContainer, statsPanel)
}

// renderStatsPanel builds and formats the statistics panel content using a scrollable viewport.
func (m *RenameModel) renderStatsPanel() string {
	// Update the viewport content when stats are dirty or viewport content is empty
	if m.statsDirty || m.statsViewport.View() == "" {
		m.updateStatsContent()
	}

	// Create border style
	borderStyle := m.panelStyle()

	// Create title with scroll indicator
	titleStyle := m.panelTitleStyle().MarginBottom(1)

	scrollIndicator := ""
	if m.statsViewport.TotalLineCount() > m.statsViewport.Height {
		if m.statsFocused {
			scrollIndicator = " [Use Tab+↑↓]"
		} else {
			scrollIndicator = " [Tab to scroll]"
		}
	}

	title := titleStyle.Render(fmt.Sprintf("%s Statistics%s", m.getIcon("stats"), scrollIndicator))

	// Combine title and viewport
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.statsViewport.View(),
	)

	// Apply the border and sizing
	return borderStyle.
		Width(m.statsWidth - borderStyle.GetHorizontalFrameSize()).
		Height(m.statsHeight - borderStyle.GetVerticalFrameSize()).
		Render(content)
}

// updateStatsContent generates the stats content and sets it in the viewport
func (m *RenameModel) updateStatsContent() {
	stats := m.calculateStats()
	var b strings.Builder
	b.Grow(512)

	b.WriteString("Files Found:\n")
	fmt.Fprintf(&b, "  %s %-14s %d\n", m.getIcon("video"), "Videos:", stats.videoCount)
	fmt.Fprintf(&b, "  %s %-14s %d\n", m.getIcon("sidecar"), "Metadata:", stats.sidecarCount)
	fmt.Fprintf(&b, "  %s %-14s %d\n", m.getIcon("mapping"), "Mappings:", stats.mappingCount)

	b.WriteString("\nRename Status:\n")
	fmt.Fprintf(&b, "  %s %-14s %d\n", m.getIcon("needrename"), " Need rename:", stats.needRenameCount)
	fmt.Fprintf(&b, "  %s %-14s %d\n", m.getIcon("nochange"), " No change:", stats.noChangeCount)
	if stats.unrecognizedCount > 0 {
		fmt.Fprintf(&b, "  %s %-13s %d\n", m.getIcon("unknown"), "Unrecognized:", stats.unrecognizedCount)
	}

	if stats.successCount > 0 || stats.errorCount > 0 {
		b.WriteString("\nLast Operation:\n")
		if stats.successCount > 0 {
			fmt.Fprintf(&b, "  %s %-12s %d\n", m.getIcon("success"), "Success:", stats.successCount)
		}
		if stats.errorCount > 0 {
			fmt.Fprintf(&b, "  %s %-12s %d\n", m.getIcon("error"), "Errors:", stats.errorCount)
		}
	}

	if len(m.unrecognizedClasses) > 0 {
		b.WriteString("\nUnknown Categories:\n")
		for _, class := range m.unrecognizedClasses {
			fmt.Fprintf(&b, "  %s %s\n", m.getIcon("unknown"), class)
		}
	}

	if len(m.csvMisses) > 0 {
		b.WriteString("\nUnmatched CSV Rows:\n")
		for _, cell := range m.csvMisses {
			fmt.Fprintf(&b, "  %s %s\n", m.getIcon("unknown"), cell)
		}
	}

	if m.missingMapping && m.renameComplete {
		fmt.Fprintf(&b, "\n%s No URL mapping CSV found\n", m.getIcon("unknown"))
	}

	if m.progressVisible && m.renameInProgress {
		percent := 0
		completed := m.progress.OverallCompleted
		total := m.progress.OverallTotal
		if total > 0 {
			percent = (completed * 100) / total
		}
		b.WriteString("\nRename Progress:\n")
		fmt.Fprintf(&b, "  %d/%d (%d%%)\n", completed, total, percent)
	}

	totalItems := stats.videoCount + stats.sidecarCount + stats.mappingCount

	fmt.Fprintf(&b, "\nTotal items: %d\n", totalItems)
	if totalItems > 0 {
		percentNeedRename := (stats.needRenameCount * 100) / totalItems
		fmt.Fprintf(&b, "Need rename: %d%%", percentNeedRename)
	}
	if stats.totalDurationSecs > 0 {
		fmt.Fprintf(&b, "\n%s Footage: %s", m.getIcon("clock"), formatDuration(stats.totalDurationSecs))
	}

	m.statsViewport.SetContent(b.String())
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	if total >= 3600 {
		return fmt.Sprintf("%dh%02dm%02ds", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%dm%02ds", total/60, total%60)
}

// Statistics aggregates counts derived from the current tree plus the most
// recent batch rename operation.
type Statistics struct {
	videoCount        int
	sidecarCount      int
	mappingCount      int
	unrecognizedCount int
	needRenameCount   int
	noChangeCount     int
	successCount      int
	errorCount        int
	totalDurationSecs float64
}

// calculateStats walks the tree to produce aggregate counts while preserving
// previously recorded success/error tallies from the last rename operation.
func (m *RenameModel) calculateStats() Statistics {
	// Fast path: return cached stats if still valid
	if !m.statsDirty {
		// always ensure latest success/error counts reflected even if cache reused
		m.statsCache.successCount = m.successCount
		m.statsCache.errorCount = m.errorCount
		return m.statsCache
	}

	stats := Statistics{}
	for nodeInfo := range m.Tree.All(context.Background()) {
		node := nodeInfo.Node
		cm := core.GetMeta(node)
		if cm == nil {
			continue
		}
		switch cm.Type {
		case core.ClipVideo:
			stats.videoCount++
		case core.ClipSidecar:
			stats.sidecarCount++
		case core.ClipMapping:
			stats.mappingCount++
		}
		stats.totalDurationSecs += cm.DurationSeconds
		if cm.Unrecognized {
			stats.unrecognizedCount++
		} else if cm.NewName != "" {
			if cm.NewName != node.Name() {
				stats.needRenameCount++
			} else {
				stats.noChangeCount++
			}
		}
	}
	stats.successCount = m.successCount
	stats.errorCount = m.errorCount
	m.statsCache = stats
	m.statsDirty = false
	return stats
}

func retargetFocusAfterRemoval(tree *treeview.Tree[treeview.FileInfo]) {
	if tree == nil {
		return
	}
	ctx := context.Background()
	if moved, err := tree.Move(ctx, -1); err == nil && moved {
		return
	}
	_, _ = tree.Move(ctx, 1)
}

// removeNodeFromTree removes the given node from the tree by checking if it's a root node
// (has no parent) and either removing it from the root slice or from its parent's children.
func (m *RenameModel) removeNodeFromTree(nodeToRemove *treeview.Node[treeview.FileInfo]) {
	if nodeToRemove == nil {
		return
	}

	parent := nodeToRemove.Parent()
	if parent == nil {
		m.removeRootNode(nodeToRemove)
		return
	}

	// Remove the node from its parent's children
	currentChildren := parent.Children()
	// Create a new slice to avoid modifying the original
	childrenCopy := make([]*treeview.Node[treeview.FileInfo], len(currentChildren))
	copy(childrenCopy, currentChildren)
	filteredChildren := slices.DeleteFunc(childrenCopy, func(n *treeview.Node[treeview.FileInfo]) bool {
		return n == nodeToRemove
	})
	parent.SetChildren(filteredChildren)
}

// removeRootNode removes a root node from the tree's internal nodes slice
func (m *RenameModel) removeRootNode(nodeToRemove *treeview.Node[treeview.FileInfo]) {
	// Get the current root nodes and filter out the node to remove
	currentRoots := m.TuiTreeModel.Tree.Nodes()
	// Create a new slice to avoid modifying the original
	rootsCopy := make([]*treeview.Node[treeview.FileInfo], len(currentRoots))
	copy(rootsCopy, currentRoots)
	filteredRoots := slices.DeleteFunc(rootsCopy, func(n *treeview.Node[treeview.FileInfo]) bool {
		return n == nodeToRemove
	})
	m.TuiTreeModel.Tree.SetNodes(filteredRoots)
}

// performUndo undoes the most recent operation session
func (m *RenameModel) performUndo() tea.Cmd {
	return func() tea.Msg {
		// Get the latest session and undo it
		latest, err := log.FindLatestSession()
		if err != nil {
			return UndoCompleteMsg{successCount: 0, errorCount: 1}
		}

		successful, failed, _, _ := log.UndoSession(latest)
		return UndoCompleteMsg{successCount: successful, errorCount: failed}
	}
}
