package rename

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Digital-Shane/clip-tidy/internal/clip"
	"github.com/Digital-Shane/clip-tidy/internal/core"
	"github.com/Digital-Shane/clip-tidy/internal/log"
	"github.com/Digital-Shane/clip-tidy/internal/rewrite"
	"github.com/Digital-Shane/treeview"
	"github.com/charmbracelet/bubbletea"
)

// RenameCompleteMsg is emitted once all queued operations finish running.
type RenameCompleteMsg struct{ successCount, errorCount int }

// SuccessCount returns the number of successful operations.
func (r RenameCompleteMsg) SuccessCount() int { return r.successCount }

// ErrorCount returns the number of failed operations.
func (r RenameCompleteMsg) ErrorCount() int { return r.errorCount }

// OperationProgressMsg reports incremental progress while the operation engine
// processes queued actions.
type OperationProgressMsg struct {
	Progress OperationProgress
}

// OperationProgress captures aggregate progress information for the current
// batch run. It is intentionally value-based so the UI can cache the snapshot.
type OperationProgress struct {
	OverallCompleted int
	OverallTotal     int
	SuccessCount     int
	ErrorCount       int
}

// OperationKind classifies the concrete action being executed.
type OperationKind string

const (
	OperationRename      OperationKind = "rename"
	OperationRewriteJSON OperationKind = "rewrite-json"
	OperationRewriteCSV  OperationKind = "rewrite-csv"
)

// OperationFunctions bundles the filesystem callbacks used by the engine.
// Tests and dry-run executions can override any subset of these handlers.
type OperationFunctions struct {
	RenameClip     func(*treeview.Node[treeview.FileInfo], *core.ClipMeta) (bool, error)
	RewriteSidecar func(string, *clip.Parser) (*rewrite.SidecarResult, error)
	RewriteMapping func(string, clip.Player, string, map[string]string) (*rewrite.MappingResult, error)
	StartSession   func(string, []string) error
	EndSession     func() error
}

func (f OperationFunctions) withDefaults() OperationFunctions {
	if f.RenameClip == nil {
		f.RenameClip = core.RenameClip
	}
	if f.RewriteSidecar == nil {
		f.RewriteSidecar = rewrite.RewriteSidecar
	}
	if f.RewriteMapping == nil {
		f.RewriteMapping = rewrite.RewriteMapping
	}
	if f.StartSession == nil {
		f.StartSession = log.StartSession
	}
	if f.EndSession == nil {
		f.EndSession = log.EndSession
	}
	return f
}

// OperationConfig configures the behaviour of the operation engine.
type OperationConfig struct {
	Tree          *treeview.Tree[treeview.FileInfo]
	Parser        *clip.Parser
	CSVClipColumn string
	Command       string
	CommandArgs   []string
	Functions     OperationFunctions
	Stderr        io.Writer
}

type operation struct {
	kind OperationKind
	node *treeview.Node[treeview.FileInfo]
	meta *core.ClipMeta
}

// OperationEngine walks the annotated tree, queuing and executing operations
// one at a time so the TUI can remain responsive. Queued work runs in three
// phases: file renames first, then metadata rewrites, then the single mapping
// CSV rewrite. The rename phase records every old-stem to new-stem pair so the
// CSV phase can resolve clip-name cells by exact lookup.
type OperationEngine struct {
	cfg            OperationConfig
	fns            OperationFunctions
	ops            []operation
	idx            int
	successes      int
	failures       int
	startedLogging bool
	finished       bool
	stderr         io.Writer

	renames        map[string]string
	unrecognized   []string
	csvMisses      []string
	missingMapping bool
}

// NewOperationEngine builds a queue-driven executor for rename and rewrite
// operations.
func NewOperationEngine(cfg OperationConfig) *OperationEngine {
	cfg.Functions = cfg.Functions.withDefaults()
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	engine := &OperationEngine{
		cfg:     cfg,
		fns:     cfg.Functions,
		stderr:  cfg.Stderr,
		renames: map[string]string{},
	}
	engine.collectOperations()
	return engine
}

// TotalOperations returns the total number of queued operations.
func (e *OperationEngine) TotalOperations() int { return len(e.ops) }

// RenameMap returns the old-stem to new-stem pairs accumulated so far.
func (e *OperationEngine) RenameMap() map[string]string { return e.renames }

// UnrecognizedClasses lists class_name values no category rule matched,
// gathered across all metadata rewrites.
func (e *OperationEngine) UnrecognizedClasses() []string { return e.unrecognized }

// CSVMisses lists mapping CSV clip-name cells that resolved to no rename.
func (e *OperationEngine) CSVMisses() []string { return e.csvMisses }

// MissingMapping reports whether the tree held no URL mapping CSV for the
// player, meaning the CSV update phase had nothing to do.
func (e *OperationEngine) MissingMapping() bool { return e.missingMapping }

// ProcessNext runs the next queued operation and returns a Bubble Tea message.
func (e *OperationEngine) ProcessNext() tea.Msg {
	if e.finished {
		return RenameCompleteMsg{successCount: e.successes, errorCount: e.failures}
	}
	e.ensureLoggingStarted()

	if e.idx >= len(e.ops) {
		e.finishLogging()
		e.finished = true
		return RenameCompleteMsg{successCount: e.successes, errorCount: e.failures}
	}

	op := e.ops[e.idx]
	success, failure := e.run(op)
	e.successes += success
	e.failures += failure
	e.idx++

	progress := OperationProgress{
		OverallCompleted: e.idx,
		OverallTotal:     len(e.ops),
		SuccessCount:     e.successes,
		ErrorCount:       e.failures,
	}

	// If that was the final operation, the caller will invoke ProcessNext again
	// to receive the completion message. Avoid closing the log session here so
	// the progress snapshot reaches the UI first.
	return OperationProgressMsg{Progress: progress}
}

// ProcessNextCmd returns a Bubble Tea command that advances the operation
// engine by one step.
func (e *OperationEngine) ProcessNextCmd() tea.Cmd {
	return func() tea.Msg {
		return e.ProcessNext()
	}
}

// RunToCompletion executes every queued operation synchronously.
func (e *OperationEngine) RunToCompletion() RenameCompleteMsg {
	for {
		msg := e.ProcessNext()
		if complete, ok := msg.(RenameCompleteMsg); ok {
			return complete
		}
	}
}

func (e *OperationEngine) ensureLoggingStarted() {
	if e.startedLogging {
		return
	}
	e.startedLogging = true
	if err := e.fns.StartSession(e.cfg.Command, e.cfg.CommandArgs); err != nil {
		fmt.Fprintf(e.stderr, "Warning: Failed to start operation log: %v\n", err)
	}
}

func (e *OperationEngine) finishLogging() {
	if !e.startedLogging || e.finished {
		return
	}
	if err := e.fns.EndSession(); err != nil {
		fmt.Fprintf(e.stderr, "Warning: Failed to save operation log: %v\n", err)
	}
	e.finished = true
}

func (e *OperationEngine) run(op operation) (successes, failures int) {
	switch op.kind {
	case OperationRename:
		oldStem := clip.Stem(op.node.Name())
		renamed, err := e.fns.RenameClip(op.node, op.meta)
		if err != nil {
			return 0, 1
		}
		if renamed {
			e.renames[oldStem] = clip.Stem(op.meta.NewName)
			return 1, 0
		}
		return 0, 0

	case OperationRewriteJSON:
		// A sidecar whose rename failed still carries its legacy name on
		// disk. Rewriting its video_name field now would point at a file
		// that does not exist yet, so skip it.
		if op.meta.RenameStatus == core.RenameStatusError {
			return 0, 0
		}
		path := op.node.Data().Path
		result, err := e.fns.RewriteSidecar(path, e.cfg.Parser)
		if err != nil {
			log.LogRewriteJSON(path, false, err)
			op.meta.Fail(err)
			return 0, 1
		}
		e.unrecognized = append(e.unrecognized, result.Unrecognized...)
		if result.Changed {
			log.LogRewriteJSON(path, true, nil)
			return 1, 0
		}
		return 0, 0

	case OperationRewriteCSV:
		if op.meta.RenameStatus == core.RenameStatusError {
			return 0, 0
		}
		path := op.node.Data().Path
		result, err := e.fns.RewriteMapping(path, e.cfg.Parser.Player(), e.cfg.CSVClipColumn, e.renames)
		if err != nil {
			log.LogRewriteCSV(path, "", false, err)
			op.meta.Fail(err)
			return 0, 1
		}
		e.csvMisses = append(e.csvMisses, result.Misses...)
		log.LogRewriteCSV(path, result.NewPath, true, nil)
		op.meta.Success()
		op.node.Data().Path = result.NewPath
		return 1, 0
	}
	return 0, 0
}

func (e *OperationEngine) collectOperations() {
	if e.cfg.Tree == nil {
		return
	}

	ctx := context.Background()

	// Phase 1: clip file renames. Files already carrying their canonical
	// name seed the rename map with identity entries so mapping CSV cells
	// that reference them still resolve.
	for info := range e.cfg.Tree.All(ctx) {
		node := info.Node
		meta := core.GetMeta(node)
		if meta == nil || meta.Unrecognized {
			continue
		}
		if meta.Type != core.ClipVideo && meta.Type != core.ClipSidecar {
			continue
		}
		if meta.NewName == "" || meta.NewName == node.Name() {
			if meta.NewName != "" {
				stem := clip.Stem(node.Name())
				e.renames[stem] = stem
			}
			continue
		}
		e.appendOperation(operation{kind: OperationRename, node: node, meta: meta})
	}

	// Phase 2: metadata sidecar rewrites. These run after every rename so
	// each sidecar is read from its final path.
	for info := range e.cfg.Tree.All(ctx) {
		node := info.Node
		meta := core.GetMeta(node)
		if meta == nil || meta.Unrecognized || meta.Type != core.ClipSidecar {
			continue
		}
		e.appendOperation(operation{kind: OperationRewriteJSON, node: node, meta: meta})
	}

	// Phase 3: the single URL mapping rewrite, which consumes the rename
	// map accumulated in phase 1.
	queuedMapping := false
	for info := range e.cfg.Tree.All(ctx) {
		node := info.Node
		meta := core.GetMeta(node)
		if meta == nil || meta.Unrecognized || meta.Type != core.ClipMapping {
			continue
		}
		e.appendOperation(operation{kind: OperationRewriteCSV, node: node, meta: meta})
		queuedMapping = true
	}
	e.missingMapping = !queuedMapping
}

func (e *OperationEngine) appendOperation(op operation) {
	e.ops = append(e.ops, op)
}
