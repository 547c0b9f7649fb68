package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Digital-Shane/clip-tidy/internal/clip"
	"github.com/Digital-Shane/clip-tidy/internal/config"
	"github.com/Digital-Shane/clip-tidy/internal/core"
	"github.com/Digital-Shane/clip-tidy/internal/probe"
	"github.com/Digital-Shane/clip-tidy/internal/tui/components"
	"github.com/Digital-Shane/clip-tidy/internal/tui/progress"
	"github.com/Digital-Shane/clip-tidy/internal/tui/rename"
	"github.com/Digital-Shane/clip-tidy/internal/tui/theme"
	"github.com/Digital-Shane/treeview"
	"github.com/charmbracelet/bubbletea"
)

// indexMaxDepth bounds filesystem enumeration. Clip libraries are shallow,
// but nothing stops a player from nesting folders, so the budget is sized
// well past any layout seen in practice.
const indexMaxDepth = 64

// indexFiles builds the clip tree for dir. Interactive runs show the
// indexing progress TUI; instant runs index synchronously.
func indexFiles(dir string, interactive bool) (*treeview.Tree[treeview.FileInfo], error) {
	var t *treeview.Tree[treeview.FileInfo]
	if interactive {
		idxModel := progress.NewIndexProgressModel(dir, progress.IndexConfig{
			MaxDepth: indexMaxDepth,
			Filter:   createClipFilter(),
		}, theme.Default())

		finalModel, err := tea.NewProgram(idxModel, tea.WithAltScreen()).Run()
		if err != nil {
			return nil, err
		}

		im, ok := finalModel.(*progress.IndexProgressModel)
		if !ok {
			return nil, fmt.Errorf("unexpected model type %T after indexing", finalModel)
		}
		if im.Err() != nil {
			return nil, im.Err()
		}
		t = im.Tree()
	} else {
		var err error
		t, err = treeview.NewTreeFromFileSystem(context.Background(), dir, false,
			treeview.WithMaxDepth[treeview.FileInfo](indexMaxDepth),
			treeview.WithFilterFunc(createClipFilter()),
		)
		if err != nil {
			return nil, err
		}
	}
	if t == nil {
		return nil, fmt.Errorf("indexing produced no tree")
	}

	nodes := unwrapRoot(t)
	t = treeview.NewTree(nodes,
		treeview.WithExpandAll[treeview.FileInfo](),
		treeview.WithProvider(components.CreateRenameProvider()),
	)
	return t, nil
}

// createClipFilter keeps clip videos, metadata sidecars, and URL mapping
// CSVs. Directories always pass so subfolders like "bad" are descended into.
func createClipFilter() func(info treeview.FileInfo) bool {
	return func(info treeview.FileInfo) bool {
		if len(info.Name()) > 0 && info.Name()[0] == '.' {
			return false
		}
		if info.IsDir() {
			return true
		}
		return clip.IsClipFile(info.Name()) || clip.IsMappingCSV(info.Name())
	}
}

func unwrapRoot(t *treeview.Tree[treeview.FileInfo]) []*treeview.Node[treeview.FileInfo] {
	ns := t.Nodes()
	if len(ns) == 1 && ns[0].Data().IsDir() {
		children := ns[0].Children()
		cloned := make([]*treeview.Node[treeview.FileInfo], len(children))
		for i, child := range children {
			clone := treeview.NewNodeClone(child)
			clone.SetChildren(child.Children())
			cloned[i] = clone
		}
		return cloned
	}
	return ns
}

// annotateTree classifies every node and records its proposed canonical name.
func annotateTree(t *treeview.Tree[treeview.FileInfo], parser *clip.Parser, cfg *config.Config) {
	player := parser.Player()
	var prober *probe.Prober
	if cfg.EnableFFprobe {
		prober = probe.New()
	}

	for ni := range t.All(context.Background()) {
		node := ni.Node
		m := core.EnsureMeta(node)
		name := node.Name()

		if node.Data().IsDir() {
			m.Type = core.ClipFolder
			continue
		}

		switch {
		case clip.IsMappingCSV(name):
			m.Type = core.ClipMapping
			switch name {
			case player.CanonicalMappingCSVName():
				m.NewName = name
			case player.MappingCSVName():
				m.NewName = player.CanonicalMappingCSVName()
			default:
				// Another player's mapping file; leave it alone.
				m.Unrecognized = true
			}

		case clip.IsVideo(name), clip.IsSidecar(name):
			if clip.IsVideo(name) {
				m.Type = core.ClipVideo
			} else {
				m.Type = core.ClipSidecar
			}
			if parser.IsCanonical(name) {
				m.NewName = name
			} else if newName, ok := parser.Normalize(name); ok {
				m.NewName = newName
			} else {
				m.Unrecognized = true
			}
			if prober != nil && m.Type == core.ClipVideo {
				if secs, err := prober.DurationSeconds(context.Background(), node.Data().Path); err == nil {
					m.DurationSeconds = secs
				}
			}

		default:
			m.Unrecognized = true
		}
	}
}

// executeInstantMode runs the rename operation in non-interactive mode and
// prints a summary instead of a TUI.
func executeInstantMode(model *rename.RenameModel) error {
	engine := model.NewOperationEngine()
	result := engine.RunToCompletion()

	fmt.Printf("Completed: %d succeeded, %d failed\n", result.SuccessCount(), result.ErrorCount())
	if engine.MissingMapping() {
		fmt.Printf("No URL mapping CSV found for %s. Skipping CSV update.\n", model.Parser.Player().FullName())
	}
	if classes := engine.UnrecognizedClasses(); len(classes) > 0 {
		fmt.Printf("Unknown categories left unchanged: %s\n", strings.Join(classes, ", "))
	}
	if misses := engine.CSVMisses(); len(misses) > 0 {
		fmt.Printf("Mapping rows with no matching clip: %s\n", strings.Join(misses, ", "))
	}
	reportUnrecognized(model)

	if result.ErrorCount() > 0 {
		return fmt.Errorf("%d errors occurred during renaming", result.ErrorCount())
	}
	return nil
}

func reportUnrecognized(model *rename.RenameModel) {
	var names []string
	for ni := range model.Tree.All(context.Background()) {
		if m := core.GetMeta(ni.Node); m != nil && m.Unrecognized && !ni.Node.Data().IsDir() {
			names = append(names, ni.Node.Name())
		}
	}
	if len(names) > 0 {
		fmt.Fprintf(os.Stderr, "Skipped unrecognized files: %s\n", strings.Join(names, ", "))
	}
}
