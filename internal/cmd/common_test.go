package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Digital-Shane/clip-tidy/internal/clip"
	"github.com/Digital-Shane/clip-tidy/internal/config"
	"github.com/Digital-Shane/clip-tidy/internal/core"
	"github.com/Digital-Shane/treeview"
	"github.com/google/go-cmp/cmp"
)

func TestCreateClipFilter(t *testing.T) {
	tests := []struct {
		name     string
		fileInfo treeview.FileInfo
		want     bool
	}{
		{
			name:     "video_file",
			fileInfo: treeview.FileInfo{FileInfo: core.NewSimpleFileInfo("Keldon_Johnson_dunk_1.mp4", false)},
			want:     true,
		},
		{
			name:     "sidecar_file",
			fileInfo: treeview.FileInfo{FileInfo: core.NewSimpleFileInfo("Keldon_Johnson_dunk_1.json", false)},
			want:     true,
		},
		{
			name:     "mapping_csv",
			fileInfo: treeview.FileInfo{FileInfo: core.NewSimpleFileInfo("Keldon_Johnson_url_mapping.csv", false)},
			want:     true,
		},
		{
			name:     "directory",
			fileInfo: treeview.FileInfo{FileInfo: core.NewSimpleFileInfo("bad", true)},
			want:     true,
		},
		{
			name:     "hidden_file",
			fileInfo: treeview.FileInfo{FileInfo: core.NewSimpleFileInfo(".DS_Store", false)},
			want:     false,
		},
		{
			name:     "other_csv",
			fileInfo: treeview.FileInfo{FileInfo: core.NewSimpleFileInfo("notes.csv", false)},
			want:     false,
		},
		{
			name:     "regular_file",
			fileInfo: treeview.FileInfo{FileInfo: core.NewSimpleFileInfo("readme.txt", false)},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := createClipFilter()
			got := filter(tt.fileInfo)
			if got != tt.want {
				t.Errorf("createClipFilter()(%v) = %v, want %v", tt.fileInfo.Name(), got, tt.want)
			}
		})
	}
}

func newCmdTestNode(name string, isDir bool) *treeview.Node[treeview.FileInfo] {
	info := treeview.FileInfo{
		FileInfo: core.NewSimpleFileInfo(name, isDir),
		Path:     name,
		Extra:    map[string]any{},
	}
	return treeview.NewNode(name, name, info)
}

func TestAnnotateTree(t *testing.T) {
	player, err := clip.NewPlayer("Keldon", "Johnson")
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	cfg := config.DefaultConfig()
	parser := clip.NewParser(player, cfg.Categories, cfg.IndexWidth)

	legacy := newCmdTestNode("Keldon_Johnson_3points_1.mp4", false)
	sidecar := newCmdTestNode("Keldon_Johnson_freethrow_23.json", false)
	canonical := newCmdTestNode("Keldon Johnson_3pt_005.mp4", false)
	unknownCategory := newCmdTestNode("Keldon Johnson_dunk_005.mp4", false)
	mapping := newCmdTestNode("Keldon_Johnson_url_mapping.csv", false)
	otherMapping := newCmdTestNode("Devin_Vassell_url_mapping.csv", false)
	unknown := newCmdTestNode("practice_footage.mp4", false)
	folder := newCmdTestNode("bad", true)

	nodes := []*treeview.Node[treeview.FileInfo]{legacy, sidecar, canonical, unknownCategory, mapping, otherMapping, unknown, folder}
	tree := treeview.NewTree(nodes)

	annotateTree(tree, parser, cfg)

	tests := []struct {
		node        *treeview.Node[treeview.FileInfo]
		wantType    core.ClipType
		wantNewName string
		wantUnrecog bool
	}{
		{legacy, core.ClipVideo, "Keldon Johnson_3pt_001.mp4", false},
		{sidecar, core.ClipSidecar, "Keldon Johnson_freethrow_023.json", false},
		{canonical, core.ClipVideo, "Keldon Johnson_3pt_005.mp4", false},
		// Canonical shape but a category token missing from the table.
		{unknownCategory, core.ClipVideo, "", true},
		{mapping, core.ClipMapping, "Keldon Johnson_url_mapping.csv", false},
		{otherMapping, core.ClipMapping, "", true},
		{unknown, core.ClipVideo, "", true},
		{folder, core.ClipFolder, "", false},
	}

	for _, tt := range tests {
		meta := core.GetMeta(tt.node)
		if meta == nil {
			t.Errorf("GetMeta(%s) = nil, want meta", tt.node.Name())
			continue
		}
		if meta.Type != tt.wantType {
			t.Errorf("annotateTree(%s) type = %v, want %v", tt.node.Name(), meta.Type, tt.wantType)
		}
		if diff := cmp.Diff(tt.wantNewName, meta.NewName); diff != "" {
			t.Errorf("annotateTree(%s) NewName diff (-want +got):\n%s", tt.node.Name(), diff)
		}
		if meta.Unrecognized != tt.wantUnrecog {
			t.Errorf("annotateTree(%s) Unrecognized = %v, want %v", tt.node.Name(), meta.Unrecognized, tt.wantUnrecog)
		}
	}
}

func TestUnwrapRootFlattensSingleDir(t *testing.T) {
	root := newCmdTestNode("clips", true)
	child1 := newCmdTestNode("Keldon_Johnson_dunk_1.mp4", false)
	child2 := newCmdTestNode("Keldon_Johnson_dunk_1.json", false)
	root.AddChild(child1)
	root.AddChild(child2)

	tree := treeview.NewTree([]*treeview.Node[treeview.FileInfo]{root})
	nodes := unwrapRoot(tree)

	gotNames := make([]string, 0, len(nodes))
	for _, n := range nodes {
		gotNames = append(gotNames, n.Name())
	}
	want := []string{"Keldon_Johnson_dunk_1.mp4", "Keldon_Johnson_dunk_1.json"}
	if diff := cmp.Diff(want, gotNames); diff != "" {
		t.Errorf("unwrapRoot() names diff (-want +got):\n%s", diff)
	}
}

func TestUnwrapRootLeavesMultipleRoots(t *testing.T) {
	a := newCmdTestNode("a.mp4", false)
	b := newCmdTestNode("b.mp4", false)
	tree := treeview.NewTree([]*treeview.Node[treeview.FileInfo]{a, b})

	nodes := unwrapRoot(tree)
	if len(nodes) != 2 {
		t.Errorf("unwrapRoot() len = %d, want 2", len(nodes))
	}
}

func TestIndexFilesReachesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	deep := filepath.Join(dir, "bad", "extra", "deep", "deeper")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	for path, content := range map[string]string{
		filepath.Join(dir, "Keldon_Johnson_3points_1.mp4"):  "v",
		filepath.Join(deep, "Keldon_Johnson_3points_3.mp4"): "v",
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", path, err)
		}
	}

	tree, err := indexFiles(dir, false)
	if err != nil {
		t.Fatalf("indexFiles() error = %v", err)
	}

	found := false
	for ni := range tree.All(context.Background()) {
		if ni.Node.Name() == "Keldon_Johnson_3points_3.mp4" {
			found = true
		}
	}
	if !found {
		t.Errorf("indexFiles() missed the nested clip under bad/extra/deep/deeper")
	}
}
