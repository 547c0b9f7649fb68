package rewrite

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/Digital-Shane/clip-tidy/internal/clip"
	"github.com/google/go-cmp/cmp"
)

func testPlayer(t *testing.T) clip.Player {
	t.Helper()
	player, err := clip.NewPlayer("Keldon", "Johnson")
	if err != nil {
		t.Fatal(err)
	}
	return player
}

func writeCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatal(err)
	}
	w.Flush()
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestRewriteMapping(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	player := testPlayer(t)
	path := filepath.Join(dir, "Keldon_Johnson_url_mapping.csv")
	writeCSV(t, path, [][]string{
		{"Clip Name", "URL"},
		{"Keldon_Johnson_3points_1.mp4", "https://cdn.example.com/a"},
		{"Keldon_Johnson_3points_23.mp4", "https://cdn.example.com/b"},
		{"random_clip.mp4", "https://cdn.example.com/c"},
	})

	renames := map[string]string{
		"Keldon_Johnson_3points_1":  "Keldon Johnson_3pt_001",
		"Keldon_Johnson_3points_23": "Keldon Johnson_3pt_023",
	}

	result, err := RewriteMapping(path, player, "Clip Name", renames)
	if err != nil {
		t.Fatalf("RewriteMapping() error = %v", err)
	}

	wantPath := filepath.Join(dir, "Keldon Johnson_url_mapping.csv")
	if result.NewPath != wantPath {
		t.Errorf("NewPath = %q, want %q", result.NewPath, wantPath)
	}
	if result.Rows != 3 || result.Updated != 2 {
		t.Errorf("Rows/Updated = %d/%d, want 3/2", result.Rows, result.Updated)
	}
	if diff := cmp.Diff([]string{"random_clip.mp4"}, result.Misses); diff != "" {
		t.Errorf("Misses mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("legacy CSV still present (err = %v)", err)
	}

	got := readCSV(t, wantPath)
	want := [][]string{
		{"Clip Name", "URL"},
		{"Keldon Johnson_3pt_001.mp4", "https://cdn.example.com/a"},
		{"Keldon Johnson_3pt_023.mp4", "https://cdn.example.com/b"},
		{"random_clip.mp4", "https://cdn.example.com/c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteMappingBOMHeader(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	player := testPlayer(t)
	path := filepath.Join(dir, "Keldon_Johnson_url_mapping.csv")
	// Excel exports prefix the header with a UTF-8 BOM.
	writeCSV(t, path, [][]string{
		{"\uFEFFClip Name", "URL"},
		{"Keldon_Johnson_freethrow_9.mp4", "https://cdn.example.com/ft"},
	})

	result, err := RewriteMapping(path, player, "Clip Name", map[string]string{
		"Keldon_Johnson_freethrow_9": "Keldon Johnson_freethrow_009",
	})
	if err != nil {
		t.Fatalf("RewriteMapping() error = %v", err)
	}
	if result.Updated != 1 {
		t.Errorf("Updated = %d, want 1", result.Updated)
	}

	got := readCSV(t, result.NewPath)
	if got[0][0] != "Clip Name" {
		t.Errorf("header = %q, want BOM stripped", got[0][0])
	}
	if got[1][0] != "Keldon Johnson_freethrow_009.mp4" {
		t.Errorf("cell = %q, not rewritten", got[1][0])
	}
}

func TestRewriteMappingMissingColumn(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "Keldon_Johnson_url_mapping.csv")
	writeCSV(t, path, [][]string{
		{"File", "URL"},
		{"a.mp4", "https://cdn.example.com/a"},
	})

	if _, err := RewriteMapping(path, testPlayer(t), "Clip Name", nil); err == nil {
		t.Fatal("RewriteMapping() error = nil, want missing column error")
	}
	// The original file stays in place when the rewrite is rejected.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("original CSV missing after failed rewrite: %v", err)
	}
}

func TestRewriteMappingMissingFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "Keldon_Johnson_url_mapping.csv")
	if _, err := RewriteMapping(path, testPlayer(t), "Clip Name", nil); err == nil {
		t.Fatal("RewriteMapping() error = nil, want open failure")
	}
}

func TestRewriteMappingPreservesExtraColumns(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	player := testPlayer(t)
	path := filepath.Join(dir, "Keldon_Johnson_url_mapping.csv")
	writeCSV(t, path, [][]string{
		{"URL", "Clip Name", "Uploaded"},
		{"https://cdn.example.com/a", "Keldon_Johnson_3pts_7.mp4", "2026-01-02"},
	})

	result, err := RewriteMapping(path, player, "Clip Name", map[string]string{
		"Keldon_Johnson_3pts_7": "Keldon Johnson_3pt_007",
	})
	if err != nil {
		t.Fatalf("RewriteMapping() error = %v", err)
	}

	got := readCSV(t, result.NewPath)
	want := [][]string{
		{"URL", "Clip Name", "Uploaded"},
		{"https://cdn.example.com/a", "Keldon Johnson_3pt_007.mp4", "2026-01-02"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}
