package rewrite

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Digital-Shane/clip-tidy/internal/clip"
)

// MappingResult reports what the URL mapping rewrite did.
type MappingResult struct {
	NewPath string
	Rows    int
	Updated int
	// Misses lists clip-name cells with no entry in the rename mapping.
	// Their rows are written back unchanged.
	Misses []string
}

// RewriteMapping rewrites the clip-name column of the player's URL mapping
// CSV using the old-stem to new-stem mapping built during the rename stage,
// then renames the file itself from the underscore-joined to the
// space-joined player name. Cells are matched by exact stem lookup; a cell
// that misses is preserved verbatim and reported. All other columns pass
// through untouched.
func RewriteMapping(path string, player clip.Player, clipColumn string, renames map[string]string) (*MappingResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("mapping CSV is empty")
	}

	header := records[0]
	clipIdx := -1
	for i, name := range header {
		// Tolerate a UTF-8 BOM on the first header cell.
		if strings.EqualFold(strings.TrimPrefix(name, "\uFEFF"), clipColumn) {
			clipIdx = i
			header[i] = strings.TrimPrefix(name, "\uFEFF")
			break
		}
	}
	if clipIdx == -1 {
		return nil, fmt.Errorf("mapping CSV has no %q column", clipColumn)
	}

	result := &MappingResult{}
	for _, row := range records[1:] {
		result.Rows++
		if clipIdx >= len(row) {
			continue
		}
		cell := row[clipIdx]
		if newStem, ok := renames[clip.Stem(cell)]; ok {
			row[clipIdx] = newStem + clip.Ext(cell)
			result.Updated++
		} else if cell != "" {
			result.Misses = append(result.Misses, cell)
		}
	}

	newPath := filepath.Join(filepath.Dir(path), player.CanonicalMappingCSVName())
	result.NewPath = newPath

	out, err := os.Create(newPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create mapping CSV: %w", err)
	}
	writer := csv.NewWriter(out)
	if err := writer.WriteAll(records); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to write mapping CSV: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to write mapping CSV: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close mapping CSV: %w", err)
	}

	// Remove the legacy file only after the rewritten copy is on disk.
	if newPath != path {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("failed to remove old mapping CSV: %w", err)
		}
	}

	return result, nil
}
