package rewrite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Digital-Shane/clip-tidy/internal/clip"
)

// Sidecar field names rewritten to match the renamed clip. Every other field
// is preserved verbatim.
const (
	fieldVideoName  = "video_name"
	fieldClassName  = "class_name"
	fieldPlayerName = "player_name"
)

// SidecarResult reports what a sidecar rewrite changed and which values it
// had to leave alone.
type SidecarResult struct {
	Changed bool
	// Unrecognized lists class_name values that matched no entry in the
	// category table. They are preserved verbatim for manual follow-up.
	Unrecognized []string
}

// RewriteSidecar updates the renamed JSON sidecar at path so its metadata
// fields agree with the clip's canonical name:
//
//   - video_name becomes the canonical .mp4 name derived from the sidecar name
//   - class_name is normalized through the category table
//   - player_name has underscores replaced with spaces
//
// The document structure is arbitrary; the three fields are rewritten
// wherever they occur in nested objects and arrays. Re-serialization sorts
// object keys, so a changed file comes back with its keys in lexical order
// rather than document order. A file that fails to parse is left untouched
// and surfaced as an error so the caller can report it and move on.
func RewriteSidecar(path string, parser *clip.Parser) (*SidecarResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sidecar: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sidecar: %w", err)
	}

	// The sidecar has already been renamed, so its own stem carries the
	// canonical clip name.
	videoName := clip.Stem(filepath.Base(path)) + ".mp4"

	result := &SidecarResult{}
	rewriteValue(doc, parser, videoName, result)
	if !result.Changed {
		return result, nil
	}

	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sidecar: %w", err)
	}
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, fmt.Errorf("failed to write sidecar: %w", err)
	}
	return result, nil
}

// rewriteValue walks the decoded document, mutating the three known fields
// in place wherever they appear.
func rewriteValue(v any, parser *clip.Parser, videoName string, result *SidecarResult) {
	switch entry := v.(type) {
	case map[string]any:
		for key, value := range entry {
			str, isString := value.(string)
			switch {
			case key == fieldVideoName && isString:
				if str != videoName {
					entry[key] = videoName
					result.Changed = true
				}
			case key == fieldClassName && isString:
				if canonical, ok := parser.NormalizeCategory(str); ok {
					if str != canonical {
						entry[key] = canonical
						result.Changed = true
					}
				} else {
					result.Unrecognized = append(result.Unrecognized, str)
				}
			case key == fieldPlayerName && isString:
				if spaced := strings.ReplaceAll(str, "_", " "); spaced != str {
					entry[key] = spaced
					result.Changed = true
				}
			default:
				rewriteValue(value, parser, videoName, result)
			}
		}
	case []any:
		for _, item := range entry {
			rewriteValue(item, parser, videoName, result)
		}
	}
}
