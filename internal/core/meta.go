package core

import "github.com/Digital-Shane/treeview"

// ClipType enumerates the semantic classification of a node within the
// player's clip tree.
type ClipType int

const (
	ClipUnknown ClipType = iota // Anything the walker indexed but could not classify
	ClipFolder                  // Directory (the root, a "bad" subfolder, or any nesting)
	ClipVideo                   // Video clip (.mp4)
	ClipSidecar                 // JSON metadata sidecar (.json)
	ClipMapping                 // The player's *_url_mapping.csv
)

// RenameStatus represents the lifecycle stage of a proposed rename operation.
type RenameStatus int

const (
	RenameStatusNone    RenameStatus = iota // Rename not yet attempted, or no change needed
	RenameStatusSuccess                     // Rename succeeded
	RenameStatusError                       // Rename failed; see RenameError for detail
)

// ClipMeta holds per-node rename intent and results.
//
// NewName carries the proposed canonical name; when it equals the current
// name the file is already converged and no filesystem operation runs.
// Unrecognized marks files whose name matched no legacy pattern: they are
// left byte-identical on disk and surfaced in the run report instead.
// DurationSeconds is populated by the optional ffprobe pass for video clips.
//
// The zero value encodes an unclassified, unprocessed node.
type ClipMeta struct {
	Type            ClipType
	NewName         string
	RenameStatus    RenameStatus
	RenameError     string
	Unrecognized    bool
	DurationSeconds float64
}

// GetMeta retrieves the existing *ClipMeta attached to n or nil when absent.
// It is safe to call with a nil node.
func GetMeta(n *treeview.Node[treeview.FileInfo]) *ClipMeta {
	if n == nil || n.Data().Extra == nil {
		return nil
	}
	if m, ok := n.Data().Extra["meta"].(*ClipMeta); ok {
		return m
	}
	return nil
}

// EnsureMeta returns the existing *ClipMeta for n, creating and attaching a
// new instance if needed. The returned pointer is always non-nil.
func EnsureMeta(n *treeview.Node[treeview.FileInfo]) *ClipMeta {
	if n.Data().Extra == nil {
		n.Data().Extra = map[string]any{}
	}
	if m, ok := n.Data().Extra["meta"].(*ClipMeta); ok {
		return m
	}
	m := &ClipMeta{}
	n.Data().Extra["meta"] = m
	return m
}

func (m *ClipMeta) Fail(err error) error {
	m.RenameStatus = RenameStatusError
	m.RenameError = err.Error()
	return err
}

func (m *ClipMeta) Success() {
	m.RenameStatus = RenameStatusSuccess
}
