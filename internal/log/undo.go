package log

import (
	"fmt"
	"os"
)

type UndoResult struct {
	Operation OperationLog
	Success   bool
	Skipped   bool
	Error     error
}

// UndoOperation reverses a single logged operation where possible. Renames
// (including the CSV's own rename) are reversed by renaming back; content
// rewrites are reported as skipped because the prior bytes were not kept.
func UndoOperation(op OperationLog) UndoResult {
	result := UndoResult{
		Operation: op,
		Success:   false,
	}

	switch op.Type {
	case OpRename, OpRewriteCSV:
		// Reverse a rename operation: rename back to original
		if op.DestPath == "" {
			result.Error = fmt.Errorf("cannot undo rename: destination path missing")
			return result
		}

		// Check if the destination file exists (the renamed file)
		if _, err := os.Stat(op.DestPath); os.IsNotExist(err) {
			result.Error = fmt.Errorf("cannot undo rename: file %s not found", op.DestPath)
			return result
		}

		// Check if reverting would overwrite an existing file
		if _, err := os.Stat(op.SourcePath); err == nil {
			result.Error = fmt.Errorf("cannot undo rename: original path %s already exists", op.SourcePath)
			return result
		}

		// Perform the reverse rename
		if err := os.Rename(op.DestPath, op.SourcePath); err != nil {
			result.Error = fmt.Errorf("failed to rename %s back to %s: %w", op.DestPath, op.SourcePath, err)
			return result
		}

		result.Success = true

	case OpRewriteJSON:
		// The original sidecar content is gone; reversing would require a
		// backup copy this tool does not take.
		result.Skipped = true

	default:
		result.Error = fmt.Errorf("unknown operation type: %s", op.Type)
	}

	return result
}

// UndoSession reverses the successful operations of a session in reverse
// order. Content rewrites are counted as skipped, not failed.
func UndoSession(session *LogSession) (successful int, failed int, skipped int, errors []error) {
	for i := len(session.Operations) - 1; i >= 0; i-- {
		op := session.Operations[i]

		// Only undo successful operations
		if !op.Success {
			continue
		}

		result := UndoOperation(op)
		switch {
		case result.Skipped:
			skipped++
		case result.Success:
			successful++
		default:
			failed++
			if result.Error != nil {
				errors = append(errors, result.Error)
			}
		}
	}

	return successful, failed, skipped, errors
}

// FindLatestSession returns the most recent session from the log directory.
func FindLatestSession() (*LogSession, error) {
	sessions, err := ReadSessions(1)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("no sessions found")
	}

	return sessions[0], nil
}
