package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Digital-Shane/clip-tidy/internal/log"
	"github.com/Digital-Shane/treeview"
)

// RenameClip renames a node in place; returns true only when an actual
// filesystem rename occurred. A node whose proposed name equals its current
// name is a no-op, which keeps re-runs over converged trees safe.
func RenameClip(node *treeview.Node[treeview.FileInfo], cm *ClipMeta) (bool, error) {
	oldPath := node.Data().Path
	newName, err := sanitizeFilename(cm.NewName)
	if err != nil {
		log.LogRename(oldPath, "", false, err)
		return false, cm.Fail(err)
	}
	if newName != cm.NewName {
		cm.NewName = newName
	}

	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if oldPath == newPath {
		return false, nil
	}
	if _, err := os.Stat(newPath); err == nil {
		err := fmt.Errorf("destination already exists")
		log.LogRename(oldPath, newPath, false, err)
		return false, cm.Fail(err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		log.LogRename(oldPath, newPath, false, err)
		return false, cm.Fail(err)
	}
	log.LogRename(oldPath, newPath, true, nil)
	cm.Success()
	node.Data().Path = newPath
	return true, nil
}
