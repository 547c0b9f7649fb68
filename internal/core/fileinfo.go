package core

import (
	"io/fs"
	"time"
)

// SimpleFileInfo is a minimal fs.FileInfo used for tree nodes that are built
// in tests rather than read from disk.
type SimpleFileInfo struct {
	name  string
	isDir bool
}

// NewSimpleFileInfo constructs a SimpleFileInfo with the given name and kind.
func NewSimpleFileInfo(name string, isDir bool) SimpleFileInfo {
	return SimpleFileInfo{name: name, isDir: isDir}
}

func (fi SimpleFileInfo) Name() string { return fi.name }
func (fi SimpleFileInfo) Size() int64  { return 0 }
func (fi SimpleFileInfo) Mode() fs.FileMode {
	if fi.isDir {
		return fs.ModeDir | 0755
	}
	return 0644
}
func (fi SimpleFileInfo) ModTime() time.Time { return time.Time{} }
func (fi SimpleFileInfo) IsDir() bool        { return fi.isDir }
func (fi SimpleFileInfo) Sys() any           { return nil }
