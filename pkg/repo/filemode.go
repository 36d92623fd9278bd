package repo

import (
	"io/fs"

	"github.com/odvcencio/gat/pkg/object"
)

func modeFromFileInfo(info fs.FileInfo) string {
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return object.TreeModeSymlink
	case info.Mode()&0o111 != 0:
		return object.TreeModeExecutable
	default:
		return object.TreeModeFile
	}
}
