package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/odvcencio/gat/pkg/object"
)

// BuildTreeFromDirectory converts a directory into a Tree object graph.
// Entries are sorted by name (byte-wise ascending) so the identifier is
// reproducible across runs. Children are persisted bottom-up as the
// recursion unwinds; the returned root tree has its hash computed but is not
// written — persisting it is the caller's explicit step. If any child fails,
// no parent is written.
func (r *Repo) BuildTreeFromDirectory(dir string) (*object.Tree, object.Hash, error) {
	ignore := LoadIgnoreSet(r.RootDir)
	return r.buildTreeDir(dir, ignore)
}

func (r *Repo) buildTreeDir(dir string, ignore IgnoreSet) (*object.Tree, object.Hash, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, "", fmt.Errorf("build tree: read dir %q: %w", dir, err)
	}

	names := make([]string, 0, len(dirEntries))
	byName := make(map[string]os.DirEntry, len(dirEntries))
	for _, de := range dirEntries {
		if ignore.Ignored(de.Name()) {
			continue
		}
		names = append(names, de.Name())
		byName[de.Name()] = de
	}
	sort.Strings(names)

	tr := &object.Tree{}
	for _, name := range names {
		de := byName[name]
		full := filepath.Join(dir, name)

		info, err := de.Info()
		if err != nil {
			return nil, "", fmt.Errorf("build tree: stat %q: %w", full, err)
		}

		var entry object.TreeEntry
		switch {
		case de.IsDir():
			sub, subHash, err := r.buildTreeDir(full, ignore)
			if err != nil {
				return nil, "", err
			}
			// Subtrees persist before the parent's hash is finalized.
			if _, err := r.Store.WriteTree(sub); err != nil {
				return nil, "", fmt.Errorf("build tree: write subtree %q: %w", full, err)
			}
			entry = object.TreeEntry{Mode: object.TreeModeDir, Name: name, Hash: subHash}

		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(full)
			if err != nil {
				return nil, "", fmt.Errorf("build tree: readlink %q: %w", full, err)
			}
			blobHash, err := r.Store.WriteBlob(&object.Blob{Data: []byte(target)})
			if err != nil {
				return nil, "", fmt.Errorf("build tree: write symlink blob %q: %w", full, err)
			}
			entry = object.TreeEntry{Mode: object.TreeModeSymlink, Name: name, Hash: blobHash}

		default:
			data, err := os.ReadFile(full)
			if err != nil {
				return nil, "", fmt.Errorf("build tree: read %q: %w", full, err)
			}
			blobHash, err := r.Store.WriteBlob(&object.Blob{Data: data})
			if err != nil {
				return nil, "", fmt.Errorf("build tree: write blob %q: %w", full, err)
			}
			entry = object.TreeEntry{Mode: modeFromFileInfo(info), Name: name, Hash: blobHash}
		}

		tr.Entries = append(tr.Entries, entry)
	}

	payload, err := object.MarshalTree(tr)
	if err != nil {
		return nil, "", fmt.Errorf("build tree %q: %w", dir, err)
	}
	return tr, object.HashObject(object.TypeTree, payload), nil
}
