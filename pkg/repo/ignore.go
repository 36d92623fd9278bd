package repo

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreFileName is the conventional exclusion-list file at the repository
// root: one entry name per line, # comments and blank lines skipped. Absence
// of the file means no additional exclusions.
const IgnoreFileName = ".gatignore"

// IgnoreSet is the set of entry names the tree builder skips.
type IgnoreSet map[string]struct{}

// LoadIgnoreSet reads the ignore list for the given repository root. The
// store directory and .git are always excluded.
func LoadIgnoreSet(root string) IgnoreSet {
	set := IgnoreSet{
		GatDirName: {},
		".git":     {},
	}

	f, err := os.Open(filepath.Join(root, IgnoreFileName))
	if err != nil {
		return set
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Entries name single path segments; a trailing slash is tolerated.
		set[strings.TrimSuffix(line, "/")] = struct{}{}
	}
	return set
}

// Ignored reports whether a directory entry name is excluded.
func (s IgnoreSet) Ignored(name string) bool {
	_, ok := s[name]
	return ok
}
