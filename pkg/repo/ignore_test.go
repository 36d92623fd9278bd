package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadIgnoreSetAlwaysExcludesStoreDir(t *testing.T) {
	set := LoadIgnoreSet(t.TempDir())
	if !set.Ignored(GatDirName) {
		t.Errorf("%s not excluded", GatDirName)
	}
	if !set.Ignored(".git") {
		t.Error(".git not excluded")
	}
	if set.Ignored("regular.txt") {
		t.Error("unrelated name excluded")
	}
}

func TestLoadIgnoreSetParsesFile(t *testing.T) {
	dir := t.TempDir()
	content := "# build outputs\n\nbin\nnode_modules/\n  \n"
	if err := os.WriteFile(filepath.Join(dir, IgnoreFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write ignore file: %v", err)
	}

	set := LoadIgnoreSet(dir)
	for _, name := range []string{"bin", "node_modules"} {
		if !set.Ignored(name) {
			t.Errorf("%q not excluded", name)
		}
	}
	if set.Ignored("# build outputs") {
		t.Error("comment treated as entry")
	}
	if set.Ignored("") {
		t.Error("blank line treated as entry")
	}
}

func TestLoadIgnoreSetMissingFile(t *testing.T) {
	// Absence of the file means no additional exclusions.
	set := LoadIgnoreSet(t.TempDir())
	if len(set) != 2 {
		t.Errorf("expected only the built-in exclusions, got %d entries", len(set))
	}
}
