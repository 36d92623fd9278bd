package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gat/pkg/object"
)

// GatDirName is the repository's reserved store directory. The tree builder
// always excludes it.
const GatDirName = ".gat"

// DefaultBranchRef is the only ref the core knows about.
const DefaultBranchRef = "refs/heads/main"

// Init ensures a gat repository exists at path, creating the .gat/ directory
// structure: objects/, refs/heads/, and a HEAD pointing at the default
// branch. Init is idempotent: an existing repository is left untouched and
// reopened.
func Init(path string) (*Repo, error) {
	gatDir := filepath.Join(path, GatDirName)

	dirs := []string{
		filepath.Join(gatDir, "objects"),
		filepath.Join(gatDir, "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	headPath := filepath.Join(gatDir, "HEAD")
	if _, err := os.Stat(headPath); os.IsNotExist(err) {
		if err := os.WriteFile(headPath, []byte("ref: "+DefaultBranchRef+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("init: write HEAD: %w", err)
		}
	}

	return &Repo{
		RootDir: path,
		GatDir:  gatDir,
		Store:   object.NewStore(gatDir),
	}, nil
}

// Open searches upward from path for a .gat/ directory and opens the
// repository. Returns an error if none is found.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gatDir := filepath.Join(cur, GatDirName)
		info, err := os.Stat(gatDir)
		if err == nil && info.IsDir() {
			return &Repo{
				RootDir: cur,
				GatDir:  gatDir,
				Store:   object.NewStore(gatDir),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: not a gat repository (or any parent up to /)")
		}
		cur = parent
	}
}

// Head reads .gat/HEAD. If the content starts with "ref: ", it returns the
// ref path (e.g. "refs/heads/main"); otherwise the raw content as a detached
// hash string.
func (r *Repo) Head() (string, error) {
	data, err := os.ReadFile(filepath.Join(r.GatDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")

	if strings.HasPrefix(content, "ref: ") {
		return strings.TrimPrefix(content, "ref: "), nil
	}
	return content, nil
}

// ResolveRef resolves "HEAD" or a ref path to an object hash. A missing ref
// file resolves to the empty hash, which callers treat as "no commits yet".
func (r *Repo) ResolveRef(name string) (object.Hash, error) {
	if name == "HEAD" {
		head, err := r.Head()
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(head, "refs/") {
			return r.ResolveRef(head)
		}
		return object.Hash(head), nil
	}

	refPath := filepath.Join(r.GatDir, filepath.FromSlash(name))
	data, err := os.ReadFile(refPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("resolve ref %q: %w", name, err)
	}
	return object.Hash(strings.TrimSpace(string(data))), nil
}

// UpdateRef writes a hash to the named ref file under .gat/, creating parent
// directories as needed. The write goes through a temp file and rename.
func (r *Repo) UpdateRef(name string, h object.Hash) error {
	refPath := filepath.Join(r.GatDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
		return fmt.Errorf("update ref %q: mkdir: %w", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(refPath), ".ref-tmp-*")
	if err != nil {
		return fmt.Errorf("update ref %q: tmpfile: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(string(h) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: write: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: close: %w", name, err)
	}
	if err := os.Rename(tmpName, refPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: rename: %w", name, err)
	}
	return nil
}
