package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/gat/pkg/object"
)

// CommitSigner signs canonical commit payload bytes and returns an encoded
// signature string to be persisted in the commit's gpgsig header.
type CommitSigner func(payload []byte) (string, error)

// BuildCommit composes a commit from a tree hash, optional parent hashes,
// and a message, stamps it with the configured identity and the current
// time, persists it, and returns it with its hash.
//
// The tree hash must resolve to a tree and every parent to a commit; a wrong
// kind reports a type mismatch rather than producing a commit that
// references garbage. Tree and parents are assumed already persisted — only
// the commit's own bytes are written.
func (r *Repo) BuildCommit(message string, tree object.Hash, parents []object.Hash, signer CommitSigner) (*object.Commit, object.Hash, error) {
	if _, err := r.Store.ReadTree(tree); err != nil {
		return nil, "", fmt.Errorf("build commit: tree %s: %w", tree, err)
	}
	for _, p := range parents {
		if _, err := r.Store.ReadCommit(p); err != nil {
			return nil, "", fmt.Errorf("build commit: parent %s: %w", p, err)
		}
	}

	ident, err := r.Identity()
	if err != nil {
		return nil, "", fmt.Errorf("build commit: %w", err)
	}

	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}

	now := time.Now()
	c := &object.Commit{
		Tree:       tree,
		Parents:    parents,
		Author:     ident,
		AuthorTime: now.Unix(),
		AuthorTZ:   now.Format("-0700"),
		Committer:  ident,
		CommitTime: now.Unix(),
		CommitTZ:   now.Format("-0700"),
		Message:    message,
	}

	if signer != nil {
		signature, err := signer(object.CommitSigningPayload(c))
		if err != nil {
			return nil, "", fmt.Errorf("build commit: sign: %w", err)
		}
		c.Signature = signature
	}

	h, err := r.Store.WriteCommit(c)
	if err != nil {
		return nil, "", fmt.Errorf("build commit: write: %w", err)
	}
	return c, h, nil
}

// AdvanceHead moves the current branch (or a detached HEAD) to the given
// commit hash.
func (r *Repo) AdvanceHead(h object.Hash) error {
	head, err := r.Head()
	if err != nil {
		return err
	}
	if strings.HasPrefix(head, "refs/") {
		return r.UpdateRef(head, h)
	}
	return r.UpdateRef("HEAD", h)
}

// Log walks the commit history starting from the given hash, following
// first-parent links, returning up to limit commits newest first.
func (r *Repo) Log(start object.Hash, limit int) ([]*object.Commit, []object.Hash, error) {
	var commits []*object.Commit
	var hashes []object.Hash
	current := start

	for len(commits) < limit {
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			if errors.Is(err, object.ErrNotFound) {
				break
			}
			return nil, nil, fmt.Errorf("log: read commit %s: %w", current, err)
		}
		commits = append(commits, c)
		hashes = append(hashes, current)

		if len(c.Parents) == 0 {
			break
		}
		current = c.Parents[0]
	}

	return commits, hashes, nil
}
