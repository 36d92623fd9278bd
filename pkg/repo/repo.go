package repo

import (
	"github.com/odvcencio/gat/pkg/object"
)

// Repo represents an opened gat repository.
type Repo struct {
	RootDir string        // working directory root
	GatDir  string        // .gat/ directory
	Store   *object.Store // content-addressed object store
}
