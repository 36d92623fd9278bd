package object

// Hash is a 40-character hex-encoded SHA-1 digest of an object's canonical
// encoding ("type len\0payload"). The empty string means "no object".
type Hash string

// RawLen is the width of a digest in its raw (non-hex) binary form, as it
// appears inside tree payloads.
const RawLen = 20

// HexLen is the width of a hex-encoded Hash.
const HexLen = 2 * RawLen

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

const (
	// Tree mode tokens, matching Git's canonical mode strings. Trees are
	// written with the unpadded directory token; the zero-padded form is
	// accepted on read and canonicalized.
	TreeModeDir        = "40000"
	TreeModeDirPadded  = "040000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
	TreeModeSymlink    = "120000"
)

// Blob holds raw file data. Content is opaque bytes; nothing in the store or
// codec layer interprets it as text.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object: a mode token, a single path
// segment, and the identifier of the child object. The child is referenced by
// hash only; whether it is materialized in memory is the caller's business.
type TreeEntry struct {
	Mode string
	Name string
	Hash Hash
}

// IsDir reports whether the entry references a subtree.
func (e TreeEntry) IsDir() bool {
	return e.Mode == TreeModeDir || e.Mode == TreeModeDirPadded
}

// Type returns the object kind the entry's hash must resolve to.
func (e TreeEntry) Type() ObjectType {
	if e.IsDir() {
		return TypeTree
	}
	return TypeBlob
}

// Tree holds an ordered list of tree entries. Order is insertion order; the
// directory builder inserts in byte-wise filename order so identifiers are
// reproducible.
type Tree struct {
	Entries []TreeEntry
}

// Identity is a commit author or committer.
type Identity struct {
	Name  string
	Email string
}

// Commit points at a tree with zero or more parents and authorship metadata.
// Tree and Parents hold identifiers, never embedded objects; the canonical
// encoding stores hashes only.
type Commit struct {
	Tree    Hash
	Parents []Hash

	Author     Identity
	AuthorTime int64
	AuthorTZ   string

	Committer  Identity
	CommitTime int64
	CommitTZ   string

	// Signature is the optional gpgsig header value, empty when unsigned.
	Signature string

	Message string
}
