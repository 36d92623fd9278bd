package object

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123... Files hold the zlib-compressed
// canonical encoding; hashes are always computed over the uncompressed bytes.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory. The objects/
// subdirectories are created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if !h.Valid() {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Write stores an object and returns its content hash. The canonical
// encoding "type len\0payload" is hashed first, then compressed and written
// atomically via a temp file and rename. Writing an object that already
// exists is a no-op: identical hash implies identical content, so skipping
// is purely an I/O optimization, never a correctness requirement.
func (s *Store) Write(objType ObjectType, payload []byte) (Hash, error) {
	envelope := fmt.Sprintf("%s %d\x00", objType, len(payload))
	canonical := append([]byte(envelope), payload...)

	h := HashObject(objType, payload)
	if s.Has(h) {
		return h, nil
	}

	compressed, err := Compress(canonical)
	if err != nil {
		return "", fmt.Errorf("object write %s: %w", h, err)
	}

	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}

	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}

	return h, nil
}

// Read retrieves an object by hash, returning its type and payload. An
// absent file reports ErrNotFound; a corrupt stream or malformed envelope
// reports ErrDecode.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	if !h.Valid() {
		return "", nil, fmt.Errorf("object read: %w: malformed hash %q", ErrDecode, h)
	}

	compressed, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
		}
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	canonical, err := Decompress(compressed)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	objType, payload, err := SplitEnvelope(canonical)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return objType, payload, nil
}

// SplitEnvelope parses the canonical encoding "type len\0payload". The type
// tag is located by scanning to the first space: tags vary in width (blob and
// tree are 4 bytes, commit is 6), so a fixed-width slice would misparse.
func SplitEnvelope(canonical []byte) (ObjectType, []byte, error) {
	nul := bytes.IndexByte(canonical, 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("%w: envelope missing NUL separator", ErrDecode)
	}
	header := canonical[:nul]
	payload := canonical[nul+1:]

	sp := bytes.IndexByte(header, ' ')
	if sp < 0 {
		return "", nil, fmt.Errorf("%w: envelope header %q missing space", ErrDecode, header)
	}

	objType := ObjectType(header[:sp])
	switch objType {
	case TypeBlob, TypeTree, TypeCommit:
	default:
		return "", nil, fmt.Errorf("%w: unknown type tag %q", ErrDecode, objType)
	}

	size, err := strconv.Atoi(string(header[sp+1:]))
	if err != nil {
		return "", nil, fmt.Errorf("%w: bad payload size %q: %v", ErrDecode, header[sp+1:], err)
	}
	if size != len(payload) {
		return "", nil, fmt.Errorf("%w: payload size mismatch (header=%d, actual=%d)", ErrDecode, size, len(payload))
	}

	return objType, payload, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	objType, payload, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeBlob {
		return nil, &TypeMismatchError{Hash: h, Got: objType, Want: TypeBlob}
	}
	return UnmarshalBlob(payload)
}

// WriteTree serializes and stores a Tree.
func (s *Store) WriteTree(tr *Tree) (Hash, error) {
	payload, err := MarshalTree(tr)
	if err != nil {
		return "", err
	}
	return s.Write(TypeTree, payload)
}

// ReadTree reads and deserializes a Tree.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	objType, payload, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeTree {
		return nil, &TypeMismatchError{Hash: h, Got: objType, Want: TypeTree}
	}
	return UnmarshalTree(payload)
}

// WriteCommit serializes and stores a Commit.
func (s *Store) WriteCommit(c *Commit) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads and deserializes a Commit.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	objType, payload, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeCommit {
		return nil, &TypeMismatchError{Hash: h, Got: objType, Want: TypeCommit}
	}
	return UnmarshalCommit(payload)
}

// Type returns the kind of the stored object without keeping its payload.
func (s *Store) Type(h Hash) (ObjectType, error) {
	objType, _, err := s.Read(h)
	return objType, err
}

// Verify walks every loose object, decompresses it, and re-hashes the
// canonical bytes against the hash its path claims. It returns the number of
// objects checked.
func (s *Store) Verify() (int, error) {
	objectsDir := filepath.Join(s.root, "objects")
	fanouts, err := os.ReadDir(objectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("verify: %w", err)
	}

	checked := 0
	for _, fanout := range fanouts {
		if !fanout.IsDir() || len(fanout.Name()) != 2 {
			continue
		}
		files, err := os.ReadDir(filepath.Join(objectsDir, fanout.Name()))
		if err != nil {
			return checked, fmt.Errorf("verify: %w", err)
		}
		for _, f := range files {
			h := Hash(fanout.Name() + f.Name())
			if !h.Valid() {
				continue
			}
			objType, payload, err := s.Read(h)
			if err != nil {
				return checked, fmt.Errorf("verify %s: %w", h, err)
			}
			if got := HashObject(objType, payload); got != h {
				return checked, fmt.Errorf("verify %s: %w: content hashes to %s", h, ErrDecode, got)
			}
			checked++
		}
	}
	return checked, nil
}
