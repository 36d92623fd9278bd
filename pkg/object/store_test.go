package object

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

func TestStoreWriteRead(t *testing.T) {
	s := tempStore(t)
	data := []byte("hello world")

	h, err := s.Write(TypeBlob, data)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(h) != HexLen {
		t.Errorf("hash length: got %d, want %d", len(h), HexLen)
	}

	gotType, gotData, err := s.Read(h)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if gotType != TypeBlob {
		t.Errorf("type: got %q, want %q", gotType, TypeBlob)
	}
	if !bytes.Equal(gotData, data) {
		t.Errorf("data: got %q, want %q", gotData, data)
	}
}

func TestStoreFanOutLayout(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	h, err := s.Write(TypeBlob, []byte("layout"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	path := filepath.Join(dir, "objects", string(h[:2]), string(h[2:]))
	if _, err := os.Stat(path); err != nil {
		t.Errorf("object not at fan-out path %s: %v", path, err)
	}
}

func TestStoreOnDiskCompressed(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	data := bytes.Repeat([]byte("compress me "), 100)

	h, err := s.Write(TypeBlob, data)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	onDisk, err := os.ReadFile(filepath.Join(dir, "objects", string(h[:2]), string(h[2:])))
	if err != nil {
		t.Fatalf("read object file: %v", err)
	}
	if bytes.Contains(onDisk, data[:24]) {
		t.Error("object stored uncompressed")
	}

	canonical, err := Decompress(onDisk)
	if err != nil {
		t.Fatalf("Decompress on-disk bytes: %v", err)
	}
	want := append([]byte("blob 1200\x00"), data...)
	if !bytes.Equal(canonical, want) {
		t.Error("decompressed bytes are not the canonical encoding")
	}
}

func TestStoreReadNotFound(t *testing.T) {
	s := tempStore(t)
	h := HashObject(TypeBlob, []byte("never written"))
	if _, _, err := s.Read(h); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreWriteIdempotent(t *testing.T) {
	s := tempStore(t)
	data := []byte("same content")

	h1, err := s.Write(TypeBlob, data)
	if err != nil {
		t.Fatalf("first Write: %v", err)
	}
	h2, err := s.Write(TypeBlob, data)
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if h1 != h2 {
		t.Errorf("rewrite changed hash: %s != %s", h1, h2)
	}
}

// Content addressing: identical bytes yield identical identifiers no matter
// how the blob was constructed.
func TestStoreContentAddressing(t *testing.T) {
	s := tempStore(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")
	content := []byte{1, 2, 3, 0xff}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	fromFile, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	h1, err := s.WriteBlob(&Blob{Data: fromFile})
	if err != nil {
		t.Fatalf("WriteBlob(from file): %v", err)
	}
	h2, err := s.WriteBlob(&Blob{Data: content})
	if err != nil {
		t.Fatalf("WriteBlob(direct): %v", err)
	}
	if h1 != h2 {
		t.Errorf("identical content, distinct hashes: %s != %s", h1, h2)
	}
}

func TestStoreTypedReadMismatch(t *testing.T) {
	s := tempStore(t)

	blobHash, err := s.WriteBlob(&Blob{Data: []byte("not a tree")})
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}

	if _, err := s.ReadTree(blobHash); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("ReadTree(blob): err = %v, want ErrTypeMismatch", err)
	}
	if _, err := s.ReadCommit(blobHash); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("ReadCommit(blob): err = %v, want ErrTypeMismatch", err)
	}

	var tmErr *TypeMismatchError
	_, err = s.ReadTree(blobHash)
	if !errors.As(err, &tmErr) {
		t.Fatalf("error is not a TypeMismatchError: %v", err)
	}
	if tmErr.Got != TypeBlob || tmErr.Want != TypeTree {
		t.Errorf("mismatch detail: got %q/%q", tmErr.Got, tmErr.Want)
	}
}

// Regression: the type tag is variable width (blob/tree are 4 bytes, commit
// is 6). The decoder must find the payload boundary by scanning to the first
// space, not by slicing a fixed prefix.
func TestStoreCommitTypeTagWidth(t *testing.T) {
	s := tempStore(t)
	c := &Commit{
		Tree:       HashObject(TypeTree, nil),
		Author:     Identity{Name: "a", Email: "a@b"},
		AuthorTZ:   "+0000",
		Committer:  Identity{Name: "a", Email: "a@b"},
		CommitTZ:   "+0000",
		Message:    "m\n",
	}

	payload := MarshalCommit(c)
	h, err := s.Write(TypeCommit, payload)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	gotType, gotPayload, err := s.Read(h)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if gotType != TypeCommit {
		t.Errorf("type: got %q, want %q", gotType, TypeCommit)
	}
	// The payload must start exactly after "commit <size>\0" — i.e. it must
	// be byte-identical to what was written, starting with "tree ".
	if !bytes.Equal(gotPayload, payload) {
		t.Errorf("payload boundary misplaced:\n got %q\nwant %q", gotPayload, payload)
	}
	if !bytes.HasPrefix(gotPayload, []byte("tree ")) {
		t.Errorf("payload does not start at the header: %q", gotPayload[:10])
	}
}

func TestSplitEnvelopeMalformed(t *testing.T) {
	cases := map[string][]byte{
		"no nul":        []byte("blob 3abc"),
		"no space":      []byte("blob3\x00abc"),
		"bad size":      []byte("blob x\x00abc"),
		"size mismatch": []byte("blob 2\x00abc"),
		"unknown tag":   []byte("tag 3\x00abc"),
	}
	for name, canonical := range cases {
		if _, _, err := SplitEnvelope(canonical); !errors.Is(err, ErrDecode) {
			t.Errorf("%s: err = %v, want ErrDecode", name, err)
		}
	}
}

func TestStoreReadCorruptStream(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	h, err := s.Write(TypeBlob, []byte("soon to be corrupt"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	path := filepath.Join(dir, "objects", string(h[:2]), string(h[2:]))
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("corrupt object: %v", err)
	}

	if _, _, err := s.Read(h); !errors.Is(err, ErrDecode) {
		t.Errorf("err = %v, want ErrDecode", err)
	}
}

func TestStoreVerify(t *testing.T) {
	s := tempStore(t)
	for _, data := range []string{"one", "two", "three"} {
		if _, err := s.Write(TypeBlob, []byte(data)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	checked, err := s.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if checked != 3 {
		t.Errorf("checked: got %d, want 3", checked)
	}
}

func TestStoreVerifyDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	h, err := s.Write(TypeBlob, []byte("intact"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Re-compress different canonical bytes under the same path.
	bogus, err := Compress([]byte("blob 5\x00wrong"))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	path := filepath.Join(dir, "objects", string(h[:2]), string(h[2:]))
	if err := os.WriteFile(path, bogus, 0o644); err != nil {
		t.Fatalf("overwrite object: %v", err)
	}

	if _, err := s.Verify(); err == nil {
		t.Error("Verify accepted an object whose content does not match its path")
	}
}

func TestStorePersist(t *testing.T) {
	s := tempStore(t)

	tr := &Tree{Entries: []TreeEntry{
		{Mode: TreeModeFile, Name: "f", Hash: HashObject(TypeBlob, nil)},
	}}
	h, err := s.Persist(tr)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}

	want, err := ID(tr)
	if err != nil {
		t.Fatalf("ID: %v", err)
	}
	if h != want {
		t.Errorf("Persist hash: got %s, want %s", h, want)
	}
	if !s.Has(h) {
		t.Error("persisted object missing from store")
	}
}
