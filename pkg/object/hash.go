package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// HashObject computes the SHA-1 of the canonical envelope "type len\0payload"
// and returns it as a lowercase hex-encoded Hash. The digest always covers
// the full envelope, never the bare payload, and always the uncompressed
// bytes.
func HashObject(objType ObjectType, payload []byte) Hash {
	h := sha1.New()
	fmt.Fprintf(h, "%s %d\x00", objType, len(payload))
	h.Write(payload)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// Raw converts a hex Hash to its 20-byte binary form, as embedded in tree
// payloads.
func (h Hash) Raw() ([]byte, error) {
	raw, err := hex.DecodeString(string(h))
	if err != nil {
		return nil, fmt.Errorf("hash %q: %w: %v", h, ErrDecode, err)
	}
	if len(raw) != RawLen {
		return nil, fmt.Errorf("hash %q: %w: want %d raw bytes, got %d", h, ErrDecode, RawLen, len(raw))
	}
	return raw, nil
}

// HashFromRaw hex-encodes a 20-byte binary digest read from a tree payload.
func HashFromRaw(raw []byte) (Hash, error) {
	if len(raw) != RawLen {
		return "", fmt.Errorf("%w: raw hash is %d bytes, want %d", ErrDecode, len(raw), RawLen)
	}
	return Hash(hex.EncodeToString(raw)), nil
}

// Valid reports whether h looks like a well-formed lowercase hex identifier.
func (h Hash) Valid() bool {
	if len(h) != HexLen {
		return false
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
