package object

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// RenderType returns the object's type tag as a string.
func RenderType(objType ObjectType) string {
	return string(objType)
}

// RenderSize returns the decimal payload size as a string.
func RenderSize(payload []byte) string {
	return strconv.Itoa(len(payload))
}

// RenderObject pretty-prints an object payload. Blobs are emitted verbatim
// (content is opaque bytes, so no text validation happens here); trees render
// as a full listing; commits render their headers and message.
func RenderObject(objType ObjectType, payload []byte) ([]byte, error) {
	switch objType {
	case TypeBlob:
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	case TypeTree:
		tr, err := UnmarshalTree(payload)
		if err != nil {
			return nil, err
		}
		return []byte(RenderTree(tr)), nil
	case TypeCommit:
		c, err := UnmarshalCommit(payload)
		if err != nil {
			return nil, err
		}
		return RenderCommit(c)
	default:
		return nil, fmt.Errorf("render: %w: unknown type tag %q", ErrDecode, objType)
	}
}

// RenderTree returns the full tree listing, one entry per line:
//
//	<mode> <type> <hash>\t<name>
//
// Directory modes display zero-padded to six digits, matching the listing
// convention rather than the wire token.
func RenderTree(tr *Tree) string {
	var buf bytes.Buffer
	for _, e := range tr.Entries {
		mode := e.Mode
		if mode == TreeModeDir {
			mode = TreeModeDirPadded
		}
		fmt.Fprintf(&buf, "%s %s %s\t%s\n", mode, e.Type(), e.Hash, e.Name)
	}
	return buf.String()
}

// RenderTreeNames returns the name-only tree listing, one name per line.
func RenderTreeNames(tr *Tree) string {
	var buf bytes.Buffer
	for _, e := range tr.Entries {
		buf.WriteString(e.Name)
		buf.WriteByte('\n')
	}
	return buf.String()
}

// RenderCommit re-serializes a decoded commit for display. The message is a
// text field, so it is the one place a commit render enforces UTF-8.
func RenderCommit(c *Commit) ([]byte, error) {
	if _, err := RenderMessage(c); err != nil {
		return nil, err
	}
	return MarshalCommit(c), nil
}

// RenderMessage returns the commit message as text. Non-UTF-8 bytes report
// ErrEncoding; this check exists only on explicit text renderings, never on
// blob content or stored bytes.
func RenderMessage(c *Commit) (string, error) {
	if !utf8.ValidString(c.Message) {
		return "", fmt.Errorf("render commit message: %w", ErrEncoding)
	}
	return c.Message, nil
}
