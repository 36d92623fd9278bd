package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity). Content is never
// validated as text.
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// MarshalTree serializes a Tree. Each entry is "<mode> <name>\0" followed by
// the child hash in raw 20-byte binary form. Entries are written in the order
// they appear; callers that need reproducible hashes insert in sorted order.
func MarshalTree(tr *Tree) ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range tr.Entries {
		raw, err := e.Hash.Raw()
		if err != nil {
			return nil, fmt.Errorf("marshal tree entry %q: %w", e.Name, err)
		}
		mode := e.Mode
		if mode == TreeModeDirPadded {
			mode = TreeModeDir
		}
		fmt.Fprintf(&buf, "%s %s\x00", mode, e.Name)
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses a Tree payload with a delimiter-driven scan: mode
// bytes up to a space, name bytes up to a NUL, then exactly RawLen binary
// digest bytes. Mode and name are variable width, so the scan never uses
// fixed offsets.
func UnmarshalTree(data []byte) (*Tree, error) {
	tr := &Tree{}
	pos := 0
	for pos < len(data) {
		sp := bytes.IndexByte(data[pos:], ' ')
		if sp < 0 {
			return nil, fmt.Errorf("unmarshal tree: %w: entry missing mode separator", ErrDecode)
		}
		mode, err := normalizeTreeMode(string(data[pos : pos+sp]))
		if err != nil {
			return nil, fmt.Errorf("unmarshal tree: %w", err)
		}
		pos += sp + 1

		nul := bytes.IndexByte(data[pos:], 0)
		if nul < 0 {
			return nil, fmt.Errorf("unmarshal tree: %w: entry missing name terminator", ErrDecode)
		}
		name := string(data[pos : pos+nul])
		if name == "" {
			return nil, fmt.Errorf("unmarshal tree: %w: empty entry name", ErrDecode)
		}
		pos += nul + 1

		if pos+RawLen > len(data) {
			return nil, fmt.Errorf("unmarshal tree: %w: truncated hash for entry %q", ErrDecode, name)
		}
		h, err := HashFromRaw(data[pos : pos+RawLen])
		if err != nil {
			return nil, fmt.Errorf("unmarshal tree: entry %q: %w", name, err)
		}
		pos += RawLen

		tr.Entries = append(tr.Entries, TreeEntry{Mode: mode, Name: name, Hash: h})
	}
	return tr, nil
}

// normalizeTreeMode validates a mode token and canonicalizes the zero-padded
// directory form. The mode set is closed; anything else is a decode error.
func normalizeTreeMode(mode string) (string, error) {
	switch mode {
	case TreeModeDir, TreeModeDirPadded:
		return TreeModeDir, nil
	case TreeModeFile, TreeModeExecutable, TreeModeSymlink:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrDecode, mode)
	}
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// MarshalCommit serializes a Commit:
//
//	tree H
//	parent H        (zero or more)
//	author Name <email> timestamp tz
//	committer Name <email> timestamp tz
//	gpgsig S        (optional)
//
//	message
//
// The message always ends with a newline on the wire.
func MarshalCommit(c *Commit) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", string(c.Tree))
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", string(p))
	}
	fmt.Fprintf(&buf, "author %s <%s> %d %s\n", c.Author.Name, c.Author.Email, c.AuthorTime, c.AuthorTZ)
	fmt.Fprintf(&buf, "committer %s <%s> %d %s\n", c.Committer.Name, c.Committer.Email, c.CommitTime, c.CommitTZ)
	if c.Signature != "" {
		fmt.Fprintf(&buf, "gpgsig %s\n", c.Signature)
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	if !strings.HasSuffix(c.Message, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// UnmarshalCommit parses a Commit payload. Headers must appear in order:
// tree, zero or more parents, author, committer, optional gpgsig, then a
// blank line and the message. A missing or out-of-order required header is a
// decode error.
func UnmarshalCommit(data []byte) (*Commit, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: %w: missing header/message separator", ErrDecode)
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	lines := strings.Split(header, "\n")
	pos := 0

	next := func() (string, string, bool) {
		if pos >= len(lines) {
			return "", "", false
		}
		key, val, _ := strings.Cut(lines[pos], " ")
		return key, val, true
	}

	c := &Commit{Message: message}

	key, val, ok := next()
	if !ok || key != "tree" {
		return nil, fmt.Errorf("unmarshal commit: %w: expected tree header, got %q", ErrDecode, key)
	}
	if !Hash(val).Valid() {
		return nil, fmt.Errorf("unmarshal commit: %w: malformed tree hash %q", ErrDecode, val)
	}
	c.Tree = Hash(val)
	pos++

	for {
		key, val, ok = next()
		if !ok || key != "parent" {
			break
		}
		if !Hash(val).Valid() {
			return nil, fmt.Errorf("unmarshal commit: %w: malformed parent hash %q", ErrDecode, val)
		}
		c.Parents = append(c.Parents, Hash(val))
		pos++
	}

	if !ok || key != "author" {
		return nil, fmt.Errorf("unmarshal commit: %w: expected author header, got %q", ErrDecode, key)
	}
	ident, ts, tz, err := parseIdentityLine(val)
	if err != nil {
		return nil, fmt.Errorf("unmarshal commit: author: %w", err)
	}
	c.Author, c.AuthorTime, c.AuthorTZ = ident, ts, tz
	pos++

	key, val, ok = next()
	if !ok || key != "committer" {
		return nil, fmt.Errorf("unmarshal commit: %w: expected committer header, got %q", ErrDecode, key)
	}
	ident, ts, tz, err = parseIdentityLine(val)
	if err != nil {
		return nil, fmt.Errorf("unmarshal commit: committer: %w", err)
	}
	c.Committer, c.CommitTime, c.CommitTZ = ident, ts, tz
	pos++

	key, val, ok = next()
	if ok && key == "gpgsig" {
		c.Signature = val
		pos++
		key, _, ok = next()
	}
	if ok {
		return nil, fmt.Errorf("unmarshal commit: %w: unexpected header %q", ErrDecode, key)
	}

	return c, nil
}

// parseIdentityLine splits "Name <email> timestamp tz" on the angle brackets.
// The name may contain spaces; anything malformed around the brackets or the
// trailing tokens is a decode error, never silently tolerated.
func parseIdentityLine(line string) (Identity, int64, string, error) {
	open := strings.Index(line, " <")
	if open < 0 {
		return Identity{}, 0, "", fmt.Errorf("%w: missing email in %q", ErrDecode, line)
	}
	name := line[:open]
	if strings.ContainsAny(name, "<>\n") {
		return Identity{}, 0, "", fmt.Errorf("%w: malformed name %q", ErrDecode, name)
	}
	rest := line[open+2:]

	end := strings.IndexByte(rest, '>')
	if end < 0 {
		return Identity{}, 0, "", fmt.Errorf("%w: unterminated email in %q", ErrDecode, line)
	}
	email := rest[:end]
	if strings.ContainsAny(email, "<> \n") {
		return Identity{}, 0, "", fmt.Errorf("%w: malformed email %q", ErrDecode, email)
	}
	rest = rest[end+1:]

	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return Identity{}, 0, "", fmt.Errorf("%w: expected timestamp and timezone after email in %q", ErrDecode, line)
	}
	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Identity{}, 0, "", fmt.Errorf("%w: bad timestamp %q: %v", ErrDecode, fields[0], err)
	}

	return Identity{Name: name, Email: email}, ts, fields[1], nil
}
