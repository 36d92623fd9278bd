package object

// CommitSigningPayload returns the canonical bytes that are signed for a
// commit. The payload intentionally excludes the gpgsig header itself.
func CommitSigningPayload(c *Commit) []byte {
	if c == nil {
		return nil
	}
	unsigned := *c
	unsigned.Signature = ""
	return MarshalCommit(&unsigned)
}
