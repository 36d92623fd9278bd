package object

// Object is any of Blob, Tree, or Commit viewed through its canonical
// payload.
type Object interface {
	ObjectType() ObjectType
	Payload() ([]byte, error)
}

func (b *Blob) ObjectType() ObjectType { return TypeBlob }

func (b *Blob) Payload() ([]byte, error) { return MarshalBlob(b), nil }

func (t *Tree) ObjectType() ObjectType { return TypeTree }

func (t *Tree) Payload() ([]byte, error) { return MarshalTree(t) }

func (c *Commit) ObjectType() ObjectType { return TypeCommit }

func (c *Commit) Payload() ([]byte, error) { return MarshalCommit(c), nil }

// ID computes the object's identifier from its canonical encoding.
func ID(obj Object) (Hash, error) {
	payload, err := obj.Payload()
	if err != nil {
		return "", err
	}
	return HashObject(obj.ObjectType(), payload), nil
}

// Persist writes any object to the store and returns its hash.
func (s *Store) Persist(obj Object) (Hash, error) {
	payload, err := obj.Payload()
	if err != nil {
		return "", err
	}
	return s.Write(obj.ObjectType(), payload)
}
