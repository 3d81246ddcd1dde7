package domain

// Kind identifies the top-level entity families stored in a pod.
type Kind string

const (
	KindDataSpace Kind = "dataspace"
	KindAsset     Kind = "asset"
)

// AccessMode is the declared visibility of an entity.
type AccessMode string

const (
	AccessPublic     AccessMode = "public"
	AccessPrivate    AccessMode = "private"
	AccessRestricted AccessMode = "restricted"
)

func (m AccessMode) Valid() bool {
	switch m {
	case AccessPublic, AccessPrivate, AccessRestricted:
		return true
	}
	return false
}

// Statement is one subject/predicate/object triple. Entities retain foreign
// statements found in their backing document so a round-trip never drops
// fields this process did not write.
type Statement struct {
	Subject   string
	Predicate string
	Object    string
	// ObjectIRI marks the object as a reference rather than a literal.
	ObjectIRI bool
	// Datatype is the literal datatype IRI, empty for plain literals.
	Datatype string
}
