// Package codec reads and writes the semantic documents the catalog stores:
// one triple graph per entity, the entity header plus every co-located
// sub-record addressed by document-relative fragment subjects.
package codec

import (
	"github.com/podvault-labs/podcatalog/internal/domain"
)

// ContentType is the wire format of every catalog document.
const ContentType = "text/turtle"

// Namespace prefixes used by the closed catalog vocabulary and the
// activity vocabulary for audit events.
const (
	NSRDF      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSXSD      = "http://www.w3.org/2001/XMLSchema#"
	NSCatalog  = "https://podvault.example/ns/catalog#"
	NSActivity = "https://www.w3.org/ns/activitystreams#"
)

const (
	predType = "rdf:type"

	typeDataSpace   = "pc:DataSpace"
	typeAsset       = "pc:Asset"
	typeMember      = "pc:Member"
	typeMetadata    = "pc:Metadata"
	typeAssetRecord = "pc:AssetRecord"

	datatypeDateTime = "xsd:dateTime"
	datatypeDecimal  = "xsd:decimal"
	datatypeInteger  = "xsd:integer"
	datatypeDouble   = "xsd:double"
	datatypeBoolean  = "xsd:boolean"
	datatypeAnyURI   = "xsd:anyURI"
)

const (
	subjectHeader = "#it"
	subjectEvent  = "#event"

	fragmentMember = "#member-"
	fragmentMeta   = "#meta-"
	fragmentRecord = "#record-"
)

// Graph is an ordered collection of statements. Order is preserved so an
// encoded document is stable across round trips.
type Graph struct {
	statements []domain.Statement
}

func (g *Graph) Add(subject, predicate, object string) {
	g.statements = append(g.statements, domain.Statement{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	})
}

func (g *Graph) AddIRI(subject, predicate, object string) {
	g.statements = append(g.statements, domain.Statement{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		ObjectIRI: true,
	})
}

func (g *Graph) AddTyped(subject, predicate, object, datatype string) {
	g.statements = append(g.statements, domain.Statement{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Datatype:  datatype,
	})
}

func (g *Graph) AddStatement(st domain.Statement) {
	g.statements = append(g.statements, st)
}

func (g *Graph) Statements() []domain.Statement {
	return g.statements
}

// Subjects returns distinct subjects in first-seen order.
func (g *Graph) Subjects() []string {
	seen := map[string]bool{}
	var subjects []string
	for _, st := range g.statements {
		if !seen[st.Subject] {
			seen[st.Subject] = true
			subjects = append(subjects, st.Subject)
		}
	}
	return subjects
}

// About returns all statements with the given subject, in document order.
func (g *Graph) About(subject string) []domain.Statement {
	var out []domain.Statement
	for _, st := range g.statements {
		if st.Subject == subject {
			out = append(out, st)
		}
	}
	return out
}

// First returns the object of the first statement matching subject and
// predicate, or false when absent.
func (g *Graph) First(subject, predicate string) (domain.Statement, bool) {
	for _, st := range g.statements {
		if st.Subject == subject && st.Predicate == predicate {
			return st, true
		}
	}
	return domain.Statement{}, false
}
