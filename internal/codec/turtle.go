package codec

import (
	"fmt"
	"strings"
)

// Serialization is a deliberately narrow Turtle subset: a prefix block
// followed by one full statement per line. Writing whole statements keeps
// read-back tolerant: a truncated or damaged line loses one triple, not
// the document.

var prefixes = []struct {
	name string
	iri  string
}{
	{"rdf", NSRDF},
	{"xsd", NSXSD},
	{"pc", NSCatalog},
	{"as", NSActivity},
}

// EncodeGraph renders the graph as a Turtle document.
func EncodeGraph(g *Graph) []byte {
	var b strings.Builder
	for _, p := range prefixes {
		fmt.Fprintf(&b, "@prefix %s: <%s> .\n", p.name, p.iri)
	}
	b.WriteString("\n")
	for _, st := range g.Statements() {
		b.WriteString(formatTerm(st.Subject, true, ""))
		b.WriteString(" ")
		b.WriteString(formatTerm(st.Predicate, true, ""))
		b.WriteString(" ")
		b.WriteString(formatTerm(st.Object, st.ObjectIRI, st.Datatype))
		b.WriteString(" .\n")
	}
	return []byte(b.String())
}

func formatTerm(value string, iri bool, datatype string) string {
	if iri {
		if isPrefixedName(value) {
			return value
		}
		return "<" + value + ">"
	}
	out := `"` + escapeLiteral(value) + `"`
	if datatype != "" {
		if isPrefixedName(datatype) {
			out += "^^" + datatype
		} else {
			out += "^^<" + datatype + ">"
		}
	}
	return out
}

func isPrefixedName(value string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(value, p.name+":") {
			return true
		}
	}
	return false
}

func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
