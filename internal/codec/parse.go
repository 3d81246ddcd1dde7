package codec

import (
	"errors"
	"strings"

	"github.com/podvault-labs/podcatalog/internal/domain"
)

var errBadTerm = errors.New("malformed term")

// ParseGraph decodes a Turtle-subset document. Lines that fail to parse
// are skipped and counted rather than failing the document; a partially
// written document yields the statements that survived.
func ParseGraph(body []byte) (*Graph, int) {
	g := &Graph{}
	skipped := 0
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "@prefix") || strings.HasPrefix(line, "#") {
			continue
		}
		st, err := parseStatement(line)
		if err != nil {
			skipped++
			continue
		}
		g.AddStatement(st)
	}
	return g, skipped
}

func parseStatement(line string) (domain.Statement, error) {
	pos := 0
	subject, _, _, pos, err := parseTerm(line, pos)
	if err != nil {
		return domain.Statement{}, err
	}
	predicate, _, _, pos, err := parseTerm(line, pos)
	if err != nil {
		return domain.Statement{}, err
	}
	object, objectIRI, datatype, pos, err := parseTerm(line, pos)
	if err != nil {
		return domain.Statement{}, err
	}
	rest := strings.TrimSpace(line[pos:])
	if rest != "." {
		return domain.Statement{}, errBadTerm
	}
	return domain.Statement{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		ObjectIRI: objectIRI,
		Datatype:  datatype,
	}, nil
}

// parseTerm reads one IRI, prefixed name, or literal starting at pos.
func parseTerm(line string, pos int) (value string, iri bool, datatype string, next int, err error) {
	for pos < len(line) && (line[pos] == ' ' || line[pos] == '\t') {
		pos++
	}
	if pos >= len(line) {
		return "", false, "", pos, errBadTerm
	}
	switch line[pos] {
	case '<':
		end := strings.IndexByte(line[pos:], '>')
		if end < 0 {
			return "", false, "", pos, errBadTerm
		}
		value = compactIRI(line[pos+1 : pos+end])
		return value, true, "", pos + end + 1, nil
	case '"':
		raw, next, err := scanLiteral(line, pos)
		if err != nil {
			return "", false, "", pos, err
		}
		datatype := ""
		if strings.HasPrefix(line[next:], "^^") {
			dt, dtIRI, _, after, err := parseTerm(line, next+2)
			if err != nil || !dtIRI {
				return "", false, "", pos, errBadTerm
			}
			datatype = dt
			next = after
		}
		return raw, false, datatype, next, nil
	default:
		end := pos
		for end < len(line) && line[end] != ' ' && line[end] != '\t' {
			end++
		}
		token := line[pos:end]
		if token == "." || !strings.Contains(token, ":") {
			return "", false, "", pos, errBadTerm
		}
		return token, true, "", end, nil
	}
}

func scanLiteral(line string, pos int) (string, int, error) {
	var b strings.Builder
	i := pos + 1
	for i < len(line) {
		c := line[i]
		if c == '\\' {
			if i+1 >= len(line) {
				return "", pos, errBadTerm
			}
			switch line[i+1] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", pos, errBadTerm
			}
			i += 2
			continue
		}
		if c == '"' {
			return b.String(), i + 1, nil
		}
		b.WriteByte(c)
		i++
	}
	return "", pos, errBadTerm
}

// compactIRI folds a full IRI into its prefixed form when it belongs to a
// namespace this codec writes, so documents produced by other tooling
// still decode.
func compactIRI(value string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(value, p.iri) {
			return p.name + ":" + strings.TrimPrefix(value, p.iri)
		}
	}
	return value
}
