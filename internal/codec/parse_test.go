package codec

import (
	"testing"

	"github.com/podvault-labs/podcatalog/internal/domain"
)

func TestParseGraphSkipsAndCounts(t *testing.T) {
	doc := "@prefix pc: <https://podvault.example/ns/catalog#> .\n" +
		"\n" +
		"<#it> pc:title \"ok\" .\n" +
		"not a statement\n" +
		"<#it> pc:id \"broken\n" +
		"<#it> pc:category \"fine\" .\n"
	g, skipped := ParseGraph([]byte(doc))
	if skipped != 2 {
		t.Fatalf("expected 2 skipped lines, got %d", skipped)
	}
	if len(g.Statements()) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(g.Statements()))
	}
}

func TestParseGraphCompactsKnownNamespaces(t *testing.T) {
	doc := "<#it> <https://podvault.example/ns/catalog#title> \"expanded\" .\n"
	g, skipped := ParseGraph([]byte(doc))
	if skipped != 0 {
		t.Fatalf("unexpected skips: %d", skipped)
	}
	st, ok := g.First("#it", "pc:title")
	if !ok {
		t.Fatalf("expanded predicate was not folded to pc:title")
	}
	if st.Object != "expanded" {
		t.Fatalf("unexpected object: %q", st.Object)
	}
}

func TestEncodeGraphStable(t *testing.T) {
	g := &Graph{}
	g.AddIRI("#it", predType, typeDataSpace)
	g.Add("#it", "pc:title", "alpha")
	g.AddTyped("#it", "pc:active", "true", datatypeBoolean)

	first := EncodeGraph(g)
	reparsed, skipped := ParseGraph(first)
	if skipped != 0 {
		t.Fatalf("own output should parse cleanly, skipped %d", skipped)
	}
	second := EncodeGraph(reparsed)
	if string(first) != string(second) {
		t.Fatalf("encoding is not stable:\n%s\n---\n%s", first, second)
	}
}

func TestStatementDatatypePreserved(t *testing.T) {
	g := &Graph{}
	g.AddTyped("#it", "pc:created", "2026-01-01T00:00:00Z", datatypeDateTime)
	reparsed, _ := ParseGraph(EncodeGraph(g))
	want := domain.Statement{
		Subject:   "#it",
		Predicate: "pc:created",
		Object:    "2026-01-01T00:00:00Z",
		Datatype:  datatypeDateTime,
	}
	if len(reparsed.Statements()) != 1 || reparsed.Statements()[0] != want {
		t.Fatalf("unexpected statements: %#v", reparsed.Statements())
	}
}
