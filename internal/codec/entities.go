package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/podvault-labs/podcatalog/internal/domain"
)

// ErrMalformedDocument reports a document whose header is missing, of the
// wrong type, or identifies a different entity than expected.
var ErrMalformedDocument = errors.New("malformed document")

var headerPredicates = map[string]bool{
	predType:             true,
	"pc:id":              true,
	"pc:title":           true,
	"pc:description":     true,
	"pc:purpose":         true,
	"pc:accessMode":      true,
	"pc:storageLocation": true,
	"pc:createdBy":       true,
	"pc:created":         true,
	"pc:active":          true,
	"pc:tag":             true,
	"pc:category":        true,
	"pc:belongsTo":       true,
}

// EncodeDataSpace renders the data space and all of its co-located
// sub-records into a single document body.
func EncodeDataSpace(ds domain.DataSpace) []byte {
	g := &Graph{}
	g.AddIRI(subjectHeader, predType, typeDataSpace)
	encodeHeader(g, ds.ID, ds.Title, ds.Description, ds.Purpose, ds.Access,
		ds.StorageLocation, ds.CreatedBy, ds.CreatedAt, ds.Active, ds.Tags, ds.Category)
	encodeMembers(g, ds.Members)
	encodeMetadata(g, ds.Metadata)
	for _, st := range ds.Extra {
		g.AddStatement(st)
	}
	return EncodeGraph(g)
}

// EncodeAsset is the asset counterpart; it additionally writes the
// back-reference to the enclosing data space and the structured records.
func EncodeAsset(a domain.Asset) []byte {
	g := &Graph{}
	g.AddIRI(subjectHeader, predType, typeAsset)
	g.Add(subjectHeader, "pc:belongsTo", a.BelongsTo)
	encodeHeader(g, a.ID, a.Title, a.Description, a.Purpose, a.Access,
		a.StorageLocation, a.CreatedBy, a.CreatedAt, a.Active, a.Tags, a.Category)
	encodeMembers(g, a.Members)
	encodeMetadata(g, a.Metadata)
	for _, r := range a.Records {
		subject := fragmentRecord + r.ID
		g.AddIRI(subject, predType, typeAssetRecord)
		if !r.Created.IsZero() {
			g.AddTyped(subject, "pc:created", formatTime(r.Created), datatypeDateTime)
		}
		if !r.Modified.IsZero() {
			g.AddTyped(subject, "pc:modified", formatTime(r.Modified), datatypeDateTime)
		}
		if r.Source != "" {
			g.AddIRI(subject, "pc:source", r.Source)
		}
		g.AddTyped(subject, "pc:chargeable", strconv.FormatBool(r.Chargeable), datatypeBoolean)
		if r.TemporalCoverage != "" {
			g.Add(subject, "pc:temporalCoverage", r.TemporalCoverage)
		}
		if r.GeographicCoverage != "" {
			g.Add(subject, "pc:geographicCoverage", r.GeographicCoverage)
		}
		if r.Format != "" {
			g.Add(subject, "pc:format", r.Format)
		}
		if r.License != "" {
			g.Add(subject, "pc:license", r.License)
		}
		if r.CreatedBy != "" {
			g.AddIRI(subject, "pc:createdBy", r.CreatedBy)
		}
		if !r.CreatedAt.IsZero() {
			g.AddTyped(subject, "pc:added", formatTime(r.CreatedAt), datatypeDateTime)
		}
	}
	for _, st := range a.Extra {
		g.AddStatement(st)
	}
	return EncodeGraph(g)
}

func encodeHeader(g *Graph, id, title, description, purpose string, access domain.AccessMode,
	storageLocation, createdBy string, createdAt time.Time, active bool, tags []string, category string) {
	g.Add(subjectHeader, "pc:id", id)
	g.Add(subjectHeader, "pc:title", title)
	if description != "" {
		g.Add(subjectHeader, "pc:description", description)
	}
	if purpose != "" {
		g.Add(subjectHeader, "pc:purpose", purpose)
	}
	g.Add(subjectHeader, "pc:accessMode", string(access))
	if storageLocation != "" {
		g.AddIRI(subjectHeader, "pc:storageLocation", storageLocation)
	}
	g.AddIRI(subjectHeader, "pc:createdBy", createdBy)
	g.AddTyped(subjectHeader, "pc:created", formatTime(createdAt), datatypeDateTime)
	g.AddTyped(subjectHeader, "pc:active", strconv.FormatBool(active), datatypeBoolean)
	for _, tag := range tags {
		g.Add(subjectHeader, "pc:tag", tag)
	}
	if category != "" {
		g.Add(subjectHeader, "pc:category", category)
	}
}

func encodeMembers(g *Graph, members []domain.Member) {
	for _, m := range members {
		subject := fragmentMember + m.ID
		g.AddIRI(subject, predType, typeMember)
		g.Add(subject, "pc:entityId", m.EntityID)
		g.AddIRI(subject, "pc:webId", m.WebID)
		g.Add(subject, "pc:role", string(m.Role))
		g.AddTyped(subject, "pc:joined", formatTime(m.JoinedAt), datatypeDateTime)
	}
}

func encodeMetadata(g *Graph, metadata []domain.Metadata) {
	for _, md := range metadata {
		subject := fragmentMeta + md.ID
		g.AddIRI(subject, predType, typeMetadata)
		g.Add(subject, "pc:key", md.Key)
		switch md.Value.Kind {
		case domain.ValueNumber:
			g.AddTyped(subject, "pc:value", md.Value.Lexical(), datatypeDecimal)
		case domain.ValueBoolean:
			g.AddTyped(subject, "pc:value", md.Value.Lexical(), datatypeBoolean)
		case domain.ValueDate:
			g.AddTyped(subject, "pc:value", md.Value.Lexical(), datatypeDateTime)
		case domain.ValueURL:
			g.AddTyped(subject, "pc:value", md.Value.Lexical(), datatypeAnyURI)
		default:
			g.Add(subject, "pc:value", md.Value.Lexical())
		}
		if md.CreatedBy != "" {
			g.AddIRI(subject, "pc:createdBy", md.CreatedBy)
		}
		if !md.CreatedAt.IsZero() {
			g.AddTyped(subject, "pc:created", formatTime(md.CreatedAt), datatypeDateTime)
		}
	}
}

// DecodeDataSpace reconstructs a data space from a document body. Sub-record
// collections are rebuilt by scanning typed subjects; the header carries no
// manifest of its children. expectedID empty skips the identity check.
func DecodeDataSpace(body []byte, expectedID string) (domain.DataSpace, error) {
	g, _ := ParseGraph(body)
	if err := checkHeader(g, typeDataSpace, expectedID); err != nil {
		return domain.DataSpace{}, err
	}
	ds := domain.DataSpace{Active: true}
	var extra []domain.Statement
	for _, st := range g.About(subjectHeader) {
		switch st.Predicate {
		case predType:
		case "pc:id":
			ds.ID = st.Object
		case "pc:title":
			ds.Title = st.Object
		case "pc:description":
			ds.Description = st.Object
		case "pc:purpose":
			ds.Purpose = st.Object
		case "pc:accessMode":
			ds.Access = domain.AccessMode(st.Object)
		case "pc:storageLocation":
			ds.StorageLocation = st.Object
		case "pc:createdBy":
			ds.CreatedBy = st.Object
		case "pc:created":
			ds.CreatedAt = parseTime(st.Object)
		case "pc:active":
			ds.Active = st.Object == "true"
		case "pc:tag":
			ds.Tags = append(ds.Tags, st.Object)
		case "pc:category":
			ds.Category = st.Object
		default:
			extra = append(extra, st)
		}
	}
	members, metadata, _, foreign := decodeSubRecords(g)
	ds.Members = members
	ds.Metadata = metadata
	ds.Extra = append(extra, foreign...)
	return ds, nil
}

// DecodeAsset is the asset counterpart of DecodeDataSpace.
func DecodeAsset(body []byte, expectedID string) (domain.Asset, error) {
	g, _ := ParseGraph(body)
	if err := checkHeader(g, typeAsset, expectedID); err != nil {
		return domain.Asset{}, err
	}
	a := domain.Asset{Active: true}
	var extra []domain.Statement
	for _, st := range g.About(subjectHeader) {
		switch st.Predicate {
		case predType:
		case "pc:id":
			a.ID = st.Object
		case "pc:belongsTo":
			a.BelongsTo = st.Object
		case "pc:title":
			a.Title = st.Object
		case "pc:description":
			a.Description = st.Object
		case "pc:purpose":
			a.Purpose = st.Object
		case "pc:accessMode":
			a.Access = domain.AccessMode(st.Object)
		case "pc:storageLocation":
			a.StorageLocation = st.Object
		case "pc:createdBy":
			a.CreatedBy = st.Object
		case "pc:created":
			a.CreatedAt = parseTime(st.Object)
		case "pc:active":
			a.Active = st.Object == "true"
		case "pc:tag":
			a.Tags = append(a.Tags, st.Object)
		case "pc:category":
			a.Category = st.Object
		default:
			extra = append(extra, st)
		}
	}
	members, metadata, records, foreign := decodeSubRecords(g)
	a.Members = members
	a.Metadata = metadata
	a.Records = records
	a.Extra = append(extra, foreign...)
	return a, nil
}

func checkHeader(g *Graph, wantType, expectedID string) error {
	typ, ok := g.First(subjectHeader, predType)
	if !ok || typ.Object != wantType {
		return fmt.Errorf("%w: missing %s header", ErrMalformedDocument, wantType)
	}
	id, ok := g.First(subjectHeader, "pc:id")
	if !ok || strings.TrimSpace(id.Object) == "" {
		return fmt.Errorf("%w: missing id", ErrMalformedDocument)
	}
	if expectedID != "" && id.Object != expectedID {
		return fmt.Errorf("%w: document identifies %q, expected %q", ErrMalformedDocument, id.Object, expectedID)
	}
	return nil
}

// decodeSubRecords scans every non-header subject; subjects the vocabulary
// does not claim are returned verbatim for round-trip preservation.
func decodeSubRecords(g *Graph) ([]domain.Member, []domain.Metadata, []domain.AssetRecord, []domain.Statement) {
	var members []domain.Member
	var metadata []domain.Metadata
	var records []domain.AssetRecord
	var foreign []domain.Statement
	for _, subject := range g.Subjects() {
		if subject == subjectHeader {
			continue
		}
		typ, _ := g.First(subject, predType)
		switch typ.Object {
		case typeMember:
			if m, ok := decodeMember(g, subject); ok {
				members = append(members, m)
			}
		case typeMetadata:
			if md, ok := decodeMetadataRecord(g, subject); ok {
				metadata = append(metadata, md)
			}
		case typeAssetRecord:
			if r, ok := decodeAssetRecord(g, subject); ok {
				records = append(records, r)
			}
		default:
			foreign = append(foreign, g.About(subject)...)
		}
	}
	return members, metadata, records, foreign
}

func decodeMember(g *Graph, subject string) (domain.Member, bool) {
	m := domain.Member{ID: strings.TrimPrefix(subject, fragmentMember)}
	for _, st := range g.About(subject) {
		switch st.Predicate {
		case "pc:entityId":
			m.EntityID = st.Object
		case "pc:webId":
			m.WebID = st.Object
		case "pc:role":
			m.Role = domain.Role(st.Object)
		case "pc:joined":
			m.JoinedAt = parseTime(st.Object)
		}
	}
	return m, m.Validate() == nil
}

func decodeMetadataRecord(g *Graph, subject string) (domain.Metadata, bool) {
	md := domain.Metadata{ID: strings.TrimPrefix(subject, fragmentMeta)}
	for _, st := range g.About(subject) {
		switch st.Predicate {
		case "pc:key":
			md.Key = st.Object
		case "pc:value":
			value, ok := decodeValue(st)
			if !ok {
				return domain.Metadata{}, false
			}
			md.Value = value
		case "pc:createdBy":
			md.CreatedBy = st.Object
		case "pc:created":
			md.CreatedAt = parseTime(st.Object)
		}
	}
	return md, md.Validate() == nil
}

func decodeAssetRecord(g *Graph, subject string) (domain.AssetRecord, bool) {
	r := domain.AssetRecord{ID: strings.TrimPrefix(subject, fragmentRecord)}
	for _, st := range g.About(subject) {
		switch st.Predicate {
		case "pc:created":
			r.Created = parseTime(st.Object)
		case "pc:modified":
			r.Modified = parseTime(st.Object)
		case "pc:source":
			r.Source = st.Object
		case "pc:chargeable":
			r.Chargeable = st.Object == "true"
		case "pc:temporalCoverage":
			r.TemporalCoverage = st.Object
		case "pc:geographicCoverage":
			r.GeographicCoverage = st.Object
		case "pc:format":
			r.Format = st.Object
		case "pc:license":
			r.License = st.Object
		case "pc:createdBy":
			r.CreatedBy = st.Object
		case "pc:added":
			r.CreatedAt = parseTime(st.Object)
		}
	}
	return r, r.Validate() == nil
}

// decodeValue maps the literal datatype onto the value union; every kind
// the union defines is matched, anything else rejects the record.
func decodeValue(st domain.Statement) (domain.Value, bool) {
	switch st.Datatype {
	case "":
		return domain.StringValue(st.Object), true
	case datatypeDecimal, datatypeInteger, datatypeDouble:
		n, err := strconv.ParseFloat(st.Object, 64)
		if err != nil {
			return domain.Value{}, false
		}
		return domain.NumberValue(n), true
	case datatypeBoolean:
		b, err := strconv.ParseBool(st.Object)
		if err != nil {
			return domain.Value{}, false
		}
		return domain.BooleanValue(b), true
	case datatypeDateTime:
		t, err := time.Parse(time.RFC3339Nano, st.Object)
		if err != nil {
			return domain.Value{}, false
		}
		return domain.DateValue(t), true
	case datatypeAnyURI:
		return domain.URLValue(st.Object), true
	default:
		return domain.Value{}, false
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
