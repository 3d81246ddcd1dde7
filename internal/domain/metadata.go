package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueKind tags the concrete type carried by a metadata value.
type ValueKind string

const (
	ValueString  ValueKind = "string"
	ValueNumber  ValueKind = "number"
	ValueBoolean ValueKind = "boolean"
	ValueDate    ValueKind = "date"
	ValueURL     ValueKind = "url"
)

// Value is a tagged union; exactly the field selected by Kind is meaningful.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
	URL  string
}

func StringValue(s string) Value   { return Value{Kind: ValueString, Str: s} }
func NumberValue(n float64) Value  { return Value{Kind: ValueNumber, Num: n} }
func BooleanValue(b bool) Value    { return Value{Kind: ValueBoolean, Bool: b} }
func DateValue(t time.Time) Value  { return Value{Kind: ValueDate, Time: t.UTC()} }
func URLValue(u string) Value      { return Value{Kind: ValueURL, URL: u} }

func (v Value) Validate() error {
	switch v.Kind {
	case ValueString, ValueNumber, ValueBoolean:
		return nil
	case ValueDate:
		if v.Time.IsZero() {
			return errors.New("date value requires a timestamp")
		}
		return nil
	case ValueURL:
		if strings.TrimSpace(v.URL) == "" {
			return errors.New("url value requires a url")
		}
		return nil
	default:
		return fmt.Errorf("unknown value kind %q", v.Kind)
	}
}

// Lexical is the canonical string form written to the wire.
func (v Value) Lexical() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueBoolean:
		return strconv.FormatBool(v.Bool)
	case ValueDate:
		return v.Time.UTC().Format(time.RFC3339)
	case ValueURL:
		return v.URL
	default:
		return v.Str
	}
}

// Metadata is a key/value annotation co-stored inside its parent's document.
type Metadata struct {
	ID        string
	Key       string
	Value     Value
	CreatedBy string
	CreatedAt time.Time
}

func (m Metadata) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("metadata id is required")
	}
	if strings.TrimSpace(m.Key) == "" {
		return errors.New("metadata key is required")
	}
	return m.Value.Validate()
}

// AssetRecord is the structured descriptive record attached to an asset,
// richer than the generic key/value form.
type AssetRecord struct {
	ID                 string
	Created            time.Time
	Modified           time.Time
	Source             string
	Chargeable         bool
	TemporalCoverage   string
	GeographicCoverage string
	Format             string
	License            string
	CreatedBy          string
	CreatedAt          time.Time
}

func (r AssetRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("asset record id is required")
	}
	return nil
}
