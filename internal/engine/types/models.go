package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// IDField is the name under which a Record's identifier is exposed.
const IDField = "id"

// ErrMissingID is returned when decoding a record without an "id" field.
var ErrMissingID = errors.New("record has no id field")

// Value is a single record field: either a string or a number.
type Value struct {
	str   string
	num   float64
	isNum bool
}

// String returns a text Value.
func String(s string) Value { return Value{str: s} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{num: f, isNum: true} }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.isNum }

// Num returns the numeric content of v. Numeric strings are parsed; anything
// else yields ok=false.
func (v Value) Num() (float64, bool) {
	if v.isNum {
		return v.num, true
	}
	f, err := strconv.ParseFloat(v.str, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Text returns the value rendered as a string.
func (v Value) Text() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNum {
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("value must be a string or a number: %w", err)
	}
	*v = Number(f)
	return nil
}

// Record is one observation, e.g. one day's closing price.
type Record struct {
	ID     string
	Fields map[string]Value
}

// NewRecord builds a record from an id and a field map.
func NewRecord(id string, fields map[string]Value) Record {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Record{ID: id, Fields: fields}
}

// Get returns the named field. The id is reachable under IDField.
func (r Record) Get(key string) (Value, bool) {
	if key == IDField {
		return String(r.ID), true
	}
	v, ok := r.Fields[key]
	return v, ok
}

func (r Record) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		if k != IDField {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	id, _ := json.Marshal(r.ID)
	buf.WriteString(`"id":`)
	buf.Write(id)
	for _, k := range keys {
		name, _ := json.Marshal(k)
		val, err := json.Marshal(r.Fields[k])
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rawID, ok := raw[IDField]
	if !ok {
		return ErrMissingID
	}
	var id Value
	if err := json.Unmarshal(rawID, &id); err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}

	fields := make(map[string]Value, len(raw)-1)
	for k, msg := range raw {
		if k == IDField || string(bytes.TrimSpace(msg)) == "null" {
			continue
		}
		var v Value
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("decoding field %q: %w", k, err)
		}
		fields[k] = v
	}
	*r = Record{ID: id.Text(), Fields: fields}
	return nil
}

// Series is one line on the chart. Order is input order, not x order.
type Series []Record

// Dataset is the ordered list of series; its order is rendering order and
// the index space for visibility toggles.
type Dataset []Series

// Len returns the total number of records across all series.
func (d Dataset) Len() int {
	n := 0
	for _, s := range d {
		n += len(s)
	}
	return n
}

// DatumKind tags the content of a Datum.
type DatumKind uint8

const (
	Invalid DatumKind = iota
	NumberDatum
	TimeDatum
	TextDatum
)

// Datum is what an accessor extracts from a record and what scales consume.
type Datum struct {
	Kind DatumKind
	Num  float64
	Time time.Time
	Text string
}

// Num wraps a number.
func Num(f float64) Datum {
	if math.IsNaN(f) {
		return Datum{}
	}
	return Datum{Kind: NumberDatum, Num: f}
}

// At wraps an instant.
func At(t time.Time) Datum { return Datum{Kind: TimeDatum, Time: t} }

// Text wraps a category label.
func Text(s string) Datum { return Datum{Kind: TextDatum, Text: s} }

// Valid reports whether d carries a value.
func (d Datum) Valid() bool { return d.Kind != Invalid }

// Float projects d onto the real line: numbers as-is, instants as Unix
// milliseconds. Text and invalid datums are NaN.
func (d Datum) Float() float64 {
	switch d.Kind {
	case NumberDatum:
		return d.Num
	case TimeDatum:
		return float64(d.Time.UnixNano()) / float64(time.Millisecond)
	default:
		return math.NaN()
	}
}

// FromMillis converts a Float() projection back into an instant.
func FromMillis(ms float64) time.Time {
	return time.UnixMilli(0).Add(time.Duration(ms * float64(time.Millisecond))).UTC()
}

func (d Datum) String() string {
	switch d.Kind {
	case NumberDatum:
		return strconv.FormatFloat(d.Num, 'g', -1, 64)
	case TimeDatum:
		return d.Time.Format(time.RFC3339)
	case TextDatum:
		return d.Text
	default:
		return "<invalid>"
	}
}

// Tick is one axis mark.
type Tick struct {
	Value    Datum
	Position float64
	Label    string
}
