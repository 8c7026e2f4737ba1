package scale

import (
	"github.com/linescope/linescope/internal/engine/types"
)

// FieldAccessor reads key as-is. Numbers and numeric strings become number
// datums, other strings become text datums and a missing field is invalid.
func FieldAccessor(key string) Accessor {
	return func(r types.Record) types.Datum {
		v, ok := r.Get(key)
		if !ok {
			return types.Datum{}
		}
		if f, ok := v.Num(); ok {
			return types.Num(f)
		}
		return types.Text(v.Text())
	}
}

// DateAccessor parses key with a strftime pattern. Numeric fields are taken
// as Unix milliseconds. Unparseable values are invalid.
func DateAccessor(key, format string) Accessor {
	return func(r types.Record) types.Datum {
		v, ok := r.Get(key)
		if !ok {
			return types.Datum{}
		}
		if v.IsNumber() {
			f, _ := v.Num()
			return types.At(types.FromMillis(f))
		}
		t, err := ParseDate(format, v.Text())
		if err != nil {
			return types.Datum{}
		}
		return types.At(t)
	}
}

// Parse runs raw through the accessor as if it were the value of the scaled
// field. It is used for user-supplied tick values and lookups.
func (r Result) Parse(raw string) types.Datum {
	if r.Key == types.IDField {
		return r.Value(types.NewRecord(raw, nil))
	}
	return r.Value(types.NewRecord("", map[string]types.Value{r.Key: types.String(raw)}))
}
