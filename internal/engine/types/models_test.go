package types

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalJSON(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"id":"a1","date":"2020-01-01","close":100,"note":null}`), &r)
	require.NoError(t, err)

	assert.Equal(t, "a1", r.ID)
	date, ok := r.Get("date")
	require.True(t, ok)
	assert.False(t, date.IsNumber())
	assert.Equal(t, "2020-01-01", date.Text())

	closeV, ok := r.Get("close")
	require.True(t, ok)
	assert.True(t, closeV.IsNumber())
	f, ok := closeV.Num()
	assert.True(t, ok)
	assert.Equal(t, 100.0, f)

	_, ok = r.Get("note")
	assert.False(t, ok, "null fields are treated as absent")

	id, ok := r.Get(IDField)
	require.True(t, ok)
	assert.Equal(t, "a1", id.Text())
}

func TestRecord_UnmarshalJSON_NumericID(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"v":1.5}`), &r))
	assert.Equal(t, "42", r.ID)
}

func TestRecord_UnmarshalJSON_MissingID(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"close":1}`), &r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingID))
}

func TestRecord_UnmarshalJSON_BadField(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"id":"x","nested":{"a":1}}`), &r)
	assert.Error(t, err)
}

func TestRecord_MarshalJSON_IsStable(t *testing.T) {
	r := NewRecord("b1", map[string]Value{
		"close": Number(50),
		"date":  String("2020-01-02"),
		"name":  String("beta"),
	})
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"b1","close":50,"date":"2020-01-02","name":"beta"}`, string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)
}

func TestValue_Num(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
		ok   bool
	}{
		{"number", Number(3.5), 3.5, true},
		{"numeric string", String("12.25"), 12.25, true},
		{"text", String("abc"), 0, false},
		{"empty", String(""), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Num()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatum_Float(t *testing.T) {
	at := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 7.0, Num(7).Float())
	assert.Equal(t, float64(at.UnixMilli()), At(at).Float())
	assert.True(t, math.IsNaN(Text("x").Float()))
	assert.True(t, math.IsNaN(Datum{}.Float()))
	assert.False(t, Num(math.NaN()).Valid(), "NaN numbers collapse to invalid")

	assert.True(t, FromMillis(At(at).Float()).Equal(at))
}

func TestDataset_Len(t *testing.T) {
	ds := Dataset{
		{NewRecord("a1", nil), NewRecord("a2", nil)},
		{},
		{NewRecord("c1", nil)},
	}
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 0, Dataset(nil).Len())
}
