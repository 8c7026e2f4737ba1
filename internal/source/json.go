package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/linescope/linescope/internal/engine/types"
)

var errJSONShape = errors.New("expected an array of records or an array of series")

// decodeJSON accepts either [[record, ...], ...] (one array per series) or
// a flat [record, ...] which becomes a single series.
func decodeJSON(data []byte) (types.Dataset, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, errJSONShape
		}
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	if len(items) == 0 {
		return types.Dataset{}, nil
	}

	first := bytes.TrimSpace(items[0])
	if len(first) == 0 {
		return nil, errJSONShape
	}

	switch first[0] {
	case '[':
		ds := make(types.Dataset, len(items))
		for i, raw := range items {
			if err := json.Unmarshal(raw, &ds[i]); err != nil {
				return nil, fmt.Errorf("decoding series %d: %w", i, err)
			}
		}
		return ds, nil

	case '{':
		records := make([]types.Record, len(items))
		for i, raw := range items {
			if err := json.Unmarshal(raw, &records[i]); err != nil {
				return nil, fmt.Errorf("decoding record %d: %w", i, err)
			}
		}
		return types.Dataset{types.Series(records)}, nil
	}
	return nil, errJSONShape
}
