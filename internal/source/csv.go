package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/linescope/linescope/internal/engine/types"
)

// decodeCSV reads a header row followed by one record per row. Numeric
// cells become numbers, empty cells are left out, and rows without an id
// column get a generated one.
func decodeCSV(data []byte) ([]types.Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []types.Record{}, nil
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var records []types.Record
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		var id string
		fields := make(map[string]types.Value, len(row))
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if header[i] == types.IDField {
				id = cell
				continue
			}
			fields[header[i]] = cellValue(cell)
		}
		if id == "" {
			id = uuid.NewString()
		}
		records = append(records, types.NewRecord(id, fields))
	}
	if records == nil {
		records = []types.Record{}
	}
	return records, nil
}

func cellValue(cell string) types.Value {
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return types.Number(f)
	}
	return types.String(cell)
}
