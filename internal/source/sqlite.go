package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/linescope/linescope/internal/engine/types"
	"github.com/linescope/linescope/internal/utils"
)

// DefaultTable is read when a SQLite source has no table or query set.
const DefaultTable = "records"

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// loadSQLite reads every row of a table, or of a custom query, as one
// record. Column names become field names.
func loadSQLite(ctx context.Context, path string, opts Options) (types.Dataset, error) {
	// Opening a missing file would create an empty database.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	query := opts.Query
	if query == "" {
		table := opts.Table
		if table == "" {
			table = DefaultTable
		}
		query = "SELECT * FROM " + quoteIdent(table)
	}
	utils.Debug("source: sqlite %s: %s", path, query)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records []types.Record
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		var id string
		fields := make(map[string]types.Value, len(cols))
		for i, col := range cols {
			v, ok := columnValue(vals[i])
			if !ok {
				continue
			}
			if col == types.IDField {
				id = v.Text()
				continue
			}
			fields[col] = v
		}
		if id == "" {
			id = uuid.NewString()
		}
		records = append(records, types.NewRecord(id, fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	return group(records, opts.SeriesBy), nil
}

// columnValue converts a scanned column. Timestamps become Unix
// milliseconds, which date accessors understand.
func columnValue(v any) (types.Value, bool) {
	switch x := v.(type) {
	case nil:
		return types.Value{}, false
	case int64:
		return types.Number(float64(x)), true
	case float64:
		return types.Number(x), true
	case bool:
		if x {
			return types.Number(1), true
		}
		return types.Number(0), true
	case []byte:
		return types.String(string(x)), true
	case string:
		return types.String(x), true
	case time.Time:
		return types.Number(float64(x.UnixMilli())), true
	default:
		return types.String(fmt.Sprint(x)), true
	}
}
