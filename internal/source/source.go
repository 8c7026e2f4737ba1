package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/linescope/linescope/internal/engine/dataset"
	"github.com/linescope/linescope/internal/engine/types"
	"github.com/linescope/linescope/internal/utils"
)

// DefaultTimeout bounds HTTP fetches when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

var (
	// ErrUnsupportedFormat is returned when a source is neither JSON, CSV
	// nor a SQLite database.
	ErrUnsupportedFormat = errors.New("unsupported data format")

	// ErrMissingID is returned when a JSON record has no id.
	ErrMissingID = types.ErrMissingID
)

// Options controls how a source is read.
type Options struct {
	// SeriesBy splits flat record lists into one series per distinct value
	// of this field. Empty means a single series.
	SeriesBy string
	// Table is read when the source is a SQLite database.
	Table string
	// Query replaces the default SELECT on Table.
	Query string
	// Timeout bounds HTTP fetches.
	Timeout time.Duration
	// Format forces a format instead of detecting it.
	Format Format
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// Load reads a dataset from a file path or an http(s) URL.
func Load(ctx context.Context, src string, opts Options) (types.Dataset, error) {
	if utils.IsURL(src) {
		return loadURL(ctx, src, opts)
	}
	return loadFile(ctx, src, opts)
}

func loadFile(ctx context.Context, path string, opts Options) (types.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	format := opts.Format
	if format == Unknown {
		format, err = Detect(data, path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	utils.Debug("source: loading %s as %s (%d bytes)", path, format, len(data))

	if format == SQLite {
		return loadSQLite(ctx, path, opts)
	}
	return decode(data, format, opts)
}

func loadURL(ctx context.Context, rawurl string, opts Options) (types.Dataset, error) {
	body, mtype, err := fetch(ctx, rawurl, opts.timeout())
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == Unknown {
		format = formatFromMediaType(mtype)
	}
	if format == Unknown {
		format, err = Detect(body, rawurl)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rawurl, err)
		}
	}
	utils.Debug("source: fetched %s as %s (%d bytes, %q)", rawurl, format, len(body), mtype)

	if format != SQLite {
		return decode(body, format, opts)
	}

	// database/sql needs a file to open.
	tmp, err := os.CreateTemp("", "linescope-*.sqlite")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	return loadSQLite(ctx, tmp.Name(), opts)
}

func decode(data []byte, format Format, opts Options) (types.Dataset, error) {
	switch format {
	case JSON:
		ds, err := decodeJSON(data)
		if err != nil {
			return nil, err
		}
		if opts.SeriesBy != "" {
			return group(dataset.Flatten(ds), opts.SeriesBy), nil
		}
		return ds, nil
	case CSV:
		records, err := decodeCSV(data)
		if err != nil {
			return nil, err
		}
		return group(records, opts.SeriesBy), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// group turns flat records into a dataset.
func group(records []types.Record, seriesBy string) types.Dataset {
	if len(records) == 0 {
		return types.Dataset{}
	}
	if seriesBy == "" {
		return types.Dataset{types.Series(records)}
	}
	return dataset.Partition(records, seriesBy)
}
