package source

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linescope/linescope/internal/engine/types"
	"github.com/linescope/linescope/internal/testutil"
)

const recordsJSON = `[
	{"id": "a1", "name": "alpha", "date": "2020-01-01", "close": 100},
	{"id": "b1", "name": "beta", "date": "2020-01-02", "close": 50},
	{"id": "a2", "name": "alpha", "date": "2020-01-03", "close": 110}
]`

const pricesCSV = "id,name,date,close\n" +
	"a1,alpha,2020-01-01,100\n" +
	"b1,beta,2020-01-02,50\n" +
	"a2,alpha,2020-01-03,110\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func ids(s types.Series) []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.ID
	}
	return out
}

// =============================================================================
// Detect
// =============================================================================

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		file string
		want Format
	}{
		{"json extension", []byte("whatever"), "a.json", JSON},
		{"csv extension", []byte("whatever"), "a.CSV", CSV},
		{"db extension", []byte("whatever"), "a.db", SQLite},
		{"sqlite magic wins over extension", []byte("SQLite format 3\x00rest"), "a.json", SQLite},
		{"sniff json array", []byte("  [ {\"id\":1} ]"), "data", JSON},
		{"sniff json object", []byte("{\"a\":1}"), "", JSON},
		{"sniff csv", []byte("id,close\n1,2\n"), "data.txt", CSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.head, tt.file)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_Unsupported(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	_, err := Detect(png, "chart.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Detect([]byte("   "), "data")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Detect([]byte("just words"), "notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, Unknown, f)

	f, err = ParseFormat("SQLite3")
	require.NoError(t, err)
	assert.Equal(t, SQLite, f)
	assert.Equal(t, "sqlite", f.String())

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFromMediaType(t *testing.T) {
	assert.Equal(t, JSON, formatFromMediaType("application/json"))
	assert.Equal(t, JSON, formatFromMediaType("application/vnd.api+json"))
	assert.Equal(t, CSV, formatFromMediaType("text/csv"))
	assert.Equal(t, SQLite, formatFromMediaType("application/vnd.sqlite3"))
	assert.Equal(t, Unknown, formatFromMediaType("text/plain"))
	assert.Equal(t, Unknown, formatFromMediaType(""))
}

// =============================================================================
// JSON
// =============================================================================

func TestLoad_JSONRecords(t *testing.T) {
	path := writeFile(t, "prices.json", recordsJSON)

	ds, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, []string{"a1", "b1", "a2"}, ids(ds[0]))

	v, ok := ds[0][0].Get("close")
	require.True(t, ok)
	assert.True(t, v.IsNumber())
}

func TestLoad_JSONSeriesBy(t *testing.T) {
	path := writeFile(t, "prices.json", recordsJSON)

	ds, err := Load(context.Background(), path, Options{SeriesBy: "name"})
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, []string{"a1", "a2"}, ids(ds[0]))
	assert.Equal(t, []string{"b1"}, ids(ds[1]))
}

func TestLoad_JSONNestedSeries(t *testing.T) {
	path := writeFile(t, "nested.json", `[
		[{"id": 1, "x": 1, "y": 2}, {"id": 2, "x": 2, "y": 3}],
		[],
		[{"id": "c", "x": 1, "y": 9}]
	]`)

	ds, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Len(t, ds, 3)
	assert.Equal(t, []string{"1", "2"}, ids(ds[0]))
	assert.Empty(t, ds[1])
	assert.Equal(t, []string{"c"}, ids(ds[2]))
}

func TestLoad_JSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"missing id", `[{"close": 1}]`, ErrMissingID},
		{"missing id in series", `[[{"id": 1}, {"close": 1}]]`, ErrMissingID},
		{"object at top level", `{"id": 1}`, errJSONShape},
		{"array of numbers", `[1, 2, 3]`, errJSONShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.json", tt.content)
			_, err := Load(context.Background(), path, Options{})
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoad_JSONEmpty(t *testing.T) {
	path := writeFile(t, "empty.json", `[]`)
	ds, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.NotNil(t, ds)
	assert.Empty(t, ds)
}

// =============================================================================
// CSV
// =============================================================================

func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, "prices.csv", pricesCSV)

	ds, err := Load(context.Background(), path, Options{SeriesBy: "name"})
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, []string{"a1", "a2"}, ids(ds[0]))

	closing, ok := ds[0][1].Get("close")
	require.True(t, ok)
	assert.True(t, closing.IsNumber())
	n, _ := closing.Num()
	assert.Equal(t, 110.0, n)

	date, _ := ds[0][1].Get("date")
	assert.False(t, date.IsNumber())
	assert.Equal(t, "2020-01-03", date.Text())
}

func TestDecodeCSV_GeneratesIDs(t *testing.T) {
	records, err := decodeCSV([]byte("\ufeffdate, close\n2020-01-01, 1\n2020-01-02,\n"))
	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, r := range records {
		_, err := uuid.Parse(r.ID)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, records[0].ID, records[1].ID)

	_, ok := records[0].Get("date")
	assert.True(t, ok, "BOM is stripped from the first header")
	_, ok = records[1].Get("close")
	assert.False(t, ok, "empty cells are left out")
}

func TestDecodeCSV_Errors(t *testing.T) {
	records, err := decodeCSV(nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = decodeCSV([]byte("a,b\n1,2,3\n"))
	assert.Error(t, err)
}

// =============================================================================
// SQLite
// =============================================================================

func newDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.data")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE records (id INTEGER PRIMARY KEY, name TEXT, date TEXT, close REAL, note TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO records (id, name, date, close, note) VALUES
		(1, 'alpha', '2020-01-01', 100, NULL),
		(2, 'beta', '2020-01-02', 50, 'x'),
		(3, 'alpha', '2020-01-03', 110.5, NULL)`)
	require.NoError(t, err)
	return path
}

func TestLoad_SQLite(t *testing.T) {
	path := newDB(t)

	ds, err := Load(context.Background(), path, Options{SeriesBy: "name"})
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, []string{"1", "3"}, ids(ds[0]))
	assert.Equal(t, []string{"2"}, ids(ds[1]))

	closing, _ := ds[0][1].Get("close")
	n, ok := closing.Num()
	require.True(t, ok)
	assert.Equal(t, 110.5, n)

	_, ok = ds[0][0].Get("note")
	assert.False(t, ok, "NULL columns are left out")
}

func TestLoad_SQLiteQuery(t *testing.T) {
	path := newDB(t)

	ds, err := Load(context.Background(), path, Options{
		Query: `SELECT date, close FROM records WHERE name = 'alpha' ORDER BY date`,
	})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	require.Len(t, ds[0], 2)
	_, err = uuid.Parse(ds[0][0].ID)
	assert.NoError(t, err, "rows without an id column get one")
}

func TestLoad_SQLiteMissingTable(t *testing.T) {
	path := newDB(t)
	_, err := Load(context.Background(), path, Options{Table: "nope"})
	assert.Error(t, err)
}

func TestLoadSQLite_MissingFileIsNotCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.db")
	_, err := loadSQLite(context.Background(), path, Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"records"`, quoteIdent("records"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}

// =============================================================================
// HTTP
// =============================================================================

func TestLoad_HTTPContentType(t *testing.T) {
	server := testutil.NewMockServerT(t, testutil.WithHandler(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/prices":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			_, _ = w.Write([]byte(pricesCSV))
		case "/sniffed":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte(recordsJSON))
		default:
			http.NotFound(w, r)
		}
	}))

	ds, err := Load(context.Background(), server.URL()+"/prices", Options{})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Len(t, ds[0], 3)

	ds, err = Load(context.Background(), server.URL()+"/sniffed", Options{SeriesBy: "name"})
	require.NoError(t, err)
	assert.Len(t, ds, 2)

	_, err = Load(context.Background(), server.URL()+"/missing", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoad_HTTPSQLite(t *testing.T) {
	body, err := os.ReadFile(newDB(t))
	require.NoError(t, err)

	server := testutil.NewMockServerT(t,
		testutil.WithBody(body),
		testutil.WithContentType("application/octet-stream"),
	)

	ds, err := Load(context.Background(), server.URL()+"/db", Options{})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Len(t, ds[0], 3)
}

func fastRetries(t *testing.T) {
	t.Helper()
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })
}

func TestFetch_RetriesTransportErrors(t *testing.T) {
	fastRetries(t)
	server := testutil.NewMockServerT(t,
		testutil.WithBody([]byte(recordsJSON)),
		testutil.WithDropFirst(fetchAttempts-1),
	)

	body, mtype, err := fetch(context.Background(), server.URL(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, recordsJSON, string(body))
	assert.Equal(t, "application/json", mtype)
	assert.EqualValues(t, fetchAttempts-1, server.Stats().DroppedConns)
	for _, agent := range server.UserAgents() {
		assert.Equal(t, ua, agent)
	}
}

func TestFetch_GivesUpAfterRetries(t *testing.T) {
	fastRetries(t)
	server := testutil.NewMockServerT(t, testutil.WithDropFirst(fetchAttempts))

	_, _, err := fetch(context.Background(), server.URL(), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after retries")
	assert.EqualValues(t, fetchAttempts, server.Stats().DroppedConns)
}

func TestFetch_StatusIsNotRetried(t *testing.T) {
	fastRetries(t)
	server := testutil.NewMockServerT(t, testutil.WithStatus(http.StatusInternalServerError))

	_, _, err := fetch(context.Background(), server.URL(), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 500")
	assert.EqualValues(t, 1, server.Stats().TotalRequests)
}

func TestFetch_Timeout(t *testing.T) {
	fastRetries(t)
	server := testutil.NewMockServerT(t,
		testutil.WithBody([]byte(recordsJSON)),
		testutil.WithLatency(200*time.Millisecond),
	)

	_, _, err := fetch(context.Background(), server.URL(), 20*time.Millisecond)
	assert.Error(t, err)
}

func TestFetch_BodyTooLarge(t *testing.T) {
	old := maxBodySize
	maxBodySize = 8
	t.Cleanup(func() { maxBodySize = old })

	server := testutil.NewMockServerT(t, testutil.WithBody([]byte(recordsJSON)))
	_, _, err := fetch(context.Background(), server.URL(), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response exceeds 8 bytes")

	maxBodySize = int64(len(recordsJSON))
	body, _, err := fetch(context.Background(), server.URL(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, recordsJSON, string(body))
}

func TestFetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := fetch(ctx, "http://127.0.0.1:1/", time.Second)
	assert.Error(t, err)
}

// =============================================================================
// Watch
// =============================================================================

func TestDebouncer_CoalescesBursts(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(50*time.Millisecond, func() { calls.Add(1) })
	for i := 0; i < 5; i++ {
		d.Trigger()
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	d.Stop()
	d.Trigger()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatch_ReportsWrites(t *testing.T) {
	path := writeFile(t, "prices.csv", pricesCSV)
	other := filepath.Join(filepath.Dir(path), "other.csv")

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 20*time.Millisecond, func() { changed <- struct{}{} })
	}()

	// Keep writing until the watcher is up and notices.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case <-changed:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
			require.NoError(t, os.WriteFile(path, []byte(pricesCSV), 0o644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "a.csv"), 0, func() {})
	assert.Error(t, err)
}
