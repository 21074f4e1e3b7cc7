package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"paperrec/internal/contextutil"
	"paperrec/internal/storage"
)

// Loader returns the corpus. Implementations never fail: any error is logged
// and reported as an empty corpus.
type Loader interface {
	Load(ctx context.Context) []Record
}

func loggerFor(ctx context.Context, source string) *slog.Logger {
	return contextutil.LoggerFromContext(ctx).With("component", "corpus", "source", source)
}

// HTTPLoader fetches a JSONL corpus from object storage.
type HTTPLoader struct {
	url    string
	client *http.Client
}

// NewHTTPLoader creates an HTTPLoader with the given request timeout.
func NewHTTPLoader(url string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{url: url, client: &http.Client{Timeout: timeout}}
}

// Load fetches and parses the corpus.
func (l *HTTPLoader) Load(ctx context.Context) []Record {
	logger := loggerFor(ctx, l.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		logger.Warn("failed to create corpus request", "error", err)
		return []Record{}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		logger.Warn("failed to fetch corpus", "error", err)
		return []Record{}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("corpus fetch returned bad status", "status", resp.StatusCode)
		return []Record{}
	}

	return parseAndLog(logger, resp.Body)
}

// FileLoader reads a JSONL corpus from the local filesystem.
type FileLoader struct {
	path string
}

// NewFileLoader creates a FileLoader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Load reads and parses the corpus file.
func (l *FileLoader) Load(ctx context.Context) []Record {
	logger := loggerFor(ctx, l.path)

	f, err := os.Open(l.path)
	if err != nil {
		logger.Warn("failed to open corpus file", "error", err)
		return []Record{}
	}
	defer func() {
		_ = f.Close()
	}()

	return parseAndLog(logger, f)
}

func parseAndLog(logger *slog.Logger, r io.Reader) []Record {
	records, stats, err := ParseJSONL(r)
	if err != nil {
		logger.Warn("corpus read interrupted", "error", err, "records", len(records))
	}
	logger.Debug("corpus loaded", "records", len(records), "lines", stats.Lines, "skipped", stats.Skipped)
	return records
}

// StoreLoader reads the latest snapshot imported into the SQLite store.
type StoreLoader struct {
	store storage.PaperStore
}

// NewStoreLoader creates a StoreLoader.
func NewStoreLoader(store storage.PaperStore) *StoreLoader {
	return &StoreLoader{store: store}
}

// Load returns the papers of the latest snapshot in original order.
func (l *StoreLoader) Load(ctx context.Context) []Record {
	logger := loggerFor(ctx, "sqlite")

	snap, err := l.store.Latest(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		logger.Warn("corpus store has no snapshot")
		return []Record{}
	}
	if err != nil {
		logger.Warn("failed to read corpus snapshot", "error", err)
		return []Record{}
	}

	papers, err := l.store.ListBySnapshot(ctx, snap.ID)
	if err != nil {
		logger.Warn("failed to list corpus papers", "snapshot_id", snap.ID, "error", err)
		return []Record{}
	}

	records := make([]Record, 0, len(papers))
	for _, p := range papers {
		records = append(records, Record{Title: p.Title, Description: p.Description, URL: p.URL})
	}
	return records
}

const sqlitePrefix = "sqlite://"

// Open builds the loader for source: an http(s) URL, "sqlite://<path>" for a
// snapshot store, or a local file path. The returned close function releases
// any resources the loader holds.
func Open(source string, timeout time.Duration) (Loader, func() error, error) {
	noop := func() error { return nil }

	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return NewHTTPLoader(source, timeout), noop, nil
	case strings.HasPrefix(source, sqlitePrefix):
		db, err := storage.New(strings.TrimPrefix(source, sqlitePrefix))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open corpus store: %w", err)
		}
		if err := storage.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to migrate corpus store: %w", err)
		}
		return NewStoreLoader(storage.NewPaperRepo(db)), db.Close, nil
	case source == "":
		return nil, nil, fmt.Errorf("corpus source is empty")
	default:
		return NewFileLoader(source), noop, nil
	}
}
