package storage

import "time"

// Snapshot is one imported version of the corpus.
type Snapshot struct {
	ID          string // UUID
	Source      string // Path or URL the snapshot was imported from
	RecordCount int
	ImportedAt  time.Time
}

// PaperRecord is one corpus line as stored in a snapshot.
type PaperRecord struct {
	SnapshotID  string
	Position    int // Original line order within the snapshot
	Title       string
	Description string
	URL         string
}
