package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_paper_store.go -package=mocks paperrec/internal/storage PaperStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no snapshot has been imported yet.
	ErrNotFound = errors.New("record not found")
)

// PaperStore defines the corpus snapshot operations.
type PaperStore interface {
	// ReplaceAll imports papers as a new snapshot and removes older snapshots.
	ReplaceAll(ctx context.Context, source string, papers []PaperRecord) (*Snapshot, error)
	// Latest returns the most recent snapshot. Returns ErrNotFound if none exists.
	Latest(ctx context.Context) (*Snapshot, error)
	// ListBySnapshot returns the snapshot's papers in original order.
	ListBySnapshot(ctx context.Context, snapshotID string) ([]PaperRecord, error)
}

// PaperRepo implements PaperStore on SQLite.
type PaperRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewPaperRepo creates a new PaperRepo.
func NewPaperRepo(db *sql.DB) *PaperRepo {
	return &PaperRepo{db: db, now: time.Now}
}

// ReplaceAll writes the snapshot and its papers in one transaction.
// Positions are reassigned from the slice order.
func (r *PaperRepo) ReplaceAll(ctx context.Context, source string, papers []PaperRecord) (*Snapshot, error) {
	snap := &Snapshot{
		ID:          uuid.NewString(),
		Source:      source,
		RecordCount: len(papers),
		ImportedAt:  r.now().UTC(),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// PRAGMA foreign_keys only applies to the connection that ran it, so papers are removed explicitly.
	if _, err := tx.ExecContext(ctx, "DELETE FROM papers"); err != nil {
		return nil, fmt.Errorf("failed to delete old papers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshots"); err != nil {
		return nil, fmt.Errorf("failed to delete old snapshots: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO snapshots (id, source, record_count, imported_at) VALUES (?, ?, ?, ?)",
		snap.ID, snap.Source, snap.RecordCount, snap.ImportedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO papers (snapshot_id, position, title, description, url) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare paper insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, p := range papers {
		if _, err := stmt.ExecContext(ctx, snap.ID, i, p.Title, p.Description, p.URL); err != nil {
			return nil, fmt.Errorf("failed to insert paper %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return snap, nil
}

// Latest returns the most recent snapshot.
func (r *PaperRepo) Latest(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	var importedAt string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, source, record_count, imported_at FROM snapshots ORDER BY imported_at DESC LIMIT 1",
	).Scan(&snap.ID, &snap.Source, &snap.RecordCount, &importedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	snap.ImportedAt, err = time.Parse(time.RFC3339, importedAt)
	if err != nil {
		// SQLite default timestamp format
		snap.ImportedAt, err = time.Parse("2006-01-02 15:04:05", importedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse imported_at timestamp: %w", err)
		}
	}

	return &snap, nil
}

// ListBySnapshot returns the snapshot's papers ordered by position.
// Returns an empty slice if the snapshot has no papers (not an error).
func (r *PaperRepo) ListBySnapshot(ctx context.Context, snapshotID string) ([]PaperRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT snapshot_id, position, title, description, url FROM papers WHERE snapshot_id = ? ORDER BY position",
		snapshotID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query papers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	papers := []PaperRecord{}
	for rows.Next() {
		var p PaperRecord
		if err := rows.Scan(&p.SnapshotID, &p.Position, &p.Title, &p.Description, &p.URL); err != nil {
			return nil, fmt.Errorf("failed to scan paper: %w", err)
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate papers: %w", err)
	}

	return papers, nil
}
