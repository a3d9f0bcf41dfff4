package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mooring/internal/monitor"
	"mooring/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.ReadingStore using SQLite.
// Timestamps are stored as unix nanoseconds.
type Repository struct {
	db *sql.DB
}

var _ repository.ReadingStore = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a :memory: database exists only on its own connection
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		port TEXT NOT NULL,
		received_at INTEGER NOT NULL,
		records INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		hook_key TEXT NOT NULL,
		port TEXT NOT NULL,
		berth TEXT NOT NULL,
		bollard TEXT NOT NULL,
		hook TEXT NOT NULL,
		tension INTEGER,
		faulted INTEGER NOT NULL DEFAULT 0,
		attached_line TEXT,
		ts INTEGER NOT NULL,
		FOREIGN KEY (batch_id) REFERENCES batches(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_readings_hook_ts ON readings(hook_key, ts);
	CREATE INDEX IF NOT EXISTS idx_readings_batch ON readings(batch_id);
	CREATE INDEX IF NOT EXISTS idx_batches_received ON batches(received_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveBatch stores a batch and all of its readings in one transaction
func (r *Repository) SaveBatch(ctx context.Context, batch repository.Batch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO batches (id, port, received_at, records)
		VALUES (?, ?, ?, ?)
	`, batch.ID, batch.Port, batch.ReceivedAt.UnixNano(), len(batch.Readings))
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO readings (batch_id, hook_key, port, berth, bollard, hook, tension, faulted, attached_line, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare reading insert: %w", err)
	}
	defer stmt.Close()

	for _, rd := range batch.Readings {
		_, err := stmt.ExecContext(ctx,
			batch.ID, rd.Key(), rd.Port, rd.Berth, rd.Bollard, rd.Hook,
			intPtrToNull(rd.Tension), boolToInt(rd.Faulted), linePtrToNull(rd.AttachedLine),
			rd.Timestamp.UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert reading %s: %w", rd.Key(), err)
		}
	}

	return tx.Commit()
}

// GetBatch returns the summary of one batch
func (r *Repository) GetBatch(ctx context.Context, id string) (*repository.BatchSummary, error) {
	var (
		summary    repository.BatchSummary
		receivedAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, port, received_at, records FROM batches WHERE id = ?
	`, id).Scan(&summary.ID, &summary.Port, &receivedAt, &summary.Records)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query batch: %w", err)
	}
	summary.ReceivedAt = time.Unix(0, receivedAt)
	return &summary, nil
}

// ListBatches returns the newest batches first
func (r *Repository) ListBatches(ctx context.Context, limit int) ([]repository.BatchSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, port, received_at, records FROM batches
		ORDER BY received_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	var batches []repository.BatchSummary
	for rows.Next() {
		var (
			summary    repository.BatchSummary
			receivedAt int64
		)
		if err := rows.Scan(&summary.ID, &summary.Port, &receivedAt, &summary.Records); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		summary.ReceivedAt = time.Unix(0, receivedAt)
		batches = append(batches, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batches: %w", err)
	}
	return batches, nil
}

// History returns the newest limit samples of a hook, oldest first
func (r *Repository) History(ctx context.Context, key string, limit int) ([]monitor.Sample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ts, tension FROM (
			SELECT id, ts, tension FROM readings
			WHERE hook_key = ?
			ORDER BY ts DESC, id DESC
			LIMIT ?
		) ORDER BY ts ASC, id ASC
	`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var samples []monitor.Sample
	for rows.Next() {
		var (
			ts      int64
			tension sql.NullInt64
		)
		if err := rows.Scan(&ts, &tension); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		samples = append(samples, monitor.Sample{
			Timestamp: time.Unix(0, ts),
			Tension:   nullToIntPtr(tension),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return samples, nil
}

// Readings returns every stored reading of one batch in insertion order
func (r *Repository) Readings(ctx context.Context, batchID string) ([]monitor.Reading, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT port, berth, bollard, hook, tension, faulted, attached_line, ts
		FROM readings WHERE batch_id = ?
		ORDER BY id ASC
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	var readings []monitor.Reading
	for rows.Next() {
		var (
			rd      monitor.Reading
			tension sql.NullInt64
			faulted int
			line    sql.NullString
			ts      int64
		)
		if err := rows.Scan(&rd.Port, &rd.Berth, &rd.Bollard, &rd.Hook, &tension, &faulted, &line, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		rd.Tension = nullToIntPtr(tension)
		rd.Faulted = faulted != 0
		rd.AttachedLine = nullToLinePtr(line)
		rd.Timestamp = time.Unix(0, ts)
		readings = append(readings, rd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating readings: %w", err)
	}
	return readings, nil
}

// CountReadings returns the number of stored readings
func (r *Repository) CountReadings(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM readings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count readings: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
