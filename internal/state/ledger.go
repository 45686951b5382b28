package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Job records one build run through the pipeline.
type Job struct {
	ID                string
	Project           string
	SourcePath        string
	PatchMode         string
	Status            Status
	SegmentsPlanned   int
	SegmentsConverted int
	ErrorMessage      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Ledger manages job persistence backed by SQLite. The workspace lock
// prevents two processes from mutating the same workspace concurrently.
type Ledger struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// OpenLedger initializes or connects to the job database under the
// workspace directory and applies migrations.
func OpenLedger(workspaceDir string) (*Ledger, error) {
	if err := os.MkdirAll(workspaceDir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	lock := flock.New(filepath.Join(workspaceDir, "starsound.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !ok {
		return nil, errors.New("workspace is locked by another starsound process")
	}

	dbPath := filepath.Join(workspaceDir, "jobs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	ledger := &Ledger{db: db, path: dbPath, lock: lock}
	if err := ledger.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return ledger, nil
}

// Close closes the database connection and releases the workspace lock.
func (l *Ledger) Close() error {
	if l == nil {
		return nil
	}
	var err error
	if l.db != nil {
		err = l.db.Close()
	}
	if l.lock != nil {
		if unlockErr := l.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file location.
func (l *Ledger) Path() string {
	return l.path
}

// NewJob inserts a pending job for one source file.
func (l *Ledger) NewJob(ctx context.Context, project, sourcePath, patchMode string) (*Job, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	id := uuid.NewString()

	_, err := l.db.ExecContext(
		ctx,
		`INSERT INTO jobs (
            id, project, source_path, patch_mode, status,
            segments_planned, segments_converted, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		project,
		nullableString(sourcePath),
		patchMode,
		StatusPending,
		0,
		0,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	return l.GetByID(ctx, id)
}

// GetByID fetches a job by identifier.
func (l *Ledger) GetByID(ctx context.Context, id string) (*Job, error) {
	row := l.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// Update persists changes to an existing job.
func (l *Ledger) Update(ctx context.Context, job *Job) error {
	if job == nil {
		return errors.New("job is nil")
	}
	job.UpdatedAt = time.Now().UTC()
	_, err := l.db.ExecContext(
		ctx,
		`UPDATE jobs
         SET project = ?, source_path = ?, patch_mode = ?, status = ?,
             segments_planned = ?, segments_converted = ?, error_message = ?, updated_at = ?
         WHERE id = ?`,
		job.Project,
		nullableString(job.SourcePath),
		job.PatchMode,
		job.Status,
		job.SegmentsPlanned,
		job.SegmentsConverted,
		nullableString(job.ErrorMessage),
		job.UpdatedAt.Format(time.RFC3339Nano),
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// List returns jobs filtered by status set, or all jobs when no status
// is provided, ordered by creation time.
func (l *Ledger) List(ctx context.Context, statuses ...Status) ([]*Job, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	orderClause := ` ORDER BY created_at`

	if len(statuses) == 0 {
		rows, err = l.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = l.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Stats returns a count of jobs grouped by status.
func (l *Ledger) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// ResetStuck returns in-flight jobs to pending. Used on startup after a
// crash left jobs mid-pipeline.
func (l *Ledger) ResetStuck(ctx context.Context) (int64, error) {
	res, err := l.db.ExecContext(
		ctx,
		`UPDATE jobs SET status = ?, updated_at = ? WHERE status IN (?, ?, ?)`,
		StatusPending,
		time.Now().UTC().Format(time.RFC3339Nano),
		StatusPlanning,
		StatusConverting,
		StatusPatching,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck jobs: %w", err)
	}
	return res.RowsAffected()
}

// ClearCompleted removes completed jobs from the ledger.
func (l *Ledger) ClearCompleted(ctx context.Context) (int64, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM jobs WHERE status = ?`, StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("clear completed: %w", err)
	}
	return res.RowsAffected()
}

const jobColumns = "id, project, source_path, patch_mode, status, segments_planned, segments_converted, error_message, created_at, updated_at"

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id           string
		project      string
		sourcePath   sql.NullString
		patchMode    string
		statusStr    string
		planned      int
		converted    int
		errorMessage sql.NullString
		createdRaw   string
		updatedRaw   string
	)

	if err := scanner.Scan(
		&id,
		&project,
		&sourcePath,
		&patchMode,
		&statusStr,
		&planned,
		&converted,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:                id,
		Project:           project,
		SourcePath:        sourcePath.String,
		PatchMode:         patchMode,
		Status:            Status(statusStr),
		SegmentsPlanned:   planned,
		SegmentsConverted: converted,
		ErrorMessage:      errorMessage.String,
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		job.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		job.UpdatedAt = updated
	}
	return job, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
