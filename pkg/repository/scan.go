package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/painradar/painradar/pkg/domain"
)

// ScanRepository records scan run bookkeeping
type ScanRepository struct {
	db *sqlx.DB
}

// NewScanRepository creates a new scan repository
func NewScanRepository(database *sqlx.DB) *ScanRepository {
	return &ScanRepository{db: database}
}

// ScanRun is one recorded scan with its data-quality counters
type ScanRun struct {
	ID         int64      `db:"id"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
	ItemsSeen  int        `db:"items_seen"`
	Malformed  int        `db:"malformed"`
	NoSignal   int        `db:"no_signal"`
	NoIndustry int        `db:"no_industry"`
	Matched    int        `db:"matched"`
	Error      string     `db:"error"`
}

// StartScan records the beginning of a scan run and returns its id
func (r *ScanRepository) StartScan(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "INSERT INTO scans DEFAULT VALUES")
	if err != nil {
		return 0, fmt.Errorf("start scan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("scan id: %w", err)
	}
	return id, nil
}

// FinishScan records the end of a scan run with its stats. errMsg is empty
// for a clean run.
func (r *ScanRepository) FinishScan(ctx context.Context, id int64, stats domain.ScanStats, errMsg string) error {
	query := `
		UPDATE scans
		SET finished_at = datetime('now'),
		    items_seen = ?, malformed = ?, no_signal = ?, no_industry = ?, matched = ?,
		    error = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		stats.ItemsSeen, stats.Malformed, stats.NoSignal, stats.NoIndustry, stats.Matched, errMsg, id)
	if err != nil {
		return fmt.Errorf("finish scan %d: %w", id, err)
	}
	return nil
}

// LastScan returns the most recent scan run, nil when none recorded yet
func (r *ScanRepository) LastScan(ctx context.Context) (*ScanRun, error) {
	var run ScanRun
	err := r.db.GetContext(ctx, &run, "SELECT * FROM scans ORDER BY id DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last scan: %w", err)
	}
	return &run, nil
}
