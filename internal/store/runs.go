package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/bastiwasti/jobsearch/internal/domain"
)

const runColumns = `id, started_at, completed_at, status, sites_scraped,
jobs_found, jobs_excluded, jobs_new, errors, trigger_source`

func (d *DB) CreateRun(ctx context.Context, trigger string) (*domain.Run, error) {
	if trigger == "" {
		trigger = "manual"
	}
	run := &domain.Run{
		StartedAt: time.Now().UTC(),
		Status:    "running",
		Trigger:   trigger,
	}
	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO scrape_runs(started_at, status, trigger_source)
VALUES(?,?,?);`,
		run.StartedAt.Format(time.RFC3339), run.Status, run.Trigger)
	if err != nil {
		return nil, err
	}
	run.ID, _ = res.LastInsertId()
	return run, nil
}

func (d *DB) UpdateRun(ctx context.Context, run *domain.Run) error {
	var errJSON any
	if len(run.Errors) > 0 {
		b, err := json.Marshal(run.Errors)
		if err == nil {
			errJSON = string(b)
		}
	}
	var completed any
	if run.CompletedAt != nil {
		completed = run.CompletedAt.UTC().Format(time.RFC3339)
	}
	_, err := d.Pool.ExecContext(ctx, `
UPDATE scrape_runs
SET completed_at = ?, status = ?, sites_scraped = ?, jobs_found = ?,
    jobs_excluded = ?, jobs_new = ?, errors = ?
WHERE id = ?;`,
		completed, run.Status, run.SitesScraped, run.JobsFound,
		run.JobsExcluded, run.JobsNew, errJSON, run.ID)
	return err
}

func (d *DB) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	rows, err := d.Pool.QueryContext(ctx,
		`SELECT `+runColumns+` FROM scrape_runs ORDER BY id DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (d *DB) GetRun(ctx context.Context, id int64) (*domain.Run, error) {
	row := d.Pool.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM scrape_runs WHERE id = ? LIMIT 1;`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

func scanRun(row interface{ Scan(dest ...any) error }) (*domain.Run, error) {
	var (
		r         domain.Run
		startedAt string
		completed sql.NullString
		errJSON   sql.NullString
	)
	err := row.Scan(&r.ID, &startedAt, &completed, &r.Status, &r.SitesScraped,
		&r.JobsFound, &r.JobsExcluded, &r.JobsNew, &errJSON, &r.Trigger)
	if err != nil {
		return nil, err
	}
	r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if completed.Valid && completed.String != "" {
		if t, err := time.Parse(time.RFC3339, completed.String); err == nil {
			r.CompletedAt = &t
		}
	}
	if errJSON.Valid && errJSON.String != "" {
		_ = json.Unmarshal([]byte(errJSON.String), &r.Errors)
	}
	return &r, nil
}
