package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bastiwasti/jobsearch/internal/domain"
)

// ErrNotFound is returned when a row lookup by id comes up empty.
var ErrNotFound = errors.New("not found")

const jobColumns = `id, run_id, title, company, location, url, description, salary,
job_type, remote, posted_date, source_site, extraction_method, raw_data,
created_at, is_bookmarked, is_hidden, notes, applied_at, status, refined_at`

// FindJobByURL looks a job up by its normalized URL, the sole dedup
// key. Returns (nil, nil) when no row exists.
func (d *DB) FindJobByURL(ctx context.Context, url string) (*domain.JobRecord, error) {
	row := d.Pool.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE url = ? LIMIT 1;`, url)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return j, err
}

func (d *DB) InsertJob(ctx context.Context, j *domain.JobRecord) (int64, error) {
	var rawJSON any
	if len(j.RawData) > 0 {
		b, err := json.Marshal(j.RawData)
		if err == nil {
			rawJSON = string(b)
		}
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	if j.Status == "" {
		j.Status = domain.StatusNew
	}

	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO jobs(run_id, title, company, location, url, description, salary,
  job_type, remote, posted_date, source_site, extraction_method, raw_data,
  created_at, status)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		nullID(j.RunID),
		j.Title,
		j.Company,
		j.Location,
		j.URL,
		j.Description,
		j.Salary,
		string(j.JobType),
		string(j.Remote),
		nullDate(j.PostedDate),
		j.SourceSite,
		j.ExtractionMethod,
		rawJSON,
		j.CreatedAt.Format(time.RFC3339),
		j.Status,
	)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	j.ID = id
	return id, nil
}

// ListJobsOpts filters the review listing. Hidden rows are always
// excluded.
type ListJobsOpts struct {
	Source     string
	Status     string
	Bookmarked *bool
	Query      string // free text over title/company/description
	Limit      int
	Offset     int
}

func (d *DB) ListJobs(ctx context.Context, opts ListJobsOpts) ([]domain.JobRecord, error) {
	if opts.Limit <= 0 || opts.Limit > 500 {
		opts.Limit = 100
	}

	where := []string{"is_hidden = 0"}
	var args []any
	if opts.Source != "" {
		where = append(where, "source_site = ?")
		args = append(args, opts.Source)
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, opts.Status)
	}
	if opts.Bookmarked != nil {
		where = append(where, "is_bookmarked = ?")
		args = append(args, boolInt(*opts.Bookmarked))
	}
	if opts.Query != "" {
		where = append(where, "(title LIKE ? OR company LIKE ? OR description LIKE ?)")
		pat := "%" + opts.Query + "%"
		args = append(args, pat, pat, pat)
	}
	args = append(args, opts.Limit, opts.Offset)

	rows, err := d.Pool.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE `+strings.Join(where, " AND ")+`
ORDER BY created_at DESC LIMIT ? OFFSET ?;`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobRecord
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

func (d *DB) GetJob(ctx context.Context, id int64) (*domain.JobRecord, error) {
	row := d.Pool.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = ? LIMIT 1;`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return j, err
}

// JobPatch carries the user-mutable review fields; nil means leave
// unchanged.
type JobPatch struct {
	IsBookmarked *bool      `json:"is_bookmarked"`
	IsHidden     *bool      `json:"is_hidden"`
	Notes        *string    `json:"notes"`
	Status       *string    `json:"status"`
	AppliedAt    *time.Time `json:"applied_at"`
}

func (d *DB) UpdateJobReview(ctx context.Context, id int64, p JobPatch) (*domain.JobRecord, error) {
	var sets []string
	var args []any
	if p.IsBookmarked != nil {
		sets = append(sets, "is_bookmarked = ?")
		args = append(args, boolInt(*p.IsBookmarked))
	}
	if p.IsHidden != nil {
		sets = append(sets, "is_hidden = ?")
		args = append(args, boolInt(*p.IsHidden))
	}
	if p.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *p.Notes)
	}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	if p.AppliedAt != nil {
		sets = append(sets, "applied_at = ?")
		args = append(args, p.AppliedAt.UTC().Format(time.RFC3339))
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := d.Pool.ExecContext(ctx,
			`UPDATE jobs SET `+strings.Join(sets, ", ")+` WHERE id = ?;`, args...)
		if err != nil {
			return nil, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, ErrNotFound
		}
	}
	return d.GetJob(ctx, id)
}

func scanJob(row interface{ Scan(dest ...any) error }) (*domain.JobRecord, error) {
	var (
		j          domain.JobRecord
		runID      sql.NullInt64
		postedDate sql.NullString
		rawJSON    sql.NullString
		createdAt  string
		bookmarked int
		hidden     int
		appliedAt  sql.NullString
		refinedAt  sql.NullString
		jobType    string
		remote     string
	)
	err := row.Scan(&j.ID, &runID, &j.Title, &j.Company, &j.Location, &j.URL,
		&j.Description, &j.Salary, &jobType, &remote, &postedDate,
		&j.SourceSite, &j.ExtractionMethod, &rawJSON, &createdAt,
		&bookmarked, &hidden, &j.Notes, &appliedAt, &j.Status, &refinedAt)
	if err != nil {
		return nil, err
	}

	j.RunID = runID.Int64
	j.JobType = domain.JobType(jobType)
	j.Remote = domain.RemoteMode(remote)
	j.IsBookmarked = bookmarked != 0
	j.IsHidden = hidden != 0
	j.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if postedDate.Valid && postedDate.String != "" {
		if t, err := time.Parse("2006-01-02", postedDate.String); err == nil {
			j.PostedDate = &t
		}
	}
	if appliedAt.Valid && appliedAt.String != "" {
		if t, err := time.Parse(time.RFC3339, appliedAt.String); err == nil {
			j.AppliedAt = &t
		}
	}
	if refinedAt.Valid && refinedAt.String != "" {
		if t, err := time.Parse(time.RFC3339, refinedAt.String); err == nil {
			j.RefinedAt = &t
		}
	}
	if rawJSON.Valid && rawJSON.String != "" {
		_ = json.Unmarshal([]byte(rawJSON.String), &j.RawData)
	}
	return &j, nil
}

func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
