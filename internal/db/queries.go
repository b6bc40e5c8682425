package db

import (
	"database/sql"
	"fmt"
)

const jobColumns = `id, product, tags, status, storyboard, image_uri, scene_uris,
	final_uri, tag_doc_id, budget_stats, error, started_at, completed_at,
	created_at, updated_at`

// CreateRenderJob inserts a new pending render job
func (db *DB) CreateRenderJob(product, tags string) (*RenderJob, error) {
	result, err := db.Exec(`
		INSERT INTO render_jobs (product, tags, status)
		VALUES (?, ?, ?)
	`, product, tags, JobPending)
	if err != nil {
		return nil, fmt.Errorf("failed to create render job: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get render job ID: %w", err)
	}

	return db.GetRenderJob(id)
}

// GetRenderJob retrieves a render job by ID
func (db *DB) GetRenderJob(id int64) (*RenderJob, error) {
	job := &RenderJob{}
	err := db.QueryRow(`
		SELECT `+jobColumns+`
		FROM render_jobs
		WHERE id = ?
	`, id).Scan(
		&job.ID, &job.Product, &job.Tags, &job.Status, &job.Storyboard,
		&job.ImageURI, &job.SceneURIs, &job.FinalURI, &job.TagDocID,
		&job.BudgetStats, &job.Error, &job.StartedAt, &job.CompletedAt,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("render job not found")
		}
		return nil, fmt.Errorf("failed to get render job: %w", err)
	}
	return job, nil
}

// ListRenderJobs retrieves jobs newest first, optionally filtered by status
func (db *DB) ListRenderJobs(status string, limit int) ([]*RenderJob, error) {
	query := `SELECT ` + jobColumns + ` FROM render_jobs`
	var args []interface{}

	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list render jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*RenderJob
	for rows.Next() {
		job := &RenderJob{}
		err := rows.Scan(
			&job.ID, &job.Product, &job.Tags, &job.Status, &job.Storyboard,
			&job.ImageURI, &job.SceneURIs, &job.FinalURI, &job.TagDocID,
			&job.BudgetStats, &job.Error, &job.StartedAt, &job.CompletedAt,
			&job.CreatedAt, &job.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan render job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// MarkJobRunning transitions a job to running and records the start time
func (db *DB) MarkJobRunning(id int64) error {
	_, err := db.Exec(`
		UPDATE render_jobs
		SET status = ?, started_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, JobRunning, id)
	if err != nil {
		return fmt.Errorf("failed to mark job running: %w", err)
	}
	return nil
}

// MarkJobDone records the run artifacts and completes the job
func (db *DB) MarkJobDone(id int64, storyboard, imageURI, sceneURIs, finalURI, tagDocID, budgetStats string) error {
	_, err := db.Exec(`
		UPDATE render_jobs
		SET status = ?, storyboard = ?, image_uri = ?, scene_uris = ?,
		    final_uri = ?, tag_doc_id = ?, budget_stats = ?,
		    completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, JobDone, storyboard, imageURI, sceneURIs, finalURI, tagDocID, budgetStats, id)
	if err != nil {
		return fmt.Errorf("failed to mark job done: %w", err)
	}
	return nil
}

// MarkJobFailed records the failure and completes the job
func (db *DB) MarkJobFailed(id int64, errMsg string) error {
	_, err := db.Exec(`
		UPDATE render_jobs
		SET status = ?, error = ?, completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, JobFailed, errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}
	return nil
}

// CountJobsByStatus returns the number of jobs per status
func (db *DB) CountJobsByStatus() (map[string]int, error) {
	rows, err := db.Query(`SELECT status, COUNT(*) FROM render_jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan job count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
