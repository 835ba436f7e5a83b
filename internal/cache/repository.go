package cache

import (
	"github.com/applywise/applywise-cli/pkg/models"
)

// History operations

// SaveHistory upserts a fetched history page.
func SaveHistory(entries []models.HistoryEntry) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO history (id, job_title, company, location, job_url, status,
			  tailored_resume, cover_letter, error, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET
			  status=excluded.status, tailored_resume=excluded.tailored_resume,
			  cover_letter=excluded.cover_letter, error=excluded.error`
	for _, e := range entries {
		if _, err := tx.Exec(query, e.ID, e.JobTitle, e.Company, e.Location, e.JobURL,
			e.Status, e.TailoredResume, e.CoverLetter, e.Error, e.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListHistory returns cached history entries, newest first.
func ListHistory(limit int) ([]models.HistoryEntry, error) {
	query := `SELECT id, job_title, company, location, job_url, status,
			  tailored_resume, cover_letter, error, created_at
			  FROM history ORDER BY created_at DESC LIMIT ?`
	rows, err := DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		err := rows.Scan(&e.ID, &e.JobTitle, &e.Company, &e.Location, &e.JobURL,
			&e.Status, &e.TailoredResume, &e.CoverLetter, &e.Error, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Application operations

// SaveApplication records an application created through the apply wizard.
func SaveApplication(application *models.Application) error {
	query := `INSERT INTO applications (id, job_title, company, job_url, resume_id, status, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET status=excluded.status`
	_, err := DB.Exec(query, application.ID, application.JobTitle, application.Company,
		application.JobURL, application.ResumeID, application.Status, application.CreatedAt)
	return err
}

// ListApplications returns cached applications, newest first.
func ListApplications() ([]models.Application, error) {
	query := `SELECT id, job_title, company, job_url, resume_id, status, created_at
			  FROM applications ORDER BY created_at DESC`
	rows, err := DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var a models.Application
		err := rows.Scan(&a.ID, &a.JobTitle, &a.Company, &a.JobURL, &a.ResumeID,
			&a.Status, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// CountHistoryByStatus buckets cached history rows by status.
func CountHistoryByStatus() (map[string]int, error) {
	rows, err := DB.Query(`SELECT status, COUNT(*) FROM history GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
