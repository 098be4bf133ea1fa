package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, name, title, email, phone, location, link, education, experience, skills,
    template_style, file_name, storage_key, mime_type, size_bytes, pages, created_at`

// Create inserts a resume record.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (` + resumeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Name,
		resume.Title,
		resume.Email,
		resume.Phone,
		resume.Location,
		resume.Link,
		resume.Education,
		resume.Experience,
		resume.Skills,
		resume.TemplateStyle,
		resume.FileName,
		resume.StorageKey,
		resume.MimeType,
		resume.SizeBytes,
		resume.Pages,
		resume.CreatedAt,
	)
	return err
}

// GetByID returns a resume owned by userID.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1
LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return resume, nil
}

// ListByUser lists the user's resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// Delete removes a resume owned by userID.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Name,
		&resume.Title,
		&resume.Email,
		&resume.Phone,
		&resume.Location,
		&resume.Link,
		&resume.Education,
		&resume.Experience,
		&resume.Skills,
		&resume.TemplateStyle,
		&resume.FileName,
		&resume.StorageKey,
		&resume.MimeType,
		&resume.SizeBytes,
		&resume.Pages,
		&resume.CreatedAt,
	)
	return resume, err
}

var _ Repo = (*PGRepo)(nil)
