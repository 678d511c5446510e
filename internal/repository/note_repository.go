package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cs-study-hub/notes-api/internal/models"
)

const noteColumns = `n.id, n.title, n.subject, n.semester, n.category, n.file_path, n.file_size,
       n.file_type, n.description, n.tags, n.uploaded_by, n.upload_status, n.upload_date`

// NoteRepository handles note metadata persistence.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository constructs the repository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create stores metadata for an uploaded note file.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.UploadDate.IsZero() {
		note.UploadDate = time.Now().UTC()
	}

	const query = `INSERT INTO notes
		(id, title, subject, semester, category, file_path, file_size, file_type, description, tags, uploaded_by, upload_status, upload_date)
		VALUES (:id, :title, :subject, :semester, :category, :file_path, :file_size, :file_type, :description, :tags, :uploaded_by, :upload_status, :upload_date)`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// ListApproved returns approved notes joined with the uploader's display
// name, most recent first. The inner join silently drops notes whose
// uploader row no longer exists.
func (r *NoteRepository) ListApproved(ctx context.Context) ([]models.NoteWithUploader, error) {
	query := `SELECT ` + noteColumns + `, u.full_name AS uploader_name
		FROM notes n
		JOIN users u ON n.uploaded_by = u.id
		WHERE n.upload_status = 'approved'
		ORDER BY n.upload_date DESC`

	var notes []models.NoteWithUploader
	if err := r.db.SelectContext(ctx, &notes, query); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Search returns approved notes whose title or subject contains the term
// as a case-insensitive substring. Order is store-default; the legacy
// endpoint never specified one.
func (r *NoteRepository) Search(ctx context.Context, term string) ([]models.NoteWithUploader, error) {
	query := `SELECT ` + noteColumns + `, u.full_name AS uploader_name
		FROM notes n
		JOIN users u ON n.uploaded_by = u.id
		WHERE n.upload_status = 'approved' AND (n.title ILIKE $1 OR n.subject ILIKE $1)`

	pattern := "%" + term + "%"
	var notes []models.NoteWithUploader
	if err := r.db.SelectContext(ctx, &notes, query, pattern); err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	return notes, nil
}

// FindByIDAndOwner returns the note only when the claimed owner uploaded
// it. sql.ErrNoRows covers both "missing" and "not yours"; callers must
// not distinguish the two.
func (r *NoteRepository) FindByIDAndOwner(ctx context.Context, noteID, userID string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes n WHERE n.id = $1 AND n.uploaded_by = $2 LIMIT 1`
	var note models.Note
	if err := r.db.GetContext(ctx, &note, query, noteID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find note by id and owner: %w", err)
	}
	return &note, nil
}

// Delete removes a note row.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM notes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check note delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListFilePaths returns every file path referenced by a note row. The
// reconciliation sweep treats files outside this set as orphans.
func (r *NoteRepository) ListFilePaths(ctx context.Context) ([]string, error) {
	const query = `SELECT file_path FROM notes`
	var paths []string
	if err := r.db.SelectContext(ctx, &paths, query); err != nil {
		return nil, fmt.Errorf("list note file paths: %w", err)
	}
	return paths, nil
}
