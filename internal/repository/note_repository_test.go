package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs-study-hub/notes-api/internal/models"
)

func noteRows(withUploader bool) *sqlmock.Rows {
	cols := []string{"id", "title", "subject", "semester", "category", "file_path", "file_size",
		"file_type", "description", "tags", "uploaded_by", "upload_status", "upload_date"}
	if withUploader {
		cols = append(cols, "uploader_name")
	}
	now := time.Now()
	rows := sqlmock.NewRows(cols)
	if withUploader {
		rows.AddRow("n1", "Graphs", "Algorithms", 4, "lecture", "20240101_120000_ab12cd34_graphs.pdf", int64(0),
			"pdf", nil, nil, "u1", string(models.UploadApproved), now, "Alice")
	} else {
		rows.AddRow("n1", "Graphs", "Algorithms", 4, "lecture", "20240101_120000_ab12cd34_graphs.pdf", int64(0),
			"pdf", nil, nil, "u1", string(models.UploadApproved), now)
	}
	return rows
}

func TestNoteCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectExec("INSERT INTO notes").WillReturnResult(sqlmock.NewResult(1, 1))

	note := &models.Note{
		Title:        "Graphs",
		Subject:      "Algorithms",
		Semester:     4,
		Category:     "lecture",
		FilePath:     "20240101_120000_ab12cd34_graphs.pdf",
		FileType:     models.DefaultFileType,
		UploadedBy:   "u1",
		UploadStatus: models.UploadApproved,
	}
	err := repo.Create(context.Background(), note)
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.False(t, note.UploadDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListApproved(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE n.upload_status = 'approved'")).
		WillReturnRows(noteRows(true))

	notes, err := repo.ListApproved(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Alice", notes[0].UploaderName)
	assert.Equal(t, int64(0), notes[0].FileSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchWrapsTermInWildcards(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("n.title ILIKE $1 OR n.subject ILIKE $1")).
		WithArgs("%graph%").
		WillReturnRows(noteRows(true))

	notes, err := repo.Search(context.Background(), "graph")
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEmptyTermMatchesAll(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("n.title ILIKE $1 OR n.subject ILIKE $1")).
		WithArgs("%%").
		WillReturnRows(noteRows(true))

	notes, err := repo.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDAndOwner(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE n.id = $1 AND n.uploaded_by = $2 LIMIT 1")).
		WithArgs("n1", "u1").
		WillReturnRows(noteRows(false))

	note, err := repo.FindByIDAndOwner(context.Background(), "n1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "n1", note.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDAndOwnerMismatch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE n.id = $1 AND n.uploaded_by = $2 LIMIT 1")).
		WithArgs("n1", "intruder").
		WillReturnError(sql.ErrNoRows)

	note, err := repo.FindByIDAndOwner(context.Background(), "n1", "intruder")
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notes WHERE id = $1")).
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "n1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notes WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFilePaths(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	rows := sqlmock.NewRows([]string{"file_path"}).
		AddRow("20240101_120000_ab12cd34_graphs.pdf").
		AddRow("20240102_090000_ef56ab78_trees.pdf")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT file_path FROM notes")).
		WillReturnRows(rows)

	paths, err := repo.ListFilePaths(context.Background())
	require.NoError(t, err)
	assert.Len(t, paths, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
