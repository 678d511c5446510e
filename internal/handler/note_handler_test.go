package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs-study-hub/notes-api/internal/dto"
	"github.com/cs-study-hub/notes-api/internal/models"
	"github.com/cs-study-hub/notes-api/internal/service"
	appErrors "github.com/cs-study-hub/notes-api/pkg/errors"
	"github.com/cs-study-hub/notes-api/pkg/response"
)

type noteServiceMock struct {
	uploadResp   *models.Note
	uploadErr    error
	uploadedMeta dto.UploadNoteRequest
	uploadedFile string
	uploadedSize int64
	listResp     []models.NoteWithUploader
	listErr      error
	searchResp   []models.NoteWithUploader
	searchErr    error
	searchTerm   string
	deleteErr    error
	deletedNote  string
	deletedUser  string
}

func (m *noteServiceMock) Upload(ctx context.Context, meta dto.UploadNoteRequest, upload service.NoteUpload) (*models.Note, error) {
	m.uploadedMeta = meta
	m.uploadedFile = upload.Filename
	m.uploadedSize = upload.Size
	if upload.Content != nil {
		_, _ = io.Copy(io.Discard, upload.Content)
	}
	return m.uploadResp, m.uploadErr
}

func (m *noteServiceMock) List(ctx context.Context) ([]models.NoteWithUploader, error) {
	return m.listResp, m.listErr
}

func (m *noteServiceMock) Search(ctx context.Context, term string) ([]models.NoteWithUploader, error) {
	m.searchTerm = term
	return m.searchResp, m.searchErr
}

func (m *noteServiceMock) Delete(ctx context.Context, noteID, userID string) error {
	m.deletedNote = noteID
	m.deletedUser = userID
	return m.deleteErr
}

func multipartUpload(t *testing.T, fields map[string]string, filename, content string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/upload-note", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req
	return w, c
}

func uploadFields() map[string]string {
	return map[string]string{
		"title":    "Graphs",
		"subject":  "Algorithms",
		"semester": "4",
		"category": "lecture",
		"user_id":  "u1",
	}
}

func TestUploadNote(t *testing.T) {
	mockSvc := &noteServiceMock{uploadResp: &models.Note{ID: "n1"}}
	handler := NewNoteHandler(mockSvc)

	w, c := multipartUpload(t, uploadFields(), "graphs.pdf", "content")
	handler.Upload(c)

	require.Equal(t, http.StatusOK, w.Code)
	var result dto.UploadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, response.StatusSuccess, result.Status)
	assert.Equal(t, "Uploaded!", result.Message)
	assert.Equal(t, "graphs.pdf", mockSvc.uploadedFile)
	assert.Equal(t, int64(len("content")), mockSvc.uploadedSize)
	assert.Equal(t, "u1", mockSvc.uploadedMeta.UserID)
	assert.Equal(t, 4, mockSvc.uploadedMeta.Semester)
}

func TestUploadNoteMissingFile(t *testing.T) {
	handler := NewNoteHandler(&noteServiceMock{})

	w, c := multipartUpload(t, uploadFields(), "", "")
	handler.Upload(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var failure response.Failure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	assert.Equal(t, response.StatusFailed, failure.Status)
}

func TestListNotes(t *testing.T) {
	mockSvc := &noteServiceMock{listResp: []models.NoteWithUploader{
		{Note: models.Note{ID: "n1", Title: "Graphs"}, UploaderName: "Alice"},
	}}
	handler := NewNoteHandler(mockSvc)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/notes", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	var result dto.NotesResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, response.StatusSuccess, result.Status)
	require.Len(t, result.Notes, 1)
	assert.Equal(t, "Alice", result.Notes[0].UploaderName)
}

func TestListNotesEmptyIsArrayNotNull(t *testing.T) {
	handler := NewNoteHandler(&noteServiceMock{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/notes", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notes":[]`)
}

func TestSearchNotes(t *testing.T) {
	mockSvc := &noteServiceMock{searchResp: []models.NoteWithUploader{
		{Note: models.Note{ID: "n1"}},
	}}
	handler := NewNoteHandler(mockSvc)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/search?q=graph", nil)
	c.Request = req

	handler.Search(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "graph", mockSvc.searchTerm)
	var result dto.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Results, 1)
}

func TestDeleteNote(t *testing.T) {
	mockSvc := &noteServiceMock{}
	handler := NewNoteHandler(mockSvc)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/delete-note/n1?user_id=u1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "note_id", Value: "n1"}}

	handler.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "n1", mockSvc.deletedNote)
	assert.Equal(t, "u1", mockSvc.deletedUser)
}

func TestDeleteNoteNotOwner(t *testing.T) {
	mockSvc := &noteServiceMock{deleteErr: appErrors.ErrNotOwner}
	handler := NewNoteHandler(mockSvc)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/delete-note/n1?user_id=intruder", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "note_id", Value: "n1"}}

	handler.Delete(c)
	require.Equal(t, http.StatusForbidden, w.Code)
	var failure response.Failure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	assert.Equal(t, response.StatusFailed, failure.Status)
	assert.Equal(t, "Not your note!", failure.Message)
}
