package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs-study-hub/notes-api/pkg/response"
	"github.com/cs-study-hub/notes-api/pkg/storage"
)

func serveFile(t *testing.T, store *storage.LocalStorage, filename string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewFileHandler(store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/files/"+filename, nil)
	c.Request = req
	c.Params = gin.Params{{Key: "filename", Value: filename}}

	handler.Serve(c)
	return w
}

func TestServeStoredFile(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	_, err = store.SaveStream("notes.pdf", bytes.NewBufferString("content"))
	require.NoError(t, err)

	w := serveFile(t, store, "notes.pdf")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "content", w.Body.String())
}

func TestServeMissingFile(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	w := serveFile(t, store, "never-existed.pdf")
	require.Equal(t, http.StatusNotFound, w.Code)
	var failure response.Failure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
	assert.Equal(t, response.StatusFailed, failure.Status)
}

func TestServeRejectsTraversal(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	w := serveFile(t, store, "../secret")
	require.Equal(t, http.StatusNotFound, w.Code)
}
