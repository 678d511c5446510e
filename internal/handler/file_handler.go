package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/cs-study-hub/notes-api/pkg/errors"
	"github.com/cs-study-hub/notes-api/pkg/response"
)

type fileStorage interface {
	Open(filename string) (*os.File, error)
}

// FileHandler serves stored note files. Files are public; the mobile
// client links to them directly.
type FileHandler struct {
	storage fileStorage
}

// NewFileHandler constructs the handler.
func NewFileHandler(store fileStorage) *FileHandler {
	return &FileHandler{storage: store}
}

// Serve godoc
// @Summary Download a stored note file
// @Tags Notes
// @Param filename path string true "Stored filename"
// @Success 200 {file} binary
// @Failure 404 {object} response.Failure
// @Router /files/{filename} [get]
func (h *FileHandler) Serve(c *gin.Context) {
	name := c.Param("filename")
	if name == "" || strings.Contains(name, "..") {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
		return
	}

	file, err := h.storage.Open(name)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
		return
	}

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
}
