package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cs-study-hub/notes-api/internal/dto"
	"github.com/cs-study-hub/notes-api/internal/models"
	"github.com/cs-study-hub/notes-api/internal/service"
	appErrors "github.com/cs-study-hub/notes-api/pkg/errors"
	"github.com/cs-study-hub/notes-api/pkg/response"
)

type noteService interface {
	Upload(ctx context.Context, meta dto.UploadNoteRequest, upload service.NoteUpload) (*models.Note, error)
	List(ctx context.Context) ([]models.NoteWithUploader, error)
	Search(ctx context.Context, term string) ([]models.NoteWithUploader, error)
	Delete(ctx context.Context, noteID, userID string) error
}

// NoteHandler manages the note HTTP endpoints.
type NoteHandler struct {
	service noteService
}

// NewNoteHandler constructs the handler.
func NewNoteHandler(svc noteService) *NoteHandler {
	return &NoteHandler{service: svc}
}

// Upload godoc
// @Summary Upload a study note
// @Tags Notes
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param subject formData string true "Subject"
// @Param semester formData int true "Semester"
// @Param category formData string true "Category"
// @Param user_id formData string true "Uploader ID"
// @Param description formData string false "Description"
// @Param tags formData string false "Tags"
// @Param file formData file true "Note document"
// @Success 200 {object} dto.UploadResult
// @Failure 400 {object} response.Failure
// @Router /upload-note [post]
func (h *NoteHandler) Upload(c *gin.Context) {
	var req dto.UploadNoteRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid upload payload"))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close() //nolint:errcheck

	upload := service.NoteUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Content:  src,
	}
	if _, err := h.service.Upload(c.Request.Context(), req, upload); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.UploadResult{
		Status:  response.StatusSuccess,
		Message: "Uploaded!",
	})
}

// List godoc
// @Summary List approved notes
// @Tags Notes
// @Produce json
// @Success 200 {object} dto.NotesResult
// @Router /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if notes == nil {
		notes = []models.NoteWithUploader{}
	}

	response.JSON(c, http.StatusOK, dto.NotesResult{
		Status: response.StatusSuccess,
		Notes:  notes,
	})
}

// Search godoc
// @Summary Search approved notes by title or subject
// @Tags Notes
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} dto.SearchResult
// @Router /search [get]
func (h *NoteHandler) Search(c *gin.Context) {
	results, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if results == nil {
		results = []models.NoteWithUploader{}
	}

	response.JSON(c, http.StatusOK, dto.SearchResult{
		Status:  response.StatusSuccess,
		Results: results,
	})
}

// Delete godoc
// @Summary Delete an owned note and its stored file
// @Tags Notes
// @Produce json
// @Param note_id path string true "Note ID"
// @Param user_id query string true "Claimed owner ID"
// @Success 200 {object} dto.DeleteResult
// @Failure 403 {object} response.Failure
// @Router /delete-note/{note_id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	noteID := c.Param("note_id")
	userID := c.Query("user_id")

	if err := h.service.Delete(c.Request.Context(), noteID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.DeleteResult{Status: response.StatusSuccess})
}
