package dto

import "github.com/cs-study-hub/notes-api/internal/models"

// UploadNoteRequest contains the form fields submitted alongside a note
// file. user_id is caller-supplied; there is no session tying it to a
// verified identity (known gap, documented in DESIGN.md).
type UploadNoteRequest struct {
	Title       string  `form:"title" validate:"required"`
	Subject     string  `form:"subject" validate:"required"`
	Semester    int     `form:"semester" validate:"required"`
	Category    string  `form:"category" validate:"required"`
	UserID      string  `form:"user_id" validate:"required"`
	Description *string `form:"description"`
	Tags        *string `form:"tags"`
}

// UploadResult is the POST /upload-note success payload.
type UploadResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NotesResult is the GET /notes payload.
type NotesResult struct {
	Status string                    `json:"status"`
	Notes  []models.NoteWithUploader `json:"notes"`
}

// SearchResult is the GET /search payload.
type SearchResult struct {
	Status  string                    `json:"status"`
	Results []models.NoteWithUploader `json:"results"`
}

// DeleteResult is the DELETE /delete-note success payload.
type DeleteResult struct {
	Status string `json:"status"`
}
