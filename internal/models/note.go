package models

import "time"

// UploadStatus is the moderation state of a note. Only "approved" is
// reachable today; the field is a latent extension point carried over
// from the schema.
type UploadStatus string

const (
	UploadApproved UploadStatus = "approved"
)

// DefaultFileType is recorded for every upload regardless of the actual
// content, matching the legacy contract.
const DefaultFileType = "pdf"

// Note is one uploaded study document's metadata row. FileSize is always
// persisted as 0: the legacy backend never measured it and clients
// depend on the field existing, not on its value.
type Note struct {
	ID           string       `db:"id" json:"id"`
	Title        string       `db:"title" json:"title"`
	Subject      string       `db:"subject" json:"subject"`
	Semester     int          `db:"semester" json:"semester"`
	Category     string       `db:"category" json:"category"`
	FilePath     string       `db:"file_path" json:"file_path"`
	FileSize     int64        `db:"file_size" json:"file_size"`
	FileType     string       `db:"file_type" json:"file_type"`
	Description  *string      `db:"description" json:"description"`
	Tags         *string      `db:"tags" json:"tags"`
	UploadedBy   string       `db:"uploaded_by" json:"uploaded_by"`
	UploadStatus UploadStatus `db:"upload_status" json:"upload_status"`
	UploadDate   time.Time    `db:"upload_date" json:"upload_date"`
}

// NoteWithUploader joins a note with its uploader's display name for
// listing and search responses.
type NoteWithUploader struct {
	Note
	UploaderName string `db:"uploader_name" json:"uploader_name"`
}
