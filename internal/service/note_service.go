package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cs-study-hub/notes-api/internal/dto"
	"github.com/cs-study-hub/notes-api/internal/models"
	appErrors "github.com/cs-study-hub/notes-api/pkg/errors"
)

// approvedNotesCacheKey holds the cached GET /notes payload.
const approvedNotesCacheKey = "notes:approved"

type noteStore interface {
	Create(ctx context.Context, note *models.Note) error
	ListApproved(ctx context.Context) ([]models.NoteWithUploader, error)
	Search(ctx context.Context, term string) ([]models.NoteWithUploader, error)
	FindByIDAndOwner(ctx context.Context, noteID, userID string) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

type noteFileStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

type listCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type noteMetrics interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	IncNoteUploaded()
	IncNoteDeleted()
}

// NoteUpload carries the file stream and its submitted metadata.
type NoteUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// NoteServiceConfig tunes upload validation and listing cache behaviour.
type NoteServiceConfig struct {
	MaxFileSize int64
	CacheTTL    time.Duration
}

// NoteService manages note metadata, file storage IO, and the listing cache.
type NoteService struct {
	repo      noteStore
	storage   noteFileStorage
	cache     listCache
	metrics   noteMetrics
	validator *validator.Validate
	logger    *zap.Logger
	cfg       NoteServiceConfig
}

// NewNoteService constructs the service with defaults. cache and metrics
// may be nil; the service degrades to uncached, unobserved operation.
func NewNoteService(repo noteStore, storage noteFileStorage, cache listCache, metrics noteMetrics, validate *validator.Validate, logger *zap.Logger, cfg NoteServiceConfig) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 25 * 1024 * 1024
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &NoteService{
		repo:      repo,
		storage:   storage,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// Upload runs the two-step saga: persist the file, then the metadata row.
// There is no compensating delete when the insert fails; the orphaned
// file stays on disk until the reconciliation sweep reclaims it.
func (s *NoteService) Upload(ctx context.Context, meta dto.UploadNoteRequest, upload NoteUpload) (*models.Note, error) {
	if err := s.validator.Struct(meta); err != nil {
		return nil, appErrors.WrapFrom(appErrors.ErrValidation, err, "invalid upload payload")
	}
	if upload.Content == nil || upload.Size <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	if upload.Size > s.cfg.MaxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes limit", s.cfg.MaxFileSize))
	}

	path, err := s.storage.SaveStream(generateFilename(upload.Filename), upload.Content)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store note file")
	}

	note := &models.Note{
		Title:        meta.Title,
		Subject:      meta.Subject,
		Semester:     meta.Semester,
		Category:     meta.Category,
		FilePath:     path,
		FileSize:     0,
		FileType:     models.DefaultFileType,
		Description:  meta.Description,
		Tags:         meta.Tags,
		UploadedBy:   meta.UserID,
		UploadStatus: models.UploadApproved,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		s.logger.Warn("note insert failed, file left for reconciliation sweep",
			zap.String("file_path", path), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create note metadata")
	}

	s.invalidateListCache(ctx)
	if s.metrics != nil {
		s.metrics.IncNoteUploaded()
	}
	return note, nil
}

// List returns approved notes with uploader names, most recent first,
// consulting the Redis listing cache before the store.
func (s *NoteService) List(ctx context.Context) ([]models.NoteWithUploader, error) {
	if s.cache != nil {
		start := time.Now()
		var cached []models.NoteWithUploader
		err := s.cache.Get(ctx, approvedNotesCacheKey, &cached)
		if err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true, time.Since(start))
			}
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("notes cache lookup failed", zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false, time.Since(start))
		}
	}

	notes, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notes")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, approvedNotesCacheKey, notes, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("notes cache write failed", zap.Error(err))
		}
	}
	return notes, nil
}

// Search returns approved notes matching the term in title or subject.
// Empty or very short terms produce a broad match, never an error.
func (s *NoteService) Search(ctx context.Context, term string) ([]models.NoteWithUploader, error) {
	notes, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search notes")
	}
	return notes, nil
}

// Delete removes a note owned by the claimed user: file first, then row.
// A missing ownership match is reported identically to a missing note.
func (s *NoteService) Delete(ctx context.Context, noteID, userID string) error {
	if noteID == "" || userID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "note id and user id are required")
	}

	note, err := s.repo.FindByIDAndOwner(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotOwner
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load note")
	}

	if err := s.storage.Delete(note.FilePath); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete note file")
	}

	if err := s.repo.Delete(ctx, noteID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete note")
	}

	s.invalidateListCache(ctx)
	if s.metrics != nil {
		s.metrics.IncNoteDeleted()
	}
	return nil
}

func (s *NoteService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, approvedNotesCacheKey); err != nil {
		s.logger.Warn("notes cache invalidation failed", zap.Error(err))
	}
}

// generateFilename prefixes the original name with a second-resolution
// timestamp plus a random suffix. The timestamp alone collides for
// same-second uploads of the same filename; the suffix closes that
// window.
func generateFilename(original string) string {
	base := filepath.Base(original)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "upload.bin"
	}
	return fmt.Sprintf("%s_%s_%s", time.Now().Format("20060102_150405"), randomSuffix(), base)
}

func randomSuffix() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
