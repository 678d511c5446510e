package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cs-study-hub/notes-api/pkg/storage"
)

type notePathLister interface {
	ListFilePaths(ctx context.Context) ([]string, error)
}

type sweepStorage interface {
	List() ([]storage.StoredFile, error)
	Delete(filename string) error
}

// ReconcilerService implements the orphan-file cleanup policy for the
// upload saga: files in the upload directory with no notes row referencing
// them are deleted once they outlive the grace period. The grace period
// protects uploads whose insert is still in flight.
type ReconcilerService struct {
	repo        notePathLister
	storage     sweepStorage
	logger      *zap.Logger
	gracePeriod time.Duration
}

// NewReconcilerService constructs the sweeper.
func NewReconcilerService(repo notePathLister, store sweepStorage, logger *zap.Logger, gracePeriod time.Duration) *ReconcilerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gracePeriod <= 0 {
		gracePeriod = 30 * time.Minute
	}
	return &ReconcilerService{repo: repo, storage: store, logger: logger, gracePeriod: gracePeriod}
}

// Sweep runs one reconciliation pass and returns the number of orphaned
// files removed.
func (s *ReconcilerService) Sweep(ctx context.Context) (int, error) {
	referenced, err := s.repo.ListFilePaths(ctx)
	if err != nil {
		return 0, err
	}
	refSet := make(map[string]struct{}, len(referenced))
	for _, path := range referenced {
		refSet[path] = struct{}{}
	}

	files, err := s.storage.List()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-s.gracePeriod)
	removed := 0
	for _, file := range files {
		if _, ok := refSet[file.RelPath]; ok {
			continue
		}
		if file.ModTime.After(cutoff) {
			continue
		}
		if err := s.storage.Delete(file.RelPath); err != nil {
			s.logger.Warn("failed to remove orphaned file", zap.String("file", file.RelPath), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("orphan sweep completed", zap.Int("removed", removed), zap.Int("scanned", len(files)))
	}
	return removed, nil
}
