package curriculos

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/metrics"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/storage/object"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/telemetry"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/util"
)

// Service owns résumé submission, retrieval and removal. Submissions
// replace: the new blob is stored first, then the record is swapped, and
// only then is the old blob removed, so a reader never sees a record that
// points at a missing file.
type Service struct {
	Repo     Repo
	Store    object.ObjectStore
	MaxBytes int64
}

func NewService(repo Repo, store object.ObjectStore, maxBytes int64) *Service {
	return &Service{Repo: repo, Store: store, MaxBytes: maxBytes}
}

// Submit validates and stores a résumé upload for the user.
func (s *Service) Submit(ctx context.Context, userID, fileName, declaredType string, declaredSize int64, r io.Reader) (Curriculo, error) {
	cleanName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Curriculo{}, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if !strings.EqualFold(filepath.Ext(cleanName), ".pdf") {
		return Curriculo{}, fmt.Errorf("%w: only PDF files are accepted", ErrValidation)
	}
	if err := checkDeclaredType(declaredType); err != nil {
		return Curriculo{}, err
	}
	if declaredSize <= 0 {
		return Curriculo{}, fmt.Errorf("%w: empty file", ErrValidation)
	}
	if declaredSize > s.MaxBytes {
		return Curriculo{}, ErrTooLarge
	}

	old, err := s.Repo.GetByUser(ctx, userID)
	hadOld := err == nil
	if err != nil && err != ErrNotFound {
		return Curriculo{}, err
	}

	// Cap the reader one byte past the limit so a lying Content-Length
	// cannot sneak an oversized body through.
	limited := io.LimitReader(r, s.MaxBytes+1)
	storageKey, sizeBytes, sniffedType, err := s.Store.Save(ctx, userID, cleanName, limited)
	if err != nil {
		return Curriculo{}, err
	}
	if sizeBytes > s.MaxBytes {
		s.discard(ctx, storageKey)
		return Curriculo{}, ErrTooLarge
	}

	stored, err := s.Repo.Upsert(ctx, Curriculo{
		ID:       uuid.NewString(),
		UserID:   userID,
		FileName: cleanName,
		FilePath: storageKey,
		FileSize: sizeBytes,
	})
	if err != nil {
		s.discard(ctx, storageKey)
		return Curriculo{}, err
	}

	if hadOld && old.FilePath != stored.FilePath {
		s.discard(ctx, old.FilePath)
	}

	metrics.IncCurriculoUpload()
	telemetry.Info("curriculo.submitted", map[string]any{
		"userId":      userID,
		"filePath":    stored.FilePath,
		"sizeB":       stored.FileSize,
		"sniffedType": sniffedType,
		"replaced":    hadOld,
	})
	return stored, nil
}

// checkDeclaredType rejects uploads whose part declares a type other than
// PDF. An empty or generic declaration falls through to the extension
// check: content sniffing cannot tell a real PDF from a plain-text one, so
// the declared type is the strongest signal available.
func checkDeclaredType(declaredType string) error {
	declaredType = strings.TrimSpace(declaredType)
	if declaredType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(declaredType)
	if err != nil {
		return fmt.Errorf("%w: invalid content type", ErrValidation)
	}
	switch mediaType {
	case "application/pdf", "application/octet-stream":
		return nil
	}
	return fmt.Errorf("%w: only PDF files are accepted", ErrValidation)
}

// Current returns the user's résumé record.
func (s *Service) Current(ctx context.Context, userID string) (Curriculo, error) {
	return s.Repo.GetByUser(ctx, userID)
}

// ByPath returns the user's résumé record only when it matches the given
// storage path. It never resolves another user's file.
func (s *Service) ByPath(ctx context.Context, userID, filePath string) (Curriculo, error) {
	return s.Repo.GetByPath(ctx, userID, filePath)
}

// Download returns the record together with the stored file contents.
// The caller must close the reader.
func (s *Service) Download(ctx context.Context, userID string) (Curriculo, io.ReadCloser, error) {
	curriculo, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		return Curriculo{}, nil, err
	}
	rc, err := s.Store.Open(ctx, curriculo.FilePath)
	if err != nil {
		return Curriculo{}, nil, err
	}
	return curriculo, rc, nil
}

// Remove deletes the user's résumé. The record goes first so no reader can
// resolve a path whose blob is already gone; removing an absent résumé is
// not an error.
func (s *Service) Remove(ctx context.Context, userID string) error {
	curriculo, err := s.Repo.GetByUser(ctx, userID)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteByUser(ctx, userID); err != nil && err != ErrNotFound {
		return err
	}
	s.discard(ctx, curriculo.FilePath)

	telemetry.Info("curriculo.removed", map[string]any{
		"userId":   userID,
		"filePath": curriculo.FilePath,
	})
	return nil
}

// discard deletes a blob best-effort. Orphaned blobs are harmless; a lost
// record pointing at nothing is not.
func (s *Service) discard(ctx context.Context, storageKey string) {
	if err := s.Store.Delete(ctx, storageKey); err != nil {
		telemetry.Error("curriculo.blob_delete_failed", map[string]any{
			"filePath": storageKey,
			"error":    err.Error(),
		})
	}
}
