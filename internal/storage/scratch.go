package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// ScratchStore holds uploads between receipt and deletion. File names are
// uuid based so concurrent requests never collide.
type ScratchStore struct {
	dir    string
	logger *zap.Logger
}

// NewScratchStore creates dir if needed
func NewScratchStore(dir string, logger *zap.Logger) (*ScratchStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	logger.Info("scratch directory ready", zap.String("dir", dir))
	return &ScratchStore{dir: dir, logger: logger}, nil
}

// Dir returns the scratch directory
func (s *ScratchStore) Dir() string {
	return s.dir
}

// NewPath reserves a unique path keeping the original extension
func (s *ScratchStore) NewPath(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return filepath.Join(s.dir, uuid.New().String()+ext)
}

// Save copies r into a new scratch file
func (s *ScratchStore) Save(r io.Reader, originalName string) (*types.UploadedAudio, error) {
	path := s.NewPath(originalName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}

	n, err := io.Copy(f, r)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		s.Remove(path)
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}

	return &types.UploadedAudio{
		Path:         path,
		OriginalName: originalName,
		Extension:    strings.TrimPrefix(filepath.Ext(path), "."),
		Size:         n,
	}, nil
}

// Remove deletes a scratch file; missing files are not an error
func (s *ScratchStore) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove scratch file", zap.String("path", path), zap.Error(err))
		return
	}
	s.logger.Debug("scratch file removed", zap.String("file", filepath.Base(path)))
}
