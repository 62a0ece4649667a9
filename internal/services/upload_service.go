package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxUploadSize caps header and question images at 5MB.
const maxUploadSize = 5 << 20

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type uploadService struct {
	uploadDir string
	baseURL   string
	logger    *slog.Logger
}

func NewUploadService(uploadDir, baseURL string, logger *slog.Logger) UploadService {
	return &uploadService{
		uploadDir: uploadDir,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// Save stores an uploaded image on disk under a fresh name and returns the
// public URL clients embed in forms.
func (s *uploadService) Save(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if len(data) > maxUploadSize {
		return nil, fmt.Errorf("file exceeds %d bytes", maxUploadSize)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Info("File uploaded", "filename", name, "size", len(data))

	return &UploadResult{
		URL:      fmt.Sprintf("%s/uploads/%s", strings.TrimRight(s.baseURL, "/"), name),
		Filename: name,
		Size:     int64(len(data)),
	}, nil
}
