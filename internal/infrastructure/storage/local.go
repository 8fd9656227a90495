package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage holds uploaded source files on the local filesystem until the
// engine acquires their raw text. It is the file-acquisition collaborator:
// the engine itself never touches the filesystem.
type LocalStorage struct {
	basePath string
	logger   *slog.Logger
}

// LocalStorageConfig configures local storage
type LocalStorageConfig struct {
	BasePath string // base directory for uploads (e.g., "/tmp/uploads")
}

// FileMetadata contains information about stored files
type FileMetadata struct {
	ID           string
	OriginalName string
	StoredPath   string
	Size         int64
	Hash         string
	ContentType  string
	CreatedAt    time.Time
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(cfg *LocalStorageConfig, logger *slog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LocalStorage{
		basePath: cfg.BasePath,
		logger:   logger,
	}, nil
}

// SaveUpload saves an uploaded file and returns metadata
func (s *LocalStorage) SaveUpload(ctx context.Context, fileID string, filename string, reader io.Reader) (*FileMetadata, error) {
	uploadDir := filepath.Join(s.basePath, "uploads", fileID)
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	safeName := filepath.Base(filename)
	destPath := filepath.Join(uploadDir, safeName)

	destFile, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	// Calculate hash while copying
	hash := sha256.New()
	size, err := io.Copy(io.MultiWriter(destFile, hash), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}

	metadata := &FileMetadata{
		ID:           fileID,
		OriginalName: safeName,
		StoredPath:   destPath,
		Size:         size,
		Hash:         hex.EncodeToString(hash.Sum(nil)),
		ContentType:  getContentType(safeName),
		CreatedAt:    time.Now(),
	}

	s.logger.Info("file uploaded successfully",
		slog.String("file_id", fileID),
		slog.String("filename", safeName),
		slog.Int64("size", size),
		slog.String("hash", metadata.Hash))

	return metadata, nil
}

// GetUpload retrieves an uploaded file by ID
func (s *LocalStorage) GetUpload(ctx context.Context, fileID string, filename string) (io.ReadCloser, error) {
	filePath := filepath.Join(s.basePath, "uploads", fileID, filepath.Base(filename))

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", fileID)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// DeleteUpload removes all files associated with an upload
func (s *LocalStorage) DeleteUpload(ctx context.Context, fileID string) error {
	uploadDir := filepath.Join(s.basePath, "uploads", fileID)
	if err := os.RemoveAll(uploadDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete upload directory: %w", err)
	}

	s.logger.Info("upload deleted",
		slog.String("file_id", fileID))

	return nil
}

// CleanupOldFiles removes uploads older than the specified duration
func (s *LocalStorage) CleanupOldFiles(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)

	uploadsDir := filepath.Join(s.basePath, "uploads")
	entries, err := os.ReadDir(uploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read uploads directory: %w", err)
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(filepath.Join(uploadsDir, entry.Name())); err != nil {
				return fmt.Errorf("failed to remove old upload %s: %w", entry.Name(), err)
			}
		}
	}

	s.logger.Info("cleanup completed",
		slog.Duration("older_than", olderThan))

	return nil
}

// getContentType maps a filename to its MIME type
func getContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "text/csv"
	case ".tsv":
		return "text/tab-separated-values"
	case ".txt":
		return "text/plain"
	case ".xlsx", ".xls":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
