package storage

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) (*LocalStorage, string) {
	tempDir := t.TempDir()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // only errors in tests
	}))

	store, err := NewLocalStorage(&LocalStorageConfig{
		BasePath: tempDir,
	}, logger)
	require.NoError(t, err)

	return store, tempDir
}

func TestLocalStorage_SaveUpload(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	fileID := "upload-123"
	filename := "sales.csv"
	content := []byte("Region,Sales\nNorth,100\n")

	metadata, err := store.SaveUpload(ctx, fileID, filename, bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, fileID, metadata.ID)
	assert.Equal(t, filename, metadata.OriginalName)
	assert.Equal(t, int64(len(content)), metadata.Size)
	assert.NotEmpty(t, metadata.Hash)
	assert.Equal(t, "text/csv", metadata.ContentType)
	assert.NotZero(t, metadata.CreatedAt)

	_, err = os.Stat(metadata.StoredPath)
	assert.NoError(t, err)
}

func TestLocalStorage_GetUpload(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	content := []byte("A;B\n1;2\n")
	_, err := store.SaveUpload(ctx, "upload-456", "data.txt", bytes.NewReader(content))
	require.NoError(t, err)

	reader, err := store.GetUpload(ctx, "upload-456", "data.txt")
	require.NoError(t, err)
	defer reader.Close()

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(reader)
	require.NoError(t, err)
	assert.Equal(t, content, buf.Bytes())
}

func TestLocalStorage_GetUpload_NotFound(t *testing.T) {
	store, _ := setupTestStorage(t)

	_, err := store.GetUpload(context.Background(), "missing", "nope.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLocalStorage_DeleteUpload(t *testing.T) {
	store, basePath := setupTestStorage(t)
	ctx := context.Background()

	_, err := store.SaveUpload(ctx, "delete-me", "test.csv", bytes.NewReader([]byte("a,b\n1,2\n")))
	require.NoError(t, err)

	uploadDir := filepath.Join(basePath, "uploads", "delete-me")
	_, err = os.Stat(uploadDir)
	require.NoError(t, err)

	require.NoError(t, store.DeleteUpload(ctx, "delete-me"))

	_, err = os.Stat(uploadDir)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_CleanupOldFiles(t *testing.T) {
	store, basePath := setupTestStorage(t)
	ctx := context.Background()

	oldDir := filepath.Join(basePath, "uploads", "old-upload")
	require.NoError(t, os.MkdirAll(oldDir, 0755))
	twoHoursAgo := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(oldDir, twoHoursAgo, twoHoursAgo))

	recentDir := filepath.Join(basePath, "uploads", "recent-upload")
	require.NoError(t, os.MkdirAll(recentDir, 0755))

	require.NoError(t, store.CleanupOldFiles(ctx, time.Hour))

	_, err := os.Stat(oldDir)
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(recentDir)
	assert.NoError(t, err)
}

func TestLocalStorage_HashConsistency(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()

	content := []byte("Region,Sales\nNorth,100\n")

	meta1, err := store.SaveUpload(ctx, "upload-1", "a.csv", bytes.NewReader(content))
	require.NoError(t, err)

	meta2, err := store.SaveUpload(ctx, "upload-2", "b.csv", bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, meta1.Hash, meta2.Hash)
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
	}{
		{"file.csv", "text/csv"},
		{"file.tsv", "text/tab-separated-values"},
		{"file.txt", "text/plain"},
		{"file.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"file.xls", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"file.unknown", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.contentType, getContentType(tt.filename))
		})
	}
}
