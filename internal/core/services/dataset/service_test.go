package dataset

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartfoundry/tabular-engine/internal/core/domain"
	"github.com/chartfoundry/tabular-engine/internal/core/services/detection"
	"github.com/chartfoundry/tabular-engine/internal/infrastructure/storage"
	apperrors "github.com/chartfoundry/tabular-engine/internal/pkg/errors"
)

func newTestService(t *testing.T, store *storage.LocalStorage) *Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	detector := detection.NewDetector(detection.DefaultConfig(), logger)
	return NewService(nil, detector, store, logger)
}

func TestService_ParseText(t *testing.T) {
	s := newTestService(t, nil)

	ds, err := s.ParseText(context.Background(), "sales.csv",
		"Region,Sales\nNorth,100\nSouth,200\nNorth,150\n")
	require.NoError(t, err)

	assert.NotEqual(t, "", ds.ID.String())
	assert.Equal(t, "sales.csv", ds.SourceName)
	assert.Equal(t, 3, ds.RowCount)
	assert.Equal(t, []string{"Region", "Sales"}, ds.Headers)
	assert.NotZero(t, ds.CreatedAt)

	region, found := ds.Column("Region")
	require.True(t, found)
	assert.Equal(t, domain.TypeString, region.DetectedType)
	assert.Equal(t, 2, region.UniqueValues)

	sales, found := ds.Column("Sales")
	require.True(t, found)
	assert.Equal(t, domain.TypeNumber, sales.DetectedType)
	require.NotNil(t, sales.Stats)
	assert.InDelta(t, 100.0, sales.Stats.Min, 1e-9)
	assert.InDelta(t, 200.0, sales.Stats.Max, 1e-9)
	assert.InDelta(t, 150.0, sales.Stats.Mean, 1e-9)
}

func TestService_ParseText_EmptyInput(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.ParseText(context.Background(), "empty.csv", "   ")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeEmptyInput))
}

func TestService_ParseText_HeaderOnlyFails(t *testing.T) {
	s := newTestService(t, nil)

	// zero data rows means the whole parse failed, even though the header
	// itself read fine
	_, err := s.ParseText(context.Background(), "header.csv", "Name,Value\n")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeParseFailed))
}

func TestService_ParseFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "data.tsv")
	require.NoError(t, os.WriteFile(path, []byte("A\tB\n1\tx\n2\ty\n"), 0644))

	s := newTestService(t, nil)
	ds, err := s.ParseFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "data.tsv", ds.SourceName)
	assert.Equal(t, 2, ds.RowCount)
}

func TestService_ParseFile_UnsupportedExtension(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.ParseFile(context.Background(), "/tmp/data.parquet")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnsupportedFormat))
}

func TestService_ParseUpload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	store, err := storage.NewLocalStorage(&storage.LocalStorageConfig{
		BasePath: t.TempDir(),
	}, logger)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.SaveUpload(ctx, "up-1", "sales.csv",
		bytes.NewReader([]byte("Region,Sales\nNorth,100\n")))
	require.NoError(t, err)

	s := newTestService(t, store)
	ds, err := s.ParseUpload(ctx, "up-1", "sales.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, ds.RowCount)
}

func TestService_ParseUpload_NoStorage(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.ParseUpload(context.Background(), "up-1", "sales.csv")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInternal))
}

func TestService_ConfirmColumnType(t *testing.T) {
	s := newTestService(t, nil)

	ds, err := s.ParseText(context.Background(), "ids.csv", "ID\n001\n002\n003\n")
	require.NoError(t, err)

	col, found := ds.Column("ID")
	require.True(t, found)
	require.Equal(t, domain.TypeNumber, col.DetectedType)

	// external actor decides the IDs are labels, not quantities
	require.NoError(t, s.ConfirmColumnType(ds, "ID", domain.TypeString))

	col, _ = ds.Column("ID")
	assert.Equal(t, domain.TypeString, col.ConfirmedType)
	assert.Equal(t, domain.TypeNumber, col.DetectedType, "detected type is never rewritten")
}

func TestService_ConfirmColumnType_Invalid(t *testing.T) {
	s := newTestService(t, nil)

	ds, err := s.ParseText(context.Background(), "x.csv", "A\n1\n")
	require.NoError(t, err)

	err = s.ConfirmColumnType(ds, "A", domain.ColumnType("decimal"))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidType))

	err = s.ConfirmColumnType(ds, "Nope", domain.TypeString)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnknownColumn))
}

func TestService_SnapshotsAreIndependent(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	ds1, err := s.ParseText(ctx, "a.csv", "A\n1\n")
	require.NoError(t, err)
	ds2, err := s.ParseText(ctx, "a.csv", "A\n1\n")
	require.NoError(t, err)

	assert.NotEqual(t, ds1.ID, ds2.ID, "each parse produces a new snapshot")

	require.NoError(t, s.ConfirmColumnType(ds1, "A", domain.TypeString))
	col2, _ := ds2.Column("A")
	assert.Equal(t, domain.TypeNumber, col2.ConfirmedType)
}
