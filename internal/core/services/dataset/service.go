package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/chartfoundry/tabular-engine/internal/core/domain"
	"github.com/chartfoundry/tabular-engine/internal/core/services/detection"
	"github.com/chartfoundry/tabular-engine/internal/infrastructure/parsers"
	"github.com/chartfoundry/tabular-engine/internal/infrastructure/storage"
	apperrors "github.com/chartfoundry/tabular-engine/internal/pkg/errors"
)

// Service orchestrates one ingestion pass: acquire raw text, parse it into
// rows, detect column types, and assemble an immutable dataset snapshot.
// Each call is independent; nothing is cached between snapshots.
type Service struct {
	factory  *parsers.ParserFactory
	text     *parsers.DelimitedParser
	detector *detection.Detector
	storage  *storage.LocalStorage
	logger   *slog.Logger
}

// NewService creates a dataset service. Storage may be nil when ingestion
// only ever happens from raw text or local paths.
func NewService(parserConfig *parsers.ParserConfig, detector *detection.Detector, store *storage.LocalStorage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		factory:  parsers.NewParserFactory(parserConfig),
		text:     parsers.NewDelimitedParser(parserConfig),
		detector: detector,
		storage:  store,
		logger:   logger,
	}
}

// ParseText builds a snapshot from raw delimited text
func (s *Service) ParseText(ctx context.Context, sourceName, text string) (*domain.Dataset, error) {
	result, err := s.text.ParseText(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.buildSnapshot(sourceName, result)
}

// ParseFile builds a snapshot from a file on disk, choosing the parser by
// extension (.csv/.tsv/.txt directly, .xlsx/.xls through conversion).
func (s *Service) ParseFile(ctx context.Context, filePath string) (*domain.Dataset, error) {
	result, err := s.factory.ParseFile(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return s.buildSnapshot(filepath.Base(filePath), result)
}

// ParseUpload builds a snapshot from a previously stored upload
func (s *Service) ParseUpload(ctx context.Context, fileID, filename string) (*domain.Dataset, error) {
	if s.storage == nil {
		return nil, apperrors.Internal("no upload storage configured")
	}

	reader, err := s.storage.GetUpload(ctx, fileID, filename)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "failed to read upload")
	}
	defer reader.Close()

	parser, err := s.factory.GetParserForFile(filename)
	if err != nil {
		return nil, err
	}

	result, err := parser.ParseStream(ctx, reader)
	if err != nil {
		return nil, err
	}
	return s.buildSnapshot(filename, result)
}

// ConfirmColumnType overrides a column's confirmed type on a snapshot's
// metadata. The detected type and the rows themselves are left untouched.
func (s *Service) ConfirmColumnType(ds *domain.Dataset, columnName string, t domain.ColumnType) error {
	if !domain.IsValidColumnType(t) {
		return apperrors.InvalidType(string(t))
	}

	col, found := ds.Column(columnName)
	if !found {
		return apperrors.UnknownColumn(columnName)
	}

	col.ConfirmedType = t
	return nil
}

// buildSnapshot runs type detection and assembles the dataset. A parse that
// produced zero rows is treated as failed even when its row-level errors were
// individually non-fatal.
func (s *Service) buildSnapshot(sourceName string, result *parsers.ParseResult) (*domain.Dataset, error) {
	if result.RowCount == 0 {
		err := apperrors.ParseFailed("no rows could be parsed")
		if len(result.Errors) > 0 {
			err = err.WithDetails("row_errors", result.Errors)
		}
		return nil, err
	}

	columns := s.detector.DetectColumns(result.Rows, result.Headers)

	ds := &domain.Dataset{
		ID:          uuid.New(),
		SourceName:  sourceName,
		Headers:     result.Headers,
		Rows:        result.Rows,
		Columns:     columns,
		RowCount:    result.RowCount,
		SkippedRows: result.SkippedRows,
		ParseErrors: result.Errors,
		CreatedAt:   time.Now(),
	}

	s.logger.Info("dataset snapshot created",
		slog.String("dataset_id", ds.ID.String()),
		slog.String("source", sourceName),
		slog.Int("rows", ds.RowCount),
		slog.Int("columns", len(ds.Columns)),
		slog.Int("parse_errors", len(ds.ParseErrors)))

	return ds, nil
}
