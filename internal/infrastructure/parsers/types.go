package parsers

import (
	"context"
	"io"

	"github.com/chartfoundry/tabular-engine/internal/core/domain"
)

// ParseResult carries the rows and headers of one parse attempt plus its
// row-level errors. Row-level errors are non-fatal; a zero row count means
// the caller must treat the whole parse as failed.
type ParseResult struct {
	Rows        []domain.Row
	Headers     []string
	RowCount    int
	SkippedRows int
	Errors      []string
	Format      string
	Delimiter   rune
}

// FileParser is the interface all parsers must implement
type FileParser interface {
	// Parse reads and parses the file from the given path
	Parse(ctx context.Context, filePath string) (*ParseResult, error)

	// ParseStream reads and parses from an io.Reader
	ParseStream(ctx context.Context, reader io.Reader) (*ParseResult, error)

	// SupportedFormats returns the file extensions this parser supports
	SupportedFormats() []string
}

// ParserConfig holds configuration for all parsers
type ParserConfig struct {
	// SkipEmptyRows determines if fully blank rows should be skipped
	SkipEmptyRows bool

	// TrimWhitespace determines if headers and cell values should be trimmed
	TrimWhitespace bool

	// MaxFileSize is the maximum file size in bytes (0 = unlimited)
	MaxFileSize int64
}

// DefaultParserConfig returns sensible defaults
func DefaultParserConfig() *ParserConfig {
	return &ParserConfig{
		SkipEmptyRows:  true,
		TrimWhitespace: true,
		MaxFileSize:    100 * 1024 * 1024, // 100 MB
	}
}
