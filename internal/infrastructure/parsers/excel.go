package parsers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/chartfoundry/tabular-engine/internal/pkg/errors"
)

// ExcelParser converts the first sheet of a spreadsheet (.xlsx, .xls) to an
// equivalent delimited-text representation and hands it to the same row
// parser used for plain text. The conversion is atomic: it either produces
// valid text or a single wrapped error, never partial rows.
type ExcelParser struct {
	config    *ParserConfig
	delimited *DelimitedParser
}

// NewExcelParser creates a new spreadsheet parser
func NewExcelParser(config *ParserConfig) *ExcelParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	return &ExcelParser{
		config:    config,
		delimited: NewDelimitedParser(config),
	}
}

// Parse reads and parses a spreadsheet file from disk
func (p *ExcelParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	if p.config.MaxFileSize > 0 {
		stat, err := os.Stat(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		if stat.Size() > p.config.MaxFileSize {
			return nil, apperrors.FileTooLarge(p.config.MaxFileSize / (1024 * 1024))
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidFile, "failed to open spreadsheet")
	}
	defer file.Close()

	return p.ParseStream(ctx, file)
}

// ParseStream converts spreadsheet data from an io.Reader and parses it
func (p *ExcelParser) ParseStream(ctx context.Context, reader io.Reader) (*ParseResult, error) {
	text, err := ConvertToDelimitedText(reader)
	if err != nil {
		return nil, apperrors.FileConversion(err)
	}

	result, err := p.delimited.ParseText(ctx, text)
	if err != nil {
		return nil, err
	}
	result.Format = "spreadsheet"
	return result, nil
}

// SupportedFormats returns the file extensions this parser supports
func (p *ExcelParser) SupportedFormats() []string {
	return []string{".xlsx", ".xls"}
}

// ConvertToDelimitedText renders the first sheet of a spreadsheet as
// comma-delimited text.
func ConvertToDelimitedText(reader io.Reader) (string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return "", fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return "", fmt.Errorf("no sheets found in spreadsheet")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write delimited row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush delimited text: %w", err)
	}

	return buf.String(), nil
}
