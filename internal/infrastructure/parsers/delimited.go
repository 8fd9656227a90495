package parsers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/chartfoundry/tabular-engine/internal/core/domain"
	apperrors "github.com/chartfoundry/tabular-engine/internal/pkg/errors"
)

// delimiter candidates in priority order for ties
var delimiterCandidates = []rune{',', '\t', ';'}

// DelimitedParser parses delimited text (.csv, .tsv, .txt) with an
// auto-detected field delimiter. The first row is the header row; cells are
// never coerced, every value stays a raw string or absent.
type DelimitedParser struct {
	config *ParserConfig
}

// NewDelimitedParser creates a new delimited-text parser
func NewDelimitedParser(config *ParserConfig) *DelimitedParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	return &DelimitedParser{
		config: config,
	}
}

// Parse reads and parses a delimited text file from disk
func (p *DelimitedParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidFile, "failed to open file")
	}
	defer file.Close()

	if p.config.MaxFileSize > 0 {
		stat, err := file.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		if stat.Size() > p.config.MaxFileSize {
			return nil, apperrors.FileTooLarge(p.config.MaxFileSize / (1024 * 1024))
		}
	}

	return p.ParseStream(ctx, file)
}

// ParseStream reads and parses delimited data from an io.Reader. A UTF-8
// byte-order mark is stripped before parsing.
func (p *DelimitedParser) ParseStream(ctx context.Context, reader io.Reader) (*ParseResult, error) {
	bomAware := unicode.UTF8BOM.NewDecoder()
	data, err := io.ReadAll(transform.NewReader(reader, bomAware))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidFile, "failed to read input")
	}

	return p.ParseText(ctx, string(data))
}

// ParseText parses raw delimited text. Blank input is fatal: it returns an
// EMPTY_INPUT error and no rows.
func (p *DelimitedParser) ParseText(ctx context.Context, text string) (*ParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.EmptyInput()
	}

	delimiter := detectDelimiter(text)

	csvReader := csv.NewReader(strings.NewReader(text))
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = -1 // allow ragged rows
	csvReader.LazyQuotes = true

	// Header row
	header, err := csvReader.Read()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeParseFailed, "failed to read header row")
	}
	if p.config.TrimWhitespace {
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
	}

	result := &ParseResult{
		Headers:   header,
		Rows:      []domain.Row{},
		Errors:    []string{},
		Format:    "delimited",
		Delimiter: delimiter,
	}

	lineNumber := 1
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		lineNumber++
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("row %d: %v", lineNumber, err))
			continue
		}

		if p.config.SkipEmptyRows && isBlankRecord(record) {
			result.SkippedRows++
			continue
		}

		result.Rows = append(result.Rows, p.toRow(header, record))
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

// SupportedFormats returns the file extensions this parser supports
func (p *DelimitedParser) SupportedFormats() []string {
	return []string{".csv", ".tsv", ".txt"}
}

// toRow maps a raw record onto the header columns. A blank or missing cell
// becomes absent; everything else stays a raw string.
func (p *DelimitedParser) toRow(header []string, record []string) domain.Row {
	row := make(domain.Row, len(header))
	for i, column := range header {
		if i >= len(record) {
			row[column] = domain.Absent()
			continue
		}
		value := record[i]
		if p.config.TrimWhitespace {
			value = strings.TrimSpace(value)
		}
		if value == "" {
			row[column] = domain.Absent()
		} else {
			row[column] = domain.String(value)
		}
	}
	return row
}

// detectDelimiter counts candidate delimiters on the first non-blank line
// and picks the most frequent one, comma winning ties.
func detectDelimiter(text string) rune {
	var firstLine string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			firstLine = line
			break
		}
	}

	best := ','
	bestCount := 0
	for _, candidate := range delimiterCandidates {
		count := strings.Count(firstLine, string(candidate))
		if count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

// isBlankRecord checks if a record contains only empty strings
func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
