package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Options holds options for reading a CPI source file.
type Options struct {
	Delimiter rune   // Field delimiter for delimited files (default: ',')
	SkipRows  int    // Rows to skip before the header
	Sheet     string // Worksheet for .xlsx sources (default: first sheet)
}

// DefaultOptions returns default options for loading.
func DefaultOptions() *Options {
	return &Options{
		Delimiter: ',',
	}
}

// Loader reads and cleans CPI tables.
type Loader struct {
	opts   *Options
	logger *zap.Logger
}

// NewLoader creates a Loader. A nil logger disables logging and nil opts
// selects DefaultOptions.
func NewLoader(logger *zap.Logger, opts *Options) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Loader{opts: opts, logger: logger}
}

// LoadAndClean loads path with default options and no logging.
func LoadAndClean(path string) (*Table, error) {
	return NewLoader(nil, nil).LoadAndClean(path)
}

// LoadAndClean reads the source at path and returns the cleaned table.
// The format follows the file extension: .xlsx workbooks, .tsv
// tab-separated files, anything else delimited by Options.Delimiter.
func (l *Loader) LoadAndClean(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var (
		header  []string
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		header, records, err = l.readWorkbook(path)
	case ".tsv":
		header, records, err = l.readDelimitedFile(path, '\t')
	default:
		header, records, err = l.readDelimitedFile(path, l.opts.Delimiter)
	}
	if err != nil {
		return nil, err
	}

	t, err := Clean(header, records)
	if err != nil {
		return nil, err
	}
	l.logger.Info("done cleaning",
		zap.String("source", path),
		zap.Int("rows", t.Len()),
		zap.Int("columns", len(t.columns)))
	return t, nil
}

// ReadDelimited cleans a delimited table from r.
func (l *Loader) ReadDelimited(r io.Reader) (*Table, error) {
	header, records, err := readDelimited(r, l.opts.Delimiter, l.opts.SkipRows)
	if err != nil {
		return nil, err
	}
	return Clean(header, records)
}

func (l *Loader) readDelimitedFile(path string, delim rune) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	return readDelimited(file, delim, l.opts.SkipRows)
}

const bom = "\ufeff"

func readDelimited(r io.Reader, delim rune, skip int) ([]string, [][]string, error) {
	if delim == 0 {
		delim = ','
	}
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	for i := 0; i < skip; i++ {
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				return nil, nil, &SchemaError{Column: KeyColumn}
			}
			return nil, nil, err
		}
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, &SchemaError{Column: KeyColumn}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	// Spreadsheet exports often start with a UTF-8 byte order mark.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}
		if len(rec) == 1 && rec[0] == "" {
			continue
		}
		records = append(records, rec)
	}
	return header, records, nil
}

// readWorkbook reads the configured sheet. Published CPI workbooks carry
// title rows above the header, so the header is the first row holding an
// ISO3 cell.
func (l *Loader) readWorkbook(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := l.opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, &SchemaError{Column: KeyColumn}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if l.opts.SkipRows < len(rows) {
		rows = rows[l.opts.SkipRows:]
	} else {
		rows = nil
	}

	headerIdx := -1
	for i, row := range rows {
		for _, c := range row {
			if unquote(c) == KeyColumn {
				headerIdx = i
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx == -1 {
		var first []string
		if len(rows) > 0 {
			first = rows[0]
		}
		return nil, nil, &SchemaError{Column: KeyColumn, Header: first}
	}

	header := rows[headerIdx]
	var records [][]string
	for _, row := range rows[headerIdx+1:] {
		if isBlank(row) {
			continue
		}
		records = append(records, row)
	}
	return header, records, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
