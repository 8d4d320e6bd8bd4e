package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"

	apierrors "carsearch/internal/errors"
)

// RawRow is one unparsed record keyed by raw column name. Absent columns are
// simply missing keys; blank cells are empty strings.
type RawRow map[string]string

// Source yields raw tabular rows for the loader. Implementations return the
// column names they saw alongside the rows so the loader can verify the
// required columns exist even for empty datasets.
type Source interface {
	// Name identifies the source for error reporting
	Name() string
	// ReadAll parses the entire source into memory
	ReadAll(ctx context.Context) (columns []string, rows []RawRow, err error)
}

// Open selects a Source implementation by file extension: .csv, .xlsx, and
// .db/.sqlite/.sqlite3 are supported.
func Open(path, sqliteTable string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVSource{Path: path}, nil
	case ".xlsx":
		return &ExcelSource{Path: path}, nil
	case ".db", ".sqlite", ".sqlite3":
		return &SQLiteSource{Path: path, Table: sqliteTable}, nil
	default:
		return nil, apierrors.NewDataSourceError(path, "unsupported file extension", nil)
	}
}

// CSVSource reads raw rows from a comma-separated file. The first record is
// the header; records shorter than the header leave trailing columns absent.
type CSVSource struct {
	Path string
}

// Name identifies the source for error reporting
func (s *CSVSource) Name() string { return s.Path }

// ReadAll parses the entire CSV file into memory
func (s *CSVSource) ReadAll(ctx context.Context) ([]string, []RawRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, apierrors.NewDataSourceError(s.Path, "cannot open file", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are handled during cleaning

	header, err := r.Read()
	if err != nil {
		return nil, nil, apierrors.NewDataSourceError(s.Path, "cannot read header", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []RawRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, apierrors.NewDataSourceError(s.Path, "malformed csv record", err)
		}
		rows = append(rows, recordToRow(header, record))
	}
	return header, rows, nil
}

// ExcelSource reads raw rows from the first sheet of an xlsx workbook, with
// the first row as the header.
type ExcelSource struct {
	Path string
}

// Name identifies the source for error reporting
func (s *ExcelSource) Name() string { return s.Path }

// ReadAll parses the first sheet of the workbook into memory
func (s *ExcelSource) ReadAll(ctx context.Context) ([]string, []RawRow, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, nil, apierrors.NewDataSourceError(s.Path, "cannot open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, apierrors.NewDataSourceError(s.Path, "workbook has no sheets", nil)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, apierrors.NewDataSourceError(s.Path, "cannot read sheet", err)
	}
	if len(records) == 0 {
		return nil, nil, apierrors.NewDataSourceError(s.Path, "sheet has no header row", nil)
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := make([]RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		rows = append(rows, recordToRow(header, record))
	}
	return header, rows, nil
}

// SQLiteSource reads raw rows from a table in a SQLite database file.
type SQLiteSource struct {
	Path  string
	Table string
}

// Name identifies the source for error reporting
func (s *SQLiteSource) Name() string { return s.Path }

// ReadAll selects every row of the configured table into memory
func (s *SQLiteSource) ReadAll(ctx context.Context) ([]string, []RawRow, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, nil, apierrors.NewDataSourceError(s.Path, "cannot open database", err)
	}

	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, nil, apierrors.NewDataSourceError(s.Path, "cannot open database", err)
	}
	defer db.Close()

	table := s.Table
	if table == "" {
		table = "listings"
	}
	if !validIdentifier(table) {
		return nil, nil, apierrors.NewDataSourceError(s.Path, fmt.Sprintf("invalid table name %q", table), nil)
	}

	result, err := db.QueryContext(ctx, "SELECT * FROM "+table) //nolint:gosec // identifier validated above
	if err != nil {
		return nil, nil, apierrors.NewDataSourceError(s.Path, fmt.Sprintf("cannot query table %q", table), err)
	}
	defer result.Close()

	columns, err := result.Columns()
	if err != nil {
		return nil, nil, apierrors.NewDataSourceError(s.Path, "cannot read columns", err)
	}

	var rows []RawRow
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for result.Next() {
		if err := result.Scan(ptrs...); err != nil {
			return nil, nil, apierrors.NewDataSourceError(s.Path, "cannot scan row", err)
		}
		row := make(RawRow, len(columns))
		for i, col := range columns {
			if text, ok := sqlValueToString(values[i]); ok {
				row[col] = text
			}
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, nil, apierrors.NewDataSourceError(s.Path, "error iterating rows", err)
	}
	return columns, rows, nil
}

func recordToRow(header, record []string) RawRow {
	row := make(RawRow, len(header))
	for i, col := range header {
		if i < len(record) {
			row[col] = record[i]
		}
	}
	return row
}

// sqlValueToString renders a scanned SQL value as raw text. NULLs report
// false so the cleaning step treats them as missing.
func sqlValueToString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case []byte:
		return string(t), true
	case string:
		return t, true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}

func validIdentifier(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return name != ""
}
