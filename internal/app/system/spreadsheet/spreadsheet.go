// internal/app/system/spreadsheet/spreadsheet.go

// Package spreadsheet reads the first sheet of an uploaded workbook into
// header-keyed rows. XLSX is parsed with excelize; anything that is not a
// zip container is read as CSV.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row maps a header cell to the cell value in the same column. Empty cells
// are omitted.
type Row map[string]string

var (
	// ErrEmpty is returned when the first sheet has no header row.
	ErrEmpty = errors.New("spreadsheet has no header row")
	// ErrNoSheets is returned for a workbook without worksheets.
	ErrNoSheets = errors.New("workbook has no sheets")
)

// TooManyRowsError reports a sheet exceeding the configured row limit.
type TooManyRowsError struct {
	Limit int
}

func (e *TooManyRowsError) Error() string {
	return fmt.Sprintf("spreadsheet exceeds %d data rows", e.Limit)
}

// DuplicateHeaderError reports two header cells that name the same column.
type DuplicateHeaderError struct {
	First, Second string
}

func (e *DuplicateHeaderError) Error() string {
	if e.First == e.Second {
		return fmt.Sprintf("header %q appears more than once", e.First)
	}
	return fmt.Sprintf("headers %q and %q name the same column", e.First, e.Second)
}

// Options controls parsing.
type Options struct {
	MaxRows int // <= 0 means DefaultMaxRows

	// HeaderKey maps a header cell to the column it names. Two headers with
	// the same key are rejected. nil compares the trimmed text.
	HeaderKey func(string) string
}

// zip local file header; every xlsx starts with it.
var zipMagic = []byte("PK\x03\x04")

// ReadFirstSheet parses data and returns its data rows in sheet order.
// Rows where every cell is empty are skipped.
func ReadFirstSheet(data []byte, opts Options) ([]Row, error) {
	var (
		records [][]string
		err     error
	)
	if bytes.HasPrefix(data, zipMagic) {
		records, err = xlsxRecords(data)
	} else {
		records, err = csvRecords(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	return toRows(records, opts)
}

func xlsxRecords(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func csvRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var out [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func toRows(records [][]string, opts Options) ([]Row, error) {
	limit := opts.MaxRows
	if limit <= 0 {
		limit = DefaultMaxRows
	}

	// First non-blank record is the header.
	start := 0
	for start < len(records) && blank(records[start]) {
		start++
	}
	if start == len(records) {
		return nil, ErrEmpty
	}
	header := make([]string, len(records[start]))
	for i, h := range records[start] {
		header[i] = strings.TrimSpace(h)
	}
	if err := checkHeader(header, opts.HeaderKey); err != nil {
		return nil, err
	}

	var rows []Row
	for _, rec := range records[start+1:] {
		if blank(rec) {
			continue
		}
		if len(rows) == limit {
			return nil, &TooManyRowsError{Limit: limit}
		}
		row := make(Row, len(rec))
		for i, cell := range rec {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				row[header[i]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func checkHeader(header []string, key func(string) string) error {
	seen := make(map[string]string, len(header))
	for _, h := range header {
		if h == "" {
			continue
		}
		k := h
		if key != nil {
			k = key(h)
		}
		if first, ok := seen[k]; ok {
			return &DuplicateHeaderError{First: first, Second: h}
		}
		seen[k] = h
	}
	return nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
