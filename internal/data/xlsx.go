package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Akashdeep-Patra/tabula/internal/grid"
)

// DefaultSheet is the sheet written by ExportXLSX and read by ImportXLSX
// when no sheet is named.
const DefaultSheet = "Sheet1"

// pxPerChar converts grid pixel widths to spreadsheet character widths.
const pxPerChar = 7.0

// ErrNoColumns is returned when an imported header row names no inventory
// column.
var ErrNoColumns = errors.New("no inventory columns in header")

// normalizeHeader maps "Serial / License", "serial license" and
// "serial_license" to the same key.
func normalizeHeader(h string) string {
	h = headerSeparators.Replace(strings.ToLower(h))
	return strings.Join(strings.Fields(h), "_")
}

var headerSeparators = strings.NewReplacer("/", " ", "-", " ", "_", " ", ".", " ")

// ImportXLSX reads the rows of one sheet. The first row is the header;
// columns are matched to inventory columns by name and the rest are
// skipped. Blank rows are dropped. An empty sheet name reads the first
// sheet.
func ImportXLSX(path, sheet string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: no sheets", path)
		}
		sheet = sheets[0]
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	mapping := make(map[int]string)
	for i, h := range raw[0] {
		if key := normalizeHeader(h); IsColumn(key) {
			mapping[i] = key
		}
	}
	if len(mapping) == 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrNoColumns)
	}

	out := make([]map[string]string, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		rec := make(map[string]string, len(mapping))
		blank := true
		for i, key := range mapping {
			if i < len(cells) {
				v := strings.TrimSpace(cells[i])
				rec[key] = v
				blank = blank && v == ""
			}
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ExportXLSX writes rows to a new workbook: a bold header row with the column
// keys followed by one line per row. widths, when given, are grid pixel
// widths keyed by column.
func ExportXLSX(path string, columns []string, rows grid.Rows, widths map[string]int) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(DefaultSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(DefaultSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	line := make([]any, len(columns))
	for i, r := range rows {
		for j, c := range columns {
			line[j] = r.Get(c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(DefaultSheet, cell, &line); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	for i, c := range columns {
		px, ok := widths[c]
		if !ok {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(DefaultSheet, name, name, float64(px)/pxPerChar); err != nil {
			return fmt.Errorf("sizing column %s: %w", c, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
