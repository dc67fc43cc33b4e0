package export

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
)

// Format is an export file format requested via the ?export= parameter.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates an export parameter value.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatCSV, FormatTSV, FormatXLSX:
		return Format(value), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", value)
	}
}

// Write streams the tabular data as a file download. header labels come
// from the entity's field metadata; rows are pre-rendered strings.
func Write(w http.ResponseWriter, name string, format Format, header []string, rows [][]string) error {
	filename := fmt.Sprintf("%s.%s", name, format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch format {
	case FormatCSV, FormatTSV:
		if format == FormatTSV {
			w.Header().Set("Content-Type", "text/tab-separated-values")
		} else {
			w.Header().Set("Content-Type", "text/csv")
		}
		cw := csv.NewWriter(w)
		if format == FormatTSV {
			cw.Comma = '\t'
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("failed to write export header: %w", err)
		}
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("failed to write export rows: %w", err)
		}
		cw.Flush()
		return cw.Error()

	case FormatXLSX:
		w.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return writeXLSX(w, name, header, rows)

	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func writeXLSX(w http.ResponseWriter, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	// excelize starts every file with "Sheet1"; reuse it under the entity name
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	writeRow := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := writeRow(1, header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}
	for i, r := range rows {
		if err := writeRow(i+2, r); err != nil {
			return fmt.Errorf("failed to write xlsx row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to stream xlsx: %w", err)
	}
	return nil
}
