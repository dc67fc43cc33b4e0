package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceListRow is one line of a supplier price-list CSV.
type PriceListRow struct {
	SKU       string
	UnitPrice decimal.Decimal
	Available float64
}

// ParsePriceListCSV parses a supplier price list. Required headers are
// "sku" and "price"; "available" is optional. Malformed rows are skipped
// with a warning rather than failing the whole import.
func ParsePriceListCSV(r io.Reader) ([]PriceListRow, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("price list CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read price list header: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"sku", "price"})
	if err != nil {
		return nil, err
	}
	availableCol, hasAvailable := colIndex["available"]

	var rows []PriceListRow
	line := 1

	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: price list line %d unreadable (skipped): %v", line, err)
			continue
		}

		sku := strings.TrimSpace(rec[colIndex["sku"]])
		if sku == "" {
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(rec[colIndex["price"]]))
		if err != nil {
			log.Printf("WARN: price list line %d has invalid price %q (skipped)", line, rec[colIndex["price"]])
			continue
		}

		row := PriceListRow{SKU: sku, UnitPrice: price}
		if hasAvailable && availableCol < len(rec) {
			if v, err := strconv.ParseFloat(strings.TrimSpace(rec[availableCol]), 64); err == nil {
				row.Available = v
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
