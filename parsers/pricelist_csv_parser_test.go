package parsers

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceListCSV(t *testing.T) {
	input := "SKU,Price,Available\n" +
		"ACME-R-10K,0.05,1500\n" +
		"ACME-C-100N,0.12,\n" +
		",9.99,10\n" + // blank SKU skipped
		"ACME-BAD,not-a-price,5\n" // bad price skipped

	rows, err := ParsePriceListCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "ACME-R-10K", rows[0].SKU)
	assert.True(t, rows[0].UnitPrice.Equal(decimal.RequireFromString("0.05")))
	assert.Equal(t, float64(1500), rows[0].Available)

	assert.Equal(t, "ACME-C-100N", rows[1].SKU)
	assert.Equal(t, float64(0), rows[1].Available)
}

func TestParsePriceListCSVWithBOM(t *testing.T) {
	input := "\xEF\xBB\xBFsku,price\nACME-R-10K,0.05\n"

	rows, err := ParsePriceListCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ACME-R-10K", rows[0].SKU)
}

func TestParsePriceListCSVMissingHeaders(t *testing.T) {
	_, err := ParsePriceListCSV(strings.NewReader("sku,cost\nA,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")

	_, err = ParsePriceListCSV(strings.NewReader(""))
	assert.Error(t, err)
}
