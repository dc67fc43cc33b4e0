package automation

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktree/collection"
	"stocktree/database"
	"stocktree/model"
)

func TestImportPriceList(t *testing.T) {
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.InitDatabase(db))

	supplierID, err := database.InsertCompany(db, model.CompanyInput{Name: "Acme", IsSupplier: 1, Active: 1})
	require.NoError(t, err)
	partID, err := database.InsertPart(db, model.PartInput{Name: "Resistor", Active: 1})
	require.NoError(t, err)
	_, err = database.InsertSupplierPart(db, model.SupplierPartInput{
		PartID:     partID,
		SupplierID: supplierID,
		SKU:        "ACME-R-10K",
		UnitPrice:  decimal.RequireFromString("0.05"),
		Active:     1,
	})
	require.NoError(t, err)

	csv := "sku,price,available\n" +
		"ACME-R-10K,0.07,2000\n" +
		"UNKNOWN-SKU,1.23,5\n"

	updated, skipped, err := ImportPriceList(db, supplierID, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, skipped)

	sps, _, err := database.ListSupplierParts(db, collection.Query{Limit: 25, Filters: map[string]string{}})
	require.NoError(t, err)
	require.Len(t, sps, 1)
	assert.True(t, sps[0].UnitPrice.Equal(decimal.RequireFromString("0.07")))
	assert.Equal(t, float64(2000), sps[0].Available)
}
