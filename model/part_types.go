package model

import "github.com/shopspring/decimal"

type Part struct {
	ID           int64   `db:"id" json:"pk"`
	Name         string  `db:"name" json:"name"`
	IPN          string  `db:"ipn" json:"IPN"`
	Description  string  `db:"description" json:"description"`
	Category     string  `db:"category" json:"category"`
	Units        string  `db:"units" json:"units"`
	Active       int     `db:"active" json:"active"`
	Purchaseable int     `db:"purchaseable" json:"purchaseable"`
	Salable      int     `db:"salable" json:"salable"`
	InStock      float64 `db:"in_stock" json:"in_stock"`
	Notes        string  `db:"notes" json:"notes"`
}

type PartInput struct {
	Name         string  `db:"name" json:"name"`
	IPN          string  `db:"ipn" json:"IPN"`
	Description  string  `db:"description" json:"description"`
	Category     string  `db:"category" json:"category"`
	Units        string  `db:"units" json:"units"`
	Active       int     `db:"active" json:"active"`
	Purchaseable int     `db:"purchaseable" json:"purchaseable"`
	Salable      int     `db:"salable" json:"salable"`
	InStock      float64 `db:"in_stock" json:"in_stock"`
	Notes        string  `db:"notes" json:"notes"`
}

type SupplierPart struct {
	ID           int64           `db:"id" json:"pk"`
	PartID       int64           `db:"part_id" json:"part"`
	SupplierID   int64           `db:"supplier_id" json:"supplier"`
	SKU          string          `db:"sku" json:"SKU"`
	PartName     string          `db:"part_name" json:"part_name"`
	SupplierName string          `db:"supplier_name" json:"supplier_name"`
	Packaging    string          `db:"packaging" json:"packaging"`
	PackQuantity float64         `db:"pack_quantity" json:"pack_quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unit_price"`
	Available    float64         `db:"available" json:"available"`
	Active       int             `db:"active" json:"active"`
	Note         string          `db:"note" json:"note"`
}

type SupplierPartInput struct {
	PartID       int64           `db:"part_id" json:"part"`
	SupplierID   int64           `db:"supplier_id" json:"supplier"`
	SKU          string          `db:"sku" json:"SKU"`
	Packaging    string          `db:"packaging" json:"packaging"`
	PackQuantity float64         `db:"pack_quantity" json:"pack_quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unit_price"`
	Available    float64         `db:"available" json:"available"`
	Active       int             `db:"active" json:"active"`
	Note         string          `db:"note" json:"note"`
}

type ManufacturerPart struct {
	ID               int64  `db:"id" json:"pk"`
	PartID           int64  `db:"part_id" json:"part"`
	ManufacturerID   int64  `db:"manufacturer_id" json:"manufacturer"`
	MPN              string `db:"mpn" json:"MPN"`
	PartName         string `db:"part_name" json:"part_name"`
	ManufacturerName string `db:"manufacturer_name" json:"manufacturer_name"`
	Description      string `db:"description" json:"description"`
	Link             string `db:"link" json:"link"`
}

type ManufacturerPartInput struct {
	PartID         int64  `db:"part_id" json:"part"`
	ManufacturerID int64  `db:"manufacturer_id" json:"manufacturer"`
	MPN            string `db:"mpn" json:"MPN"`
	Description    string `db:"description" json:"description"`
	Link           string `db:"link" json:"link"`
}
