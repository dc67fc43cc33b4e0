package tui

import "fmt"

// Column maps a JSON field of a collection record onto a table column.
// Sortable mirrors the server's ordering whitelist for the resource; only
// sortable columns take part in the sort-key cycle.
type Column struct {
	Key      string
	Title    string
	Width    int
	Sortable bool
}

// Filter is one toggleable server-side filter for a resource, bound to a
// number key in the browse view.
type Filter struct {
	Label string
	Name  string
	Value string
}

// Resource describes one browsable server collection.
type Resource struct {
	Title   string
	Path    string
	Columns []Column
	Filters []Filter
}

var orderStatusNames = map[float64]string{
	10: "Pending",
	20: "Placed",
	30: "Complete",
	40: "Cancelled",
}

// Resources lists every collection the browser can show, in the order
// they are cycled through with tab.
func Resources() []Resource {
	return []Resource{
		{
			Title: "Parts",
			Path:  "/api/part",
			Columns: []Column{
				{Key: "pk", Title: "ID", Width: 6},
				{Key: "name", Title: "Name", Width: 28, Sortable: true},
				{Key: "IPN", Title: "IPN", Width: 12, Sortable: true},
				{Key: "in_stock", Title: "In Stock", Width: 10, Sortable: true},
				{Key: "units", Title: "Units", Width: 8},
				{Key: "active", Title: "Active", Width: 7},
			},
			Filters: []Filter{
				{Label: "active", Name: "active", Value: "1"},
				{Label: "purchaseable", Name: "purchaseable", Value: "1"},
			},
		},
		{
			Title: "Companies",
			Path:  "/api/company",
			Columns: []Column{
				{Key: "pk", Title: "ID", Width: 6},
				{Key: "name", Title: "Name", Width: 28, Sortable: true},
				{Key: "currency", Title: "Currency", Width: 9, Sortable: true},
				{Key: "is_supplier", Title: "Supplier", Width: 9},
				{Key: "is_manufacturer", Title: "Manufacturer", Width: 13},
				{Key: "is_customer", Title: "Customer", Width: 9},
			},
			Filters: []Filter{
				{Label: "supplier", Name: "is_supplier", Value: "1"},
				{Label: "manufacturer", Name: "is_manufacturer", Value: "1"},
				{Label: "customer", Name: "is_customer", Value: "1"},
			},
		},
		{
			Title: "Supplier Parts",
			Path:  "/api/supplier-part",
			Columns: []Column{
				{Key: "pk", Title: "ID", Width: 6},
				{Key: "part_name", Title: "Part", Width: 24, Sortable: true},
				{Key: "supplier_name", Title: "Supplier", Width: 20, Sortable: true},
				{Key: "SKU", Title: "SKU", Width: 14, Sortable: true},
				{Key: "unit_price", Title: "Unit Price", Width: 11, Sortable: true},
				{Key: "available", Title: "Available", Width: 10, Sortable: true},
			},
			Filters: []Filter{
				{Label: "active", Name: "active", Value: "1"},
			},
		},
		{
			Title: "Manufacturer Parts",
			Path:  "/api/manufacturer-part",
			Columns: []Column{
				{Key: "pk", Title: "ID", Width: 6},
				{Key: "part_name", Title: "Part", Width: 26, Sortable: true},
				{Key: "manufacturer_name", Title: "Manufacturer", Width: 22, Sortable: true},
				{Key: "MPN", Title: "MPN", Width: 16, Sortable: true},
			},
		},
		{
			Title: "Purchase Orders",
			Path:  "/api/order/po",
			Columns: []Column{
				{Key: "pk", Title: "ID", Width: 6},
				{Key: "reference", Title: "Reference", Width: 12, Sortable: true},
				{Key: "supplier_name", Title: "Supplier", Width: 22, Sortable: true},
				{Key: "status", Title: "Status", Width: 10, Sortable: true},
				{Key: "line_items", Title: "Lines", Width: 6},
				{Key: "total_price", Title: "Total", Width: 12},
			},
			Filters: []Filter{
				{Label: "pending", Name: "status", Value: "10"},
				{Label: "placed", Name: "status", Value: "20"},
				{Label: "complete", Name: "status", Value: "30"},
			},
		},
		{
			Title: "Users",
			Path:  "/api/user",
			Columns: []Column{
				{Key: "pk", Title: "ID", Width: 6},
				{Key: "username", Title: "Username", Width: 18, Sortable: true},
				{Key: "first_name", Title: "First Name", Width: 16, Sortable: true},
				{Key: "last_name", Title: "Last Name", Width: 16, Sortable: true},
				{Key: "is_staff", Title: "Staff", Width: 6},
				{Key: "is_active", Title: "Active", Width: 7},
			},
			Filters: []Filter{
				{Label: "active", Name: "is_active", Value: "1"},
				{Label: "staff", Name: "is_staff", Value: "1"},
			},
		},
	}
}

// cellValue renders a decoded JSON value for a table cell.
func cellValue(res Resource, key string, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case string:
		return v
	case float64:
		if key == "status" && res.Path == "/api/order/po" {
			if name, ok := orderStatusNames[v]; ok {
				return name
			}
		}
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
