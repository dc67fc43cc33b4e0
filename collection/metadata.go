package collection

import "net/http"

// Field describes one column of a collection for the OPTIONS metadata
// response: clients read the labels for their table headers.
type Field struct {
	Name     string
	Label    string
	Type     string
	Required bool
	Sortable bool
}

type fieldMeta struct {
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Sortable bool   `json:"sortable"`
}

// OptionsHandler serves the field metadata in the "POST action fields"
// shape: {"actions": {"POST": {field: {label, ...}}}}.
func OptionsHandler(fields []Field) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post := make(map[string]fieldMeta, len(fields))
		for _, f := range fields {
			typ := f.Type
			if typ == "" {
				typ = "string"
			}
			post[f.Name] = fieldMeta{
				Label:    f.Label,
				Type:     typ,
				Required: f.Required,
				Sortable: f.Sortable,
			}
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"actions": map[string]interface{}{"POST": post},
		})
	}
}
