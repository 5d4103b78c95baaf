package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Invoice is one row of extracted trade-document fields.
type Invoice struct {
	Filename           string `json:"filename"`
	InvoiceNo          string `json:"invoice_no"`
	TotalAmount        string `json:"total_amount"`
	Shipper            string `json:"shipper"`
	Consignee          string `json:"consignee"`
	POL                string `json:"pol"`
	POD                string `json:"pod"`
	ItemName           string `json:"item_name"`
	DescriptionOfGoods string `json:"description_of_goods"`
}

// InvoiceUpdate carries the columns of an update keyed by InvoiceNo.
// A nil field is written as SQL NULL.
type InvoiceUpdate struct {
	InvoiceNo          *string
	TotalAmount        *string
	Shipper            *string
	Consignee          *string
	POL                *string
	POD                *string
	ItemName           *string
	DescriptionOfGoods *string
}

// InvoiceUpdateFromMap reads an update from a loosely typed payload. Absent keys and JSON null
// stay nil; other scalars are kept as their textual form.
func InvoiceUpdateFromMap(m map[string]any) InvoiceUpdate {
	return InvoiceUpdate{
		InvoiceNo:          optString(m, "invoice_no"),
		TotalAmount:        optString(m, "total_amount"),
		Shipper:            optString(m, "shipper"),
		Consignee:          optString(m, "consignee"),
		POL:                optString(m, "pol"),
		POD:                optString(m, "pod"),
		ItemName:           optString(m, "item_name"),
		DescriptionOfGoods: optString(m, "description_of_goods"),
	}
}

// Field returns the value for the named column, or nil for unknown columns.
func (u InvoiceUpdate) Field(col string) *string {
	switch col {
	case "invoice_no":
		return u.InvoiceNo
	case "total_amount":
		return u.TotalAmount
	case "shipper":
		return u.Shipper
	case "consignee":
		return u.Consignee
	case "pol":
		return u.POL
	case "pod":
		return u.POD
	case "item_name":
		return u.ItemName
	case "description_of_goods":
		return u.DescriptionOfGoods
	}
	return nil
}

func optString(m map[string]any, key string) *string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	return TextValue(v)
}

// TextValue renders a decoded JSON value as text: strings as-is, numbers and booleans in their
// JSON form, objects and arrays as JSON. nil stays nil.
func TextValue(v any) *string {
	if v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			s = fmt.Sprint(t)
		} else {
			s = string(b)
		}
	}
	return &s
}

// Table is a column-ordered snapshot of rows as returned by the database.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Records returns the rows as column/value mappings with lower-cased keys.
func (t *Table) Records() []map[string]any {
	keys := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		keys[i] = strings.ToLower(c)
	}
	out := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]any, len(keys))
		for i, k := range keys {
			if i < len(row) {
				rec[k] = row[i]
			} else {
				rec[k] = nil
			}
		}
		out = append(out, rec)
	}
	return out
}
