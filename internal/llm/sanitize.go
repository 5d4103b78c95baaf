package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// NormalizeInvoiceFields turns a recovered extraction object into InvoiceFields.
// - null and missing keys become ""
// - numbers and booleans become their textual form
// - nested values are kept as compact JSON
// - keys outside the extraction prompt are dropped and reported
func NormalizeInvoiceFields(raw []byte, logger *slog.Logger) (InvoiceFields, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return InvoiceFields{}, nil, fmt.Errorf("sanitize: decode: %w", err)
	}
	if m == nil {
		return InvoiceFields{}, nil, fmt.Errorf("sanitize: expected a JSON object")
	}

	known := make(map[string]struct{}, len(invoiceKeys))
	for _, k := range invoiceKeys {
		known[k] = struct{}{}
	}
	var dropped []string
	for k := range m {
		if _, ok := known[k]; !ok {
			dropped = append(dropped, k+"(unknown)")
		}
	}

	get := func(k string) string {
		v, ok := m[k]
		if !ok {
			return ""
		}
		return scalarString(v)
	}
	out := InvoiceFields{
		InvoiceNumber:      get("invoice_number"),
		TotalAmount:        get("total_amount"),
		Shipper:            get("shipper"),
		Consignee:          get("consignee"),
		PortOfLoading:      get("port_of_loading"),
		PortOfDischarge:    get("port_of_discharge"),
		ItemName:           get("item_name"),
		DescriptionOfGoods: get("description_of_goods"),
	}

	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(t)
		if strings.EqualFold(s, "null") {
			return ""
		}
		return s
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
