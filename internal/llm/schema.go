package llm

// invoiceKeys are the keys the extraction prompt asks for, in prompt order.
var invoiceKeys = []string{
	"invoice_number",
	"total_amount",
	"shipper",
	"consignee",
	"port_of_loading",
	"port_of_discharge",
	"item_name",
	"description_of_goods",
}

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// Every key is optional; scalars are accepted and coerced to strings afterwards.
func BuildInvoiceJSONSchema() map[string]any {
	props := make(map[string]any, len(invoiceKeys))
	for _, k := range invoiceKeys {
		props[k] = scalarProp()
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

// BuildHSCodeJSONSchema describes the classification answer. Any JSON object passes; the
// model's keys are returned to the caller as parsed.
func BuildHSCodeJSONSchema() map[string]any {
	return map[string]any{"type": "object"}
}

func scalarProp() map[string]any {
	return map[string]any{
		"type": []string{"string", "number", "boolean", "null"},
	}
}
