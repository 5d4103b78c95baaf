package llm

import (
	"strings"
)

// BuildInvoicePrompt is the fixed extraction instruction sent ahead of the document.
func BuildInvoicePrompt() string {
	parts := []string{
		"You are an expert analyst of international trade documents (commercial invoices, packing lists, bills of lading).",
		"Read the attached document and answer ONLY with JSON in exactly the format below. Do not add any other text.",
		"If a value cannot be found, use an empty string (\"\").",
		`{
  "invoice_number": "invoice number",
  "total_amount": "total amount including the currency symbol",
  "shipper": "full name of the shipper",
  "consignee": "full name of the consignee",
  "port_of_loading": "port of loading",
  "port_of_discharge": "port of discharge",
  "item_name": "the single most representative product name",
  "description_of_goods": "the complete description of goods"
}`,
	}
	return strings.Join(parts, "\n")
}

// BuildHSCodePrompt asks for a 6-digit HS code recommendation for a product.
func BuildHSCodePrompt(itemName, description string) string {
	var b strings.Builder
	b.WriteString("You are an international trade and customs classification expert. ")
	b.WriteString("Recommend the 6-digit HS CODE for the product below.\n")
	b.WriteString("[Item name]: ")
	b.WriteString(strings.TrimSpace(itemName))
	b.WriteString("\n[Description]: ")
	b.WriteString(strings.TrimSpace(description))
	b.WriteString("\n\nAnswer ONLY with JSON in exactly the format below. Do not explain anything else.\n")
	b.WriteString(`{
  "hs_code": "6 digits",
  "reason": "short summary of the grounds",
  "confidence": "0~100"
}`)
	return b.String()
}
