package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare object", in: `{"a":"1"}`, want: `{"a":"1"}`},
		{name: "padded object", in: "\n  {\"a\":\"1\"}  \n", want: `{"a":"1"}`},
		{name: "json fence", in: "```json\n{\"a\":\"1\"}\n```", want: `{"a":"1"}`},
		{name: "plain fence", in: "```\n{\"a\":\"1\"}\n```", want: `{"a":"1"}`},
		{
			name: "embedded in prose",
			in:   `Explanation text {"hs_code":"123456","reason":"r","confidence":"80"} trailing text`,
			want: `{"hs_code":"123456","reason":"r","confidence":"80"}`,
		},
		{
			name: "prose with stray closing brace",
			in:   `Here you go: {"a":"x}y"} and a stray } afterwards`,
			want: `{"a":"x}y"}`,
		},
		{
			name: "two objects picks first",
			in:   `first {"a":1} second {"b":2}`,
			want: `{"a":1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	for _, in := range []string{"", "   ", "no json here", "{not json}", "```json\n```"} {
		_, err := ExtractJSON(in)
		assert.ErrorIs(t, err, ErrNoJSON, "input %q", in)
	}
}

func TestExtractJSON_FencedEqualsBare(t *testing.T) {
	bare := `{"invoice_number":"X","total_amount":"$10","shipper":"S"}`
	fenced := "```json\n" + bare + "\n```"

	a, err := ExtractJSON(bare)
	require.NoError(t, err)
	b, err := ExtractJSON(fenced)
	require.NoError(t, err)

	fa, _, err := NormalizeInvoiceFields(a, nil)
	require.NoError(t, err)
	fb, _, err := NormalizeInvoiceFields(b, nil)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Equal(t, "X", fb.InvoiceNumber)
}

func TestDecodeObject_RejectsNonObjects(t *testing.T) {
	_, _, err := DecodeObject(`["a","b"]`)
	assert.Error(t, err)
	_, _, err = DecodeObject(`null`)
	assert.Error(t, err)

	m, raw, err := DecodeObject("```json\n{\"hs_code\":\"010121\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "010121", m["hs_code"])
	assert.True(t, json.Valid(raw))
}

func TestNormalizeInvoiceFields(t *testing.T) {
	raw := []byte(`{
		"invoice_number": 12345,
		"total_amount": " USD 1,000 ",
		"shipper": null,
		"consignee": "null",
		"port_of_loading": "BUSAN",
		"item_name": true,
		"description_of_goods": ["bolts", "nuts"],
		"extra": "dropped"
	}`)

	f, dropped, err := NormalizeInvoiceFields(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, InvoiceFields{
		InvoiceNumber:      "12345",
		TotalAmount:        "USD 1,000",
		Shipper:            "",
		Consignee:          "",
		PortOfLoading:      "BUSAN",
		PortOfDischarge:    "",
		ItemName:           "true",
		DescriptionOfGoods: `["bolts","nuts"]`,
	}, f)
	assert.Equal(t, []string{"extra(unknown)"}, dropped)

	inv := f.ToInvoice("scan.png")
	assert.Equal(t, "scan.png", inv.Filename)
	assert.Equal(t, "12345", inv.InvoiceNo)
	assert.Equal(t, "BUSAN", inv.POL)
}

func TestValidateJSONAgainstSchema(t *testing.T) {
	assert.NoError(t, ValidateJSONAgainstSchema(BuildHSCodeJSONSchema(), []byte(`{"hs_code":"847130","reason":"laptop","confidence":"90"}`)))
	assert.NoError(t, ValidateJSONAgainstSchema(BuildHSCodeJSONSchema(), []byte(`{"hs_code":847130,"confidence":90}`)))
	assert.NoError(t, ValidateJSONAgainstSchema(BuildHSCodeJSONSchema(), []byte(`{"reason":"missing code"}`)))
	assert.Error(t, ValidateJSONAgainstSchema(BuildHSCodeJSONSchema(), []byte(`["847130"]`)))

	assert.NoError(t, ValidateJSONAgainstSchema(BuildInvoiceJSONSchema(), []byte(`{}`)))
	assert.Error(t, ValidateJSONAgainstSchema(BuildInvoiceJSONSchema(), []byte(`["not","object"]`)))
}

func TestPrompts(t *testing.T) {
	p := BuildInvoicePrompt()
	for _, k := range invoiceKeys {
		assert.Contains(t, p, `"`+k+`"`)
	}
	hs := BuildHSCodePrompt("  Laptop ", "14 inch notebook computer")
	assert.Contains(t, hs, "[Item name]: Laptop\n")
	assert.Contains(t, hs, "14 inch notebook computer")
	assert.Contains(t, hs, `"hs_code"`)
}
