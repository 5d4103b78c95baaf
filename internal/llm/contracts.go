package llm

import (
	"context"

	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
)

// Part is one ordered piece of model input: either text or inline binary data.
type Part struct {
	Text     string
	MimeType string
	Data     []byte
}

func TextPart(text string) Part { return Part{Text: text} }

func BlobPart(mimeType string, data []byte) Part { return Part{MimeType: mimeType, Data: data} }

// IsBlob reports whether the part carries inline data instead of text.
func (p Part) IsBlob() bool { return p.Data != nil }

type GenerateRequest struct {
	Parts []Part
}

type GenerateResponse struct {
	Text  string
	Model string
}

// Generator is the interface the services depend on.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

// InvoiceFields is the normalized shape we want from the extraction prompt.
type InvoiceFields struct {
	InvoiceNumber      string `json:"invoice_number"`
	TotalAmount        string `json:"total_amount"` // currency symbol + amount
	Shipper            string `json:"shipper"`
	Consignee          string `json:"consignee"`
	PortOfLoading      string `json:"port_of_loading"`
	PortOfDischarge    string `json:"port_of_discharge"`
	ItemName           string `json:"item_name"` // single most representative product
	DescriptionOfGoods string `json:"description_of_goods"`
}

// ToInvoice maps the extracted fields onto an invoice row for filename.
func (f InvoiceFields) ToInvoice(filename string) entity.Invoice {
	return entity.Invoice{
		Filename:           filename,
		InvoiceNo:          f.InvoiceNumber,
		TotalAmount:        f.TotalAmount,
		Shipper:            f.Shipper,
		Consignee:          f.Consignee,
		POL:                f.PortOfLoading,
		POD:                f.PortOfDischarge,
		ItemName:           f.ItemName,
		DescriptionOfGoods: f.DescriptionOfGoods,
	}
}
