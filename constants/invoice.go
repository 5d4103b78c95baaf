package constants

// InvoiceTable is the default table holding invoice records.
const InvoiceTable = "INVOICE"

// Invoice columns, in projection order.
const (
	ColFilename           = "filename"
	ColInvoiceNo          = "invoice_no"
	ColTotalAmount        = "total_amount"
	ColShipper            = "shipper"
	ColConsignee          = "consignee"
	ColPOL                = "pol"
	ColPOD                = "pod"
	ColItemName           = "item_name"
	ColDescriptionOfGoods = "description_of_goods"
)

// InvoiceColumns is the fixed projection used by listing.
var InvoiceColumns = []string{
	ColFilename,
	ColInvoiceNo,
	ColTotalAmount,
	ColShipper,
	ColConsignee,
	ColPOL,
	ColPOD,
	ColItemName,
	ColDescriptionOfGoods,
}

// MutableInvoiceColumns are the columns an update may change; filename and invoice_no are fixed.
var MutableInvoiceColumns = []string{
	ColTotalAmount,
	ColShipper,
	ColConsignee,
	ColPOL,
	ColPOD,
	ColItemName,
	ColDescriptionOfGoods,
}
