package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/services/invoice"
)

type InvoiceHandler struct {
	svc    *invoice.Service
	logger *slog.Logger
}

func NewInvoiceHandler(svc *invoice.Service, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, logger: logger}
}

// List handles GET /get-invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	recs, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, keyMessage)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// Update handles PUT /update-invoice.
func (h *InvoiceHandler) Update(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, badRequest("invalid JSON body: "+err.Error()), keyMessage)
		return
	}
	if err := h.svc.Update(c.Request.Context(), payload); err != nil {
		respondError(c, err, keyMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": constants.StatusSuccess})
}

// Delete handles DELETE /delete-invoice/:invoice_no.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceNo := c.Param("invoice_no")
	if err := h.svc.Delete(c.Request.Context(), invoiceNo); err != nil {
		respondError(c, err, keyMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  constants.StatusSuccess,
		"message": fmt.Sprintf("Invoice %s deleted.", invoiceNo),
	})
}

// DownloadExcel handles GET /download-excel.
func (h *InvoiceHandler) DownloadExcel(c *gin.Context) {
	b, err := h.svc.ExportXLSX(c.Request.Context())
	if err != nil {
		respondError(c, err, keyMessage)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, constants.ExportFilename))
	c.Data(http.StatusOK, constants.XLSXMimeType, b)
}
