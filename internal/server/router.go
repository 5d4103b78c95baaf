package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/services/hscode"
	"github.com/joseph-ayodele/invoice-tracker/internal/services/ingest"
	"github.com/joseph-ayodele/invoice-tracker/internal/services/invoice"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Invoices    *invoice.Service
	Ingest      *ingest.Service
	HSCode      *hscode.Service
	PagesDir    string
	MaxUploadMB int
	// Health reports database reachability for GET /health; nil means always healthy.
	Health func(ctx context.Context) error
	Logger *slog.Logger
}

// NewRouter wires middleware, pages and API routes.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	if d.MaxUploadMB > 0 {
		router.MaxMultipartMemory = int64(d.MaxUploadMB) << 20
	}
	router.Use(RequestID())
	router.Use(Recovery(logger))
	router.Use(RequestLogger(logger))
	router.Use(CORS())

	pages := NewPages(d.PagesDir, logger)
	router.GET("/", pages.Handler(constants.PageIndex))
	router.GET("/dashboard", pages.Handler(constants.PageIndex))
	router.GET("/converter", pages.Handler(constants.PageConverter))
	router.GET("/hs-check", pages.Handler(constants.PageHSCheck))

	router.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": constants.StatusError, "message": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().Format(time.RFC3339)})
	})

	invoices := NewInvoiceHandler(d.Invoices, logger)
	router.GET("/get-invoices", invoices.List)
	router.PUT("/update-invoice", invoices.Update)
	router.GET("/download-excel", invoices.DownloadExcel)
	router.DELETE("/delete-invoice/:invoice_no", invoices.Delete)

	router.POST("/analyze-document", NewIngestHandler(d.Ingest, logger).Analyze)
	router.POST("/hs-check", NewHSCodeHandler(d.HSCode, logger).Check)

	return router
}
