package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/services/ingest"
)

type IngestHandler struct {
	svc    *ingest.Service
	logger *slog.Logger
}

func NewIngestHandler(svc *ingest.Service, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{svc: svc, logger: logger}
}

// Analyze handles POST /analyze-document with a multipart "file" part.
func (h *IngestHandler) Analyze(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, badRequest("file is required"), keyErrorMessage)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, badRequest("open upload: "+err.Error()), keyErrorMessage)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			h.logger.Warn("upload close error", "filename", fh.Filename, "error", err)
		}
	}()
	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, badRequest("read upload: "+err.Error()), keyErrorMessage)
		return
	}

	inv, err := h.svc.Analyze(c.Request.Context(), ingest.Upload{
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		respondError(c, err, keyErrorMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   constants.StatusSuccess,
		"filename": inv.Filename,
	})
}
