package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
	"github.com/joseph-ayodele/invoice-tracker/internal/services/hscode"
)

type HSCodeHandler struct {
	svc    *hscode.Service
	logger *slog.Logger
}

func NewHSCodeHandler(svc *hscode.Service, logger *slog.Logger) *HSCodeHandler {
	return &HSCodeHandler{svc: svc, logger: logger}
}

// Check handles POST /hs-check.
func (h *HSCodeHandler) Check(c *gin.Context) {
	// Fields may arrive as numbers or other scalars; only emptiness is checked.
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, badRequest("invalid JSON body: "+err.Error()), keyMessage)
		return
	}
	out, err := h.svc.Classify(c.Request.Context(), textField(req, "item_name"), textField(req, "description"))
	if err != nil {
		respondError(c, err, keyMessage)
		return
	}
	c.JSON(http.StatusOK, out)
}

func textField(m map[string]any, key string) string {
	if v := entity.TextValue(m[key]); v != nil {
		return *v
	}
	return ""
}
