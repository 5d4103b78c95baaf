package server

import (
	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/common"
)

// Error bodies carry their text under "message"; analyze uses "error_message".
const (
	keyMessage      = "message"
	keyErrorMessage = "error_message"
)

func respondError(c *gin.Context, err error, key string) {
	c.JSON(common.HTTPStatus(err), gin.H{
		"status": constants.StatusError,
		key:      common.PublicMessage(err),
	})
}

func badRequest(message string) error {
	return common.NewAppError("BAD_REQUEST", message, common.ErrInvalidInput)
}
