package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cause := errors.New("boom")
	cases := map[string]struct {
		err  error
		want int
	}{
		"nil":        {nil, http.StatusOK},
		"validation": {NewAppError("VALIDATION_ERROR", "bad", ErrValidation), http.StatusBadRequest},
		"input":      {NewAppError("BAD_REQUEST", "bad", ErrInvalidInput), http.StatusBadRequest},
		"upstream":   {UpstreamError(cause), http.StatusBadGateway},
		"parse":      {ParseError(cause), http.StatusBadGateway},
		"database":   {DatabaseError("list invoices", cause), http.StatusInternalServerError},
		"internal":   {NewAppError("EXPORT_ERROR", "write workbook", errors.Join(ErrInternal, cause)), http.StatusInternalServerError},
		"plain":      {cause, http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "item_name or description is required",
		PublicMessage(NewAppError("VALIDATION_ERROR", "item_name or description is required", ErrValidation)))
	assert.Equal(t, "generate content: quota exceeded", PublicMessage(UpstreamError(errors.New("quota exceeded"))))
	assert.Equal(t, "write workbook: disk full",
		PublicMessage(NewAppError("EXPORT_ERROR", "write workbook", errors.Join(ErrInternal, errors.New("disk full")))))
	assert.Equal(t, "raw", PublicMessage(errors.New("raw")))
}
