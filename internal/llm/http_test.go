package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON_DecodesReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"q":"ping"}`, string(body))
		_, _ = w.Write([]byte(`{"a":"pong"}`))
	}))
	defer srv.Close()

	var out struct {
		A string `json:"a"`
	}
	err := PostJSON(context.Background(), srv.Client(), srv.URL, map[string]string{"x-goog-api-key": "k"},
		map[string]string{"q": "ping"}, &out, nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", out.A)
}

func TestPostJSON_APIErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	err := PostJSON(context.Background(), srv.Client(), srv.URL, nil, struct{}{}, nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "INVALID_ARGUMENT", apiErr.Status)
	assert.Equal(t, "API key not valid.", apiErr.Message)
	assert.Equal(t, "http 400 INVALID_ARGUMENT: API key not valid.", err.Error())
}

func TestPostJSON_PlainErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down\n"))
	}))
	defer srv.Close()

	err := PostJSON(context.Background(), srv.Client(), srv.URL, nil, struct{}{}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, "http 502: upstream down", err.Error())
}
