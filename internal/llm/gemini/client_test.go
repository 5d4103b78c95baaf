package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-tracker/internal/llm"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "gemini-test"}, nil)
}

func TestGenerate_SendsPartsAndJoinsText(t *testing.T) {
	var got generateContentRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"hs_code\":"},{"text":"\"847130\"}"}]},"finishReason":"STOP"}],"modelVersion":"gemini-test-001"}`))
	})

	resp, err := c.Generate(context.Background(), llm.GenerateRequest{Parts: []llm.Part{
		llm.TextPart("extract"),
		llm.BlobPart("application/pdf", []byte("%PDF-1.4")),
	}})
	require.NoError(t, err)
	assert.Equal(t, `{"hs_code":"847130"}`, resp.Text)
	assert.Equal(t, "gemini-test-001", resp.Model)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 2)
	assert.Equal(t, "extract", got.Contents[0].Parts[0].Text)
	require.NotNil(t, got.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "application/pdf", got.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")), got.Contents[0].Parts[1].InlineData.Data)
}

func TestGenerate_Non2xxIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := c.Generate(context.Background(), llm.GenerateRequest{Parts: []llm.Part{llm.TextPart("hi")}})
	require.Error(t, err)
	var apiErr *llm.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "RESOURCE_EXHAUSTED", apiErr.Status)
	assert.Contains(t, err.Error(), "Resource has been exhausted")
}

func TestGenerate_BlockedAndEmpty(t *testing.T) {
	blocked := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	})
	_, err := blocked.Generate(context.Background(), llm.GenerateRequest{Parts: []llm.Part{llm.TextPart("hi")}})
	assert.ErrorIs(t, err, ErrBlocked)

	empty := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})
	_, err = empty.Generate(context.Background(), llm.GenerateRequest{Parts: []llm.Part{llm.TextPart("hi")}})
	assert.ErrorIs(t, err, ErrNoCandidates)
}
