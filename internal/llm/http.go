package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// maxErrorBody bounds how much of a failed response is kept on an APIError.
const maxErrorBody = 4 << 10

// APIError is a non-2xx reply from a model endpoint. Status and Message come from the
// Google API error envelope ({"error":{"code","message","status"}}) when the body has one.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Status != "":
		return fmt.Sprintf("http %d %s: %s", e.StatusCode, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("http %d: %s", e.StatusCode, bytes.TrimSpace(e.Body))
	}
}

func newAPIError(code int, body []byte) *APIError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	e := &APIError{StatusCode: code, Body: body}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		e.Message = envelope.Error.Message
		e.Status = envelope.Error.Status
	}
	return e
}

// PostJSON marshals in, POSTs it to endpoint and decodes a 2xx reply into out.
// Failed replies come back as *APIError.
func PostJSON(ctx context.Context, client *http.Client, endpoint string, headers map[string]string, in, out any, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = http.DefaultClient
	}
	callID := uuid.NewString()
	start := time.Now()
	log := logger.With("call_id", callID)

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	log.Debug("llm.http.request", "bytes", len(payload))
	resp, err := client.Do(req)
	if err != nil {
		log.Error("llm.http.send_error", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warn("llm.http.close_error", "error", err)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	log.Info("llm.http.response",
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response (%d bytes): %w", len(raw), err)
	}
	return nil
}
