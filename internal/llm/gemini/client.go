package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-tracker/internal/llm"
)

var (
	ErrNoCandidates = errors.New("no candidates in gemini response")
	ErrBlocked      = errors.New("prompt blocked by gemini")
)

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	Temperature float32 `json:"temperature"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	ModelVersion string `json:"modelVersion"`
}

// Generate implements llm.Generator with a single synchronous generateContent call.
func (c *Client) Generate(ctx context.Context, req llm.GenerateRequest) (llm.GenerateResponse, error) {
	rid := uuid.New().String()
	start := time.Now()

	body := generateContentRequest{
		Contents: []content{{
			Role:  "user",
			Parts: toParts(req.Parts),
		}},
		GenerationConfig: generationConfig{Temperature: c.cfg.Temperature},
	}

	blobs := 0
	for _, p := range req.Parts {
		if p.IsBlob() {
			blobs++
		}
	}
	c.log.Info("llm.generate.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"parts", len(req.Parts),
		"blobs", blobs,
	)

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/models/" + url.PathEscape(c.cfg.Model) + ":generateContent"
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	var gr generateContentResponse
	if err := llm.PostJSON(ctx, c.httpClient, endpoint, headers, body, &gr, c.log); err != nil {
		c.log.Error("llm.generate.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.GenerateResponse{}, fmt.Errorf("gemini generate: %w", err)
	}
	if gr.PromptFeedback != nil && gr.PromptFeedback.BlockReason != "" {
		c.log.Warn("llm.generate.blocked", "req_id", rid, "reason", gr.PromptFeedback.BlockReason)
		return llm.GenerateResponse{}, fmt.Errorf("%w: %s", ErrBlocked, gr.PromptFeedback.BlockReason)
	}
	if len(gr.Candidates) == 0 {
		c.log.Error("llm.generate.no_candidates",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.GenerateResponse{}, ErrNoCandidates
	}

	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	model := gr.ModelVersion
	if model == "" {
		model = c.cfg.Model
	}

	c.log.Info("llm.generate.ok",
		"req_id", rid,
		"model", model,
		"finish_reason", gr.Candidates[0].FinishReason,
		"text_len", b.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return llm.GenerateResponse{Text: b.String(), Model: model}, nil
}

func toParts(in []llm.Part) []part {
	out := make([]part, 0, len(in))
	for _, p := range in {
		if p.IsBlob() {
			out = append(out, part{InlineData: &inlineData{
				MimeType: p.MimeType,
				Data:     base64.StdEncoding.EncodeToString(p.Data),
			}})
			continue
		}
		out = append(out, part{Text: p.Text})
	}
	return out
}
