// Package llmtest provides an in-memory llm.Generator for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/joseph-ayodele/invoice-tracker/internal/llm"
)

// Generator replies with Text (or Err) and records every request it receives.
type Generator struct {
	Text string
	Err  error

	mu       sync.Mutex
	requests []llm.GenerateRequest
}

func (g *Generator) Generate(_ context.Context, req llm.GenerateRequest) (llm.GenerateResponse, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()
	if g.Err != nil {
		return llm.GenerateResponse{}, g.Err
	}
	return llm.GenerateResponse{Text: g.Text, Model: "fake"}, nil
}

// Requests returns the requests seen so far.
func (g *Generator) Requests() []llm.GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]llm.GenerateRequest(nil), g.requests...)
}
