package hscode

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/llm"
)

// MissingProductMessage is reported when neither an item name nor a description is given.
const MissingProductMessage = "product information is missing: item_name or description is required"

// Service recommends HS codes for product descriptions.
type Service struct {
	generator llm.Generator
	logger    *slog.Logger
}

func NewService(gen llm.Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{generator: gen, logger: logger}
}

// Classify asks the model for a 6-digit HS code and returns its JSON answer unchanged
// ({hs_code, reason, confidence}). The model is not called when both inputs are blank.
func (s *Service) Classify(ctx context.Context, itemName, description string) (map[string]any, error) {
	v := common.NewValidator().AnyOf(MissingProductMessage, map[string]string{
		"item_name":   itemName,
		"description": description,
	})
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	log := common.LoggerFromContext(ctx, s.logger)
	start := time.Now()

	resp, err := s.generator.Generate(ctx, llm.GenerateRequest{Parts: []llm.Part{
		llm.TextPart(llm.BuildHSCodePrompt(itemName, description)),
	}})
	if err != nil {
		log.Error("hscode.classify.generate_failed", "error", err)
		return nil, common.UpstreamError(err)
	}

	out, raw, err := llm.DecodeObject(resp.Text)
	if err != nil {
		log.Error("hscode.classify.no_json", "error", err, "response", resp.Text)
		return nil, common.ParseError(err)
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildHSCodeJSONSchema(), raw); err != nil {
		log.Error("hscode.classify.schema_validation_failed", "error", err)
		return nil, common.ParseError(err)
	}

	if _, ok := out["hs_code"]; !ok {
		log.Warn("hscode.classify.missing_hs_code", "keys", len(out))
	}
	log.Info("hscode.classify.ok",
		"hs_code", out["hs_code"],
		"confidence", out["confidence"],
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
