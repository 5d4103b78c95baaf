package ingest

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
	"github.com/joseph-ayodele/invoice-tracker/internal/llm"
	"github.com/joseph-ayodele/invoice-tracker/internal/repository"
)

// Upload is one uploaded document as received from the client.
type Upload struct {
	Filename string
	MimeType string
	Data     []byte
}

// Service turns uploaded trade documents into stored invoice rows.
type Service struct {
	invoiceRepo repository.InvoiceRepository
	generator   llm.Generator
	logger      *slog.Logger
}

// NewService creates a new ingest service.
func NewService(repo repository.InvoiceRepository, gen llm.Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		invoiceRepo: repo,
		generator:   gen,
		logger:      logger,
	}
}

// Analyze sends the document to the model, recovers the extracted fields and inserts one row.
// Uploading the same document twice inserts two rows.
func (s *Service) Analyze(ctx context.Context, up Upload) (entity.Invoice, error) {
	log := common.LoggerFromContext(ctx, s.logger)
	start := time.Now()
	mimeType := constants.NormalizeMimeType(up.MimeType)
	data := up.Data
	if data == nil {
		data = []byte{}
	}

	log.Info("invoice.analyze.start", "filename", up.Filename, "mime_type", mimeType, "bytes", len(data))

	resp, err := s.generator.Generate(ctx, llm.GenerateRequest{Parts: []llm.Part{
		llm.TextPart(llm.BuildInvoicePrompt()),
		llm.BlobPart(mimeType, data),
	}})
	if err != nil {
		log.Error("invoice.analyze.generate_failed", "filename", up.Filename, "error", err)
		return entity.Invoice{}, common.UpstreamError(err)
	}

	raw, err := llm.ExtractJSON(resp.Text)
	if err != nil {
		log.Error("invoice.analyze.no_json", "filename", up.Filename, "response", truncate(resp.Text, 500))
		return entity.Invoice{}, common.ParseError(err)
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildInvoiceJSONSchema(), raw); err != nil {
		log.Error("invoice.analyze.schema_validation_failed", "filename", up.Filename, "error", err)
		return entity.Invoice{}, common.ParseError(err)
	}
	fields, _, err := llm.NormalizeInvoiceFields(raw, log)
	if err != nil {
		return entity.Invoice{}, common.ParseError(err)
	}

	inv := fields.ToInvoice(up.Filename)
	if err := s.invoiceRepo.Insert(ctx, inv); err != nil {
		return entity.Invoice{}, common.DatabaseError("insert invoice", err)
	}

	log.Info("invoice.analyze.ok",
		"filename", inv.Filename,
		"invoice_no", inv.InvoiceNo,
		"model", resp.Model,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return inv, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
