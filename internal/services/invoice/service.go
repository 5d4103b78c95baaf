package invoice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
	"github.com/joseph-ayodele/invoice-tracker/internal/export"
	"github.com/joseph-ayodele/invoice-tracker/internal/repository"
)

// Service handles the CRUD and export use cases over stored invoices.
type Service struct {
	invoiceRepo repository.InvoiceRepository
	xlsx        *export.Writer
	logger      *slog.Logger
}

func NewService(repo repository.InvoiceRepository, xlsx *export.Writer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if xlsx == nil {
		xlsx = export.NewWriter(logger)
	}
	return &Service{invoiceRepo: repo, xlsx: xlsx, logger: logger}
}

// List returns every invoice as a column/value mapping.
func (s *Service) List(ctx context.Context) ([]map[string]any, error) {
	recs, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, common.DatabaseError("list invoices", err)
	}
	common.LoggerFromContext(ctx, s.logger).Info("invoices listed", "count", len(recs))
	return recs, nil
}

// Update rewrites the mutable columns of the invoice named by payload["invoice_no"].
// Keys missing from payload are written as NULL. Unknown invoice numbers are not an error.
func (s *Service) Update(ctx context.Context, payload map[string]any) error {
	u := entity.InvoiceUpdate{}
	if payload != nil {
		u = entity.InvoiceUpdateFromMap(payload)
	}
	n, err := s.invoiceRepo.Update(ctx, u)
	if err != nil {
		return common.DatabaseError("update invoice", err)
	}
	common.LoggerFromContext(ctx, s.logger).Info("invoice updated", "invoice_no", deref(u.InvoiceNo), "rows", n)
	return nil
}

// Delete removes the invoices numbered invoiceNo. The value is matched verbatim; unknown
// (or blank) invoice numbers delete nothing and are not an error.
func (s *Service) Delete(ctx context.Context, invoiceNo string) error {
	n, err := s.invoiceRepo.Delete(ctx, invoiceNo)
	if err != nil {
		return common.DatabaseError("delete invoice", err)
	}
	common.LoggerFromContext(ctx, s.logger).Info("invoice deleted", "invoice_no", invoiceNo, "rows", n)
	return nil
}

// ExportXLSX renders the whole invoice table as a workbook.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	tbl, err := s.invoiceRepo.SelectAll(ctx)
	if err != nil {
		return nil, common.DatabaseError("select invoices", err)
	}
	b, err := s.xlsx.WriteXLSX(tbl)
	if err != nil {
		common.LoggerFromContext(ctx, s.logger).Error("export.xlsx.failed", "error", err)
		return nil, common.NewAppError("EXPORT_ERROR", "write workbook", errors.Join(common.ErrInternal, err))
	}
	return b, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
