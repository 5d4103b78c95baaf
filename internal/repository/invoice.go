package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
)

type InvoiceRepository interface {
	// List returns every invoice with the fixed projection, keys lower-cased.
	List(ctx context.Context) ([]map[string]any, error)
	// SelectAll returns the whole table with all of its columns.
	SelectAll(ctx context.Context) (*entity.Table, error)
	Insert(ctx context.Context, inv entity.Invoice) error
	// Update rewrites the mutable columns of rows matching u.InvoiceNo. Matching zero rows is not an error.
	Update(ctx context.Context, u entity.InvoiceUpdate) (int64, error)
	// Delete removes rows matching invoiceNo. Matching zero rows is not an error.
	Delete(ctx context.Context, invoiceNo string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type invoiceRepository struct {
	db      *sql.DB
	dialect string
	table   string
	logger  *slog.Logger
}

func NewInvoiceRepository(db *DB, table string, logger *slog.Logger) InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceRepository{
		db:      db.SQL,
		dialect: db.Dialect,
		table:   TableName(db.Dialect, table),
		logger:  logger,
	}
}

func (r *invoiceRepository) List(ctx context.Context) ([]map[string]any, error) {
	query, args := r.selectQuery(constants.InvoiceColumns...)

	t, err := r.queryTable(ctx, query, args)
	if err != nil {
		r.logger.Error("failed to list invoices", "error", err)
		return nil, err
	}
	return t.Records(), nil
}

func (r *invoiceRepository) SelectAll(ctx context.Context) (*entity.Table, error) {
	query, args := r.selectQuery()

	t, err := r.queryTable(ctx, query, args)
	if err != nil {
		r.logger.Error("failed to select invoices", "error", err)
		return nil, err
	}
	return t, nil
}

func (r *invoiceRepository) Count(ctx context.Context) (int64, error) {
	b := entsql.Dialect(r.dialect)
	query, args := b.Select(entsql.Count("*")).From(b.Table(r.table)).Query()

	var n int64
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, args...).Scan(&n)
	})
	if err != nil {
		r.logger.Error("failed to count invoices", "error", err)
		return 0, err
	}
	return n, nil
}

func (r *invoiceRepository) Insert(ctx context.Context, inv entity.Invoice) error {
	query, args := entsql.Dialect(r.dialect).
		Insert(r.table).
		Columns(constants.InvoiceColumns...).
		Values(
			inv.Filename,
			inv.InvoiceNo,
			inv.TotalAmount,
			inv.Shipper,
			inv.Consignee,
			inv.POL,
			inv.POD,
			inv.ItemName,
			inv.DescriptionOfGoods,
		).
		Query()

	if _, err := r.execTx(ctx, query, args); err != nil {
		r.logger.Error("failed to insert invoice", "filename", inv.Filename, "invoice_no", inv.InvoiceNo, "error", err)
		return err
	}
	return nil
}

func (r *invoiceRepository) Update(ctx context.Context, u entity.InvoiceUpdate) (int64, error) {
	if u.InvoiceNo == nil {
		// "invoice_no = NULL" never matches a row.
		r.logger.Warn("invoice update without invoice_no matched no rows")
		return 0, nil
	}
	query, args := r.updateQuery(u)

	n, err := r.execTx(ctx, query, args)
	if err != nil {
		r.logger.Error("failed to update invoice", "invoice_no", *u.InvoiceNo, "error", err)
		return 0, err
	}
	return n, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, invoiceNo string) (int64, error) {
	query, args := entsql.Dialect(r.dialect).
		Delete(r.table).
		Where(entsql.EQ(constants.ColInvoiceNo, invoiceNo)).
		Query()

	n, err := r.execTx(ctx, query, args)
	if err != nil {
		r.logger.Error("failed to delete invoice", "invoice_no", invoiceNo, "error", err)
		return 0, err
	}
	return n, nil
}

// selectQuery selects cols (all columns when empty) from the invoice table.
func (r *invoiceRepository) selectQuery(cols ...string) (string, []any) {
	b := entsql.Dialect(r.dialect)
	return b.Select(cols...).From(b.Table(r.table)).Query()
}

// updateQuery sets every mutable column from u; nil fields become NULL.
func (r *invoiceRepository) updateQuery(u entity.InvoiceUpdate) (string, []any) {
	upd := entsql.Dialect(r.dialect).Update(r.table)
	for _, col := range constants.MutableInvoiceColumns {
		upd.Set(col, nullable(u.Field(col)))
	}
	return upd.Where(entsql.EQ(constants.ColInvoiceNo, *u.InvoiceNo)).Query()
}

// withConn checks one connection out of the pool for the duration of fn and always returns it.
func (r *invoiceRepository) withConn(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			r.logger.Warn("failed to release connection", "error", err)
		}
	}()
	return fn(conn)
}

// execTx runs a single statement in its own committed transaction and returns the affected rows.
func (r *invoiceRepository) execTx(ctx context.Context, query string, args []any) (int64, error) {
	var affected int64
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			affected = n
		}
		return nil
	})
	return affected, err
}

func (r *invoiceRepository) queryTable(ctx context.Context, query string, args []any) (*entity.Table, error) {
	var t *entity.Table
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		t, err = scanTable(rows)
		return err
	})
	return t, err
}

func scanTable(rows *sql.Rows) (*entity.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	t := &entity.Table{Columns: cols, Rows: make([][]any, 0)}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		t.Rows = append(t.Rows, vals)
	}
	return t, rows.Err()
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
