package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, Config{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "invoices.db"),
		MaxConns: 4,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db, nil) })
	require.NoError(t, EnsureSchema(ctx, db, constants.InvoiceTable, nil))
	return db
}

func sampleInvoice(no string) entity.Invoice {
	return entity.Invoice{
		Filename:           "inv-" + no + ".pdf",
		InvoiceNo:          no,
		TotalAmount:        "USD 1,200.00",
		Shipper:            "ACME Export Co.",
		Consignee:          "Globex Import Ltd.",
		POL:                "BUSAN",
		POD:                "ROTTERDAM",
		ItemName:           "Steel bolts",
		DescriptionOfGoods: "M8 zinc plated steel bolts, 40 cartons",
	}
}

func str(s string) *string { return &s }

func TestInvoiceRepository_InsertThenList(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(openTestDB(t), "", nil)

	require.NoError(t, repo.Insert(ctx, sampleInvoice("INV-001")))

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0]
	keys := make([]string, 0, len(got))
	for k := range got {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, constants.InvoiceColumns, keys)
	assert.Equal(t, "INV-001", got["invoice_no"])
	assert.Equal(t, "inv-INV-001.pdf", got["filename"])
	assert.Equal(t, "BUSAN", got["pol"])
	assert.Equal(t, "M8 zinc plated steel bolts, 40 cartons", got["description_of_goods"])
}

func TestInvoiceRepository_DuplicateInsertsCreateTwoRows(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(openTestDB(t), "", nil)

	require.NoError(t, repo.Insert(ctx, sampleInvoice("INV-001")))
	require.NoError(t, repo.Insert(ctx, sampleInvoice("INV-001")))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestInvoiceRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(openTestDB(t), "", nil)
	require.NoError(t, repo.Insert(ctx, sampleInvoice("INV-002")))

	n, err := repo.Update(ctx, entity.InvoiceUpdate{
		InvoiceNo:   str("INV-002"),
		TotalAmount: str("EUR 99.00"),
		Shipper:     str("New Shipper"),
		POL:         str("INCHEON"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "EUR 99.00", recs[0]["total_amount"])
	assert.Equal(t, "New Shipper", recs[0]["shipper"])
	assert.Equal(t, "INCHEON", recs[0]["pol"])
	// absent fields are written as NULL
	assert.Nil(t, recs[0]["consignee"])
	// filename and invoice_no are never touched
	assert.Equal(t, "inv-INV-002.pdf", recs[0]["filename"])
}

func TestInvoiceRepository_UpdateAndDeleteOfUnknownInvoiceSucceed(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(openTestDB(t), "", nil)
	require.NoError(t, repo.Insert(ctx, sampleInvoice("INV-003")))

	n, err := repo.Update(ctx, entity.InvoiceUpdate{InvoiceNo: str("NOPE"), Shipper: str("x")})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Update(ctx, entity.InvoiceUpdate{Shipper: str("x")})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Delete(ctx, "NOPE")
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestInvoiceRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(openTestDB(t), "", nil)
	require.NoError(t, repo.Insert(ctx, sampleInvoice("INV-004")))
	require.NoError(t, repo.Insert(ctx, sampleInvoice("INV-005")))

	n, err := repo.Delete(ctx, "INV-004")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "INV-005", recs[0]["invoice_no"])
}

func TestInvoiceRepository_SelectAllEmptyTableKeepsColumns(t *testing.T) {
	repo := NewInvoiceRepository(openTestDB(t), "", nil)

	tbl, err := repo.SelectAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, constants.InvoiceColumns, tbl.Columns)
	assert.Empty(t, tbl.Rows)
}

func TestInvoiceRepository_MissingTableFails(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "empty.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db, nil) })

	_, err = NewInvoiceRepository(db, "", nil).List(ctx)
	assert.Error(t, err)
}
