package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/domain/catalogs/product"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/customer_offer"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/invoice"
)

func testProduct(name string) *product.Product {
	return product.NewProduct("PRD-000001", name, "case")
}

func TestExcelExporter_CustomerOffer(t *testing.T) {
	doc := customer_offer.NewCustomerOffer(id.New())
	doc.Number = "OFC-2026-00001"
	doc.AddLine(testProduct("Chicken leg quarters"), decimal.NewFromInt(1000), decimal.RequireFromString("0.50"))
	doc.AddLine(testProduct("Ground beef"), decimal.NewFromInt(500), decimal.RequireFromString("1.20"))

	data, err := NewExcelExporter().CustomerOffer(doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "CUSTOMER OFFER", title)

	number, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "OFC-2026-00001", number)

	firstProduct, err := f.GetCellValue(sheetName, "B7")
	require.NoError(t, err)
	assert.Equal(t, "Chicken leg quarters", firstProduct)

	firstSubtotal, err := f.GetCellValue(sheetName, "G7")
	require.NoError(t, err)
	assert.Equal(t, "500", firstSubtotal)
}

func TestExcelExporter_InvoiceShowsCFRBreakdown(t *testing.T) {
	doc := invoice.NewInvoice(id.New())
	doc.Number = "INV-2026-00042"
	doc.Freight = decimal.RequireFromString("150")

	doc.Lines = append(doc.Lines, documents.NewLine(1, testProduct("Frozen tilapia"),
		decimal.NewFromInt(100), decimal.RequireFromString("8.50")))
	doc.RecalculateTotals()

	data, err := NewExcelExporter().Invoice(doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "COMMERCIAL INVOICE (CFR)", title)

	// One line row at 7, blank row, then products/freight/CFR totals.
	productsLabel, err := f.GetCellValue(sheetName, "F9")
	require.NoError(t, err)
	assert.Equal(t, "Products total", productsLabel)

	cfrValue, err := f.GetCellValue(sheetName, "G11")
	require.NoError(t, err)
	assert.Equal(t, "1000", cfrValue)
}
