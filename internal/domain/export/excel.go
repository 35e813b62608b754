// Package export renders documents into Excel workbooks for sending to
// customers and brokers.
package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/yochirolee/comercial-sub000/internal/domain/documents"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/customer_offer"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/importer_offer"
	"github.com/yochirolee/comercial-sub000/internal/domain/documents/invoice"
)

const sheetName = "Sheet1"

// ExcelExporter renders documents as .xlsx workbooks.
type ExcelExporter struct{}

// NewExcelExporter creates an Excel exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// CustomerOffer renders a customer offer workbook.
func (e *ExcelExporter) CustomerOffer(doc *customer_offer.CustomerOffer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	writeHeader(f, "CUSTOMER OFFER", doc.Number, doc.Date, doc.Currency)

	row := writeLines(f, doc.Lines, 6)
	writeTotal(f, row, "Total", doc.ProductsTotal)

	return workbookBytes(f)
}

// ImporterOffer renders an importer offer workbook with the CIF breakdown.
func (e *ExcelExporter) ImporterOffer(doc *importer_offer.ImporterOffer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	writeHeader(f, "IMPORTER OFFER (CIF)", doc.Number, doc.Date, doc.Currency)

	row := writeLines(f, doc.Lines, 6)
	row = writeTotal(f, row, "Products total", doc.ProductsTotal)
	row = writeTotal(f, row, "Freight", doc.Freight)
	if doc.InsuranceEnabled {
		row = writeTotal(f, row, "Insurance", doc.Insurance)
	}
	writeTotal(f, row, "CIF total", doc.CIFTotal)

	return workbookBytes(f)
}

// Invoice renders an invoice workbook with the CFR breakdown.
func (e *ExcelExporter) Invoice(doc *invoice.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	writeHeader(f, "COMMERCIAL INVOICE (CFR)", doc.Number, doc.Date, doc.Currency)

	row := writeLines(f, doc.Lines, 6)
	row = writeTotal(f, row, "Products total", doc.ProductsTotal)
	row = writeTotal(f, row, "Freight", doc.Freight)
	writeTotal(f, row, "CFR total", doc.CFRTotal)

	return workbookBytes(f)
}

func writeHeader(f *excelize.File, title, number string, date time.Time, currency string) {
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellValue(sheetName, "A2", "Number")
	f.SetCellValue(sheetName, "B2", number)
	f.SetCellValue(sheetName, "A3", "Date")
	f.SetCellValue(sheetName, "B3", date.Format("2006-01-02"))
	f.SetCellValue(sheetName, "A4", "Currency")
	f.SetCellValue(sheetName, "B4", currency)

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err == nil {
		f.SetCellStyle(sheetName, "A1", "A1", style)
	}
}

// writeLines renders the line table starting at startRow and returns the
// first free row after the table.
func writeLines(f *excelize.File, lines []documents.Line, startRow int) int {
	headers := []string{"#", "Product", "Unit", "Quantity", "Net weight (kg)", "Unit price", "Subtotal"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, startRow)
		f.SetCellValue(sheetName, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		first, _ := excelize.CoordinatesToCellName(1, startRow)
		last, _ := excelize.CoordinatesToCellName(len(headers), startRow)
		f.SetCellStyle(sheetName, first, last, style)
	}

	row := startRow + 1
	for _, l := range lines {
		setRow(f, row,
			l.LineNo,
			l.Description,
			l.Unit,
			decimalCell(l.Quantity),
			decimalCell(l.NetWeight),
			decimalCell(l.Price),
			decimalCell(l.Subtotal),
		)
		row++
	}

	return row + 1
}

func writeTotal(f *excelize.File, row int, label string, amount decimal.Decimal) int {
	labelCell, _ := excelize.CoordinatesToCellName(6, row)
	valueCell, _ := excelize.CoordinatesToCellName(7, row)
	f.SetCellValue(sheetName, labelCell, label)
	f.SetCellValue(sheetName, valueCell, decimalCell(amount))
	return row + 1
}

func setRow(f *excelize.File, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheetName, cell, v)
	}
}

// decimalCell converts a decimal to float64 for cell storage. Amounts are
// already rounded to their display precision, so the conversion is exact
// for any realistic magnitude.
func decimalCell(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func workbookBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
