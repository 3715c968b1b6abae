package services

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/Govind-619/ebook-store/models"
	"github.com/jung-kurt/gofpdf"
)

const deletedBookTitle = "(book no longer available)"

// RenderInvoice draws a one-page PDF invoice for an order. Books and owner
// should already be resolved on the order.
func RenderInvoice(order *models.Order) ([]byte, error) {
	return renderInvoice(order, true)
}

func renderInvoice(order *models.Order, compress bool) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	// core fonts are cp1252; user text arrives as UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "E-Book Store")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INVOICE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(50, 8, "Order ID: "+strconv.Itoa(int(order.ID)))
	pdf.Cell(60, 8, "Order Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(50, 8, "Status: "+tr(order.Status))
	pdf.Ln(10)

	if order.Owner != nil {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(100, 8, "Billed To:")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(100, 8, tr(order.Owner.Username))
		pdf.Ln(6)
		pdf.Cell(100, 8, tr(order.Owner.Email))
		pdf.Ln(6)
		if order.Owner.Phone != "" {
			pdf.Cell(100, 8, "Phone: "+tr(order.Owner.Phone))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(80, 8, "Book", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.Items {
		title := deletedBookTitle
		if item.Book != nil {
			title = item.Book.Title
		}
		pdf.CellFormat(80, 8, tr(title), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", roundCents(item.UnitPrice*float64(item.Quantity))), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(130, 10, "Grand Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", order.TotalPrice), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for reading with us!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
