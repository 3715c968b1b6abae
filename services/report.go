package services

import (
	"fmt"
	"io"

	"github.com/Govind-619/ebook-store/models"
	"github.com/tealeg/xlsx"
)

var orderReportHeaders = []string{"Order ID", "User ID", "User Name", "Email", "Date", "Items", "Quantity", "Total", "Status"}

// WriteOrdersReport writes an XLSX workbook listing orders followed by a
// summary block.
func WriteOrdersReport(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font

	title := sheet.AddRow().AddCell()
	title.SetString("E-Book Store - Orders Report")
	title.SetStyle(bold)
	sheet.AddRow()

	headerRow := sheet.AddRow()
	for _, h := range orderReportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}

	var revenue float64
	byStatus := make(map[string]int, len(models.OrderStatuses))
	for _, order := range orders {
		quantity := 0
		for _, item := range order.Items {
			quantity += item.Quantity
		}
		row := sheet.AddRow()
		row.AddCell().SetInt(int(order.ID))
		row.AddCell().SetInt(int(order.UserID))
		if order.Owner != nil {
			row.AddCell().SetString(order.Owner.Username)
			row.AddCell().SetString(order.Owner.Email)
		} else {
			row.AddCell().SetString("")
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetInt(len(order.Items))
		row.AddCell().SetInt(quantity)
		row.AddCell().SetFloat(order.TotalPrice)
		row.AddCell().SetString(order.Status)

		byStatus[order.Status]++
		if order.Status != models.OrderStatusCancelled {
			revenue += order.TotalPrice
		}
	}

	sheet.AddRow()
	summary := sheet.AddRow().AddCell()
	summary.SetString("Summary")
	summary.SetStyle(bold)

	summaryData := [][]string{
		{"Total Orders", fmt.Sprintf("%d", len(orders))},
		{"Revenue (excluding cancelled)", fmt.Sprintf("%.2f", roundCents(revenue))},
	}
	for _, status := range models.OrderStatuses {
		summaryData = append(summaryData, []string{status, fmt.Sprintf("%d", byStatus[status])})
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
