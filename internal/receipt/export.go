package receipt

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Export formats for the expense report
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var reportHeader = []string{"Date", "File", "Item", "Quantity", "Price (IDR)"}

// reportRow is one exported line: a single item of a single receipt
type reportRow struct {
	date     string
	file     string
	item     string
	quantity int
	price    float64
}

// ExportReport renders all stored receipts as a flat expense report, one row
// per line item, ordered by upload date. Supported formats are csv and xlsx.
// It returns the document bytes and its MIME type.
func (s *Service) ExportReport(format string) ([]byte, string, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return nil, "", fmt.Errorf("listing receipts: %w", err)
	}

	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].UploadDate.Before(receipts[j].UploadDate)
	})

	var rows []reportRow
	for _, r := range receipts {
		for _, item := range r.Items {
			rows = append(rows, reportRow{
				date:     r.UploadDate.Format("2006-01-02"),
				file:     r.Filename,
				item:     item.Name,
				quantity: item.Quantity,
				price:    item.Subtotal,
			})
		}
	}

	switch format {
	case FormatCSV, "":
		data, err := renderCSV(rows)
		if err != nil {
			return nil, "", err
		}
		return data, "text/csv", nil
	case FormatXLSX:
		data, err := renderXLSX(rows)
		if err != nil {
			return nil, "", err
		}
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	default:
		return nil, "", fmt.Errorf("unsupported report format: %s", format)
	}
}

func renderCSV(rows []reportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeader); err != nil {
		return nil, fmt.Errorf("writing report header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.date,
			row.file,
			row.item,
			strconv.Itoa(row.quantity),
			strconv.FormatFloat(row.price, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing report: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows []reportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Expenses"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("locating header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("writing header cell: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{row.date, row.file, row.item, row.quantity, row.price}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("locating cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("writing cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
