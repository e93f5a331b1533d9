package service

import (
	"context"
	"fmt"

	"bookstore-catalog/internal/domains/book/model"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Books"

var exportHeaders = []string{
	"ID", "Title", "Author", "ISBN", "Genre", "Price", "Stock", "Published", "Description", "Created At", "Updated At",
}

// ExportToExcel renders one list page (served through the cached List path)
// as a workbook with a Books sheet and a Summary sheet.
func ExportToExcel(ctx context.Context, svc ServiceInterface, filter model.BookFilter, page, pageSize int) (*excelize.File, error) {
	books, err := svc.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	total, err := svc.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	f, err := buildBooksWorkbook(books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"Genre", filter.Genre},
		{"Author", filter.Author},
		{"Page", page},
		{"Page Size", pageSize},
		{"Exported", len(books)},
		{"Total Matching", total},
	}
	for i, row := range summary {
		if err := f.SetSheetRow("Summary", fmt.Sprintf("A%d", i+1), &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func buildBooksWorkbook(books []model.Book) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	for i, b := range books {
		published := ""
		if b.PublishedDate != nil {
			published = b.PublishedDate.Format("2006-01-02")
		}
		price, _ := b.Price.Float64()
		row := []any{
			b.ID, b.Title, b.Author, b.ISBN, b.Genre, price, b.StockQuantity, published, b.Description,
			b.CreatedAt.Format("2006-01-02 15:04:05"), b.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(exportSheet, "B", "B", 40)
	_ = f.SetColWidth(exportSheet, "I", "I", 60)
	return f, nil
}
