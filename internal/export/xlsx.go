// Package export renders detection records into spreadsheet reports.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/price"
)

const sheetName = "Records"

var header = []string{
	"Image ID", "Flyer ID", "Shop", "Item Name", "Corrected Name",
	"Price", "Member Price", "Initial Price", "Valid",
}

// RecordsXLSX renders detection records as an XLSX workbook, one row per
// record, prices formatted in whole units.
func RecordsXLSX(records []domain.DetectionRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	for i, rec := range records {
		row := []any{
			rec.ImageID,
			rec.FlyerID.String(),
			rec.ShopName,
			rec.ItemName,
			rec.ProcessedItemName,
			formatPrice(rec.ProcessedItemPrice),
			formatPrice(rec.ProcessedItemMemberPrice),
			formatPrice(rec.ProcessedItemInitialPrice),
			rec.Valid,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}

func formatPrice(minor *int64) string {
	if minor == nil {
		return ""
	}
	return price.Format(*minor)
}
