package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alixtron0/tour-backoffice/internal/domain"
)

const airlineSheet = "Airlines"

var airlineHeader = []string{
	"Name", "English Name", "Code", "Country", "Contact Phone", "Contact Email", "Active",
}

// ExportAirlines writes the airline list into an xlsx workbook
func ExportAirlines(airlines []*domain.Airline) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(airlineSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := writeRow(f, airlineSheet, 1, airlineHeader); err != nil {
		return nil, err
	}

	for i, a := range airlines {
		active := "no"
		if a.IsActive {
			active = "yes"
		}
		row := []string{
			a.Name,
			a.EnglishName,
			a.Code,
			a.Country,
			a.ContactPhone,
			a.ContactEmail,
			active,
		}
		if err := writeRow(f, airlineSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
