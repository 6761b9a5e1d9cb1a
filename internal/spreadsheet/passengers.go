// Package spreadsheet implements the xlsx bulk flows of the back office:
// exporting entity lists to workbooks and importing passenger drafts back
// from uploaded workbooks.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alixtron0/tour-backoffice/internal/domain"
)

// ErrBadWorkbook wraps every parse failure of an uploaded workbook so
// callers can distinguish user errors from I/O failures
var ErrBadWorkbook = errors.New("invalid workbook")

// MIMEXLSX is the content type of exported workbooks
const MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const passengerSheet = "Passengers"

// birthDateLayout is the date format used in workbook cells
const birthDateLayout = "2006-01-02"

var passengerHeader = []string{
	"First Name", "Last Name", "Latin First Name", "Latin Last Name",
	"Document Type", "Document Number", "Birth Date", "Gender", "Age Category", "Notes",
}

// ExportPassengers writes the passenger list into an xlsx workbook
func ExportPassengers(passengers []*domain.Passenger) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(passengerSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := writeRow(f, passengerSheet, 1, passengerHeader); err != nil {
		return nil, err
	}

	for i, p := range passengers {
		row := []string{
			p.FirstName,
			p.LastName,
			p.LatinFirstName,
			p.LatinLastName,
			p.DocumentType,
			p.DocumentNumber,
			p.BirthDate.Format(birthDateLayout),
			p.Gender,
			p.AgeCategory,
			p.Notes,
		}
		if err := writeRow(f, passengerSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportPassengers parses an uploaded workbook into passenger drafts. The
// first row is treated as a header; parsing stops with a row-level error
// on the first malformed row.
func ImportPassengers(r io.Reader) ([]*domain.Passenger, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWorkbook, err)
	}
	defer f.Close()

	sheet := passengerSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: no sheets", ErrBadWorkbook)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: no passenger rows", ErrBadWorkbook)
	}

	passengers := make([]*domain.Passenger, 0, len(rows)-1)
	for i, row := range rows[1:] {
		p, err := parsePassengerRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadWorkbook, i+2, err)
		}
		passengers = append(passengers, p)
	}

	return passengers, nil
}

func parsePassengerRow(row []string) (*domain.Passenger, error) {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	p := &domain.Passenger{
		FirstName:      get(0),
		LastName:       get(1),
		LatinFirstName: get(2),
		LatinLastName:  get(3),
		DocumentType:   get(4),
		DocumentNumber: get(5),
		Gender:         get(7),
		AgeCategory:    get(8),
		Notes:          get(9),
	}

	if p.FirstName == "" || p.LastName == "" {
		return nil, fmt.Errorf("passenger name is required")
	}
	if !domain.IsValidDocumentType(p.DocumentType) {
		return nil, fmt.Errorf("invalid document type %q", p.DocumentType)
	}
	if p.DocumentNumber == "" {
		return nil, fmt.Errorf("document number is required")
	}
	if p.Gender != "" && !domain.IsValidGender(p.Gender) {
		return nil, fmt.Errorf("invalid gender %q", p.Gender)
	}
	if p.AgeCategory == "" {
		p.AgeCategory = domain.AgeAdult
	}
	if !domain.IsValidAgeCategory(p.AgeCategory) {
		return nil, fmt.Errorf("invalid age category %q", p.AgeCategory)
	}

	if birth := get(6); birth != "" {
		t, err := time.Parse(birthDateLayout, birth)
		if err != nil {
			return nil, fmt.Errorf("invalid birth date %q", birth)
		}
		p.BirthDate = t
	}

	return p, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}
