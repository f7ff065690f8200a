package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrWorkbookEmpty     = errors.New("workbook has no data rows below the header")
	ErrWorkbookBadHeader = errors.New("workbook header is missing the employee code column")
	ErrTooManyRows       = errors.New("workbook exceeds the row limit")
)

// field identifiers used for header mapping.
const (
	colEmployeeCode   = "employeeCode"
	colName           = "name"
	colLocation       = "location"
	colDepartment     = "department"
	colJobTitle       = "jobTitle"
	colDirectManager  = "directManager"
	colSocialSecurity = "socialSecurity"
	colHireDate       = "hireDate"
	colContractTerm   = "contractDuration"
	colContractStart  = "contractStart"
	colContractEnd    = "contractEnd"
	colContractSeq    = "contractSequence"
	colGapStart       = "gapStart"
	colGapEnd         = "gapEnd"
)

// headerAliases maps accepted header spellings, English and Arabic, to
// field identifiers. Matching is case-insensitive and first match wins.
var headerAliases = map[string]string{
	"employee code":          colEmployeeCode,
	"employee number":        colEmployeeCode,
	"code":                   colEmployeeCode,
	"الرقم الوظيفي":          colEmployeeCode,
	"رقم الموظف":             colEmployeeCode,
	"name":                   colName,
	"employee name":          colName,
	"الاسم":                  colName,
	"اسم الموظف":             colName,
	"location":               colLocation,
	"الموقع":                 colLocation,
	"department":             colDepartment,
	"القسم":                  colDepartment,
	"الادارة":                colDepartment,
	"الإدارة":                colDepartment,
	"job title":              colJobTitle,
	"position":               colJobTitle,
	"المسمى الوظيفي":         colJobTitle,
	"الوظيفة":                colJobTitle,
	"direct manager":         colDirectManager,
	"manager":                colDirectManager,
	"المدير المباشر":         colDirectManager,
	"national id":            colSocialSecurity,
	"social security number": colSocialSecurity,
	"الرقم القومي":           colSocialSecurity,
	"الرقم التأميني":         colSocialSecurity,
	"hire date":              colHireDate,
	"تاريخ التعيين":          colHireDate,
	"contract duration":      colContractTerm,
	"مدة العقد":              colContractTerm,
	"contract start date":    colContractStart,
	"contract start":         colContractStart,
	"تاريخ بداية العقد":      colContractStart,
	"contract end date":      colContractEnd,
	"contract end":           colContractEnd,
	"تاريخ نهاية العقد":      colContractEnd,
	"contract sequence":      colContractSeq,
	"contract number":        colContractSeq,
	"رقم العقد":              colContractSeq,
	"gap start date":         colGapStart,
	"تاريخ بداية الانقطاع":   colGapStart,
	"gap end date":           colGapEnd,
	"تاريخ نهاية الانقطاع":   colGapEnd,
}

// ParseWorkbook reads the first sheet of an .xlsx batch into rows.
// Columns are located by header alias, so column order in the file
// does not matter. Fully empty rows are skipped.
func ParseWorkbook(reader io.Reader, maxRows int) ([]Row, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	cells, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	if len(cells) < 2 {
		return nil, ErrWorkbookEmpty
	}

	index := headerIndex(cells[0])
	if _, ok := index[colEmployeeCode]; !ok {
		return nil, ErrWorkbookBadHeader
	}

	var rows []Row
	for i, line := range cells[1:] {
		cell := func(field string) string {
			idx, ok := index[field]
			if !ok || idx >= len(line) {
				return ""
			}
			return strings.TrimSpace(line[idx])
		}
		row := Row{
			EmployeeCode:         cell(colEmployeeCode),
			Name:                 cell(colName),
			Location:             cell(colLocation),
			Department:           cell(colDepartment),
			JobTitle:             cell(colJobTitle),
			DirectManager:        cell(colDirectManager),
			SocialSecurityNumber: cell(colSocialSecurity),
			HireDate:             cell(colHireDate),
			ContractDuration:     cell(colContractTerm),
			ContractStartDate:    cell(colContractStart),
			ContractEndDate:      cell(colContractEnd),
			ContractSequence:     cell(colContractSeq),
			GapStartDate:         cell(colGapStart),
			GapEndDate:           cell(colGapEnd),
		}
		if row == (Row{}) {
			continue
		}
		row.SourceRow = i + 2 // 1-based, header on row 1
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrWorkbookEmpty
	}
	if maxRows > 0 && len(rows) > maxRows {
		return nil, fmt.Errorf("%w (%d rows, limit %d)", ErrTooManyRows, len(rows), maxRows)
	}
	return rows, nil
}

func headerIndex(header []string) map[string]int {
	index := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		field, ok := headerAliases[key]
		if !ok {
			continue
		}
		if _, taken := index[field]; !taken {
			index[field] = i
		}
	}
	return index
}

var templateHeaders = []string{
	"Employee Code", "Name", "Location", "Department", "Job Title",
	"Direct Manager", "National ID", "Hire Date", "Contract Duration",
	"Contract Start Date", "Contract End Date", "Contract Sequence",
	"Gap Start Date", "Gap End Date",
}

// Template builds the downloadable one-row sample workbook.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)

	for i, header := range templateHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, 18); err != nil {
			return nil, err
		}
	}

	sample := []any{
		"EMP-001", "Sara Ahmed", "Riyadh", "Engineering", "Developer",
		"Omar Khalid", "1012345678", "2024-03-15", "12 months",
		"2024-03-15", "2025-03-14", "1", "", "",
	}
	for i, value := range sample {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return nil, err
		}
	}
	return f, nil
}
