package employee

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hradmin/internal/domain/shared"
)

const exportSheet = "Employees"

var exportHeaders = []string{
	"Employee ID", "First Name", "Last Name", "Email", "Phone", "Department", "Position", "Manager",
	"Hire Date", "Employment Type", "Status",
}

// WriteWorkbook renders employees as an XLSX sheet. Salary is included only
// when withSalary is set.
func WriteWorkbook(w io.Writer, employees []Employee, withSalary bool) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	headers := exportHeaders
	if withSalary {
		headers = append(append([]string{}, exportHeaders...), "Salary")
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return err
	}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(exportSheet, cell, h)
		f.SetCellStyle(exportSheet, cell, cell, bold)
		f.SetColWidth(exportSheet, col, col, 18)
	}

	for i, e := range employees {
		row := []any{
			e.EmployeeCode, e.FirstName, e.LastName, e.Email, deref(e.Phone),
			departmentName(e), positionTitle(e), managerName(e),
			e.HireDate.Format(shared.DateLayout), e.EmploymentType, e.Status,
		}
		if withSalary {
			var salary any
			if e.Salary != nil {
				salary = *e.Salary
			}
			row = append(row, salary)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

func departmentName(e Employee) string {
	if e.Department == nil {
		return ""
	}
	return e.Department.Name
}

func positionTitle(e Employee) string {
	if e.Position == nil {
		return ""
	}
	return e.Position.Title
}

func managerName(e Employee) string {
	if e.Manager == nil {
		return ""
	}
	return e.Manager.FullName()
}
