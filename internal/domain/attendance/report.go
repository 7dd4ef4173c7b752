package attendance

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"hradmin/internal/domain/shared"
)

// WriteSummaryPDF renders a monthly attendance sheet for one employee.
func WriteSummaryPDF(w io.Writer, employeeName string, summary MonthlySummary, records []Attendance) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Attendance Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	period := time.Date(summary.Year, time.Month(summary.Month), 1, 0, 0, 0, 0, time.UTC)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period.Format("January 2006")))
	pdf.Ln(10)

	lines := []string{
		fmt.Sprintf("Days recorded: %d of %d working days", summary.DaysRecorded, summary.WorkingDays),
		fmt.Sprintf("Present: %d  Late: %d  Half day: %d  Remote: %d  Absent: %d",
			summary.PresentDays, summary.LateDays, summary.HalfDays, summary.RemoteDays, summary.AbsentDays),
		fmt.Sprintf("Worked: %s  Overtime: %s",
			FormatMinutes(int(summary.TotalMinutes)), FormatMinutes(int(summary.OvertimeMinutes))),
		fmt.Sprintf("Attendance rate: %.2f%%", summary.AttendanceRate),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(7)
	}
	pdf.Ln(5)

	widths := []float64{30, 22, 22, 30, 30, 30}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Date", "In", "Out", "Worked", "Overtime", "Status"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range records {
		cells := []string{
			r.Date.Format(shared.DateLayout),
			clock(r.ClockIn),
			clock(r.ClockOut),
			FormatMinutes(r.TotalMinutes),
			FormatMinutes(r.OvertimeMinutes),
			r.Status,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

func clock(t *TimeOfDay) string {
	if t == nil {
		return "-"
	}
	return t.String()
}
