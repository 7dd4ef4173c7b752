package attendancehandler

import (
	"hradmin/internal/domain/attendance"
	"hradmin/internal/transport/http/shared"
)

type employeeRef struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

func toEmployeeRef(e *attendance.EmployeeRef) *employeeRef {
	if e == nil {
		return nil
	}
	name := e.FirstName
	if e.LastName != "" {
		name += " " + e.LastName
	}
	return &employeeRef{ID: e.ID, EmployeeCode: e.EmployeeCode, FullName: name}
}

type Resource struct {
	ID                     int64                `json:"id"`
	EmployeeID             int64                `json:"employee_id"`
	Date                   string               `json:"date"`
	ClockIn                *string              `json:"clock_in"`
	ClockOut               *string              `json:"clock_out"`
	BreakStart             *string              `json:"break_start"`
	BreakEnd               *string              `json:"break_end"`
	TotalMinutes           int                  `json:"total_minutes"`
	OvertimeMinutes        int                  `json:"overtime_minutes"`
	TotalHoursFormatted    string               `json:"total_hours_formatted"`
	OvertimeHoursFormatted string               `json:"overtime_hours_formatted"`
	Status                 string               `json:"status"`
	IsLate                 bool                 `json:"is_late"`
	IsApproved             bool                 `json:"is_approved"`
	Notes                  *string              `json:"notes"`
	Location               *string              `json:"location"`
	ClockInLocation        *attendance.GeoPoint `json:"clock_in_location"`
	ClockOutLocation       *attendance.GeoPoint `json:"clock_out_location"`
	ApprovedBy             *int64               `json:"approved_by"`
	ApprovedAt             *string              `json:"approved_at"`
	CreatedAt              string               `json:"created_at"`
	UpdatedAt              string               `json:"updated_at"`
	Employee               *employeeRef         `json:"employee,omitempty"`
	Approver               *employeeRef         `json:"approver,omitempty"`
}

func clock(t *attendance.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

func toResource(a attendance.Attendance) Resource {
	return Resource{
		ID:                     a.ID,
		EmployeeID:             a.EmployeeID,
		Date:                   shared.FormatDate(a.Date),
		ClockIn:                clock(a.ClockIn),
		ClockOut:               clock(a.ClockOut),
		BreakStart:             clock(a.BreakStart),
		BreakEnd:               clock(a.BreakEnd),
		TotalMinutes:           a.TotalMinutes,
		OvertimeMinutes:        a.OvertimeMinutes,
		TotalHoursFormatted:    attendance.FormatMinutes(a.TotalMinutes),
		OvertimeHoursFormatted: attendance.FormatMinutes(a.OvertimeMinutes),
		Status:                 a.Status,
		IsLate:                 a.IsLate(),
		IsApproved:             a.IsApproved(),
		Notes:                  a.Notes,
		Location:               a.Location,
		ClockInLocation:        a.ClockInLocation,
		ClockOutLocation:       a.ClockOutLocation,
		ApprovedBy:             a.ApprovedBy,
		ApprovedAt:             shared.FormatTimestampPtr(a.ApprovedAt),
		CreatedAt:              shared.FormatTimestamp(a.CreatedAt),
		UpdatedAt:              shared.FormatTimestamp(a.UpdatedAt),
		Employee:               toEmployeeRef(a.Employee),
		Approver:               toEmployeeRef(a.Approver),
	}
}

type dailySummaryResource struct {
	Date           string `json:"date"`
	TotalEmployees int64  `json:"total_employees"`
	Present        int64  `json:"present"`
	Absent         int64  `json:"absent"`
	Late           int64  `json:"late"`
	HalfDay        int64  `json:"half_day"`
	Remote         int64  `json:"remote"`
	NotRecorded    int64  `json:"not_recorded"`
}

func toDailySummary(s attendance.DailySummary) dailySummaryResource {
	return dailySummaryResource{
		Date:           shared.FormatDate(s.Date),
		TotalEmployees: s.TotalEmployees,
		Present:        s.Present,
		Absent:         s.Absent,
		Late:           s.Late,
		HalfDay:        s.HalfDay,
		Remote:         s.Remote,
		NotRecorded:    s.NotRecorded,
	}
}

type monthlySummaryResource struct {
	EmployeeID             int64   `json:"employee_id"`
	Year                   int     `json:"year"`
	Month                  int     `json:"month"`
	DaysRecorded           int64   `json:"days_recorded"`
	WorkingDays            int64   `json:"working_days"`
	PresentDays            int64   `json:"present_days"`
	AbsentDays             int64   `json:"absent_days"`
	LateDays               int64   `json:"late_days"`
	HalfDays               int64   `json:"half_days"`
	RemoteDays             int64   `json:"remote_days"`
	TotalMinutes           int64   `json:"total_minutes"`
	OvertimeMinutes        int64   `json:"overtime_minutes"`
	TotalHoursFormatted    string  `json:"total_hours_formatted"`
	OvertimeHoursFormatted string  `json:"overtime_hours_formatted"`
	AttendanceRate         float64 `json:"attendance_rate"`
}

func toMonthlySummary(s attendance.MonthlySummary) monthlySummaryResource {
	return monthlySummaryResource{
		EmployeeID:             s.EmployeeID,
		Year:                   s.Year,
		Month:                  s.Month,
		DaysRecorded:           s.DaysRecorded,
		WorkingDays:            s.WorkingDays,
		PresentDays:            s.PresentDays,
		AbsentDays:             s.AbsentDays,
		LateDays:               s.LateDays,
		HalfDays:               s.HalfDays,
		RemoteDays:             s.RemoteDays,
		TotalMinutes:           s.TotalMinutes,
		OvertimeMinutes:        s.OvertimeMinutes,
		TotalHoursFormatted:    attendance.FormatMinutes(int(s.TotalMinutes)),
		OvertimeHoursFormatted: attendance.FormatMinutes(int(s.OvertimeMinutes)),
		AttendanceRate:         s.AttendanceRate,
	}
}

type monthlyResource struct {
	Summary monthlySummaryResource `json:"summary"`
	Records []Resource             `json:"records"`
}

type rateResource struct {
	EmployeeID             int64   `json:"employee_id"`
	Start                  string  `json:"start"`
	End                    string  `json:"end"`
	AttendanceRate         float64 `json:"attendance_rate"`
	TotalMinutes           int64   `json:"total_minutes"`
	OvertimeMinutes        int64   `json:"overtime_minutes"`
	TotalHoursFormatted    string  `json:"total_hours_formatted"`
	OvertimeHoursFormatted string  `json:"overtime_hours_formatted"`
}
