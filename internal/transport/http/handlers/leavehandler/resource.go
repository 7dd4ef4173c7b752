package leavehandler

import (
	"time"

	"hradmin/internal/domain/leave"
	"hradmin/internal/transport/http/shared"
)

type employeeRef struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

func toEmployeeRef(e *leave.EmployeeRef) *employeeRef {
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
	ID               int64        `json:"id"`
	EmployeeID       int64        `json:"employee_id"`
	LeaveType        string       `json:"leave_type"`
	LeaveTypeDisplay string       `json:"leave_type_display"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	DaysRequested    float64      `json:"days_requested"`
	Duration         string       `json:"duration"`
	Reason           string       `json:"reason"`
	Status           string       `json:"status"`
	StatusDisplay    string       `json:"status_display"`
	ApprovedBy       *int64       `json:"approved_by"`
	ApprovedAt       *string      `json:"approved_at"`
	ApprovalNotes    *string      `json:"approval_notes"`
	RejectionReason  *string      `json:"rejection_reason"`
	IsHalfDay        bool         `json:"is_half_day"`
	HalfDayPeriod    *string      `json:"half_day_period"`
	Attachments      []string     `json:"attachments"`
	AppliedDate      string       `json:"applied_date"`
	IsCurrent        bool         `json:"is_current"`
	IsUpcoming       bool         `json:"is_upcoming"`
	CreatedAt        string       `json:"created_at"`
	UpdatedAt        string       `json:"updated_at"`
	Employee         *employeeRef `json:"employee,omitempty"`
	Approver         *employeeRef `json:"approver,omitempty"`
}

func toResource(l leave.Leave, today time.Time) Resource {
	attachments := l.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return Resource{
		ID:               l.ID,
		EmployeeID:       l.EmployeeID,
		LeaveType:        l.LeaveType,
		LeaveTypeDisplay: leave.TypeLabel(l.LeaveType),
		StartDate:        shared.FormatDate(l.StartDate),
		EndDate:          shared.FormatDate(l.EndDate),
		DaysRequested:    l.DaysRequested,
		Duration:         l.Duration(),
		Reason:           l.Reason,
		Status:           l.Status,
		StatusDisplay:    leave.StatusLabel(l.Status),
		ApprovedBy:       l.ApprovedBy,
		ApprovedAt:       shared.FormatTimestampPtr(l.ApprovedAt),
		ApprovalNotes:    l.ApprovalNotes,
		RejectionReason:  l.RejectionReason,
		IsHalfDay:        l.IsHalfDay,
		HalfDayPeriod:    l.HalfDayPeriod,
		Attachments:      attachments,
		AppliedDate:      shared.FormatDate(l.AppliedDate),
		IsCurrent:        l.IsCurrent(today),
		IsUpcoming:       l.IsUpcoming(today),
		CreatedAt:        shared.FormatTimestamp(l.CreatedAt),
		UpdatedAt:        shared.FormatTimestamp(l.UpdatedAt),
		Employee:         toEmployeeRef(l.Employee),
		Approver:         toEmployeeRef(l.Approver),
	}
}

// calendarEntry is the shape a calendar widget consumes.
type calendarEntry struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Start     string `json:"start"`
	End       string `json:"end"`
	LeaveType string `json:"leave_type"`
	Status    string `json:"status"`
}

func toCalendarEntry(l leave.Leave) calendarEntry {
	title := leave.TypeLabel(l.LeaveType)
	if ref := toEmployeeRef(l.Employee); ref != nil {
		title = ref.FullName + " - " + title
	}
	return calendarEntry{
		ID:        l.ID,
		Title:     title,
		Start:     shared.FormatDate(l.StartDate),
		End:       shared.FormatDate(l.EndDate),
		LeaveType: l.LeaveType,
		Status:    l.Status,
	}
}

type typeStatistics struct {
	LeaveType string  `json:"leave_type"`
	Label     string  `json:"label"`
	Requests  int64   `json:"requests"`
	Days      float64 `json:"days"`
}

type statisticsResource struct {
	Year      int              `json:"year"`
	Total     int64            `json:"total"`
	Pending   int64            `json:"pending"`
	Approved  int64            `json:"approved"`
	Rejected  int64            `json:"rejected"`
	Cancelled int64            `json:"cancelled"`
	DaysTaken float64          `json:"days_taken"`
	ByType    []typeStatistics `json:"by_type"`
}

func toStatistics(s leave.Statistics) statisticsResource {
	byType := make([]typeStatistics, 0, len(s.ByType))
	for _, t := range s.ByType {
		byType = append(byType, typeStatistics{LeaveType: t.LeaveType, Label: leave.TypeLabel(t.LeaveType), Requests: t.Requests, Days: t.Days})
	}
	return statisticsResource{
		Year:      s.Year,
		Total:     s.Total,
		Pending:   s.Pending,
		Approved:  s.Approved,
		Rejected:  s.Rejected,
		Cancelled: s.Cancelled,
		DaysTaken: s.DaysTaken,
		ByType:    byType,
	}
}

type balanceResource struct {
	EmployeeID int64   `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	Year       int     `json:"year"`
	Total      float64 `json:"total"`
	Used       float64 `json:"used"`
	Pending    float64 `json:"pending"`
	Remaining  float64 `json:"remaining"`
}

func toBalance(b leave.Balance) balanceResource {
	return balanceResource{
		EmployeeID: b.EmployeeID,
		LeaveType:  b.LeaveType,
		Year:       b.Year,
		Total:      b.Total,
		Used:       b.Used,
		Pending:    b.Pending,
		Remaining:  b.Remaining,
	}
}
