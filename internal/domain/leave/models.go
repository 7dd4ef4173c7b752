package leave

import (
	"strconv"
	"time"

	"hradmin/internal/domain/shared"
)

type EmployeeRef struct {
	ID           int64
	EmployeeCode string
	FirstName    string
	LastName     string
}

type Leave struct {
	ID              int64
	EmployeeID      int64
	LeaveType       string
	StartDate       time.Time
	EndDate         time.Time
	DaysRequested   float64
	Reason          string
	Status          string
	ApprovedBy      *int64
	ApprovedAt      *time.Time
	ApprovalNotes   *string
	RejectionReason *string
	IsHalfDay       bool
	HalfDayPeriod   *string
	Attachments     []string
	AppliedDate     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Employee *EmployeeRef
	Approver *EmployeeRef
}

// Duration renders the request length for display.
func (l Leave) Duration() string {
	if l.IsHalfDay {
		period := ""
		if l.HalfDayPeriod != nil {
			period = *l.HalfDayPeriod
		}
		return "Half Day (" + period + ")"
	}
	if l.DaysRequested == 1 {
		return "1 Day"
	}
	return strconv.FormatFloat(l.DaysRequested, 'f', -1, 64) + " Days"
}

// IsCurrent reports an approved leave that covers today.
func (l Leave) IsCurrent(today time.Time) bool {
	today = shared.DateOnly(today)
	return l.Status == StatusApproved && !l.StartDate.After(today) && !l.EndDate.Before(today)
}

// IsUpcoming reports an approved leave that starts after today.
func (l Leave) IsUpcoming(today time.Time) bool {
	return l.Status == StatusApproved && l.StartDate.After(shared.DateOnly(today))
}

func (l Leave) HasAttachment(key string) bool {
	for _, a := range l.Attachments {
		if a == key {
			return true
		}
	}
	return false
}

type Filter struct {
	EmployeeID int64
	Status     string
	LeaveType  string
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
}

type TypeStatistics struct {
	LeaveType string
	Requests  int64
	Days      float64
}

type Statistics struct {
	Year      int
	Total     int64
	Pending   int64
	Approved  int64
	Rejected  int64
	Cancelled int64
	DaysTaken float64
	ByType    []TypeStatistics
}
