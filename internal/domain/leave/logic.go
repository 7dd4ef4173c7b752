package leave

import (
	"errors"
	"slices"
	"time"

	"hradmin/internal/domain/shared"
)

// CalculateDays returns the inclusive day count between start and end. A
// half-day request always counts as half a day.
func CalculateDays(start, end time.Time, halfDay bool) (float64, error) {
	start, end = shared.DateOnly(start), shared.DateOnly(end)
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	if halfDay {
		return 0.5, nil
	}
	return float64(shared.DaysBetween(start, end) + 1), nil
}

// CanTransition reports whether a request may move from one status to
// another. Rejected and cancelled requests are final.
func CanTransition(from, to string) bool {
	return from == to || slices.Contains(transitions[from], to)
}

func TypeLabel(leaveType string) string {
	if label, ok := typeLabels[leaveType]; ok {
		return label
	}
	return leaveType
}

func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// Balance is a yearly allowance for one leave type.
type Balance struct {
	EmployeeID int64
	LeaveType  string
	Year       int
	Total      float64
	Used       float64
	Pending    float64
	Remaining  float64
}

func NewBalance(employeeID int64, leaveType string, year int, used, pending float64) Balance {
	total := DefaultEntitlements[leaveType]
	return Balance{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Year:       year,
		Total:      total,
		Used:       used,
		Pending:    pending,
		Remaining:  max(0, total-used-pending),
	}
}
