package leave

import (
	"errors"
	"fmt"

	"hradmin/internal/domain/shared"
)

var ErrNotFound = fmt.Errorf("leave request %w", shared.ErrNotFound)

// errStatusChanged is returned by SetStatus when the row left the expected
// source states between read and write.
var errStatusChanged = errors.New("leave status changed")

var (
	errOverlap           = shared.Conflict("The employee already has leave booked for these dates.")
	errNotPendingApprove = shared.Conflict("Only pending leave requests can be approved.")
	errNotPendingReject  = shared.Conflict("Only pending leave requests can be rejected.")
	errNotCancellable    = shared.Conflict("Only pending or approved leave requests can be cancelled.")
	errStatusRaced       = shared.Conflict("The leave request status changed while it was being updated.")
)

var constraints = map[string]shared.Constraint{
	"leaves_employee_id_fkey":      {Field: "employee_id", Message: "Selected employee does not exist."},
	"leaves_approved_by_fkey":      {Field: "approved_by", Message: "Selected approver does not exist."},
	"leaves_leave_type_check":      {Field: "leave_type", Message: "Selected leave type is invalid."},
	"leaves_status_check":          {Field: "status", Message: "Selected status is invalid."},
	"leaves_dates_check":           {Field: "end_date", Message: "End date must be after or equal to start date."},
	"leaves_half_day_period_check": {Field: "half_day_period", Message: "Half day period must be morning or afternoon."},
}
