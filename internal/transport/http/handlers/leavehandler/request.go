package leavehandler

import (
	"context"

	"hradmin/internal/domain/leave"
	"hradmin/internal/transport/http/shared"
)

var messages = shared.Messages{
	"employee_id.required":      "Employee is required.",
	"employee_id.exists":        "Selected employee does not exist.",
	"leave_type.required":       "Leave type is required.",
	"leave_type.in":             "Selected leave type is invalid.",
	"start_date.required":       "Start date is required.",
	"end_date.required":         "End date is required.",
	"end_date.after_or_equal":   "End date must be after or equal to start date.",
	"reason.required":           "Reason for leave is required.",
	"reason.max":                "Reason may not be greater than 1000 characters.",
	"status.in":                 "Selected status is invalid.",
	"approved_by.exists":        "Selected approver does not exist.",
	"half_day_period.required":  "Half day period is required for half day leave.",
	"half_day_period.in":        "Half day period must be morning or afternoon.",
	"rejection_reason.required": "A rejection reason is required.",
	"is_half_day.boolean":       "Half day must be true or false.",
}

// parse validates a store request, or an update of id when id is positive.
func (h *Handler) parse(ctx context.Context, in shared.Input, id int64) (leave.Data, error) {
	v := shared.ValidatorFor(ctx, in, messages, id)
	data := leave.Data{
		EmployeeID:      v.ID("employee_id", true, h.employeeExists()),
		LeaveType:       v.Enum("leave_type", leave.Types, true),
		StartDate:       v.Date("start_date", true),
		EndDate:         v.Date("end_date", true),
		Reason:          v.String("reason", 1000, true),
		Status:          v.Enum("status", leave.Statuses, false),
		ApprovedBy:      v.ID("approved_by", false, h.employeeExists()),
		ApprovalNotes:   v.String("approval_notes", 1000, false),
		RejectionReason: v.String("rejection_reason", 1000, false),
		IsHalfDay:       v.Bool("is_half_day"),
	}
	halfDay := data.IsHalfDay.Or(false)
	data.HalfDayPeriod = v.Enum("half_day_period", leave.HalfDayPeriods, halfDay)
	if halfDay && v.Partial() && !in.Has("half_day_period") {
		v.Fail("half_day_period", "required", "The half day period field is required.")
	}
	v.NotNull("status", "is_half_day")
	v.NotBefore("end_date", data.EndDate, data.StartDate, "start_date")
	return data, v.Err()
}
