package attendancehandler

import (
	"context"
	"encoding/json"

	"hradmin/internal/domain/attendance"
	domain "hradmin/internal/domain/shared"
	"hradmin/internal/transport/http/shared"
)

var messages = shared.Messages{
	"employee_id.required":           "Employee is required.",
	"employee_id.exists":             "Selected employee does not exist.",
	"date.required":                  "Date is required.",
	"date.date":                      "Date must be a valid date.",
	"clock_in.date_format":           "Clock in time must be in HH:MM format.",
	"clock_out.date_format":          "Clock out time must be in HH:MM format.",
	"clock_out.after":                "Clock out time must be after clock in time.",
	"break_start.date_format":        "Break start time must be in HH:MM format.",
	"break_end.date_format":          "Break end time must be in HH:MM format.",
	"break_end.after_or_equal":       "Break end time must be after break start time.",
	"status.in":                      "Selected status is invalid.",
	"approved_by.required":           "Approver is required.",
	"approved_by.exists":             "Selected approver does not exist.",
	"location.coordinates":           "Location must include a valid latitude and longitude.",
	"clock_in_location.coordinates":  "Location must include a valid latitude and longitude.",
	"clock_out_location.coordinates": "Location must include a valid latitude and longitude.",
}

// parse validates a store request, or an update of id when id is positive.
func (h *Handler) parse(ctx context.Context, in shared.Input, id int64) (attendance.Data, error) {
	v := shared.ValidatorFor(ctx, in, messages, id)
	data := attendance.Data{
		EmployeeID:       v.ID("employee_id", true, h.employeeExists()),
		Date:             v.Date("date", true),
		ClockIn:          parseTime(v, "clock_in"),
		ClockOut:         parseTime(v, "clock_out"),
		BreakStart:       parseTime(v, "break_start"),
		BreakEnd:         parseTime(v, "break_end"),
		Status:           v.Enum("status", attendance.Statuses, false),
		Notes:            v.String("notes", 1000, false),
		Location:         v.String("location", 255, false),
		ClockInLocation:  parseLocation(v, "clock_in_location"),
		ClockOutLocation: parseLocation(v, "clock_out_location"),
		ApprovedBy:       v.ID("approved_by", false, h.employeeExists()),
	}
	if clockIn, ok := data.ClockIn.Get(); ok {
		if out, ok := data.ClockOut.Get(); ok && out <= clockIn {
			v.Fail("clock_out", "after", "The clock out must be after clock in.")
		}
	}
	if start, ok := data.BreakStart.Get(); ok {
		if end, ok := data.BreakEnd.Get(); ok && end < start {
			v.Fail("break_end", "after_or_equal", "The break end must be after or equal to break start.")
		}
	}
	v.NotNull("status")
	return data, v.Err()
}

// parseTime reads an optional "HH:MM" or "HH:MM:SS" wall-clock time.
func parseTime(v *shared.Validator, field string) domain.Field[attendance.TimeOfDay] {
	value, ok := v.Raw(field, false)
	if !ok {
		return domain.Field[attendance.TimeOfDay]{}
	}
	if value == nil {
		return domain.Null[attendance.TimeOfDay]()
	}
	s, isString := value.(string)
	t, err := attendance.ParseTimeOfDay(s)
	if !isString || err != nil {
		v.Fail(field, "date_format", "The "+field+" does not match the format HH:MM.")
		return domain.Field[attendance.TimeOfDay]{}
	}
	return domain.Set(t)
}

type coordinates struct {
	Latitude  *json.Number `json:"latitude"`
	Longitude *json.Number `json:"longitude"`
	Address   string       `json:"address"`
}

// parseLocation reads an optional {latitude, longitude, address} object.
func parseLocation(v *shared.Validator, field string) domain.Field[attendance.GeoPoint] {
	value, ok := v.Raw(field, false)
	if !ok {
		return domain.Field[attendance.GeoPoint]{}
	}
	if value == nil {
		return domain.Null[attendance.GeoPoint]()
	}
	fail := func() domain.Field[attendance.GeoPoint] {
		v.Fail(field, "coordinates", "The "+field+" must include a valid latitude and longitude.")
		return domain.Field[attendance.GeoPoint]{}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fail()
	}
	var c coordinates
	if err := json.Unmarshal(raw, &c); err != nil || c.Latitude == nil || c.Longitude == nil {
		return fail()
	}
	lat, errLat := c.Latitude.Float64()
	lng, errLng := c.Longitude.Float64()
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fail()
	}
	return domain.Set(attendance.GeoPoint{Latitude: lat, Longitude: lng, Address: c.Address})
}
