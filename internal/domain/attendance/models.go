package attendance

import (
	"math"
	"time"
)

type EmployeeRef struct {
	ID           int64
	EmployeeCode string
	FirstName    string
	LastName     string
}

// GeoPoint is a clock-in or clock-out location stored as JSON.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type Attendance struct {
	ID               int64
	EmployeeID       int64
	Date             time.Time
	ClockIn          *TimeOfDay
	ClockOut         *TimeOfDay
	BreakStart       *TimeOfDay
	BreakEnd         *TimeOfDay
	TotalMinutes     int
	OvertimeMinutes  int
	Status           string
	Notes            *string
	Location         *string
	ClockInLocation  *GeoPoint
	ClockOutLocation *GeoPoint
	ApprovedBy       *int64
	ApprovedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Employee *EmployeeRef
	Approver *EmployeeRef
}

func (a Attendance) IsLate() bool {
	return a.Status == StatusLate
}

func (a Attendance) IsApproved() bool {
	return a.ApprovedBy != nil && a.ApprovedAt != nil
}

type Filter struct {
	EmployeeID int64
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
}

type DailySummary struct {
	Date           time.Time
	TotalEmployees int64
	Present        int64
	Absent         int64
	Late           int64
	HalfDay        int64
	Remote         int64
	NotRecorded    int64
}

type MonthlySummary struct {
	EmployeeID      int64
	Year            int
	Month           int
	DaysRecorded    int64
	PresentDays     int64
	AbsentDays      int64
	LateDays        int64
	HalfDays        int64
	RemoteDays      int64
	TotalMinutes    int64
	OvertimeMinutes int64
	WorkingDays     int64
	AttendanceRate  float64
}

// Rate is attended over working days as a percentage with two decimals.
func Rate(attended, workingDays int64) float64 {
	if workingDays <= 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(workingDays)*10000) / 100
}
