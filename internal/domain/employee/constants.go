package employee

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
	StatusOnLeave    = "on_leave"
)

var Statuses = []string{StatusActive, StatusInactive, StatusTerminated, StatusOnLeave}

const (
	EmploymentFullTime = "full_time"
	EmploymentPartTime = "part_time"
	EmploymentContract = "contract"
	EmploymentIntern   = "intern"
)

var EmploymentTypes = []string{EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentIntern}

var Genders = []string{"male", "female", "other"}
