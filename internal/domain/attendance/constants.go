package attendance

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusHalfDay = "half_day"
	StatusRemote  = "remote"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusRemote}

// attendedStatuses count towards the attendance rate.
var attendedStatuses = []string{StatusPresent, StatusLate, StatusHalfDay, StatusRemote}

// StandardWorkMinutes is the working day beyond which time counts as overtime.
const StandardWorkMinutes = 480
