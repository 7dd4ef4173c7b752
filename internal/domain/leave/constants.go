package leave

const (
	TypeAnnual       = "annual"
	TypeSick         = "sick"
	TypeMaternity    = "maternity"
	TypePaternity    = "paternity"
	TypeEmergency    = "emergency"
	TypeUnpaid       = "unpaid"
	TypeCompensatory = "compensatory"
)

var Types = []string{TypeAnnual, TypeSick, TypeMaternity, TypePaternity, TypeEmergency, TypeUnpaid, TypeCompensatory}

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

var Statuses = []string{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

var transitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled},
}

// activeStatuses block overlapping requests.
var activeStatuses = []string{StatusPending, StatusApproved}

const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
)

var HalfDayPeriods = []string{PeriodMorning, PeriodAfternoon}

// DefaultEntitlements is the yearly allowance in days per leave type.
var DefaultEntitlements = map[string]float64{
	TypeAnnual:       21,
	TypeSick:         10,
	TypeMaternity:    90,
	TypePaternity:    10,
	TypeEmergency:    3,
	TypeUnpaid:       0,
	TypeCompensatory: 5,
}

var typeLabels = map[string]string{
	TypeAnnual:       "Annual Leave",
	TypeSick:         "Sick Leave",
	TypeMaternity:    "Maternity Leave",
	TypePaternity:    "Paternity Leave",
	TypeEmergency:    "Emergency Leave",
	TypeUnpaid:       "Unpaid Leave",
	TypeCompensatory: "Compensatory Leave",
}

var statusLabels = map[string]string{
	StatusPending:   "Pending Approval",
	StatusApproved:  "Approved",
	StatusRejected:  "Rejected",
	StatusCancelled: "Cancelled",
}
