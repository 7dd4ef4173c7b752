package performance

const (
	StatusDraft           = "draft"
	StatusPendingEmployee = "pending_employee"
	StatusPendingManager  = "pending_manager"
	StatusCompleted       = "completed"
)

var Statuses = []string{StatusDraft, StatusPendingEmployee, StatusPendingManager, StatusCompleted}

// pendingStatuses are every status before completion.
var pendingStatuses = []string{StatusDraft, StatusPendingEmployee, StatusPendingManager}

const (
	TypeAnnual       = "annual"
	TypeQuarterly    = "quarterly"
	TypeProbation    = "probation"
	TypeProjectBased = "project_based"
)

var Types = []string{TypeAnnual, TypeQuarterly, TypeProbation, TypeProjectBased}

const (
	MinRating = 1
	MaxRating = 5
)

// DueSoonDays is the default look-ahead for reviews that are due.
const DueSoonDays = 7
