package position

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var Statuses = []string{StatusActive, StatusInactive}

const (
	LevelEntry     = "entry"
	LevelJunior    = "junior"
	LevelMid       = "mid"
	LevelSenior    = "senior"
	LevelLead      = "lead"
	LevelManager   = "manager"
	LevelDirector  = "director"
	LevelExecutive = "executive"
)

// Levels is ordered from most junior to most senior.
var Levels = []string{LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelLead, LevelManager, LevelDirector, LevelExecutive}
