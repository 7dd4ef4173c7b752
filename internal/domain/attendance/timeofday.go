package attendance

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// TimeOfDay is a wall-clock time in whole minutes since midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay accepts "15:04" and "15:04:05". Seconds are truncated.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// At returns the time of day of t in its own location.
func At(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) TimeValue() (pgtype.Time, error) {
	return pgtype.Time{Microseconds: int64(t) * int64(time.Minute/time.Microsecond), Valid: true}, nil
}

func (t *TimeOfDay) ScanTime(v pgtype.Time) error {
	if !v.Valid {
		return fmt.Errorf("cannot scan NULL into TimeOfDay")
	}
	*t = TimeOfDay(v.Microseconds / int64(time.Minute/time.Microsecond))
	return nil
}

// CalculateMinutes returns worked and overtime minutes for a day. Both are
// zero until the day has a clock-in and a clock-out. A break counts only when
// both ends are recorded.
func CalculateMinutes(clockIn, clockOut, breakStart, breakEnd *TimeOfDay) (total, overtime int) {
	if clockIn == nil || clockOut == nil {
		return 0, 0
	}
	total = absDiff(*clockIn, *clockOut)
	if breakStart != nil && breakEnd != nil {
		total -= absDiff(*breakStart, *breakEnd)
	}
	if total < 0 {
		total = 0
	}
	return total, max(0, total-StandardWorkMinutes)
}

func absDiff(a, b TimeOfDay) int {
	if b < a {
		return int(a - b)
	}
	return int(b - a)
}

// FormatMinutes renders minutes as "{h}h {m}m".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0h 0m"
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
