package attendance

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"hradmin/internal/domain/shared"
)

type fakeStore struct {
	rows   map[int64]Attendance
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[int64]Attendance{}, nextID: 1}
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (Attendance, error) {
	a, ok := f.rows[id]
	if !ok {
		return Attendance{}, ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) FindByEmployeeAndDate(_ context.Context, employeeID int64, date time.Time) (Attendance, error) {
	for _, a := range f.rows {
		if a.EmployeeID == employeeID && a.Date.Equal(shared.DateOnly(date)) {
			return a, nil
		}
	}
	return Attendance{}, ErrNotFound
}

func (f *fakeStore) List(context.Context) ([]Attendance, error) { return nil, nil }

func (f *fakeStore) Paginate(_ context.Context, page shared.PageRequest, _ Filter) (shared.Page[Attendance], error) {
	return shared.NewPage([]Attendance{}, page, 0), nil
}

func (f *fakeStore) ListByEmployee(context.Context, int64) ([]Attendance, error)       { return nil, nil }
func (f *fakeStore) ListByStatus(context.Context, string) ([]Attendance, error)        { return nil, nil }
func (f *fakeStore) PresentEmployees(context.Context, time.Time) ([]Attendance, error) { return nil, nil }
func (f *fakeStore) AbsentEmployees(context.Context, time.Time) ([]Attendance, error)  { return nil, nil }
func (f *fakeStore) LateEmployees(context.Context, time.Time) ([]Attendance, error)    { return nil, nil }

func (f *fakeStore) ListByEmployeeAndDateRange(context.Context, int64, time.Time, time.Time) ([]Attendance, error) {
	return nil, nil
}

func (f *fakeStore) ListByDateRange(context.Context, time.Time, time.Time) ([]Attendance, error) {
	return nil, nil
}

func (f *fakeStore) TotalMinutes(context.Context, int64, time.Time, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeStore) OvertimeMinutes(context.Context, int64, time.Time, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeStore) AttendedDays(context.Context, int64, time.Time, time.Time) (int64, int64, error) {
	return 18, 22, nil
}

func (f *fakeStore) DailySummary(_ context.Context, date time.Time) (DailySummary, error) {
	return DailySummary{Date: date}, nil
}

func (f *fakeStore) MonthlySummary(_ context.Context, employeeID int64, year int, month time.Month) (MonthlySummary, error) {
	return MonthlySummary{EmployeeID: employeeID, Year: year, Month: int(month)}, nil
}

func (f *fakeStore) Create(_ context.Context, data Data) (int64, error) {
	id := f.nextID
	f.nextID++
	a := Attendance{ID: id}
	apply(&a, data)
	f.rows[id] = a
	return id, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, data Data) (Attendance, error) {
	a, ok := f.rows[id]
	if !ok {
		return Attendance{}, ErrNotFound
	}
	apply(&a, data)
	f.rows[id] = a
	return a, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

func apply(a *Attendance, data Data) {
	if v, ok := data.EmployeeID.Get(); ok {
		a.EmployeeID = v
	}
	if v, ok := data.Date.Get(); ok {
		a.Date = v
	}
	if data.ClockIn.IsSet() {
		a.ClockIn = data.ClockIn.Ptr()
	}
	if data.ClockOut.IsSet() {
		a.ClockOut = data.ClockOut.Ptr()
	}
	if data.BreakStart.IsSet() {
		a.BreakStart = data.BreakStart.Ptr()
	}
	if data.BreakEnd.IsSet() {
		a.BreakEnd = data.BreakEnd.Ptr()
	}
	if v, ok := data.TotalMinutes.Get(); ok {
		a.TotalMinutes = v
	}
	if v, ok := data.OvertimeMinutes.Get(); ok {
		a.OvertimeMinutes = v
	}
	if v, ok := data.Status.Get(); ok {
		a.Status = v
	}
	if data.ApprovedBy.IsSet() {
		a.ApprovedBy = data.ApprovedBy.Ptr()
	}
	if data.ApprovedAt.IsSet() {
		a.ApprovedAt = data.ApprovedAt.Ptr()
	}
}

func tod(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestCalculateMinutesWithBreak(t *testing.T) {
	in, out := tod(t, "09:00"), tod(t, "18:00")
	bs, be := tod(t, "12:00"), tod(t, "13:00")
	total, overtime := CalculateMinutes(&in, &out, &bs, &be)
	if total != 480 || overtime != 0 {
		t.Fatalf("expected 480/0, got %d/%d", total, overtime)
	}
}

func TestCalculateMinutesOvertime(t *testing.T) {
	in, out := tod(t, "08:00"), tod(t, "18:00")
	total, overtime := CalculateMinutes(&in, &out, nil, nil)
	if total != 600 || overtime != 120 {
		t.Fatalf("expected 600/120, got %d/%d", total, overtime)
	}
}

func TestCalculateMinutesNeedsBothEnds(t *testing.T) {
	in := tod(t, "09:00")
	bs := tod(t, "12:00")
	if total, _ := CalculateMinutes(&in, nil, nil, nil); total != 0 {
		t.Fatalf("expected zero without clock-out, got %d", total)
	}
	out := tod(t, "17:00")
	if total, _ := CalculateMinutes(&in, &out, &bs, nil); total != 480 {
		t.Fatalf("expected half-recorded break ignored, got %d", total)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	if got := tod(t, "07:45:30"); got.String() != "07:45" {
		t.Fatalf("expected 07:45, got %s", got)
	}
	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatal("expected invalid hour to fail")
	}
}

func TestTimeOfDayRoundTripsThroughPgtype(t *testing.T) {
	v := NewTimeOfDay(13, 5)
	pt, err := v.TimeValue()
	if err != nil {
		t.Fatal(err)
	}
	var back TimeOfDay
	if err := back.ScanTime(pt); err != nil {
		t.Fatal(err)
	}
	if back != v {
		t.Fatalf("expected %s, got %s", v, back)
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{0: "0h 0m", 480: "8h 0m", 125: "2h 5m", -3: "0h 0m"}
	for in, want := range cases {
		if got := FormatMinutes(in); got != want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateDerivesTotals(t *testing.T) {
	svc := NewService(newFakeStore())
	a, err := svc.Create(context.Background(), Data{
		EmployeeID:   shared.Set(int64(1)),
		Date:         shared.Set(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)),
		ClockIn:      shared.Set(tod(t, "09:00")),
		ClockOut:     shared.Set(tod(t, "18:00")),
		BreakStart:   shared.Set(tod(t, "12:00")),
		BreakEnd:     shared.Set(tod(t, "13:00")),
		TotalMinutes: shared.Set(999),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if a.TotalMinutes != 480 || a.OvertimeMinutes != 0 || a.Status != StatusPresent {
		t.Fatalf("unexpected record %+v", a)
	}
}

func TestUpdateRecomputesFromMergedTimes(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()
	a, _ := svc.Create(ctx, Data{
		EmployeeID: shared.Set(int64(1)),
		Date:       shared.Set(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)),
		ClockIn:    shared.Set(tod(t, "09:00")),
		ClockOut:   shared.Set(tod(t, "17:00")),
	})

	updated, err := svc.Update(ctx, a.ID, Data{ClockOut: shared.Set(tod(t, "19:00"))})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.TotalMinutes != 600 || updated.OvertimeMinutes != 120 {
		t.Fatalf("expected 600/120, got %d/%d", updated.TotalMinutes, updated.OvertimeMinutes)
	}

	noted, _ := svc.Update(ctx, a.ID, Data{Notes: shared.Set("ok")})
	if noted.TotalMinutes != 600 {
		t.Fatalf("expected totals untouched, got %d", noted.TotalMinutes)
	}
}

func TestUpdateRejectsInvertedMergedSpans(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()
	a, _ := svc.Create(ctx, Data{
		EmployeeID: shared.Set(int64(1)),
		Date:       shared.Set(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)),
		ClockIn:    shared.Set(tod(t, "09:00")),
		ClockOut:   shared.Set(tod(t, "17:00")),
		BreakStart: shared.Set(tod(t, "12:00")),
		BreakEnd:   shared.Set(tod(t, "13:00")),
	})

	cases := []struct {
		name  string
		data  Data
		field string
	}{
		{"clock out before stored clock in", Data{ClockOut: shared.Set(tod(t, "08:00"))}, "clock_out"},
		{"clock in after stored clock out", Data{ClockIn: shared.Set(tod(t, "18:00"))}, "clock_out"},
		{"clock out equal to clock in", Data{ClockOut: shared.Set(tod(t, "09:00"))}, "clock_out"},
		{"break end before stored break start", Data{BreakEnd: shared.Set(tod(t, "11:00"))}, "break_end"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *shared.ValidationError
			if _, err := svc.Update(ctx, a.ID, tc.data); !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Fatalf("expected error on %s, got %v", tc.field, verr.Fields)
			}
		})
	}

	stored, _ := svc.Get(ctx, a.ID)
	if stored.TotalMinutes != 420 || stored.ClockOut.String() != "17:00" {
		t.Fatalf("expected record unchanged, got %+v", stored)
	}
}

func TestCreateRejectsClockOutBeforeClockIn(t *testing.T) {
	svc := NewService(newFakeStore())
	var verr *shared.ValidationError
	_, err := svc.Create(context.Background(), Data{
		EmployeeID: shared.Set(int64(1)),
		Date:       shared.Set(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)),
		ClockIn:    shared.Set(tod(t, "17:00")),
		ClockOut:   shared.Set(tod(t, "09:00")),
	})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClockInAndOut(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()
	morning := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	a, err := svc.ClockIn(ctx, 7, morning, &GeoPoint{Latitude: 1, Longitude: 2})
	if err != nil {
		t.Fatalf("clock in failed: %v", err)
	}
	if a.ClockIn == nil || a.ClockIn.String() != "09:00" {
		t.Fatalf("expected clock in at 09:00, got %v", a.ClockIn)
	}

	var conflict *shared.ConflictError
	if _, err := svc.ClockIn(ctx, 7, morning.Add(time.Hour), nil); !errors.As(err, &conflict) {
		t.Fatalf("expected conflict on second clock in, got %v", err)
	}

	out, err := svc.ClockOut(ctx, a.ID, morning.Add(9*time.Hour), nil)
	if err != nil {
		t.Fatalf("clock out failed: %v", err)
	}
	if out.TotalMinutes != 540 || out.OvertimeMinutes != 60 {
		t.Fatalf("expected 540/60, got %d/%d", out.TotalMinutes, out.OvertimeMinutes)
	}
	if _, err := svc.ClockOut(ctx, a.ID, morning.Add(10*time.Hour), nil); !errors.As(err, &conflict) {
		t.Fatalf("expected conflict on second clock out, got %v", err)
	}
}

func TestClockOutWithoutClockIn(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()
	a, _ := svc.Create(ctx, Data{
		EmployeeID: shared.Set(int64(1)),
		Date:       shared.Set(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)),
		Status:     shared.Set(StatusAbsent),
	})
	var conflict *shared.ConflictError
	if _, err := svc.ClockOut(ctx, a.ID, time.Now(), nil); !errors.As(err, &conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestApproveOnce(t *testing.T) {
	svc := NewService(newFakeStore())
	fixed := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }
	ctx := context.Background()
	a, _ := svc.Create(ctx, Data{EmployeeID: shared.Set(int64(1)), Date: shared.Set(fixed)})

	approved, err := svc.Approve(ctx, a.ID, 2)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !approved.IsApproved() || !approved.ApprovedAt.Equal(fixed) {
		t.Fatalf("unexpected approval %+v", approved)
	}
	var conflict *shared.ConflictError
	if _, err := svc.Approve(ctx, a.ID, 2); !errors.As(err, &conflict) {
		t.Fatalf("expected conflict on re-approval, got %v", err)
	}
}

func TestAttendanceRate(t *testing.T) {
	svc := NewService(newFakeStore())
	rate, err := svc.AttendanceRate(context.Background(), 1, time.Now(), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if rate != 81.82 {
		t.Fatalf("expected 81.82, got %v", rate)
	}
	if Rate(3, 0) != 0 {
		t.Fatal("expected zero rate without working days")
	}
}

func TestWriteSummaryPDF(t *testing.T) {
	in, out := NewTimeOfDay(9, 0), NewTimeOfDay(17, 30)
	records := []Attendance{{
		Date:         time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		ClockIn:      &in,
		ClockOut:     &out,
		TotalMinutes: 510,
		Status:       StatusPresent,
	}}
	var buf bytes.Buffer
	err := WriteSummaryPDF(&buf, "Ada Lovelace", MonthlySummary{Year: 2025, Month: 3, DaysRecorded: 1, WorkingDays: 21}, records)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("expected PDF header")
	}
}
