package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

// In-memory collaborators standing in for the Postgres store.

type fakeEvents struct {
	events []*models.AttendanceEvent
}

func (f *fakeEvents) EventsForDate(userID, dateString string) ([]*models.AttendanceEvent, error) {
	out := []*models.AttendanceEvent{}
	for _, ev := range f.events {
		if ev.UserID == userID && ev.DateString == dateString {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEvents) Insert(ev *models.AttendanceEvent) (bool, error) {
	// Mirrors the unique (user, date, kind) index.
	for _, existing := range f.events {
		if existing.UserID == ev.UserID && existing.DateString == ev.DateString && existing.Kind == ev.Kind {
			return false, nil
		}
	}
	f.events = append(f.events, ev)
	return true, nil
}

func (f *fakeEvents) DeleteForDate(userID, dateString string) (int, error) {
	kept := f.events[:0]
	removed := 0
	for _, ev := range f.events {
		if ev.UserID == userID && ev.DateString == dateString {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	f.events = kept
	return removed, nil
}

type fakeCodes struct {
	latest *models.DailyCode
}

func (f *fakeCodes) LatestCode() (*models.DailyCode, error) { return f.latest, nil }

func (f *fakeCodes) CreateCode(code, dateString string) (*models.DailyCode, error) {
	f.latest = &models.DailyCode{ID: "code-1", Code: code, DateString: dateString, CreatedAt: time.Now()}
	return f.latest, nil
}

type fakeConfig struct {
	settings *models.HolidaySettings
	network  *models.NetworkConfig
}

func (f *fakeConfig) HolidaySettings() (*models.HolidaySettings, error) {
	if f.settings == nil {
		return models.DefaultHolidaySettings(), nil
	}
	return f.settings, nil
}

func (f *fakeConfig) NetworkConfig() (*models.NetworkConfig, error) {
	if f.network == nil {
		return &models.NetworkConfig{}, nil
	}
	return f.network, nil
}

type fakeProfiles struct {
	profiles map[string]*models.TeacherProfile
}

func (f *fakeProfiles) Profile(userID string) (*models.TeacherProfile, error) {
	return f.profiles[userID], nil
}

func testEngine(at time.Time) (*Engine, *fakeEvents, *fakeCodes, *fakeConfig, *fakeProfiles) {
	events := &fakeEvents{}
	codes := &fakeCodes{}
	config := &fakeConfig{}
	profiles := &fakeProfiles{profiles: map[string]*models.TeacherProfile{}}
	engine := NewEngine(events, codes, config, profiles)
	engine.Now = func() time.Time { return at }
	return engine, events, codes, config, profiles
}

func activeCodeFor(t time.Time, code string) *models.DailyCode {
	return &models.DailyCode{ID: "code-1", Code: code, DateString: DateString(t), CreatedAt: t}
}

func TestParseScanPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"structured payload", `{"type":"school_attendance","code":"AB12CD"}`, "AB12CD"},
		{"plain code", "AB12CD", "AB12CD"},
		{"wrong type falls back to raw", `{"type":"other","code":"AB12CD"}`, `{"type":"other","code":"AB12CD"}`},
		{"empty code falls back to raw", `{"type":"school_attendance","code":""}`, `{"type":"school_attendance","code":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseScanPayload(tt.raw); got != tt.want {
				t.Errorf("ParseScanPayload(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMarkArrivalSuccess(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 45, 0, 0, time.Local)
	engine, _, codes, _, _ := testEngine(now)
	codes.latest = activeCodeFor(now, "AB12CD")

	ev, err := engine.Mark(MarkRequest{
		UserID:         "u1",
		UserName:       "Asha",
		Kind:           models.KindArrival,
		ScannedPayload: `{"type":"school_attendance","code":"AB12CD"}`,
		CallerIP:       "203.0.113.5",
	})
	if err != nil {
		t.Fatalf("Mark() error = %v", err)
	}
	if ev.Kind != models.KindArrival || ev.DateString != "2026-03-16" {
		t.Errorf("event = %+v", ev)
	}
	if ev.IsLate {
		t.Error("8:45 arrival should not be late with a 09:00 + 15 min limit")
	}
	if !ev.NetworkVerified || ev.Method != MarkMethod || ev.QRCodeUsed != "AB12CD" {
		t.Errorf("verification fields = %+v", ev)
	}
}

func TestMarkNoActiveCode(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)

	t.Run("no code at all", func(t *testing.T) {
		engine, _, _, _, _ := testEngine(now)
		_, err := engine.Mark(MarkRequest{UserID: "u1", Kind: models.KindArrival, ScannedPayload: "AB12CD"})
		if !errors.Is(err, ErrNoActiveCode) {
			t.Errorf("err = %v, want ErrNoActiveCode", err)
		}
	})

	t.Run("yesterday's code is stale", func(t *testing.T) {
		engine, _, codes, _, _ := testEngine(now)
		codes.latest = &models.DailyCode{Code: "AB12CD", DateString: "2026-03-15"}
		_, err := engine.Mark(MarkRequest{UserID: "u1", Kind: models.KindArrival, ScannedPayload: "AB12CD"})
		if !errors.Is(err, ErrNoActiveCode) {
			t.Errorf("err = %v, want ErrNoActiveCode", err)
		}
	})
}

func TestMarkNetworkGate(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)
	engine, _, codes, config, _ := testEngine(now)
	codes.latest = activeCodeFor(now, "AB12CD")
	config.network = &models.NetworkConfig{SchoolIP: "203.0.113.5"}

	_, err := engine.Mark(MarkRequest{
		UserID: "u1", Kind: models.KindArrival,
		ScannedPayload: "AB12CD", CallerIP: "203.0.113.9",
	})
	var mismatch *NetworkMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want NetworkMismatchError", err)
	}
	if mismatch.Required != "203.0.113.5" || mismatch.Actual != "203.0.113.9" {
		t.Errorf("mismatch = %+v", mismatch)
	}

	// Matching address passes the gate.
	if _, err := engine.Mark(MarkRequest{
		UserID: "u1", Kind: models.KindArrival,
		ScannedPayload: "AB12CD", CallerIP: "203.0.113.5",
	}); err != nil {
		t.Errorf("matching IP: err = %v", err)
	}
}

func TestMarkCodeMismatch(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)
	engine, _, codes, _, _ := testEngine(now)
	codes.latest = activeCodeFor(now, "AB12CD")

	_, err := engine.Mark(MarkRequest{UserID: "u1", Kind: models.KindArrival, ScannedPayload: "ZZ99ZZ"})
	var mismatch *CodeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want CodeMismatchError", err)
	}
	if mismatch.Scanned != "ZZ99ZZ" {
		t.Errorf("scanned = %q", mismatch.Scanned)
	}
}

func TestMarkOrderingAndDuplicates(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)
	engine, _, codes, _, _ := testEngine(now)
	codes.latest = activeCodeFor(now, "AB12CD")
	req := func(kind models.EventKind) MarkRequest {
		return MarkRequest{UserID: "u1", UserName: "Asha", Kind: kind, ScannedPayload: "AB12CD"}
	}

	if _, err := engine.Mark(req(models.KindLeaving)); !errors.Is(err, ErrArrivalMissing) {
		t.Errorf("leaving before arrival: err = %v, want ErrArrivalMissing", err)
	}
	if _, err := engine.Mark(req(models.KindArrival)); err != nil {
		t.Fatalf("arrival: err = %v", err)
	}
	if _, err := engine.Mark(req(models.KindArrival)); !errors.Is(err, ErrAlreadyMarked) {
		t.Errorf("second arrival: err = %v, want ErrAlreadyMarked", err)
	}
	if _, err := engine.Mark(req(models.KindLeaving)); err != nil {
		t.Fatalf("leaving: err = %v", err)
	}
	if _, err := engine.Mark(req(models.KindLeaving)); !errors.Is(err, ErrAlreadyMarked) {
		t.Errorf("second leaving: err = %v, want ErrAlreadyMarked", err)
	}
}

func TestMarkInsertRaceLoses(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)
	engine, events, codes, _, _ := testEngine(now)
	codes.latest = activeCodeFor(now, "AB12CD")

	// Another device committed the slot after our read.
	events.events = append(events.events, &models.AttendanceEvent{
		UserID: "u2", DateString: DateString(now), Kind: models.KindArrival,
	})
	engine.Events = &racingEvents{inner: events}

	_, err := engine.Mark(MarkRequest{UserID: "u1", Kind: models.KindArrival, ScannedPayload: "AB12CD"})
	if !errors.Is(err, ErrAlreadyMarked) {
		t.Errorf("err = %v, want ErrAlreadyMarked", err)
	}
}

// racingEvents reads an empty day but refuses the insert, simulating a
// concurrent commit between the read and the write.
type racingEvents struct {
	inner *fakeEvents
}

func (r *racingEvents) EventsForDate(userID, dateString string) ([]*models.AttendanceEvent, error) {
	return nil, nil
}

func (r *racingEvents) Insert(ev *models.AttendanceEvent) (bool, error) { return false, nil }

func (r *racingEvents) DeleteForDate(userID, dateString string) (int, error) {
	return r.inner.DeleteForDate(userID, dateString)
}

func TestMarkLatenessBoundary(t *testing.T) {
	tests := []struct {
		clock string
		late  bool
	}{
		{"09:14", false},
		{"09:15", false}, // exactly the limit is on time
		{"09:16", true},
	}
	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			mins, ok := parseClock(tt.clock)
			if !ok {
				t.Fatalf("bad clock %q", tt.clock)
			}
			now := time.Date(2026, 3, 16, mins/60, mins%60, 0, 0, time.Local)
			engine, _, codes, _, _ := testEngine(now)
			codes.latest = activeCodeFor(now, "AB12CD")

			ev, err := engine.Mark(MarkRequest{UserID: "u1", Kind: models.KindArrival, ScannedPayload: "AB12CD"})
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if ev.IsLate != tt.late {
				t.Errorf("IsLate at %s = %v, want %v", tt.clock, ev.IsLate, tt.late)
			}
		})
	}
}

func TestMarkCustomArrivalTime(t *testing.T) {
	// 09:00 arrival is within the global 09:00+15 window but past a
	// personal 08:30+15 one.
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)
	engine, _, codes, _, profiles := testEngine(now)
	codes.latest = activeCodeFor(now, "AB12CD")
	profiles.profiles["u1"] = &models.TeacherProfile{ID: "u1", CustomArrivalTime: "08:30"}

	ev, err := engine.Mark(MarkRequest{UserID: "u1", Kind: models.KindArrival, ScannedPayload: "AB12CD"})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if !ev.IsLate {
		t.Error("09:00 should be late against a personal 08:30 threshold")
	}
}

func TestStatus(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)
	engine, events, codes, config, _ := testEngine(now)
	codes.latest = activeCodeFor(now, "AB12CD")
	config.network = &models.NetworkConfig{SchoolIP: "203.0.113.5"}
	events.events = append(events.events, &models.AttendanceEvent{
		UserID: "u1", DateString: DateString(now), Kind: models.KindArrival, IsLate: true,
	})

	status, err := engine.Status("u1", "203.0.113.5")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !status.CodeActive || !status.NetworkOK || !status.ArrivalMarked || !status.IsLate {
		t.Errorf("status = %+v", status)
	}
	if status.LeavingMarked {
		t.Error("leaving should not be marked yet")
	}
	if status.RequiredIP != "203.0.113.5" || status.CurrentIP != "203.0.113.5" {
		t.Errorf("addresses = %+v", status)
	}

	status, err = engine.Status("u1", "198.51.100.7")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.NetworkOK {
		t.Error("foreign address must fail the gate")
	}
}

func TestStatusUnconfiguredNetworkIsOpen(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)
	engine, _, _, _, _ := testEngine(now)

	status, err := engine.Status("u1", "198.51.100.7")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !status.NetworkOK {
		t.Error("unconfigured whitelist should leave the gate open")
	}
	if status.CodeActive {
		t.Error("no code generated, scanning must stay disabled")
	}
}

func TestResetThenRescan(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local)
	engine, _, codes, _, _ := testEngine(now)
	codes.latest = activeCodeFor(now, "AB12CD")
	req := MarkRequest{UserID: "u1", Kind: models.KindArrival, ScannedPayload: "AB12CD"}

	if _, err := engine.Mark(req); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	removed, err := engine.Reset("u1")
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := engine.Mark(req); err != nil {
		t.Errorf("rescan after reset: %v", err)
	}
}
