package services

import (
	"testing"
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

func arrivalAt(userID, name string, at time.Time, late bool) *models.AttendanceEvent {
	return &models.AttendanceEvent{
		UserID: userID, UserName: name,
		DateString: DateString(at), RecordedAt: at,
		Kind: models.KindArrival, IsLate: late,
	}
}

func leavingAt(userID, name string, at time.Time) *models.AttendanceEvent {
	return &models.AttendanceEvent{
		UserID: userID, UserName: name,
		DateString: DateString(at), RecordedAt: at,
		Kind: models.KindLeaving,
	}
}

func TestBuildDailyReport(t *testing.T) {
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local)
	events := []*models.AttendanceEvent{
		arrivalAt("u1", "Asha", day.Add(8*time.Hour+50*time.Minute), false),
		leavingAt("u1", "Asha", day.Add(16*time.Hour)),
		arrivalAt("u2", "Ravi", day.Add(9*time.Hour+40*time.Minute), true),
		// u3 only has a leaving record, present counts arrivals.
		leavingAt("u3", "Meera", day.Add(15*time.Hour)),
	}

	report := BuildDailyReport("2026-03-16", events)
	if report.PresentCount != 2 {
		t.Errorf("PresentCount = %d, want 2", report.PresentCount)
	}
	if report.LateCount != 1 {
		t.Errorf("LateCount = %d, want 1", report.LateCount)
	}
	if len(report.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(report.Rows))
	}
	if report.Rows[0].UserID != "u1" || report.Rows[0].Leaving == nil {
		t.Errorf("row 0 = %+v", report.Rows[0])
	}
	if report.Rows[2].Arrival != nil {
		t.Error("leaving-only user must have a nil arrival")
	}
}

func TestBuildDailyReportKeepsEarliestPerSlot(t *testing.T) {
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local)
	late := arrivalAt("u1", "Asha", day.Add(10*time.Hour), true)
	early := arrivalAt("u1", "Asha", day.Add(9*time.Hour), false)

	report := BuildDailyReport("2026-03-16", []*models.AttendanceEvent{late, early})
	if report.Rows[0].Arrival != early {
		t.Error("earliest arrival must win the pair slot")
	}
}

func TestBuildMonthlySummary(t *testing.T) {
	march := func(day, hour int) time.Time {
		return time.Date(2026, 3, day, hour, 0, 0, 0, time.Local)
	}
	events := []*models.AttendanceEvent{
		arrivalAt("u1", "Asha", march(2, 9), false),
		arrivalAt("u1", "Asha", march(3, 10), true),
		// Duplicate date for u1, must not double-count.
		arrivalAt("u1", "Asha", march(3, 11), true),
		leavingAt("u1", "Asha", march(3, 17)),
		arrivalAt("u2", "Ravi", march(2, 9), false),
		// Outside the month, ignored.
		arrivalAt("u1", "Asha", time.Date(2026, 2, 27, 9, 0, 0, 0, time.Local), false),
	}

	stats := BuildMonthlySummary(events, "March 2026")
	if len(stats) != 2 {
		t.Fatalf("stats = %d users, want 2", len(stats))
	}
	if stats[0].UserID != "u1" || stats[0].Days != 2 || stats[0].Late != 1 {
		t.Errorf("u1 stat = %+v", stats[0])
	}
	if stats[1].UserID != "u2" || stats[1].Days != 1 {
		t.Errorf("u2 stat = %+v", stats[1])
	}
}

func TestWorkingDays(t *testing.T) {
	// March 2026 has 31 days and five Sundays (1, 8, 15, 22, 29).
	settings := &models.HolidaySettings{
		WeeklyOffs: []int{0},
		Holidays: []models.Holiday{
			{Date: "2026-03-18", Name: "Founders Day"}, // a Wednesday
			{Date: "2026-03-22", Name: "On a Sunday"},  // already off, no double discount
		},
		GraceMinutes: 15,
	}

	if got := WorkingDays(settings, 2026, time.March); got != 25 {
		t.Errorf("WorkingDays = %d, want 25", got)
	}
}

func TestBuildMonthlyDetail(t *testing.T) {
	settings := &models.HolidaySettings{
		WeeklyOffs:   []int{0},
		GraceMinutes: 15,
	} // 26 working days in March 2026

	march := func(day, hour int) time.Time {
		return time.Date(2026, 3, day, hour, 0, 0, 0, time.Local)
	}
	events := []*models.AttendanceEvent{
		arrivalAt("u1", "Asha", march(2, 9), false),
		leavingAt("u1", "Asha", march(2, 17)),
		arrivalAt("u1", "Asha", march(3, 10), true),
	}

	detail := BuildMonthlyDetail(events, settings, 2026, time.March)
	if detail.Month != "March 2026" {
		t.Errorf("Month = %q", detail.Month)
	}
	if detail.PresentDays != 2 || detail.LateDays != 1 {
		t.Errorf("present/late = %d/%d", detail.PresentDays, detail.LateDays)
	}
	if detail.WorkingDays != 26 {
		t.Errorf("WorkingDays = %d, want 26", detail.WorkingDays)
	}
	if detail.AbsentDays != 24 {
		t.Errorf("AbsentDays = %d, want 24", detail.AbsentDays)
	}
	// 2 / 26 rounds to 8 percent.
	if detail.Percentage != 8 {
		t.Errorf("Percentage = %d, want 8", detail.Percentage)
	}
	if len(detail.ByDate) != 2 || detail.ByDate[0].Date != "2026-03-03" {
		t.Errorf("ByDate order = %+v", detail.ByDate)
	}
	if detail.ByDate[1].Leaving == nil {
		t.Error("March 2 leaving missing from its pair")
	}
}

func TestGroupHistoryByMonth(t *testing.T) {
	events := []*models.AttendanceEvent{
		arrivalAt("u1", "Asha", time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local), false),
		arrivalAt("u1", "Asha", time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local), false),
		arrivalAt("u1", "Asha", time.Date(2026, 2, 25, 9, 0, 0, 0, time.Local), false),
	}

	groups := GroupHistoryByMonth(events)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Month != "March 2026" || len(groups[0].Events) != 2 {
		t.Errorf("group 0 = %+v", groups[0])
	}
	if groups[1].Month != "February 2026" || len(groups[1].Events) != 1 {
		t.Errorf("group 1 = %+v", groups[1])
	}
}
