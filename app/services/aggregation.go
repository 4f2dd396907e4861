package services

import (
	"sort"
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

// Aggregation derives the day-level and month-level views from the flat
// event log in memory; the store is only asked for filtered slices, never
// for grouping.

// UserDay is one user's attendance pair for the daily report.
type UserDay struct {
	UserID   string                  `json:"user_id"`
	UserName string                  `json:"user_name"`
	Arrival  *models.AttendanceEvent `json:"arrival"`
	Leaving  *models.AttendanceEvent `json:"leaving"`
}

// DailyReport is today's events partitioned per user.
type DailyReport struct {
	Date         string     `json:"date"`
	PresentCount int        `json:"present_count"`
	LateCount    int        `json:"late_count"`
	Rows         []*UserDay `json:"rows"`
}

// BuildDailyReport partitions one date's events by user. The first arrival
// and first leaving per user form the day's pair; present counts users with
// a non-nil arrival.
func BuildDailyReport(date string, events []*models.AttendanceEvent) *DailyReport {
	byUser := make(map[string]*UserDay)
	order := []string{}

	for _, ev := range events {
		row, ok := byUser[ev.UserID]
		if !ok {
			row = &UserDay{UserID: ev.UserID, UserName: ev.UserName}
			byUser[ev.UserID] = row
			order = append(order, ev.UserID)
		}
		switch ev.Kind {
		case models.KindArrival:
			if row.Arrival == nil || ev.RecordedAt.Before(row.Arrival.RecordedAt) {
				row.Arrival = ev
			}
		case models.KindLeaving:
			if row.Leaving == nil || ev.RecordedAt.Before(row.Leaving.RecordedAt) {
				row.Leaving = ev
			}
		}
	}

	report := &DailyReport{Date: date, Rows: make([]*UserDay, 0, len(order))}
	for _, id := range order {
		row := byUser[id]
		report.Rows = append(report.Rows, row)
		if row.Arrival != nil {
			report.PresentCount++
			if row.Arrival.IsLate {
				report.LateCount++
			}
		}
	}
	return report
}

// UserMonthStat is one user's line in the monthly summary.
type UserMonthStat struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Days   int    `json:"days"`
	Late   int    `json:"late"`
}

// BuildMonthlySummary groups a bounded recent event window by the calendar
// month of each event's timestamp, then by user. Days counts distinct dates
// with an arrival, matching the per-employee detail view.
func BuildMonthlySummary(events []*models.AttendanceEvent, monthKey string) []*UserMonthStat {
	type acc struct {
		stat  *UserMonthStat
		dates map[string]bool
	}
	byUser := make(map[string]*acc)
	order := []string{}

	for _, ev := range events {
		if MonthKey(ev.RecordedAt) != monthKey || ev.Kind != models.KindArrival {
			continue
		}
		a, ok := byUser[ev.UserID]
		if !ok {
			a = &acc{
				stat:  &UserMonthStat{UserID: ev.UserID, Name: ev.UserName},
				dates: make(map[string]bool),
			}
			byUser[ev.UserID] = a
			order = append(order, ev.UserID)
		}
		if !a.dates[ev.DateString] {
			a.dates[ev.DateString] = true
			a.stat.Days++
			if ev.IsLate {
				a.stat.Late++
			}
		}
	}

	stats := make([]*UserMonthStat, 0, len(order))
	for _, id := range order {
		stats = append(stats, byUser[id].stat)
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Days > stats[j].Days })
	return stats
}

// WorkingDays counts the calendar days of a month that are neither a weekly
// off-day nor a listed custom holiday.
func WorkingDays(settings *models.HolidaySettings, year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	total := first.AddDate(0, 1, -1).Day()

	working := 0
	for day := 1; day <= total; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		if settings.IsWeeklyOff(date.Weekday()) {
			continue
		}
		if settings.IsHoliday(DateString(date)) {
			continue
		}
		working++
	}
	return working
}

// MonthlyDetail is the per-employee month view: date-keyed pairs plus the
// attendance percentage over working days.
type MonthlyDetail struct {
	Month       string            `json:"month"`
	ByDate      []*models.DayPair `json:"by_date"`
	PresentDays int               `json:"present_days"`
	LateDays    int               `json:"late_days"`
	WorkingDays int               `json:"working_days"`
	AbsentDays  int               `json:"absent_days"`
	Percentage  int               `json:"percentage"`
}

// BuildMonthlyDetail groups one user's events for the month by date and
// derives present/absent/percentage against the working-day count.
func BuildMonthlyDetail(events []*models.AttendanceEvent, settings *models.HolidaySettings, year int, month time.Month) *MonthlyDetail {
	byDate := make(map[string]*models.DayPair)
	order := []string{}

	for _, ev := range events {
		pair, ok := byDate[ev.DateString]
		if !ok {
			pair = &models.DayPair{Date: ev.DateString}
			byDate[ev.DateString] = pair
			order = append(order, ev.DateString)
		}
		switch ev.Kind {
		case models.KindArrival:
			if pair.Arrival == nil {
				pair.Arrival = ev
			}
		case models.KindLeaving:
			if pair.Leaving == nil {
				pair.Leaving = ev
			}
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	detail := &MonthlyDetail{
		Month:       time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Format("January 2006"),
		ByDate:      make([]*models.DayPair, 0, len(order)),
		WorkingDays: WorkingDays(settings, year, month),
	}
	for _, date := range order {
		pair := byDate[date]
		detail.ByDate = append(detail.ByDate, pair)
		if pair.Arrival != nil {
			detail.PresentDays++
			if pair.Arrival.IsLate {
				detail.LateDays++
			}
		}
	}

	if absent := detail.WorkingDays - detail.PresentDays; absent > 0 {
		detail.AbsentDays = absent
	}
	if detail.WorkingDays > 0 {
		detail.Percentage = int(float64(detail.PresentDays)/float64(detail.WorkingDays)*100 + 0.5)
	}
	return detail
}

// MonthGroup is one month's slice of a user's history, newest events first.
type MonthGroup struct {
	Month  string                    `json:"month"`
	Events []*models.AttendanceEvent `json:"events"`
}

// GroupHistoryByMonth buckets a user's recent events (already newest-first)
// by the month of their timestamp, preserving order.
func GroupHistoryByMonth(events []*models.AttendanceEvent) []*MonthGroup {
	byMonth := make(map[string]*MonthGroup)
	groups := []*MonthGroup{}

	for _, ev := range events {
		key := MonthKey(ev.RecordedAt)
		g, ok := byMonth[key]
		if !ok {
			g = &MonthGroup{Month: key}
			byMonth[key] = g
			groups = append(groups, g)
		}
		g.Events = append(g.Events, ev)
	}
	return groups
}
