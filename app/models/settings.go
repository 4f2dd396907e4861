package models

import "time"

// Singleton settings document keys.
const (
	SettingHolidays      = "holidays"
	SettingNetworkConfig = "network_config"
)

// Default school timings applied when no settings document exists yet.
const (
	DefaultArrivalTime  = "09:00"
	DefaultLeavingTime  = "17:00"
	DefaultGraceMinutes = 15
)

// Holiday is one custom non-working date.
type Holiday struct {
	Date string `json:"date" validate:"required"`
	Name string `json:"name"`
}

// HolidaySettings drives lateness computation and working-day counts.
// WeeklyOffs uses weekday indexes 0=Sunday..6=Saturday.
type HolidaySettings struct {
	WeeklyOffs   []int     `json:"weeklyOffs"`
	Holidays     []Holiday `json:"holidays"`
	ArrivalTime  string    `json:"arrivalTime"`
	LeavingTime  string    `json:"leavingTime"`
	GraceMinutes int       `json:"graceMinutes"`
	UpdatedAt    string    `json:"updatedAt,omitempty"`
}

// DefaultHolidaySettings returns the configuration assumed before the admin
// first saves one: Sunday off, 09:00-17:00, 15 minutes grace.
func DefaultHolidaySettings() *HolidaySettings {
	return &HolidaySettings{
		WeeklyOffs:   []int{0},
		Holidays:     []Holiday{},
		ArrivalTime:  DefaultArrivalTime,
		LeavingTime:  DefaultLeavingTime,
		GraceMinutes: DefaultGraceMinutes,
	}
}

func (s *HolidaySettings) IsWeeklyOff(weekday time.Weekday) bool {
	for _, d := range s.WeeklyOffs {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

func (s *HolidaySettings) IsHoliday(dateString string) bool {
	for _, h := range s.Holidays {
		if h.Date == dateString {
			return true
		}
	}
	return false
}

// NetworkConfig is the single whitelisted IP. Comparison is exact string
// match only; an empty SchoolIP disables the gate.
type NetworkConfig struct {
	SchoolIP  string `json:"schoolIP"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (n *NetworkConfig) Configured() bool {
	return n != nil && n.SchoolIP != ""
}
