package models

import "time"

// EventKind is the attendance slot an event fills. The set is closed: records
// are written with an explicit kind, there is no untyped fallback.
type EventKind string

const (
	KindArrival EventKind = "arrival"
	KindLeaving EventKind = "leaving"
)

func (k EventKind) Valid() bool {
	return k == KindArrival || k == KindLeaving
}

// AttendanceEvent is one verified arrival or leaving for a teacher on a date.
// The (user_id, date_string, kind) unique index is what makes the marking
// write idempotent under concurrent double-submission.
type AttendanceEvent struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID          string    `json:"user_id" gorm:"not null;index" validate:"required"`
	UserName        string    `json:"user_name"`
	DateString      string    `json:"date_string" gorm:"not null;type:varchar(10)" validate:"required"`
	RecordedAt      time.Time `json:"recorded_at" gorm:"not null;default:now()"`
	Kind            EventKind `json:"kind" gorm:"not null;type:varchar(10)" validate:"required,oneof=arrival leaving"`
	IPAddress       string    `json:"ip_address"`
	Method          string    `json:"method"`
	QRCodeUsed      string    `json:"qr_code_used"`
	NetworkVerified bool      `json:"network_verified"`
	IsLate          bool      `json:"is_late"`
}

// DayPair is a user's attendance for one date: the arrival and leaving
// events, either of which may be absent.
type DayPair struct {
	Date    string           `json:"date"`
	Arrival *AttendanceEvent `json:"arrival"`
	Leaving *AttendanceEvent `json:"leaving"`
}
