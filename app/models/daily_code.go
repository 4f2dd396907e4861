package models

import "time"

// DailyCode is one code-generation record. Codes are never mutated or
// revoked; generating a new one supersedes the previous. The most recent
// record is the candidate for "today's code" and counts as active only when
// its DateString equals the current local date.
type DailyCode struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code       string    `json:"code" gorm:"not null;type:varchar(12)" validate:"required"`
	DateString string    `json:"date_string" gorm:"not null;type:varchar(10)" validate:"required"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	Active     bool      `json:"active" gorm:"default:true"`
}

// ActiveFor reports whether the code is usable on the given local date.
func (d *DailyCode) ActiveFor(dateString string) bool {
	return d != nil && d.Active && d.DateString == dateString
}
