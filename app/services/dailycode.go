package services

import (
	"math/rand"
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

const codeCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateCode returns a 6-character uppercase base-36 code. Not
// cryptographically strong; the short validity window and the network gate
// are the actual controls.
func GenerateCode() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

// CodeSource is the code-record store the services read and write.
type CodeSource interface {
	LatestCode() (*models.DailyCode, error)
	CreateCode(code, dateString string) (*models.DailyCode, error)
}

// DailyCodeService exposes "the" active verification code for today: the
// most recently created record, counted as active only when its date matches
// the current local date.
type DailyCodeService struct {
	Codes CodeSource
	Now   func() time.Time
}

func NewDailyCodeService(codes CodeSource) *DailyCodeService {
	return &DailyCodeService{Codes: codes, Now: time.Now}
}

// Current returns today's active code, or nil when the latest record is
// stale or none exists. Scan initiation stays disabled in that case.
func (s *DailyCodeService) Current() (*models.DailyCode, error) {
	latest, err := s.Codes.LatestCode()
	if err != nil {
		return nil, err
	}
	if !latest.ActiveFor(DateString(s.Now())) {
		return nil, nil
	}
	return latest, nil
}

// GenerateForToday creates a fresh code record for the current date. An
// existing code for today is simply superseded.
func (s *DailyCodeService) GenerateForToday() (*models.DailyCode, error) {
	return s.Codes.CreateCode(GenerateCode(), DateString(s.Now()))
}

// EnsureForToday generates a code only when none is active, and reports
// whether it created one. Used by the morning scheduler.
func (s *DailyCodeService) EnsureForToday() (*models.DailyCode, bool, error) {
	current, err := s.Current()
	if err != nil {
		return nil, false, err
	}
	if current != nil {
		return current, false, nil
	}
	created, err := s.GenerateForToday()
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}
