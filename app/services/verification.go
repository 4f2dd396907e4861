package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

// QRPayloadType marks a structured attendance QR payload.
const QRPayloadType = "school_attendance"

// MarkMethod records how an event was verified.
const MarkMethod = "qr_verified"

var (
	// ErrNoActiveCode: no code has been generated for today, scanning stays
	// disabled.
	ErrNoActiveCode = errors.New("no active daily code for today")
	// ErrArrivalMissing: a leaving scan arrived before the day's arrival.
	ErrArrivalMissing = errors.New("arrival must be marked before leaving")
	// ErrAlreadyMarked: the slot already holds an event for this date.
	ErrAlreadyMarked = errors.New("attendance already marked for this slot today")
)

// NetworkMismatchError rejects an attempt from outside the whitelisted
// network, carrying both addresses for the user-facing message.
type NetworkMismatchError struct {
	Required string
	Actual   string
}

func (e *NetworkMismatchError) Error() string {
	return fmt.Sprintf("wrong network: school WiFi is %s, your IP is %s", e.Required, e.Actual)
}

// CodeMismatchError rejects a scanned value that is not today's code.
type CodeMismatchError struct {
	Scanned string
}

func (e *CodeMismatchError) Error() string {
	return fmt.Sprintf("invalid QR code %q", e.Scanned)
}

// EventStore is the slice of the attendance log the engine needs.
type EventStore interface {
	EventsForDate(userID, dateString string) ([]*models.AttendanceEvent, error)
	Insert(ev *models.AttendanceEvent) (bool, error)
	DeleteForDate(userID, dateString string) (int, error)
}

// ConfigSource supplies the singleton configuration documents.
type ConfigSource interface {
	HolidaySettings() (*models.HolidaySettings, error)
	NetworkConfig() (*models.NetworkConfig, error)
}

// ProfileSource supplies per-teacher timing overrides.
type ProfileSource interface {
	Profile(userID string) (*models.TeacherProfile, error)
}

// Engine turns a scanned code plus the caller's network identity into one
// durable, validated attendance event. All collaborators are injected; the
// network precondition is evaluated here, at commit time, not only when the
// client opened its scanner.
type Engine struct {
	Events   EventStore
	Codes    CodeSource
	Config   ConfigSource
	Profiles ProfileSource
	Now      func() time.Time
}

func NewEngine(events EventStore, codes CodeSource, config ConfigSource, profiles ProfileSource) *Engine {
	return &Engine{
		Events:   events,
		Codes:    codes,
		Config:   config,
		Profiles: profiles,
		Now:      time.Now,
	}
}

// MarkRequest is one scan result to verify and persist.
type MarkRequest struct {
	UserID         string
	UserName       string
	Kind           models.EventKind
	ScannedPayload string
	CallerIP       string
}

// ScanStatus is the precondition snapshot the client reads before opening
// its scanner and while rendering the slot buttons.
type ScanStatus struct {
	CodeActive    bool   `json:"code_active"`
	NetworkOK     bool   `json:"network_ok"`
	RequiredIP    string `json:"required_ip,omitempty"`
	CurrentIP     string `json:"current_ip"`
	ArrivalMarked bool   `json:"arrival_marked"`
	LeavingMarked bool   `json:"leaving_marked"`
	IsLate        bool   `json:"is_late"`
}

// ParseScanPayload extracts the verification code from a decoded QR payload:
// the embedded code when the payload is the structured JSON form, otherwise
// the raw text itself.
func ParseScanPayload(raw string) string {
	var payload struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err == nil &&
		payload.Type == QRPayloadType && payload.Code != "" {
		return payload.Code
	}
	return raw
}

// checkNetwork applies the identity gate. An unconfigured whitelist leaves
// the gate open.
func (e *Engine) checkNetwork(callerIP string) error {
	cfg, err := e.Config.NetworkConfig()
	if err != nil {
		return err
	}
	if !cfg.Configured() {
		return nil
	}
	if cfg.SchoolIP != callerIP {
		return &NetworkMismatchError{Required: cfg.SchoolIP, Actual: callerIP}
	}
	return nil
}

// lateFor resolves the effective arrival threshold for the user (personal
// custom arrival time when set, else the global one) plus the global grace
// period, and reports whether now's time-of-day strictly exceeds it.
func (e *Engine) lateFor(userID string, now time.Time) (bool, error) {
	settings, err := e.Config.HolidaySettings()
	if err != nil {
		return false, err
	}

	threshold := settings.ArrivalTime
	profile, err := e.Profiles.Profile(userID)
	if err != nil {
		return false, err
	}
	if profile != nil && profile.CustomArrivalTime != "" {
		threshold = profile.CustomArrivalTime
	}

	base, ok := parseClock(threshold)
	if !ok {
		base, _ = parseClock(models.DefaultArrivalTime)
	}
	limit := base + settings.GraceMinutes
	minuteOfDay := now.Hour()*60 + now.Minute()
	return minuteOfDay > limit, nil
}

// Mark runs the full verification algorithm and persists one event.
func (e *Engine) Mark(req MarkRequest) (*models.AttendanceEvent, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("unknown attendance kind %q", req.Kind)
	}

	now := e.Now()
	today := DateString(now)

	code, err := e.Codes.LatestCode()
	if err != nil {
		return nil, err
	}
	if !code.ActiveFor(today) {
		return nil, ErrNoActiveCode
	}

	// The IP may have changed between scan start and this commit; the gate
	// must hold now.
	if err := e.checkNetwork(req.CallerIP); err != nil {
		return nil, err
	}

	scanned := ParseScanPayload(req.ScannedPayload)
	if scanned != code.Code {
		return nil, &CodeMismatchError{Scanned: scanned}
	}

	existing, err := e.Events.EventsForDate(req.UserID, today)
	if err != nil {
		return nil, err
	}
	var haveArrival, haveKind bool
	for _, ev := range existing {
		if ev.Kind == models.KindArrival {
			haveArrival = true
		}
		if ev.Kind == req.Kind {
			haveKind = true
		}
	}
	if haveKind {
		return nil, ErrAlreadyMarked
	}
	if req.Kind == models.KindLeaving && !haveArrival {
		return nil, ErrArrivalMissing
	}

	ev := &models.AttendanceEvent{
		UserID:          req.UserID,
		UserName:        req.UserName,
		DateString:      today,
		Kind:            req.Kind,
		IPAddress:       req.CallerIP,
		Method:          MarkMethod,
		QRCodeUsed:      code.Code,
		NetworkVerified: true,
	}
	if req.Kind == models.KindArrival {
		ev.IsLate, err = e.lateFor(req.UserID, now)
		if err != nil {
			return nil, err
		}
	}

	inserted, err := e.Events.Insert(ev)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Lost a race with another device for the same slot.
		return nil, ErrAlreadyMarked
	}
	return ev, nil
}

// Status reports the scan preconditions for the user right now.
func (e *Engine) Status(userID, callerIP string) (*ScanStatus, error) {
	now := e.Now()
	today := DateString(now)

	status := &ScanStatus{CurrentIP: callerIP}

	code, err := e.Codes.LatestCode()
	if err != nil {
		return nil, err
	}
	status.CodeActive = code.ActiveFor(today)

	cfg, err := e.Config.NetworkConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Configured() {
		status.RequiredIP = cfg.SchoolIP
		status.NetworkOK = cfg.SchoolIP == callerIP
	} else {
		status.NetworkOK = true
	}

	events, err := e.Events.EventsForDate(userID, today)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		switch ev.Kind {
		case models.KindArrival:
			status.ArrivalMarked = true
			status.IsLate = ev.IsLate
		case models.KindLeaving:
			status.LeavingMarked = true
		}
	}
	return status, nil
}

// Reset deletes all of the user's events for today so a fresh scan can be
// tested; returns how many records were removed.
func (e *Engine) Reset(userID string) (int, error) {
	return e.Events.DeleteForDate(userID, DateString(e.Now()))
}

// ResetDate is the admin variant operating on an arbitrary date.
func (e *Engine) ResetDate(userID, dateString string) (int, error) {
	return e.Events.DeleteForDate(userID, dateString)
}
