package database

import (
	"database/sql"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

const attendanceColumns = `id, user_id, user_name, date_string, recorded_at, kind,
	ip_address, method, qr_code_used, network_verified, is_late`

func scanAttendanceEvent(row interface{ Scan(...interface{}) error }) (*models.AttendanceEvent, error) {
	ev := &models.AttendanceEvent{}
	err := row.Scan(
		&ev.ID, &ev.UserID, &ev.UserName, &ev.DateString, &ev.RecordedAt, &ev.Kind,
		&ev.IPAddress, &ev.Method, &ev.QRCodeUsed, &ev.NetworkVerified, &ev.IsLate,
	)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func collectAttendanceEvents(rows *sql.Rows) ([]*models.AttendanceEvent, error) {
	defer rows.Close()

	events := make([]*models.AttendanceEvent, 0)
	for rows.Next() {
		ev, err := scanAttendanceEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// InsertAttendanceEvent writes one event with a server-assigned timestamp.
// The slot unique index turns a concurrent duplicate into a no-op; the
// returned bool reports whether a row was actually inserted.
func InsertAttendanceEvent(db *sql.DB, ev *models.AttendanceEvent) (bool, error) {
	query := `INSERT INTO attendance_events
			  (user_id, user_name, date_string, kind, ip_address, method, qr_code_used, network_verified, is_late)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (user_id, date_string, kind) DO NOTHING
			  RETURNING id, recorded_at`

	err := db.QueryRow(query,
		ev.UserID, ev.UserName, ev.DateString, ev.Kind,
		ev.IPAddress, ev.Method, ev.QRCodeUsed, ev.NetworkVerified, ev.IsLate,
	).Scan(&ev.ID, &ev.RecordedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertBackdatedEvent writes an event with an explicit timestamp. Seeding
// only; normal marking always takes the server clock.
func InsertBackdatedEvent(db *sql.DB, ev *models.AttendanceEvent) (bool, error) {
	query := `INSERT INTO attendance_events
			  (user_id, user_name, date_string, recorded_at, kind, ip_address, method, qr_code_used, network_verified, is_late)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  ON CONFLICT (user_id, date_string, kind) DO NOTHING
			  RETURNING id`

	err := db.QueryRow(query,
		ev.UserID, ev.UserName, ev.DateString, ev.RecordedAt, ev.Kind,
		ev.IPAddress, ev.Method, ev.QRCodeUsed, ev.NetworkVerified, ev.IsLate,
	).Scan(&ev.ID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func GetEventsForUserAndDate(db *sql.DB, userID, dateString string) ([]*models.AttendanceEvent, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance_events
			  WHERE user_id = $1 AND date_string = $2
			  ORDER BY recorded_at ASC`

	rows, err := db.Query(query, userID, dateString)
	if err != nil {
		return nil, err
	}
	return collectAttendanceEvents(rows)
}

func GetEventsByDate(db *sql.DB, dateString string) ([]*models.AttendanceEvent, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance_events
			  WHERE date_string = $1
			  ORDER BY recorded_at DESC`

	rows, err := db.Query(query, dateString)
	if err != nil {
		return nil, err
	}
	return collectAttendanceEvents(rows)
}

// GetRecentEvents returns the most recent events across all users, newest
// first. The monthly summary works over this bounded window.
func GetRecentEvents(db *sql.DB, limit int) ([]*models.AttendanceEvent, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance_events
			  ORDER BY recorded_at DESC
			  LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	return collectAttendanceEvents(rows)
}

func GetEventsForUser(db *sql.DB, userID string, limit int) ([]*models.AttendanceEvent, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance_events
			  WHERE user_id = $1
			  ORDER BY recorded_at DESC
			  LIMIT $2`

	rows, err := db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectAttendanceEvents(rows)
}

// GetEventsForUserInRange returns a user's events with date_string within
// [from, to], newest date first.
func GetEventsForUserInRange(db *sql.DB, userID, from, to string) ([]*models.AttendanceEvent, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance_events
			  WHERE user_id = $1 AND date_string >= $2 AND date_string <= $3
			  ORDER BY date_string DESC, recorded_at ASC`

	rows, err := db.Query(query, userID, from, to)
	if err != nil {
		return nil, err
	}
	return collectAttendanceEvents(rows)
}

// DeleteEventsForUserAndDate removes every event for the slot pair, the reset
// path behind the self-service test mode and the admin reset.
func DeleteEventsForUserAndDate(db *sql.DB, userID, dateString string) (int, error) {
	res, err := db.Exec(`DELETE FROM attendance_events WHERE user_id = $1 AND date_string = $2`,
		userID, dateString)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// SetEventLateFlag flips the late marker on an arrival record (admin
// emergency override).
func SetEventLateFlag(db *sql.DB, eventID string, isLate bool) error {
	res, err := db.Exec(`UPDATE attendance_events SET is_late = $1 WHERE id = $2 AND kind = 'arrival'`,
		isLate, eventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
