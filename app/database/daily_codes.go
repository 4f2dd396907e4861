package database

import (
	"database/sql"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

// InsertDailyCode records a new code. Older codes are left in place; they
// simply stop mattering once a newer record exists.
func InsertDailyCode(db *sql.DB, code, dateString string) (*models.DailyCode, error) {
	dc := &models.DailyCode{}
	query := `INSERT INTO daily_codes (code, date_string)
			  VALUES ($1, $2)
			  RETURNING id, code, date_string, created_at, active`

	err := db.QueryRow(query, code, dateString).Scan(
		&dc.ID, &dc.Code, &dc.DateString, &dc.CreatedAt, &dc.Active,
	)
	if err != nil {
		return nil, err
	}
	return dc, nil
}

// GetLatestDailyCode returns the most recently created code record, or
// (nil, nil) when none exist yet.
func GetLatestDailyCode(db *sql.DB) (*models.DailyCode, error) {
	dc := &models.DailyCode{}
	query := `SELECT id, code, date_string, created_at, active
			  FROM daily_codes
			  ORDER BY created_at DESC
			  LIMIT 1`

	err := db.QueryRow(query).Scan(&dc.ID, &dc.Code, &dc.DateString, &dc.CreatedAt, &dc.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dc, nil
}
