package database

import (
	"database/sql"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

// Store adapts the raw query functions to the repository interfaces the
// service layer depends on, so the verification engine never touches the
// database handle directly.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) LatestCode() (*models.DailyCode, error) {
	return GetLatestDailyCode(s.DB)
}

func (s *Store) CreateCode(code, dateString string) (*models.DailyCode, error) {
	return InsertDailyCode(s.DB, code, dateString)
}

func (s *Store) EventsForDate(userID, dateString string) ([]*models.AttendanceEvent, error) {
	return GetEventsForUserAndDate(s.DB, userID, dateString)
}

func (s *Store) Insert(ev *models.AttendanceEvent) (bool, error) {
	return InsertAttendanceEvent(s.DB, ev)
}

func (s *Store) DeleteForDate(userID, dateString string) (int, error) {
	return DeleteEventsForUserAndDate(s.DB, userID, dateString)
}

func (s *Store) HolidaySettings() (*models.HolidaySettings, error) {
	return GetHolidaySettings(s.DB)
}

func (s *Store) NetworkConfig() (*models.NetworkConfig, error) {
	return GetNetworkConfig(s.DB)
}

func (s *Store) Profile(userID string) (*models.TeacherProfile, error) {
	return GetProfileByID(s.DB, userID)
}
