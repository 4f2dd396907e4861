package database

import (
	"database/sql"
	"encoding/json"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

func getSetting(db *sql.DB, key string, dest interface{}) (bool, error) {
	var raw []byte
	err := db.QueryRow(`SELECT value FROM settings WHERE key = $1`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, dest)
}

func saveSetting(db *sql.DB, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO settings (key, value, updated_at)
					  VALUES ($1, $2, NOW())
					  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, raw)
	return err
}

// GetHolidaySettings returns the singleton holiday document, falling back to
// the defaults when the admin has not saved one yet.
func GetHolidaySettings(db *sql.DB) (*models.HolidaySettings, error) {
	settings := models.DefaultHolidaySettings()
	found, err := getSetting(db, models.SettingHolidays, settings)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.DefaultHolidaySettings(), nil
	}
	if settings.ArrivalTime == "" {
		settings.ArrivalTime = models.DefaultArrivalTime
	}
	if settings.LeavingTime == "" {
		settings.LeavingTime = models.DefaultLeavingTime
	}
	return settings, nil
}

func SaveHolidaySettings(db *sql.DB, settings *models.HolidaySettings) error {
	return saveSetting(db, models.SettingHolidays, settings)
}

// GetNetworkConfig returns the whitelist singleton, or an unconfigured value
// when absent (the gate is then open).
func GetNetworkConfig(db *sql.DB) (*models.NetworkConfig, error) {
	cfg := &models.NetworkConfig{}
	if _, err := getSetting(db, models.SettingNetworkConfig, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveNetworkConfig(db *sql.DB, cfg *models.NetworkConfig) error {
	return saveSetting(db, models.SettingNetworkConfig, cfg)
}
