package database

import (
	"database/sql"
	"log"
	"strings"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, display_name, role, is_active, created_at, updated_at
			  FROM users WHERE LOWER(email) = LOWER($1) AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.DisplayName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, display_name, role, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.DisplayName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a login account and returns it with the generated id.
func CreateUser(db *sql.DB, email, passwordHash, displayName, role string) (*models.User, error) {
	user := &models.User{}
	query := `INSERT INTO users (id, email, password, display_name, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, email, password, display_name, role, is_active, created_at, updated_at`

	err := db.QueryRow(query, uuid.New().String(), strings.ToLower(email), passwordHash, displayName, role).Scan(
		&user.ID, &user.Email, &user.Password, &user.DisplayName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func UpdateUserPassword(db *sql.DB, userID, passwordHash string) error {
	_, err := db.Exec(`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID)
	return err
}

func UpdateUserDisplayName(db *sql.DB, userID, displayName string) error {
	_, err := db.Exec(`UPDATE users SET display_name = $1, updated_at = NOW() WHERE id = $2`,
		displayName, userID)
	return err
}

// EnsureAdminUser promotes the configured admin account if it exists, or
// creates it when a password is supplied. Called once at startup.
func EnsureAdminUser(db *sql.DB, email, password string) error {
	if email == "" {
		return nil
	}

	user, err := GetUserByEmail(db, email)
	if err == nil {
		if user.Role != models.RoleAdmin {
			_, err = db.Exec(`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`,
				models.RoleAdmin, user.ID)
		}
		return err
	}
	if err != sql.ErrNoRows {
		return err
	}
	if password == "" {
		log.Printf("Admin account %s not found and ADMIN_PASSWORD not set, skipping bootstrap", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return err
	}
	_, err = CreateUser(db, email, string(hash), "Administrator", models.RoleAdmin)
	return err
}
