package database

import (
	"database/sql"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
)

const profileColumns = `id, name, phone, gender, marital_status, address, profile_picture,
	employee_id, designation, date_of_joining, current_classes,
	custom_arrival_time, custom_leaving_time, education_background,
	years_of_experience, certificates, email, created_at, updated_at`

func scanProfile(row interface{ Scan(...interface{}) error }) (*models.TeacherProfile, error) {
	p := &models.TeacherProfile{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Phone, &p.Gender, &p.MaritalStatus, &p.Address, &p.ProfilePicture,
		&p.EmployeeID, &p.Designation, &p.DateOfJoining, &p.CurrentClasses,
		&p.CustomArrivalTime, &p.CustomLeavingTime, &p.EducationBackground,
		&p.YearsOfExperience, &p.Certificates, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func GetProfileByID(db *sql.DB, id string) (*models.TeacherProfile, error) {
	row := db.QueryRow(`SELECT `+profileColumns+` FROM teacher_profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func GetProfileByEmail(db *sql.DB, email string) (*models.TeacherProfile, error) {
	row := db.QueryRow(`SELECT `+profileColumns+` FROM teacher_profiles
						WHERE LOWER(email) = LOWER($1) LIMIT 1`, email)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// ListProfiles returns the roster ordered by name, optionally filtered by a
// case-insensitive search over name, employee id and designation.
func ListProfiles(db *sql.DB, search string) ([]*models.TeacherProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM teacher_profiles`
	args := []interface{}{}

	if search != "" {
		query += ` WHERE name ILIKE $1 OR employee_id ILIKE $1 OR designation ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*models.TeacherProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// EmployeeIDExists reports whether another profile already uses the employee
// id. excludeID skips the record being edited.
func EmployeeIDExists(db *sql.DB, employeeID, excludeID string) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS (
							SELECT 1 FROM teacher_profiles
							WHERE employee_id = $1 AND id <> $2
						)`, employeeID, excludeID).Scan(&exists)
	return exists, err
}

// UpsertEmploymentFields writes the admin-owned partition, creating the
// record when missing (merge semantics, personal fields untouched).
func UpsertEmploymentFields(db *sql.DB, p *models.TeacherProfile) error {
	query := `INSERT INTO teacher_profiles
			  (id, employee_id, designation, date_of_joining, current_classes,
			   custom_arrival_time, custom_leaving_time, email)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (id) DO UPDATE SET
				employee_id = EXCLUDED.employee_id,
				designation = EXCLUDED.designation,
				date_of_joining = EXCLUDED.date_of_joining,
				current_classes = EXCLUDED.current_classes,
				custom_arrival_time = EXCLUDED.custom_arrival_time,
				custom_leaving_time = EXCLUDED.custom_leaving_time,
				email = EXCLUDED.email,
				updated_at = NOW()`

	_, err := db.Exec(query,
		p.ID, p.EmployeeID, p.Designation, p.DateOfJoining, p.CurrentClasses,
		p.CustomArrivalTime, p.CustomLeavingTime, p.Email,
	)
	return err
}

// UpsertPersonalFields writes the teacher-owned partition, creating the
// record on the teacher's first save.
func UpsertPersonalFields(db *sql.DB, p *models.TeacherProfile) error {
	query := `INSERT INTO teacher_profiles
			  (id, name, phone, gender, marital_status, address, profile_picture,
			   education_background, years_of_experience, certificates, email)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				phone = EXCLUDED.phone,
				gender = EXCLUDED.gender,
				marital_status = EXCLUDED.marital_status,
				address = EXCLUDED.address,
				profile_picture = EXCLUDED.profile_picture,
				education_background = EXCLUDED.education_background,
				years_of_experience = EXCLUDED.years_of_experience,
				certificates = EXCLUDED.certificates,
				email = EXCLUDED.email,
				updated_at = NOW()`

	_, err := db.Exec(query,
		p.ID, p.Name, p.Phone, p.Gender, p.MaritalStatus, p.Address, p.ProfilePicture,
		p.EducationBackground, p.YearsOfExperience, p.Certificates, p.Email,
	)
	return err
}

// RelinkProfile moves a placeholder record onto the real account id once the
// teacher signs up, so the employment fields the admin entered are kept.
func RelinkProfile(db *sql.DB, oldID, newID string) error {
	_, err := db.Exec(`UPDATE teacher_profiles SET id = $1, updated_at = NOW() WHERE id = $2`,
		newID, oldID)
	return err
}

func DeleteProfile(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM teacher_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
