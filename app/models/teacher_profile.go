package models

import (
	"fmt"
	"time"
)

// MaxProfilePictureBytes caps the inline-encoded profile picture.
const MaxProfilePictureBytes = 500 * 1024

// TeacherProfile holds both partitions of a teacher's record. The employment
// fields (EmployeeID, Designation, DateOfJoining, CurrentClasses and the
// custom timings) are admin-writable only; everything else is owned by the
// teacher's self-service profile. The ID is the login account id, or a
// synthetic placeholder id when the admin creates the record before the
// teacher has signed up.
type TeacherProfile struct {
	ID                  string     `json:"id" gorm:"primaryKey"`
	Name                string     `json:"name"`
	Phone               string     `json:"phone"`
	Gender              string     `json:"gender"`
	MaritalStatus       string     `json:"marital_status"`
	Address             string     `json:"address"`
	ProfilePicture      string     `json:"profile_picture"`
	EmployeeID          string     `json:"employee_id" gorm:"uniqueIndex"`
	Designation         string     `json:"designation"`
	DateOfJoining       string     `json:"date_of_joining"`
	CurrentClasses      string     `json:"current_classes"`
	CustomArrivalTime   string     `json:"custom_arrival_time"`
	CustomLeavingTime   string     `json:"custom_leaving_time"`
	EducationBackground string     `json:"education_background"`
	YearsOfExperience   string     `json:"years_of_experience"`
	Certificates        string     `json:"certificates"`
	Email               string     `json:"email"`
	CreatedAt           time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// PlaceholderProfileID builds the synthetic id used for admin-created records
// that are not yet linked to a login account.
func PlaceholderProfileID(employeeID string, now time.Time) string {
	return fmt.Sprintf("emp_%s_%d", employeeID, now.UnixMilli())
}
