package teachers

import (
	"database/sql"
	"strings"
	"time"

	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
	"github.com/Deepak1064/PragatiPath-Academy/app/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func ListTeachersAPI(c *fiber.Ctx) error {
	search := c.Query("search", "")

	profiles, err := database.ListProfiles(config.GetDB(), search)
	if err != nil {
		return c.JSON(fiber.Map{
			"teachers": []interface{}{},
			"count":    0,
		})
	}

	return c.JSON(fiber.Map{
		"teachers": profiles,
		"count":    len(profiles),
	})
}

func GetTeacherAPI(c *fiber.Ctx) error {
	profile, err := database.GetProfileByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load teacher"})
	}
	if profile == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}
	return c.JSON(profile)
}

type employmentRequest struct {
	EmployeeID        string `json:"employee_id" validate:"required"`
	Designation       string `json:"designation" validate:"required"`
	DateOfJoining     string `json:"date_of_joining" validate:"required"`
	CurrentClasses    string `json:"current_classes"`
	CustomArrivalTime string `json:"custom_arrival_time"`
	CustomLeavingTime string `json:"custom_leaving_time"`
	Email             string `json:"email"`
}

func (r *employmentRequest) validateTimes() string {
	for _, hhmm := range []string{r.CustomArrivalTime, r.CustomLeavingTime} {
		if hhmm == "" {
			continue
		}
		if _, err := time.Parse("15:04", hhmm); err != nil {
			return "Custom times must use the HH:MM format"
		}
	}
	if _, err := time.Parse("2006-01-02", r.DateOfJoining); err != nil {
		return "date_of_joining must use YYYY-MM-DD"
	}
	return ""
}

// CreateTeacherAPI adds an employment shell for a teacher who may not have
// signed up yet. The record gets a synthetic id and is relinked to the real
// account on signup by email.
func CreateTeacherAPI(c *fiber.Ctx) error {
	var req employmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Please fill all required fields"})
	}
	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email is required for new employees"})
	}
	if msg := req.validateTimes(); msg != "" {
		return c.Status(400).JSON(fiber.Map{"error": msg})
	}

	db := config.GetDB()

	exists, err := database.EmployeeIDExists(db, req.EmployeeID, "")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check employee id"})
	}
	if exists {
		return c.Status(409).JSON(fiber.Map{"error": "Employee ID already exists"})
	}

	// Use the login account id when the teacher already signed up.
	id := ""
	if user, err := database.GetUserByEmail(db, req.Email); err == nil {
		id = user.ID
	} else if err != sql.ErrNoRows {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to look up account"})
	}
	if id == "" {
		id = models.PlaceholderProfileID(req.EmployeeID, time.Now())
	}

	profile := &models.TeacherProfile{
		ID:                id,
		EmployeeID:        req.EmployeeID,
		Designation:       req.Designation,
		DateOfJoining:     req.DateOfJoining,
		CurrentClasses:    req.CurrentClasses,
		CustomArrivalTime: req.CustomArrivalTime,
		CustomLeavingTime: req.CustomLeavingTime,
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := database.UpsertEmploymentFields(db, profile); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save teacher"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Employee added",
		"teacher": profile,
	})
}

// UpdateEmploymentAPI writes the admin-owned field partition of an existing
// record; personal fields are untouched.
func UpdateEmploymentAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	var req employmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Please fill all required fields"})
	}
	if msg := req.validateTimes(); msg != "" {
		return c.Status(400).JSON(fiber.Map{"error": msg})
	}

	db := config.GetDB()

	existing, err := database.GetProfileByID(db, id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load teacher"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	if req.EmployeeID != existing.EmployeeID {
		exists, err := database.EmployeeIDExists(db, req.EmployeeID, id)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to check employee id"})
		}
		if exists {
			return c.Status(409).JSON(fiber.Map{"error": "Employee ID already exists"})
		}
	}

	profile := &models.TeacherProfile{
		ID:                id,
		EmployeeID:        req.EmployeeID,
		Designation:       req.Designation,
		DateOfJoining:     req.DateOfJoining,
		CurrentClasses:    req.CurrentClasses,
		CustomArrivalTime: req.CustomArrivalTime,
		CustomLeavingTime: req.CustomLeavingTime,
		Email:             existing.Email,
	}
	if req.Email != "" {
		profile.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if err := database.UpsertEmploymentFields(db, profile); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save teacher"})
	}

	return c.JSON(fiber.Map{"message": "Updated"})
}

func DeleteTeacherAPI(c *fiber.Ctx) error {
	if err := database.DeleteProfile(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete"})
	}
	return c.JSON(fiber.Map{"message": "Deleted"})
}

func GetOwnProfileAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	profile, err := database.GetProfileByID(config.GetDB(), userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load profile"})
	}
	if profile == nil {
		profile = &models.TeacherProfile{
			ID:    userID,
			Name:  c.Locals("user_name").(string),
			Email: c.Locals("user_email").(string),
		}
	}
	return c.JSON(profile)
}

// UpdateOwnProfileAPI writes the teacher-owned partition. Employment fields
// in the request are ignored; only the admin can set those.
func UpdateOwnProfileAPI(c *fiber.Ctx) error {
	type profileRequest struct {
		Name                string `json:"name" validate:"required"`
		Phone               string `json:"phone"`
		Gender              string `json:"gender"`
		MaritalStatus       string `json:"marital_status"`
		Address             string `json:"address"`
		ProfilePicture      string `json:"profile_picture"`
		EducationBackground string `json:"education_background"`
		YearsOfExperience   string `json:"years_of_experience"`
		Certificates        string `json:"certificates"`
	}

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}
	if len(req.ProfilePicture) > models.MaxProfilePictureBytes {
		return c.Status(400).JSON(fiber.Map{"error": "Profile picture must be under 500KB"})
	}

	userID := c.Locals("user_id").(string)

	profile := &models.TeacherProfile{
		ID:                  userID,
		Name:                req.Name,
		Phone:               req.Phone,
		Gender:              req.Gender,
		MaritalStatus:       req.MaritalStatus,
		Address:             req.Address,
		ProfilePicture:      req.ProfilePicture,
		EducationBackground: req.EducationBackground,
		YearsOfExperience:   req.YearsOfExperience,
		Certificates:        req.Certificates,
		Email:               c.Locals("user_email").(string),
	}
	if err := database.UpsertPersonalFields(config.GetDB(), profile); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save profile"})
	}

	if err := database.UpdateUserDisplayName(config.GetDB(), userID, req.Name); err == nil {
		c.Locals("user_name", req.Name)
	}

	return c.JSON(fiber.Map{
		"message": "Profile saved",
		"profile": profile,
	})
}
