package auth

import (
	"strings"

	"github.com/Deepak1064/PragatiPath-Academy/app/models"
	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	// Public routes
	api.Post("/login", LoginAPI)
	api.Post("/signup", SignupAPI)
	api.Post("/logout", LogoutAPI)
	api.Post("/forgot-password", ForgotPasswordAPI)

	// Protected routes
	api.Use(AuthMiddleware)
	api.Get("/me", MeAPI)
	api.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the JWT from the cookie or Authorization header
// and sets the user context.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")

	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	user := &models.User{
		ID:          claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Role:        claims.Role,
		IsActive:    true,
	}

	c.Locals("user_id", user.ID)
	c.Locals("user_email", user.Email)
	c.Locals("user_name", user.DisplayName)
	c.Locals("user_role", user.Role)
	c.Locals("user", user)

	return c.Next()
}

// AdminMiddleware rejects non-admin users; it assumes AuthMiddleware already
// ran.
func AdminMiddleware(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok || !user.IsAdmin() {
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
	return c.Next()
}
