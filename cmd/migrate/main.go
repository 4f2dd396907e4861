package main

import (
	"log"

	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
)

// Standalone migrator for deployments where the schema is applied ahead of
// rolling out the server binary.
func main() {
	log.Println("Running migrations...")

	config.Load()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	if err := database.EnsureAdminUser(db, config.AppConfig.AdminEmail, config.AppConfig.AdminPassword); err != nil {
		log.Fatal("Admin bootstrap failed:", err)
	}

	log.Println("Migrations completed successfully")
}
