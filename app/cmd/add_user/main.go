package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
	"github.com/Deepak1064/PragatiPath-Academy/app/models"
	"github.com/Deepak1064/PragatiPath-Academy/app/routes/auth"
)

// Creates a user account from the command line, for onboarding staff before
// self-signup is opened. Example:
//
//	go run ./app/cmd/add_user -email asha@school.example -name "Asha Verma" -password secret123
func main() {
	email := flag.String("email", "", "account email")
	name := flag.String("name", "", "display name")
	password := flag.String("password", "", "initial password (min 6 characters)")
	role := flag.String("role", models.RoleTeacher, "account role: teacher or admin")
	flag.Parse()

	if *email == "" || *name == "" || len(*password) < 6 {
		log.Fatal("usage: add_user -email <email> -name <name> -password <min 6 chars> [-role teacher|admin]")
	}
	if *role != models.RoleTeacher && *role != models.RoleAdmin {
		log.Fatalf("unknown role %q", *role)
	}

	config.Load()
	db := config.GetDB()
	defer db.Close()

	if _, err := database.GetUserByEmail(db, *email); err == nil {
		log.Fatalf("An account for %s already exists", *email)
	} else if err != sql.ErrNoRows {
		log.Fatal("Lookup failed:", err)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user, err := database.CreateUser(db, *email, hash, *name, *role)
	if err != nil {
		log.Fatal("Failed to create user:", err)
	}

	fmt.Printf("User created: %s <%s> role=%s id=%s\n", user.DisplayName, user.Email, user.Role, user.ID)
}
