package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB *sql.DB

	AppPort string
	AppEnv  string

	AdminEmail    string
	AdminPassword string
	JWTSecret     string

	// ATTENDANCE_TEST_IP substitutes the resolved caller IP, development only.
	TestIP      string
	IPLookupURL string

	// When enabled the scheduler generates the daily code each morning if the
	// admin has not done it yet.
	AutoGenerateCode   bool
	CodeGenerationHour int
}

var AppConfig *Config

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func dsn() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		get("DB_HOST", "localhost"),
		get("DB_PORT", "5432"),
		get("DB_USER", "postgres"),
		get("DB_PASSWORD", ""),
		get("DB_NAME", "pragatipath"),
		get("DB_SSLMODE", "disable"),
	)
}

// Load reads .env if present, opens the database pool and fills AppConfig.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := sql.Open("postgres", dsn())
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig = &Config{
		DB:                 db,
		AppPort:            get("APP_PORT", "8080"),
		AppEnv:             get("APP_ENV", "dev"),
		AdminEmail:         get("ADMIN_EMAIL", ""),
		AdminPassword:      get("ADMIN_PASSWORD", ""),
		JWTSecret:          get("JWT_SECRET", ""),
		TestIP:             get("ATTENDANCE_TEST_IP", ""),
		IPLookupURL:        get("IP_LOOKUP_URL", "https://api.ipify.org?format=json"),
		AutoGenerateCode:   get("AUTO_GENERATE_CODE", "false") == "true",
		CodeGenerationHour: getInt("CODE_GENERATION_HOUR", 7),
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// IsProduction guards the test-data seeding endpoints.
func IsProduction() bool {
	return AppConfig != nil && AppConfig.AppEnv == "production"
}
