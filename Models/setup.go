package Models

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the sqlite database (DB_PATH, default database.db), runs
// migrations and seeds the initial admin account.
func Connect() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := SeedAdmin(DB); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
}

// Migrate creates or updates the users and tasks tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{}, // Users first, tasks reference them
		&Task{},
	)
}

// SeedAdmin provisions the built-in admin account (PIN 1234) if no admin
// exists yet. Employees are created later through the API.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&User{}).Where("role = ?", RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := User{
		Name:     "Admin",
		Pin:      "1234",
		Role:     RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Seeded admin user with default PIN")
	return nil
}
