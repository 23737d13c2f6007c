package db

import (
	"balancegame/models"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres dbname=balancegame password=postgres sslmode=disable"
	}

	var openErr error
	// TranslateError makes duplicate-key inserts surface as gorm.ErrDuplicatedKey,
	// which the like toggle depends on.
	DB, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if openErr != nil {
		log.Fatal("failed to connect to the database:", openErr)
	}

	if migrateErr := Migrate(DB); migrateErr != nil {
		log.Fatal("failed to migrate:", migrateErr)
	}

	log.Println("Database connected and migrated")
}

// Migrate creates or updates the schema for every entity.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Choice{},
		&models.Comment{},
		&models.ChoiceLike{},
		&models.CommentLike{},
		&models.RefreshToken{},
	)
}
