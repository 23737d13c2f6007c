package services

import (
	"path/filepath"
	"testing"

	"balancegame/auth"
	"balancegame/db"
	"balancegame/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens a throwaway sqlite database with the full schema.
// A file-backed database (not :memory:) is used so concurrent connections in
// the race tests see the same data. Transactions take the write lock up front
// (_txlock=immediate) so concurrent toggles queue on the busy timeout instead
// of deadlocking on a lock upgrade.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_txlock=immediate"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return database
}

func createUser(t *testing.T, database *gorm.DB, email, password string) models.User {
	t.Helper()

	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Email:    email,
		Password: hashed,
		Username: "tester",
		Role:     models.RoleUser,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createGame(t *testing.T, database *gorm.DB, name string) models.Game {
	t.Helper()

	game := models.Game{
		Name: name,
		Choices: []models.Choice{
			{Text: "Option A"},
			{Text: "Option B"},
		},
	}
	if err := database.Create(&game).Error; err != nil {
		t.Fatalf("failed to create game: %v", err)
	}
	return game
}

func createComment(t *testing.T, database *gorm.DB, gameID, userID uint, content string) models.Comment {
	t.Helper()

	comment := models.Comment{
		GameID:  gameID,
		UserID:  userID,
		Content: content,
	}
	if err := database.Create(&comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return comment
}
