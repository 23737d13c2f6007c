package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"balancegame/db"
	"balancegame/middleware"
	"balancegame/models"
	"balancegame/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	if utils.Log == nil {
		utils.InitLogger()
	}

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
	db.DB = database

	r := gin.New()
	r.POST("/api/user/signup", Signup)
	r.POST("/api/user/login", Login)
	r.POST("/api/user/logout", Logout)
	r.POST("/api/user/refresh", RefreshToken)
	r.GET("/api/game", GetGames)
	r.GET("/api/game/:id", GetGameByID)

	protected := r.Group("/api").Use(middleware.AuthMiddleware())
	{
		protected.POST("/game", CreateGame)
		protected.POST("/game/:id/comment", AddComment)
		protected.GET("/game/:id/comment", GetComments)
		protected.PUT("/game/:id/comment/:commentId", UpdateComment)
		protected.DELETE("/game/:id/comment/:commentId", DeleteComment)
		protected.POST("/game/:id/choice/:choiceId/like", ToggleChoiceLike)
		protected.POST("/game/:id/comment/:commentId/like", ToggleCommentLike)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, r *gin.Engine, email string) (accessToken, refreshToken string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/user/signup", "", gin.H{
		"email":    email,
		"password": "GoodPass1!",
		"username": "tester",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/user/login", "", gin.H{
		"email":    email,
		"password": "GoodPass1!",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", w.Code, w.Body.String())
	}

	authHeader := w.Header().Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		t.Fatalf("login Authorization header = %q, want Bearer token", authHeader)
	}

	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode login body: %v", err)
	}
	if body.RefreshToken == "" {
		t.Fatal("login body has no refresh token")
	}

	return strings.TrimPrefix(authHeader, "Bearer "), body.RefreshToken
}

func seedGame(t *testing.T, name string) models.Game {
	t.Helper()

	game := models.Game{
		Name: name,
		Choices: []models.Choice{
			{Text: "Option A"},
			{Text: "Option B"},
		},
	}
	if err := db.DB.Create(&game).Error; err != nil {
		t.Fatalf("failed to seed game: %v", err)
	}
	return game
}

func TestSignupValidation(t *testing.T) {
	r := setupRouter(t)

	t.Run("weak password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/user/signup", "", gin.H{
			"email":    "user@example.com",
			"password": "short1!",
			"username": "tester",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		input := gin.H{"email": "dup@example.com", "password": "GoodPass1!", "username": "tester"}
		if w := doJSON(t, r, http.MethodPost, "/api/user/signup", "", input); w.Code != http.StatusCreated {
			t.Fatalf("first signup status = %d, want 201", w.Code)
		}
		if w := doJSON(t, r, http.MethodPost, "/api/user/signup", "", input); w.Code != http.StatusConflict {
			t.Errorf("second signup status = %d, want 409", w.Code)
		}
	})
}

func TestLoginFailures(t *testing.T) {
	r := setupRouter(t)
	signupAndLogin(t, r, "user@example.com")

	t.Run("unknown email", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/user/login", "", gin.H{
			"email":    "nobody@example.com",
			"password": "GoodPass1!",
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/user/login", "", gin.H{
			"email":    "user@example.com",
			"password": "WrongPass1!",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestCommentLifecycle(t *testing.T) {
	r := setupRouter(t)
	game := seedGame(t, "Pizza or burger")
	authorToken, _ := signupAndLogin(t, r, "author@example.com")
	otherToken, _ := signupAndLogin(t, r, "other@example.com")

	base := "/api/game/1/comment"

	w := doJSON(t, r, http.MethodPost, base, authorToken, gin.H{"content": "pizza wins"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add comment status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var created models.Comment
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode comment: %v", err)
	}
	if created.GameID != game.ID {
		t.Errorf("comment gameId = %d, want %d", created.GameID, game.ID)
	}

	w = doJSON(t, r, http.MethodGet, base, authorToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list comments status = %d, want 200", w.Code)
	}
	var listed []models.Comment
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode comment list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d comments, want 1", len(listed))
	}

	commentPath := base + "/1"

	w = doJSON(t, r, http.MethodPut, commentPath, otherToken, gin.H{"content": "hijacked"})
	if w.Code != http.StatusForbidden {
		t.Errorf("non-author update status = %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, commentPath, authorToken, gin.H{"content": "revised"})
	if w.Code != http.StatusOK {
		t.Errorf("author update status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, commentPath, otherToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-author delete status = %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, commentPath, authorToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("author delete status = %d, want 200", w.Code)
	}
	if w.Body.String() != "Comment deleted" {
		t.Errorf("delete body = %q, want confirmation text", w.Body.String())
	}
}

func TestChoiceLikeToggle(t *testing.T) {
	r := setupRouter(t)
	seedGame(t, "Pizza or burger")
	seedGame(t, "Cats or dogs")
	token, _ := signupAndLogin(t, r, "user@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/game/1/choice/1/like", token, nil)
	if w.Code != http.StatusOK || w.Body.String() != "Choice liked" {
		t.Errorf("first toggle = (%d, %q), want (200, Choice liked)", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/game/1/choice/1/like", token, nil)
	if w.Code != http.StatusOK || w.Body.String() != "Choice unliked" {
		t.Errorf("second toggle = (%d, %q), want (200, Choice unliked)", w.Code, w.Body.String())
	}

	// Choice 3 belongs to game 2.
	w = doJSON(t, r, http.MethodPost, "/api/game/1/choice/3/like", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("mismatched toggle status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/game/1/choice/1/like", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated toggle status = %d, want 401", w.Code)
	}
}

func TestLogoutAndRefresh(t *testing.T) {
	r := setupRouter(t)
	_, refreshToken := signupAndLogin(t, r, "user@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/user/refresh", "", gin.H{"refreshToken": refreshToken})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/user/logout", "", gin.H{"refreshToken": refreshToken})
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", w.Code)
	}

	// Idempotent: logging out again still succeeds.
	w = doJSON(t, r, http.MethodPost, "/api/user/logout", "", gin.H{"refreshToken": refreshToken})
	if w.Code != http.StatusOK {
		t.Errorf("repeated logout status = %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/user/refresh", "", gin.H{"refreshToken": refreshToken})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("refresh after logout status = %d, want 401", w.Code)
	}
}
