package services

import (
	"errors"
	"time"

	"balancegame/apperrors"
	"balancegame/auth"
	"balancegame/models"

	"gorm.io/gorm"
)

// UserService handles signup, login, logout and token refresh.
// The acting identity is always an explicit parameter or an explicit token;
// services never reach into the request context.
type UserService struct {
	db *gorm.DB
}

func NewUserService(database *gorm.DB) *UserService {
	return &UserService{db: database}
}

// Signup validates the password policy, rejects duplicate emails and persists
// a new user with role USER.
func (s *UserService) Signup(input models.SignupInput) error {
	if err := auth.ValidatePassword(input.Password); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return apperrors.OperationFailed("Failed to create user", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			return apperrors.DuplicateEmail("Email is already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.OperationFailed("Failed to create user", err)
		}

		user := models.User{
			Email:    input.Email,
			Password: hashed,
			Username: input.Username,
			Role:     models.RoleUser,
		}
		if err := tx.Create(&user).Error; err != nil {
			// Concurrent signup with the same email loses to the unique index.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.DuplicateEmail("Email is already registered")
			}
			return apperrors.OperationFailed("Failed to create user", err)
		}
		return nil
	})
}

// Login checks credentials, issues both tokens and persists the refresh token
// keyed by email. Token persistence and issuance succeed or fail together.
func (s *UserService) Login(input models.LoginInput) (*models.LoginResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("No registered user with this email")
		}
		return nil, apperrors.OperationFailed("Failed to log in", err)
	}

	if !auth.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperrors.InvalidCredentials("Password does not match")
	}

	accessToken, err := auth.CreateAccessToken(user.Email, user.Role)
	if err != nil {
		return nil, apperrors.OperationFailed("Failed to issue tokens", err)
	}
	refreshToken, err := auth.CreateRefreshToken(user.Email, user.Role)
	if err != nil {
		return nil, apperrors.OperationFailed("Failed to issue tokens", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// One stored refresh token per email: replace any previous session row.
		if err := tx.Where("email = ?", user.Email).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.RefreshToken{
			Email:     user.Email,
			Token:     refreshToken,
			ExpiresAt: time.Now().Add(auth.RefreshTokenTTL),
		}).Error
	})
	if err != nil {
		return nil, apperrors.OperationFailed("Failed to log in", err)
	}

	return &models.LoginResult{
		Username:     user.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout deletes the stored refresh-token row. Deleting an unknown token is a
// harmless no-op: the logout intent is already satisfied.
func (s *UserService) Logout(refreshToken string) error {
	err := s.db.Where("token = ?", refreshToken).Delete(&models.RefreshToken{}).Error
	if err != nil {
		return apperrors.OperationFailed("Failed to log out", err)
	}
	return nil
}

// Refresh issues a new access token for a valid refresh token. The token must
// verify cryptographically and a non-expired stored row must still exist,
// so a logged-out token cannot re-establish a session.
func (s *UserService) Refresh(refreshToken string) (string, error) {
	email, role, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return "", err
	}

	var stored models.RefreshToken
	if err := s.db.Where("token = ?", refreshToken).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.Unauthenticated("Refresh token is not recognized")
		}
		return "", apperrors.OperationFailed("Failed to refresh token", err)
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Delete(&stored)
		return "", apperrors.Unauthenticated("Refresh token has expired")
	}

	accessToken, err := auth.CreateAccessToken(email, role)
	if err != nil {
		return "", apperrors.OperationFailed("Failed to refresh token", err)
	}
	return accessToken, nil
}
