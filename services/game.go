package services

import (
	"errors"

	"balancegame/apperrors"
	"balancegame/cache"
	"balancegame/models"

	"gorm.io/gorm"
)

// GameService serves the game catalog. Games are created by admins and only
// read by everything else in this backend.
type GameService struct {
	db *gorm.DB
}

func NewGameService(database *gorm.DB) *GameService {
	return &GameService{db: database}
}

// List returns all games with their choices.
func (s *GameService) List() ([]models.Game, error) {
	if cached, err := cache.GetGames(); err == nil {
		return cached, nil
	}

	var games []models.Game
	if err := s.db.Preload("Choices").Find(&games).Error; err != nil {
		return nil, apperrors.OperationFailed("Failed to fetch games", err)
	}

	if cache.IsRedisAvailable() {
		cache.SetGames(games)
	}
	return games, nil
}

// Get returns one game with its choices.
func (s *GameService) Get(gameID uint) (*models.Game, error) {
	if cached, err := cache.GetGame(gameID); err == nil {
		return cached, nil
	}

	var game models.Game
	if err := s.db.Preload("Choices").First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Game not found")
		}
		return nil, apperrors.OperationFailed("Failed to fetch game", err)
	}

	if cache.IsRedisAvailable() {
		cache.SetGame(gameID, &game)
	}
	return &game, nil
}

// Create persists a new game with its two choices. Admins only.
func (s *GameService) Create(input models.CreateGameInput, user models.User) (*models.Game, error) {
	if user.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("Admins only")
	}

	game := models.Game{
		Name:        input.Name,
		Description: input.Description,
	}
	for _, text := range input.Choices {
		game.Choices = append(game.Choices, models.Choice{Text: text})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&game).Error
	})
	if err != nil {
		return nil, apperrors.OperationFailed("Failed to create game", err)
	}

	if cache.IsRedisAvailable() {
		go cache.InvalidateGames()
	}
	return &game, nil
}
