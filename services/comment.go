package services

import (
	"errors"

	"balancegame/apperrors"
	"balancegame/cache"
	"balancegame/models"

	"gorm.io/gorm"
)

// CommentService handles comment CRUD scoped to a game. Mutations require the
// acting user to be the comment's author.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(database *gorm.DB) *CommentService {
	return &CommentService{db: database}
}

// Add persists a new comment on the game, authored by the acting user.
func (s *CommentService) Add(gameID uint, input models.CommentInput, user models.User) (*models.Comment, error) {
	comment := models.Comment{
		GameID:  gameID,
		UserID:  user.ID,
		Content: input.Content,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Game not found")
			}
			return apperrors.OperationFailed("Failed to add comment", err)
		}
		if err := tx.Create(&comment).Error; err != nil {
			return apperrors.OperationFailed("Failed to add comment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	comment.User = user
	invalidateComments(gameID)
	return &comment, nil
}

// List returns all comments for the game in insertion order.
func (s *CommentService) List(gameID uint) ([]models.Comment, error) {
	if cached, err := cache.GetComments(gameID); err == nil {
		return cached, nil
	}

	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Game not found")
		}
		return nil, apperrors.OperationFailed("Failed to fetch comments", err)
	}

	var comments []models.Comment
	err := s.db.Where("game_id = ?", gameID).
		Preload("User").
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, apperrors.OperationFailed("Failed to fetch comments", err)
	}

	if cache.IsRedisAvailable() {
		cache.SetComments(gameID, comments)
	}
	return comments, nil
}

// Update overwrites the comment content. Only the author may update.
func (s *CommentService) Update(gameID, commentID uint, input models.CommentInput, user models.User) (*models.Comment, error) {
	var comment models.Comment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Comment not found")
			}
			return apperrors.OperationFailed("Failed to update comment", err)
		}
		if comment.GameID != gameID {
			return apperrors.NotFound("Comment not found")
		}
		if comment.UserID != user.ID {
			return apperrors.Forbidden("Only the author can update this comment")
		}

		comment.Content = input.Content
		if err := tx.Save(&comment).Error; err != nil {
			return apperrors.OperationFailed("Failed to update comment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	comment.User = user
	invalidateComments(gameID)
	return &comment, nil
}

// Delete removes the comment. Only the author may delete. Unexpected storage
// failures are wrapped generically so internals never leak to the caller.
func (s *CommentService) Delete(gameID, commentID uint, user models.User) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Comment not found")
			}
			return apperrors.OperationFailed("Failed to delete comment", err)
		}
		if comment.GameID != gameID {
			return apperrors.NotFound("Comment not found")
		}
		if comment.UserID != user.ID {
			return apperrors.Forbidden("Only the author can delete this comment")
		}

		if err := tx.Delete(&comment).Error; err != nil {
			return apperrors.OperationFailed("Failed to delete comment", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateComments(gameID)
	return nil
}

func invalidateComments(gameID uint) {
	if cache.IsRedisAvailable() {
		go cache.InvalidateComments(gameID)
	}
}
