package services

import (
	"errors"

	"balancegame/apperrors"
	"balancegame/models"
	"balancegame/monitoring"

	"gorm.io/gorm"
)

// Toggle results reported back to the boundary.
const (
	ResultLiked   = "liked"
	ResultUnliked = "unliked"
)

// errAlreadyLiked aborts the toggle transaction when a concurrent request won
// the insert race. The unique (user, target) index converts the second insert
// into a duplicate-key error, which we absorb as "already liked".
var errAlreadyLiked = errors.New("like row already exists")

// LikeService flips like state on game choices and comments.
type LikeService struct {
	db *gorm.DB
}

func NewLikeService(database *gorm.DB) *LikeService {
	return &LikeService{db: database}
}

// ToggleChoiceLike likes the choice if no like row exists for the acting user,
// or removes the existing one. The choice must belong to the given game.
func (s *LikeService) ToggleChoiceLike(gameID, choiceID uint, user models.User) (string, error) {
	result := ResultLiked

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := resolveGame(tx, gameID); err != nil {
			return err
		}

		var choice models.Choice
		if err := tx.First(&choice, choiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Choice not found")
			}
			return apperrors.OperationFailed("Failed to toggle like", err)
		}
		if choice.GameID != gameID {
			return apperrors.TargetMismatch("Choice does not belong to this game")
		}

		var existing models.ChoiceLike
		err := tx.Where("user_id = ? AND choice_id = ?", user.ID, choiceID).First(&existing).Error
		if err == nil {
			// Zero rows affected means a concurrent request already removed it;
			// either way the end state is "unliked".
			if err := tx.Delete(&existing).Error; err != nil {
				return apperrors.OperationFailed("Failed to toggle like", err)
			}
			result = ResultUnliked
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.OperationFailed("Failed to toggle like", err)
		}

		if err := tx.Create(&models.ChoiceLike{UserID: user.ID, ChoiceID: choiceID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyLiked
			}
			return apperrors.OperationFailed("Failed to toggle like", err)
		}
		result = ResultLiked
		return nil
	})

	if err != nil && !errors.Is(err, errAlreadyLiked) {
		return "", err
	}

	monitoring.LikeToggles.WithLabelValues("choice", result).Inc()
	return result, nil
}

// ToggleCommentLike is the comment counterpart of ToggleChoiceLike.
func (s *LikeService) ToggleCommentLike(gameID, commentID uint, user models.User) (string, error) {
	result := ResultLiked

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := resolveGame(tx, gameID); err != nil {
			return err
		}

		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Comment not found")
			}
			return apperrors.OperationFailed("Failed to toggle like", err)
		}
		if comment.GameID != gameID {
			return apperrors.TargetMismatch("Comment does not belong to this game")
		}

		var existing models.CommentLike
		err := tx.Where("user_id = ? AND comment_id = ?", user.ID, commentID).First(&existing).Error
		if err == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return apperrors.OperationFailed("Failed to toggle like", err)
			}
			result = ResultUnliked
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.OperationFailed("Failed to toggle like", err)
		}

		if err := tx.Create(&models.CommentLike{UserID: user.ID, CommentID: commentID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyLiked
			}
			return apperrors.OperationFailed("Failed to toggle like", err)
		}
		result = ResultLiked
		return nil
	})

	if err != nil && !errors.Is(err, errAlreadyLiked) {
		return "", err
	}

	monitoring.LikeToggles.WithLabelValues("comment", result).Inc()
	return result, nil
}

func resolveGame(tx *gorm.DB, gameID uint) error {
	var game models.Game
	if err := tx.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Game not found")
		}
		return apperrors.OperationFailed("Failed to toggle like", err)
	}
	return nil
}
