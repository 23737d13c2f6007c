package models

import "time"

// ChoiceLike marks that a user liked a game choice.
// The combination of UserID and ChoiceID must be unique; the index is what
// keeps concurrent toggles from ever persisting a second row.
type ChoiceLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_choice" json:"userId"`
	ChoiceID  uint      `gorm:"not null;uniqueIndex:idx_user_choice" json:"choiceId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentLike marks that a user liked a comment.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"userId"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}
