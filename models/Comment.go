package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GameID    uint      `gorm:"not null;index" json:"gameId"`
	UserID    uint      `gorm:"not null" json:"userId"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
}

// CommentInput - used for comment create and update validation
type CommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
