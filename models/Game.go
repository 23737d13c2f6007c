package models

type Game struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null" json:"name"`
	Description string   `json:"description"`
	Choices     []Choice `gorm:"foreignKey:GameID" json:"choices"`
}

// Choice is one of the two options a game offers.
type Choice struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	GameID uint   `gorm:"not null;index" json:"gameId"`
	Text   string `gorm:"not null" json:"text"`
}

// CreateGameInput - used for game creation validation
type CreateGameInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Choices     []string `json:"choices" validate:"required,len=2,dive,required,max=200"`
}
