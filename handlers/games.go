package handlers

import (
	"net/http"

	"balancegame/db"
	"balancegame/middleware"
	"balancegame/models"
	"balancegame/services"
	"balancegame/utils"

	"github.com/gin-gonic/gin"
)

func GetGames(c *gin.Context) {
	games, err := services.NewGameService(db.DB).List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func GetGameByID(c *gin.Context) {
	gameID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	game, err := services.NewGameService(db.DB).Get(gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func CreateGame(c *gin.Context) {
	var input models.CreateGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	game, err := services.NewGameService(db.DB).Create(input, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, game)
}
