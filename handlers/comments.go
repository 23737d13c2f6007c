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

func AddComment(c *gin.Context) {
	gameID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input models.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	comment, err := services.NewCommentService(db.DB).Add(gameID, input, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func GetComments(c *gin.Context) {
	gameID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := services.NewCommentService(db.DB).List(gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func UpdateComment(c *gin.Context) {
	gameID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}

	var input models.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	comment, err := services.NewCommentService(db.DB).Update(gameID, commentID, input, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func DeleteComment(c *gin.Context) {
	gameID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := services.NewCommentService(db.DB).Delete(gameID, commentID, user); err != nil {
		respondError(c, err)
		return
	}

	c.String(http.StatusOK, "Comment deleted")
}
