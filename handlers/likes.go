package handlers

import (
	"net/http"

	"balancegame/db"
	"balancegame/middleware"
	"balancegame/services"

	"github.com/gin-gonic/gin"
)

func ToggleChoiceLike(c *gin.Context) {
	gameID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	choiceID, ok := parseIDParam(c, "choiceId")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	result, err := services.NewLikeService(db.DB).ToggleChoiceLike(gameID, choiceID, user)
	if err != nil {
		respondError(c, err)
		return
	}

	if result == services.ResultLiked {
		c.String(http.StatusOK, "Choice liked")
	} else {
		c.String(http.StatusOK, "Choice unliked")
	}
}

func ToggleCommentLike(c *gin.Context) {
	gameID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	result, err := services.NewLikeService(db.DB).ToggleCommentLike(gameID, commentID, user)
	if err != nil {
		respondError(c, err)
		return
	}

	if result == services.ResultLiked {
		c.String(http.StatusOK, "Comment liked")
	} else {
		c.String(http.StatusOK, "Comment unliked")
	}
}
