package handlers

import (
	"net/http"

	"balancegame/db"
	"balancegame/models"
	"balancegame/monitoring"
	"balancegame/services"
	"balancegame/utils"

	"github.com/gin-gonic/gin"
)

func Signup(c *gin.Context) {
	var input models.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := services.NewUserService(db.DB).Signup(input); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login returns the access token in the Authorization header and the refresh
// token in the body.
func Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := services.NewUserService(db.DB).Login(input)
	if err != nil {
		monitoring.AuthenticationAttempts.WithLabelValues("failure").Inc()
		respondError(c, err)
		return
	}

	monitoring.AuthenticationAttempts.WithLabelValues("success").Inc()
	c.Header("Authorization", "Bearer "+result.AccessToken)
	c.JSON(http.StatusOK, gin.H{
		"username":     result.Username,
		"refreshToken": result.RefreshToken,
	})
}

func Logout(c *gin.Context) {
	var input models.LogoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := services.NewUserService(db.DB).Logout(input.RefreshToken); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func RefreshToken(c *gin.Context) {
	var input models.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	accessToken, err := services.NewUserService(db.DB).Refresh(input.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Authorization", "Bearer "+accessToken)
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}
