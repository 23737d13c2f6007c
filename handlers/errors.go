package handlers

import (
	"errors"

	"balancegame/apperrors"
	"balancegame/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError logs the hidden cause of generic failures, then writes the
// domain error with its mapped status. Callers only ever see the message.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind == apperrors.KindOperationFailed && appErr.Err != nil {
		utils.Log.WithFields(logrus.Fields{
			"error": appErr.Err.Error(),
			"path":  c.Request.URL.Path,
		}).Error(appErr.Message)
	}
	apperrors.Respond(c, err)
}
