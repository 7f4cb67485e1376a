package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AliciaPky/Astar/internal/middleware"
	"github.com/AliciaPky/Astar/internal/models"
	appErrors "github.com/AliciaPky/Astar/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return nil
	}
	return claims
}

func intParam(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clonef(appErrors.ErrValidation, "%s must be an integer, got %q", name, raw)
	}
	return id, nil
}

func bindJSON(c *gin.Context, dst interface{}, message string) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	return nil
}
