package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AliciaPky/Astar/internal/dto"
	"github.com/AliciaPky/Astar/internal/models"
	appErrors "github.com/AliciaPky/Astar/pkg/errors"
	"github.com/AliciaPky/Astar/pkg/response"
)

type signInService interface {
	SignIn(role models.UserRole, req dto.SignInRequest) (*models.SignInResponse, error)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service signInService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc signInService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// AdminSignIn godoc
// @Summary Sign in as administrator
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.SignInRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/admin/sign-in [post]
func (h *AuthHandler) AdminSignIn(c *gin.Context) {
	h.signIn(c, models.RoleAdmin)
}

// StaffSignIn godoc
// @Summary Sign in as staff
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.SignInRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/staff/sign-in [post]
func (h *AuthHandler) StaffSignIn(c *gin.Context) {
	h.signIn(c, models.RoleStaff)
}

func (h *AuthHandler) signIn(c *gin.Context, role models.UserRole) {
	var req dto.SignInRequest
	if err := bindJSON(c, &req, "invalid sign-in payload"); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.SignIn(role, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Me godoc
// @Summary Current session
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"name": claims.Name, "role": claims.Role})
}
