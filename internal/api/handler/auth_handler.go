package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/service"
	"labreserva/backend/pkg/response"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login authenticates with email and password.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "parâmetros inválidos")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Refresh exchanges a refresh token for a new token pair.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "parâmetros inválidos")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Me returns the authenticated user.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), principal)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the presented access token.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCredenciaisInvalidas):
		response.Unauthorized(c, 11101, err.Error())
	case errors.Is(err, service.ErrUsuarioInativo):
		response.Forbidden(c, 11102, err.Error())
	case errors.Is(err, service.ErrRefreshTokenInvalido):
		response.Unauthorized(c, 11103, err.Error())
	case errors.Is(err, service.ErrUsuarioNaoEncontrado):
		response.NotFound(c, 12101, err.Error())
	default:
		response.InternalError(c)
	}
}
