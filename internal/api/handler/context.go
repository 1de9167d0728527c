package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"labreserva/backend/internal/api/middleware"
	"labreserva/backend/internal/model"
	"labreserva/backend/pkg/jwt"
)

// getPrincipal reads the authenticated caller injected by JWTAuth. The
// bool is false on routes mistakenly registered without the middleware.
func getPrincipal(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(middleware.ContextKeyPrincipal)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := v.(model.Principal)
	return principal, ok
}

// getClaims reads the access-token claims injected by JWTAuth.
func getClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(middleware.ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
