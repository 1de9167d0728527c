package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"labreserva/backend/internal/model"
	"labreserva/backend/pkg/jwt"
	"labreserva/backend/pkg/redis"
	"labreserva/backend/pkg/response"
)

const (
	// ContextKeyPrincipal holds the model.Principal of the caller.
	ContextKeyPrincipal = "principal"
	// ContextKeyClaims holds the *jwt.Claims of the access token, used
	// by logout to revoke the exact token.
	ContextKeyClaims = "claims"
)

// JWTAuth validates the Authorization: Bearer access token, rejects
// revoked tokens and injects the Principal into the gin context.
// rdb may be nil; revocation checks are then skipped.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "cabeçalho de autenticação ausente")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "cabeçalho de autenticação inválido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token inválido ou expirado")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "tipo de token inválido")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// blacklist unavailable: let the request through rather
				// than lock everyone out
				logger.Warn("blacklist check failed", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, 10002, "token revogado")
				c.Abort()
				return
			}
		}

		c.Set(ContextKeyPrincipal, model.Principal{
			ID:     claims.UserID,
			Perfil: model.PerfilUsuario(claims.Perfil),
		})
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// RoleAuth allows only the given roles past. Runs after JWTAuth.
func RoleAuth(perfis ...model.PerfilUsuario) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextKeyPrincipal)
		if !exists {
			response.Unauthorized(c, 10002, "não autenticado")
			c.Abort()
			return
		}

		principal := v.(model.Principal)
		for _, p := range perfis {
			if principal.Perfil == p {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "acesso negado")
		c.Abort()
	}
}
