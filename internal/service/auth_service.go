package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"labreserva/backend/config"
	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/model"
	"labreserva/backend/internal/repository"
	"labreserva/backend/pkg/jwt"
	"labreserva/backend/pkg/redis"
)

var (
	ErrCredenciaisInvalidas = errors.New("e-mail ou senha inválidos")
	ErrUsuarioInativo       = errors.New("usuário inativo, contate o administrador")
	ErrRefreshTokenInvalido = errors.New("refresh token inválido")
)

// AuthService handles login, token refresh and revocation.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Me(ctx context.Context, principal model.Principal) (*dto.UsuarioResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
}

type authService struct {
	repo           *repository.Repository
	jwtMgr         *jwt.Manager
	redis          *redis.Client
	accessTokenTTL time.Duration
	logger         *zap.Logger
}

// NewAuthService creates the auth workflow service.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authService{
		repo:           repo,
		jwtMgr:         jwtMgr,
		redis:          redisClient,
		accessTokenTTL: cfg.Auth.AccessTokenTTL,
		logger:         logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.repo.Usuario.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenciaisInvalidas
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, ErrCredenciaisInvalidas
	}

	if !usuario.Status {
		return nil, ErrUsuarioInativo
	}

	return s.issueTokens(usuario)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrRefreshTokenInvalido
	}
	if claims.TokenType != "refresh" {
		return nil, ErrRefreshTokenInvalido
	}

	if s.redis != nil {
		revoked, err := s.redis.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed", zap.Error(err))
		} else if revoked {
			return nil, ErrRefreshTokenInvalido
		}
	}

	usuario, err := s.repo.Usuario.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenInvalido
		}
		s.logger.Error("refresh lookup failed", zap.Error(err))
		return nil, err
	}
	if !usuario.Status {
		return nil, ErrUsuarioInativo
	}

	// single use: revoke the presented refresh token before issuing a
	// new pair
	if s.redis != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.redis.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("refresh token revocation failed", zap.Error(err))
		}
	}

	return s.issueTokens(usuario)
}

func (s *authService) Me(ctx context.Context, principal model.Principal) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.Usuario.GetByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		s.logger.Error("me lookup failed", zap.Error(err))
		return nil, err
	}
	resp := toUsuarioResponse(usuario)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.redis == nil {
		s.logger.Warn("logout without redis, token stays valid until expiry",
			zap.Uint("user_id", claims.UserID))
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.redis.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("token revocation failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) issueTokens(usuario *model.Usuario) (*dto.LoginResponse, error) {
	access, err := s.jwtMgr.GenerateAccessToken(usuario.ID, string(usuario.Perfil))
	if err != nil {
		s.logger.Error("access token generation failed", zap.Error(err))
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(usuario.ID, string(usuario.Perfil))
	if err != nil {
		s.logger.Error("refresh token generation failed", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		Token:        access,
		RefreshToken: refresh,
		Tipo:         "Bearer",
		ExpiresIn:    int(s.accessTokenTTL.Seconds()),
		Usuario:      toUsuarioResponse(usuario),
	}, nil
}
