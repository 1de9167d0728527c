package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"labreserva/backend/config"
	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/model"
	"labreserva/backend/pkg/jwt"
)

func setupTestAuthService(t *testing.T) (AuthService, *testRepos) {
	t.Helper()
	repos := newTestRepos()
	cfg := &config.Config{Auth: config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// nil redis: revocation degrades to a no-op
	svc := NewAuthService(repos.toRepository(), jwtMgr, nil, cfg, zap.NewNop())
	return svc, repos
}

func seedUsuario(t *testing.T, repos *testRepos, email, senha string, ativo bool) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	u := &model.Usuario{
		Nome: "Maria Souza", Email: email, SenhaHash: string(hash),
		Perfil: model.PerfilProfessor, Status: ativo,
	}
	if err := repos.usuario.Create(context.Background(), u); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u
}

func TestAuthService_Login(t *testing.T) {
	svc, repos := setupTestAuthService(t)
	seedUsuario(t, repos, "maria@escola.edu.br", "segredo1", true)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@escola.edu.br", Senha: "segredo1",
	})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}
	if result.Token == "" || result.RefreshToken == "" {
		t.Error("login should return both tokens")
	}
	if result.Tipo != "Bearer" {
		t.Errorf("tipo = %s, want Bearer", result.Tipo)
	}
	if result.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expiresIn = %d, want %d", result.ExpiresIn, int((15*time.Minute).Seconds()))
	}
	if result.Usuario.Email != "maria@escola.edu.br" {
		t.Errorf("usuario.email = %s", result.Usuario.Email)
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, repos := setupTestAuthService(t)
	seedUsuario(t, repos, "maria@escola.edu.br", "segredo1", true)

	// wrong password and unknown email must be indistinguishable
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@escola.edu.br", Senha: "errada",
	}); !errors.Is(err, ErrCredenciaisInvalidas) {
		t.Errorf("wrong password error = %v, want %v", err, ErrCredenciaisInvalidas)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ninguem@escola.edu.br", Senha: "segredo1",
	}); !errors.Is(err, ErrCredenciaisInvalidas) {
		t.Errorf("unknown email error = %v, want %v", err, ErrCredenciaisInvalidas)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, repos := setupTestAuthService(t)
	seedUsuario(t, repos, "maria@escola.edu.br", "segredo1", false)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@escola.edu.br", Senha: "segredo1",
	}); !errors.Is(err, ErrUsuarioInativo) {
		t.Errorf("inactive user error = %v, want %v", err, ErrUsuarioInativo)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, repos := setupTestAuthService(t)
	seedUsuario(t, repos, "maria@escola.edu.br", "segredo1", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@escola.edu.br", Senha: "segredo1",
	})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}

	renewed, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh should succeed: %v", err)
	}
	if renewed.Token == "" || renewed.RefreshToken == "" {
		t.Error("refresh should return a new token pair")
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, repos := setupTestAuthService(t)
	seedUsuario(t, repos, "maria@escola.edu.br", "segredo1", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@escola.edu.br", Senha: "segredo1",
	})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), login.Token); !errors.Is(err, ErrRefreshTokenInvalido) {
		t.Errorf("access token as refresh error = %v, want %v", err, ErrRefreshTokenInvalido)
	}
	if _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, ErrRefreshTokenInvalido) {
		t.Errorf("garbage token error = %v, want %v", err, ErrRefreshTokenInvalido)
	}
}

func TestAuthService_Refresh_InactiveUser(t *testing.T) {
	svc, repos := setupTestAuthService(t)
	u := seedUsuario(t, repos, "maria@escola.edu.br", "segredo1", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "maria@escola.edu.br", Senha: "segredo1",
	})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}

	// deactivation between login and refresh invalidates the session
	stored, _ := repos.usuario.GetByID(context.Background(), u.ID)
	stored.Status = false
	if err := repos.usuario.Update(context.Background(), stored); err != nil {
		t.Fatalf("deactivating user: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), login.RefreshToken); !errors.Is(err, ErrUsuarioInativo) {
		t.Errorf("refresh for inactive user error = %v, want %v", err, ErrUsuarioInativo)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, repos := setupTestAuthService(t)
	u := seedUsuario(t, repos, "maria@escola.edu.br", "segredo1", true)

	result, err := svc.Me(context.Background(), model.Principal{ID: u.ID, Perfil: u.Perfil})
	if err != nil {
		t.Fatalf("Me should succeed: %v", err)
	}
	if result.Email != "maria@escola.edu.br" {
		t.Errorf("email = %s", result.Email)
	}

	if _, err := svc.Me(context.Background(), model.Principal{ID: 99}); !errors.Is(err, ErrUsuarioNaoEncontrado) {
		t.Errorf("unknown principal error = %v, want %v", err, ErrUsuarioNaoEncontrado)
	}
}

func TestAuthService_Logout_WithoutRedis(t *testing.T) {
	svc, repos := setupTestAuthService(t)
	seedUsuario(t, repos, "maria@escola.edu.br", "segredo1", true)

	// without redis logout is a no-op, never an error
	if err := svc.Logout(context.Background(), &jwt.Claims{UserID: 1}); err != nil {
		t.Errorf("Logout without redis should succeed: %v", err)
	}
}
