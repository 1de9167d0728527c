package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/model"
)

func setupTestUsuarioService() (UsuarioService, *testRepos) {
	repos := newTestRepos()
	svc := NewUsuarioService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestUsuarioService_CreateProfessor(t *testing.T) {
	svc, repos := setupTestUsuarioService()

	result, err := svc.CreateProfessor(context.Background(), &dto.CreateProfessorRequest{
		Nome: "Maria Souza", Email: "maria@escola.edu.br", Senha: "segredo1",
	})
	if err != nil {
		t.Fatalf("CreateProfessor should succeed: %v", err)
	}
	if result.Perfil != string(model.PerfilProfessor) {
		t.Errorf("perfil = %s, want PROFESSOR", result.Perfil)
	}
	if !result.Status {
		t.Error("new professor should start active")
	}

	stored, err := repos.usuario.GetByID(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("stored user lookup: %v", err)
	}
	if stored.SenhaHash == "segredo1" {
		t.Error("password must not be stored in clear text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.SenhaHash), []byte("segredo1")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestUsuarioService_CreateProfessor_DuplicateEmail(t *testing.T) {
	svc, _ := setupTestUsuarioService()

	req := &dto.CreateProfessorRequest{Nome: "Maria Souza", Email: "maria@escola.edu.br", Senha: "segredo1"}
	if _, err := svc.CreateProfessor(context.Background(), req); err != nil {
		t.Fatalf("first CreateProfessor should succeed: %v", err)
	}
	if _, err := svc.CreateProfessor(context.Background(), req); !errors.Is(err, ErrEmailJaCadastrado) {
		t.Errorf("duplicate email error = %v, want %v", err, ErrEmailJaCadastrado)
	}
}

func TestUsuarioService_ListProfessores_FiltersByPerfil(t *testing.T) {
	svc, repos := setupTestUsuarioService()

	if _, err := svc.CreateProfessor(context.Background(), &dto.CreateProfessorRequest{
		Nome: "Maria Souza", Email: "maria@escola.edu.br", Senha: "segredo1",
	}); err != nil {
		t.Fatalf("CreateProfessor should succeed: %v", err)
	}
	repos.usuario.Create(context.Background(), &model.Usuario{
		Nome: "Direção", Email: "diretor@escola.edu.br", Perfil: model.PerfilDiretor, Status: true,
	})

	result, err := svc.ListProfessores(context.Background())
	if err != nil {
		t.Fatalf("ListProfessores should succeed: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("ListProfessores returned %d users, want 1", len(result))
	}
}

func TestUsuarioService_AlterarStatus(t *testing.T) {
	svc, _ := setupTestUsuarioService()

	created, err := svc.CreateProfessor(context.Background(), &dto.CreateProfessorRequest{
		Nome: "Maria Souza", Email: "maria@escola.edu.br", Senha: "segredo1",
	})
	if err != nil {
		t.Fatalf("CreateProfessor should succeed: %v", err)
	}

	inativo := false
	updated, err := svc.AlterarStatus(context.Background(), created.ID, &dto.AlterarStatusUsuarioRequest{Status: &inativo})
	if err != nil {
		t.Fatalf("AlterarStatus should succeed: %v", err)
	}
	if updated.Status {
		t.Error("user should be inactive")
	}

	if _, err := svc.AlterarStatus(context.Background(), 99, &dto.AlterarStatusUsuarioRequest{Status: &inativo}); !errors.Is(err, ErrUsuarioNaoEncontrado) {
		t.Errorf("unknown id error = %v, want %v", err, ErrUsuarioNaoEncontrado)
	}
}
