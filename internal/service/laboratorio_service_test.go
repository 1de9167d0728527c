package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"labreserva/backend/internal/dto"
)

func setupTestLaboratorioService() (LaboratorioService, *testRepos) {
	repos := newTestRepos()
	svc := NewLaboratorioService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestLaboratorioService_Criar(t *testing.T) {
	svc, _ := setupTestLaboratorioService()

	lab, err := svc.Criar(context.Background(), &dto.CreateLaboratorioRequest{
		Nome: "Laboratório de Física", Capacidade: 25, QtdEquipamentos: 12,
	})
	if err != nil {
		t.Fatalf("Criar should succeed: %v", err)
	}
	if !lab.Status {
		t.Error("new laboratory should start active")
	}
	if lab.ID == 0 {
		t.Error("new laboratory should be assigned an id")
	}
}

func TestLaboratorioService_Atualizar_PartialPatch(t *testing.T) {
	svc, _ := setupTestLaboratorioService()

	lab, err := svc.Criar(context.Background(), &dto.CreateLaboratorioRequest{
		Nome: "Laboratório de Física", Capacidade: 25, QtdEquipamentos: 12,
	})
	if err != nil {
		t.Fatalf("Criar should succeed: %v", err)
	}

	capacidade := 40
	updated, err := svc.Atualizar(context.Background(), lab.ID, &dto.UpdateLaboratorioRequest{
		Capacidade: &capacidade,
	})
	if err != nil {
		t.Fatalf("Atualizar should succeed: %v", err)
	}
	if updated.Capacidade != 40 {
		t.Errorf("capacidade = %d, want 40", updated.Capacidade)
	}
	if updated.Nome != "Laboratório de Física" {
		t.Errorf("untouched field changed, nome = %s", updated.Nome)
	}
	if updated.QtdEquipamentos != 12 {
		t.Errorf("untouched field changed, qtdEquipamentos = %d", updated.QtdEquipamentos)
	}
}

func TestLaboratorioService_AlterarStatus(t *testing.T) {
	svc, _ := setupTestLaboratorioService()

	lab, err := svc.Criar(context.Background(), &dto.CreateLaboratorioRequest{
		Nome: "Laboratório de Física", Capacidade: 25, QtdEquipamentos: 12,
	})
	if err != nil {
		t.Fatalf("Criar should succeed: %v", err)
	}

	inativo := false
	updated, err := svc.AlterarStatus(context.Background(), lab.ID, &dto.AlterarStatusLaboratorioRequest{Status: &inativo})
	if err != nil {
		t.Fatalf("AlterarStatus should succeed: %v", err)
	}
	if updated.Status {
		t.Error("laboratory should be inactive")
	}
}

func TestLaboratorioService_NotFound(t *testing.T) {
	svc, _ := setupTestLaboratorioService()

	if _, err := svc.BuscarPorID(context.Background(), 99); !errors.Is(err, ErrLaboratorioNaoEncontrado) {
		t.Errorf("BuscarPorID error = %v, want %v", err, ErrLaboratorioNaoEncontrado)
	}

	nome := "x"
	if _, err := svc.Atualizar(context.Background(), 99, &dto.UpdateLaboratorioRequest{Nome: &nome}); !errors.Is(err, ErrLaboratorioNaoEncontrado) {
		t.Errorf("Atualizar error = %v, want %v", err, ErrLaboratorioNaoEncontrado)
	}
}

func TestLaboratorioService_Listar(t *testing.T) {
	svc, _ := setupTestLaboratorioService()

	for _, nome := range []string{"Química", "Física", "Biologia"} {
		if _, err := svc.Criar(context.Background(), &dto.CreateLaboratorioRequest{
			Nome: "Laboratório de " + nome, Capacidade: 20, QtdEquipamentos: 10,
		}); err != nil {
			t.Fatalf("Criar should succeed: %v", err)
		}
	}

	labs, err := svc.Listar(context.Background())
	if err != nil {
		t.Fatalf("Listar should succeed: %v", err)
	}
	if len(labs) != 3 {
		t.Errorf("Listar returned %d laboratories, want 3", len(labs))
	}
}
