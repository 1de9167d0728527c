package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/model"
	"labreserva/backend/internal/repository"
)

var ErrLaboratorioNaoEncontrado = errors.New("laboratório não encontrado")

// LaboratorioService manages laboratories. Plain CRUD, no state
// machine; deactivation only blocks new reservations.
type LaboratorioService interface {
	Criar(ctx context.Context, req *dto.CreateLaboratorioRequest) (*dto.LaboratorioResponse, error)
	Listar(ctx context.Context) ([]dto.LaboratorioResponse, error)
	BuscarPorID(ctx context.Context, id uint) (*dto.LaboratorioResponse, error)
	Atualizar(ctx context.Context, id uint, req *dto.UpdateLaboratorioRequest) (*dto.LaboratorioResponse, error)
	AlterarStatus(ctx context.Context, id uint, req *dto.AlterarStatusLaboratorioRequest) (*dto.LaboratorioResponse, error)
}

type laboratorioService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLaboratorioService creates the laboratory workflow service.
func NewLaboratorioService(repo *repository.Repository, logger *zap.Logger) LaboratorioService {
	return &laboratorioService{repo: repo, logger: logger}
}

func (s *laboratorioService) Criar(ctx context.Context, req *dto.CreateLaboratorioRequest) (*dto.LaboratorioResponse, error) {
	lab := &model.Laboratorio{
		Nome:            req.Nome,
		Capacidade:      req.Capacidade,
		QtdEquipamentos: req.QtdEquipamentos,
		Status:          true,
	}
	if err := s.repo.Laboratorio.Create(ctx, lab); err != nil {
		s.logger.Error("laboratory creation failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("laboratory created", zap.Uint("id", lab.ID), zap.String("nome", lab.Nome))

	resp := toLaboratorioResponse(lab)
	return &resp, nil
}

func (s *laboratorioService) Listar(ctx context.Context) ([]dto.LaboratorioResponse, error) {
	labs, err := s.repo.Laboratorio.List(ctx)
	if err != nil {
		s.logger.Error("laboratory listing failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LaboratorioResponse, 0, len(labs))
	for i := range labs {
		result = append(result, toLaboratorioResponse(&labs[i]))
	}
	return result, nil
}

func (s *laboratorioService) BuscarPorID(ctx context.Context, id uint) (*dto.LaboratorioResponse, error) {
	lab, err := s.getLaboratorio(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toLaboratorioResponse(lab)
	return &resp, nil
}

func (s *laboratorioService) Atualizar(ctx context.Context, id uint, req *dto.UpdateLaboratorioRequest) (*dto.LaboratorioResponse, error) {
	lab, err := s.getLaboratorio(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nome != nil {
		lab.Nome = *req.Nome
	}
	if req.Capacidade != nil {
		lab.Capacidade = *req.Capacidade
	}
	if req.QtdEquipamentos != nil {
		lab.QtdEquipamentos = *req.QtdEquipamentos
	}

	if err := s.repo.Laboratorio.Update(ctx, lab); err != nil {
		s.logger.Error("laboratory update failed", zap.Error(err))
		return nil, err
	}

	resp := toLaboratorioResponse(lab)
	return &resp, nil
}

func (s *laboratorioService) AlterarStatus(ctx context.Context, id uint, req *dto.AlterarStatusLaboratorioRequest) (*dto.LaboratorioResponse, error) {
	lab, err := s.getLaboratorio(ctx, id)
	if err != nil {
		return nil, err
	}

	lab.Status = *req.Status
	if err := s.repo.Laboratorio.Update(ctx, lab); err != nil {
		s.logger.Error("laboratory status update failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("laboratory status changed",
		zap.Uint("id", lab.ID), zap.Bool("status", lab.Status))

	resp := toLaboratorioResponse(lab)
	return &resp, nil
}

func (s *laboratorioService) getLaboratorio(ctx context.Context, id uint) (*model.Laboratorio, error) {
	lab, err := s.repo.Laboratorio.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLaboratorioNaoEncontrado
		}
		s.logger.Error("laboratory lookup failed", zap.Error(err))
		return nil, err
	}
	return lab, nil
}

func toLaboratorioResponse(l *model.Laboratorio) dto.LaboratorioResponse {
	return dto.LaboratorioResponse{
		ID:              l.ID,
		Nome:            l.Nome,
		Capacidade:      l.Capacidade,
		QtdEquipamentos: l.QtdEquipamentos,
		Status:          l.Status,
	}
}

func toLaboratorioResumo(l *model.Laboratorio) *dto.LaboratorioResumo {
	if l == nil {
		return nil
	}
	return &dto.LaboratorioResumo{ID: l.ID, Nome: l.Nome}
}
