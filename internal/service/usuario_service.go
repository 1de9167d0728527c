package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/model"
	"labreserva/backend/internal/repository"
)

var (
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")
	ErrEmailJaCadastrado    = errors.New("e-mail já cadastrado")
)

// UsuarioService manages professor accounts.
type UsuarioService interface {
	CreateProfessor(ctx context.Context, req *dto.CreateProfessorRequest) (*dto.UsuarioResponse, error)
	ListProfessores(ctx context.Context) ([]dto.UsuarioResponse, error)
	BuscarPorID(ctx context.Context, id uint) (*dto.UsuarioResponse, error)
	AlterarStatus(ctx context.Context, id uint, req *dto.AlterarStatusUsuarioRequest) (*dto.UsuarioResponse, error)
}

type usuarioService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUsuarioService creates the user workflow service.
func NewUsuarioService(repo *repository.Repository, logger *zap.Logger) UsuarioService {
	return &usuarioService{repo: repo, logger: logger}
}

func (s *usuarioService) CreateProfessor(ctx context.Context, req *dto.CreateProfessorRequest) (*dto.UsuarioResponse, error) {
	_, err := s.repo.Usuario.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailJaCadastrado
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("email lookup failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, err
	}

	usuario := &model.Usuario{
		Nome:      req.Nome,
		Email:     req.Email,
		SenhaHash: string(hash),
		Perfil:    model.PerfilProfessor,
		Status:    true,
	}
	if err := s.repo.Usuario.Create(ctx, usuario); err != nil {
		s.logger.Error("professor creation failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("professor created",
		zap.Uint("id", usuario.ID), zap.String("email", usuario.Email))

	resp := toUsuarioResponse(usuario)
	return &resp, nil
}

func (s *usuarioService) ListProfessores(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.Usuario.ListByPerfil(ctx, model.PerfilProfessor)
	if err != nil {
		s.logger.Error("professor listing failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		result = append(result, toUsuarioResponse(&usuarios[i]))
	}
	return result, nil
}

func (s *usuarioService) BuscarPorID(ctx context.Context, id uint) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.Usuario.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, err
	}
	resp := toUsuarioResponse(usuario)
	return &resp, nil
}

func (s *usuarioService) AlterarStatus(ctx context.Context, id uint, req *dto.AlterarStatusUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.Usuario.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, err
	}

	usuario.Status = *req.Status
	if err := s.repo.Usuario.Update(ctx, usuario); err != nil {
		s.logger.Error("user status update failed", zap.Error(err))
		return nil, err
	}

	resp := toUsuarioResponse(usuario)
	return &resp, nil
}

func toUsuarioResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:     u.ID,
		Nome:   u.Nome,
		Email:  u.Email,
		Perfil: string(u.Perfil),
		Status: u.Status,
	}
}

func toUsuarioResumo(u *model.Usuario) *dto.UsuarioResumo {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResumo{ID: u.ID, Nome: u.Nome, Email: u.Email}
}
