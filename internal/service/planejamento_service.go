package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/model"
	"labreserva/backend/internal/repository"
)

var (
	ErrPlanejamentoNaoEncontrado = errors.New("planejamento não encontrado")
	ErrPlanejamentoNaoEditavel   = errors.New("planejamento não pode mais ser editado")
	ErrPlanejamentoPublicado     = errors.New("planejamento publicado não pode ser excluído")
)

// motivoReprovacaoPadrao fills motivoStatus when a plan is rejected
// without an explicit reason.
const motivoReprovacaoPadrao = "Planejamento reprovado pela direção"

// PlanejamentoService is the lesson-plan workflow: authoring,
// visibility-scoped listing and the review state machine.
type PlanejamentoService interface {
	Criar(ctx context.Context, principal model.Principal, req *dto.CreatePlanejamentoRequest) (*dto.PlanejamentoResponse, error)
	Listar(ctx context.Context, principal model.Principal) ([]dto.PlanejamentoResponse, error)
	ListarMeus(ctx context.Context, principal model.Principal) ([]dto.PlanejamentoResponse, error)
	Buscar(ctx context.Context, principal model.Principal, filtros *dto.PlanejamentoFiltros) ([]dto.PlanejamentoResponse, error)
	BuscarPorID(ctx context.Context, principal model.Principal, id uint) (*dto.PlanejamentoResponse, error)
	Atualizar(ctx context.Context, principal model.Principal, id uint, req *dto.UpdatePlanejamentoRequest) (*dto.PlanejamentoResponse, error)
	Deletar(ctx context.Context, principal model.Principal, id uint) error
	Aprovar(ctx context.Context, principal model.Principal, id uint) (*dto.PlanejamentoResponse, error)
	Reprovar(ctx context.Context, principal model.Principal, id uint, req *dto.ReprovarPlanejamentoRequest) (*dto.PlanejamentoResponse, error)
	SolicitarAjustes(ctx context.Context, principal model.Principal, id uint, req *dto.SolicitarAjustesPlanejamentoRequest) (*dto.PlanejamentoResponse, error)
	Reenviar(ctx context.Context, principal model.Principal, id uint) (*dto.PlanejamentoResponse, error)
}

type planejamentoService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPlanejamentoService creates the lesson-plan workflow service.
func NewPlanejamentoService(repo *repository.Repository, logger *zap.Logger) PlanejamentoService {
	return &planejamentoService{repo: repo, logger: logger}
}

func (s *planejamentoService) Criar(ctx context.Context, principal model.Principal, req *dto.CreatePlanejamentoRequest) (*dto.PlanejamentoResponse, error) {
	plano := &model.Planejamento{
		AuthorID:  principal.ID,
		Titulo:    req.Titulo,
		Area:      req.Area,
		Descricao: req.Descricao,
		Status:    model.StatusPlanejamentoPendente,
		Versao:    1,
	}
	if err := s.repo.Planejamento.Create(ctx, plano); err != nil {
		s.logger.Error("plan creation failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("plan created",
		zap.Uint("id", plano.ID), zap.Uint("author_id", plano.AuthorID))

	return s.reload(ctx, plano.ID)
}

func (s *planejamentoService) Listar(ctx context.Context, principal model.Principal) ([]dto.PlanejamentoResponse, error) {
	// reviewers see everything; authors see published plans plus their
	// own in any status
	if principal.Perfil.Aprovador() {
		planos, err := s.repo.Planejamento.Search(ctx, &dto.PlanejamentoFiltros{})
		if err != nil {
			s.logger.Error("plan listing failed", zap.Error(err))
			return nil, err
		}
		return toPlanejamentoResponses(planos), nil
	}

	planos, err := s.repo.Planejamento.ListVisiveis(ctx, principal.ID)
	if err != nil {
		s.logger.Error("plan listing failed", zap.Error(err))
		return nil, err
	}
	return toPlanejamentoResponses(planos), nil
}

func (s *planejamentoService) ListarMeus(ctx context.Context, principal model.Principal) ([]dto.PlanejamentoResponse, error) {
	planos, err := s.repo.Planejamento.ListByAuthor(ctx, principal.ID)
	if err != nil {
		s.logger.Error("own plan listing failed", zap.Error(err))
		return nil, err
	}
	return toPlanejamentoResponses(planos), nil
}

func (s *planejamentoService) Buscar(ctx context.Context, principal model.Principal, filtros *dto.PlanejamentoFiltros) ([]dto.PlanejamentoResponse, error) {
	planos, err := s.repo.Planejamento.Search(ctx, filtros)
	if err != nil {
		s.logger.Error("plan search failed", zap.Error(err))
		return nil, err
	}

	if !principal.Perfil.Aprovador() {
		visiveis := planos[:0]
		for _, p := range planos {
			if p.Status == model.StatusPlanejamentoPublicado || p.AuthorID == principal.ID {
				visiveis = append(visiveis, p)
			}
		}
		planos = visiveis
	}
	return toPlanejamentoResponses(planos), nil
}

func (s *planejamentoService) BuscarPorID(ctx context.Context, principal model.Principal, id uint) (*dto.PlanejamentoResponse, error) {
	plano, err := s.getPlanejamento(ctx, id)
	if err != nil {
		return nil, err
	}
	if plano.AuthorID != principal.ID &&
		plano.Status != model.StatusPlanejamentoPublicado &&
		!principal.Perfil.Aprovador() {
		return nil, ErrAcessoNegado
	}
	resp := toPlanejamentoResponse(plano)
	return &resp, nil
}

func (s *planejamentoService) Atualizar(ctx context.Context, principal model.Principal, id uint, req *dto.UpdatePlanejamentoRequest) (*dto.PlanejamentoResponse, error) {
	plano, err := s.getPlanejamento(ctx, id)
	if err != nil {
		return nil, err
	}
	if plano.AuthorID != principal.ID {
		return nil, ErrAcessoNegado
	}
	if !plano.Status.Editavel() {
		return nil, ErrPlanejamentoNaoEditavel
	}

	plano.Titulo = req.Titulo
	plano.Area = req.Area
	plano.Descricao = req.Descricao
	plano.Versao++

	if err := s.repo.Planejamento.Update(ctx, plano); err != nil {
		return nil, err
	}

	return s.reload(ctx, plano.ID)
}

func (s *planejamentoService) Deletar(ctx context.Context, principal model.Principal, id uint) error {
	plano, err := s.getPlanejamento(ctx, id)
	if err != nil {
		return err
	}
	if plano.AuthorID != principal.ID && principal.Perfil != model.PerfilAdmin {
		return ErrAcessoNegado
	}
	if plano.Status == model.StatusPlanejamentoPublicado {
		return ErrPlanejamentoPublicado
	}

	if err := s.repo.Planejamento.Delete(ctx, id); err != nil {
		s.logger.Error("plan deletion failed", zap.Error(err))
		return err
	}

	s.logger.Info("plan deleted", zap.Uint("id", id), zap.Uint("by", principal.ID))
	return nil
}

func (s *planejamentoService) Aprovar(ctx context.Context, principal model.Principal, id uint) (*dto.PlanejamentoResponse, error) {
	plano, err := s.loadForReview(ctx, principal, id, model.StatusPlanejamentoPublicado)
	if err != nil {
		return nil, err
	}

	plano.Status = model.StatusPlanejamentoPublicado
	plano.Publico = true
	plano.MotivoStatus = nil

	if err := s.repo.Planejamento.Update(ctx, plano); err != nil {
		return nil, err
	}

	s.logger.Info("plan published", zap.Uint("id", plano.ID), zap.Uint("by", principal.ID))
	return s.reload(ctx, plano.ID)
}

func (s *planejamentoService) Reprovar(ctx context.Context, principal model.Principal, id uint, req *dto.ReprovarPlanejamentoRequest) (*dto.PlanejamentoResponse, error) {
	plano, err := s.loadForReview(ctx, principal, id, model.StatusPlanejamentoReprovado)
	if err != nil {
		return nil, err
	}

	motivo := motivoReprovacaoPadrao
	if req.Motivo != nil && *req.Motivo != "" {
		motivo = *req.Motivo
	}

	plano.Status = model.StatusPlanejamentoReprovado
	plano.MotivoStatus = &motivo

	if err := s.repo.Planejamento.Update(ctx, plano); err != nil {
		return nil, err
	}

	s.logger.Info("plan rejected", zap.Uint("id", plano.ID), zap.Uint("by", principal.ID))
	return s.reload(ctx, plano.ID)
}

func (s *planejamentoService) SolicitarAjustes(ctx context.Context, principal model.Principal, id uint, req *dto.SolicitarAjustesPlanejamentoRequest) (*dto.PlanejamentoResponse, error) {
	if req.Motivo == "" {
		return nil, ErrMotivoObrigatorio
	}

	plano, err := s.loadForReview(ctx, principal, id, model.StatusPlanejamentoAguardandoAjustes)
	if err != nil {
		return nil, err
	}

	plano.Status = model.StatusPlanejamentoAguardandoAjustes
	plano.MotivoStatus = &req.Motivo

	if err := s.repo.Planejamento.Update(ctx, plano); err != nil {
		return nil, err
	}

	s.logger.Info("plan sent back for adjustments",
		zap.Uint("id", plano.ID), zap.Uint("by", principal.ID))
	return s.reload(ctx, plano.ID)
}

// Reenviar is the author's explicit resubmission after a rejection or
// an adjustment request. It is the only way back to PENDENTE.
func (s *planejamentoService) Reenviar(ctx context.Context, principal model.Principal, id uint) (*dto.PlanejamentoResponse, error) {
	plano, err := s.getPlanejamento(ctx, id)
	if err != nil {
		return nil, err
	}
	if plano.AuthorID != principal.ID {
		return nil, ErrAcessoNegado
	}
	if !plano.Status.PodeReenviar() {
		return nil, ErrTransicaoInvalida
	}

	plano.Status = model.StatusPlanejamentoPendente
	plano.MotivoStatus = nil

	if err := s.repo.Planejamento.Update(ctx, plano); err != nil {
		return nil, err
	}

	s.logger.Info("plan resubmitted", zap.Uint("id", plano.ID))
	return s.reload(ctx, plano.ID)
}

// ── helpers ──

func (s *planejamentoService) getPlanejamento(ctx context.Context, id uint) (*model.Planejamento, error) {
	plano, err := s.repo.Planejamento.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanejamentoNaoEncontrado
		}
		s.logger.Error("plan lookup failed", zap.Error(err))
		return nil, err
	}
	return plano, nil
}

// loadForReview loads a plan for an approver decision and checks the
// transition before any mutation.
func (s *planejamentoService) loadForReview(ctx context.Context, principal model.Principal, id uint, alvo model.StatusPlanejamento) (*model.Planejamento, error) {
	if !principal.Perfil.Aprovador() {
		return nil, ErrAcessoNegado
	}
	plano, err := s.getPlanejamento(ctx, id)
	if err != nil {
		return nil, err
	}
	if !plano.Status.PodeTransicionarPara(alvo) {
		return nil, ErrTransicaoInvalida
	}
	return plano, nil
}

func (s *planejamentoService) reload(ctx context.Context, id uint) (*dto.PlanejamentoResponse, error) {
	plano, err := s.repo.Planejamento.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("plan reload failed", zap.Error(err))
		return nil, err
	}
	resp := toPlanejamentoResponse(plano)
	return &resp, nil
}

func toPlanejamentoResponse(p *model.Planejamento) dto.PlanejamentoResponse {
	return dto.PlanejamentoResponse{
		ID:           p.ID,
		Author:       toUsuarioResumo(p.Author),
		Titulo:       p.Titulo,
		Area:         p.Area,
		Descricao:    p.Descricao,
		Status:       string(p.Status),
		MotivoStatus: p.MotivoStatus,
		Versao:       p.Versao,
		Publico:      p.Publico,
		CriadoEm:     p.CriadoEm.Format(time.RFC3339),
	}
}

func toPlanejamentoResponses(planos []model.Planejamento) []dto.PlanejamentoResponse {
	result := make([]dto.PlanejamentoResponse, 0, len(planos))
	for i := range planos {
		result = append(result, toPlanejamentoResponse(&planos[i]))
	}
	return result
}
