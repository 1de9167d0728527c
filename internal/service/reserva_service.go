package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/model"
	"labreserva/backend/internal/repository"
)

var (
	ErrReservaNaoEncontrada      = errors.New("reserva não encontrada")
	ErrLaboratorioInativo        = errors.New("laboratório inativo não aceita novas reservas")
	ErrPeriodoInvalido           = errors.New("início deve ser anterior ao fim")
	ErrReservaNoPassado          = errors.New("não é possível reservar períodos no passado")
	ErrTituloInvalido            = errors.New("título deve ter ao menos 3 caracteres")
	ErrReservaNaoEditavel        = errors.New("reserva não pode mais ser editada")
	ErrPlanejamentoNaoVinculavel = errors.New("planejamento não disponível para vínculo")
)

// ReservaService is the reservation workflow: creation with conflict
// detection, role-scoped listing, owner edits and the approval state
// machine.
type ReservaService interface {
	Criar(ctx context.Context, principal model.Principal, req *dto.CreateReservaRequest) (*dto.ReservaResponse, error)
	Listar(ctx context.Context, principal model.Principal, status string) ([]dto.ReservaResponse, error)
	ListarPendentes(ctx context.Context, principal model.Principal) ([]dto.ReservaResponse, error)
	ListarFuturas(ctx context.Context, principal model.Principal) ([]dto.ReservaResponse, error)
	BuscarPorID(ctx context.Context, principal model.Principal, id uint) (*dto.ReservaResponse, error)
	BuscarPorLaboratorioEPeriodo(ctx context.Context, laboratorioID uint, periodo *dto.PeriodoQuery) ([]dto.ReservaResponse, error)
	Atualizar(ctx context.Context, principal model.Principal, id uint, req *dto.UpdateReservaRequest) (*dto.ReservaResponse, error)
	AlterarStatus(ctx context.Context, principal model.Principal, id uint, req *dto.AlterarStatusReservaRequest) (*dto.ReservaResponse, error)
	Cancelar(ctx context.Context, principal model.Principal, id uint) error
	VincularPlanejamento(ctx context.Context, principal model.Principal, id uint, req *dto.VincularPlanejamentoRequest) (*dto.ReservaResponse, error)
	CalendarioICS(ctx context.Context, principal model.Principal) (string, error)
}

type reservaService struct {
	repo   *repository.Repository
	locks  *labLocker
	logger *zap.Logger
}

// NewReservaService creates the reservation workflow service.
func NewReservaService(repo *repository.Repository, logger *zap.Logger) ReservaService {
	return &reservaService{repo: repo, locks: newLabLocker(), logger: logger}
}

func (s *reservaService) Criar(ctx context.Context, principal model.Principal, req *dto.CreateReservaRequest) (*dto.ReservaResponse, error) {
	window := TimeWindow{Inicio: req.Inicio, Fim: req.Fim}
	if !window.Valida() {
		return nil, ErrPeriodoInvalido
	}
	if req.Inicio.Before(time.Now()) {
		return nil, ErrReservaNoPassado
	}
	if utf8.RuneCountInString(req.Titulo) < 3 {
		return nil, ErrTituloInvalido
	}

	lab, err := s.repo.Laboratorio.GetByID(ctx, req.LaboratorioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLaboratorioNaoEncontrado
		}
		s.logger.Error("laboratory lookup failed", zap.Error(err))
		return nil, err
	}
	if !lab.Status {
		return nil, ErrLaboratorioInativo
	}

	if req.PlanejamentoID != nil {
		if err := s.checkPlanejamentoVinculavel(ctx, principal, *req.PlanejamentoID); err != nil {
			return nil, err
		}
	}

	// the lock covers the conflict scan and the insert, so two
	// concurrent requests for the same laboratory cannot both pass
	// the scan
	defer s.locks.Lock(req.LaboratorioID).Unlock()

	ativas, err := s.repo.Reserva.ListAtivasByLaboratorio(ctx, req.LaboratorioID)
	if err != nil {
		s.logger.Error("active reservation scan failed", zap.Error(err))
		return nil, err
	}
	if ids := findConflicts(ativas, window, 0); len(ids) > 0 {
		return nil, &ConflitoError{ReservaIDs: ids}
	}

	reserva := &model.Reserva{
		LaboratorioID:  req.LaboratorioID,
		ProfessorID:    principal.ID,
		Inicio:         req.Inicio,
		Fim:            req.Fim,
		Titulo:         req.Titulo,
		Turma:          req.Turma,
		Descricao:      req.Descricao,
		PlanejamentoID: req.PlanejamentoID,
		Status:         model.StatusReservaPendente,
	}
	if err := s.repo.Reserva.Create(ctx, reserva); err != nil {
		s.logger.Error("reservation creation failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("reservation created",
		zap.Uint("id", reserva.ID),
		zap.Uint("laboratorio_id", reserva.LaboratorioID),
		zap.Uint("professor_id", reserva.ProfessorID))

	return s.reload(ctx, reserva.ID)
}

func (s *reservaService) Listar(ctx context.Context, principal model.Principal, status string) ([]dto.ReservaResponse, error) {
	var filtro *model.StatusReserva
	if status != "" {
		st := model.StatusReserva(status)
		if !st.Valido() {
			return nil, ErrStatusInvalido
		}
		filtro = &st
	}

	var (
		reservas []model.Reserva
		err      error
	)
	if principal.Perfil.Aprovador() {
		reservas, err = s.repo.Reserva.List(ctx, filtro)
	} else {
		reservas, err = s.repo.Reserva.ListByProfessor(ctx, principal.ID, filtro)
	}
	if err != nil {
		s.logger.Error("reservation listing failed", zap.Error(err))
		return nil, err
	}
	return toReservaResponses(reservas), nil
}

func (s *reservaService) ListarPendentes(ctx context.Context, principal model.Principal) ([]dto.ReservaResponse, error) {
	if !principal.Perfil.Aprovador() {
		return nil, ErrAcessoNegado
	}
	st := model.StatusReservaPendente
	reservas, err := s.repo.Reserva.List(ctx, &st)
	if err != nil {
		s.logger.Error("pending reservation listing failed", zap.Error(err))
		return nil, err
	}
	return toReservaResponses(reservas), nil
}

func (s *reservaService) ListarFuturas(ctx context.Context, principal model.Principal) ([]dto.ReservaResponse, error) {
	reservas, err := s.repo.Reserva.ListFuturasByProfessor(ctx, principal.ID, time.Now())
	if err != nil {
		s.logger.Error("upcoming reservation listing failed", zap.Error(err))
		return nil, err
	}
	return toReservaResponses(reservas), nil
}

func (s *reservaService) BuscarPorID(ctx context.Context, principal model.Principal, id uint) (*dto.ReservaResponse, error) {
	reserva, err := s.getReserva(ctx, id)
	if err != nil {
		return nil, err
	}
	if reserva.ProfessorID != principal.ID && !principal.Perfil.Aprovador() {
		return nil, ErrAcessoNegado
	}
	resp := toReservaResponse(reserva)
	return &resp, nil
}

// BuscarPorLaboratorioEPeriodo is the advisory conflict preview. The
// answer may be stale by the time the client submits; Criar always
// re-checks.
func (s *reservaService) BuscarPorLaboratorioEPeriodo(ctx context.Context, laboratorioID uint, periodo *dto.PeriodoQuery) ([]dto.ReservaResponse, error) {
	window := TimeWindow{Inicio: periodo.Inicio, Fim: periodo.Fim}
	if !window.Valida() {
		return nil, ErrPeriodoInvalido
	}

	if _, err := s.repo.Laboratorio.GetByID(ctx, laboratorioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLaboratorioNaoEncontrado
		}
		s.logger.Error("laboratory lookup failed", zap.Error(err))
		return nil, err
	}

	reservas, err := s.repo.Reserva.ListAtivasByLaboratorioEPeriodo(ctx, laboratorioID, periodo.Inicio, periodo.Fim)
	if err != nil {
		s.logger.Error("period scan failed", zap.Error(err))
		return nil, err
	}
	return toReservaResponses(reservas), nil
}

func (s *reservaService) Atualizar(ctx context.Context, principal model.Principal, id uint, req *dto.UpdateReservaRequest) (*dto.ReservaResponse, error) {
	reserva, err := s.getReserva(ctx, id)
	if err != nil {
		return nil, err
	}
	if reserva.ProfessorID != principal.ID {
		return nil, ErrAcessoNegado
	}
	if !reserva.Status.Editavel() {
		return nil, ErrReservaNaoEditavel
	}

	window := TimeWindow{Inicio: req.Inicio, Fim: req.Fim}
	if !window.Valida() {
		return nil, ErrPeriodoInvalido
	}
	if req.Inicio.Before(time.Now()) {
		return nil, ErrReservaNoPassado
	}
	if utf8.RuneCountInString(req.Titulo) < 3 {
		return nil, ErrTituloInvalido
	}

	defer s.locks.Lock(reserva.LaboratorioID).Unlock()

	ativas, err := s.repo.Reserva.ListAtivasByLaboratorio(ctx, reserva.LaboratorioID)
	if err != nil {
		s.logger.Error("active reservation scan failed", zap.Error(err))
		return nil, err
	}
	// the reservation keeps its current window until the update lands,
	// so the scan excludes it
	if ids := findConflicts(ativas, window, reserva.ID); len(ids) > 0 {
		return nil, &ConflitoError{ReservaIDs: ids}
	}

	reserva.Inicio = req.Inicio
	reserva.Fim = req.Fim
	reserva.Titulo = req.Titulo
	reserva.Turma = req.Turma
	reserva.Descricao = req.Descricao

	if err := s.repo.Reserva.Update(ctx, reserva); err != nil {
		return nil, err
	}

	return s.reload(ctx, reserva.ID)
}

func (s *reservaService) AlterarStatus(ctx context.Context, principal model.Principal, id uint, req *dto.AlterarStatusReservaRequest) (*dto.ReservaResponse, error) {
	alvo := model.StatusReserva(req.Status)
	if !alvo.Valido() {
		return nil, ErrStatusInvalido
	}

	reserva, err := s.getReserva(ctx, id)
	if err != nil {
		return nil, err
	}

	// cancellation is open to the owner; every other transition is an
	// approver decision
	if alvo == model.StatusReservaCancelado {
		if reserva.ProfessorID != principal.ID && !principal.Perfil.Aprovador() {
			return nil, ErrAcessoNegado
		}
	} else if !principal.Perfil.Aprovador() {
		return nil, ErrAcessoNegado
	}

	if !reserva.Status.PodeTransicionarPara(alvo) {
		return nil, ErrTransicaoInvalida
	}
	if alvo.ExigeMotivo() && (req.Motivo == nil || *req.Motivo == "") {
		return nil, ErrMotivoObrigatorio
	}

	reserva.Status = alvo
	reserva.MotivoStatus = req.Motivo

	if err := s.repo.Reserva.Update(ctx, reserva); err != nil {
		return nil, err
	}

	s.logger.Info("reservation status changed",
		zap.Uint("id", reserva.ID),
		zap.String("status", string(alvo)),
		zap.Uint("by", principal.ID))

	return s.reload(ctx, reserva.ID)
}

func (s *reservaService) Cancelar(ctx context.Context, principal model.Principal, id uint) error {
	_, err := s.AlterarStatus(ctx, principal, id, &dto.AlterarStatusReservaRequest{
		Status: string(model.StatusReservaCancelado),
	})
	return err
}

func (s *reservaService) VincularPlanejamento(ctx context.Context, principal model.Principal, id uint, req *dto.VincularPlanejamentoRequest) (*dto.ReservaResponse, error) {
	reserva, err := s.getReserva(ctx, id)
	if err != nil {
		return nil, err
	}
	if reserva.ProfessorID != principal.ID {
		return nil, ErrAcessoNegado
	}
	if reserva.Status.Terminal() {
		return nil, ErrReservaNaoEditavel
	}

	if err := s.checkPlanejamentoVinculavel(ctx, principal, req.PlanejamentoID); err != nil {
		return nil, err
	}

	reserva.PlanejamentoID = &req.PlanejamentoID
	if err := s.repo.Reserva.Update(ctx, reserva); err != nil {
		return nil, err
	}

	return s.reload(ctx, reserva.ID)
}

// CalendarioICS renders the caller's approved reservations as an
// iCalendar feed.
func (s *reservaService) CalendarioICS(ctx context.Context, principal model.Principal) (string, error) {
	reservas, err := s.repo.Reserva.ListAprovadasByProfessor(ctx, principal.ID)
	if err != nil {
		s.logger.Error("calendar listing failed", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//labreserva//backend//PT-BR")

	for i := range reservas {
		r := &reservas[i]
		ev := cal.AddEvent(fmt.Sprintf("reserva-%d@labreserva", r.ID))
		ev.SetCreatedTime(r.CriadoEm)
		ev.SetStartAt(r.Inicio)
		ev.SetEndAt(r.Fim)
		ev.SetSummary(r.Titulo)
		if r.Laboratorio != nil {
			ev.SetLocation(r.Laboratorio.Nome)
		}
		if r.Descricao != nil {
			ev.SetDescription(*r.Descricao)
		}
	}

	return cal.Serialize(), nil
}

// ── helpers ──

func (s *reservaService) getReserva(ctx context.Context, id uint) (*model.Reserva, error) {
	reserva, err := s.repo.Reserva.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservaNaoEncontrada
		}
		s.logger.Error("reservation lookup failed", zap.Error(err))
		return nil, err
	}
	return reserva, nil
}

// checkPlanejamentoVinculavel allows linking a plan the caller authored
// or any published plan.
func (s *reservaService) checkPlanejamentoVinculavel(ctx context.Context, principal model.Principal, planejamentoID uint) error {
	plano, err := s.repo.Planejamento.GetByID(ctx, planejamentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanejamentoNaoVinculavel
		}
		s.logger.Error("plan lookup failed", zap.Error(err))
		return err
	}
	if plano.AuthorID != principal.ID && plano.Status != model.StatusPlanejamentoPublicado {
		return ErrPlanejamentoNaoVinculavel
	}
	return nil
}

func (s *reservaService) reload(ctx context.Context, id uint) (*dto.ReservaResponse, error) {
	reserva, err := s.repo.Reserva.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("reservation reload failed", zap.Error(err))
		return nil, err
	}
	resp := toReservaResponse(reserva)
	return &resp, nil
}

func toReservaResponse(r *model.Reserva) dto.ReservaResponse {
	resp := dto.ReservaResponse{
		ID:           r.ID,
		Laboratorio:  toLaboratorioResumo(r.Laboratorio),
		Professor:    toUsuarioResumo(r.Professor),
		Inicio:       r.Inicio.Format(time.RFC3339),
		Fim:          r.Fim.Format(time.RFC3339),
		Titulo:       r.Titulo,
		Turma:        r.Turma,
		Descricao:    r.Descricao,
		Status:       string(r.Status),
		MotivoStatus: r.MotivoStatus,
		CriadoEm:     r.CriadoEm.Format(time.RFC3339),
	}
	if r.Planejamento != nil {
		resp.Planejamento = &dto.PlanejamentoResumo{
			ID:     r.Planejamento.ID,
			Titulo: r.Planejamento.Titulo,
		}
	}
	return resp
}

func toReservaResponses(reservas []model.Reserva) []dto.ReservaResponse {
	result := make([]dto.ReservaResponse, 0, len(reservas))
	for i := range reservas {
		result = append(result, toReservaResponse(&reservas[i]))
	}
	return result
}
