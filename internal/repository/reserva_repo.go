package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"labreserva/backend/internal/model"
	pkgerrors "labreserva/backend/pkg/errors"
)

// ReservaRepository is the data-access interface for reservations.
// ListAtivasByLaboratorio feeds the conflict detector and must return
// reservations ordered by inicio.
type ReservaRepository interface {
	Create(ctx context.Context, reserva *model.Reserva) error
	GetByID(ctx context.Context, id uint) (*model.Reserva, error)
	List(ctx context.Context, status *model.StatusReserva) ([]model.Reserva, error)
	ListByProfessor(ctx context.Context, professorID uint, status *model.StatusReserva) ([]model.Reserva, error)
	ListAtivasByLaboratorio(ctx context.Context, laboratorioID uint) ([]model.Reserva, error)
	ListAtivasByLaboratorioEPeriodo(ctx context.Context, laboratorioID uint, inicio, fim time.Time) ([]model.Reserva, error)
	ListFuturasByProfessor(ctx context.Context, professorID uint, apos time.Time) ([]model.Reserva, error)
	ListAprovadasByProfessor(ctx context.Context, professorID uint) ([]model.Reserva, error)
	Update(ctx context.Context, reserva *model.Reserva) error
}

type reservaRepo struct {
	db *gorm.DB
}

// NewReservaRepo creates the gorm-backed ReservaRepository.
func NewReservaRepo(db *gorm.DB) ReservaRepository {
	return &reservaRepo{db: db}
}

func (r *reservaRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Laboratorio").
		Preload("Professor").
		Preload("Planejamento")
}

func (r *reservaRepo) Create(ctx context.Context, reserva *model.Reserva) error {
	return r.db.WithContext(ctx).Create(reserva).Error
}

func (r *reservaRepo) GetByID(ctx context.Context, id uint) (*model.Reserva, error) {
	var reserva model.Reserva
	err := r.preloaded(ctx).
		Where("id = ?", id).
		First(&reserva).Error
	if err != nil {
		return nil, err
	}
	return &reserva, nil
}

func (r *reservaRepo) List(ctx context.Context, status *model.StatusReserva) ([]model.Reserva, error) {
	q := r.preloaded(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var reservas []model.Reserva
	err := q.Order("inicio ASC").Find(&reservas).Error
	return reservas, err
}

func (r *reservaRepo) ListByProfessor(ctx context.Context, professorID uint, status *model.StatusReserva) ([]model.Reserva, error) {
	q := r.preloaded(ctx).Where("professor_id = ?", professorID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var reservas []model.Reserva
	err := q.Order("inicio ASC").Find(&reservas).Error
	return reservas, err
}

func (r *reservaRepo) ListAtivasByLaboratorio(ctx context.Context, laboratorioID uint) ([]model.Reserva, error) {
	var reservas []model.Reserva
	err := r.db.WithContext(ctx).
		Where("laboratorio_id = ? AND status NOT IN ?", laboratorioID,
			[]model.StatusReserva{model.StatusReservaCancelado, model.StatusReservaReprovado}).
		Order("inicio ASC").
		Find(&reservas).Error
	return reservas, err
}

func (r *reservaRepo) ListAtivasByLaboratorioEPeriodo(ctx context.Context, laboratorioID uint, inicio, fim time.Time) ([]model.Reserva, error) {
	// half-open overlap: existing.inicio < fim AND inicio < existing.fim
	var reservas []model.Reserva
	err := r.preloaded(ctx).
		Where("laboratorio_id = ? AND status NOT IN ? AND inicio < ? AND ? < fim",
			laboratorioID,
			[]model.StatusReserva{model.StatusReservaCancelado, model.StatusReservaReprovado},
			fim, inicio).
		Order("inicio ASC").
		Find(&reservas).Error
	return reservas, err
}

func (r *reservaRepo) ListFuturasByProfessor(ctx context.Context, professorID uint, apos time.Time) ([]model.Reserva, error) {
	var reservas []model.Reserva
	err := r.preloaded(ctx).
		Where("professor_id = ? AND inicio > ? AND status NOT IN ?",
			professorID, apos,
			[]model.StatusReserva{model.StatusReservaCancelado, model.StatusReservaReprovado}).
		Order("inicio ASC").
		Find(&reservas).Error
	return reservas, err
}

func (r *reservaRepo) ListAprovadasByProfessor(ctx context.Context, professorID uint) ([]model.Reserva, error) {
	var reservas []model.Reserva
	err := r.preloaded(ctx).
		Where("professor_id = ? AND status = ?", professorID, model.StatusReservaAprovado).
		Order("inicio ASC").
		Find(&reservas).Error
	return reservas, err
}

func (r *reservaRepo) Update(ctx context.Context, reserva *model.Reserva) error {
	oldVersion := reserva.Version
	result := r.db.WithContext(ctx).
		Model(reserva).
		Where("id = ? AND version = ?", reserva.ID, oldVersion).
		Updates(map[string]interface{}{
			"inicio":          reserva.Inicio,
			"fim":             reserva.Fim,
			"titulo":          reserva.Titulo,
			"turma":           reserva.Turma,
			"descricao":       reserva.Descricao,
			"planejamento_id": reserva.PlanejamentoID,
			"status":          reserva.Status,
			"motivo_status":   reserva.MotivoStatus,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	reserva.Version = oldVersion + 1
	return nil
}
