package repository

import (
	"context"

	"gorm.io/gorm"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/model"
	pkgerrors "labreserva/backend/pkg/errors"
)

// PlanejamentoRepository is the data-access interface for lesson plans.
type PlanejamentoRepository interface {
	Create(ctx context.Context, plano *model.Planejamento) error
	GetByID(ctx context.Context, id uint) (*model.Planejamento, error)
	// ListVisiveis returns published plans plus everything authored by
	// the given user.
	ListVisiveis(ctx context.Context, authorID uint) ([]model.Planejamento, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]model.Planejamento, error)
	ListByStatus(ctx context.Context, status model.StatusPlanejamento) ([]model.Planejamento, error)
	Search(ctx context.Context, filtros *dto.PlanejamentoFiltros) ([]model.Planejamento, error)
	Update(ctx context.Context, plano *model.Planejamento) error
	Delete(ctx context.Context, id uint) error
}

type planejamentoRepo struct {
	db *gorm.DB
}

// NewPlanejamentoRepo creates the gorm-backed PlanejamentoRepository.
func NewPlanejamentoRepo(db *gorm.DB) PlanejamentoRepository {
	return &planejamentoRepo{db: db}
}

func (r *planejamentoRepo) Create(ctx context.Context, plano *model.Planejamento) error {
	return r.db.WithContext(ctx).Create(plano).Error
}

func (r *planejamentoRepo) GetByID(ctx context.Context, id uint) (*model.Planejamento, error) {
	var plano model.Planejamento
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&plano).Error
	if err != nil {
		return nil, err
	}
	return &plano, nil
}

func (r *planejamentoRepo) ListVisiveis(ctx context.Context, authorID uint) ([]model.Planejamento, error) {
	var planos []model.Planejamento
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("status = ? OR author_id = ?", model.StatusPlanejamentoPublicado, authorID).
		Order("criado_em DESC").
		Find(&planos).Error
	return planos, err
}

func (r *planejamentoRepo) ListByAuthor(ctx context.Context, authorID uint) ([]model.Planejamento, error) {
	var planos []model.Planejamento
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("criado_em DESC").
		Find(&planos).Error
	return planos, err
}

func (r *planejamentoRepo) ListByStatus(ctx context.Context, status model.StatusPlanejamento) ([]model.Planejamento, error) {
	var planos []model.Planejamento
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("status = ?", status).
		Order("criado_em DESC").
		Find(&planos).Error
	return planos, err
}

func (r *planejamentoRepo) Search(ctx context.Context, filtros *dto.PlanejamentoFiltros) ([]model.Planejamento, error) {
	q := r.db.WithContext(ctx).Preload("Author")

	if filtros.PalavraChave != "" {
		palavra := "%" + filtros.PalavraChave + "%"
		q = q.Where("titulo ILIKE ? OR descricao ILIKE ?", palavra, palavra)
	}
	if filtros.Area != "" {
		q = q.Where("area = ?", filtros.Area)
	}
	if filtros.AuthorID != 0 {
		q = q.Where("author_id = ?", filtros.AuthorID)
	}
	if filtros.Status != "" {
		q = q.Where("status = ?", filtros.Status)
	}

	var planos []model.Planejamento
	err := q.Order("criado_em DESC").Find(&planos).Error
	return planos, err
}

func (r *planejamentoRepo) Update(ctx context.Context, plano *model.Planejamento) error {
	oldVersion := plano.Version
	result := r.db.WithContext(ctx).
		Model(plano).
		Where("id = ? AND version = ?", plano.ID, oldVersion).
		Updates(map[string]interface{}{
			"titulo":        plano.Titulo,
			"area":          plano.Area,
			"descricao":     plano.Descricao,
			"status":        plano.Status,
			"motivo_status": plano.MotivoStatus,
			"versao":        plano.Versao,
			"publico":       plano.Publico,
			"version":       oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	plano.Version = oldVersion + 1
	return nil
}

func (r *planejamentoRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Planejamento{}).Error
}
