package repository

import (
	"context"

	"gorm.io/gorm"

	"labreserva/backend/internal/model"
	pkgerrors "labreserva/backend/pkg/errors"
)

// LaboratorioRepository is the data-access interface for laboratories.
type LaboratorioRepository interface {
	Create(ctx context.Context, lab *model.Laboratorio) error
	GetByID(ctx context.Context, id uint) (*model.Laboratorio, error)
	List(ctx context.Context) ([]model.Laboratorio, error)
	Update(ctx context.Context, lab *model.Laboratorio) error
}

type laboratorioRepo struct {
	db *gorm.DB
}

// NewLaboratorioRepo creates the gorm-backed LaboratorioRepository.
func NewLaboratorioRepo(db *gorm.DB) LaboratorioRepository {
	return &laboratorioRepo{db: db}
}

func (r *laboratorioRepo) Create(ctx context.Context, lab *model.Laboratorio) error {
	return r.db.WithContext(ctx).Create(lab).Error
}

func (r *laboratorioRepo) GetByID(ctx context.Context, id uint) (*model.Laboratorio, error) {
	var lab model.Laboratorio
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&lab).Error
	if err != nil {
		return nil, err
	}
	return &lab, nil
}

func (r *laboratorioRepo) List(ctx context.Context) ([]model.Laboratorio, error) {
	var labs []model.Laboratorio
	err := r.db.WithContext(ctx).
		Order("nome ASC").
		Find(&labs).Error
	return labs, err
}

func (r *laboratorioRepo) Update(ctx context.Context, lab *model.Laboratorio) error {
	oldVersion := lab.Version
	result := r.db.WithContext(ctx).
		Model(lab).
		Where("id = ? AND version = ?", lab.ID, oldVersion).
		Updates(map[string]interface{}{
			"nome":             lab.Nome,
			"capacidade":       lab.Capacidade,
			"qtd_equipamentos": lab.QtdEquipamentos,
			"status":           lab.Status,
			"version":          oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	lab.Version = oldVersion + 1
	return nil
}
