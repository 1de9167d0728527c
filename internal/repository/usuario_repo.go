package repository

import (
	"context"

	"gorm.io/gorm"

	"labreserva/backend/internal/model"
	pkgerrors "labreserva/backend/pkg/errors"
)

// UsuarioRepository is the data-access interface for users.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	GetByID(ctx context.Context, id uint) (*model.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*model.Usuario, error)
	ListByPerfil(ctx context.Context, perfil model.PerfilUsuario) ([]model.Usuario, error)
	Update(ctx context.Context, usuario *model.Usuario) error
}

type usuarioRepo struct {
	db *gorm.DB
}

// NewUsuarioRepo creates the gorm-backed UsuarioRepository.
func NewUsuarioRepo(db *gorm.DB) UsuarioRepository {
	return &usuarioRepo{db: db}
}

func (r *usuarioRepo) Create(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepo) GetByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepo) GetByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepo) ListByPerfil(ctx context.Context, perfil model.PerfilUsuario) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).
		Where("perfil = ?", perfil).
		Order("nome ASC").
		Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) Update(ctx context.Context, usuario *model.Usuario) error {
	oldVersion := usuario.Version
	result := r.db.WithContext(ctx).
		Model(usuario).
		Where("id = ? AND version = ?", usuario.ID, oldVersion).
		Updates(map[string]interface{}{
			"nome":       usuario.Nome,
			"email":      usuario.Email,
			"senha_hash": usuario.SenhaHash,
			"perfil":     usuario.Perfil,
			"status":     usuario.Status,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	usuario.Version = oldVersion + 1
	return nil
}
