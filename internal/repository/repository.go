package repository

import "gorm.io/gorm"

// Repository aggregates the data-access interfaces consumed by the
// workflow services. Implementations must be safe for concurrent use.
type Repository struct {
	Usuario      UsuarioRepository
	Laboratorio  LaboratorioRepository
	Reserva      ReservaRepository
	Planejamento PlanejamentoRepository
}

// NewRepository wires the gorm-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Usuario:      NewUsuarioRepo(db),
		Laboratorio:  NewLaboratorioRepo(db),
		Reserva:      NewReservaRepo(db),
		Planejamento: NewPlanejamentoRepo(db),
	}
}
