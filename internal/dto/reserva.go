package dto

import "time"

// CreateReservaRequest creates a new reservation. Timestamps are
// ISO-8601 (RFC 3339).
type CreateReservaRequest struct {
	LaboratorioID  uint      `json:"laboratorioId" binding:"required"`
	Inicio         time.Time `json:"inicio"        binding:"required"`
	Fim            time.Time `json:"fim"           binding:"required"`
	Titulo         string    `json:"titulo"        binding:"required"`
	Turma          *string   `json:"turma"         binding:"omitempty,max=100"`
	Descricao      *string   `json:"descricao"`
	PlanejamentoID *uint     `json:"planejamentoId"`
}

// UpdateReservaRequest edits reservation content. Only the owner may
// call it, and only while the reservation is still editable.
type UpdateReservaRequest struct {
	Inicio    time.Time `json:"inicio" binding:"required"`
	Fim       time.Time `json:"fim"    binding:"required"`
	Titulo    string    `json:"titulo" binding:"required"`
	Turma     *string   `json:"turma"  binding:"omitempty,max=100"`
	Descricao *string   `json:"descricao"`
}

// AlterarStatusReservaRequest requests a status transition.
type AlterarStatusReservaRequest struct {
	Status string  `json:"status" binding:"required"`
	Motivo *string `json:"motivo" binding:"omitempty,max=500"`
}

// VincularPlanejamentoRequest links (or replaces) a lesson plan on a
// reservation.
type VincularPlanejamentoRequest struct {
	PlanejamentoID uint `json:"planejamentoId" binding:"required"`
}

// PeriodoQuery bounds the advisory conflict preview.
type PeriodoQuery struct {
	Inicio time.Time `form:"inicio" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Fim    time.Time `form:"fim"    binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// PlanejamentoResumo is the embedded short form of a lesson plan.
type PlanejamentoResumo struct {
	ID     uint   `json:"id"`
	Titulo string `json:"titulo"`
}

// ReservaResponse mirrors the client's Reserva model.
type ReservaResponse struct {
	ID           uint                `json:"id"`
	Laboratorio  *LaboratorioResumo  `json:"laboratorio"`
	Professor    *UsuarioResumo      `json:"professor"`
	Inicio       string              `json:"inicio"`
	Fim          string              `json:"fim"`
	Titulo       string              `json:"titulo"`
	Turma        *string             `json:"turma"`
	Descricao    *string             `json:"descricao"`
	Planejamento *PlanejamentoResumo `json:"planejamento"`
	Status       string              `json:"status"`
	MotivoStatus *string             `json:"motivoStatus"`
	CriadoEm     string              `json:"criadoEm"`
}
