package model

import "time"

// StatusReserva is the closed set of reservation statuses.
type StatusReserva string

const (
	StatusReservaPendente          StatusReserva = "PENDENTE"
	StatusReservaAprovado          StatusReserva = "APROVADO"
	StatusReservaReprovado         StatusReserva = "REPROVADO"
	StatusReservaCancelado         StatusReserva = "CANCELADO"
	StatusReservaAguardandoAjustes StatusReserva = "AGUARDANDO_AJUSTES"
)

// Valido reports whether the value is one of the known statuses.
func (s StatusReserva) Valido() bool {
	switch s {
	case StatusReservaPendente, StatusReservaAprovado, StatusReservaReprovado,
		StatusReservaCancelado, StatusReservaAguardandoAjustes:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s StatusReserva) Terminal() bool {
	return s == StatusReservaReprovado || s == StatusReservaCancelado
}

// Editavel reports whether the owner may still edit content
// (window, titulo, turma, descricao).
func (s StatusReserva) Editavel() bool {
	return s == StatusReservaPendente || s == StatusReservaAguardandoAjustes
}

// Ativa reports whether the reservation counts for conflict detection.
// Cancelled and rejected reservations release their time window.
func (s StatusReserva) Ativa() bool {
	return s != StatusReservaCancelado && s != StatusReservaReprovado
}

// PodeTransicionarPara encodes the reservation state machine:
//
//	PENDENTE            → APROVADO | REPROVADO | AGUARDANDO_AJUSTES | CANCELADO
//	AGUARDANDO_AJUSTES  → APROVADO | REPROVADO | AGUARDANDO_AJUSTES | CANCELADO
//	APROVADO            → CANCELADO
//	REPROVADO, CANCELADO: terminal
func (s StatusReserva) PodeTransicionarPara(alvo StatusReserva) bool {
	switch s {
	case StatusReservaPendente, StatusReservaAguardandoAjustes:
		switch alvo {
		case StatusReservaAprovado, StatusReservaReprovado,
			StatusReservaAguardandoAjustes, StatusReservaCancelado:
			return true
		}
		return false
	case StatusReservaAprovado:
		return alvo == StatusReservaCancelado
	case StatusReservaReprovado, StatusReservaCancelado:
		return false
	}
	return false
}

// ExigeMotivo reports whether a transition into this status requires a
// reason from the approver.
func (s StatusReserva) ExigeMotivo() bool {
	return s == StatusReservaReprovado || s == StatusReservaAguardandoAjustes
}

// Reserva maps to the reservas table: a claim on a laboratory for the
// half-open window [Inicio, Fim).
type Reserva struct {
	ID             uint          `gorm:"primaryKey"                      json:"id"`
	LaboratorioID  uint          `gorm:"column:laboratorio_id;not null"  json:"-"`
	ProfessorID    uint          `gorm:"column:professor_id;not null"    json:"-"`
	Inicio         time.Time     `gorm:"not null"                        json:"inicio"`
	Fim            time.Time     `gorm:"not null"                        json:"fim"`
	Titulo         string        `gorm:"type:varchar(200);not null"      json:"titulo"`
	Turma          *string       `gorm:"type:varchar(100)"               json:"turma"`
	Descricao      *string       `gorm:"type:text"                       json:"descricao"`
	PlanejamentoID *uint         `gorm:"column:planejamento_id"          json:"-"`
	Status         StatusReserva `gorm:"type:varchar(30);not null;default:'PENDENTE'" json:"status"`
	MotivoStatus   *string       `gorm:"column:motivo_status;type:varchar(500)"       json:"motivoStatus"`
	VersionedModel

	Laboratorio  *Laboratorio  `gorm:"foreignKey:LaboratorioID"  json:"laboratorio,omitempty"`
	Professor    *Usuario      `gorm:"foreignKey:ProfessorID"    json:"professor,omitempty"`
	Planejamento *Planejamento `gorm:"foreignKey:PlanejamentoID" json:"planejamento,omitempty"`
}

// TableName sets the table name.
func (Reserva) TableName() string { return "reservas" }
