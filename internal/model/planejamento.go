package model

import "gorm.io/gorm"

// StatusPlanejamento is the closed set of lesson-plan statuses.
type StatusPlanejamento string

const (
	StatusPlanejamentoPendente          StatusPlanejamento = "PENDENTE"
	StatusPlanejamentoPublicado         StatusPlanejamento = "PUBLICADO"
	StatusPlanejamentoReprovado         StatusPlanejamento = "REPROVADO"
	StatusPlanejamentoAguardandoAjustes StatusPlanejamento = "AGUARDANDO_AJUSTES"
)

// Valido reports whether the value is one of the known statuses.
func (s StatusPlanejamento) Valido() bool {
	switch s {
	case StatusPlanejamentoPendente, StatusPlanejamentoPublicado,
		StatusPlanejamentoReprovado, StatusPlanejamentoAguardandoAjustes:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s StatusPlanejamento) Terminal() bool {
	return s == StatusPlanejamentoPublicado
}

// Editavel reports whether the author may still edit content.
func (s StatusPlanejamento) Editavel() bool {
	return s == StatusPlanejamentoPendente || s == StatusPlanejamentoAguardandoAjustes
}

// PodeTransicionarPara encodes the approver-side state machine:
//
//	PENDENTE           → PUBLICADO | REPROVADO | AGUARDANDO_AJUSTES
//	AGUARDANDO_AJUSTES → PUBLICADO | REPROVADO
//	PUBLICADO: terminal
//	REPROVADO → PENDENTE only through the author's explicit resubmission
//	(Reenviar), which is not an approver transition and is handled by the
//	workflow service.
func (s StatusPlanejamento) PodeTransicionarPara(alvo StatusPlanejamento) bool {
	switch s {
	case StatusPlanejamentoPendente:
		switch alvo {
		case StatusPlanejamentoPublicado, StatusPlanejamentoReprovado,
			StatusPlanejamentoAguardandoAjustes:
			return true
		}
		return false
	case StatusPlanejamentoAguardandoAjustes:
		return alvo == StatusPlanejamentoPublicado || alvo == StatusPlanejamentoReprovado
	case StatusPlanejamentoPublicado, StatusPlanejamentoReprovado:
		return false
	}
	return false
}

// PodeReenviar reports whether the author may resubmit the plan for
// review (back to PENDENTE).
func (s StatusPlanejamento) PodeReenviar() bool {
	return s == StatusPlanejamentoReprovado || s == StatusPlanejamentoAguardandoAjustes
}

// Planejamento maps to the planejamentos table. Versao starts at 1 and
// increments on every content edit by the author.
type Planejamento struct {
	ID           uint               `gorm:"primaryKey"                   json:"id"`
	AuthorID     uint               `gorm:"column:author_id;not null"    json:"-"`
	Titulo       string             `gorm:"type:varchar(200);not null"   json:"titulo"`
	Area         string             `gorm:"type:varchar(100);not null"   json:"area"`
	Descricao    string             `gorm:"type:text;not null"           json:"descricao"`
	Status       StatusPlanejamento `gorm:"type:varchar(30);not null;default:'PENDENTE'" json:"status"`
	MotivoStatus *string            `gorm:"column:motivo_status;type:varchar(500)"       json:"motivoStatus"`
	Versao       int                `gorm:"not null;default:1"           json:"versao"`
	Publico      bool               `gorm:"not null;default:false"       json:"publico"`
	VersionedModel
	DeletadoEm gorm.DeletedAt `gorm:"column:deletado_em;index" json:"-"`

	Author *Usuario `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName sets the table name.
func (Planejamento) TableName() string { return "planejamentos" }
