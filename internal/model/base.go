package model

import "time"

// BaseModel carries the audit timestamps shared by all entities.
type BaseModel struct {
	CriadoEm     time.Time `gorm:"column:criado_em;not null;default:CURRENT_TIMESTAMP"     json:"criadoEm"`
	AtualizadoEm time.Time `gorm:"column:atualizado_em;not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// VersionedModel adds the optimistic-lock counter. Repositories bump it
// on every update and fail with ErrOptimisticLock on a stale write.
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null;default:1" json:"-"`
}
