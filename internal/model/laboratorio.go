package model

// Laboratorio maps to the laboratorios table. Only active laboratories
// (Status true) accept new reservations.
type Laboratorio struct {
	ID              uint   `gorm:"primaryKey"                 json:"id"`
	Nome            string `gorm:"type:varchar(100);not null" json:"nome"`
	Capacidade      int    `gorm:"not null;default:0"         json:"capacidade"`
	QtdEquipamentos int    `gorm:"column:qtd_equipamentos;not null;default:0" json:"qtdEquipamentos"`
	Status          bool   `gorm:"not null;default:true"      json:"status"`
	VersionedModel
}

// TableName sets the table name.
func (Laboratorio) TableName() string { return "laboratorios" }
