package dto

// LaboratorioResponse is the public view of a laboratory.
type LaboratorioResponse struct {
	ID              uint   `json:"id"`
	Nome            string `json:"nome"`
	Capacidade      int    `json:"capacidade"`
	QtdEquipamentos int    `json:"qtdEquipamentos"`
	Status          bool   `json:"status"`
}

// LaboratorioResumo is the embedded short form.
type LaboratorioResumo struct {
	ID   uint   `json:"id"`
	Nome string `json:"nome"`
}

// CreateLaboratorioRequest registers a new laboratory.
type CreateLaboratorioRequest struct {
	Nome            string `json:"nome"            binding:"required,min=2,max=100"`
	Capacidade      int    `json:"capacidade"      binding:"required,min=1"`
	QtdEquipamentos int    `json:"qtdEquipamentos" binding:"min=0"`
}

// UpdateLaboratorioRequest updates laboratory attributes; nil fields
// are left unchanged.
type UpdateLaboratorioRequest struct {
	Nome            *string `json:"nome"            binding:"omitempty,min=2,max=100"`
	Capacidade      *int    `json:"capacidade"      binding:"omitempty,min=1"`
	QtdEquipamentos *int    `json:"qtdEquipamentos" binding:"omitempty,min=0"`
}

// AlterarStatusLaboratorioRequest activates or deactivates a laboratory.
type AlterarStatusLaboratorioRequest struct {
	Status *bool `json:"status" binding:"required"`
}
