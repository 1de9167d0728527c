package dto

// UsuarioResponse is the public view of a user.
type UsuarioResponse struct {
	ID     uint   `json:"id"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Perfil string `json:"perfil"`
	Status bool   `json:"status"`
}

// UsuarioResumo is the embedded short form used inside other payloads.
type UsuarioResumo struct {
	ID    uint   `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

// CreateProfessorRequest registers a new professor account.
type CreateProfessorRequest struct {
	Nome  string `json:"nome"  binding:"required,min=3,max=100"`
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required,min=6"`
}

// AlterarStatusUsuarioRequest activates or deactivates an account.
type AlterarStatusUsuarioRequest struct {
	Status *bool `json:"status" binding:"required"`
}
