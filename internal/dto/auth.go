package dto

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

// LoginResponse mirrors the client's auth contract.
type LoginResponse struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken,omitempty"`
	Tipo         string          `json:"tipo"` // "Bearer"
	ExpiresIn    int             `json:"expiresIn"`
	Usuario      UsuarioResponse `json:"usuario"`
}
