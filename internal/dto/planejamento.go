package dto

// CreatePlanejamentoRequest creates a lesson plan.
type CreatePlanejamentoRequest struct {
	Titulo    string `json:"titulo"    binding:"required,min=3,max=200"`
	Area      string `json:"area"      binding:"required,max=100"`
	Descricao string `json:"descricao" binding:"required"`
}

// UpdatePlanejamentoRequest edits plan content (author only, while the
// plan is still editable). Every accepted edit bumps versao.
type UpdatePlanejamentoRequest struct {
	Titulo    string `json:"titulo"    binding:"required,min=3,max=200"`
	Area      string `json:"area"      binding:"required,max=100"`
	Descricao string `json:"descricao" binding:"required"`
}

// ReprovarPlanejamentoRequest rejects a plan; motivo falls back to a
// fixed message when omitted.
type ReprovarPlanejamentoRequest struct {
	Motivo *string `json:"motivo" binding:"omitempty,max=500"`
}

// SolicitarAjustesPlanejamentoRequest sends a plan back to its author
// for adjustments; motivo is mandatory.
type SolicitarAjustesPlanejamentoRequest struct {
	Motivo string `json:"motivo" binding:"required,max=500"`
}

// PlanejamentoFiltros are the search parameters of GET /planejamentos/buscar.
type PlanejamentoFiltros struct {
	PalavraChave string `form:"palavraChave"`
	Area         string `form:"area"`
	AuthorID     uint   `form:"authorId"`
	Status       string `form:"status"`
}

// PlanejamentoResponse mirrors the client's Planejamento model.
type PlanejamentoResponse struct {
	ID           uint           `json:"id"`
	Author       *UsuarioResumo `json:"author"`
	Titulo       string         `json:"titulo"`
	Area         string         `json:"area"`
	Descricao    string         `json:"descricao"`
	Status       string         `json:"status"`
	MotivoStatus *string        `json:"motivoStatus"`
	Versao       int            `json:"versao"`
	Publico      bool           `json:"publico"`
	CriadoEm     string         `json:"criadoEm"`
}
