package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/service"
	pkgerrors "labreserva/backend/pkg/errors"
	"labreserva/backend/pkg/response"
)

// PlanejamentoHandler serves /api/planejamentos.
type PlanejamentoHandler struct {
	planoSvc service.PlanejamentoService
}

// NewPlanejamentoHandler creates the PlanejamentoHandler.
func NewPlanejamentoHandler(planoSvc service.PlanejamentoService) *PlanejamentoHandler {
	return &PlanejamentoHandler{planoSvc: planoSvc}
}

// Create submits a lesson plan for review.
// POST /api/planejamentos
func (h *PlanejamentoHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	var req dto.CreatePlanejamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "parâmetros inválidos")
		return
	}

	result, err := h.planoSvc.Criar(c.Request.Context(), principal, &req)
	if err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.Created(c, result)
}

// List returns plans visible to the caller.
// GET /api/planejamentos
func (h *PlanejamentoHandler) List(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	result, err := h.planoSvc.Listar(c.Request.Context(), principal)
	if err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMeus returns the caller's own plans.
// GET /api/planejamentos/meus
func (h *PlanejamentoHandler) ListMeus(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	result, err := h.planoSvc.ListarMeus(c.Request.Context(), principal)
	if err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.OK(c, result)
}

// Buscar searches plans by keyword, area, author and status.
// GET /api/planejamentos/buscar?palavraChave=&area=&authorId=&status=
func (h *PlanejamentoHandler) Buscar(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	var filtros dto.PlanejamentoFiltros
	if err := c.ShouldBindQuery(&filtros); err != nil {
		response.BadRequest(c, 15001, "parâmetros inválidos")
		return
	}

	result, err := h.planoSvc.Buscar(c.Request.Context(), principal, &filtros)
	if err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.OK(c, result)
}

// Get returns one plan if the caller may see it.
// GET /api/planejamentos/:id
func (h *PlanejamentoHandler) Get(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 15001, "id inválido")
		return
	}

	result, err := h.planoSvc.BuscarPorID(c.Request.Context(), principal, id)
	if err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.OK(c, result)
}

// Update edits plan content (author only, bumps versao).
// PUT /api/planejamentos/:id
func (h *PlanejamentoHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 15001, "id inválido")
		return
	}

	var req dto.UpdatePlanejamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "parâmetros inválidos")
		return
	}

	result, err := h.planoSvc.Atualizar(c.Request.Context(), principal, id, &req)
	if err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete removes a plan (author or admin, never while published).
// DELETE /api/planejamentos/:id
func (h *PlanejamentoHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 15001, "id inválido")
		return
	}

	if err := h.planoSvc.Deletar(c.Request.Context(), principal, id); err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.NoContent(c)
}

// Aprovar publishes a plan.
// POST /api/planejamentos/:id/aprovar
func (h *PlanejamentoHandler) Aprovar(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 15001, "id inválido")
		return
	}

	result, err := h.planoSvc.Aprovar(c.Request.Context(), principal, id)
	if err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.OK(c, result)
}

// Reprovar rejects a plan.
// POST /api/planejamentos/:id/reprovar
func (h *PlanejamentoHandler) Reprovar(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 15001, "id inválido")
		return
	}

	// body is optional: a missing motivo falls back to the default
	var req dto.ReprovarPlanejamentoRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 15001, "parâmetros inválidos")
			return
		}
	}

	result, err := h.planoSvc.Reprovar(c.Request.Context(), principal, id, &req)
	if err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.OK(c, result)
}

// SolicitarAjustes sends a plan back to its author.
// POST /api/planejamentos/:id/solicitar-ajustes
func (h *PlanejamentoHandler) SolicitarAjustes(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 15001, "id inválido")
		return
	}

	var req dto.SolicitarAjustesPlanejamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "motivo é obrigatório")
		return
	}

	result, err := h.planoSvc.SolicitarAjustes(c.Request.Context(), principal, id, &req)
	if err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.OK(c, result)
}

// Reenviar resubmits a plan for review.
// POST /api/planejamentos/:id/reenviar
func (h *PlanejamentoHandler) Reenviar(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 15001, "id inválido")
		return
	}

	result, err := h.planoSvc.Reenviar(c.Request.Context(), principal, id)
	if err != nil {
		h.handlePlanejamentoError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *PlanejamentoHandler) handlePlanejamentoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanejamentoNaoEncontrado):
		response.NotFound(c, 15101, err.Error())
	case errors.Is(err, service.ErrPlanejamentoNaoEditavel):
		response.BadRequest(c, 15102, err.Error())
	case errors.Is(err, service.ErrPlanejamentoPublicado):
		response.BadRequest(c, 15103, err.Error())
	case errors.Is(err, service.ErrTransicaoInvalida):
		response.BadRequest(c, 15104, err.Error())
	case errors.Is(err, service.ErrMotivoObrigatorio):
		response.BadRequest(c, 15105, err.Error())
	case errors.Is(err, service.ErrAcessoNegado):
		response.Forbidden(c, 10003, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10010, err.Error())
	default:
		response.InternalError(c)
	}
}
