package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/service"
	pkgerrors "labreserva/backend/pkg/errors"
	"labreserva/backend/pkg/response"
)

// UsuarioHandler serves /api/professores.
type UsuarioHandler struct {
	usuarioSvc service.UsuarioService
}

// NewUsuarioHandler creates the UsuarioHandler.
func NewUsuarioHandler(usuarioSvc service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarioSvc: usuarioSvc}
}

// Create registers a professor account.
// POST /api/professores
func (h *UsuarioHandler) Create(c *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "parâmetros inválidos")
		return
	}

	result, err := h.usuarioSvc.CreateProfessor(c.Request.Context(), &req)
	if err != nil {
		h.handleUsuarioError(c, err)
		return
	}

	response.Created(c, result)
}

// List returns every professor.
// GET /api/professores
func (h *UsuarioHandler) List(c *gin.Context) {
	result, err := h.usuarioSvc.ListProfessores(c.Request.Context())
	if err != nil {
		h.handleUsuarioError(c, err)
		return
	}

	response.OK(c, result)
}

// Get returns one professor.
// GET /api/professores/:id
func (h *UsuarioHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 12001, "id inválido")
		return
	}

	result, err := h.usuarioSvc.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		h.handleUsuarioError(c, err)
		return
	}

	response.OK(c, result)
}

// AlterarStatus activates or deactivates an account.
// PATCH /api/professores/:id/status
func (h *UsuarioHandler) AlterarStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 12001, "id inválido")
		return
	}

	var req dto.AlterarStatusUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "parâmetros inválidos")
		return
	}

	result, err := h.usuarioSvc.AlterarStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleUsuarioError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *UsuarioHandler) handleUsuarioError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUsuarioNaoEncontrado):
		response.NotFound(c, 12101, err.Error())
	case errors.Is(err, service.ErrEmailJaCadastrado):
		response.BadRequest(c, 12102, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10010, err.Error())
	default:
		response.InternalError(c)
	}
}
