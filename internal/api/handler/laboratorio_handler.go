package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/service"
	pkgerrors "labreserva/backend/pkg/errors"
	"labreserva/backend/pkg/response"
)

// LaboratorioHandler serves /api/laboratorios.
type LaboratorioHandler struct {
	labSvc service.LaboratorioService
}

// NewLaboratorioHandler creates the LaboratorioHandler.
func NewLaboratorioHandler(labSvc service.LaboratorioService) *LaboratorioHandler {
	return &LaboratorioHandler{labSvc: labSvc}
}

// Create registers a laboratory.
// POST /api/laboratorios
func (h *LaboratorioHandler) Create(c *gin.Context) {
	var req dto.CreateLaboratorioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "parâmetros inválidos")
		return
	}

	result, err := h.labSvc.Criar(c.Request.Context(), &req)
	if err != nil {
		h.handleLaboratorioError(c, err)
		return
	}

	response.Created(c, result)
}

// List returns every laboratory.
// GET /api/laboratorios
func (h *LaboratorioHandler) List(c *gin.Context) {
	result, err := h.labSvc.Listar(c.Request.Context())
	if err != nil {
		h.handleLaboratorioError(c, err)
		return
	}

	response.OK(c, result)
}

// Get returns one laboratory.
// GET /api/laboratorios/:id
func (h *LaboratorioHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 13001, "id inválido")
		return
	}

	result, err := h.labSvc.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		h.handleLaboratorioError(c, err)
		return
	}

	response.OK(c, result)
}

// Update edits laboratory attributes.
// PUT /api/laboratorios/:id
func (h *LaboratorioHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 13001, "id inválido")
		return
	}

	var req dto.UpdateLaboratorioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "parâmetros inválidos")
		return
	}

	result, err := h.labSvc.Atualizar(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLaboratorioError(c, err)
		return
	}

	response.OK(c, result)
}

// AlterarStatus activates or deactivates a laboratory.
// PATCH /api/laboratorios/:id/status
func (h *LaboratorioHandler) AlterarStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 13001, "id inválido")
		return
	}

	var req dto.AlterarStatusLaboratorioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "parâmetros inválidos")
		return
	}

	result, err := h.labSvc.AlterarStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLaboratorioError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *LaboratorioHandler) handleLaboratorioError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLaboratorioNaoEncontrado):
		response.NotFound(c, 13101, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10010, err.Error())
	default:
		response.InternalError(c)
	}
}
