package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"labreserva/backend/internal/dto"
	"labreserva/backend/internal/service"
	pkgerrors "labreserva/backend/pkg/errors"
	"labreserva/backend/pkg/response"
)

// ReservaHandler serves /api/reservas.
type ReservaHandler struct {
	reservaSvc service.ReservaService
}

// NewReservaHandler creates the ReservaHandler.
func NewReservaHandler(reservaSvc service.ReservaService) *ReservaHandler {
	return &ReservaHandler{reservaSvc: reservaSvc}
}

// Create submits a reservation request; it enters the PENDENTE state.
// POST /api/reservas
func (h *ReservaHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	var req dto.CreateReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "parâmetros inválidos")
		return
	}

	result, err := h.reservaSvc.Criar(c.Request.Context(), principal, &req)
	if err != nil {
		h.handleReservaError(c, err)
		return
	}

	response.Created(c, result)
}

// List returns reservations: professors see their own, approvers all.
// GET /api/reservas?status=
func (h *ReservaHandler) List(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	result, err := h.reservaSvc.Listar(c.Request.Context(), principal, c.Query("status"))
	if err != nil {
		h.handleReservaError(c, err)
		return
	}

	response.OK(c, result)
}

// ListPendentes returns the review queue.
// GET /api/reservas/pendentes
func (h *ReservaHandler) ListPendentes(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	result, err := h.reservaSvc.ListarPendentes(c.Request.Context(), principal)
	if err != nil {
		h.handleReservaError(c, err)
		return
	}

	response.OK(c, result)
}

// ListFuturas returns the caller's upcoming reservations.
// GET /api/reservas/futuras
func (h *ReservaHandler) ListFuturas(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	result, err := h.reservaSvc.ListarFuturas(c.Request.Context(), principal)
	if err != nil {
		h.handleReservaError(c, err)
		return
	}

	response.OK(c, result)
}

// Get returns one reservation (owner or approver).
// GET /api/reservas/:id
func (h *ReservaHandler) Get(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 14001, "id inválido")
		return
	}

	result, err := h.reservaSvc.BuscarPorID(c.Request.Context(), principal, id)
	if err != nil {
		h.handleReservaError(c, err)
		return
	}

	response.OK(c, result)
}

// ListByLaboratorio previews occupied windows of one laboratory. The
// result is advisory; creation re-checks under the laboratory lock.
// GET /api/reservas/laboratorio/:id?inicio=&fim=
func (h *ReservaHandler) ListByLaboratorio(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 14001, "id inválido")
		return
	}

	var periodo dto.PeriodoQuery
	if err := c.ShouldBindQuery(&periodo); err != nil {
		response.BadRequest(c, 14001, "período inválido")
		return
	}

	result, err := h.reservaSvc.BuscarPorLaboratorioEPeriodo(c.Request.Context(), id, &periodo)
	if err != nil {
		h.handleReservaError(c, err)
		return
	}

	response.OK(c, result)
}

// Update edits reservation content (owner, while editable).
// PUT /api/reservas/:id
func (h *ReservaHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 14001, "id inválido")
		return
	}

	var req dto.UpdateReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "parâmetros inválidos")
		return
	}

	result, err := h.reservaSvc.Atualizar(c.Request.Context(), principal, id, &req)
	if err != nil {
		h.handleReservaError(c, err)
		return
	}

	response.OK(c, result)
}

// AlterarStatus runs a status transition.
// PATCH /api/reservas/:id/status
func (h *ReservaHandler) AlterarStatus(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 14001, "id inválido")
		return
	}

	var req dto.AlterarStatusReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "parâmetros inválidos")
		return
	}

	result, err := h.reservaSvc.AlterarStatus(c.Request.Context(), principal, id, &req)
	if err != nil {
		h.handleReservaError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete cancels a reservation.
// DELETE /api/reservas/:id
func (h *ReservaHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 14001, "id inválido")
		return
	}

	if err := h.reservaSvc.Cancelar(c.Request.Context(), principal, id); err != nil {
		h.handleReservaError(c, err)
		return
	}

	response.NoContent(c)
}

// VincularPlanejamento links a lesson plan to a reservation.
// PATCH /api/reservas/:id/planejamento
func (h *ReservaHandler) VincularPlanejamento(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, 14001, "id inválido")
		return
	}

	var req dto.VincularPlanejamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "parâmetros inválidos")
		return
	}

	result, err := h.reservaSvc.VincularPlanejamento(c.Request.Context(), principal, id, &req)
	if err != nil {
		h.handleReservaError(c, err)
		return
	}

	response.OK(c, result)
}

// Calendario streams the caller's approved reservations as iCalendar.
// GET /api/reservas/calendario.ics
func (h *ReservaHandler) Calendario(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	ical, err := h.reservaSvc.CalendarioICS(c.Request.Context(), principal)
	if err != nil {
		h.handleReservaError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reservas.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ical))
}

func (h *ReservaHandler) handleReservaError(c *gin.Context, err error) {
	var conflito *service.ConflitoError
	switch {
	case errors.As(err, &conflito):
		response.ErrorWithDetails(c, http.StatusConflict, 14109, conflito.Error(),
			gin.H{"reservaIds": conflito.ReservaIDs})
	case errors.Is(err, service.ErrReservaNaoEncontrada):
		response.NotFound(c, 14101, err.Error())
	case errors.Is(err, service.ErrLaboratorioNaoEncontrado):
		response.NotFound(c, 13101, err.Error())
	case errors.Is(err, service.ErrLaboratorioInativo):
		response.BadRequest(c, 14102, err.Error())
	case errors.Is(err, service.ErrPeriodoInvalido):
		response.BadRequest(c, 14103, err.Error())
	case errors.Is(err, service.ErrReservaNoPassado):
		response.BadRequest(c, 14104, err.Error())
	case errors.Is(err, service.ErrTituloInvalido):
		response.BadRequest(c, 14105, err.Error())
	case errors.Is(err, service.ErrReservaNaoEditavel):
		response.BadRequest(c, 14106, err.Error())
	case errors.Is(err, service.ErrPlanejamentoNaoVinculavel):
		response.BadRequest(c, 14107, err.Error())
	case errors.Is(err, service.ErrStatusInvalido):
		response.BadRequest(c, 14108, err.Error())
	case errors.Is(err, service.ErrTransicaoInvalida):
		response.BadRequest(c, 14110, err.Error())
	case errors.Is(err, service.ErrMotivoObrigatorio):
		response.BadRequest(c, 14111, err.Error())
	case errors.Is(err, service.ErrAcessoNegado):
		response.Forbidden(c, 10003, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10010, err.Error())
	default:
		response.InternalError(c)
	}
}
