package handler

import "labreserva/backend/internal/service"

// Handler aggregates every HTTP handler behind one wiring point.
type Handler struct {
	Auth         *AuthHandler
	Usuario      *UsuarioHandler
	Laboratorio  *LaboratorioHandler
	Reserva      *ReservaHandler
	Planejamento *PlanejamentoHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Usuario:      NewUsuarioHandler(svc.Usuario),
		Laboratorio:  NewLaboratorioHandler(svc.Laboratorio),
		Reserva:      NewReservaHandler(svc.Reserva),
		Planejamento: NewPlanejamentoHandler(svc.Planejamento),
	}
}
