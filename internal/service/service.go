package service

import (
	"errors"

	"go.uber.org/zap"

	"labreserva/backend/config"
	"labreserva/backend/internal/repository"
	"labreserva/backend/pkg/jwt"
	"labreserva/backend/pkg/redis"
)

// Errors shared by more than one workflow service.
var (
	ErrAcessoNegado      = errors.New("acesso negado")
	ErrTransicaoInvalida = errors.New("transição de status inválida")
	ErrMotivoObrigatorio = errors.New("motivo é obrigatório para esta operação")
	ErrStatusInvalido    = errors.New("status inválido")
)

// Service aggregates the workflow services consumed by the handlers.
type Service struct {
	Auth         AuthService
	Usuario      UsuarioService
	Laboratorio  LaboratorioService
	Reserva      ReservaService
	Planejamento PlanejamentoService
}

// NewService wires every workflow service. redisClient may be nil; the
// auth service then skips token revocation and logs a warning.
func NewService(repo *repository.Repository, jwtMgr *jwt.Manager, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, redisClient, cfg, logger),
		Usuario:      NewUsuarioService(repo, logger),
		Laboratorio:  NewLaboratorioService(repo, logger),
		Reserva:      NewReservaService(repo, logger),
		Planejamento: NewPlanejamentoService(repo, logger),
	}
}
