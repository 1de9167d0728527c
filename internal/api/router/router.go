package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"labreserva/backend/config"
	"labreserva/backend/internal/api/handler"
	"labreserva/backend/internal/api/middleware"
	"labreserva/backend/internal/model"
	"labreserva/backend/pkg/jwt"
	"labreserva/backend/pkg/redis"
)

// Setup builds the gin engine with the full route table.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	metrics := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(metrics.Handler())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	aprovadores := middleware.RoleAuth(model.PerfilDiretor, model.PerfilAdmin)
	admin := middleware.RoleAuth(model.PerfilAdmin)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			professores := authorized.Group("/professores")
			{
				professores.GET("", h.Usuario.List)
				professores.GET("/:id", h.Usuario.Get)
				professores.POST("", admin, h.Usuario.Create)
				professores.PATCH("/:id/status", admin, h.Usuario.AlterarStatus)
			}

			laboratorios := authorized.Group("/laboratorios")
			{
				laboratorios.GET("", h.Laboratorio.List)
				laboratorios.GET("/:id", h.Laboratorio.Get)
				laboratorios.POST("", admin, h.Laboratorio.Create)
				laboratorios.PUT("/:id", admin, h.Laboratorio.Update)
				laboratorios.PATCH("/:id/status", admin, h.Laboratorio.AlterarStatus)
			}

			reservas := authorized.Group("/reservas")
			{
				reservas.POST("", h.Reserva.Create)
				reservas.GET("", h.Reserva.List)
				reservas.GET("/pendentes", aprovadores, h.Reserva.ListPendentes)
				reservas.GET("/futuras", h.Reserva.ListFuturas)
				reservas.GET("/calendario.ics", h.Reserva.Calendario)
				reservas.GET("/laboratorio/:id", h.Reserva.ListByLaboratorio)
				reservas.GET("/:id", h.Reserva.Get)
				reservas.PUT("/:id", h.Reserva.Update)
				reservas.PATCH("/:id/status", h.Reserva.AlterarStatus)
				reservas.PATCH("/:id/planejamento", h.Reserva.VincularPlanejamento)
				reservas.DELETE("/:id", h.Reserva.Delete)
			}

			planejamentos := authorized.Group("/planejamentos")
			{
				planejamentos.POST("", h.Planejamento.Create)
				planejamentos.GET("", h.Planejamento.List)
				planejamentos.GET("/meus", h.Planejamento.ListMeus)
				planejamentos.GET("/buscar", h.Planejamento.Buscar)
				planejamentos.GET("/:id", h.Planejamento.Get)
				planejamentos.PUT("/:id", h.Planejamento.Update)
				planejamentos.DELETE("/:id", h.Planejamento.Delete)
				planejamentos.POST("/:id/aprovar", aprovadores, h.Planejamento.Aprovar)
				planejamentos.POST("/:id/reprovar", aprovadores, h.Planejamento.Reprovar)
				planejamentos.POST("/:id/solicitar-ajustes", aprovadores, h.Planejamento.SolicitarAjustes)
				planejamentos.POST("/:id/reenviar", h.Planejamento.Reenviar)
			}
		}
	}

	return r
}
