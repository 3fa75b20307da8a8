// Package httpapi is the REST boundary over the use cases. It replaces the
// original mobile UI surface with a thin JSON API: screens become endpoints,
// form submissions become request bodies.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hackx/internal/config"
	"hackx/internal/ports/input"
	"hackx/internal/ports/output"
)

// Server wires the router and exposes Run.
type Server struct {
	engine *gin.Engine
	addr   string
}

func NewServer(
	cfg *config.Config,
	sessions input.SessionUseCase,
	hackathons input.HackathonUseCase,
	registrations input.RegistrationUseCase,
	translator output.T,
) *Server {
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-User-ID", "X-User-Email"}
	r.Use(cors.New(corsConfig))

	h := newHandler(sessions, hackathons, registrations, translator)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/auth/signup", h.SignUp)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)

		api.GET("/hackathons", h.ListHackathons)
		api.GET("/hackathons/:id", h.GetHackathon)
		api.GET("/hackathons/:id/participants", h.GetParticipants)
		api.POST("/hackathons/:id/register", h.Register)
		api.DELETE("/hackathons/:id/register", h.Withdraw)

		api.GET("/users/:id/registrations", h.GetUserRegistrations)

		admin := api.Group("", h.requireAdmin)
		{
			admin.POST("/hackathons", h.CreateHackathon)
			admin.PUT("/hackathons/:id", h.UpdateHackathon)
			admin.POST("/hackathons/:id/cancel", h.CancelHackathon)
			admin.DELETE("/hackathons/:id", h.DeleteHackathon)
			admin.POST("/registrations/:id/approve", h.ApproveRegistration)
			admin.POST("/registrations/:id/reject", h.RejectRegistration)
			admin.POST("/hackathons/:id/promote", h.PromoteNextWaitlisted)
		}
	}

	return &Server{engine: r, addr: cfg.HTTPAddr}
}

// Engine exposes the router for tests.
func (s *Server) Engine() http.Handler {
	return s.engine
}

func (s *Server) Run() error {
	slog.Info("HTTP API listening", "address", s.addr)
	return s.engine.Run(s.addr)
}
