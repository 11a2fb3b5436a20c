package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"fleetwatch/src/api/controllers"
	"fleetwatch/src/api/handlers"
	"fleetwatch/src/config"
	"fleetwatch/src/repositories"
	"fleetwatch/src/services"
	redis_utils "fleetwatch/src/utils/redis"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	cfg     *config.Config
}

func NewServer(cfg *config.Config, db *pgxpool.Pool, redis *redis_utils.RedisHandler, logger *logrus.Logger) (*Server, error) {
	tokenAuth := jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil)

	fleetRepo := repositories.NewFleetRepository(db)
	telemetryRepo := repositories.NewTelemetryRepository(db)
	mailJobRepo := repositories.NewMailJobRepository(db)

	collector := services.NewCollectorService(db)
	renderer := services.NewRenderService()

	handler := &handlers.Handler{
		FleetController:     controllers.NewFleetController(fleetRepo),
		MailJobController:   controllers.NewMailJobController(mailJobRepo),
		TelemetryController: controllers.NewTelemetryController(telemetryRepo, redis),
		ReportController:    controllers.NewReportController(collector, renderer),
		TokenController:     controllers.NewTokenController(tokenAuth, cfg.Auth),
		Logger:              logger,
	}

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		cfg:     cfg,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Post("/api/token", s.Handler.PostToken)

	s.Router.Route("/api/factories", func(r chi.Router) {
		r.Get("/", s.Handler.GetAllFactories)
		r.Get("/{id}", s.Handler.GetFactoryByID)
		r.Post("/", s.Handler.CreateFactory)
		r.Put("/{id}", s.Handler.UpdateFactory)
		r.Delete("/{id}", s.Handler.DeleteFactory)
	})

	s.Router.Route("/api/lines", func(r chi.Router) {
		r.Get("/", s.Handler.GetAllLines)
		r.Get("/{id}", s.Handler.GetLineByID)
		r.Post("/", s.Handler.CreateLine)
		r.Put("/{id}", s.Handler.UpdateLine)
		r.Delete("/{id}", s.Handler.DeleteLine)
	})

	s.Router.Route("/api/cells", func(r chi.Router) {
		r.Get("/", s.Handler.GetAllCells)
		r.Get("/{id}", s.Handler.GetCellByID)
		r.Post("/", s.Handler.CreateCell)
		r.Put("/{id}", s.Handler.UpdateCell)
		r.Delete("/{id}", s.Handler.DeleteCell)
	})

	s.Router.Route("/api/controllers", func(r chi.Router) {
		r.Get("/", s.Handler.GetAllControllers)
		r.Get("/{id}", s.Handler.GetControllerByID)
		r.Post("/", s.Handler.CreateController)
		r.Put("/{id}", s.Handler.UpdateController)
		r.Delete("/{id}", s.Handler.DeleteController)

		r.Get("/{id}/alarms", s.Handler.GetControllerAlarms)
		r.Get("/{id}/variables", s.Handler.GetControllerVariables)
		r.Get("/{id}/io", s.Handler.GetControllerIOSignals)
		r.Get("/{id}/utilization", s.Handler.GetControllerUtilization)
	})

	s.Router.Get("/api/reports/{type}/file", s.Handler.GetReportFile)

	s.Router.Route("/scheduled-mail", func(r chi.Router) {
		r.Get("/", s.Handler.GetAllMailJobs)
		r.Get("/{id}", s.Handler.GetMailJobByID)
		r.Post("/", s.Handler.CreateMailJob)
		r.Delete("/{id}", s.Handler.DeleteMailJob)
	})
}

func NewHTTPServer(server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + server.cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
