package worker

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"fleetwatch/src/config"
	"fleetwatch/src/scheduler"
	"fleetwatch/src/worker/controllers"
	"fleetwatch/src/worker/handlers"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	cfg     *config.Config
}

func NewServer(cfg *config.Config, engine *scheduler.Engine, logger *logrus.Logger) *Server {
	controller := controllers.NewController(engine)
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(controller, logger),
		cfg:     cfg,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/scheduler", func(r chi.Router) {
		r.Post("/init", s.Handler.InitScheduler)
		r.Get("/init", s.Handler.GetSchedulerStatus)
		r.Delete("/jobs/{id}", s.Handler.CancelJob)
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
