package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"fleetwatch/src/api"
	"fleetwatch/src/clients/mail"
	"fleetwatch/src/config"
	"fleetwatch/src/database"
	"fleetwatch/src/repositories"
	"fleetwatch/src/scheduler"
	"fleetwatch/src/services"
	"fleetwatch/src/utils"
	redis_utils "fleetwatch/src/utils/redis"
	"fleetwatch/src/worker"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)
	logger := utils.NewLogger(logrus.InfoLevel, false, "")

	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	var httpServer *http.Server
	if cfg.Service.Type == config.API {
		// Redis is a cache, not a dependency: the API serves reads
		// from Postgres when it is unreachable.
		redisHandler, err := redis_utils.NewRedisHandler(cfg)
		if err != nil {
			logger.Warnf("redis unavailable, telemetry caching disabled: %v", err)
			redisHandler = nil
		}

		server, err := api.NewServer(cfg, db, redisHandler, logger)
		if err != nil {
			return nil, err
		}
		httpServer = api.NewHTTPServer(server)
	} else {
		mailer, err := mail.NewMailService(cfg)
		if err != nil {
			return nil, err
		}

		store := repositories.NewMailJobRepository(db)
		collector := services.NewCollectorService(db)
		renderer := services.NewRenderService()

		engine := scheduler.NewEngine(store, collector, renderer, mailer, logger)
		engine.Start()
		if err := engine.Initialize(context.Background()); err != nil {
			return nil, err
		}

		server := worker.NewServer(cfg, engine, logger)
		httpServer = worker.NewHTTPServer(server)
	}

	go func() {
		logger.Infof("starting %s server on port %s", cfg.Service.Type, cfg.Service.Port)

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, nil
}
