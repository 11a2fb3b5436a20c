package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"fleetwatch/src/utils"
	"fleetwatch/src/worker/controllers"
)

type Handler struct {
	Controller *controllers.Controller
	Logger     *logrus.Logger
}

func NewHandler(controller *controllers.Controller, logger *logrus.Logger) *Handler {
	return &Handler{Controller: controller, Logger: logger}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		utils.WriteError(w, utils.NewHTTPError(http.StatusGatewayTimeout, "Request timed out"))
	case errors.As(err, &httpErr):
		utils.WriteError(w, httpErr)
	case err != nil:
		utils.WriteError(w, utils.NewHTTPError(http.StatusInternalServerError, err.Error()))
	default:
		utils.WriteError(w, utils.NewHTTPError(http.StatusInternalServerError, "Unhandled error"))
	}
}

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		fmt.Fprintf(w, "Im alive!")
	} else {
		fmt.Fprintf(w, "Method not available: %s", r.Method)
	}
}
