package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"fleetwatch/src/api/controllers"
	"fleetwatch/src/scheduler"
	"fleetwatch/src/utils"
)

type Handler struct {
	FleetController     controllers.FleetControllerI
	MailJobController   controllers.MailJobControllerI
	TelemetryController controllers.TelemetryControllerI
	ReportController    controllers.ReportControllerI
	TokenController     controllers.TokenControllerI
	Logger              *logrus.Logger
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
	var scheduleErr *scheduler.InvalidScheduleError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		utils.WriteError(w, utils.NewHTTPError(http.StatusGatewayTimeout, "Request timed out"))
	case errors.As(err, &httpErr):
		utils.WriteError(w, httpErr)
	case errors.As(err, &scheduleErr):
		utils.WriteError(w, utils.NewHTTPError(http.StatusUnprocessableEntity, scheduleErr.Error()))
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
