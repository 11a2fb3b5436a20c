package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fleetwatch/src/schemas"
	"fleetwatch/src/utils"
)

func (h *Handler) GetAllMailJobs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	jobs, err := h.MailJobController.GetAllMailJobs(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, jobs, http.StatusOK)
}

func (h *Handler) GetMailJobByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	job, err := h.MailJobController.GetMailJobByID(ctx, uint(id))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, job, http.StatusOK)
}

func (h *Handler) CreateMailJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	var req schemas.CreateScheduledMailJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}

	created, err := h.MailJobController.CreateMailJob(ctx, &req)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, created, http.StatusCreated)
}

func (h *Handler) DeleteMailJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	if err := h.MailJobController.DeleteMailJob(ctx, uint(id)); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, nil, http.StatusNoContent)
}
