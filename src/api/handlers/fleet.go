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

func (h *Handler) GetAllFactories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	factories, err := h.FleetController.GetAllFactories(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, factories, http.StatusOK)
}

func (h *Handler) GetFactoryByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	factory, err := h.FleetController.GetFactoryByID(ctx, uint(id))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, factory, http.StatusOK)
}

func (h *Handler) CreateFactory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateFactoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}

	created, err := h.FleetController.CreateFactory(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, created, http.StatusCreated)
}

func (h *Handler) UpdateFactory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	var req schemas.UpdateFactoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}
	req.ID = uint(id)

	updated, err := h.FleetController.UpdateFactory(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, updated, http.StatusOK)
}

func (h *Handler) DeleteFactory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	if err := h.FleetController.DeleteFactory(ctx, uint(id)); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, nil, http.StatusNoContent)
}

func (h *Handler) GetAllLines(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	factoryID, err := optionalUintQuery(r, "factoryId")
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	lines, err := h.FleetController.GetAllLines(ctx, factoryID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, lines, http.StatusOK)
}

func (h *Handler) GetLineByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	line, err := h.FleetController.GetLineByID(ctx, uint(id))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, line, http.StatusOK)
}

func (h *Handler) CreateLine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}

	created, err := h.FleetController.CreateLine(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, created, http.StatusCreated)
}

func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	var req schemas.UpdateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}
	req.ID = uint(id)

	updated, err := h.FleetController.UpdateLine(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, updated, http.StatusOK)
}

func (h *Handler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	if err := h.FleetController.DeleteLine(ctx, uint(id)); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, nil, http.StatusNoContent)
}

func (h *Handler) GetAllCells(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	lineID, err := optionalUintQuery(r, "lineId")
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	cells, err := h.FleetController.GetAllCells(ctx, lineID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, cells, http.StatusOK)
}

func (h *Handler) GetCellByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	cell, err := h.FleetController.GetCellByID(ctx, uint(id))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, cell, http.StatusOK)
}

func (h *Handler) CreateCell(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}

	created, err := h.FleetController.CreateCell(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, created, http.StatusCreated)
}

func (h *Handler) UpdateCell(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	var req schemas.UpdateCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}
	req.ID = uint(id)

	updated, err := h.FleetController.UpdateCell(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, updated, http.StatusOK)
}

func (h *Handler) DeleteCell(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	if err := h.FleetController.DeleteCell(ctx, uint(id)); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, nil, http.StatusNoContent)
}

func (h *Handler) GetAllControllers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cellID, err := optionalUintQuery(r, "cellId")
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	robots, err := h.FleetController.GetAllControllers(ctx, cellID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, robots, http.StatusOK)
}

func (h *Handler) GetControllerByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	robot, err := h.FleetController.GetControllerByID(ctx, uint(id))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, robot, http.StatusOK)
}

func (h *Handler) CreateController(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateControllerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}

	created, err := h.FleetController.CreateController(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, created, http.StatusCreated)
}

func (h *Handler) UpdateController(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	var req schemas.UpdateControllerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}
	req.ID = uint(id)

	updated, err := h.FleetController.UpdateController(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, updated, http.StatusOK)
}

func (h *Handler) DeleteController(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	if err := h.FleetController.DeleteController(ctx, uint(id)); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, nil, http.StatusNoContent)
}

// optionalUintQuery reads a numeric query parameter, returning zero when absent.
func optionalUintQuery(r *http.Request, name string) (uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
