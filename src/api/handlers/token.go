package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fleetwatch/src/schemas"
	"fleetwatch/src/utils"
)

func (h *Handler) PostToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var tokenRequestCreds = new(schemas.TokenRequest)

	err := json.NewDecoder(r.Body).Decode(tokenRequestCreds)
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, err.Error()))
		return
	}

	tokenResponse, err := h.TokenController.IssueToken(ctx, tokenRequestCreds)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, tokenResponse, http.StatusOK)
}
