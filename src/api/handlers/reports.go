package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"

	"fleetwatch/src/models"
	"fleetwatch/src/utils"
)

// GetReportFile generates a report on demand and streams it as a download.
// The same collect and render pipeline backs the scheduled mail jobs.
func (h *Handler) GetReportFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusUnauthorized, "auth token not detected"))
		return
	}

	reportTypeID := chi.URLParam(r, "type")
	if reportTypeID == "" {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusBadRequest, "missing report type URL parameter"))
		return
	}

	formatStr := r.URL.Query().Get("format")
	if formatStr == "" {
		formatStr = string(models.FormatPDF)
	}
	format := models.ReportFormat(formatStr)

	params := map[string]interface{}{}
	if startDate := r.URL.Query().Get("startDate"); startDate != "" {
		params["startDate"] = startDate
	}
	if endDate := r.URL.Query().Get("endDate"); endDate != "" {
		params["endDate"] = endDate
	}

	artifact, reportName, err := h.ReportController.GenerateReportFile(ctx, reportTypeID, format, params)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeForFormat(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", reportName, extensionForFormat(format)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(artifact)))

	if _, err := w.Write(artifact); err != nil {
		h.Logger.Warning(err)
	}
}

func contentTypeForFormat(format models.ReportFormat) string {
	switch format {
	case models.FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case models.FormatCSV:
		return "text/csv"
	default:
		return "application/pdf"
	}
}

func extensionForFormat(format models.ReportFormat) string {
	switch format {
	case models.FormatExcel:
		return "xlsx"
	case models.FormatCSV:
		return "csv"
	default:
		return "pdf"
	}
}
