package controllers

import (
	"context"

	"fleetwatch/src/models"
	"fleetwatch/src/services"
	"fleetwatch/src/utils"
)

type ReportControllerI interface {
	GenerateReportFile(ctx context.Context, reportTypeID string, format models.ReportFormat, params map[string]interface{}) ([]byte, string, error)
}

type ReportController struct {
	Collector services.CollectorServiceI
	Renderer  services.RenderServiceI
}

func NewReportController(collector services.CollectorServiceI, renderer services.RenderServiceI) *ReportController {
	return &ReportController{Collector: collector, Renderer: renderer}
}

// GenerateReportFile runs the same collect and render pipeline the worker
// uses at fire time, returning the artifact bytes and the report name.
func (rc *ReportController) GenerateReportFile(ctx context.Context, reportTypeID string, format models.ReportFormat, params map[string]interface{}) ([]byte, string, error) {
	switch format {
	case models.FormatPDF, models.FormatExcel, models.FormatCSV:
	default:
		return nil, "", utils.UnprocessableEntity("format must be one of pdf, excel, csv")
	}

	data, err := rc.Collector.Collect(ctx, reportTypeID, params)
	if err != nil {
		return nil, "", err
	}
	artifact, err := rc.Renderer.Render(data, format)
	if err != nil {
		return nil, "", err
	}
	return artifact, data.Metadata.ReportName, nil
}
