package schemas

import (
	"time"
)

// ReportMetadata identifies a generated report and the inputs that produced it.
type ReportMetadata struct {
	ReportTypeID string                 `json:"report_type_id"`
	ReportName   string                 `json:"report_name"`
	GeneratedAt  time.Time              `json:"generated_at"`
	Parameters   map[string]interface{} `json:"parameters,omitempty"`
	TotalRecords int                    `json:"total_records"`
	Sources      []string               `json:"sources"`
	StartDate    *time.Time             `json:"start_date,omitempty"`
	EndDate      *time.Time             `json:"end_date,omitempty"`
}

// Dataset is one named table of a report.
type Dataset struct {
	Name     string     `json:"name"`
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	RowCount int        `json:"row_count"`
}

// SummaryMetric keeps summary output ordered across renders.
type SummaryMetric struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ReportData is built fresh on every firing and discarded once rendered.
type ReportData struct {
	Metadata ReportMetadata  `json:"metadata"`
	Datasets []Dataset       `json:"data"`
	Summary  []SummaryMetric `json:"summary,omitempty"`
}
