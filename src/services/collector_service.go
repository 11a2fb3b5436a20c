package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"fleetwatch/src/models"
	"fleetwatch/src/schemas"
	"fleetwatch/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Report type ids understood by the collector service.
const (
	ReportTypeAlarms      = "alarms"
	ReportTypeUtilization = "utilization"
	ReportTypeMaintenance = "maintenance"
	ReportTypeProduction  = "production"
)

var reportDisplayNames = map[string]string{
	ReportTypeAlarms:      "Alarm Digest",
	ReportTypeUtilization: "Utilization Summary",
	ReportTypeMaintenance: "Maintenance History",
	ReportTypeProduction:  "Production Output",
}

// ReportDisplayName returns the default artifact name for a report type. The
// scheduler overrides it with the job's own report name at fire time.
func ReportDisplayName(reportTypeID string) string {
	if name, ok := reportDisplayNames[reportTypeID]; ok {
		return name
	}
	return reportTypeID
}

type CollectorServiceI interface {
	Collect(ctx context.Context, reportTypeID string, params map[string]interface{}) (*schemas.ReportData, error)
}

type collectFunc func(ctx context.Context, window reportWindow) ([]schemas.Dataset, []schemas.SummaryMetric, error)

// CollectorService gathers report datasets from the fleet tables. Collection
// is read-only; every underlying failure is wrapped in a CollectionError.
type CollectorService struct {
	DB         *pgxpool.Pool
	collectors map[string]collectFunc
}

type reportWindow struct {
	startDate *time.Time
	endDate   *time.Time
}

func NewCollectorService(db *pgxpool.Pool) *CollectorService {
	cs := &CollectorService{DB: db}
	cs.collectors = map[string]collectFunc{
		ReportTypeAlarms:      cs.collectAlarms,
		ReportTypeUtilization: cs.collectUtilization,
		ReportTypeMaintenance: cs.collectMaintenance,
		ReportTypeProduction:  cs.collectProduction,
	}
	return cs
}

func (cs *CollectorService) Collect(ctx context.Context, reportTypeID string, params map[string]interface{}) (*schemas.ReportData, error) {
	collect, ok := cs.collectors[reportTypeID]
	if !ok {
		return nil, &CollectionError{Source: reportTypeID, Err: fmt.Errorf("unknown report type")}
	}

	window, err := windowFromParams(params)
	if err != nil {
		return nil, &CollectionError{Source: reportTypeID, Err: err}
	}

	datasets, summary, err := collect(ctx, window)
	if err != nil {
		return nil, err
	}

	total := 0
	sources := make([]string, 0, len(datasets))
	for _, ds := range datasets {
		total += ds.RowCount
		sources = append(sources, ds.Name)
	}

	return &schemas.ReportData{
		Metadata: schemas.ReportMetadata{
			ReportTypeID: reportTypeID,
			ReportName:   ReportDisplayName(reportTypeID),
			GeneratedAt:  time.Now(),
			Parameters:   params,
			TotalRecords: total,
			Sources:      sources,
			StartDate:    window.startDate,
			EndDate:      window.endDate,
		},
		Datasets: datasets,
		Summary:  summary,
	}, nil
}

func windowFromParams(params map[string]interface{}) (reportWindow, error) {
	var window reportWindow
	for key, target := range map[string]**time.Time{
		"startDate": &window.startDate,
		"endDate":   &window.endDate,
	} {
		raw, ok := params[key]
		if !ok {
			continue
		}
		str, ok := raw.(string)
		if !ok {
			return window, fmt.Errorf("parameter %s must be a string", key)
		}
		parsed, err := time.ParseInLocation(utils.ShortDashDateLayout, str, time.Local)
		if err != nil {
			return window, fmt.Errorf("parameter %s: %w", key, err)
		}
		*target = &parsed
	}
	return window, nil
}

func (w reportWindow) bounds() (time.Time, time.Time) {
	start := time.Time{}
	end := time.Now()
	if w.startDate != nil {
		start = *w.startDate
	}
	if w.endDate != nil {
		end = w.endDate.AddDate(0, 0, 1)
	}
	return start, end
}

func (cs *CollectorService) collectAlarms(ctx context.Context, window reportWindow) ([]schemas.Dataset, []schemas.SummaryMetric, error) {
	start, end := window.bounds()
	rows, err := cs.DB.Query(ctx, `
		SELECT a.id, a.controller_id, a.code, a.severity, a.message, a.raised_at, a.cleared_at
		FROM alarms a
		WHERE a.raised_at >= $1 AND a.raised_at < $2
		ORDER BY a.raised_at, a.id`, start, end)
	if err != nil {
		return nil, nil, &CollectionError{Source: ReportTypeAlarms, Err: err}
	}
	defer rows.Close()

	var alarms []models.Alarm
	for rows.Next() {
		var a models.Alarm
		if err := rows.Scan(&a.ID, &a.ControllerID, &a.Code, &a.Severity, &a.Message, &a.RaisedAt, &a.ClearedAt); err != nil {
			return nil, nil, &CollectionError{Source: ReportTypeAlarms, Err: err}
		}
		alarms = append(alarms, a)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &CollectionError{Source: ReportTypeAlarms, Err: err}
	}

	return []schemas.Dataset{NormalizeAlarms(alarms)}, AlarmSummary(alarms), nil
}

func (cs *CollectorService) collectUtilization(ctx context.Context, window reportWindow) ([]schemas.Dataset, []schemas.SummaryMetric, error) {
	start, end := window.bounds()
	rows, err := cs.DB.Query(ctx, `
		SELECT u.id, u.controller_id, u.sample_date, u.running_seconds, u.idle_seconds, u.fault_seconds
		FROM utilization_samples u
		WHERE u.sample_date >= $1 AND u.sample_date < $2
		ORDER BY u.sample_date, u.controller_id`, start, end)
	if err != nil {
		return nil, nil, &CollectionError{Source: ReportTypeUtilization, Err: err}
	}
	defer rows.Close()

	var samples []models.UtilizationSample
	for rows.Next() {
		var s models.UtilizationSample
		if err := rows.Scan(&s.ID, &s.ControllerID, &s.SampleDate, &s.RunningSeconds, &s.IdleSeconds, &s.FaultSeconds); err != nil {
			return nil, nil, &CollectionError{Source: ReportTypeUtilization, Err: err}
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &CollectionError{Source: ReportTypeUtilization, Err: err}
	}

	filled := FillUtilizationDays(samples, window.startDate, window.endDate)
	return []schemas.Dataset{NormalizeUtilization(filled)}, UtilizationSummary(samples), nil
}

// FillUtilizationDays pads the samples with zero-valued rows for days inside
// the requested window that have no recording, so the utilization dataset
// keeps a continuous date axis per controller. The summary stays computed
// over recorded samples only.
func FillUtilizationDays(samples []models.UtilizationSample, startDate, endDate *time.Time) []models.UtilizationSample {
	if startDate == nil || endDate == nil || len(samples) == 0 {
		return samples
	}
	days, err := utils.GenerateDates(*startDate, *endDate, 24*time.Hour)
	if err != nil {
		return samples
	}

	type sampleKey struct {
		controllerID uint
		day          string
	}
	recorded := make(map[sampleKey]struct{}, len(samples))
	var controllers []uint
	seen := map[uint]struct{}{}
	for _, s := range samples {
		recorded[sampleKey{s.ControllerID, s.SampleDate.Format(utils.ShortDashDateLayout)}] = struct{}{}
		if _, ok := seen[s.ControllerID]; !ok {
			seen[s.ControllerID] = struct{}{}
			controllers = append(controllers, s.ControllerID)
		}
	}

	filled := samples
	for _, controllerID := range controllers {
		for _, day := range days {
			key := sampleKey{controllerID, day.Format(utils.ShortDashDateLayout)}
			if _, ok := recorded[key]; ok {
				continue
			}
			filled = append(filled, models.UtilizationSample{ControllerID: controllerID, SampleDate: day})
		}
	}

	sort.Slice(filled, func(i, j int) bool {
		if filled[i].SampleDate.Equal(filled[j].SampleDate) {
			return filled[i].ControllerID < filled[j].ControllerID
		}
		return filled[i].SampleDate.Before(filled[j].SampleDate)
	})
	return filled
}

func (cs *CollectorService) collectMaintenance(ctx context.Context, window reportWindow) ([]schemas.Dataset, []schemas.SummaryMetric, error) {
	start, end := window.bounds()
	rows, err := cs.DB.Query(ctx, `
		SELECT m.id, m.controller_id, m.description, m.performed_by, m.performed_at
		FROM maintenance_logs m
		WHERE m.performed_at >= $1 AND m.performed_at < $2
		ORDER BY m.performed_at, m.id`, start, end)
	if err != nil {
		return nil, nil, &CollectionError{Source: ReportTypeMaintenance, Err: err}
	}
	defer rows.Close()

	var logs []models.MaintenanceLog
	for rows.Next() {
		var m models.MaintenanceLog
		if err := rows.Scan(&m.ID, &m.ControllerID, &m.Description, &m.PerformedBy, &m.PerformedAt); err != nil {
			return nil, nil, &CollectionError{Source: ReportTypeMaintenance, Err: err}
		}
		logs = append(logs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &CollectionError{Source: ReportTypeMaintenance, Err: err}
	}

	dataset := NormalizeMaintenance(logs)
	summary := []schemas.SummaryMetric{
		{Name: "Maintenance interventions", Value: strconv.Itoa(len(logs))},
	}
	return []schemas.Dataset{dataset}, summary, nil
}

func (cs *CollectorService) collectProduction(ctx context.Context, window reportWindow) ([]schemas.Dataset, []schemas.SummaryMetric, error) {
	start, end := window.bounds()
	rows, err := cs.DB.Query(ctx, `
		SELECT p.id, p.controller_id, p.part_number, p.quantity, p.recorded_at
		FROM production_records p
		WHERE p.recorded_at >= $1 AND p.recorded_at < $2
		ORDER BY p.recorded_at, p.id`, start, end)
	if err != nil {
		return nil, nil, &CollectionError{Source: ReportTypeProduction, Err: err}
	}
	defer rows.Close()

	var records []models.ProductionRecord
	for rows.Next() {
		var p models.ProductionRecord
		if err := rows.Scan(&p.ID, &p.ControllerID, &p.PartNumber, &p.Quantity, &p.RecordedAt); err != nil {
			return nil, nil, &CollectionError{Source: ReportTypeProduction, Err: err}
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &CollectionError{Source: ReportTypeProduction, Err: err}
	}

	return []schemas.Dataset{NormalizeProduction(records)}, ProductionSummary(records), nil
}

// NormalizeAlarms flattens alarm rows into the report dataset shape.
func NormalizeAlarms(alarms []models.Alarm) schemas.Dataset {
	rows := make([][]string, 0, len(alarms))
	for _, a := range alarms {
		cleared := ""
		if a.ClearedAt != nil {
			cleared = a.ClearedAt.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(a.ControllerID), 10),
			a.Code,
			string(a.Severity),
			a.Message,
			a.RaisedAt.Format(time.RFC3339),
			cleared,
		})
	}
	return schemas.Dataset{
		Name:     "Alarm History",
		Columns:  []string{"Controller", "Code", "Severity", "Message", "Raised At", "Cleared At"},
		Rows:     rows,
		RowCount: len(rows),
	}
}

// AlarmSummary aggregates severity counts.
func AlarmSummary(alarms []models.Alarm) []schemas.SummaryMetric {
	counts := map[models.AlarmSeverity]int{}
	for _, a := range alarms {
		counts[a.Severity]++
	}
	return []schemas.SummaryMetric{
		{Name: "Total alarms", Value: strconv.Itoa(len(alarms))},
		{Name: "Critical", Value: strconv.Itoa(counts[models.SeverityCritical])},
		{Name: "Warning", Value: strconv.Itoa(counts[models.SeverityWarning])},
		{Name: "Info", Value: strconv.Itoa(counts[models.SeverityInfo])},
	}
}

// NormalizeUtilization flattens utilization samples, one row per controller
// per sample date, with the derived utilization percentage.
func NormalizeUtilization(samples []models.UtilizationSample) schemas.Dataset {
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(s.ControllerID), 10),
			s.SampleDate.Format(utils.ShortDashDateLayout),
			strconv.FormatInt(s.RunningSeconds, 10),
			strconv.FormatInt(s.IdleSeconds, 10),
			strconv.FormatInt(s.FaultSeconds, 10),
			fmt.Sprintf("%.2f", utilizationPercent(s)),
		})
	}
	return schemas.Dataset{
		Name:     "Utilization",
		Columns:  []string{"Controller", "Date", "Running (s)", "Idle (s)", "Fault (s)", "Utilization %"},
		Rows:     rows,
		RowCount: len(rows),
	}
}

// UtilizationSummary computes fleet-level aggregates over the sample window.
func UtilizationSummary(samples []models.UtilizationSample) []schemas.SummaryMetric {
	if len(samples) == 0 {
		return []schemas.SummaryMetric{{Name: "Samples", Value: "0"}}
	}

	controllers := make([]string, len(samples))
	percents := make([]float64, len(samples))
	faults := make([]float64, len(samples))
	for i, s := range samples {
		controllers[i] = strconv.FormatUint(uint64(s.ControllerID), 10)
		percents[i] = utilizationPercent(s)
		faults[i] = float64(s.FaultSeconds)
	}

	df := dataframe.New(
		series.New(controllers, series.String, "Controller"),
		series.New(percents, series.Float, "Percent"),
		series.New(faults, series.Float, "Fault"),
	)

	meanPercent := df.Col("Percent").Mean()
	totalFault := 0.0
	for _, v := range df.Col("Fault").Float() {
		totalFault += v
	}

	return []schemas.SummaryMetric{
		{Name: "Samples", Value: strconv.Itoa(len(samples))},
		{Name: "Mean utilization %", Value: fmt.Sprintf("%.2f", meanPercent)},
		{Name: "Total fault seconds", Value: fmt.Sprintf("%.0f", totalFault)},
	}
}

func utilizationPercent(s models.UtilizationSample) float64 {
	total := s.RunningSeconds + s.IdleSeconds + s.FaultSeconds
	if total == 0 {
		return 0
	}
	return float64(s.RunningSeconds) / float64(total) * 100
}

// NormalizeMaintenance flattens maintenance log rows.
func NormalizeMaintenance(logs []models.MaintenanceLog) schemas.Dataset {
	rows := make([][]string, 0, len(logs))
	for _, m := range logs {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(m.ControllerID), 10),
			m.Description,
			m.PerformedBy,
			m.PerformedAt.Format(time.RFC3339),
		})
	}
	return schemas.Dataset{
		Name:     "Maintenance Log",
		Columns:  []string{"Controller", "Description", "Performed By", "Performed At"},
		Rows:     rows,
		RowCount: len(rows),
	}
}

// NormalizeProduction flattens production records.
func NormalizeProduction(records []models.ProductionRecord) schemas.Dataset {
	rows := make([][]string, 0, len(records))
	for _, p := range records {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(p.ControllerID), 10),
			p.PartNumber,
			strconv.FormatInt(p.Quantity, 10),
			p.RecordedAt.Format(time.RFC3339),
		})
	}
	return schemas.Dataset{
		Name:     "Production",
		Columns:  []string{"Controller", "Part Number", "Quantity", "Recorded At"},
		Rows:     rows,
		RowCount: len(rows),
	}
}

// ProductionSummary totals produced parts across controllers.
func ProductionSummary(records []models.ProductionRecord) []schemas.SummaryMetric {
	var total int64
	parts := map[string]struct{}{}
	for _, p := range records {
		total += p.Quantity
		parts[p.PartNumber] = struct{}{}
	}
	return []schemas.SummaryMetric{
		{Name: "Total parts", Value: strconv.FormatInt(total, 10)},
		{Name: "Distinct part numbers", Value: strconv.Itoa(len(parts))},
		{Name: "Records", Value: strconv.Itoa(len(records))},
	}
}
