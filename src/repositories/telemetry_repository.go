package repositories

import (
	"context"
	"time"

	"fleetwatch/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TelemetryRepository interface {
	ListAlarms(ctx context.Context, controllerID uint, limit int) ([]*models.Alarm, error)
	ListVariables(ctx context.Context, controllerID uint) ([]*models.ControllerVariable, error)
	ListIOSignals(ctx context.Context, controllerID uint) ([]*models.IOSignal, error)
	ListUtilization(ctx context.Context, controllerID uint, startDate, endDate time.Time) ([]*models.UtilizationSample, error)
}

type telemetryRepo struct {
	DB *pgxpool.Pool
}

func NewTelemetryRepository(db *pgxpool.Pool) TelemetryRepository {
	return &telemetryRepo{DB: db}
}

func (r *telemetryRepo) ListAlarms(ctx context.Context, controllerID uint, limit int) ([]*models.Alarm, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx, `
		SELECT id, controller_id, code, severity, message, raised_at, cleared_at
		FROM alarms
		WHERE controller_id = $1
		ORDER BY raised_at DESC
		LIMIT $2`, controllerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alarms []*models.Alarm
	for rows.Next() {
		var a models.Alarm
		if err := rows.Scan(&a.ID, &a.ControllerID, &a.Code, &a.Severity, &a.Message, &a.RaisedAt, &a.ClearedAt); err != nil {
			return nil, err
		}
		alarms = append(alarms, &a)
	}
	return alarms, rows.Err()
}

func (r *telemetryRepo) ListVariables(ctx context.Context, controllerID uint) ([]*models.ControllerVariable, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT DISTINCT ON (name) id, controller_id, name, value, recorded_at
		FROM controller_variables
		WHERE controller_id = $1
		ORDER BY name, recorded_at DESC`, controllerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variables []*models.ControllerVariable
	for rows.Next() {
		var v models.ControllerVariable
		if err := rows.Scan(&v.ID, &v.ControllerID, &v.Name, &v.Value, &v.RecordedAt); err != nil {
			return nil, err
		}
		variables = append(variables, &v)
	}
	return variables, rows.Err()
}

func (r *telemetryRepo) ListIOSignals(ctx context.Context, controllerID uint) ([]*models.IOSignal, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT DISTINCT ON (name, kind) id, controller_id, name, kind, value, recorded_at
		FROM io_signals
		WHERE controller_id = $1
		ORDER BY name, kind, recorded_at DESC`, controllerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []*models.IOSignal
	for rows.Next() {
		var s models.IOSignal
		if err := rows.Scan(&s.ID, &s.ControllerID, &s.Name, &s.Kind, &s.Value, &s.RecordedAt); err != nil {
			return nil, err
		}
		signals = append(signals, &s)
	}
	return signals, rows.Err()
}

func (r *telemetryRepo) ListUtilization(ctx context.Context, controllerID uint, startDate, endDate time.Time) ([]*models.UtilizationSample, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, controller_id, sample_date, running_seconds, idle_seconds, fault_seconds
		FROM utilization_samples
		WHERE controller_id = $1 AND sample_date >= $2 AND sample_date <= $3
		ORDER BY sample_date`, controllerID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []*models.UtilizationSample
	for rows.Next() {
		var s models.UtilizationSample
		if err := rows.Scan(&s.ID, &s.ControllerID, &s.SampleDate, &s.RunningSeconds, &s.IdleSeconds, &s.FaultSeconds); err != nil {
			return nil, err
		}
		samples = append(samples, &s)
	}
	return samples, rows.Err()
}
