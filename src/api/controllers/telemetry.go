package controllers

import (
	"context"
	"fmt"
	"time"

	"fleetwatch/src/models"
	"fleetwatch/src/repositories"
	"fleetwatch/src/schemas"
	redis_utils "fleetwatch/src/utils/redis"
)

const telemetryCacheTTL = 30 * time.Second

type TelemetryControllerI interface {
	GetControllerAlarms(ctx context.Context, controllerID uint, limit int) ([]*schemas.AlarmResponse, error)
	GetControllerVariables(ctx context.Context, controllerID uint) ([]*schemas.VariableResponse, error)
	GetControllerIOSignals(ctx context.Context, controllerID uint) ([]*schemas.IOSignalResponse, error)
	GetControllerUtilization(ctx context.Context, controllerID uint, startDate, endDate time.Time) ([]*schemas.UtilizationResponse, error)
}

// TelemetryController serves controller read endpoints. Redis is optional;
// with a nil handler every read goes straight to Postgres.
type TelemetryController struct {
	Telemetry repositories.TelemetryRepository
	Redis     *redis_utils.RedisHandler
}

func NewTelemetryController(telemetry repositories.TelemetryRepository, redis *redis_utils.RedisHandler) *TelemetryController {
	return &TelemetryController{Telemetry: telemetry, Redis: redis}
}

func (tc *TelemetryController) GetControllerAlarms(ctx context.Context, controllerID uint, limit int) ([]*schemas.AlarmResponse, error) {
	cacheKey := fmt.Sprintf("telemetry:alarms:%d:%d", controllerID, limit)
	var cached []*schemas.AlarmResponse
	if tc.cacheGet(cacheKey, &cached) {
		return cached, nil
	}

	alarms, err := tc.Telemetry.ListAlarms(ctx, controllerID, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.AlarmResponse, 0, len(alarms))
	for _, alarm := range alarms {
		responses = append(responses, &schemas.AlarmResponse{
			ID:           alarm.ID,
			ControllerID: alarm.ControllerID,
			Code:         alarm.Code,
			Severity:     alarm.Severity,
			Message:      alarm.Message,
			RaisedAt:     alarm.RaisedAt,
			ClearedAt:    alarm.ClearedAt,
		})
	}
	tc.cacheSet(cacheKey, responses)
	return responses, nil
}

func (tc *TelemetryController) GetControllerVariables(ctx context.Context, controllerID uint) ([]*schemas.VariableResponse, error) {
	cacheKey := fmt.Sprintf("telemetry:variables:%d", controllerID)
	var cached []*schemas.VariableResponse
	if tc.cacheGet(cacheKey, &cached) {
		return cached, nil
	}

	variables, err := tc.Telemetry.ListVariables(ctx, controllerID)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.VariableResponse, 0, len(variables))
	for _, variable := range variables {
		responses = append(responses, &schemas.VariableResponse{
			ID:           variable.ID,
			ControllerID: variable.ControllerID,
			Name:         variable.Name,
			Value:        variable.Value,
			RecordedAt:   variable.RecordedAt,
		})
	}
	tc.cacheSet(cacheKey, responses)
	return responses, nil
}

func (tc *TelemetryController) GetControllerIOSignals(ctx context.Context, controllerID uint) ([]*schemas.IOSignalResponse, error) {
	cacheKey := fmt.Sprintf("telemetry:io:%d", controllerID)
	var cached []*schemas.IOSignalResponse
	if tc.cacheGet(cacheKey, &cached) {
		return cached, nil
	}

	signals, err := tc.Telemetry.ListIOSignals(ctx, controllerID)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.IOSignalResponse, 0, len(signals))
	for _, signal := range signals {
		responses = append(responses, &schemas.IOSignalResponse{
			ID:           signal.ID,
			ControllerID: signal.ControllerID,
			Name:         signal.Name,
			Kind:         signal.Kind,
			Value:        signal.Value,
			RecordedAt:   signal.RecordedAt,
		})
	}
	tc.cacheSet(cacheKey, responses)
	return responses, nil
}

func (tc *TelemetryController) GetControllerUtilization(ctx context.Context, controllerID uint, startDate, endDate time.Time) ([]*schemas.UtilizationResponse, error) {
	samples, err := tc.Telemetry.ListUtilization(ctx, controllerID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.UtilizationResponse, 0, len(samples))
	for _, sample := range samples {
		responses = append(responses, &schemas.UtilizationResponse{
			ControllerID:   sample.ControllerID,
			SampleDate:     sample.SampleDate,
			RunningSeconds: sample.RunningSeconds,
			IdleSeconds:    sample.IdleSeconds,
			FaultSeconds:   sample.FaultSeconds,
			Percent:        utilizationPercent(sample),
		})
	}
	return responses, nil
}

func utilizationPercent(sample *models.UtilizationSample) float64 {
	total := sample.RunningSeconds + sample.IdleSeconds + sample.FaultSeconds
	if total == 0 {
		return 0
	}
	return 100 * float64(sample.RunningSeconds) / float64(total)
}

func (tc *TelemetryController) cacheGet(key string, result interface{}) bool {
	if tc.Redis == nil {
		return false
	}
	return tc.Redis.Get(key, result) == nil
}

func (tc *TelemetryController) cacheSet(key string, value interface{}) {
	if tc.Redis == nil {
		return
	}
	_ = tc.Redis.Set(key, value, telemetryCacheTTL)
}
