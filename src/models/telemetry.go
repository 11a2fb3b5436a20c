package models

import (
	"time"
)

type AlarmSeverity string

const (
	SeverityInfo     AlarmSeverity = "info"
	SeverityWarning  AlarmSeverity = "warning"
	SeverityCritical AlarmSeverity = "critical"
)

type Alarm struct {
	ID           uint          `db:"id"`
	ControllerID uint          `db:"controller_id"`
	Code         string        `db:"code"`
	Severity     AlarmSeverity `db:"severity"`
	Message      string        `db:"message"`
	RaisedAt     time.Time     `db:"raised_at"`
	ClearedAt    *time.Time    `db:"cleared_at"`
}

func (Alarm) TableName() string {
	return "alarms"
}

type ControllerVariable struct {
	ID           uint      `db:"id"`
	ControllerID uint      `db:"controller_id"`
	Name         string    `db:"name"`
	Value        string    `db:"value"`
	RecordedAt   time.Time `db:"recorded_at"`
}

func (ControllerVariable) TableName() string {
	return "controller_variables"
}

type IOKind string

const (
	IOInput  IOKind = "in"
	IOOutput IOKind = "out"
)

type IOSignal struct {
	ID           uint      `db:"id"`
	ControllerID uint      `db:"controller_id"`
	Name         string    `db:"name"`
	Kind         IOKind    `db:"kind"`
	Value        bool      `db:"value"`
	RecordedAt   time.Time `db:"recorded_at"`
}

func (IOSignal) TableName() string {
	return "io_signals"
}

type UtilizationSample struct {
	ID             uint      `db:"id"`
	ControllerID   uint      `db:"controller_id"`
	SampleDate     time.Time `db:"sample_date"`
	RunningSeconds int64     `db:"running_seconds"`
	IdleSeconds    int64     `db:"idle_seconds"`
	FaultSeconds   int64     `db:"fault_seconds"`
}

func (UtilizationSample) TableName() string {
	return "utilization_samples"
}

type MaintenanceLog struct {
	ID           uint      `db:"id"`
	ControllerID uint      `db:"controller_id"`
	Description  string    `db:"description"`
	PerformedBy  string    `db:"performed_by"`
	PerformedAt  time.Time `db:"performed_at"`
}

func (MaintenanceLog) TableName() string {
	return "maintenance_logs"
}

type ProductionRecord struct {
	ID           uint      `db:"id"`
	ControllerID uint      `db:"controller_id"`
	PartNumber   string    `db:"part_number"`
	Quantity     int64     `db:"quantity"`
	RecordedAt   time.Time `db:"recorded_at"`
}

func (ProductionRecord) TableName() string {
	return "production_records"
}
