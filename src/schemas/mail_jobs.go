package schemas

import (
	"time"

	"fleetwatch/src/models"
)

// CreateScheduledMailJobRequest represents the request schema for creating a new scheduled mail job.
type CreateScheduledMailJobRequest struct {
	ReportTypeID      string                 `json:"report_type_id" validate:"required"`
	ReportName        string                 `json:"report_name" validate:"required"`
	EmailRecipient    string                 `json:"email_recipient" validate:"required"`
	ScheduleDate      string                 `json:"schedule_date" validate:"required"`
	ScheduleTime      string                 `json:"schedule_time" validate:"required"`
	ReportParameters  map[string]interface{} `json:"report_parameters"`
	ReportFormat      string                 `json:"report_format" validate:"required"`
	IsRecurring       bool                   `json:"is_recurring"`
	RecurrencePattern string                 `json:"recurrence_pattern"`
}

// ScheduledMailJobResponse represents the response schema for scheduled mail job data.
type ScheduledMailJobResponse struct {
	ID                uint                     `json:"id"`
	ReportTypeID      string                   `json:"report_type_id"`
	ReportName        string                   `json:"report_name"`
	EmailRecipient    string                   `json:"email_recipient"`
	ScheduleDate      string                   `json:"schedule_date"`
	ScheduleTime      string                   `json:"schedule_time"`
	ReportParameters  map[string]interface{}   `json:"report_parameters,omitempty"`
	ReportFormat      models.ReportFormat      `json:"report_format"`
	Status            models.JobStatus         `json:"status"`
	IsRecurring       bool                     `json:"is_recurring"`
	RecurrencePattern models.RecurrencePattern `json:"recurrence_pattern,omitempty"`
	NextFireAt        *time.Time               `json:"next_fire_at,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
}
