package models

import (
	"time"
)

type JobStatus string

const (
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
)

type ReportFormat string

const (
	FormatPDF   ReportFormat = "pdf"
	FormatExcel ReportFormat = "excel"
	FormatCSV   ReportFormat = "csv"
)

// ScheduledMailJob is a report job armed by the scheduler engine. A recurring
// job keeps its record across firings; only next_fire_at is recomputed.
type ScheduledMailJob struct {
	ID                uint              `db:"id"`
	ReportTypeID      string            `db:"report_type_id"`
	ReportName        string            `db:"report_name"`
	EmailRecipient    string            `db:"email_recipient"`
	ScheduleDate      string            `db:"schedule_date"` // YYYY-MM-DD
	ScheduleTime      string            `db:"schedule_time"` // HH:MM
	ReportParameters  []byte            `db:"report_parameters"`
	ReportFormat      ReportFormat      `db:"report_format"`
	Status            JobStatus         `db:"status"`
	IsRecurring       bool              `db:"is_recurring"`
	RecurrencePattern RecurrencePattern `db:"recurrence_pattern"`
	NextFireAt        *time.Time        `db:"next_fire_at"`
	CreatedAt         time.Time         `db:"created_at"`
}

func (ScheduledMailJob) TableName() string {
	return "scheduled_mail_jobs"
}
