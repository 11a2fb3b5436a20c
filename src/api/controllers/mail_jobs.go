package controllers

import (
	"context"
	"encoding/json"

	"fleetwatch/src/models"
	"fleetwatch/src/repositories"
	"fleetwatch/src/scheduler"
	"fleetwatch/src/schemas"
	"fleetwatch/src/utils"
)

type MailJobControllerI interface {
	GetAllMailJobs(ctx context.Context) ([]*schemas.ScheduledMailJobResponse, error)
	GetMailJobByID(ctx context.Context, id uint) (*schemas.ScheduledMailJobResponse, error)
	CreateMailJob(ctx context.Context, req *schemas.CreateScheduledMailJobRequest) (*schemas.ScheduledMailJobResponse, error)
	DeleteMailJob(ctx context.Context, id uint) error
}

type MailJobController struct {
	Jobs repositories.MailJobRepository
}

func NewMailJobController(jobs repositories.MailJobRepository) *MailJobController {
	return &MailJobController{Jobs: jobs}
}

func (mc *MailJobController) GetAllMailJobs(ctx context.Context) ([]*schemas.ScheduledMailJobResponse, error) {
	jobs, err := mc.Jobs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.ScheduledMailJobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, mailJobResponse(job))
	}
	return responses, nil
}

func (mc *MailJobController) GetMailJobByID(ctx context.Context, id uint) (*schemas.ScheduledMailJobResponse, error) {
	job, err := mc.Jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.NotFound("scheduled mail job not found")
	}
	return mailJobResponse(job), nil
}

// CreateMailJob validates the schedule up front so InvalidScheduleError
// surfaces to the API caller at creation time, not at fire time.
func (mc *MailJobController) CreateMailJob(ctx context.Context, req *schemas.CreateScheduledMailJobRequest) (*schemas.ScheduledMailJobResponse, error) {
	format := models.ReportFormat(req.ReportFormat)
	switch format {
	case models.FormatPDF, models.FormatExcel, models.FormatCSV:
	default:
		return nil, utils.UnprocessableEntity("report_format must be one of pdf, excel, csv")
	}

	// recurrence_pattern is present iff is_recurring
	if req.IsRecurring && req.RecurrencePattern == "" {
		return nil, utils.UnprocessableEntity("recurrence_pattern is required for recurring jobs")
	}
	if !req.IsRecurring && req.RecurrencePattern != "" {
		return nil, utils.UnprocessableEntity("recurrence_pattern is only valid for recurring jobs")
	}

	pattern := models.RecurrencePattern(req.RecurrencePattern)
	trigger, err := scheduler.BuildTrigger(req.ScheduleDate, req.ScheduleTime, req.IsRecurring, pattern)
	if err != nil {
		return nil, err
	}

	var params []byte
	if req.ReportParameters != nil {
		params, err = json.Marshal(req.ReportParameters)
		if err != nil {
			return nil, utils.BadRequest(err.Error())
		}
	}

	nextFireAt := trigger.FireAt
	job := &models.ScheduledMailJob{
		ReportTypeID:      req.ReportTypeID,
		ReportName:        req.ReportName,
		EmailRecipient:    req.EmailRecipient,
		ScheduleDate:      req.ScheduleDate,
		ScheduleTime:      req.ScheduleTime,
		ReportParameters:  params,
		ReportFormat:      format,
		Status:            models.JobStatusScheduled,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: pattern,
		NextFireAt:        &nextFireAt,
	}

	if err := mc.Jobs.Insert(ctx, job); err != nil {
		return nil, err
	}
	return mailJobResponse(job), nil
}

func (mc *MailJobController) DeleteMailJob(ctx context.Context, id uint) error {
	return translateRepoError(mc.Jobs.Delete(ctx, id))
}

func mailJobResponse(job *models.ScheduledMailJob) *schemas.ScheduledMailJobResponse {
	var params map[string]interface{}
	if len(job.ReportParameters) > 0 {
		_ = json.Unmarshal(job.ReportParameters, &params)
	}
	return &schemas.ScheduledMailJobResponse{
		ID:                job.ID,
		ReportTypeID:      job.ReportTypeID,
		ReportName:        job.ReportName,
		EmailRecipient:    job.EmailRecipient,
		ScheduleDate:      job.ScheduleDate,
		ScheduleTime:      job.ScheduleTime,
		ReportParameters:  params,
		ReportFormat:      job.ReportFormat,
		Status:            job.Status,
		IsRecurring:       job.IsRecurring,
		RecurrencePattern: job.RecurrencePattern,
		NextFireAt:        job.NextFireAt,
		CreatedAt:         job.CreatedAt,
	}
}
