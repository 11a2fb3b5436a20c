package repositories

import (
	"context"
	"errors"
	"time"

	"fleetwatch/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MailJobRepository interface {
	ListByStatus(ctx context.Context, status models.JobStatus) ([]*models.ScheduledMailJob, error)
	ListAll(ctx context.Context) ([]*models.ScheduledMailJob, error)
	Get(ctx context.Context, id uint) (*models.ScheduledMailJob, error)
	Insert(ctx context.Context, job *models.ScheduledMailJob) error
	UpdateStatus(ctx context.Context, id uint, status models.JobStatus, nextFireAt *time.Time) error
	Delete(ctx context.Context, id uint) error
}

type mailJobRepo struct {
	DB *pgxpool.Pool
}

func NewMailJobRepository(db *pgxpool.Pool) MailJobRepository {
	return &mailJobRepo{DB: db}
}

const mailJobColumns = `
	id,
	report_type_id,
	report_name,
	email_recipient,
	schedule_date,
	schedule_time,
	COALESCE(report_parameters, '{}'::jsonb),
	report_format,
	status,
	is_recurring,
	COALESCE(recurrence_pattern, ''),
	next_fire_at,
	COALESCE(created_at, NOW())`

func (r *mailJobRepo) ListByStatus(ctx context.Context, status models.JobStatus) ([]*models.ScheduledMailJob, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+mailJobColumns+`
		FROM scheduled_mail_jobs
		WHERE status = $1
		ORDER BY id`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMailJobs(rows)
}

func (r *mailJobRepo) ListAll(ctx context.Context) ([]*models.ScheduledMailJob, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+mailJobColumns+`
		FROM scheduled_mail_jobs
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMailJobs(rows)
}

func (r *mailJobRepo) Get(ctx context.Context, id uint) (*models.ScheduledMailJob, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT `+mailJobColumns+`
		FROM scheduled_mail_jobs
		WHERE id = $1`, id)

	job, err := scanMailJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *mailJobRepo) Insert(ctx context.Context, job *models.ScheduledMailJob) error {
	var pattern interface{}
	if job.IsRecurring {
		pattern = string(job.RecurrencePattern)
	}

	return r.DB.QueryRow(ctx, `
		INSERT INTO scheduled_mail_jobs (
			report_type_id,
			report_name,
			email_recipient,
			schedule_date,
			schedule_time,
			report_parameters,
			report_format,
			status,
			is_recurring,
			recurrence_pattern,
			next_fire_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, COALESCE(created_at, NOW())`,
		job.ReportTypeID,
		job.ReportName,
		job.EmailRecipient,
		job.ScheduleDate,
		job.ScheduleTime,
		job.ReportParameters,
		job.ReportFormat,
		job.Status,
		job.IsRecurring,
		pattern,
		job.NextFireAt,
	).Scan(&job.ID, &job.CreatedAt)
}

// UpdateStatus persists a status transition and the recomputed next fire
// instant inside a transaction, so a concurrent cancel or update can never
// observe a partial write.
func (r *mailJobRepo) UpdateStatus(ctx context.Context, id uint, status models.JobStatus, nextFireAt *time.Time) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE scheduled_mail_jobs
		SET status = $1, next_fire_at = $2
		WHERE id = $3`, status, nextFireAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *mailJobRepo) Delete(ctx context.Context, id uint) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM scheduled_mail_jobs WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMailJobs(rows pgx.Rows) ([]*models.ScheduledMailJob, error) {
	var jobs []*models.ScheduledMailJob
	for rows.Next() {
		job, err := scanMailJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func scanMailJob(row pgx.Row) (*models.ScheduledMailJob, error) {
	var job models.ScheduledMailJob
	var pattern string
	err := row.Scan(
		&job.ID,
		&job.ReportTypeID,
		&job.ReportName,
		&job.EmailRecipient,
		&job.ScheduleDate,
		&job.ScheduleTime,
		&job.ReportParameters,
		&job.ReportFormat,
		&job.Status,
		&job.IsRecurring,
		&pattern,
		&job.NextFireAt,
		&job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.RecurrencePattern = models.RecurrencePattern(pattern)
	return &job, nil
}
