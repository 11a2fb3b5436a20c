package repositories_test

import (
	"context"
	"testing"
	"time"

	"fleetwatch/src/models"
	"fleetwatch/src/repositories"
	"fleetwatch/tests/init_test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJob() *models.ScheduledMailJob {
	return &models.ScheduledMailJob{
		ReportTypeID:      "alarms",
		ReportName:        "Alarm Digest",
		EmailRecipient:    "ops@example.com",
		ScheduleDate:      "2031-01-10",
		ScheduleTime:      "09:00",
		ReportParameters:  []byte(`{"startDate":"2031-01-01"}`),
		ReportFormat:      models.FormatPDF,
		Status:            models.JobStatusScheduled,
		IsRecurring:       true,
		RecurrencePattern: models.RecurrenceWeekly,
	}
}

func TestMailJobRepositoryCRUD(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewMailJobRepository(db)
	ctx := context.Background()

	job := newTestJob()
	require.NoError(t, repo.Insert(ctx, job))
	require.NotZero(t, job.ID)
	require.False(t, job.CreatedAt.IsZero())

	loaded, err := repo.Get(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, job.ReportName, loaded.ReportName)
	assert.Equal(t, models.RecurrenceWeekly, loaded.RecurrencePattern)
	assert.Equal(t, models.JobStatusScheduled, loaded.Status)
	assert.JSONEq(t, `{"startDate":"2031-01-01"}`, string(loaded.ReportParameters))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	scheduled, err := repo.ListByStatus(ctx, models.JobStatusScheduled)
	require.NoError(t, err)
	assert.NotEmpty(t, scheduled)

	next := time.Date(2031, 1, 17, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateStatus(ctx, job.ID, models.JobStatusCompleted, &next))

	updated, err := repo.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, updated.Status)
	require.NotNil(t, updated.NextFireAt)
	assert.True(t, updated.NextFireAt.Equal(next))

	require.NoError(t, repo.Delete(ctx, job.ID))

	gone, err := repo.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMailJobRepositoryGetMissingReturnsNil(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewMailJobRepository(db)

	job, err := repo.Get(context.Background(), 999999)
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestMailJobRepositoryUpdateAndDeleteMissing(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewMailJobRepository(db)
	ctx := context.Background()

	err := repo.UpdateStatus(ctx, 999999, models.JobStatusFailed, nil)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Delete(ctx, 999999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMailJobRepositoryNonRecurringStoresNullPattern(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewMailJobRepository(db)
	ctx := context.Background()

	job := newTestJob()
	job.IsRecurring = false
	job.RecurrencePattern = ""
	require.NoError(t, repo.Insert(ctx, job))

	loaded, err := repo.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsRecurring)
	assert.Empty(t, loaded.RecurrencePattern)

	require.NoError(t, repo.Delete(ctx, job.ID))
}
