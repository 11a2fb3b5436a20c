package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fleetwatch/src/api/handlers"
	"fleetwatch/src/models"
	"fleetwatch/src/scheduler"
	"fleetwatch/src/schemas"
	"fleetwatch/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailJobController struct {
	jobs map[uint]*schemas.ScheduledMailJobResponse
}

func newFakeMailJobController(jobs ...*schemas.ScheduledMailJobResponse) *fakeMailJobController {
	c := &fakeMailJobController{jobs: map[uint]*schemas.ScheduledMailJobResponse{}}
	for _, job := range jobs {
		c.jobs[job.ID] = job
	}
	return c
}

func (c *fakeMailJobController) GetAllMailJobs(_ context.Context) ([]*schemas.ScheduledMailJobResponse, error) {
	out := make([]*schemas.ScheduledMailJobResponse, 0, len(c.jobs))
	for _, job := range c.jobs {
		out = append(out, job)
	}
	return out, nil
}

func (c *fakeMailJobController) GetMailJobByID(_ context.Context, id uint) (*schemas.ScheduledMailJobResponse, error) {
	job, ok := c.jobs[id]
	if !ok {
		return nil, utils.NotFound("scheduled mail job not found")
	}
	return job, nil
}

func (c *fakeMailJobController) CreateMailJob(_ context.Context, req *schemas.CreateScheduledMailJobRequest) (*schemas.ScheduledMailJobResponse, error) {
	// the real controller validates through the trigger builder
	_, err := scheduler.BuildTriggerAt(
		req.ScheduleDate, req.ScheduleTime, req.IsRecurring,
		models.RecurrencePattern(req.RecurrencePattern),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.UTC,
	)
	if err != nil {
		return nil, err
	}

	created := &schemas.ScheduledMailJobResponse{
		ID:             uint(len(c.jobs) + 1),
		ReportTypeID:   req.ReportTypeID,
		ReportName:     req.ReportName,
		EmailRecipient: req.EmailRecipient,
		ScheduleDate:   req.ScheduleDate,
		ScheduleTime:   req.ScheduleTime,
		ReportFormat:   models.ReportFormat(req.ReportFormat),
		Status:         models.JobStatusScheduled,
		IsRecurring:    req.IsRecurring,
	}
	c.jobs[created.ID] = created
	return created, nil
}

func (c *fakeMailJobController) DeleteMailJob(_ context.Context, id uint) error {
	if _, ok := c.jobs[id]; !ok {
		return utils.NotFound("scheduled mail job not found")
	}
	delete(c.jobs, id)
	return nil
}

func newMailJobTestServer(ctrl *fakeMailJobController) *httptest.Server {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := &handlers.Handler{MailJobController: ctrl, Logger: logger}

	r := chi.NewRouter()
	r.Route("/scheduled-mail", func(r chi.Router) {
		r.Get("/", h.GetAllMailJobs)
		r.Get("/{id}", h.GetMailJobByID)
		r.Post("/", h.CreateMailJob)
		r.Delete("/{id}", h.DeleteMailJob)
	})
	return httptest.NewServer(r)
}

func TestCreateMailJob(t *testing.T) {
	ctrl := newFakeMailJobController()
	ts := newMailJobTestServer(ctrl)
	defer ts.Close()

	body, err := json.Marshal(schemas.CreateScheduledMailJobRequest{
		ReportTypeID:   "alarms",
		ReportName:     "Alarm Digest",
		EmailRecipient: "ops@example.com",
		ScheduleDate:   "2024-06-01",
		ScheduleTime:   "09:00",
		ReportFormat:   "pdf",
	})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/scheduled-mail/", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created schemas.ScheduledMailJobResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, models.JobStatusScheduled, created.Status)
	assert.Equal(t, "Alarm Digest", created.ReportName)
}

func TestCreateMailJobWithInvalidScheduleReturns422(t *testing.T) {
	ctrl := newFakeMailJobController()
	ts := newMailJobTestServer(ctrl)
	defer ts.Close()

	// one-shot schedule in the past
	body, err := json.Marshal(schemas.CreateScheduledMailJobRequest{
		ReportTypeID:   "alarms",
		ReportName:     "Alarm Digest",
		EmailRecipient: "ops@example.com",
		ScheduleDate:   "2020-06-01",
		ScheduleTime:   "09:00",
		ReportFormat:   "pdf",
	})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/scheduled-mail/", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateMailJobWithBadBodyReturns400(t *testing.T) {
	ctrl := newFakeMailJobController()
	ts := newMailJobTestServer(ctrl)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/scheduled-mail/", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMailJobByID(t *testing.T) {
	ctrl := newFakeMailJobController(&schemas.ScheduledMailJobResponse{
		ID:         4,
		ReportName: "Weekly Production",
		Status:     models.JobStatusScheduled,
	})
	ts := newMailJobTestServer(ctrl)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/scheduled-mail/4")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var job schemas.ScheduledMailJobResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&job))
	assert.Equal(t, uint(4), job.ID)
	assert.Equal(t, "Weekly Production", job.ReportName)
}

func TestGetMailJobByIDNotFound(t *testing.T) {
	ctrl := newFakeMailJobController()
	ts := newMailJobTestServer(ctrl)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/scheduled-mail/42")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetMailJobByIDNonNumeric(t *testing.T) {
	ctrl := newFakeMailJobController()
	ts := newMailJobTestServer(ctrl)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/scheduled-mail/abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDeleteMailJob(t *testing.T) {
	ctrl := newFakeMailJobController(&schemas.ScheduledMailJobResponse{ID: 7})
	ts := newMailJobTestServer(ctrl)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/scheduled-mail/7", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp2, err := http.Get(ts.URL + "/scheduled-mail/7")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}
