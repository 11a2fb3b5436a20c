package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fleetwatch/src/models"
	"fleetwatch/src/scheduler"
	"fleetwatch/src/schemas"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu   sync.Mutex
	jobs map[uint]*models.ScheduledMailJob
}

func newFakeStore(jobs ...*models.ScheduledMailJob) *fakeStore {
	s := &fakeStore{jobs: map[uint]*models.ScheduledMailJob{}}
	for _, job := range jobs {
		s.jobs[job.ID] = job
	}
	return s
}

func (s *fakeStore) ListByStatus(_ context.Context, status models.JobStatus) ([]*models.ScheduledMailJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.ScheduledMailJob
	for _, job := range s.jobs {
		if job.Status == status {
			copied := *job
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, id uint) (*models.ScheduledMailJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (s *fakeStore) Insert(_ context.Context, job *models.ScheduledMailJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
	return nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id uint, status models.JobStatus, nextFireAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return errors.New("job not found")
	}
	job.Status = status
	job.NextFireAt = nextFireAt
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
	return nil
}

func (s *fakeStore) status(id uint) models.JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id].Status
}

type fakeCollector struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *fakeCollector) Collect(_ context.Context, reportTypeID string, _ map[string]interface{}) (*schemas.ReportData, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return &schemas.ReportData{
		Metadata: schemas.ReportMetadata{ReportTypeID: reportTypeID},
	}, nil
}

func (c *fakeCollector) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type fakeRenderer struct {
	mu       sync.Mutex
	lastName string
}

func (r *fakeRenderer) Render(data *schemas.ReportData, _ models.ReportFormat) ([]byte, error) {
	r.mu.Lock()
	r.lastName = data.Metadata.ReportName
	r.mu.Unlock()
	return []byte("artifact"), nil
}

func (r *fakeRenderer) renderedName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastName
}

type fakeMailer struct {
	mu    sync.Mutex
	sends int
	err   error
}

func (m *fakeMailer) Send(_ string, _ []byte, _ models.ReportFormat, _ string) error {
	m.mu.Lock()
	m.sends++
	m.mu.Unlock()
	return m.err
}

func (m *fakeMailer) sendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sends
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// withVirtualClock pins the engine clock to an offset base while keeping it
// running at real speed, so minute-level fire instants resolve in milliseconds.
func withVirtualClock(engine *scheduler.Engine, base time.Time) {
	realBase := time.Now()
	engine.Now = func() time.Time {
		return base.Add(time.Since(realBase))
	}
}

func oneShotJob(id uint) *models.ScheduledMailJob {
	return &models.ScheduledMailJob{
		ID:             id,
		ReportTypeID:   "alarms",
		ReportName:     "Alarm Digest",
		EmailRecipient: "ops@example.com",
		ScheduleDate:   "2031-01-10",
		ScheduleTime:   "09:00",
		ReportFormat:   models.FormatPDF,
		Status:         models.JobStatusScheduled,
	}
}

func dailyJob(id uint) *models.ScheduledMailJob {
	job := oneShotJob(id)
	job.IsRecurring = true
	job.RecurrencePattern = models.RecurrenceDaily
	return job
}

// fireInstant is the local wall clock instant the test jobs are anchored on.
func fireInstant() time.Time {
	return time.Date(2031, 1, 10, 9, 0, 0, 0, time.Local)
}

func TestEngineFiresOneShot(t *testing.T) {
	job := oneShotJob(1)
	store := newFakeStore(job)
	collector := &fakeCollector{}
	mailer := &fakeMailer{}

	engine := scheduler.NewEngine(store, collector, &fakeRenderer{}, mailer, quietLogger())
	withVirtualClock(engine, fireInstant().Add(-200*time.Millisecond))
	engine.Start()
	defer engine.Stop()

	require.NoError(t, engine.Initialize(context.Background()))
	assert.Equal(t, 1, engine.ActiveCount())

	require.Eventually(t, func() bool {
		return store.status(1) == models.JobStatusCompleted
	}, 3*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, collector.callCount())
	assert.Equal(t, 1, mailer.sendCount())
	assert.Equal(t, 0, engine.ActiveCount())
}

func TestEngineReArmsRecurringJob(t *testing.T) {
	job := dailyJob(7)
	store := newFakeStore(job)
	collector := &fakeCollector{}
	mailer := &fakeMailer{}

	engine := scheduler.NewEngine(store, collector, &fakeRenderer{}, mailer, quietLogger())
	withVirtualClock(engine, fireInstant().Add(-200*time.Millisecond))
	engine.Start()
	defer engine.Stop()

	require.NoError(t, engine.Initialize(context.Background()))

	require.Eventually(t, func() bool {
		return mailer.sendCount() == 1 && engine.ActiveCount() == 1
	}, 3*time.Second, 10*time.Millisecond)

	// still scheduled, with the next occurrence persisted
	assert.Equal(t, models.JobStatusScheduled, store.status(7))

	stored, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, stored.NextFireAt)
	assert.WithinDuration(t, fireInstant().AddDate(0, 0, 1), *stored.NextFireAt, 0)
}

func TestEngineCancelDisarmsJob(t *testing.T) {
	job := oneShotJob(3)
	store := newFakeStore(job)
	collector := &fakeCollector{}

	engine := scheduler.NewEngine(store, collector, &fakeRenderer{}, &fakeMailer{}, quietLogger())
	// an hour before the fire instant, nothing can fire during the test
	withVirtualClock(engine, fireInstant().Add(-time.Hour))
	engine.Start()
	defer engine.Stop()

	require.NoError(t, engine.Initialize(context.Background()))
	require.Equal(t, 1, engine.ActiveCount())

	engine.Cancel(3)
	assert.Equal(t, 0, engine.ActiveCount())

	// cancelling an unknown job is a no-op
	engine.Cancel(99)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, collector.callCount())
	assert.Equal(t, models.JobStatusScheduled, store.status(3))
}

func TestEngineInitializeMarksUnarmableJobsFailed(t *testing.T) {
	stale := oneShotJob(1)
	stale.ScheduleDate = "2020-01-10"
	live := oneShotJob(2)
	store := newFakeStore(stale, live)

	engine := scheduler.NewEngine(store, &fakeCollector{}, &fakeRenderer{}, &fakeMailer{}, quietLogger())
	withVirtualClock(engine, fireInstant().Add(-time.Hour))
	engine.Start()
	defer engine.Stop()

	require.NoError(t, engine.Initialize(context.Background()))
	assert.True(t, engine.Initialized())
	assert.Equal(t, 1, engine.ActiveCount())
	assert.Equal(t, models.JobStatusFailed, store.status(1))
	assert.Equal(t, models.JobStatusScheduled, store.status(2))

	// a second initialize replaces timers instead of stacking them
	require.NoError(t, engine.Initialize(context.Background()))
	assert.Equal(t, 1, engine.ActiveCount())
}

func TestEngineFailedCollectMarksOneShotFailed(t *testing.T) {
	job := oneShotJob(5)
	store := newFakeStore(job)
	collector := &fakeCollector{err: errors.New("source unavailable")}
	mailer := &fakeMailer{}

	engine := scheduler.NewEngine(store, collector, &fakeRenderer{}, mailer, quietLogger())
	withVirtualClock(engine, fireInstant().Add(-200*time.Millisecond))
	engine.Start()
	defer engine.Stop()

	require.NoError(t, engine.Initialize(context.Background()))

	require.Eventually(t, func() bool {
		return store.status(5) == models.JobStatusFailed
	}, 3*time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, mailer.sendCount())
}

func TestEngineFailedCollectKeepsRecurringJobArmed(t *testing.T) {
	job := dailyJob(6)
	store := newFakeStore(job)
	collector := &fakeCollector{err: errors.New("source unavailable")}

	engine := scheduler.NewEngine(store, collector, &fakeRenderer{}, &fakeMailer{}, quietLogger())
	withVirtualClock(engine, fireInstant().Add(-200*time.Millisecond))
	engine.Start()
	defer engine.Stop()

	require.NoError(t, engine.Initialize(context.Background()))

	require.Eventually(t, func() bool {
		return collector.callCount() == 1 && engine.ActiveCount() == 1
	}, 3*time.Second, 10*time.Millisecond)

	assert.Equal(t, models.JobStatusScheduled, store.status(6))
}

func TestEngineDeliveryFailureStillCompletes(t *testing.T) {
	job := oneShotJob(9)
	store := newFakeStore(job)
	mailer := &fakeMailer{err: errors.New("smtp refused")}

	engine := scheduler.NewEngine(store, &fakeCollector{}, &fakeRenderer{}, mailer, quietLogger())
	withVirtualClock(engine, fireInstant().Add(-200*time.Millisecond))
	engine.Start()
	defer engine.Stop()

	require.NoError(t, engine.Initialize(context.Background()))

	require.Eventually(t, func() bool {
		return store.status(9) == models.JobStatusCompleted
	}, 3*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, mailer.sendCount())
}

func TestEngineFiresJobsInFireOrder(t *testing.T) {
	early := oneShotJob(1)
	late := oneShotJob(2)
	late.ScheduleTime = "09:01"
	store := newFakeStore(early, late)
	mailer := &fakeMailer{}

	engine := scheduler.NewEngine(store, &fakeCollector{}, &fakeRenderer{}, mailer, quietLogger())
	withVirtualClock(engine, fireInstant().Add(-200*time.Millisecond))
	engine.Start()
	defer engine.Stop()

	require.NoError(t, engine.Initialize(context.Background()))
	assert.Equal(t, 2, engine.ActiveCount())

	require.Eventually(t, func() bool {
		return store.status(1) == models.JobStatusCompleted
	}, 3*time.Second, 10*time.Millisecond)

	// the later job keeps its timer until its own minute arrives
	assert.Equal(t, models.JobStatusScheduled, store.status(2))
	assert.Equal(t, 1, engine.ActiveCount())
}

func TestEngineStampsJobNameOnArtifact(t *testing.T) {
	job := oneShotJob(11)
	job.ReportName = "Night Shift Alarms"
	store := newFakeStore(job)
	renderer := &fakeRenderer{}

	engine := scheduler.NewEngine(store, &fakeCollector{}, renderer, &fakeMailer{}, quietLogger())
	withVirtualClock(engine, fireInstant().Add(-200*time.Millisecond))
	engine.Start()
	defer engine.Stop()

	require.NoError(t, engine.Initialize(context.Background()))

	require.Eventually(t, func() bool {
		return store.status(11) == models.JobStatusCompleted
	}, 3*time.Second, 10*time.Millisecond)

	// the collector leaves the name empty, the engine fills in the job's own
	assert.Equal(t, "Night Shift Alarms", renderer.renderedName())
}
