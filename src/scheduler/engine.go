package scheduler

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"fleetwatch/src/models"
	"fleetwatch/src/schemas"
	"fleetwatch/src/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const fireTimeout = 5 * time.Minute

// JobStore is the persistence collaborator for scheduled mail jobs.
type JobStore interface {
	ListByStatus(ctx context.Context, status models.JobStatus) ([]*models.ScheduledMailJob, error)
	Get(ctx context.Context, id uint) (*models.ScheduledMailJob, error)
	Insert(ctx context.Context, job *models.ScheduledMailJob) error
	UpdateStatus(ctx context.Context, id uint, status models.JobStatus, nextFireAt *time.Time) error
	Delete(ctx context.Context, id uint) error
}

// Collector gathers the domain data of one report type into a ReportData
// document. It must be read-only with respect to the store.
type Collector interface {
	Collect(ctx context.Context, reportTypeID string, params map[string]interface{}) (*schemas.ReportData, error)
}

// Renderer serializes a ReportData document into one output format.
type Renderer interface {
	Render(data *schemas.ReportData, format models.ReportFormat) ([]byte, error)
}

// Mailer delivers a rendered artifact. Failures are logged, never propagated
// as a scheduler fault.
type Mailer interface {
	Send(recipient string, artifact []byte, format models.ReportFormat, reportName string) error
}

// Engine owns the armed timers of all scheduled mail jobs in this process.
// Armed jobs live in a min-heap of (fireAt, jobID) drained by a single
// coordinator goroutine; each due job fires on its own goroutine so one job's
// collector or renderer work never delays another job's fire time. A job is
// re-armed only after its firing's status update has been persisted, so a
// single job's firings are strictly sequential.
type Engine struct {
	store     JobStore
	collector Collector
	renderer  Renderer
	mailer    Mailer
	logger    *logrus.Logger
	loc       *time.Location

	// Now returns the current time. Replaceable for deterministic scheduling.
	Now func() time.Time

	mu          sync.Mutex
	queue       fireQueue
	armed       map[uint]*queueEntry
	inflight    map[uint]struct{}
	cancelled   map[uint]struct{}
	seq         uint64
	initialized bool

	wake    chan struct{}
	stopCh  chan struct{}
	started bool
	stopped bool
}

func NewEngine(store JobStore, collector Collector, renderer Renderer, mailer Mailer, logger *logrus.Logger) *Engine {
	return &Engine{
		store:     store,
		collector: collector,
		renderer:  renderer,
		mailer:    mailer,
		logger:    logger,
		loc:       time.Local,
		Now:       time.Now,
		armed:     make(map[uint]*queueEntry),
		inflight:  make(map[uint]struct{}),
		cancelled: make(map[uint]struct{}),
		wake:      make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the coordinator goroutine. Calling it twice is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.run()
}

// Stop shuts the coordinator down. Armed timers are discarded; in-flight
// firings run to completion.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped || !e.started {
		return
	}
	e.stopped = true
	close(e.stopCh)
}

// Initialize loads every job still marked scheduled and arms it. Idempotent:
// arming replaces any existing timer, so calling it twice leaves exactly one
// timer per job. Jobs whose schedule can no longer be armed (a one-shot whose
// fire time passed while the process was down) are marked failed.
func (e *Engine) Initialize(ctx context.Context) error {
	jobs, err := e.store.ListByStatus(ctx, models.JobStatusScheduled)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		if _, err := e.Arm(job); err != nil {
			e.logger.WithFields(logrus.Fields{
				"job_id": job.ID,
				"error":  err.Error(),
			}).Warn("could not arm job on initialize, marking failed")
			if updErr := e.store.UpdateStatus(ctx, job.ID, models.JobStatusFailed, nil); updErr != nil {
				e.logger.WithField("job_id", job.ID).Error("status update failed: ", updErr)
			}
		}
	}

	e.mu.Lock()
	e.initialized = true
	e.mu.Unlock()
	return nil
}

// Arm computes the job's next fire instant and schedules it, replacing any
// existing timer for the same job.
func (e *Engine) Arm(job *models.ScheduledMailJob) (time.Time, error) {
	trigger, err := TriggerForJob(job, e.Now(), e.loc)
	if err != nil {
		return time.Time{}, err
	}
	e.armAt(job.ID, trigger.FireAt)
	return trigger.FireAt, nil
}

// Cancel clears any pending timer for the job. Safe to call when nothing is
// armed. A firing already in flight completes, but its recurrence is dropped.
func (e *Engine) Cancel(jobID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if entry, ok := e.armed[jobID]; ok {
		e.queue.remove(entry)
		delete(e.armed, jobID)
	}
	if _, ok := e.inflight[jobID]; ok {
		e.cancelled[jobID] = struct{}{}
	}
}

// ActiveCount returns the number of jobs with a currently armed timer.
func (e *Engine) ActiveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.armed)
}

func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

func (e *Engine) armAt(jobID uint, at time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.armLocked(jobID, at)
}

// rearmAt arms the next occurrence unless the job was cancelled while its
// firing was in flight. The cancelled check and the queue push share one
// critical section so a cancel racing the re-arm cannot be lost.
func (e *Engine) rearmAt(jobID uint, at time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.cancelled[jobID]; ok {
		return false
	}
	e.armLocked(jobID, at)
	return true
}

func (e *Engine) armLocked(jobID uint, at time.Time) {
	if old, ok := e.armed[jobID]; ok {
		e.queue.remove(old)
	}
	e.seq++
	entry := &queueEntry{jobID: jobID, fireAt: at, seq: e.seq}
	e.queue.push(entry)
	e.armed[jobID] = entry

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) run() {
	for {
		e.mu.Lock()
		now := e.Now()
		var due []*queueEntry
		for {
			top := e.queue.peek()
			if top == nil || top.fireAt.After(now) {
				break
			}
			entry := e.queue.pop()
			// entries replaced by a newer arm are stale, skip them
			if e.armed[entry.jobID] != entry {
				continue
			}
			delete(e.armed, entry.jobID)
			e.inflight[entry.jobID] = struct{}{}
			due = append(due, entry)
		}
		wait := time.Hour
		if top := e.queue.peek(); top != nil {
			wait = top.fireAt.Sub(now)
		}
		e.mu.Unlock()

		for _, entry := range due {
			go e.fire(entry.jobID, entry.fireAt)
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-e.wake:
			timer.Stop()
		case <-e.stopCh:
			timer.Stop()
			return
		}
	}
}

// fire runs one firing: collect, render, deliver, persist the transition and,
// for recurring jobs, re-arm. Every failure is contained here; nothing escapes
// to crash the coordinator or disturb other jobs' timers.
func (e *Engine) fire(jobID uint, scheduledAt time.Time) {
	defer e.clearInflight(jobID)
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("job_id", jobID).Error("panic during firing: ", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()
	ctx = utils.WithLogger(ctx, e.logger)

	log := e.logger.WithFields(logrus.Fields{
		"job_id":    jobID,
		"firing_id": uuid.NewString(),
		"scheduled": scheduledAt.Format(time.RFC3339),
	})

	job, err := e.store.Get(ctx, jobID)
	if err != nil {
		log.Error("could not load job: ", err)
		return
	}
	if job == nil || job.Status != models.JobStatusScheduled {
		log.Warn("job no longer scheduled, skipping firing")
		return
	}

	artifact, err := e.buildArtifact(ctx, job)
	if err != nil {
		log.Error("firing failed: ", err)
		e.handleFailedFiring(ctx, job, log)
		return
	}

	if err := e.mailer.Send(job.EmailRecipient, artifact, job.ReportFormat, job.ReportName); err != nil {
		// delivery failure is a logged side effect, the firing still succeeds
		log.Warn("delivery failed: ", err)
	}

	e.handleSuccessfulFiring(ctx, job, log)
}

func (e *Engine) buildArtifact(ctx context.Context, job *models.ScheduledMailJob) ([]byte, error) {
	var params map[string]interface{}
	if len(job.ReportParameters) > 0 {
		if err := json.Unmarshal(job.ReportParameters, &params); err != nil {
			return nil, err
		}
	}

	data, err := e.collector.Collect(ctx, job.ReportTypeID, params)
	if err != nil {
		return nil, err
	}
	if job.ReportName != "" {
		data.Metadata.ReportName = job.ReportName
	}
	return e.renderer.Render(data, job.ReportFormat)
}

func (e *Engine) handleSuccessfulFiring(ctx context.Context, job *models.ScheduledMailJob, log *logrus.Entry) {
	if !job.IsRecurring {
		if err := e.store.UpdateStatus(ctx, job.ID, models.JobStatusCompleted, nil); err != nil {
			log.Error("status update failed: ", err)
			return
		}
		log.Info("one-shot job completed")
		return
	}
	e.rearmRecurring(ctx, job, log)
}

// handleFailedFiring applies the failure transition: a one-shot job becomes
// failed, a recurring job keeps its future occurrences armed.
func (e *Engine) handleFailedFiring(ctx context.Context, job *models.ScheduledMailJob, log *logrus.Entry) {
	if !job.IsRecurring {
		if err := e.store.UpdateStatus(ctx, job.ID, models.JobStatusFailed, nil); err != nil {
			log.Error("status update failed: ", err)
		}
		return
	}
	e.rearmRecurring(ctx, job, log)
}

func (e *Engine) rearmRecurring(ctx context.Context, job *models.ScheduledMailJob, log *logrus.Entry) {
	trigger, err := TriggerForJob(job, e.Now(), e.loc)
	var next time.Time
	ok := false
	if err == nil {
		next, ok = trigger.Next(e.Now())
	}
	if !ok {
		// recurrence exhausted, close the job out
		if err := e.store.UpdateStatus(ctx, job.ID, models.JobStatusCompleted, nil); err != nil {
			log.Error("status update failed: ", err)
		}
		log.Info("recurrence exhausted, job completed")
		return
	}

	if err := e.store.UpdateStatus(ctx, job.ID, models.JobStatusScheduled, &next); err != nil {
		log.Error("status update failed, not re-arming: ", err)
		return
	}

	if !e.rearmAt(job.ID, next) {
		log.Info("job cancelled during firing, not re-arming")
		return
	}
	log.WithField("next_fire_at", next.Format(time.RFC3339)).Info("recurring job re-armed")
}

func (e *Engine) clearInflight(jobID uint) {
	e.mu.Lock()
	delete(e.inflight, jobID)
	delete(e.cancelled, jobID)
	e.mu.Unlock()
}
