package controllers

import (
	"context"
	"time"

	"fleetwatch/src/scheduler"
	"fleetwatch/src/schemas"
	"fleetwatch/src/utils"
)

const statusCacheTTL = 2 * time.Second

type Controller struct {
	Engine      *scheduler.Engine
	statusCache *utils.Cache[*schemas.SchedulerStatusResponse]
}

func NewController(engine *scheduler.Engine) *Controller {
	return &Controller{
		Engine:      engine,
		statusCache: utils.NewCache[*schemas.SchedulerStatusResponse](),
	}
}

// InitScheduler arms every stored job with status scheduled. Calling it again
// is a no-op for jobs already armed.
func (c *Controller) InitScheduler(ctx context.Context) (*schemas.SchedulerStatusResponse, error) {
	if err := c.Engine.Initialize(ctx); err != nil {
		return nil, err
	}
	c.statusCache.Clear()
	return c.SchedulerStatus(ctx)
}

func (c *Controller) SchedulerStatus(_ context.Context) (*schemas.SchedulerStatusResponse, error) {
	if cached, ok := c.statusCache.Get(); ok {
		return cached, nil
	}

	status := "idle"
	if c.Engine.Initialized() {
		status = "running"
	}
	resp := &schemas.SchedulerStatusResponse{
		IsInitialized: c.Engine.Initialized(),
		ActiveJobs:    c.Engine.ActiveCount(),
		Status:        status,
	}
	c.statusCache.Set(resp, statusCacheTTL)
	return resp, nil
}

// CancelJob disarms a pending job. A firing already in flight completes but
// does not re-arm.
func (c *Controller) CancelJob(_ context.Context, jobID uint) error {
	c.Engine.Cancel(jobID)
	c.statusCache.Clear()
	return nil
}
