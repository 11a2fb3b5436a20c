package schemas

// SchedulerStatusResponse reports the worker's scheduler engine state.
type SchedulerStatusResponse struct {
	IsInitialized bool   `json:"isInitialized"`
	ActiveJobs    int    `json:"activeJobs"`
	Status        string `json:"status"`
}
