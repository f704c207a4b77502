package model

import "time"

// JobStatus is the lifecycle state of an asynchronous scan
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// ScanJob is a scan submitted through the HTTP API
type ScanJob struct {
	ID        string      `json:"id"`
	Status    JobStatus   `json:"status"`
	Report    *ScanReport `json:"report,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// IsDone reports whether the job reached a terminal state
func (j *ScanJob) IsDone() bool {
	return j.Status == JobSucceeded || j.Status == JobFailed
}
