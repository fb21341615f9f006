// Package job runs the solve pipeline of one dataset: place, refine,
// validate, score and persist the submission.
package job

import (
	"time"

	"github.com/pborman/uuid"
)

// Job is the json-encodable solve order of one dataset.
type Job struct {
	ID       string `json:"id"`
	Dataset  string `json:"dataset"`
	Strategy string `json:"strategy"`
	Refine   bool   `json:"refine"`

	State   StateType `json:"state"`
	Score   int64     `json:"score"`
	Moves   int       `json:"moves"`
	Elapsed int64     `json:"elapsed_ms"`
	Err     string    `json:"error,omitempty"`

	CreateTime time.Time `json:"create_time"`
	UpdateTime time.Time `json:"update_time"`
}

// New creates a pending job for the dataset fingerprint.
func New(dataset, strategy string, refine bool) *Job {
	now := time.Now()
	return &Job{
		ID:         uuid.NewRandom().String(),
		Dataset:    dataset,
		Strategy:   strategy,
		Refine:     refine,
		State:      StatePending,
		CreateTime: now,
		UpdateTime: now,
	}
}

// SetState moves the job into the given state.
func (j *Job) SetState(s StateType) {
	j.State = s
	j.UpdateTime = time.Now()
}
