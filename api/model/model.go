package model

import (
	"fmt"
	"time"

	"vodplace/job"
	"vodplace/place"
)

// ParamDataset is be used to upload a new dataset
type ParamDataset struct {
	Name string `json:"name"`
	Text string `json:"text" validate:"required"`
}

// Validate will check if the dataset param is right enough.
func (pd *ParamDataset) Validate() error {
	if pd.Text == "" {
		return fmt.Errorf("error: dataset text must not be empty")
	}
	return nil
}

// ParamJob is be used to order a solve of one stored dataset
type ParamJob struct {
	Dataset  string `json:"dataset" validate:"required"`
	Strategy string `json:"strategy"`
	Refine   *bool  `json:"refine"`
}

// Validate will check if the job param is right enough.
func (pj *ParamJob) Validate() error {
	if pj.Dataset == "" {
		return fmt.Errorf("error: dataset fingerprint required")
	}
	if pj.Strategy == "" || pj.Strategy == job.StrategyAuto {
		return nil
	}
	_, err := place.Get(pj.Strategy)
	return err
}

// QueryPage is the pagenation binder.
type QueryPage struct {
	PageNum   int `form:"pn,default=1" validate:"gt=0"`
	PageCount int `form:"pc,default=1000" validate:"gt=0"`
}

// Bounds returns the upper and lower bounds begins with 0 for this query path.
func (p *QueryPage) Bounds() (int, int) {
	return p.PageCount * (p.PageNum - 1), p.PageCount * p.PageNum
}

// Dataset is the json view of one stored dataset. Raw carries the
// original file body for the solver and stays out of the json.
type Dataset struct {
	Fingerprint   string `json:"fingerprint"`
	Name          string `json:"name"`
	Videos        int    `json:"videos"`
	Endpoints     int    `json:"endpoints"`
	Demands       int    `json:"demands"`
	Caches        int    `json:"caches"`
	Capacity      int    `json:"capacity_mb"`
	TotalRequests int64  `json:"total_requests"`

	Raw        []byte    `json:"-"`
	CreateTime time.Time `json:"create_time"`
}

// Solution is the json view of one computed placement.
type Solution struct {
	JobID      string    `json:"job_id"`
	Dataset    string    `json:"dataset"`
	Strategy   string    `json:"strategy"`
	Score      int64     `json:"score"`
	Text       string    `json:"text"`
	CreateTime time.Time `json:"create_time"`
}
