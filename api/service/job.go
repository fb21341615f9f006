package service

import (
	"bytes"
	"strings"
	"time"

	"vodplace/api/model"
	"vodplace/dataset"
	"vodplace/job"
	"vodplace/pkg/log"
	"vodplace/pkg/prom"
	"vodplace/score"
)

// CreateJob orders a solve of one stored dataset. Empty strategy and
// refine fall back to the server defaults.
func (s *Service) CreateJob(p *model.ParamJob) (*job.Job, error) {
	if _, err := s.d.GetDataset(p.Dataset); err != nil {
		return nil, err
	}
	strategy := p.Strategy
	if strategy == "" {
		strategy = s.cfg.Strategy
	}
	refine := s.cfg.Refine
	if p.Refine != nil {
		refine = *p.Refine
	}
	j := job.New(p.Dataset, strategy, refine)
	if err := s.d.CreateJob(j); err != nil {
		return nil, err
	}
	prom.JobIncr(j.State)
	select {
	case s.wake <- struct{}{}:
	default:
	}
	log.Infof("job %s ordered: dataset %s strategy %s refine %v", j.ID, j.Dataset, j.Strategy, j.Refine)
	return j, nil
}

// GetJob by given id
func (s *Service) GetJob(id string) (*job.Job, error) {
	return s.d.GetJob(id)
}

// GetJobs returns one page of jobs.
func (s *Service) GetJobs(q *model.QueryPage) ([]*job.Job, error) {
	js, err := s.d.GetJobs()
	if err != nil {
		return nil, err
	}
	lo, hi := q.Bounds()
	if lo >= len(js) {
		return nil, nil
	}
	if hi > len(js) {
		hi = len(js)
	}
	return js[lo:hi], nil
}

// GetSolution returns the stored submission of a finished job.
func (s *Service) GetSolution(jobID string) (*model.Solution, error) {
	return s.d.GetSolution(jobID)
}

// GetReport renders the human readable score report of a finished job.
func (s *Service) GetReport(jobID string) (string, error) {
	sol, err := s.d.GetSolution(jobID)
	if err != nil {
		return "", err
	}
	ds, err := s.d.GetDataset(sol.Dataset)
	if err != nil {
		return "", err
	}
	prob, err := dataset.ParseBytes(ds.Raw)
	if err != nil {
		return "", err
	}
	prob.Name = ds.Name
	pl, err := dataset.ParseSolution(strings.NewReader(sol.Text), prob)
	if err != nil {
		return "", err
	}
	r := score.Evaluate(prob, pl)
	var buf bytes.Buffer
	if err = score.WriteReport(&buf, prob, pl, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// jobManager drains pending jobs until the service closes.
func (s *Service) jobManager() {
	defer close(s.dead)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.wake:
		case <-time.After(pollInterval):
		}
		s.runPending()
	}
}

func (s *Service) runPending() {
	js, err := s.d.GetJobs()
	if err != nil {
		log.Errorf("job manager list jobs error:%v", err)
		return
	}
	for _, j := range js {
		select {
		case <-s.ctx.Done():
			return
		default:
		}
		if j.State != job.StatePending {
			continue
		}
		s.runJob(j)
	}
}

func (s *Service) runJob(j *job.Job) {
	ds, err := s.d.GetDataset(j.Dataset)
	if err != nil {
		s.failJob(j, err)
		return
	}
	prob, err := dataset.ParseBytes(ds.Raw)
	if err != nil {
		s.failJob(j, err)
		return
	}
	prob.Name = ds.Name

	res := job.Apply(j, prob, &job.Options{
		Strategy:     j.Strategy,
		Refine:       j.Refine,
		RefineBudget: time.Duration(s.cfg.RefineBudget) * time.Millisecond,
		WorkDir:      s.cfg.WorkDir,
		OnState: func(job.StateType) {
			if uerr := s.d.UpdateJob(j); uerr != nil {
				log.Errorf("update job %s error:%v", j.ID, uerr)
			}
		},
	})
	if uerr := s.d.UpdateJob(j); uerr != nil {
		log.Errorf("update job %s error:%v", j.ID, uerr)
	}
	if res == nil {
		return
	}

	var buf bytes.Buffer
	if err = dataset.WriteSolution(&buf, res.Placement); err != nil {
		log.Errorf("serialize solution of job %s error:%v", j.ID, err)
		return
	}
	sol := &model.Solution{
		JobID:      j.ID,
		Dataset:    j.Dataset,
		Strategy:   res.Strategy,
		Score:      res.Score.Score,
		Text:       buf.String(),
		CreateTime: time.Now(),
	}
	if err = s.d.PutSolution(sol); err != nil {
		log.Errorf("store solution of job %s error:%v", j.ID, err)
	}
}

func (s *Service) failJob(j *job.Job, cause error) {
	prom.JobDecr(j.State)
	j.Err = cause.Error()
	j.SetState(job.StateFail)
	prom.JobIncr(job.StateFail)
	if err := s.d.UpdateJob(j); err != nil {
		log.Errorf("update job %s error:%v", j.ID, err)
	}
	log.Errorf("job %s on dataset %s fail:%v", j.ID, j.Dataset, cause)
}
