package service

import (
	"time"

	"vodplace/api/model"
	"vodplace/dataset"
	"vodplace/pkg/log"
)

// CreateDataset parses and stores a new dataset.
func (s *Service) CreateDataset(p *model.ParamDataset) (*model.Dataset, error) {
	raw := []byte(p.Text)
	prob, err := dataset.ParseBytes(raw)
	if err != nil {
		return nil, err
	}
	name := p.Name
	if name == "" {
		name = "dataset-" + prob.Fingerprint
	}
	ds := &model.Dataset{
		Fingerprint:   prob.Fingerprint,
		Name:          name,
		Videos:        prob.VideoCount,
		Endpoints:     prob.EndpointCount,
		Demands:       prob.DemandCount,
		Caches:        prob.CacheCount,
		Capacity:      prob.CacheCapacity,
		TotalRequests: prob.TotalRequests(),
		Raw:           raw,
		CreateTime:    time.Now(),
	}
	if err = s.d.CreateDataset(ds); err != nil {
		return nil, err
	}
	log.Infof("dataset %s (%s) stored: %d videos %d endpoints %d demands",
		ds.Fingerprint, ds.Name, ds.Videos, ds.Endpoints, ds.Demands)
	return ds, nil
}

// GetDataset by given fingerprint
func (s *Service) GetDataset(fp string) (*model.Dataset, error) {
	return s.d.GetDataset(fp)
}

// GetDatasets returns one page of stored datasets.
func (s *Service) GetDatasets(q *model.QueryPage) ([]*model.Dataset, error) {
	dss, err := s.d.GetDatasets()
	if err != nil {
		return nil, err
	}
	lo, hi := q.Bounds()
	if lo >= len(dss) {
		return nil, nil
	}
	if hi > len(dss) {
		hi = len(dss)
	}
	return dss[lo:hi], nil
}

// RemoveDataset deletes one dataset record.
func (s *Service) RemoveDataset(fp string) error {
	return s.d.RemoveDataset(fp)
}
