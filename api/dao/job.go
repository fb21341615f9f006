package dao

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"vodplace/api/model"
	"vodplace/job"
)

// CreateJob stores a fresh job record.
func (d *Dao) CreateJob(j *job.Job) error {
	key := []byte(prefixJob + j.ID)
	if _, err := d.db.Get(key, nil); err == nil {
		return model.ErrConflict
	} else if err != leveldb.ErrNotFound {
		return errors.Wrap(err, "check job")
	}
	return d.putJob(key, j)
}

// UpdateJob overwrites the job record with its current state.
func (d *Dao) UpdateJob(j *job.Job) error {
	return d.putJob([]byte(prefixJob+j.ID), j)
}

func (d *Dao) putJob(key []byte, j *job.Job) error {
	raw, err := encode(j)
	if err != nil {
		return err
	}
	return errors.Wrap(d.db.Put(key, raw, nil), "put job")
}

// GetJob loads one job by id.
func (d *Dao) GetJob(id string) (*job.Job, error) {
	raw, err := d.db.Get([]byte(prefixJob+id), nil)
	if err == leveldb.ErrNotFound {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get job")
	}
	j := new(job.Job)
	if err = decode(raw, j); err != nil {
		return nil, err
	}
	return j, nil
}

// GetJobs lists every job ordered by id.
func (d *Dao) GetJobs() (js []*job.Job, err error) {
	iter := d.db.NewIterator(util.BytesPrefix([]byte(prefixJob)), nil)
	defer iter.Release()
	for iter.Next() {
		j := new(job.Job)
		if err = decode(iter.Value(), j); err != nil {
			return
		}
		js = append(js, j)
	}
	err = errors.Wrap(iter.Error(), "iter jobs")
	return
}
