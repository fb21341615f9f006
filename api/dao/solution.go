package dao

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"vodplace/api/model"
)

// PutSolution stores the submission of a finished job, overwriting a
// rerun of the same job.
func (d *Dao) PutSolution(sol *model.Solution) error {
	raw, err := encode(sol)
	if err != nil {
		return err
	}
	return errors.Wrap(d.db.Put([]byte(prefixSolution+sol.JobID), raw, nil), "put solution")
}

// GetSolution loads the submission of one job.
func (d *Dao) GetSolution(jobID string) (*model.Solution, error) {
	raw, err := d.db.Get([]byte(prefixSolution+jobID), nil)
	if err == leveldb.ErrNotFound {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get solution")
	}
	sol := new(model.Solution)
	if err = decode(raw, sol); err != nil {
		return nil, err
	}
	return sol, nil
}
