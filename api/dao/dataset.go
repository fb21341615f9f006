package dao

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"vodplace/api/model"
)

// CreateDataset stores a new dataset and refuses to overwrite one.
func (d *Dao) CreateDataset(ds *model.Dataset) error {
	key := []byte(prefixDataset + ds.Fingerprint)
	if _, err := d.db.Get(key, nil); err == nil {
		return model.ErrConflict
	} else if err != leveldb.ErrNotFound {
		return errors.Wrap(err, "check dataset")
	}
	raw, err := encode(ds)
	if err != nil {
		return err
	}
	return errors.Wrap(d.db.Put(key, raw, nil), "put dataset")
}

// GetDataset loads one dataset by fingerprint.
func (d *Dao) GetDataset(fp string) (*model.Dataset, error) {
	raw, err := d.db.Get([]byte(prefixDataset+fp), nil)
	if err == leveldb.ErrNotFound {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get dataset")
	}
	ds := new(model.Dataset)
	if err = decode(raw, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// GetDatasets lists every stored dataset ordered by fingerprint.
func (d *Dao) GetDatasets() (dss []*model.Dataset, err error) {
	iter := d.db.NewIterator(util.BytesPrefix([]byte(prefixDataset)), nil)
	defer iter.Release()
	for iter.Next() {
		ds := new(model.Dataset)
		if err = decode(iter.Value(), ds); err != nil {
			return
		}
		dss = append(dss, ds)
	}
	err = errors.Wrap(iter.Error(), "iter datasets")
	return
}

// RemoveDataset deletes the dataset record.
func (d *Dao) RemoveDataset(fp string) error {
	key := []byte(prefixDataset + fp)
	if _, err := d.db.Get(key, nil); err == leveldb.ErrNotFound {
		return model.ErrNotFound
	} else if err != nil {
		return errors.Wrap(err, "check dataset")
	}
	return errors.Wrap(d.db.Delete(key, nil), "delete dataset")
}
