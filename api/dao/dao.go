// Package dao persists datasets, jobs and solutions in an embedded
// leveldb store.
package dao

import (
	"bytes"
	"encoding/gob"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"vodplace/config"
	"vodplace/pkg/dir"
)

// key prefixes inside the meta store.
const (
	prefixDataset  = "dataset/"
	prefixJob      = "job/"
	prefixSolution = "solution/"
)

// New create new dao layer
func New(cfg *config.ServerConfig) *Dao {
	if err := dir.MkDirAll(cfg.Data); err != nil {
		panic(err)
	}
	db, err := leveldb.OpenFile(filepath.Join(cfg.Data, "meta"), nil)
	if err != nil {
		panic(err)
	}
	return &Dao{db: db}
}

// Dao is the dao level abstraction
type Dao struct {
	db *leveldb.DB
}

// Close closes the embedded store.
func (d *Dao) Close() error {
	return d.db.Close()
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, errors.Wrap(err, "gob encode")
	}
	return buf.Bytes(), nil
}

func decode(raw []byte, v interface{}) error {
	return errors.Wrap(gob.NewDecoder(bytes.NewReader(raw)).Decode(v), "gob decode")
}
