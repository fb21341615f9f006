package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vodplace/job"
)

func TestParamDatasetValidate(t *testing.T) {
	assert.Error(t, (&ParamDataset{Name: "x"}).Validate())
	assert.NoError(t, (&ParamDataset{Text: "1 1 1 1 1\n"}).Validate())
}

func TestParamJobValidate(t *testing.T) {
	assert.Error(t, (&ParamJob{}).Validate())
	assert.NoError(t, (&ParamJob{Dataset: "cafebabe"}).Validate())
	assert.NoError(t, (&ParamJob{Dataset: "cafebabe", Strategy: job.StrategyAuto}).Validate())
	assert.NoError(t, (&ParamJob{Dataset: "cafebabe", Strategy: "demand"}).Validate())
	assert.Error(t, (&ParamJob{Dataset: "cafebabe", Strategy: "annealing"}).Validate())
}

func TestQueryPageBounds(t *testing.T) {
	q := &QueryPage{PageNum: 2, PageCount: 10}
	lo, hi := q.Bounds()
	assert.Equal(t, 10, lo)
	assert.Equal(t, 20, hi)
}
