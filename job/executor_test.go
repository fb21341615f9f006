package job

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bou.ke/monkey"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vodplace/dataset"
	"vodplace/place"
	"vodplace/score"
)

const _exampleText = "5 2 4 3 100\n" +
	"50 50 80 30 110\n" +
	"1000 3\n0 100\n2 200\n1 300\n" +
	"500 0\n" +
	"3 0 1500\n0 1 1000\n4 0 500\n1 0 1000\n"

func _parseExample(t *testing.T) *dataset.Problem {
	p, err := dataset.ParseBytes([]byte(_exampleText))
	require.NoError(t, err)
	p.Name = "example"
	return p
}

func TestExecuteStrategy(t *testing.T) {
	p := _parseExample(t)
	res, err := Execute(p, &Options{Strategy: "sizefirst"})
	require.NoError(t, err)
	assert.Equal(t, "sizefirst", res.Strategy)
	assert.Equal(t, int64(512500), res.Score.Score)
	assert.Equal(t, 0, res.Moves)
}

func TestExecuteRefine(t *testing.T) {
	p := _parseExample(t)
	res, err := Execute(p, &Options{Strategy: "sizefirst", Refine: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Moves)
	assert.Equal(t, int64(562500), res.Score.Score)
}

func TestExecuteAuto(t *testing.T) {
	p := _parseExample(t)
	res, err := Execute(p, &Options{Strategy: StrategyAuto})
	require.NoError(t, err)
	assert.Equal(t, "demand", res.Strategy)
	assert.Equal(t, int64(562500), res.Score.Score)
}

func TestExecuteOutput(t *testing.T) {
	p := _parseExample(t)
	root, err := ioutil.TempDir("", "vodplace-job-test")
	require.NoError(t, err)
	defer os.RemoveAll(root)

	out := filepath.Join(root, "example.out")
	res, err := Execute(p, &Options{Strategy: "demand", OutputPath: out, WorkDir: root})
	require.NoError(t, err)

	// lock file stays behind in the workdir
	_, serr := os.Stat(filepath.Join(root, p.Fingerprint+".lock"))
	assert.NoError(t, serr)

	pl, err := dataset.ParseSolutionFile(out, p)
	require.NoError(t, err)
	assert.Empty(t, place.Validate(p, pl))
	assert.Equal(t, res.Score.Score, score.Evaluate(p, pl).Score)
}

func TestExecuteUnknownStrategy(t *testing.T) {
	p := _parseExample(t)
	_, err := Execute(p, &Options{Strategy: "annealing"})
	require.Error(t, err)
	assert.Equal(t, place.ErrUnknownStrategy, errors.Cause(err))
}

func TestApplyDone(t *testing.T) {
	fixed := time.Unix(1500000000, 0)
	patch := monkey.Patch(time.Now, func() time.Time { return fixed })
	defer patch.Unpatch()

	p := _parseExample(t)
	j := New(p.Fingerprint, "demand", false)
	assert.NotEmpty(t, j.ID)
	assert.Equal(t, StatePending, j.State)
	assert.Equal(t, fixed, j.CreateTime)

	var states []StateType
	res := Apply(j, p, &Options{Strategy: j.Strategy, OnState: func(s StateType) {
		states = append(states, s)
	}})
	require.NotNil(t, res)
	assert.Equal(t, []StateType{StatePlacing, StateScoring, StateDone}, states)
	assert.Equal(t, StateDone, j.State)
	assert.Equal(t, int64(562500), j.Score)
	assert.Equal(t, fixed, j.UpdateTime)
	assert.Equal(t, int64(0), j.Elapsed)
	assert.Empty(t, j.Err)
}

func TestApplyFail(t *testing.T) {
	p := _parseExample(t)
	j := New(p.Fingerprint, "annealing", false)
	res := Apply(j, p, &Options{Strategy: j.Strategy})
	assert.Nil(t, res)
	assert.Equal(t, StateFail, j.State)
	assert.NotEmpty(t, j.Err)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StateDone))
	assert.True(t, IsTerminal(StateFail))
	assert.False(t, IsTerminal(StatePending))
	assert.False(t, IsTerminal(StateRefining))
}
