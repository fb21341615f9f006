package place

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vodplace/dataset"
)

func _solution(t *testing.T, p *dataset.Problem, text string) *dataset.Placement {
	pl, err := dataset.ParseSolution(strings.NewReader(text), p)
	require.NoError(t, err)
	return pl
}

func TestValidateOk(t *testing.T) {
	p := _parseExample(t)
	for _, name := range Names() {
		pl := _place(t, name, p)
		assert.Empty(t, Validate(p, pl), name)
	}
	assert.Empty(t, Validate(p, dataset.NewPlacement(p)))
}

func TestValidateMultiHomed(t *testing.T) {
	p := _parseExample(t)
	pl := _solution(t, p, "2\n0 1\n1 1\n")
	vs := Validate(p, pl)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0], "video 1 in caches 0 and 1")
}

func TestValidateOverCapacity(t *testing.T) {
	p := _parseExample(t)
	pl := _solution(t, p, "1\n0 4\n")
	vs := Validate(p, pl)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0], "over capacity 110/100MB")
}

func TestValidateDuplicate(t *testing.T) {
	p := _parseExample(t)
	pl := _solution(t, p, "1\n0 1 1\n")
	vs := Validate(p, pl)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0], "lists video 1 twice")
}

func TestValidateManyViolations(t *testing.T) {
	p := _parseExample(t)
	// video 4 overruns cache 0 and video 1 shows up in two caches
	pl := _solution(t, p, "2\n0 4 1\n1 1\n")
	vs := Validate(p, pl)
	assert.Len(t, vs, 2)
}
