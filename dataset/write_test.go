package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSolution(t *testing.T) {
	p := _parseExample(t)
	pl := NewPlacement(p)
	require.NoError(t, pl.Assign(0, 2))
	require.NoError(t, pl.Assign(1, 3))
	require.NoError(t, pl.Assign(1, 1))
	require.NoError(t, pl.Assign(2, 0))
	require.NoError(t, pl.Assign(2, 1))

	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, pl))
	assert.Equal(t, "3\n0 2\n1 1 3\n2 0 1\n", buf.String())
}

func TestWriteSolutionEmpty(t *testing.T) {
	p := _parseExample(t)
	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, NewPlacement(p)))
	assert.Equal(t, "0\n", buf.String())
}

func TestParseSolution(t *testing.T) {
	p := _parseExample(t)
	pl, err := ParseSolution(strings.NewReader("3\n0 2\n1 1 3\n2 0 1\n"), p)
	require.NoError(t, err)
	assert.Equal(t, 3, pl.UsedCaches())
	assert.True(t, pl.Has(0, 2))
	assert.True(t, pl.Has(1, 1))
	assert.True(t, pl.Has(1, 3))
	assert.True(t, pl.Has(2, 0))
	assert.True(t, pl.Has(2, 1))
	assert.Equal(t, 80, pl.Used(1))
}

func TestParseSolutionOverrun(t *testing.T) {
	p := _parseExample(t)
	// video 4 does not fit anywhere but the read back must not reject it,
	// validating reports it instead
	pl, err := ParseSolution(strings.NewReader("1\n0 4\n"), p)
	require.NoError(t, err)
	assert.True(t, pl.Has(0, 4))
	assert.Equal(t, 110, pl.Used(0))
}

func TestParseSolutionBad(t *testing.T) {
	p := _parseExample(t)
	cases := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrTruncated},
		{"missing rows", "2\n0 2\n", ErrTruncated},
		{"bad cache", "1\n9 2\n", ErrIDRange},
		{"bad video", "1\n0 9\n", ErrIDRange},
		{"alpha", "1\n0 x\n", ErrBadRow},
	}
	for _, tc := range cases {
		_, err := ParseSolution(strings.NewReader(tc.text), p)
		require.Error(t, err, tc.name)
		assert.Equal(t, tc.want, errors.Cause(err), tc.name)
	}
}

func TestWriteProblemRoundtrip(t *testing.T) {
	p := _parseExample(t)
	var buf bytes.Buffer
	require.NoError(t, WriteProblem(&buf, p))

	rp, err := ParseBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, p.VideoCount, rp.VideoCount)
	assert.Equal(t, p.CacheCapacity, rp.CacheCapacity)
	assert.Equal(t, p.VideoSizes, rp.VideoSizes)
	assert.Equal(t, p.Demands, rp.Demands)
	require.Len(t, rp.Endpoints, p.EndpointCount)
	for i, ep := range p.Endpoints {
		assert.Equal(t, ep.DCLatency, rp.Endpoints[i].DCLatency)
		assert.Equal(t, ep.CacheLatencies, rp.Endpoints[i].CacheLatencies)
		assert.Equal(t, ep.Nearest, rp.Endpoints[i].Nearest)
	}
}
