package dataset

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const _exampleText = `5 2 4 3 100
50 50 80 30 110
1000 3
0 100
2 200
1 300
500 0
3 0 1500
0 1 1000
4 0 500
1 0 1000
`

func _parseExample(t *testing.T) *Problem {
	p, err := ParseBytes([]byte(_exampleText))
	require.NoError(t, err)
	return p
}

func TestParseBytesOk(t *testing.T) {
	p := _parseExample(t)
	assert.Equal(t, 5, p.VideoCount)
	assert.Equal(t, 2, p.EndpointCount)
	assert.Equal(t, 4, p.DemandCount)
	assert.Equal(t, 3, p.CacheCount)
	assert.Equal(t, 100, p.CacheCapacity)
	assert.Equal(t, []int{50, 50, 80, 30, 110}, p.VideoSizes)

	require.Len(t, p.Endpoints, 2)
	ep := p.Endpoints[0]
	assert.Equal(t, 1000, ep.DCLatency)
	assert.Equal(t, map[int]int{0: 100, 2: 200, 1: 300}, ep.CacheLatencies)
	assert.Equal(t, []CacheLatency{{0, 100}, {2, 200}, {1, 300}}, ep.Nearest)
	ep = p.Endpoints[1]
	assert.Equal(t, 500, ep.DCLatency)
	assert.Empty(t, ep.Nearest)

	require.Len(t, p.Demands, 4)
	assert.Equal(t, Demand{Video: 3, Endpoint: 0, Requests: 1500}, p.Demands[0])
	assert.Equal(t, Demand{Video: 1, Endpoint: 0, Requests: 1000}, p.Demands[3])
	assert.Equal(t, int64(4000), p.TotalRequests())
	assert.Len(t, p.Fingerprint, 8)
}

func TestParseFingerprintStable(t *testing.T) {
	p1 := _parseExample(t)
	p2 := _parseExample(t)
	assert.Equal(t, p1.Fingerprint, p2.Fingerprint)
	p3, err := ParseBytes([]byte(strings.Replace(_exampleText, "1500", "1501", 1)))
	require.NoError(t, err)
	assert.NotEqual(t, p1.Fingerprint, p3.Fingerprint)
}

func TestVideoDemands(t *testing.T) {
	p := _parseExample(t)
	vd := p.VideoDemands()
	require.Len(t, vd, 5)
	assert.Equal(t, []int{0}, vd[3])
	assert.Equal(t, []int{1}, vd[0])
	assert.Equal(t, []int{3}, vd[1])
	assert.Empty(t, vd[2])
}

func TestParseReader(t *testing.T) {
	p, err := Parse(strings.NewReader(_exampleText))
	require.NoError(t, err)
	assert.Equal(t, 5, p.VideoCount)
}

func TestParseBad(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrTruncated},
		{"short header", "5 2 4 3\n", ErrBadRow},
		{"alpha header", "a b c d e\n", ErrBadRow},
		{"no sizes", "5 2 4 3 100\n", ErrTruncated},
		{"short sizes", "5 2 4 3 100\n50 50\n", ErrBadRow},
		{"negative size", "5 2 4 3 100\n50 -50 80 30 110\n", ErrBadRow},
		{"cut endpoint", "5 2 4 3 100\n50 50 80 30 110\n1000 3\n0 100\n", ErrTruncated},
		{"cache range", "5 2 4 3 100\n50 50 80 30 110\n1000 1\n7 100\n", ErrIDRange},
		{"no demands", "1 1 1 1 100\n50\n1000 0\n", ErrTruncated},
		{"video range", "1 1 1 1 100\n50\n1000 0\n9 0 10\n", ErrIDRange},
		{"endpoint range", "1 1 1 1 100\n50\n1000 0\n0 9 10\n", ErrIDRange},
	}
	for _, tc := range cases {
		_, err := ParseBytes([]byte(tc.text))
		require.Error(t, err, tc.name)
		assert.Equal(t, tc.want, errors.Cause(err), tc.name)
	}
}
