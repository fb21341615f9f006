package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// WriteSolution writes the submission text: first row the number of used
// caches, then one row `cache v1 v2 ...` per non empty cache with videos
// ascending.
func WriteSolution(w io.Writer, pl *Placement) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", pl.UsedCaches())
	for c := 0; c < pl.CacheCount; c++ {
		vs := pl.Videos(c)
		if len(vs) == 0 {
			continue
		}
		sorted := append([]int(nil), vs...)
		sort.Ints(sorted)
		bw.WriteString(strconv.Itoa(c))
		for _, v := range sorted {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(v))
		}
		bw.WriteByte('\n')
	}
	return errors.WithStack(bw.Flush())
}

// WriteSolutionFile writes the submission to path.
func WriteSolutionFile(path string, pl *Placement) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create solution %s", path)
	}
	defer f.Close()
	return errors.Wrapf(WriteSolution(f, pl), "write solution %s", path)
}

// ParseSolution reads a submission back. Capacity overruns and duplicate
// rows load fine so they stay visible to validating, only unknown ids fail.
func ParseSolution(r io.Reader, p *Problem) (*Placement, error) {
	pl := NewPlacement(p)
	l := &liner{sc: bufio.NewScanner(r)}
	l.sc.Buffer(make([]byte, 64*1024), maxRowBytes)
	head, err := l.ints(1)
	if err != nil {
		return nil, err
	}
	for i := 0; i < head[0]; i++ {
		fields, err := l.next()
		if err != nil {
			return nil, err
		}
		row := make([]int, len(fields))
		for j, f := range fields {
			if row[j], err = strconv.Atoi(f); err != nil {
				return nil, errors.Wrapf(ErrBadRow, "line %d: field %q is not an integer", l.line, f)
			}
		}
		cache := row[0]
		if cache < 0 || cache >= p.CacheCount {
			return nil, errors.Wrapf(ErrIDRange, "line %d: cache %d of %d", l.line, cache, p.CacheCount)
		}
		for _, v := range row[1:] {
			if v < 0 || v >= p.VideoCount {
				return nil, errors.Wrapf(ErrIDRange, "line %d: video %d of %d", l.line, v, p.VideoCount)
			}
			pl.put(cache, v)
		}
	}
	return pl, nil
}

// ParseSolutionFile reads the submission at path.
func ParseSolutionFile(path string, p *Problem) (*Placement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open solution %s", path)
	}
	defer f.Close()
	pl, err := ParseSolution(f, p)
	return pl, errors.Wrapf(err, "parse solution %s", path)
}

// WriteProblem writes p back in the dataset text format. Endpoint cache
// rows come out ordered by cache id.
func WriteProblem(w io.Writer, p *Problem) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d %d %d\n", p.VideoCount, p.EndpointCount, p.DemandCount, p.CacheCount, p.CacheCapacity)
	for i, s := range p.VideoSizes {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.Itoa(s))
	}
	bw.WriteByte('\n')
	for _, ep := range p.Endpoints {
		fmt.Fprintf(bw, "%d %d\n", ep.DCLatency, len(ep.CacheLatencies))
		rows := make([]CacheLatency, 0, len(ep.CacheLatencies))
		for cid, lat := range ep.CacheLatencies {
			rows = append(rows, CacheLatency{Cache: cid, Latency: lat})
		}
		sort.Sort(byCache(rows))
		for _, cl := range rows {
			fmt.Fprintf(bw, "%d %d\n", cl.Cache, cl.Latency)
		}
	}
	for _, d := range p.Demands {
		fmt.Fprintf(bw, "%d %d %d\n", d.Video, d.Endpoint, d.Requests)
	}
	return errors.WithStack(bw.Flush())
}

// WriteProblemFile writes the dataset to path.
func WriteProblemFile(path string, p *Problem) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create dataset %s", path)
	}
	defer f.Close()
	return errors.Wrapf(WriteProblem(f, p), "write dataset %s", path)
}

type byCache []CacheLatency

func (b byCache) Len() int           { return len(b) }
func (b byCache) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
func (b byCache) Less(i, j int) bool { return b[i].Cache < b[j].Cache }
