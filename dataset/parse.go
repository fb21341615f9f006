package dataset

import (
	"bufio"
	"bytes"
	errs "errors"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aviddiviner/go-murmur"
	"github.com/pkg/errors"
)

// errors of dataset parsing.
var (
	ErrTruncated = errs.New("dataset truncated")
	ErrBadRow    = errs.New("malformed dataset row")
	ErrIDRange   = errs.New("id out of range")
)

const maxRowBytes = 16 * 1024 * 1024

// Fingerprint hashes raw dataset bytes into a short stable hex id.
func Fingerprint(raw []byte) string {
	seed := 0xdeadbeef * uint32(len(raw))
	return fmt.Sprintf("%08x", murmur.MurmurHash2(raw, seed))
}

// liner walks a dataset row by row, skipping blank rows and keeping the
// current line number for error reporting.
type liner struct {
	sc   *bufio.Scanner
	line int
}

func (l *liner) next() ([]string, error) {
	for l.sc.Scan() {
		l.line++
		fields := strings.Fields(l.sc.Text())
		if len(fields) == 0 {
			continue
		}
		return fields, nil
	}
	if err := l.sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read line %d", l.line+1)
	}
	return nil, errors.Wrapf(ErrTruncated, "after line %d", l.line)
}

func (l *liner) ints(want int) ([]int, error) {
	if want == 0 {
		return nil, nil
	}
	fields, err := l.next()
	if err != nil {
		return nil, err
	}
	if len(fields) != want {
		return nil, errors.Wrapf(ErrBadRow, "line %d: want %d fields got %d", l.line, want, len(fields))
	}
	ns := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(ErrBadRow, "line %d: field %q is not an integer", l.line, f)
		}
		if n < 0 {
			return nil, errors.Wrapf(ErrBadRow, "line %d: field %q is negative", l.line, f)
		}
		ns[i] = n
	}
	return ns, nil
}

// ParseBytes parses one dataset in the contest text format and fingerprints
// the raw bytes. Format: one header row `V E R C X`, one row of V video
// sizes, E endpoint blocks (`LD K` then K rows `cache latency`), R request
// rows `video endpoint requests`.
func ParseBytes(raw []byte) (*Problem, error) {
	l := &liner{sc: bufio.NewScanner(bytes.NewReader(raw))}
	l.sc.Buffer(make([]byte, 64*1024), maxRowBytes)
	header, err := l.ints(5)
	if err != nil {
		return nil, err
	}
	p := &Problem{
		Fingerprint:   Fingerprint(raw),
		VideoCount:    header[0],
		EndpointCount: header[1],
		DemandCount:   header[2],
		CacheCount:    header[3],
		CacheCapacity: header[4],
	}
	if p.VideoSizes, err = l.ints(p.VideoCount); err != nil {
		return nil, err
	}
	p.Endpoints = make([]*Endpoint, 0, p.EndpointCount)
	for i := 0; i < p.EndpointCount; i++ {
		head, err := l.ints(2)
		if err != nil {
			return nil, err
		}
		ep := &Endpoint{
			ID:             i,
			DCLatency:      head[0],
			CacheLatencies: make(map[int]int, head[1]),
		}
		for j := 0; j < head[1]; j++ {
			row, err := l.ints(2)
			if err != nil {
				return nil, err
			}
			if row[0] >= p.CacheCount {
				return nil, errors.Wrapf(ErrIDRange, "line %d: cache %d of %d", l.line, row[0], p.CacheCount)
			}
			ep.CacheLatencies[row[0]] = row[1]
		}
		ep.Nearest = make([]CacheLatency, 0, len(ep.CacheLatencies))
		for cid, lat := range ep.CacheLatencies {
			ep.Nearest = append(ep.Nearest, CacheLatency{Cache: cid, Latency: lat})
		}
		sort.Sort(byLatency(ep.Nearest))
		p.Endpoints = append(p.Endpoints, ep)
	}
	p.Demands = make([]Demand, 0, p.DemandCount)
	for i := 0; i < p.DemandCount; i++ {
		row, err := l.ints(3)
		if err != nil {
			return nil, err
		}
		if row[0] >= p.VideoCount {
			return nil, errors.Wrapf(ErrIDRange, "line %d: video %d of %d", l.line, row[0], p.VideoCount)
		}
		if row[1] >= p.EndpointCount {
			return nil, errors.Wrapf(ErrIDRange, "line %d: endpoint %d of %d", l.line, row[1], p.EndpointCount)
		}
		p.Demands = append(p.Demands, Demand{Video: row[0], Endpoint: row[1], Requests: row[2]})
	}
	return p, nil
}

// Parse reads one dataset from r.
func Parse(r io.Reader) (*Problem, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ParseBytes(raw)
}

// ParseFile parses the dataset file at path. The problem name is the base
// name without extension.
func ParseFile(path string) (*Problem, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset %s", path)
	}
	p, err := ParseBytes(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parse dataset %s", path)
	}
	p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return p, nil
}
