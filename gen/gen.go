// Package gen builds random problem instances with a plausible shape for
// benchmarks and fixtures.
package gen

import (
	"bytes"
	"math/rand"
	"strings"

	"github.com/Pallinder/go-randomdata"

	"vodplace/dataset"
)

// Options shape one generated problem. Zero values fall back to defaults.
type Options struct {
	Seed      int64
	Videos    int
	Endpoints int
	Caches    int
	// Capacity of every cache in MB.
	Capacity int
	// Demands is the number of request rows.
	Demands int
	// MaxSize bounds video sizes in MB.
	MaxSize int
	// MaxLatency bounds datacenter latencies in msec.
	MaxLatency int
}

const maxRequests = 2000

// zipf skew of the demand distribution, a few videos soak up most rows.
const zipfS = 1.2

func (o Options) withDefaults() Options {
	if o.Videos <= 0 {
		o.Videos = 100
	}
	if o.Endpoints <= 0 {
		o.Endpoints = 10
	}
	if o.Caches <= 0 {
		o.Caches = 10
	}
	if o.Capacity <= 0 {
		o.Capacity = 500
	}
	if o.Demands <= 0 {
		o.Demands = 200
	}
	if o.MaxSize <= 0 {
		o.MaxSize = 200
	}
	if o.MaxLatency < 2 {
		o.MaxLatency = 1000
	}
	return o
}

// Generate builds one random problem: zipf skewed demand over the videos,
// endpoints wired to about half the caches with latencies usually below
// their datacenter one. The same seed yields the same problem.
func Generate(opt Options) (*dataset.Problem, error) {
	opt = opt.withDefaults()
	r := rand.New(rand.NewSource(opt.Seed))
	p := &dataset.Problem{
		VideoCount:    opt.Videos,
		EndpointCount: opt.Endpoints,
		DemandCount:   opt.Demands,
		CacheCount:    opt.Caches,
		CacheCapacity: opt.Capacity,
	}
	p.VideoSizes = make([]int, opt.Videos)
	for i := range p.VideoSizes {
		p.VideoSizes[i] = 1 + r.Intn(opt.MaxSize)
	}
	for e := 0; e < opt.Endpoints; e++ {
		// upper half of the latency range so caches usually win
		dc := opt.MaxLatency/2 + r.Intn(opt.MaxLatency/2)
		ep := &dataset.Endpoint{
			ID:             e,
			DCLatency:      dc,
			CacheLatencies: make(map[int]int),
		}
		for c := 0; c < opt.Caches; c++ {
			if r.Intn(2) == 0 {
				continue
			}
			ep.CacheLatencies[c] = 1 + r.Intn(dc+dc/4)
		}
		p.Endpoints = append(p.Endpoints, ep)
	}
	z := rand.NewZipf(r, zipfS, 1, uint64(opt.Videos-1))
	for i := 0; i < opt.Demands; i++ {
		p.Demands = append(p.Demands, dataset.Demand{
			Video:    int(z.Uint64()),
			Endpoint: r.Intn(opt.Endpoints),
			Requests: 1 + r.Intn(maxRequests),
		})
	}
	// render and read back so Nearest views and the fingerprint come out
	// exactly as a parse of the emitted file would
	var buf bytes.Buffer
	if err := dataset.WriteProblem(&buf, p); err != nil {
		return nil, err
	}
	out, err := dataset.ParseBytes(buf.Bytes())
	if err != nil {
		return nil, err
	}
	out.Name = strings.ToLower(randomdata.SillyName())
	return out, nil
}
