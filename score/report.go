package score

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"vodplace/dataset"
)

// WriteReport writes a human readable summary of one scored placement.
func WriteReport(w io.Writer, p *dataset.Problem, pl *dataset.Placement, r *Result) error {
	bw := bufio.NewWriter(w)
	name := p.Name
	if name == "" {
		name = p.Fingerprint
	}
	fmt.Fprintf(bw, "dataset %s (%s): %d videos, %d endpoints, %d caches of %s\n",
		name, p.Fingerprint, p.VideoCount, p.EndpointCount, p.CacheCount,
		humanize.Bytes(uint64(p.CacheCapacity)*1000*1000))
	fmt.Fprintf(bw, "score %d\n", r.Score)
	if r.TotalRequests > 0 {
		fmt.Fprintf(bw, "requests: %d total, %d cache, %d origin (%.1f%% hit)\n",
			r.TotalRequests, r.ServedRequests, r.OriginRequests,
			float64(r.ServedRequests)*100/float64(r.TotalRequests))
		q50, q90, q99 := latencyQuantiles(p, pl)
		fmt.Fprintf(bw, "latency: mean %.1fms down to %.1fms, p50 %.0fms p90 %.0fms p99 %.0fms\n",
			r.MeanBefore, r.MeanAfter, q50, q90, q99)
	}
	var usedMB int64
	for _, cs := range r.PerCache {
		usedMB += int64(cs.UsedMB)
	}
	fmt.Fprintf(bw, "storage: %s of %s used over %d caches\n",
		humanize.Bytes(uint64(usedMB)*1000*1000),
		humanize.Bytes(uint64(p.CacheCount)*uint64(p.CacheCapacity)*1000*1000),
		pl.UsedCaches())
	for _, cs := range topCaches(r.PerCache, 5) {
		if cs.Requests == 0 && cs.Videos == 0 {
			continue
		}
		fmt.Fprintf(bw, "cache %d: %d videos, %s stored, %d requests, %dms saved, %s moved\n",
			cs.Cache, cs.Videos, humanize.Bytes(uint64(cs.UsedMB)*1000*1000),
			cs.Requests, cs.SavedMs, humanize.Bytes(uint64(cs.TrafficMB)*1000*1000))
	}
	return errors.WithStack(bw.Flush())
}

// latencyQuantiles computes request weighted p50, p90 and p99 of the
// effective latency under pl.
func latencyQuantiles(p *dataset.Problem, pl *dataset.Placement) (q50, q90, q99 float64) {
	var xs, ws []float64
	for _, d := range p.Demands {
		if d.Requests == 0 {
			continue
		}
		ep := p.Endpoints[d.Endpoint]
		lat := ep.DCLatency
		for _, cl := range ep.Nearest {
			if pl.Has(cl.Cache, d.Video) {
				if cl.Latency < lat {
					lat = cl.Latency
				}
				break
			}
		}
		xs = append(xs, float64(lat))
		ws = append(ws, float64(d.Requests))
	}
	if len(xs) == 0 {
		return
	}
	stat.SortWeighted(xs, ws)
	q50 = stat.Quantile(0.5, stat.Empirical, xs, ws)
	q90 = stat.Quantile(0.9, stat.Empirical, xs, ws)
	q99 = stat.Quantile(0.99, stat.Empirical, xs, ws)
	return
}

type bySaved []CacheStat

func (b bySaved) Len() int      { return len(b) }
func (b bySaved) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b bySaved) Less(i, j int) bool {
	if b[i].SavedMs != b[j].SavedMs {
		return b[i].SavedMs > b[j].SavedMs
	}
	return b[i].Cache < b[j].Cache
}

func topCaches(stats []CacheStat, n int) []CacheStat {
	top := append([]CacheStat(nil), stats...)
	sort.Sort(bySaved(top))
	if len(top) > n {
		top = top[:n]
	}
	return top
}
