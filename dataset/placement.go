package dataset

import (
	errs "errors"
)

// errors of placement bookkeeping.
var (
	ErrNoCapacity  = errs.New("video does not fit in cache")
	ErrAssigned    = errs.New("video already assigned to cache")
	ErrNotAssigned = errs.New("video not assigned to cache")
	ErrBadCache    = errs.New("cache id out of range")
	ErrBadVideo    = errs.New("video id out of range")
)

// Placement assigns videos to caches with used capacity accounting. Create
// with NewPlacement, the zero value is not usable.
type Placement struct {
	CacheCount int
	Capacity   int
	sizes      []int
	videos     [][]int
	has        []map[int]bool
	used       []int
}

// NewPlacement creates an empty placement for p.
func NewPlacement(p *Problem) *Placement {
	pl := &Placement{
		CacheCount: p.CacheCount,
		Capacity:   p.CacheCapacity,
		sizes:      p.VideoSizes,
		videos:     make([][]int, p.CacheCount),
		has:        make([]map[int]bool, p.CacheCount),
		used:       make([]int, p.CacheCount),
	}
	for i := range pl.has {
		pl.has[i] = make(map[int]bool)
	}
	return pl
}

// Fits reports whether video still fits into cache.
func (pl *Placement) Fits(cache, video int) bool {
	return pl.used[cache]+pl.sizes[video] <= pl.Capacity
}

// Free returns the remaining capacity of cache in MB.
func (pl *Placement) Free(cache int) int {
	return pl.Capacity - pl.used[cache]
}

// Used returns the occupied capacity of cache in MB.
func (pl *Placement) Used(cache int) int {
	return pl.used[cache]
}

// Has reports whether cache holds video.
func (pl *Placement) Has(cache, video int) bool {
	return pl.has[cache][video]
}

// Videos returns the videos of cache in assign order. Callers must not
// modify the returned slice.
func (pl *Placement) Videos(cache int) []int {
	return pl.videos[cache]
}

// UsedCaches counts caches holding at least one video.
func (pl *Placement) UsedCaches() (n int) {
	for _, vs := range pl.videos {
		if len(vs) > 0 {
			n++
		}
	}
	return
}

// Assign puts video into cache, checking ids, capacity and duplication.
func (pl *Placement) Assign(cache, video int) error {
	if cache < 0 || cache >= pl.CacheCount {
		return ErrBadCache
	}
	if video < 0 || video >= len(pl.sizes) {
		return ErrBadVideo
	}
	if pl.has[cache][video] {
		return ErrAssigned
	}
	if !pl.Fits(cache, video) {
		return ErrNoCapacity
	}
	pl.put(cache, video)
	return nil
}

// put skips every check so submissions read back from disk stay loadable
// for validating, duplicate rows included.
func (pl *Placement) put(cache, video int) {
	pl.videos[cache] = append(pl.videos[cache], video)
	pl.has[cache][video] = true
	pl.used[cache] += pl.sizes[video]
}

// Unassign drops video from cache.
func (pl *Placement) Unassign(cache, video int) error {
	if cache < 0 || cache >= pl.CacheCount {
		return ErrBadCache
	}
	if video < 0 || video >= len(pl.sizes) {
		return ErrBadVideo
	}
	if !pl.has[cache][video] {
		return ErrNotAssigned
	}
	vs := pl.videos[cache]
	for i, v := range vs {
		if v == video {
			pl.videos[cache] = append(vs[:i], vs[i+1:]...)
			break
		}
	}
	delete(pl.has[cache], video)
	pl.used[cache] -= pl.sizes[video]
	return nil
}

// Clone copies the placement.
func (pl *Placement) Clone() *Placement {
	np := &Placement{
		CacheCount: pl.CacheCount,
		Capacity:   pl.Capacity,
		sizes:      pl.sizes,
		videos:     make([][]int, pl.CacheCount),
		has:        make([]map[int]bool, pl.CacheCount),
		used:       make([]int, pl.CacheCount),
	}
	copy(np.used, pl.used)
	for i := range pl.videos {
		np.videos[i] = append([]int(nil), pl.videos[i]...)
		np.has[i] = make(map[int]bool, len(pl.has[i]))
		for v := range pl.has[i] {
			np.has[i][v] = true
		}
	}
	return np
}
