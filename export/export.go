// Package export publishes placements to redis so that edge routers
// can look up which cache server carries which video.
package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"

	"vodplace/dataset"
	"vodplace/pkg/log"
)

// Publisher pushes placements into redis over a shared pool.
type Publisher struct {
	pool *redis.Pool
}

// New builds a publisher for the given redis address.
func New(addr string) *Publisher {
	return &Publisher{
		pool: &redis.Pool{
			MaxIdle:     3,
			IdleTimeout: 240 * time.Second,
			Dial: func() (redis.Conn, error) {
				return redis.Dial("tcp", addr,
					redis.DialConnectTimeout(time.Second),
					redis.DialReadTimeout(time.Second),
					redis.DialWriteTimeout(time.Second))
			},
		},
	}
}

// Ping probes the redis side.
func (p *Publisher) Ping() error {
	conn := p.pool.Get()
	defer conn.Close()
	_, err := conn.Do("PING")
	return errors.Wrap(err, "ping redis")
}

// Close releases the pool.
func (p *Publisher) Close() error {
	return p.pool.Close()
}

// Publish writes the placement and its score under the dataset
// fingerprint. Every key is rewritten inside one MULTI block, so
// republishing the same dataset stays idempotent.
func (p *Publisher) Publish(prob *dataset.Problem, pl *dataset.Placement, score int64) (err error) {
	conn := p.pool.Get()
	defer conn.Close()

	fp := prob.Fingerprint
	if err = conn.Send("MULTI"); err != nil {
		return errors.Wrap(err, "publish MULTI")
	}
	del := redis.Args{}.Add(indexKey(fp)).Add(scoreKey(fp))
	for c := 0; c < prob.CacheCount; c++ {
		del = del.Add(cacheKey(fp, c))
	}
	if err = conn.Send("DEL", del...); err != nil {
		return errors.Wrap(err, "publish DEL")
	}

	var used int
	for c := 0; c < pl.CacheCount; c++ {
		vids := pl.Videos(c)
		if len(vids) == 0 {
			continue
		}
		sorted := append([]int(nil), vids...)
		sort.Ints(sorted)
		args := redis.Args{}.Add(cacheKey(fp, c))
		for _, v := range sorted {
			args = args.Add(v)
		}
		if err = conn.Send("RPUSH", args...); err != nil {
			return errors.Wrap(err, "publish RPUSH")
		}
		if err = conn.Send("RPUSH", indexKey(fp), c); err != nil {
			return errors.Wrap(err, "publish RPUSH index")
		}
		used++
	}
	if err = conn.Send("SET", scoreKey(fp), score); err != nil {
		return errors.Wrap(err, "publish SET score")
	}
	if _, err = conn.Do("EXEC"); err != nil {
		return errors.Wrap(err, "publish EXEC")
	}
	log.Infof("published dataset %s: %d caches score %d", fp, used, score)
	return
}

func cacheKey(fp string, cache int) string {
	return fmt.Sprintf("vodplace:%s:cache:%d", fp, cache)
}

func indexKey(fp string) string {
	return fmt.Sprintf("vodplace:%s:caches", fp)
}

func scoreKey(fp string) string {
	return fmt.Sprintf("vodplace:%s:score", fp)
}
