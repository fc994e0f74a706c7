// Package plancache keeps the latest hydrated day plan per date in redis so
// viewer reads don't have to rebuild the whole day from SQL. The cache is a
// pure accelerator: every miss or redis failure falls through to the store,
// and a nil *Cache is a valid no-op when redis is not configured.
package plancache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DenizcanArslan/VDTMSv2-sub001/planning"
	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

const (
	keyPrefix  = "vdtms:plan:"
	defaultTTL = 12 * time.Hour
	opTimeout  = 500 * time.Millisecond
)

type LogFunc func(format string, args ...any)

type Cache struct {
	rdb   *redis.Client
	ttl   time.Duration
	logFn LogFunc
}

func New(addr, password string, db int, logFn LogFunc) *Cache {
	if logFn == nil {
		logFn = log.Printf
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl:   defaultTTL,
		logFn: logFn,
	}
}

// Ping checks the redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Get returns the cached plan for a date, or nil on miss or redis trouble.
func (c *Cache) Get(date string) *store.DayPlan {
	if c == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	data, err := c.rdb.Get(ctx, keyPrefix+date).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		c.logFn("plancache: get %s: %v", date, err)
		return nil
	}
	var plan store.DayPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		c.logFn("plancache: decode %s: %v", date, err)
		return nil
	}
	return &plan
}

// Put stores a plan snapshot. Failures are logged and swallowed.
func (c *Cache) Put(plan *store.DayPlan) {
	if c == nil || plan == nil {
		return
	}
	data, err := json.Marshal(plan)
	if err != nil {
		c.logFn("plancache: encode %s: %v", plan.Date, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := c.rdb.Set(ctx, keyPrefix+plan.Date, data, c.ttl).Err(); err != nil {
		c.logFn("plancache: put %s: %v", plan.Date, err)
	}
}

// Invalidate drops a date's snapshot.
func (c *Cache) Invalidate(date string) {
	if c == nil || date == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := c.rdb.Del(ctx, keyPrefix+date).Err(); err != nil {
		c.logFn("plancache: invalidate %s: %v", date, err)
	}
}

// Attach keeps the cache current from the planning bus: every date a change
// reports is dropped, then a change carrying a full plan refreshes that
// date's snapshot.
func (c *Cache) Attach(bus *planning.EventBus) planning.SubscriberID {
	return bus.Subscribe(func(ch planning.Change) {
		if c == nil {
			return
		}
		for _, d := range ch.Dates {
			c.Invalidate(d)
		}
		if ch.Plan != nil {
			c.Put(ch.Plan)
			return
		}
		c.Invalidate(ch.Date)
	})
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
