// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package progcache keeps compiled shader programs keyed by their source so
// restarting a renderer does not recompile an unchanged program.
package progcache

import (
	"bytes"
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the number of programs kept when New gets capacity <= 0.
const DefaultCapacity = 8

// CompileFunc turns program source into a binary module.
type CompileFunc func(src string) ([]byte, error)

// Stats holds cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is a thread-safe LRU of compiled programs. Failed compilations are
// not cached.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[uint64][]*list.Element
	lru      *list.List

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type entry struct {
	key  uint64
	src  string
	code []byte
}

// New returns an empty cache holding at most capacity programs.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[uint64][]*list.Element),
		lru:      list.New(),
	}
}

// Key returns the FNV-1a hash of src.
func Key(src string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(src)) // fnv.Write never returns an error
	return h.Sum64()
}

// Get returns a copy of the program compiled from src.
func (c *Cache) Get(src string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.lookup(Key(src), src); e != nil {
		c.lru.MoveToFront(e)
		c.hits.Add(1)
		return bytes.Clone(e.Value.(*entry).code), true
	}
	c.misses.Add(1)
	return nil, false
}

// GetOrCompile returns the cached program for src, compiling and storing it
// on a miss. The compile function runs with the cache locked. hit reports
// whether compile was skipped.
func (c *Cache) GetOrCompile(src string, compile CompileFunc) (code []byte, hit bool, err error) {
	key := Key(src)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e := c.lookup(key, src); e != nil {
		c.lru.MoveToFront(e)
		c.hits.Add(1)
		return bytes.Clone(e.Value.(*entry).code), true, nil
	}
	c.misses.Add(1)

	code, err = compile(src)
	if err != nil {
		return nil, false, err
	}

	for c.lru.Len() >= c.capacity {
		c.evictOldest()
	}
	e := c.lru.PushFront(&entry{key: key, src: src, code: bytes.Clone(code)})
	c.entries[key] = append(c.entries[key], e)
	return code, false, nil
}

// lookup finds the element for src. Keys may collide, so the source is
// compared as well.
func (c *Cache) lookup(key uint64, src string) *list.Element {
	for _, e := range c.entries[key] {
		if e.Value.(*entry).src == src {
			return e
		}
	}
	return nil
}

func (c *Cache) evictOldest() {
	e := c.lru.Back()
	if e == nil {
		return
	}
	c.lru.Remove(e)
	key := e.Value.(*entry).key
	bucket := c.entries[key]
	for i, b := range bucket {
		if b == e {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.entries, key)
	} else {
		c.entries[key] = bucket
	}
	c.evictions.Add(1)
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Clear removes every program. Statistics are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64][]*list.Element)
	c.lru.Init()
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
