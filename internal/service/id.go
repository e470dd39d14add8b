package service

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator hands out millisecond-epoch ids. When two messages land in the
// same millisecond the later one is bumped forward so ids never repeat within
// a process.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns the id and the acceptance time it was derived from
func (g *IDGenerator) Next() (string, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10), now
}
