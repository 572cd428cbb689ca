package observability

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// Counters aggregates events in memory. It implements both [PipelineHooks]
// and [HTTPHooks] and is safe for concurrent use.
type Counters struct {
	mu   sync.Mutex
	snap Snapshot
}

// Snapshot is a point-in-time copy of a [Counters].
type Snapshot struct {
	Layouts       int64            `json:"layouts"`
	LayoutErrors  int64            `json:"layout_errors"`
	Items         int64            `json:"items"`
	ZeroAreaCells int64            `json:"zero_area_cells"`
	Renders       map[string]int64 `json:"renders"`
	RenderBytes   int64            `json:"render_bytes"`
	RenderErrors  int64            `json:"render_errors"`
	Responses     map[string]int64 `json:"responses"` // keyed by status class, "2xx"
	RequestErrors int64            `json:"request_errors"`
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{snap: Snapshot{
		Renders:   map[string]int64{},
		Responses: map[string]int64{},
	}}
}

func (c *Counters) OnLayout(_ context.Context, ev LayoutEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ev.Err != nil {
		c.snap.LayoutErrors++
		return
	}
	c.snap.Layouts++
	c.snap.Items += int64(ev.Items)
	c.snap.ZeroAreaCells += int64(ev.ZeroArea)
}

func (c *Counters) OnRender(_ context.Context, ev RenderEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ev.Err != nil {
		c.snap.RenderErrors++
		return
	}
	c.snap.Renders[ev.Format]++
	c.snap.RenderBytes += int64(ev.Bytes)
}

func (c *Counters) OnResponse(_ context.Context, ev RequestEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.Responses[statusClass(ev.Status)]++
}

func (c *Counters) OnError(context.Context, RequestEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.RequestErrors++
}

// Snapshot returns a copy that later events do not modify.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.snap
	s.Renders = maps.Clone(c.snap.Renders)
	s.Responses = maps.Clone(c.snap.Responses)
	return s
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return fmt.Sprintf("%dxx", status/100)
}
