// Package observability reports pipeline and HTTP events to pluggable hooks.
//
// Library code emits one event per finished operation: a [LayoutEvent] per
// layout, a [RenderEvent] per rendered format and a [RequestEvent] per HTTP
// response. By default the events go nowhere. A binary registers its own
// hooks at startup, for example the in-process [Counters] that the API
// server exposes on /metrics:
//
//	counters := observability.NewCounters()
//	observability.SetPipelineHooks(counters)
//	observability.SetHTTPHooks(counters)
//
// Render events for different formats of the same layout are emitted from
// concurrent goroutines, so hook implementations must be safe for concurrent
// use.
package observability

import (
	"context"
	"sync"
	"time"
)

// LayoutEvent describes one finished layout computation.
type LayoutEvent struct {
	Items         int
	Alignment     string
	Width, Height float64
	Cells         int     // 0 when Err is set
	ZeroArea      int     // cells with no area
	WorstAspect   float64 // largest cell aspect ratio
	Duration      time.Duration
	Err           error
}

// RenderEvent describes one rendered output format.
type RenderEvent struct {
	Format   string
	Bytes    int
	Duration time.Duration
	Err      error
}

// RequestEvent describes one HTTP response.
type RequestEvent struct {
	Method   string
	Route    string // chi route pattern, or the raw path when unmatched
	Status   int
	Duration time.Duration
	Err      error // set only for OnError
}

// PipelineHooks receives layout and render events.
type PipelineHooks interface {
	OnLayout(ctx context.Context, ev LayoutEvent)
	OnRender(ctx context.Context, ev RenderEvent)
}

// HTTPHooks receives API events.
type HTTPHooks interface {
	OnResponse(ctx context.Context, ev RequestEvent)
	// OnError is called before the error response is written.
	OnError(ctx context.Context, ev RequestEvent)
}

// NoopPipelineHooks ignores every event. Embed it to implement a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayout(context.Context, LayoutEvent) {}
func (NoopPipelineHooks) OnRender(context.Context, RenderEvent) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnResponse(context.Context, RequestEvent) {}
func (NoopHTTPHooks) OnError(context.Context, RequestEvent)    {}

var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
)

// SetPipelineHooks registers h for all pipeline events. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	pipelineHooks = h
	hooksMu.Unlock()
}

// SetHTTPHooks registers h for all HTTP events. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	httpHooks = h
	hooksMu.Unlock()
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks. Tests use it to undo registrations.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	httpHooks = NoopHTTPHooks{}
}
