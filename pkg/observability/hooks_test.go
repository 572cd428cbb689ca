package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type recordingHooks struct {
	NoopPipelineHooks
	layouts []LayoutEvent
}

func (h *recordingHooks) OnLayout(_ context.Context, ev LayoutEvent) {
	h.layouts = append(h.layouts, ev)
}

func TestRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)
	Pipeline().OnLayout(context.Background(), LayoutEvent{Items: 3, Cells: 3})
	Pipeline().OnRender(context.Background(), RenderEvent{Format: "svg"})

	if len(rec.layouts) != 1 || rec.layouts[0].Items != 3 {
		t.Errorf("recorded %+v, want one layout event with 3 items", rec.layouts)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	c.OnLayout(ctx, LayoutEvent{Items: 4, Cells: 4, ZeroArea: 1})
	c.OnLayout(ctx, LayoutEvent{Items: 2, Err: errors.New("bad")})
	c.OnRender(ctx, RenderEvent{Format: "svg", Bytes: 100})
	c.OnRender(ctx, RenderEvent{Format: "svg", Bytes: 50})
	c.OnRender(ctx, RenderEvent{Format: "png", Err: errors.New("bad")})
	c.OnResponse(ctx, RequestEvent{Status: 200})
	c.OnResponse(ctx, RequestEvent{Status: 400})
	c.OnResponse(ctx, RequestEvent{Status: 404})
	c.OnError(ctx, RequestEvent{Status: 400})

	s := c.Snapshot()
	if s.Layouts != 1 || s.LayoutErrors != 1 || s.Items != 4 || s.ZeroAreaCells != 1 {
		t.Errorf("layout counters = %+v", s)
	}
	if s.Renders["svg"] != 2 || s.Renders["png"] != 0 || s.RenderBytes != 150 || s.RenderErrors != 1 {
		t.Errorf("render counters = %+v", s)
	}
	if s.Responses["2xx"] != 1 || s.Responses["4xx"] != 2 || s.RequestErrors != 1 {
		t.Errorf("response counters = %+v", s)
	}
}

func TestCountersSnapshotIsCopy(t *testing.T) {
	c := NewCounters()
	c.OnRender(context.Background(), RenderEvent{Format: "svg"})
	s := c.Snapshot()
	c.OnRender(context.Background(), RenderEvent{Format: "svg"})

	if s.Renders["svg"] != 1 {
		t.Errorf("snapshot changed after later event: %d", s.Renders["svg"])
	}
}

func TestStatusClass(t *testing.T) {
	for status, want := range map[int]string{200: "2xx", 204: "2xx", 413: "4xx", 504: "5xx", 0: "other", 700: "other"} {
		if got := statusClass(status); got != want {
			t.Errorf("statusClass(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	Reset()
	defer Reset()

	c := NewCounters()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetHTTPHooks(c)
		}()
		go func() {
			defer wg.Done()
			c.OnRender(context.Background(), RenderEvent{Format: "svg"})
			HTTP().OnResponse(context.Background(), RequestEvent{Status: 200})
		}()
	}
	wg.Wait()

	if got := c.Snapshot().Renders["svg"]; got != 8 {
		t.Errorf("renders = %d, want 8", got)
	}
}
