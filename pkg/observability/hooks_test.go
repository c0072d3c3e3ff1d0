package observability

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "alu.json")
	p.OnLoadComplete(ctx, "alu.json", 100, 120, time.Second, nil)
	p.OnDumpStart(ctx, "alu")
	p.OnDumpComplete(ctx, "alu", 400, time.Second, nil)
	p.OnCheck(ctx, "alu", true)

	// Store hooks
	c := NoopStoreHooks{}
	c.OnBaselineHit(ctx, "file")
	c.OnBaselineMiss(ctx, "redis")
	c.OnBaselineSave(ctx, "sqlite", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/baselines/alu")
	h.OnResponse(ctx, "GET", "/baselines/alu", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

func TestRegisteredHooksReceiveEvents(t *testing.T) {
	defer Reset()

	rec := &recordingStoreHooks{}
	SetStoreHooks(rec)

	ctx := context.Background()
	Store().OnBaselineMiss(ctx, "sqlite")
	Store().OnBaselineSave(ctx, "sqlite", 2048)
	Store().OnBaselineHit(ctx, "sqlite")

	want := []string{"miss sqlite", "save sqlite 2048", "hit sqlite"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, rec.events[i], want[i])
		}
	}
}

type recordingStoreHooks struct{ events []string }

func (r *recordingStoreHooks) OnBaselineHit(_ context.Context, backend string) {
	r.events = append(r.events, "hit "+backend)
}

func (r *recordingStoreHooks) OnBaselineMiss(_ context.Context, backend string) {
	r.events = append(r.events, "miss "+backend)
}

func (r *recordingStoreHooks) OnBaselineSave(_ context.Context, backend string, size int) {
	r.events = append(r.events, fmt.Sprintf("save %s %d", backend, size))
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testStoreHooks struct{ NoopStoreHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
