package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stadump/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Dumped 42 lines (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports pipeline and store events at debug level.
type logHooks struct {
	logger *log.Logger
}

// RegisterHooks routes pipeline and baseline store events to the CLI logger.
func (c *CLI) RegisterHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetStoreHooks(h)
}

func (h *logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load start", "source", source)
}

func (h *logHooks) OnLoadComplete(_ context.Context, source string, nodes, edges int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("load complete", "source", source, "nodes", nodes, "edges", edges, "duration", dur)
}

func (h *logHooks) OnDumpStart(_ context.Context, name string) {
	h.logger.Debug("dump start", "name", name)
}

func (h *logHooks) OnDumpComplete(_ context.Context, name string, lines int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("dump failed", "name", name, "err", err)
		return
	}
	h.logger.Debug("dump complete", "name", name, "lines", lines, "duration", dur)
}

func (h *logHooks) OnCheck(_ context.Context, name string, match bool) {
	h.logger.Debug("baseline check", "name", name, "match", match)
}

func (h *logHooks) OnBaselineHit(_ context.Context, backend string) {
	h.logger.Debug("baseline hit", "backend", backend)
}

func (h *logHooks) OnBaselineMiss(_ context.Context, backend string) {
	h.logger.Debug("baseline miss", "backend", backend)
}

func (h *logHooks) OnBaselineSave(_ context.Context, backend string, size int) {
	h.logger.Debug("baseline saved", "backend", backend, "bytes", size)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.StoreHooks    = (*logHooks)(nil)
)
