package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stadump/pkg/observability"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Info("loaded snapshot", "nodes", 6)

	out := buf.String()
	if !timestampRe.MatchString(out) {
		t.Errorf("log line should start with an HH:MM:SS.ms timestamp: %q", out)
	}
	if !strings.Contains(out, "loaded snapshot") || !strings.Contains(out, "nodes=6") {
		t.Errorf("log line missing message or fields: %q", out)
	}
}

var timestampRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Dumped 63 lines")

	out := buf.String()
	if !strings.Contains(out, "Dumped 63 lines (") || !strings.HasSuffix(strings.TrimSpace(out), "ms)") {
		t.Errorf("progress.done() = %q, want message with elapsed time", out)
	}
}

func TestRegisterHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	c := New(&buf, log.DebugLevel)
	c.RegisterHooks()

	ctx := context.Background()
	observability.Pipeline().OnDumpComplete(ctx, "alu", 42, time.Millisecond, nil)
	observability.Store().OnBaselineMiss(ctx, "file")

	out := buf.String()
	for _, want := range []string{"dump complete", "lines=42", "baseline miss", "backend=file"} {
		if !strings.Contains(out, want) {
			t.Errorf("hook log missing %q in:\n%s", want, out)
		}
	}
}

func TestRegisterHooksQuietAtInfo(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	c.RegisterHooks()
	observability.Pipeline().OnCheck(context.Background(), "alu", true)

	if buf.Len() != 0 {
		t.Errorf("hooks should log at debug level only, got %q", buf.String())
	}
}
