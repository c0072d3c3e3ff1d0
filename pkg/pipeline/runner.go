package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stadump/pkg/baseline"
	"github.com/matzehuels/stadump/pkg/dump"
	"github.com/matzehuels/stadump/pkg/errors"
	"github.com/matzehuels/stadump/pkg/observability"
	"github.com/matzehuels/stadump/pkg/snapshot"
	"github.com/matzehuels/stadump/pkg/timing"
)

// Runner executes the pipeline against a baseline store.
// Both CLI and API use this to avoid duplicating check logic.
//
// The Runner is stateless except for the store and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Store  baseline.Store
	Logger *log.Logger
}

// NewRunner creates a runner with the given store.
// If store is nil, a NullStore is used (baselines disabled).
func NewRunner(store baseline.Store, logger *log.Logger) *Runner {
	if store == nil {
		store = baseline.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Store: store, Logger: logger}
}

// Execute loads the input snapshot and dumps it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	snap, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)

	res, err := r.Dump(ctx, opts.Input, snap, opts.Dump)
	if err != nil {
		return nil, err
	}
	res.Stats.LoadTime = loadTime

	r.Logger.Info("dumped timing state",
		"input", opts.Input,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"lines", res.Stats.Lines.Total(),
		"duration", loadTime+res.Stats.DumpTime)
	return res, nil
}

// Load reads the snapshot named by opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (*timing.Snapshot, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		var err error
		if format, err = snapshot.FormatFromPath(opts.Input); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(opts.Input)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "snapshot not found: %s", opts.Input)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", opts.Input)
	}
	defer f.Close()

	return r.Decode(ctx, f, format, opts.Input)
}

// Decode reads a snapshot from rd. source names the input in logs and hooks.
func (r *Runner) Decode(ctx context.Context, rd io.Reader, format snapshot.Format, source string) (*timing.Snapshot, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	snap, err := snapshot.Decode(rd, format)

	var nodes, edges int
	if snap != nil {
		nodes, edges = snap.Graph.NodeCount(), snap.Graph.EdgeCount()
	}
	hooks.OnLoadComplete(ctx, source, nodes, edges, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded snapshot",
		"source", source,
		"nodes", nodes,
		"edges", edges,
		"constraints", snap.Constraints != nil,
		"result", snap.Result != nil,
		"duration", time.Since(start))
	return snap, nil
}

// Dump serializes snap. name labels the run in logs and hooks.
func (r *Runner) Dump(ctx context.Context, name string, snap *timing.Snapshot, opts dump.Options) (*Result, error) {
	hooks := observability.Pipeline()
	hooks.OnDumpStart(ctx, name)
	start := time.Now()

	var buf bytes.Buffer
	lines, err := opts.WriteSnapshot(&buf, snap)
	dur := time.Since(start)
	hooks.OnDumpComplete(ctx, name, lines.Total(), dur, err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "dump %s", name)
	}

	r.Logger.Debug("dumped snapshot",
		"name", name,
		"lines", lines.Total(),
		"bytes", buf.Len(),
		"legacy", opts.Legacy,
		"sorted", opts.SortConstraints,
		"duration", dur)

	return &Result{
		Snapshot: snap,
		Text:     buf.Bytes(),
		Hash:     baseline.Hash(buf.Bytes()),
		Dump:     opts,
		Stats: Stats{
			NodeCount: snap.Graph.NodeCount(),
			EdgeCount: snap.Graph.EdgeCount(),
			Lines:     lines,
			DumpTime:  dur,
		},
	}, nil
}

// Check loads the input snapshot and compares its dump with the stored
// baseline opts.Baseline. A difference is returned as an
// *errors.MismatchError alongside the result.
func (r *Runner) Check(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForBaseline(); err != nil {
		return nil, err
	}
	snap, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.CheckSnapshot(ctx, opts.Baseline, snap, opts.Dump)
}

// CheckSnapshot compares the dump of snap with the stored baseline name.
// The format options recorded with the baseline override opts.
func (r *Runner) CheckSnapshot(ctx context.Context, name string, snap *timing.Snapshot, opts dump.Options) (*Result, error) {
	rec, err := r.Store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if stored := rec.DumpOptions(); stored != opts {
		r.Logger.Debug("using baseline format options", "name", name,
			"legacy", stored.Legacy, "sorted", stored.SortConstraints)
		opts = stored
	}

	res, err := r.Dump(ctx, name, snap, opts)
	if err != nil {
		return nil, err
	}

	err = baseline.Compare(rec, res.Text)
	observability.Pipeline().OnCheck(ctx, name, err == nil)
	if err != nil {
		r.Logger.Warn("baseline mismatch", "name", name, "revision", rec.Revision)
		return res, err
	}
	r.Logger.Info("baseline matches", "name", name, "revision", rec.Revision)
	return res, nil
}

// Save loads the input snapshot and stores its dump as baseline opts.Baseline.
func (r *Runner) Save(ctx context.Context, opts Options) (*baseline.Record, error) {
	if err := opts.ValidateForBaseline(); err != nil {
		return nil, err
	}
	snap, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.SaveSnapshot(ctx, opts.Baseline, snap, opts.Dump)
}

// SaveSnapshot stores the dump of snap as baseline name.
func (r *Runner) SaveSnapshot(ctx context.Context, name string, snap *timing.Snapshot, opts dump.Options) (*baseline.Record, error) {
	res, err := r.Dump(ctx, name, snap, opts)
	if err != nil {
		return nil, err
	}
	return r.SaveText(ctx, name, res.Text, opts)
}

// SaveText stores already dumped text, written with opts, as baseline name.
func (r *Runner) SaveText(ctx context.Context, name string, text []byte, opts dump.Options) (*baseline.Record, error) {
	rec, err := baseline.NewRecord(name, text, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Store.Put(ctx, rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "save baseline %q", name)
	}
	r.Logger.Info("saved baseline", "name", name, "revision", rec.Revision, "bytes", len(text))
	return rec, nil
}

// Close releases the store.
func (r *Runner) Close() error {
	if r.Store != nil {
		return r.Store.Close()
	}
	return nil
}
