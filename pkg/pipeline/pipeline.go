// Package pipeline provides the load → dump → check pipeline for stadump.
//
// The CLI and the HTTP server both go through a [Runner] so that snapshot
// loading, dump options, and baseline comparison behave identically at every
// entry point.
//
// # Stages
//
//  1. Load: read a timing snapshot (JSON, YAML or TOML) into a [timing.Snapshot]
//  2. Dump: serialize the snapshot into the deterministic text format
//  3. Check or Save: compare the text against a stored baseline, or store it
//
// # Usage
//
//	runner := pipeline.NewRunner(store, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: "alu.json"})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Text)
//
// Regression check against a stored baseline:
//
//	_, err := runner.Check(ctx, pipeline.Options{Input: "alu.json", Baseline: "alu"})
//	var mm *errors.MismatchError
//	if stderrors.As(err, &mm) {
//	    fmt.Print(mm.Diff)
//	}
//
// Checks always dump in the format the baseline was saved with, so baselines
// saved in legacy mode keep comparing byte for byte.
package pipeline

import (
	"time"

	"github.com/matzehuels/stadump/pkg/dump"
	"github.com/matzehuels/stadump/pkg/errors"
	"github.com/matzehuels/stadump/pkg/snapshot"
	"github.com/matzehuels/stadump/pkg/timing"
)

// Options configures one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input is the snapshot path. Its extension selects the format unless
	// Format is set.
	Input string `json:"input,omitempty"`

	// Format overrides extension-based format detection.
	Format snapshot.Format `json:"format,omitempty"`

	// Dump controls the output text.
	Dump dump.Options `json:"dump"`

	// Baseline names the stored baseline for Check and Save.
	Baseline string `json:"baseline,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the loaded engine state.
	Snapshot *timing.Snapshot

	// Text is the dump output.
	Text []byte

	// Hash is the SHA-256 of Text.
	Hash string

	// Dump holds the format options Text was written with.
	Dump dump.Options

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	Lines     dump.Stats
	LoadTime  time.Duration
	DumpTime  time.Duration
}

// ValidateForLoad checks that the options name a readable input.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input path is required")
	}
	if o.Format != "" {
		if _, err := snapshot.ParseFormat(string(o.Format)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForBaseline checks that the options name a valid baseline.
func (o *Options) ValidateForBaseline() error {
	if o.Baseline == "" {
		return errors.New(errors.ErrCodeInvalidInput, "baseline name is required")
	}
	return errors.ValidateBaselineName(o.Baseline)
}
