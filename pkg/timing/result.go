package timing

// Result is the outcome of a timing analysis. Setup and hold analyses are
// independent capabilities: either, both, or neither may be present.
type Result struct {
	setup *TagSet
	hold  *TagSet
}

// NewResult builds a result from the tag sets of the analyses that ran.
// Pass nil for an analysis that was not performed.
func NewResult(setup, hold *TagSet) *Result {
	return &Result{setup: setup, hold: hold}
}

// SetupView returns the setup tags and true if setup analysis was performed.
func (r *Result) SetupView() (TagView, bool) {
	if r == nil || r.setup == nil {
		return nil, false
	}
	return r.setup, true
}

// HoldView returns the hold tags and true if hold analysis was performed.
func (r *Result) HoldView() (TagView, bool) {
	if r == nil || r.hold == nil {
		return nil, false
	}
	return r.hold, true
}

// Setup returns the setup tag set, or nil.
func (r *Result) Setup() *TagSet {
	if r == nil {
		return nil
	}
	return r.setup
}

// Hold returns the hold tag set, or nil.
func (r *Result) Hold() *TagSet {
	if r == nil {
		return nil
	}
	return r.hold
}

// Snapshot bundles everything the engine exposes for a dump.
type Snapshot struct {
	Graph       *Graph
	Constraints *Constraints
	Result      *Result
}
