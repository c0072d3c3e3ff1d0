package dump

// Options controls formatting details that affect byte-for-byte output.
// The zero value is the recommended format.
type Options struct {
	// Legacy reproduces baselines written by the previous dump routine:
	// every edge id in a node block is followed by a space, and the
	// required time of a tag is printed only when its arrival time is set
	// (as "nan" if the required time itself is unset). A tag with an unset
	// arrival therefore produces no line. Clock names are quoted without
	// escaping.
	Legacy bool `json:"legacy,omitempty" toml:"legacy"`

	// SortConstraints sorts each constraints group by key (node, then
	// domain; or source domain, then sink domain) instead of following
	// the reader's iteration order. Use it with readers whose iteration
	// order is not deterministic.
	SortConstraints bool `json:"sort_constraints,omitempty" toml:"sort_constraints"`
}
