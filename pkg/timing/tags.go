package timing

// Tag pairs one arrival time and one required time with a clock domain.
type Tag struct {
	Domain   DomainID
	Arrival  Time
	Required Time
}

// Tags is the unordered collection of tags computed at one node, at most one
// per reachable clock domain.
type Tags []Tag

// Find returns the tag for domain d.
func (ts Tags) Find(d DomainID) (Tag, bool) {
	for _, t := range ts {
		if t.Domain == d {
			return t, true
		}
	}
	return Tag{}, false
}

// TagView is the per-node tag access offered by one analysis capability
// (setup or hold).
type TagView interface {
	DataTags(n NodeID) Tags
	ClockTags(n NodeID) Tags
}

// TagSet stores data and clock tags per node. It implements [TagView].
type TagSet struct {
	data  []Tags
	clock []Tags
}

// NewTagSet returns a tag set sized for a graph of n nodes.
// Tags added for nodes beyond n grow the set.
func NewTagSet(n int) *TagSet {
	return &TagSet{
		data:  make([]Tags, n),
		clock: make([]Tags, n),
	}
}

// AddDataTag records a data tag at node n, replacing any tag with the same domain.
func (s *TagSet) AddDataTag(n NodeID, t Tag) {
	s.data = addTag(s.data, n, t)
}

// AddClockTag records a clock tag at node n, replacing any tag with the same domain.
func (s *TagSet) AddClockTag(n NodeID, t Tag) {
	s.clock = addTag(s.clock, n, t)
}

// DataTags returns the data tags at node n.
func (s *TagSet) DataTags(n NodeID) Tags { return tagsAt(s.data, n) }

// ClockTags returns the clock tags at node n.
func (s *TagSet) ClockTags(n NodeID) Tags { return tagsAt(s.clock, n) }

// NodeCount returns the number of node slots in the set.
func (s *TagSet) NodeCount() int { return max(len(s.data), len(s.clock)) }

func addTag(s []Tags, n NodeID, t Tag) []Tags {
	for int(n) >= len(s) {
		s = append(s, nil)
	}
	for i, existing := range s[n] {
		if existing.Domain == t.Domain {
			s[n][i] = t
			return s
		}
	}
	s[n] = append(s[n], t)
	return s
}

func tagsAt(s []Tags, n NodeID) Tags {
	if !n.Valid() || int(n) >= len(s) {
		return nil
	}
	return s[n]
}

var _ TagView = (*TagSet)(nil)
