package timing

import "strconv"

// NodeID identifies a node in a [Graph].
type NodeID int32

// EdgeID identifies an edge in a [Graph].
type EdgeID int32

// DomainID identifies a clock domain in [Constraints].
type DomainID int32

// Invalid handle sentinels.
const (
	InvalidNode   NodeID   = -1
	InvalidEdge   EdgeID   = -1
	InvalidDomain DomainID = -1
)

// Valid reports whether id refers to a node.
func (id NodeID) Valid() bool { return id >= 0 }

// Valid reports whether id refers to an edge.
func (id EdgeID) Valid() bool { return id >= 0 }

// Valid reports whether id refers to a clock domain.
func (id DomainID) Valid() bool { return id >= 0 }

func (id NodeID) String() string   { return handleString(int32(id)) }
func (id EdgeID) String() string   { return handleString(int32(id)) }
func (id DomainID) String() string { return handleString(int32(id)) }

func handleString(v int32) string {
	if v < 0 {
		return "invalid"
	}
	return strconv.FormatInt(int64(v), 10)
}
