package graph

import (
	"strings"
	"unicode/utf8"

	aerrors "github.com/addax-graph/addax/pkg/errors"
)

// Unassigned is the sentinel for a vertex community or color that has not
// been set.
const Unassigned int64 = -1

const (
	// PrefixSize is the width of the stored prefix field in bytes,
	// including the terminating zero byte.
	PrefixSize = 128

	// MaxPrefixLen is the longest prefix, in bytes, that fits in the stored field.
	MaxPrefixLen = PrefixSize - 1
)

// ValidatePrefix reports an INVALID_CONFIG error for a prefix that cannot be
// stored and read back unchanged: longer than [MaxPrefixLen] bytes, not
// valid UTF-8, or ending in a zero byte the stored field would absorb.
func ValidatePrefix(prefix string) error {
	switch {
	case len(prefix) > MaxPrefixLen:
		return aerrors.New(aerrors.ErrCodeInvalidConfig,
			"prefix is %d bytes (max %d)", len(prefix), MaxPrefixLen)
	case !utf8.ValidString(prefix):
		return aerrors.New(aerrors.ErrCodeInvalidConfig, "prefix %q is not valid UTF-8", prefix)
	case strings.HasSuffix(prefix, "\x00"):
		return aerrors.New(aerrors.ErrCodeInvalidConfig, "prefix %q ends in a zero byte", prefix)
	}
	return nil
}

// Vertex is a node in the connectivity graph.
type Vertex struct {
	ID        int64 // Caller-supplied identity, unique within a graph
	Index     int64 // Dense enumeration index
	Community int64 // Partition label (Unassigned until labelled)
	Color     int64 // Reserved attribute (Unassigned by default)
}

// Edge is a directed, weighted connection between two vertices.
type Edge struct {
	Source      int64   // Source vertex ID
	Destination int64   // Destination vertex ID
	Weight      float64 // Aggregate strength
}

// NewVertex returns a vertex with the given identity and enumeration index
// and both community and color unassigned.
func NewVertex(id, index int64) Vertex {
	return Vertex{ID: id, Index: index, Community: Unassigned, Color: Unassigned}
}
