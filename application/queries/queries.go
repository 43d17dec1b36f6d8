package queries

import (
	pkgerrors "webgraphy-backend/pkg/errors"
)

// Limit and depth bounds for read operations. Out-of-range values are
// rejected, not clamped; absent parameters take the defaults at the
// transport layer before a query is constructed.
const (
	DefaultLimit = 100
	MaxLimit     = 1000

	DefaultDepth = 1
	MinDepth     = 1
	MaxDepth     = 3
)

// GetNodeQuery requests a single node by id
type GetNodeQuery struct {
	NodeID string
}

// Validate checks the query parameters
func (q GetNodeQuery) Validate() error {
	if q.NodeID == "" {
		return pkgerrors.NewValidationError("node id is required")
	}
	return nil
}

// ListNodesQuery requests up to Limit nodes, optionally filtered by type
type ListNodesQuery struct {
	Type  string
	Limit int
}

// Validate checks the query parameters
func (q ListNodesQuery) Validate() error {
	return validateLimit(q.Limit)
}

// ListEdgesQuery requests up to Limit edges
type ListEdgesQuery struct {
	Limit int
}

// Validate checks the query parameters
func (q ListEdgesQuery) Validate() error {
	return validateLimit(q.Limit)
}

// GetGraphQuery requests the full graph view, bounded by Limit applied to
// nodes and edges independently
type GetGraphQuery struct {
	Limit int
}

// Validate checks the query parameters
func (q GetGraphQuery) Validate() error {
	return validateLimit(q.Limit)
}

// GetNeighborhoodQuery requests the induced subgraph around NodeID within
// Depth hops
type GetNeighborhoodQuery struct {
	NodeID string
	Depth  int
}

// Validate checks the query parameters
func (q GetNeighborhoodQuery) Validate() error {
	if q.NodeID == "" {
		return pkgerrors.NewValidationError("node id is required")
	}
	if q.Depth < MinDepth || q.Depth > MaxDepth {
		return pkgerrors.NewValidationError("depth must be between 1 and 3")
	}
	return nil
}

func validateLimit(limit int) error {
	if limit <= 0 || limit > MaxLimit {
		return pkgerrors.NewValidationError("limit must be between 1 and 1000")
	}
	return nil
}
