package graph

import (
	pkgerrors "webgraphy-backend/pkg/errors"
)

// Edge is a directed, labeled connection between two nodes. FromNode and
// ToNode are semantically distinct endpoints even though neighborhood
// expansion follows edges in both directions.
type Edge struct {
	ID         string     `json:"id"`
	FromNode   string     `json:"from_node"`
	ToNode     string     `json:"to_node"`
	Label      string     `json:"label"`
	Properties Properties `json:"properties"`
}

// NewEdge builds an edge from external input, validating required fields.
// Endpoint existence is enforced by the store at insert time, not here.
func NewEdge(id, fromNode, toNode, label string, properties Properties) (*Edge, error) {
	if fromNode == "" {
		return nil, pkgerrors.NewValidationError("from_node is required")
	}
	if toNode == "" {
		return nil, pkgerrors.NewValidationError("to_node is required")
	}
	if label == "" {
		return nil, pkgerrors.NewValidationError("label is required")
	}

	if properties == nil {
		properties = Properties{}
	}

	return &Edge{
		ID:         id,
		FromNode:   fromNode,
		ToNode:     toNode,
		Label:      label,
		Properties: properties,
	}, nil
}

// Other returns the opposite endpoint of the edge relative to nodeID.
// The second return is false when the edge is not incident to nodeID.
func (e *Edge) Other(nodeID string) (string, bool) {
	switch nodeID {
	case e.FromNode:
		return e.ToNode, true
	case e.ToNode:
		return e.FromNode, true
	default:
		return "", false
	}
}
