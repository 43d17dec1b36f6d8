// Package graph defines the entity model for the property graph: nodes,
// directed labeled edges, and the Graph view returned by queries.
package graph

import (
	pkgerrors "webgraphy-backend/pkg/errors"
)

// Properties is a schema-less property bag attached to nodes and edges.
// Values are passed through unchanged; nesting follows the JSON object model.
type Properties map[string]interface{}

// Node is a labeled, typed graph vertex with arbitrary properties.
// ID is assigned by the store on insert when empty and is stable thereafter.
type Node struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
}

// NewNode builds a node from external input, validating required fields.
// The id is left for the store to assign unless the caller supplies one.
func NewNode(id, label, nodeType string, properties Properties) (*Node, error) {
	if label == "" {
		return nil, pkgerrors.NewValidationError("label is required")
	}
	if nodeType == "" {
		return nil, pkgerrors.NewValidationError("type is required")
	}

	if properties == nil {
		properties = Properties{}
	}

	return &Node{
		ID:         id,
		Label:      label,
		Type:       nodeType,
		Properties: properties,
	}, nil
}
