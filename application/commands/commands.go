package commands

import (
	"webgraphy-backend/domain/graph"
)

// CreateNodeCommand carries the external input for node creation. ID is
// optional; the store assigns one when it is empty.
type CreateNodeCommand struct {
	ID         string
	Label      string
	Type       string
	Properties graph.Properties
}

// CreateEdgeCommand carries the external input for edge creation
type CreateEdgeCommand struct {
	ID         string
	FromNode   string
	ToNode     string
	Label      string
	Properties graph.Properties
}
