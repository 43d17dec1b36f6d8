package ports

import (
	"context"

	"webgraphy-backend/domain/graph"
)

// Store is the abstraction boundary between the query engine and the
// backing graph-capable data store. Implementations own id assignment,
// referential validity of edge endpoints, and the traversal primitive;
// consistency and timeouts are store concerns, not engine concerns.
//
// Failures surface as pkg/errors StorageError; missing entities as
// NotFoundError. Implementations must be safe for concurrent use.
type Store interface {
	// InsertNode persists a node, assigning an id when none is supplied,
	// and returns the stored node with the id populated.
	InsertNode(ctx context.Context, node *graph.Node) (*graph.Node, error)

	// InsertEdge persists an edge. Both endpoints must resolve to existing
	// nodes; the stored edge is returned with the id populated.
	InsertEdge(ctx context.Context, edge *graph.Edge) (*graph.Edge, error)

	// GetNode retrieves a node by id
	GetNode(ctx context.Context, id string) (*graph.Node, error)

	// ListNodes returns up to limit nodes, optionally filtered by exact
	// type match. Order is store-defined.
	ListNodes(ctx context.Context, typeFilter string, limit int) ([]*graph.Node, error)

	// ListEdges returns up to limit edges. Order is store-defined.
	ListEdges(ctx context.Context, limit int) ([]*graph.Edge, error)

	// NodeExists reports whether a node with the given id exists
	NodeExists(ctx context.Context, id string) (bool, error)

	// ExpandNeighborhood returns every node reachable from startID within
	// depth hops, following edges in either direction, together with every
	// distinct edge traversed. The start node itself is not included; the
	// caller owns prepending it. depth must already be validated to [1,3].
	ExpandNeighborhood(ctx context.Context, startID string, depth int) ([]*graph.Node, []*graph.Edge, error)
}
