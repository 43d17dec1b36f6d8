// Package memory provides an embedded, mutex-guarded Store implementation.
// It backs tests and local runs where no DynamoDB table is available, with
// the same traversal semantics as the production store.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"webgraphy-backend/application/ports"
	"webgraphy-backend/domain/graph"
	pkgerrors "webgraphy-backend/pkg/errors"
)

// Store is an in-memory implementation of ports.Store
type Store struct {
	mu        sync.RWMutex
	nodes     map[string]*graph.Node
	nodeOrder []string
	edges     map[string]*graph.Edge
	edgeOrder []string
	adjacency map[string][]string // node id -> incident edge ids, both directions
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		nodes:     make(map[string]*graph.Node),
		edges:     make(map[string]*graph.Edge),
		adjacency: make(map[string][]string),
	}
}

var _ ports.Store = (*Store)(nil)

// InsertNode stores a node, assigning an id when none is supplied
func (s *Store) InsertNode(ctx context.Context, node *graph.Node) (*graph.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *node
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	if _, exists := s.nodes[stored.ID]; exists {
		return nil, pkgerrors.NewStorageError("insert_node", errDuplicateID(stored.ID))
	}

	s.nodes[stored.ID] = &stored
	s.nodeOrder = append(s.nodeOrder, stored.ID)

	result := stored
	return &result, nil
}

// InsertEdge stores an edge after checking both endpoints exist
func (s *Store) InsertEdge(ctx context.Context, edge *graph.Edge) (*graph.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[edge.FromNode]; !ok {
		return nil, pkgerrors.NewStorageError("insert_edge", errMissingEndpoint(edge.FromNode))
	}
	if _, ok := s.nodes[edge.ToNode]; !ok {
		return nil, pkgerrors.NewStorageError("insert_edge", errMissingEndpoint(edge.ToNode))
	}

	stored := *edge
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	if _, exists := s.edges[stored.ID]; exists {
		return nil, pkgerrors.NewStorageError("insert_edge", errDuplicateID(stored.ID))
	}

	s.edges[stored.ID] = &stored
	s.edgeOrder = append(s.edgeOrder, stored.ID)

	s.adjacency[stored.FromNode] = append(s.adjacency[stored.FromNode], stored.ID)
	if stored.ToNode != stored.FromNode {
		s.adjacency[stored.ToNode] = append(s.adjacency[stored.ToNode], stored.ID)
	}

	result := stored
	return &result, nil
}

// GetNode retrieves a node by id
func (s *Store) GetNode(ctx context.Context, id string) (*graph.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.nodes[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("node")
	}

	result := *node
	return &result, nil
}

// ListNodes returns up to limit nodes in insertion order, optionally
// filtered by exact type match
func (s *Store) ListNodes(ctx context.Context, typeFilter string, limit int) ([]*graph.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*graph.Node, 0, limit)
	for _, id := range s.nodeOrder {
		node := s.nodes[id]
		if typeFilter != "" && node.Type != typeFilter {
			continue
		}
		result := *node
		nodes = append(nodes, &result)
		if len(nodes) >= limit {
			break
		}
	}

	return nodes, nil
}

// ListEdges returns up to limit edges in insertion order
func (s *Store) ListEdges(ctx context.Context, limit int) ([]*graph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := make([]*graph.Edge, 0, limit)
	for _, id := range s.edgeOrder {
		result := *s.edges[id]
		edges = append(edges, &result)
		if len(edges) >= limit {
			break
		}
	}

	return edges, nil
}

// NodeExists reports whether a node with the given id exists
func (s *Store) NodeExists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.nodes[id]
	return ok, nil
}

// ExpandNeighborhood walks the graph breadth-first from startID, following
// edges in both directions, up to depth hops. Every edge incident to a node
// expanded before the hop bound is collected once; nodes are collected once
// each, excluding the start node.
func (s *Store) ExpandNeighborhood(ctx context.Context, startID string, depth int) ([]*graph.Node, []*graph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.nodes[startID]; !ok {
		return nil, nil, pkgerrors.NewNotFoundError("node")
	}

	visited := map[string]bool{startID: true}
	seenEdges := make(map[string]bool)

	var nodes []*graph.Node
	var edges []*graph.Edge

	frontier := []string{startID}
	for d := 0; d < depth && len(frontier) > 0; d++ {
		var next []string

		for _, nodeID := range frontier {
			for _, edgeID := range s.adjacency[nodeID] {
				edge := s.edges[edgeID]

				if !seenEdges[edgeID] {
					seenEdges[edgeID] = true
					result := *edge
					edges = append(edges, &result)
				}

				neighborID, _ := edge.Other(nodeID)
				if !visited[neighborID] {
					visited[neighborID] = true
					next = append(next, neighborID)

					result := *s.nodes[neighborID]
					nodes = append(nodes, &result)
				}
			}
		}

		frontier = next
	}

	return nodes, edges, nil
}

// NodeCount returns the number of stored nodes
func (s *Store) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// EdgeCount returns the number of stored edges
func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}
