// Package queries contains the read side of the graph engine: listings,
// point lookups, and bounded neighborhood expansion. The service is
// stateless per call and re-reads the store on every request; consistency
// is delegated entirely to the backing store.
package queries

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"webgraphy-backend/application/ports"
	"webgraphy-backend/domain/graph"
	pkgerrors "webgraphy-backend/pkg/errors"
	"webgraphy-backend/pkg/observability"
)

// GraphQueryService handles read operations against the graph store
type GraphQueryService struct {
	store     ports.Store
	logger    *zap.Logger
	collector *observability.Collector
}

// NewGraphQueryService creates a new GraphQueryService
func NewGraphQueryService(store ports.Store, logger *zap.Logger, collector *observability.Collector) *GraphQueryService {
	return &GraphQueryService{
		store:     store,
		logger:    logger,
		collector: collector,
	}
}

// GetNode retrieves a single node by id
func (s *GraphQueryService) GetNode(ctx context.Context, query GetNodeQuery) (*graph.Node, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	node, err := s.store.GetNode(ctx, query.NodeID)
	if err != nil {
		return nil, err
	}

	return node, nil
}

// ListNodes retrieves up to query.Limit nodes, optionally filtered by type
func (s *GraphQueryService) ListNodes(ctx context.Context, query ListNodesQuery) ([]*graph.Node, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	nodes, err := s.store.ListNodes(ctx, query.Type, query.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list nodes")
	}

	s.logger.Debug("nodes listed",
		zap.String("type", query.Type),
		zap.Int("limit", query.Limit),
		zap.Int("count", len(nodes)))

	return nodes, nil
}

// ListEdges retrieves up to query.Limit edges
func (s *GraphQueryService) ListEdges(ctx context.Context, query ListEdgesQuery) ([]*graph.Edge, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	edges, err := s.store.ListEdges(ctx, query.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list edges")
	}

	s.logger.Debug("edges listed",
		zap.Int("limit", query.Limit),
		zap.Int("count", len(edges)))

	return edges, nil
}

// GetGraph retrieves the full graph view, bounded by query.Limit applied to
// nodes and edges independently
func (s *GraphQueryService) GetGraph(ctx context.Context, query GetGraphQuery) (*graph.Graph, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	nodes, err := s.store.ListNodes(ctx, "", query.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list nodes")
	}

	edges, err := s.store.ListEdges(ctx, query.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list edges")
	}

	result := graph.NewGraph()
	for _, node := range nodes {
		result.AddNode(node)
	}
	for _, edge := range edges {
		result.AddEdge(edge)
	}

	s.logger.Debug("graph retrieved",
		zap.Int("node_count", result.NodeCount()),
		zap.Int("edge_count", result.EdgeCount()))

	return result, nil
}

// GetNeighborhood retrieves the induced subgraph around query.NodeID within
// query.Depth hops, following edges in either direction. The start node is
// always present in the result, even with no neighbors; nodes and edges are
// de-duplicated by id. Either the complete set is returned or the operation
// fails; no partial results.
func (s *GraphQueryService) GetNeighborhood(ctx context.Context, query GetNeighborhoodQuery) (*graph.Graph, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s.logger.Debug("expanding neighborhood",
		zap.String("node_id", query.NodeID),
		zap.Int("depth", query.Depth))

	// The start node must exist before any traversal work
	startNode, err := s.store.GetNode(ctx, query.NodeID)
	if err != nil {
		return nil, err
	}

	neighborNodes, edges, err := s.store.ExpandNeighborhood(ctx, query.NodeID, query.Depth)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to expand neighborhood")
	}

	result := graph.NewGraph()
	result.AddNode(startNode)
	for _, node := range neighborNodes {
		result.AddNode(node)
	}
	for _, edge := range edges {
		result.AddEdge(edge)
	}

	if s.collector != nil {
		s.collector.Expansions.WithLabelValues(strconv.Itoa(query.Depth)).Inc()
	}

	s.logger.Debug("neighborhood expanded",
		zap.String("node_id", query.NodeID),
		zap.Int("depth", query.Depth),
		zap.Int("node_count", result.NodeCount()),
		zap.Int("edge_count", result.EdgeCount()))

	return result, nil
}
