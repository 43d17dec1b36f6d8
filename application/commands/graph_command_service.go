// Package commands contains the write side of the graph engine: node and
// edge creation. Writes are single-entity inserts; referential validity of
// edge endpoints is enforced by the store.
package commands

import (
	"context"

	"go.uber.org/zap"

	"webgraphy-backend/application/ports"
	"webgraphy-backend/domain/graph"
	"webgraphy-backend/pkg/observability"
)

// GraphCommandService handles write operations against the graph store
type GraphCommandService struct {
	store     ports.Store
	logger    *zap.Logger
	collector *observability.Collector
}

// NewGraphCommandService creates a new GraphCommandService
func NewGraphCommandService(store ports.Store, logger *zap.Logger, collector *observability.Collector) *GraphCommandService {
	return &GraphCommandService{
		store:     store,
		logger:    logger,
		collector: collector,
	}
}

// CreateNode validates the input, converts it to a domain node and inserts
// it. The returned node carries the store-assigned id.
func (s *GraphCommandService) CreateNode(ctx context.Context, cmd CreateNodeCommand) (*graph.Node, error) {
	node, err := graph.NewNode(cmd.ID, cmd.Label, cmd.Type, cmd.Properties)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.InsertNode(ctx, node)
	if err != nil {
		s.logger.Error("failed to insert node",
			zap.String("label", cmd.Label),
			zap.String("type", cmd.Type),
			zap.Error(err))
		return nil, err
	}

	if s.collector != nil {
		s.collector.NodesCreated.Inc()
	}

	s.logger.Info("node created",
		zap.String("node_id", stored.ID),
		zap.String("type", stored.Type))

	return stored, nil
}

// CreateEdge validates the input, converts it to a domain edge and inserts
// it. The store rejects edges whose endpoints do not exist.
func (s *GraphCommandService) CreateEdge(ctx context.Context, cmd CreateEdgeCommand) (*graph.Edge, error) {
	edge, err := graph.NewEdge(cmd.ID, cmd.FromNode, cmd.ToNode, cmd.Label, cmd.Properties)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.InsertEdge(ctx, edge)
	if err != nil {
		s.logger.Error("failed to insert edge",
			zap.String("from_node", cmd.FromNode),
			zap.String("to_node", cmd.ToNode),
			zap.Error(err))
		return nil, err
	}

	if s.collector != nil {
		s.collector.EdgesCreated.Inc()
	}

	s.logger.Info("edge created",
		zap.String("edge_id", stored.ID),
		zap.String("from_node", stored.FromNode),
		zap.String("to_node", stored.ToNode))

	return stored, nil
}
