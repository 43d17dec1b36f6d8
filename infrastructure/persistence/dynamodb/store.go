// Package dynamodb implements the graph Store on a single DynamoDB table.
//
// Key layout:
//
//	node item       PK NODE#<id>   SK METADATA   (GSI1 keyed by node type)
//	edge item       PK EDGE#<id>   SK METADATA
//	adjacency item  PK ADJ#<node>  SK EDGE#<id>  one per endpoint per edge
//
// Adjacency items carry the full edge payload so the incident edges of a
// node, in either direction, are a single Query.
package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"webgraphy-backend/application/ports"
	"webgraphy-backend/domain/graph"
	pkgerrors "webgraphy-backend/pkg/errors"
)

const (
	nodeKeyPrefix = "NODE#"
	edgeKeyPrefix = "EDGE#"
	adjKeyPrefix  = "ADJ#"
	typeKeyPrefix = "NODETYPE#"

	metadataSK = "METADATA"

	entityTypeNode = "NODE"
	entityTypeEdge = "EDGE"
	entityTypeAdj  = "ADJACENCY"
)

// Store implements ports.Store on DynamoDB
type Store struct {
	client    *awsdynamodb.Client
	tableName string
	typeIndex string
	logger    *zap.Logger
}

// NewStore creates a new DynamoDB-backed store
func NewStore(client *awsdynamodb.Client, tableName, typeIndex string, logger *zap.Logger) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		typeIndex: typeIndex,
		logger:    logger,
	}
}

var _ ports.Store = (*Store)(nil)

// nodeItem represents the DynamoDB item structure for a node
type nodeItem struct {
	PK         string                 `dynamodbav:"PK"`
	SK         string                 `dynamodbav:"SK"`
	GSI1PK     string                 `dynamodbav:"GSI1PK"`
	GSI1SK     string                 `dynamodbav:"GSI1SK"`
	EntityType string                 `dynamodbav:"EntityType"`
	NodeID     string                 `dynamodbav:"NodeID"`
	Label      string                 `dynamodbav:"Label"`
	NodeType   string                 `dynamodbav:"NodeType"`
	Properties map[string]interface{} `dynamodbav:"Properties"`
}

// edgeItem represents the DynamoDB item structure for an edge and for the
// adjacency mirror items
type edgeItem struct {
	PK         string                 `dynamodbav:"PK"`
	SK         string                 `dynamodbav:"SK"`
	EntityType string                 `dynamodbav:"EntityType"`
	EdgeID     string                 `dynamodbav:"EdgeID"`
	FromNode   string                 `dynamodbav:"FromNode"`
	ToNode     string                 `dynamodbav:"ToNode"`
	Label      string                 `dynamodbav:"Label"`
	Properties map[string]interface{} `dynamodbav:"Properties"`
}

// InsertNode persists a node, assigning an id when none is supplied
func (s *Store) InsertNode(ctx context.Context, node *graph.Node) (*graph.Node, error) {
	stored := *node
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	item := nodeItem{
		PK:         nodeKeyPrefix + stored.ID,
		SK:         metadataSK,
		GSI1PK:     typeKeyPrefix + stored.Type,
		GSI1SK:     nodeKeyPrefix + stored.ID,
		EntityType: entityTypeNode,
		NodeID:     stored.ID,
		Label:      stored.Label,
		NodeType:   stored.Type,
		Properties: stored.Properties,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, pkgerrors.NewStorageError("insert_node", fmt.Errorf("marshal node: %w", err))
	}

	input := &awsdynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		s.logger.Error("failed to put node item",
			zap.String("nodeID", stored.ID),
			zap.Error(err))
		return nil, pkgerrors.NewStorageError("insert_node", err)
	}

	s.logger.Debug("node item written",
		zap.String("nodeID", stored.ID),
		zap.String("type", stored.Type))

	return &stored, nil
}

// InsertEdge persists an edge after checking both endpoints exist. The edge
// item and its two adjacency mirrors are written in a single transaction so
// the adjacency index never disagrees with the edge set.
func (s *Store) InsertEdge(ctx context.Context, edge *graph.Edge) (*graph.Edge, error) {
	for _, endpoint := range []string{edge.FromNode, edge.ToNode} {
		exists, err := s.NodeExists(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, pkgerrors.NewStorageError("insert_edge",
				fmt.Errorf("endpoint node does not exist: %s", endpoint))
		}
	}

	stored := *edge
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	items := []edgeItem{
		{
			PK:         edgeKeyPrefix + stored.ID,
			SK:         metadataSK,
			EntityType: entityTypeEdge,
			EdgeID:     stored.ID,
			FromNode:   stored.FromNode,
			ToNode:     stored.ToNode,
			Label:      stored.Label,
			Properties: stored.Properties,
		},
		{
			PK:         adjKeyPrefix + stored.FromNode,
			SK:         edgeKeyPrefix + stored.ID,
			EntityType: entityTypeAdj,
			EdgeID:     stored.ID,
			FromNode:   stored.FromNode,
			ToNode:     stored.ToNode,
			Label:      stored.Label,
			Properties: stored.Properties,
		},
	}

	// Self-loops only need one adjacency mirror
	if stored.ToNode != stored.FromNode {
		items = append(items, edgeItem{
			PK:         adjKeyPrefix + stored.ToNode,
			SK:         edgeKeyPrefix + stored.ID,
			EntityType: entityTypeAdj,
			EdgeID:     stored.ID,
			FromNode:   stored.FromNode,
			ToNode:     stored.ToNode,
			Label:      stored.Label,
			Properties: stored.Properties,
		})
	}

	transactItems := make([]types.TransactWriteItem, 0, len(items))
	for _, item := range items {
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return nil, pkgerrors.NewStorageError("insert_edge", fmt.Errorf("marshal edge: %w", err))
		}
		transactItems = append(transactItems, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(s.tableName),
				Item:      av,
			},
		})
	}

	input := &awsdynamodb.TransactWriteItemsInput{
		TransactItems: transactItems,
	}

	if _, err := s.client.TransactWriteItems(ctx, input); err != nil {
		s.logger.Error("failed to write edge items",
			zap.String("edgeID", stored.ID),
			zap.String("fromNode", stored.FromNode),
			zap.String("toNode", stored.ToNode),
			zap.Error(err))
		return nil, pkgerrors.NewStorageError("insert_edge", err)
	}

	s.logger.Debug("edge items written",
		zap.String("edgeID", stored.ID),
		zap.String("fromNode", stored.FromNode),
		zap.String("toNode", stored.ToNode))

	return &stored, nil
}

// GetNode retrieves a node by id
func (s *Store) GetNode(ctx context.Context, id string) (*graph.Node, error) {
	input := &awsdynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: nodeKeyPrefix + id},
			"SK": &types.AttributeValueMemberS{Value: metadataSK},
		},
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewStorageError("get_node", err)
	}

	if len(result.Item) == 0 {
		return nil, pkgerrors.NewNotFoundError("node")
	}

	var item nodeItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewStorageError("get_node", fmt.Errorf("unmarshal node: %w", err))
	}

	return itemToNode(&item), nil
}

// NodeExists reports whether a node with the given id exists
func (s *Store) NodeExists(ctx context.Context, id string) (bool, error) {
	input := &awsdynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: nodeKeyPrefix + id},
			"SK": &types.AttributeValueMemberS{Value: metadataSK},
		},
		ProjectionExpression: aws.String("PK"),
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		return false, pkgerrors.NewStorageError("node_exists", err)
	}

	return len(result.Item) > 0, nil
}

// ListNodes returns up to limit nodes, optionally filtered by exact type
// match. Filtered listings use the type GSI; unfiltered listings scan with
// an EntityType filter, paging until the limit is met.
func (s *Store) ListNodes(ctx context.Context, typeFilter string, limit int) ([]*graph.Node, error) {
	if typeFilter != "" {
		return s.listNodesByType(ctx, typeFilter, limit)
	}

	filter := expression.Name("EntityType").Equal(expression.Value(entityTypeNode))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, pkgerrors.NewStorageError("list_nodes", fmt.Errorf("build expression: %w", err))
	}

	nodes := make([]*graph.Node, 0, limit)
	var startKey map[string]types.AttributeValue

	for {
		input := &awsdynamodb.ScanInput{
			TableName:                 aws.String(s.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		}

		result, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewStorageError("list_nodes", err)
		}

		for _, raw := range result.Items {
			var item nodeItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				s.logger.Warn("skipping unreadable node item", zap.Error(err))
				continue
			}
			nodes = append(nodes, itemToNode(&item))
			if len(nodes) >= limit {
				return nodes, nil
			}
		}

		if result.LastEvaluatedKey == nil {
			return nodes, nil
		}
		startKey = result.LastEvaluatedKey
	}
}

func (s *Store) listNodesByType(ctx context.Context, nodeType string, limit int) ([]*graph.Node, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(typeKeyPrefix + nodeType))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.NewStorageError("list_nodes", fmt.Errorf("build expression: %w", err))
	}

	input := &awsdynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		IndexName:                 aws.String(s.typeIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(int32(limit)),
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list_nodes", err)
	}

	nodes := make([]*graph.Node, 0, len(result.Items))
	for _, raw := range result.Items {
		var item nodeItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			s.logger.Warn("skipping unreadable node item", zap.Error(err))
			continue
		}
		nodes = append(nodes, itemToNode(&item))
	}

	return nodes, nil
}

// ListEdges returns up to limit edges
func (s *Store) ListEdges(ctx context.Context, limit int) ([]*graph.Edge, error) {
	filter := expression.Name("EntityType").Equal(expression.Value(entityTypeEdge))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, pkgerrors.NewStorageError("list_edges", fmt.Errorf("build expression: %w", err))
	}

	edges := make([]*graph.Edge, 0, limit)
	var startKey map[string]types.AttributeValue

	for {
		input := &awsdynamodb.ScanInput{
			TableName:                 aws.String(s.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		}

		result, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewStorageError("list_edges", err)
		}

		for _, raw := range result.Items {
			var item edgeItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				s.logger.Warn("skipping unreadable edge item", zap.Error(err))
				continue
			}
			edges = append(edges, itemToEdge(&item))
			if len(edges) >= limit {
				return edges, nil
			}
		}

		if result.LastEvaluatedKey == nil {
			return edges, nil
		}
		startKey = result.LastEvaluatedKey
	}
}

// ExpandNeighborhood walks the graph breadth-first from startID, following
// edges in both directions up to depth hops. Incident edges of each frontier
// node are one adjacency Query; newly discovered node payloads are fetched
// level by level with BatchGetItem.
func (s *Store) ExpandNeighborhood(ctx context.Context, startID string, depth int) ([]*graph.Node, []*graph.Edge, error) {
	visited := map[string]bool{startID: true}
	seenEdges := make(map[string]bool)

	var nodes []*graph.Node
	var edges []*graph.Edge

	frontier := []string{startID}
	for d := 0; d < depth && len(frontier) > 0; d++ {
		var discovered []string

		for _, nodeID := range frontier {
			incident, err := s.incidentEdges(ctx, nodeID)
			if err != nil {
				return nil, nil, err
			}

			for _, edge := range incident {
				if !seenEdges[edge.ID] {
					seenEdges[edge.ID] = true
					edges = append(edges, edge)
				}

				neighborID, ok := edge.Other(nodeID)
				if !ok {
					continue
				}
				if !visited[neighborID] {
					visited[neighborID] = true
					discovered = append(discovered, neighborID)
				}
			}
		}

		if len(discovered) > 0 {
			fetched, err := s.batchGetNodes(ctx, discovered)
			if err != nil {
				return nil, nil, err
			}
			nodes = append(nodes, fetched...)
		}

		frontier = discovered
	}

	s.logger.Debug("neighborhood expanded",
		zap.String("startID", startID),
		zap.Int("depth", depth),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)))

	return nodes, edges, nil
}

// incidentEdges queries the adjacency partition of a node, returning every
// edge touching it in either direction
func (s *Store) incidentEdges(ctx context.Context, nodeID string) ([]*graph.Edge, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(adjKeyPrefix + nodeID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.NewStorageError("expand_neighborhood", fmt.Errorf("build expression: %w", err))
	}

	var edges []*graph.Edge
	var startKey map[string]types.AttributeValue

	for {
		input := &awsdynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		}

		result, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewStorageError("expand_neighborhood", err)
		}

		for _, raw := range result.Items {
			var item edgeItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				s.logger.Warn("skipping unreadable adjacency item", zap.Error(err))
				continue
			}
			edges = append(edges, itemToEdge(&item))
		}

		if result.LastEvaluatedKey == nil {
			return edges, nil
		}
		startKey = result.LastEvaluatedKey
	}
}

// batchGetNodes fetches node payloads by id in BatchGetItem chunks
func (s *Store) batchGetNodes(ctx context.Context, ids []string) ([]*graph.Node, error) {
	const batchSize = 100 // BatchGetItem ceiling

	nodes := make([]*graph.Node, 0, len(ids))

	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: nodeKeyPrefix + id},
				"SK": &types.AttributeValueMemberS{Value: metadataSK},
			})
		}

		input := &awsdynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				s.tableName: {Keys: keys},
			},
		}

		for len(input.RequestItems) > 0 {
			result, err := s.client.BatchGetItem(ctx, input)
			if err != nil {
				return nil, pkgerrors.NewStorageError("expand_neighborhood", err)
			}

			for _, raw := range result.Responses[s.tableName] {
				var item nodeItem
				if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
					s.logger.Warn("skipping unreadable node item", zap.Error(err))
					continue
				}
				nodes = append(nodes, itemToNode(&item))
			}

			// Retry unprocessed keys until drained
			if len(result.UnprocessedKeys) == 0 {
				break
			}
			input.RequestItems = result.UnprocessedKeys
		}
	}

	return nodes, nil
}

func itemToNode(item *nodeItem) *graph.Node {
	props := graph.Properties(item.Properties)
	if props == nil {
		props = graph.Properties{}
	}
	return &graph.Node{
		ID:         item.NodeID,
		Label:      item.Label,
		Type:       item.NodeType,
		Properties: props,
	}
}

func itemToEdge(item *edgeItem) *graph.Edge {
	props := graph.Properties(item.Properties)
	if props == nil {
		props = graph.Properties{}
	}
	return &graph.Edge{
		ID:         item.EdgeID,
		FromNode:   item.FromNode,
		ToNode:     item.ToNode,
		Label:      item.Label,
		Properties: props,
	}
}
