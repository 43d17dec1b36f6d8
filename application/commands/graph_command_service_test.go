package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"webgraphy-backend/domain/graph"
	"webgraphy-backend/infrastructure/persistence/memory"
	pkgerrors "webgraphy-backend/pkg/errors"
)

func newTestService(t *testing.T) (*GraphCommandService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewGraphCommandService(store, zap.NewNop(), nil), store
}

func TestCreateNodeAssignsID(t *testing.T) {
	svc, _ := newTestService(t)

	node, err := svc.CreateNode(context.Background(), CreateNodeCommand{
		Label: "Alice",
		Type:  "person",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, node.ID)
	assert.Equal(t, "Alice", node.Label)
}

func TestCreateNodeKeepsSuppliedID(t *testing.T) {
	svc, store := newTestService(t)

	node, err := svc.CreateNode(context.Background(), CreateNodeCommand{
		ID:    "alice-1",
		Label: "Alice",
		Type:  "person",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice-1", node.ID)

	stored, err := store.GetNode(context.Background(), "alice-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Label)
}

func TestCreateNodeValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		cmd  CreateNodeCommand
	}{
		{name: "missing label", cmd: CreateNodeCommand{Type: "person"}},
		{name: "missing type", cmd: CreateNodeCommand{Label: "Alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateNode(context.Background(), tt.cmd)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}
}

func TestCreateNodePropertiesRoundTrip(t *testing.T) {
	svc, store := newTestService(t)

	props := graph.Properties{"age": 30, "active": true, "nickname": "al"}
	node, err := svc.CreateNode(context.Background(), CreateNodeCommand{
		Label:      "Alice",
		Type:       "person",
		Properties: props,
	})
	require.NoError(t, err)

	stored, err := store.GetNode(context.Background(), node.ID)
	require.NoError(t, err)
	assert.Equal(t, props, stored.Properties)
}

func TestCreateEdge(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.CreateNode(context.Background(), CreateNodeCommand{Label: "Alice", Type: "person"})
	require.NoError(t, err)
	bob, err := svc.CreateNode(context.Background(), CreateNodeCommand{Label: "Bob", Type: "person"})
	require.NoError(t, err)

	edge, err := svc.CreateEdge(context.Background(), CreateEdgeCommand{
		FromNode: alice.ID,
		ToNode:   bob.ID,
		Label:    "KNOWS",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, edge.ID)
	assert.Equal(t, alice.ID, edge.FromNode)
	assert.Equal(t, bob.ID, edge.ToNode)
}

func TestCreateEdgeValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		cmd  CreateEdgeCommand
	}{
		{name: "missing from_node", cmd: CreateEdgeCommand{ToNode: "b", Label: "KNOWS"}},
		{name: "missing to_node", cmd: CreateEdgeCommand{FromNode: "a", Label: "KNOWS"}},
		{name: "missing label", cmd: CreateEdgeCommand{FromNode: "a", ToNode: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEdge(context.Background(), tt.cmd)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}
}

func TestCreateEdgeMissingEndpoint(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.CreateNode(context.Background(), CreateNodeCommand{Label: "Alice", Type: "person"})
	require.NoError(t, err)

	_, err = svc.CreateEdge(context.Background(), CreateEdgeCommand{
		FromNode: alice.ID,
		ToNode:   "nonexistent",
		Label:    "KNOWS",
	})
	assert.True(t, pkgerrors.IsStorage(err))
}
