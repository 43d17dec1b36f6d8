package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"webgraphy-backend/application/commands"
	"webgraphy-backend/application/queries"
	"webgraphy-backend/infrastructure/persistence/memory"
	"webgraphy-backend/pkg/observability"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	store := memory.NewStore()
	logger := zap.NewNop()
	collector := observability.NewCollector("webgraphy_test")
	commandService := commands.NewGraphCommandService(store, logger, collector)
	queryService := queries.NewGraphQueryService(store, logger, collector)
	return NewRouter(commandService, queryService, collector, logger, true).Setup()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createNode(t *testing.T, handler http.Handler, label, nodeType string) string {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/graphs/nodes/", map[string]interface{}{
		"label": label,
		"type":  nodeType,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var node struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &node)
	require.NotEmpty(t, node.ID)
	return node.ID
}

func createEdge(t *testing.T, handler http.Handler, from, to, label string) {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/graphs/edges/", map[string]interface{}{
		"from_node": from,
		"to_node":   to,
		"label":     label,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestProbes(t *testing.T) {
	handler := newTestHandler(t)

	for _, path := range []string{"/", "/health", "/ready", "/metrics"} {
		rec := doJSON(t, handler, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestCreateNodeEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/graphs/nodes/", map[string]interface{}{
		"label":      "Alice",
		"type":       "person",
		"properties": map[string]interface{}{"age": 30},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var node struct {
		ID         string                 `json:"id"`
		Label      string                 `json:"label"`
		Type       string                 `json:"type"`
		Properties map[string]interface{} `json:"properties"`
	}
	decodeBody(t, rec, &node)
	assert.NotEmpty(t, node.ID)
	assert.Equal(t, "Alice", node.Label)
	assert.Equal(t, "person", node.Type)
	assert.Equal(t, float64(30), node.Properties["age"])
}

func TestCreateNodeRejectsInvalidBody(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "missing label", body: map[string]interface{}{"type": "person"}},
		{name: "missing type", body: map[string]interface{}{"label": "Alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/api/v1/graphs/nodes/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/graphs/nodes/", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNodeEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	id := createNode(t, handler, "Alice", "person")

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/graphs/nodes/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/graphs/nodes/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Error)
	assert.Equal(t, http.StatusNotFound, body.Code)
}

func TestListNodesEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	createNode(t, handler, "Alice", "person")
	createNode(t, handler, "Berlin", "place")

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/graphs/nodes/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var nodes []map[string]interface{}
	decodeBody(t, rec, &nodes)
	assert.Len(t, nodes, 2)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/graphs/nodes/?type=person", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &nodes)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Alice", nodes[0]["label"])

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/graphs/nodes/?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &nodes)
	assert.Len(t, nodes, 1)
}

func TestListNodesRejectsBadLimit(t *testing.T) {
	handler := newTestHandler(t)

	for _, limit := range []string{"0", "-1", "2000", "abc"} {
		rec := doJSON(t, handler, http.MethodGet, "/api/v1/graphs/nodes/?limit="+limit, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit %s", limit)
	}
}

func TestCreateEdgeEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	alice := createNode(t, handler, "Alice", "person")
	bob := createNode(t, handler, "Bob", "person")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/graphs/edges/", map[string]interface{}{
		"from_node": alice,
		"to_node":   bob,
		"label":     "KNOWS",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var edge struct {
		ID       string `json:"id"`
		FromNode string `json:"from_node"`
		ToNode   string `json:"to_node"`
		Label    string `json:"label"`
	}
	decodeBody(t, rec, &edge)
	assert.NotEmpty(t, edge.ID)
	assert.Equal(t, alice, edge.FromNode)
	assert.Equal(t, bob, edge.ToNode)
	assert.Equal(t, "KNOWS", edge.Label)
}

func TestCreateEdgeRejectsMissingEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	alice := createNode(t, handler, "Alice", "person")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/graphs/edges/", map[string]interface{}{
		"from_node": alice,
		"to_node":   "nonexistent",
		"label":     "KNOWS",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetGraphEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	alice := createNode(t, handler, "Alice", "person")
	bob := createNode(t, handler, "Bob", "person")
	createEdge(t, handler, alice, bob, "KNOWS")

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/graphs/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Nodes []map[string]interface{} `json:"nodes"`
		Edges []map[string]interface{} `json:"edges"`
	}
	decodeBody(t, rec, &body)
	assert.Len(t, body.Nodes, 2)
	assert.Len(t, body.Edges, 1)
}

func TestGetNeighborsEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	a := createNode(t, handler, "A", "thing")
	b := createNode(t, handler, "B", "thing")
	c := createNode(t, handler, "C", "thing")
	createEdge(t, handler, a, b, "LINKS")
	createEdge(t, handler, b, c, "LINKS")

	var body struct {
		Nodes []map[string]interface{} `json:"nodes"`
		Edges []map[string]interface{} `json:"edges"`
	}

	// Default depth is one hop
	rec := doJSON(t, handler, http.MethodGet, "/api/v1/graphs/neighbors/"+a, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	assert.Len(t, body.Nodes, 2)
	assert.Len(t, body.Edges, 1)

	rec = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/graphs/neighbors/%s?depth=2", a), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	assert.Len(t, body.Nodes, 3)
	assert.Len(t, body.Edges, 2)
}

func TestGetNeighborsErrors(t *testing.T) {
	handler := newTestHandler(t)
	a := createNode(t, handler, "A", "thing")

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/graphs/neighbors/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, depth := range []string{"0", "4", "-1", "abc"} {
		rec := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/v1/graphs/neighbors/%s?depth=%s", a, depth), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "depth %s", depth)
	}
}

func TestCORSHeaders(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/graphs/nodes/", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
