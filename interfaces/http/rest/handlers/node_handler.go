package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"webgraphy-backend/application/commands"
	"webgraphy-backend/application/queries"
	"webgraphy-backend/domain/graph"
	pkgerrors "webgraphy-backend/pkg/errors"
	"webgraphy-backend/pkg/utils"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	commandService *commands.GraphCommandService
	queryService   *queries.GraphQueryService
	logger         *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(
	commandService *commands.GraphCommandService,
	queryService *queries.GraphQueryService,
	logger *zap.Logger,
) *NodeHandler {
	return &NodeHandler{
		commandService: commandService,
		queryService:   queryService,
		logger:         logger,
	}
}

// CreateNodeRequest represents the request body for creating a node
type CreateNodeRequest struct {
	ID         string           `json:"id,omitempty"`
	Label      string           `json:"label" validate:"required"`
	Type       string           `json:"type" validate:"required"`
	Properties graph.Properties `json:"properties,omitempty"`
}

// CreateNode handles POST /graphs/nodes/
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, h.logger, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondErrorMessage(w, h.logger, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	cmd := commands.CreateNodeCommand{
		ID:         req.ID,
		Label:      req.Label,
		Type:       req.Type,
		Properties: req.Properties,
	}

	node, err := h.commandService.CreateNode(r.Context(), cmd)
	if err != nil {
		h.logger.Error("failed to create node",
			zap.String("label", req.Label),
			zap.Error(err),
		)
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, node)
}

// GetNode handles GET /graphs/nodes/{nodeID}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if nodeID == "" {
		respondErrorMessage(w, h.logger, http.StatusBadRequest, "node id is required")
		return
	}

	node, err := h.queryService.GetNode(r.Context(), queries.GetNodeQuery{NodeID: nodeID})
	if err != nil {
		if !pkgerrors.IsNotFound(err) {
			h.logger.Error("failed to get node",
				zap.String("nodeID", nodeID),
				zap.Error(err),
			)
		}
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, node)
}

// ListNodes handles GET /graphs/nodes/
func (h *NodeHandler) ListNodes(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", queries.DefaultLimit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	query := queries.ListNodesQuery{
		Type:  r.URL.Query().Get("type"),
		Limit: limit,
	}

	nodes, err := h.queryService.ListNodes(r.Context(), query)
	if err != nil {
		if !pkgerrors.IsValidation(err) {
			h.logger.Error("failed to list nodes", zap.Error(err))
		}
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, nodes)
}
