package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"webgraphy-backend/application/commands"
	"webgraphy-backend/application/queries"
	"webgraphy-backend/domain/graph"
	pkgerrors "webgraphy-backend/pkg/errors"
	"webgraphy-backend/pkg/utils"
)

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	commandService *commands.GraphCommandService
	queryService   *queries.GraphQueryService
	logger         *zap.Logger
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(
	commandService *commands.GraphCommandService,
	queryService *queries.GraphQueryService,
	logger *zap.Logger,
) *EdgeHandler {
	return &EdgeHandler{
		commandService: commandService,
		queryService:   queryService,
		logger:         logger,
	}
}

// CreateEdgeRequest represents the request body for creating an edge
type CreateEdgeRequest struct {
	ID         string           `json:"id,omitempty"`
	FromNode   string           `json:"from_node" validate:"required"`
	ToNode     string           `json:"to_node" validate:"required"`
	Label      string           `json:"label" validate:"required"`
	Properties graph.Properties `json:"properties,omitempty"`
}

// CreateEdge handles POST /graphs/edges/
func (h *EdgeHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req CreateEdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, h.logger, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondErrorMessage(w, h.logger, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	cmd := commands.CreateEdgeCommand{
		ID:         req.ID,
		FromNode:   req.FromNode,
		ToNode:     req.ToNode,
		Label:      req.Label,
		Properties: req.Properties,
	}

	edge, err := h.commandService.CreateEdge(r.Context(), cmd)
	if err != nil {
		h.logger.Error("failed to create edge",
			zap.String("fromNode", req.FromNode),
			zap.String("toNode", req.ToNode),
			zap.Error(err),
		)
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, edge)
}

// ListEdges handles GET /graphs/edges/
func (h *EdgeHandler) ListEdges(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", queries.DefaultLimit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	edges, err := h.queryService.ListEdges(r.Context(), queries.ListEdgesQuery{Limit: limit})
	if err != nil {
		if !pkgerrors.IsValidation(err) {
			h.logger.Error("failed to list edges", zap.Error(err))
		}
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, edges)
}
