package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"webgraphy-backend/application/queries"
	pkgerrors "webgraphy-backend/pkg/errors"
)

// GraphHandler handles whole-graph HTTP requests
type GraphHandler struct {
	queryService *queries.GraphQueryService
	logger       *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(queryService *queries.GraphQueryService, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		queryService: queryService,
		logger:       logger,
	}
}

// GetGraph handles GET /graphs/
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", queries.DefaultLimit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	result, err := h.queryService.GetGraph(r.Context(), queries.GetGraphQuery{Limit: limit})
	if err != nil {
		if !pkgerrors.IsValidation(err) {
			h.logger.Error("failed to get graph", zap.Error(err))
		}
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// GetNeighbors handles GET /graphs/neighbors/{nodeID}
func (h *GraphHandler) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if nodeID == "" {
		respondErrorMessage(w, h.logger, http.StatusBadRequest, "node id is required")
		return
	}

	depth, err := parseIntParam(r, "depth", queries.DefaultDepth)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	query := queries.GetNeighborhoodQuery{
		NodeID: nodeID,
		Depth:  depth,
	}

	result, err := h.queryService.GetNeighborhood(r.Context(), query)
	if err != nil {
		if !pkgerrors.IsNotFound(err) && !pkgerrors.IsValidation(err) {
			h.logger.Error("failed to expand neighborhood",
				zap.String("nodeID", nodeID),
				zap.Int("depth", depth),
				zap.Error(err),
			)
		}
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}
