package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"webgraphy-backend/application/commands"
	"webgraphy-backend/application/queries"
	"webgraphy-backend/interfaces/http/rest/handlers"
	"webgraphy-backend/interfaces/http/rest/middleware"
	"webgraphy-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	commandService *commands.GraphCommandService
	queryService   *queries.GraphQueryService
	collector      *observability.Collector
	logger         *zap.Logger
	enableCORS     bool
}

// NewRouter creates a new router instance
func NewRouter(
	commandService *commands.GraphCommandService,
	queryService *queries.GraphQueryService,
	collector *observability.Collector,
	logger *zap.Logger,
	enableCORS bool,
) *Router {
	return &Router{
		commandService: commandService,
		queryService:   queryService,
		collector:      collector,
		logger:         logger,
		enableCORS:     enableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.collector))

	// Permissive CORS so browser frontends can query the graph directly
	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Service info and probes
	router.Get("/", rt.root)
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Method(http.MethodGet, "/metrics", rt.collector.Handler())

	// API v1 routes
	router.Route("/api/v1/graphs", func(r chi.Router) {
		nodeHandler := handlers.NewNodeHandler(rt.commandService, rt.queryService, rt.logger)
		edgeHandler := handlers.NewEdgeHandler(rt.commandService, rt.queryService, rt.logger)
		graphHandler := handlers.NewGraphHandler(rt.queryService, rt.logger)

		r.Get("/", graphHandler.GetGraph)

		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", nodeHandler.CreateNode)
			r.Get("/", nodeHandler.ListNodes)
			r.Get("/{nodeID}", nodeHandler.GetNode)
		})

		r.Route("/edges", func(r chi.Router) {
			r.Post("/", edgeHandler.CreateEdge)
			r.Get("/", edgeHandler.ListEdges)
		})

		r.Get("/neighbors/{nodeID}", graphHandler.GetNeighbors)
	})

	return router
}

// root provides basic information about the API
func (rt *Router) root(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"Welcome to Webgraphy API","version":"0.1.0"}`))
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
