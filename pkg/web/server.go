package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkorsbak/sattlint/pkg/analysis"
	"github.com/mkorsbak/sattlint/pkg/graph"
	"github.com/mkorsbak/sattlint/pkg/logging"
	"github.com/mkorsbak/sattlint/pkg/project"
)

// GraphNode is one unit in the JSON view of the dependency graph.
type GraphNode struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// GraphEdge is one reference edge in the JSON view.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GraphData holds the dependency graph for the viewer.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Server serves a finished resolution run as read-only JSON. The
// blueprint is immutable, so there is no locking and no re-resolution:
// the server is a viewer, nothing more.
type Server struct {
	router    *mux.Router
	blueprint *project.Blueprint
	report    *analysis.Report
	missing   []graph.MissingEntry
	graphData *GraphData
}

// NewServer creates a viewer over one finished run.
func NewServer(bp *project.Blueprint, rep *analysis.Report, g *graph.Graph) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		blueprint: bp,
		report:    rep,
		missing:   g.Missing(),
		graphData: buildGraphData(g),
	}
	s.setupRoutes()
	return s
}

func buildGraphData(g *graph.Graph) *GraphData {
	data := &GraphData{
		Nodes: make([]GraphNode, 0, g.Len()),
		Edges: make([]GraphEdge, 0),
	}
	for _, name := range g.Names() {
		node, _ := g.Node(name)
		data.Nodes = append(data.Nodes, GraphNode{
			ID:     name,
			Status: node.Status.String(),
			Path:   node.Path,
		})
	}
	for _, e := range g.Edges() {
		data.Edges = append(data.Edges, GraphEdge{Source: e[0], Target: e[1]})
	}
	return data
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/blueprint", s.handleBlueprint).Methods("GET")
	api.HandleFunc("/report", s.handleReport).Methods("GET")
	api.HandleFunc("/missing", s.handleMissing).Methods("GET")
	api.HandleFunc("/graph", s.handleGraph).Methods("GET")
}

// Start runs the HTTP server on the given port. It blocks until the
// server stops.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("serving project viewer", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// blueprintView is the JSON shape of the merged project.
type blueprintView struct {
	Root       string                  `json:"root"`
	Order      []string                `json:"order"`
	Symbols    []project.Symbol        `json:"symbols"`
	Manifest   []project.ManifestEntry `json:"manifest"`
	Collisions []project.Collision     `json:"collisions"`
}

func (s *Server) handleBlueprint(w http.ResponseWriter, r *http.Request) {
	symbols := make([]project.Symbol, 0, s.blueprint.Symbols.Len())
	for _, name := range s.blueprint.Symbols.Keys() {
		sym, _ := s.blueprint.Symbol(name)
		symbols = append(symbols, sym)
	}
	writeJSON(w, r, blueprintView{
		Root:       s.blueprint.Root,
		Order:      s.blueprint.Order,
		Symbols:    symbols,
		Manifest:   s.blueprint.Manifest,
		Collisions: s.blueprint.Collisions,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.report)
}

func (s *Server) handleMissing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.missing)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.graphData)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.ErrorContext(r.Context(), "encoding response", "error", err)
	}
}
