package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// verticesTotal counts registered vertices by label.
	verticesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "symdiff_graph_vertices_total",
		Help: "Total vertices registered in execution graphs by label",
	}, []string{"label"})

	// edgesTotal counts registered edges by operation name.
	edgesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "symdiff_graph_edges_total",
		Help: "Total edges registered in execution graphs by operation",
	}, []string{"op"})

	// edgeErrors counts rejected edges by error type.
	edgeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "symdiff_graph_edge_errors_total",
		Help: "Total rejected edge registrations by error type",
	}, []string{"error_type"})
)
