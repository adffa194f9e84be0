// Package metrics exposes solver activity as Prometheus collectors.
//
// A Recorder is created once per process (or per registry) and handed to
// the solver through its options. Every method is safe on a nil *Recorder,
// so callers that do not collect metrics simply pass nil.
//
// Collected series (namespace and subsystem are configurable):
//
//	<ns>_<sub>_solves_total{status}          finished solves by status
//	<ns>_<sub>_nodes_total{outcome}          branch-and-bound node outcomes
//	<ns>_<sub>_incumbent_updates_total       improving solutions found
//	<ns>_<sub>_solve_duration_seconds        wall time per solve
//	<ns>_<sub>_relaxation_cuts               min-cut problems per relaxation
package metrics
