// Package instance stores problem instances on disk and generates random
// ones.
//
// Files are YAML (.yaml, .yml) or JSON (.json), chosen by extension:
//
//	name: small
//	profit: [1, 4, 1]
//	weight: [1, 2, 3]
//	edges: [[0, 2]]
//	max_weight: 3
//	convention: predecessor-first
//
// Generators are deterministic for a given seed; seed 0 selects a fixed
// default stream.
package instance
