// Package qubo provides the algebraic kernel for Quadratic Unconstrained
// Binary Optimization: a sparse symmetric integer matrix, the evaluation
// function E(x) = xᵀQx, and the incremental delta-evaluation calculus that
// every solver in package solvers relies on for O(1)/O(n) neighbour costing.
//
// Under the hood:
//
//	Matrix    — sparse, symmetric, integer QUBO coefficients
//	Solution  — a binary assignment vector
//	Builder   — assembles a Matrix from Ising (bias, coupling) triples
//
// Complexity notes are attached per-method; see the Design Notes in
// DESIGN.md for the grounding of each piece.
package qubo
