// Package sat defines the k-SAT problem representation (DIMACS CNF form)
// that package reductions transforms into a QUBO instance, and the
// DIMACS CNF parser that is this system's file-input collaborator.
package sat
