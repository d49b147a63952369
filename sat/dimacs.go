package sat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseDIMACS reads a standard DIMACS CNF benchmark from r and returns the
// corresponding Problem. Per spec.md §6:
//
//	- lines starting with 'c' are comments and are skipped
//	- the header line is "p cnf <nb_vars> <nb_clauses>"
//	- each clause is a whitespace-separated list of non-zero signed
//	  integers terminated by a literal 0; positive = positive literal,
//	  negative = negated literal, |value| is the 1-based variable index
//	- exactly nb_clauses clauses must follow; every variable index must lie
//	  in 1..=nb_vars
//
// Complexity: O(file size).
func ParseDIMACS(r io.Reader) (*Problem, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	nbVars, nbClauses, err := scanHeader(scanner)
	if err != nil {
		return nil, err
	}

	clauses := make([]Clause, 0, nbClauses)
	var pending []int

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		for _, tok := range strings.Fields(line) {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("sat: token %q: %w", tok, ErrBadToken)
			}
			if n == 0 {
				clause, err := clauseFromLiterals(pending, nbVars)
				if err != nil {
					return nil, err
				}
				clauses = append(clauses, clause)
				pending = nil
				continue
			}
			pending = append(pending, n)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sat: reading CNF body: %w", err)
	}
	if len(pending) != 0 {
		return nil, ErrMissingTerminator
	}
	if uint(len(clauses)) != nbClauses {
		return nil, fmt.Errorf("sat: header declared %d clauses, found %d: %w", nbClauses, len(clauses), ErrClauseCountMismatch)
	}

	return NewProblem(nbVars, clauses)
}

func scanHeader(scanner *bufio.Scanner) (nbVars, nbClauses uint, err error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
			return 0, 0, fmt.Errorf("sat: header line %q: %w", line, ErrBadHeader)
		}
		n, errN := strconv.ParseUint(fields[2], 10, 64)
		m, errM := strconv.ParseUint(fields[3], 10, 64)
		if errN != nil || errM != nil {
			return 0, 0, fmt.Errorf("sat: header line %q: %w", line, ErrBadHeader)
		}
		return uint(n), uint(m), nil
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("sat: reading header: %w", err)
	}
	return 0, 0, ErrBadHeader
}

func clauseFromLiterals(literals []int, nbVars uint) (Clause, error) {
	if len(literals) == 0 {
		return nil, ErrEmptyClause
	}
	clause := make(Clause, len(literals))
	for i, lit := range literals {
		idx := lit
		if idx < 0 {
			idx = -idx
		}
		varIndex := uint(idx - 1)
		if varIndex >= nbVars {
			return nil, fmt.Errorf("sat: variable %d: %w", idx, ErrVariableOutOfRange)
		}
		clause[i] = Variable{Positive: lit > 0, Index: varIndex}
	}
	return clause, nil
}
