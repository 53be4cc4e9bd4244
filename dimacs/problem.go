// Package dimacs reads DIMACS CNF and QDIMACS files and checks their structure.
//
// This package does not solve anything. It is meant to audit generated files:
// the header must match the clauses, literals must be in range, no clause may
// mention a variable twice, and quantifier blocks must not overlap.
package dimacs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// A Block is a quantifier line of a QDIMACS prefix.
type Block struct {
	Quant byte // 'a' or 'e'
	Vars  []int
}

// A Problem is the content of a DIMACS or QDIMACS file.
type Problem struct {
	NbVars    int // As declared in the header
	NbClauses int // As declared in the header
	Comments  []string
	Prefix    []Block
	Clauses   [][]int
	header    bool
}

// Comment returns the value of the first comment "c <key> <value>", if any.
// For a comment made of the key alone, value is empty and ok is true.
func (pb *Problem) Comment(key string) (value string, ok bool) {
	for _, c := range pb.Comments {
		if c == key {
			return "", true
		}
		if strings.HasPrefix(c, key+" ") {
			return strings.TrimSpace(c[len(key)+1:]), true
		}
	}
	return "", false
}

// MaxVar returns the highest variable appearing in a clause.
func (pb *Problem) MaxVar() int {
	res := 0
	for _, clause := range pb.Clauses {
		for _, lit := range clause {
			if v := abs(lit); v > res {
				res = v
			}
		}
	}
	return res
}

// Validate checks the problem is well-formed.
// It returns an error describing the first inconsistency found.
func (pb *Problem) Validate() error {
	if !pb.header {
		return errors.New("missing 'p cnf' header")
	}
	if len(pb.Clauses) != pb.NbClauses {
		return errors.Errorf("header says %d clauses, found %d", pb.NbClauses, len(pb.Clauses))
	}
	top, err := pb.checkRanges()
	if err != nil {
		return err
	}
	// Tables are sized from the variables in use, not from the header.
	seen := make([]int, top+1) // Index of the last clause mentioning each var, plus one
	for i, clause := range pb.Clauses {
		for _, lit := range clause {
			v := abs(lit)
			if seen[v] == i+1 {
				return errors.Errorf("clause #%d: variable %d appears twice", i+1, v)
			}
			seen[v] = i + 1
		}
	}
	quantified := make([]bool, top+1)
	for i, b := range pb.Prefix {
		for _, v := range b.Vars {
			if quantified[v] {
				return errors.Errorf("block #%d: variable %d already quantified", i+1, v)
			}
			quantified[v] = true
		}
	}
	return nil
}

// checkRanges checks every clause is non-empty and every variable is in 1..NbVars.
// It returns the highest variable found.
func (pb *Problem) checkRanges() (top int, err error) {
	for i, clause := range pb.Clauses {
		if len(clause) == 0 {
			return 0, errors.Errorf("clause #%d is empty", i+1)
		}
		for _, lit := range clause {
			v := abs(lit)
			if v < 1 || v > pb.NbVars {
				return 0, errors.Errorf("clause #%d: literal %d out of range 1..%d", i+1, lit, pb.NbVars)
			}
			top = max(top, v)
		}
	}
	for i, b := range pb.Prefix {
		for _, v := range b.Vars {
			if v < 1 || v > pb.NbVars {
				return 0, errors.Errorf("block #%d: variable %d out of range 1..%d", i+1, v, pb.NbVars)
			}
			top = max(top, v)
		}
	}
	return top, nil
}

// CNF returns a representation of the problem using the DIMACS syntax.
func (pb *Problem) CNF() string {
	lines := make([]string, 0, len(pb.Comments)+len(pb.Prefix)+len(pb.Clauses)+1)
	for _, c := range pb.Comments {
		lines = append(lines, "c "+c)
	}
	lines = append(lines, fmt.Sprintf("p cnf %d %d", pb.NbVars, pb.NbClauses))
	for _, b := range pb.Prefix {
		lines = append(lines, string(b.Quant)+" "+joinInts(b.Vars))
	}
	for _, clause := range pb.Clauses {
		lines = append(lines, joinInts(clause))
	}
	return strings.Join(lines, "\n") + "\n"
}

func joinInts(ints []int) string {
	strs := make([]string, len(ints)+1)
	for i, x := range ints {
		strs[i] = fmt.Sprintf("%d", x)
	}
	strs[len(ints)] = "0"
	return strings.Join(strs, " ")
}

func abs(lit int) int {
	if lit < 0 {
		return -lit
	}
	return lit
}
