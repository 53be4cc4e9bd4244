package dimacs

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseFile parses the DIMACS file at path.
func ParseFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %q", path)
	}
	defer f.Close()
	pb, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %q", path)
	}
	return pb, nil
}

// Parse parses a DIMACS CNF or QDIMACS stream.
// Each clause and each quantifier block must sit on its own line and end with 0.
func Parse(r io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var pb Problem
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		var err error
		switch fields[0] {
		case "c":
			pb.Comments = append(pb.Comments, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "c")))
		case "p":
			err = pb.parseHeader(fields)
		case "a", "e":
			err = pb.parseBlock(fields)
		default:
			err = pb.parseClause(fields)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read problem")
	}
	return &pb, nil
}

func (pb *Problem) parseHeader(fields []string) error {
	if pb.header {
		return errors.New("multiple problem lines")
	}
	if len(fields) != 4 || fields[1] != "cnf" {
		return errors.Errorf("expected 'p cnf <vars> <clauses>', got %q", strings.Join(fields, " "))
	}
	var err error
	pb.NbVars, err = strconv.Atoi(fields[2])
	if err != nil || pb.NbVars < 0 {
		return errors.Errorf("invalid number of vars %q", fields[2])
	}
	pb.NbClauses, err = strconv.Atoi(fields[3])
	if err != nil || pb.NbClauses < 0 {
		return errors.Errorf("invalid number of clauses %q", fields[3])
	}
	pb.header = true
	return nil
}

func (pb *Problem) parseBlock(fields []string) error {
	if !pb.header {
		return errors.New("quantifier block before header")
	}
	if len(pb.Clauses) > 0 {
		return errors.New("quantifier block after clauses")
	}
	vars, err := parseInts(fields[1:])
	if err != nil {
		return err
	}
	for _, v := range vars {
		if v <= 0 {
			return errors.Errorf("invalid quantified variable %d", v)
		}
	}
	pb.Prefix = append(pb.Prefix, Block{Quant: fields[0][0], Vars: vars})
	return nil
}

func (pb *Problem) parseClause(fields []string) error {
	if !pb.header {
		return errors.New("clause before header")
	}
	clause, err := parseInts(fields)
	if err != nil {
		return err
	}
	pb.Clauses = append(pb.Clauses, clause)
	return nil
}

// parseInts parses a 0-terminated list of ints, without the final 0.
func parseInts(fields []string) ([]int, error) {
	ints := make([]int, 0, len(fields))
	for i, field := range fields {
		val, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Errorf("%q is not an int", field)
		}
		if val == 0 {
			if i != len(fields)-1 {
				return nil, errors.New("extra tokens after 0")
			}
			return ints, nil
		}
		ints = append(ints, val)
	}
	return nil, errors.New("missing terminating 0")
}
