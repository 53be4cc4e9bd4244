package gen

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
)

// A Formula is a generated CNF or QDIMACS problem.
type Formula struct {
	Seed           int64
	QBF            bool        // Quantified mode was requested
	Forced         bool        // Quantified mode was requested but forced back to propositional
	Fuzz           *OptionFuzz // Nil if no option file was given
	Shape          Shape
	Layers         []Layer
	NbVars         int
	Clauses        [][]int // All clauses, in emission order
	NbLayerClauses int     // Number of leading clauses coming from layers
	Equalities     []Equality
	Gates          []Gate
	comments       []string
}

// Quantified is true iff the formula has a QDIMACS prefix.
func (f *Formula) Quantified() bool {
	return f.QBF && !f.Forced
}

// Comments returns the comment lines, without their "c " prefix.
func (f *Formula) Comments() []string {
	return f.comments
}

// A Block is one line of the quantifier prefix.
type Block struct {
	Quant Quantifier
	Vars  []int
}

// Prefix returns the quantifier blocks, one per layer except an unquantified layer 0.
// It is empty for propositional formulas.
func (f *Formula) Prefix() []Block {
	if !f.Quantified() {
		return nil
	}
	var blocks []Block
	for i := range f.Layers {
		l := &f.Layers[i]
		if i == 0 && l.Quant == Free {
			continue
		}
		blocks = append(blocks, Block{Quant: l.Quant, Vars: l.Vars()})
	}
	return blocks
}

// AddTo adds every clause of f to dst, each terminated by z.LitNull.
// The quantifier prefix is not transmitted.
func (f *Formula) AddTo(dst inter.Adder) {
	for _, clause := range f.Clauses {
		for _, lit := range clause {
			dst.Add(z.Dimacs2Lit(lit))
		}
		dst.Add(z.LitNull)
	}
}

// WriteTo writes f in DIMACS (or QDIMACS) syntax.
func (f *Formula) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	var buf []byte
	for _, c := range f.comments {
		bw.WriteString("c ")
		bw.WriteString(c)
		bw.WriteByte('\n')
	}
	buf = append(buf[:0], "p cnf "...)
	buf = strconv.AppendInt(buf, int64(f.NbVars), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(len(f.Clauses)), 10)
	buf = append(buf, '\n')
	bw.Write(buf)
	for _, b := range f.Prefix() {
		bw.Write(appendLine(buf[:0], b.Quant.String(), b.Vars))
	}
	for _, clause := range f.Clauses {
		bw.Write(appendLine(buf[:0], "", clause))
	}
	if err := bw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// CNF returns the text WriteTo would write.
func (f *Formula) CNF() string {
	var b bytes.Buffer
	f.WriteTo(&b)
	return b.String()
}

// appendLine appends "[prefix ]x1 x2 ... 0\n" to buf.
func appendLine(buf []byte, prefix string, ints []int) []byte {
	if prefix != "" {
		buf = append(buf, prefix...)
		buf = append(buf, ' ')
	}
	for _, x := range ints {
		buf = strconv.AppendInt(buf, int64(x), 10)
		buf = append(buf, ' ')
	}
	return append(buf, '0', '\n')
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
