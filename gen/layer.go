package gen

import (
	"fmt"
	"slices"
)

// Quantifier is the quantifier of a layer in QDIMACS mode.
type Quantifier int

const (
	// Universal layers are printed as "a" blocks.
	Universal Quantifier = -1
	// Free means no quantifier. Only meaningful for layer 0, which is then left out of the prefix.
	Free Quantifier = 0
	// Existential layers are printed as "e" blocks.
	Existential Quantifier = 1
)

func (q Quantifier) String() string {
	if q < 0 {
		return "a"
	}
	return "e"
}

// A Layer is a contiguous range of variables with its own literal pool
// and clause count.
type Layer struct {
	Index     int
	Low       int // First variable
	High      int // Last variable
	Width     int
	Mass      int // Width of this layer plus width of the previous one
	Quant     Quantifier
	NbClauses int
	pool      pool
}

// Vars returns the variables of the layer, in ascending order.
func (l *Layer) Vars() []int {
	vars := make([]int, 0, l.Width)
	for v := l.Low; v <= l.High; v++ {
		vars = append(vars, v)
	}
	return vars
}

// Remaining returns the number of literals left in the layer's pool.
func (l *Layer) Remaining() int {
	return len(l.pool.lits)
}

func (l *Layer) comment() string {
	return fmt.Sprintf("layer[%d] = [%d..%d] w=%d v=%d c=%d r=%.2f q=%d",
		l.Index, l.Low, l.High, l.Width, l.Mass, l.NbClauses,
		float64(l.NbClauses)/float64(l.Mass), int(l.Quant))
}

// buildLayers draws the width, quantifier and clause count of each layer.
func buildLayers(r *Rand, s Shape, quantified bool) []Layer {
	layers := make([]Layer, s.NbLayers)
	for i := range layers {
		l := &layers[i]
		l.Index = i
		l.Width = r.Pick(minWidth, s.Width)
		if quantified {
			l.Quant = Quantifier(r.Pick(-1, 1))
		}
		l.Low = 1
		l.Mass = l.Width
		if i > 0 {
			l.Low = layers[i-1].High + 1
			l.Mass += layers[i-1].Width
		}
		l.High = l.Low + l.Width - 1
		l.NbClauses = r.Pick(300, 450) * l.Mass / 100
		l.pool = newPool(l.Low, l.High)
	}
	return layers
}

// A pool hands out literals of a variable range.
// Literals are drawn without replacement while the pool lasts,
// then variables are drawn from the range with a random sign.
type pool struct {
	low, high int
	lits      []int
}

func newPool(low, high int) pool {
	lits := make([]int, 0, 2*(high-low+1))
	for v := low; v <= high; v++ {
		lits = append(lits, -v, v)
	}
	return pool{low: low, high: high, lits: lits}
}

// take draws a literal whose variable is not in m and adds it to m.
// If the drawn variable is already in m, the draw is lost and ok is false.
func (p *pool) take(r *Rand, m *Marks) (lit int, ok bool) {
	if len(p.lits) > 0 {
		i := r.Pick(0, len(p.lits)-1)
		lit = p.lits[i]
		p.lits = slices.Delete(p.lits, i, i+1)
		if !m.Add(abs(lit)) {
			return 0, false
		}
		return lit, true
	}
	v := r.Pick(p.low, p.high)
	if !m.Add(v) {
		return 0, false
	}
	return v * r.Sign(), true
}
