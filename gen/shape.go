package gen

import "fmt"

const (
	// MaxClauseLen is the absolute cap on sampled clause lengths.
	MaxClauseLen = 20
	minClauseLen = 3
	minWidth     = 10
	maxWidth     = 70
	maxLayers    = 20
	maxEqs       = 99
	maxAnds      = 99
)

// A Shape holds the global parameters of a formula.
type Shape struct {
	Width    int // Upper bound for layer widths
	Scramble int // Reserved, sampled but unused
	NbLayers int
	NbEqs    int // Number of equality constraints
	NbAnds   int // Number of AND gates
}

// SampleShape draws the global parameters from r.
func SampleShape(r *Rand) Shape {
	var s Shape
	s.Width = r.Pick(minWidth, maxWidth)
	s.Scramble = r.Pick(-1, 1)
	s.NbLayers = r.Pick(1, maxLayers)
	if r.Pick(0, 2) == 0 {
		s.NbEqs = r.Pick(0, maxEqs)
	}
	if r.Pick(0, 1) == 0 {
		s.NbAnds = r.Pick(0, maxAnds)
	}
	return s
}

func (s Shape) comments() []string {
	return []string{
		fmt.Sprintf("width %d", s.Width),
		fmt.Sprintf("scramble %d", s.Scramble),
		fmt.Sprintf("layers %d", s.NbLayers),
		fmt.Sprintf("equalities %d", s.NbEqs),
		fmt.Sprintf("ands %d", s.NbAnds),
	}
}
