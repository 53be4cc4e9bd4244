package gen

// An Equality is a pair of literals constrained by the clauses (A B) and (-A -B).
type Equality struct {
	A, B int
}

// A Gate is an AND-gate gadget: a wide clause (Head Tails...) and one
// binary clause (-Head -t) for each tail literal t.
// Tails may hold fewer than Arity literals when tail variables collided.
type Gate struct {
	Arity int
	Head  int
	Tails []int
}

// clauseLen draws a clause length: 3, plus one with probability 2/3, repeatedly,
// up to MaxClauseLen.
func clauseLen(r *Rand) int {
	n := minClauseLen
	for n < MaxClauseLen && r.Pick(17, 19) != 17 {
		n++
	}
	return n
}

// drift moves from layer i to earlier layers, one step at a time with probability 1/2.
func drift(r *Rand, i int) int {
	for i > 0 && r.Pick(3, 4) == 3 {
		i--
	}
	return i
}

func (g *generator) emitLayerClauses() {
	for i := range g.f.Layers {
		for range g.f.Layers[i].NbClauses {
			n := clauseLen(g.r)
			clause := make([]int, 0, n)
			for range n {
				l := &g.f.Layers[drift(g.r, i)]
				// A literal whose variable is already in the clause is dropped, not redrawn.
				if lit, ok := l.pool.take(g.r, g.marks); ok {
					clause = append(clause, lit)
				}
			}
			g.addClause(clause)
			g.marks.Clear()
		}
	}
	g.f.NbLayerClauses = len(g.f.Clauses)
}

func (g *generator) emitEqualities(n int) {
	layers := g.f.Layers
	for range n {
		var a, b int
		for a == b {
			i := g.r.Pick(0, len(layers)-1)
			j := g.r.Pick(0, len(layers)-1)
			a = g.r.Pick(layers[i].Low, layers[i].High)
			b = g.r.Pick(layers[j].Low, layers[j].High)
		}
		eq := Equality{A: a * g.r.Sign(), B: b * g.r.Sign()}
		g.f.Equalities = append(g.f.Equalities, eq)
		g.addClause([]int{eq.A, eq.B})
		g.addClause([]int{-eq.A, -eq.B})
	}
}

// sampleArities draws the arity of each AND gate, in [2, maxArity], where maxArity
// is half the mass of the last layer, capped below MaxClauseLen.
func sampleArities(r *Rand, layers []Layer, n int) []int {
	maxArity := min(layers[len(layers)-1].Mass/2, MaxClauseLen-1)
	arities := make([]int, n)
	for i := range arities {
		arities[i] = r.Pick(2, maxArity)
	}
	return arities
}

func (g *generator) randomVar() int {
	l := &g.f.Layers[g.r.Pick(0, len(g.f.Layers)-1)]
	return g.r.Pick(l.Low, l.High)
}

func (g *generator) emitGates(arities []int) {
	for _, arity := range arities {
		head := g.randomVar()
		g.marks.Add(head)
		gate := Gate{Arity: arity, Head: head * g.r.Sign()}
		for range arity {
			v := g.randomVar()
			if !g.marks.Add(v) {
				continue
			}
			gate.Tails = append(gate.Tails, v*g.r.Sign())
		}
		g.marks.Clear()
		g.f.Gates = append(g.f.Gates, gate)
		g.addClause(append([]int{gate.Head}, gate.Tails...))
		for _, t := range gate.Tails {
			g.addClause([]int{-gate.Head, -t})
		}
	}
}
