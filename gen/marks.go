package gen

// Marks is the set of variables used by the clause or gadget under construction.
// It is emptied after each clause and gadget, so a single table serves a whole
// formula, or several formulas built one after the other.
type Marks struct {
	seen []bool
	used []int
}

// NewMarks returns an empty table for variables 1..nbVars.
// The table grows if a higher variable is marked.
func NewMarks(nbVars int) *Marks {
	return &Marks{seen: make([]bool, nbVars+1)}
}

// Add marks v and returns true, or returns false if v was already marked.
func (m *Marks) Add(v int) bool {
	if v >= len(m.seen) {
		m.seen = append(m.seen, make([]bool, v+1-len(m.seen))...)
	}
	if m.seen[v] {
		return false
	}
	m.seen[v] = true
	m.used = append(m.used, v)
	return true
}

// Has returns true iff v is marked.
func (m *Marks) Has(v int) bool {
	return v < len(m.seen) && m.seen[v]
}

// Len returns the number of marked variables.
func (m *Marks) Len() int {
	return len(m.used)
}

// Clear unmarks every variable marked since the last clear.
func (m *Marks) Clear() {
	for _, v := range m.used {
		m.seen[v] = false
	}
	m.used = m.used[:0]
}

func abs(lit int) int {
	if lit < 0 {
		return -lit
	}
	return lit
}
