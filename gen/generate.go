package gen

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrSeedOverflow is returned for seeds that are negative or too large.
var ErrSeedOverflow = errors.New("seed overflow")

// Config holds the inputs of a generation run.
type Config struct {
	Seed    int64
	QBF     bool               // Request QDIMACS output
	Options *OptionFile        // Nil if no option file was given
	Log     logrus.FieldLogger // Debug traces; nil discards them
	Marks   *Marks             // Visited-variable table, empty; nil allocates one
}

type generator struct {
	r     *Rand
	f     *Formula
	marks *Marks
	log   logrus.FieldLogger
}

func newGenerator(r *Rand, m *Marks, log logrus.FieldLogger) *generator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &generator{r: r, f: &Formula{Seed: r.Seed()}, marks: m, log: log}
}

func (g *generator) comment(format string, args ...interface{}) {
	g.f.comments = append(g.f.comments, fmt.Sprintf(format, args...))
}

func (g *generator) addClause(clause []int) {
	g.f.Clauses = append(g.f.Clauses, clause)
}

// Generate runs the whole pipeline for cfg.
func Generate(cfg Config) (*Formula, error) {
	if cfg.Seed < 0 {
		return nil, errors.Wrapf(ErrSeedOverflow, "%d", cfg.Seed)
	}
	return GenerateFrom(NewRand(cfg.Seed), cfg), nil
}

// GenerateFrom runs the whole pipeline on r. cfg.Seed is ignored.
func GenerateFrom(r *Rand, cfg Config) *Formula {
	g := newGenerator(r, cfg.Marks, cfg.Log)
	g.comment("seed %d", r.Seed())
	if cfg.QBF {
		g.f.QBF = true
		g.comment("qbf")
		if r.Pick(0, 3) != 0 {
			g.f.Forced = true
			g.comment("but forced to be propositional")
		}
	}
	if cfg.Options != nil {
		g.f.Fuzz = fuzzOptions(r, cfg.Options.Options)
		g.f.comments = append(g.f.comments, g.f.Fuzz.comments()...)
		g.log.WithFields(logrus.Fields{
			"file":   cfg.Options.Path,
			"spread": g.f.Fuzz.Spread,
		}).Debug("fuzzed options")
	}
	// Structure sampling must not depend on the draws above.
	r.Reset()
	g.build(SampleShape(r))
	return g.f
}

// Build generates a formula of the given shape, skipping the mode and option draws.
// The prefix is kept iff quantified is true. m is the visited-variable table to use,
// nil allocates one.
func Build(r *Rand, s Shape, quantified bool, m *Marks) *Formula {
	g := newGenerator(r, m, nil)
	g.f.QBF = quantified
	g.build(s)
	return g.f
}

func (g *generator) build(s Shape) {
	g.f.Shape = s
	g.f.comments = append(g.f.comments, s.comments()...)
	g.log.WithFields(logrus.Fields{
		"width":  s.Width,
		"layers": s.NbLayers,
		"eqs":    s.NbEqs,
		"ands":   s.NbAnds,
	}).Debug("sampled shape")

	g.f.Layers = buildLayers(g.r, s, g.f.Quantified())
	for i := range g.f.Layers {
		g.f.comments = append(g.f.comments, g.f.Layers[i].comment())
	}
	g.f.NbVars = g.f.Layers[len(g.f.Layers)-1].High
	arities := sampleArities(g.r, g.f.Layers, s.NbAnds)

	if g.marks == nil {
		g.marks = NewMarks(g.f.NbVars)
	}
	g.emitLayerClauses()
	g.emitEqualities(s.NbEqs)
	g.emitGates(arities)
	g.log.WithFields(logrus.Fields{
		"vars":    g.f.NbVars,
		"clauses": len(g.f.Clauses),
	}).Debug("generated formula")
}
