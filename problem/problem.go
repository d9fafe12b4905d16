package problem

import (
	"fmt"
	"io"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/2x3systems/go3flag/lib3flag"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// TypeBlock holds a type, the flags of that type used by a problem, and their orbits under relabelling the type.
type TypeBlock struct {
	Type      *lib3flag.Flag
	FlagOrder int
	Flags     []*lib3flag.Flag
	Orbits    go3flag.OrbitSet
}

// InvariantSplit returns the invariant and anti-invariant block dimensions of this type's flag basis.
func (tb *TypeBlock) InvariantSplit() (inv, antiInv int) {
	return tb.Orbits.InvariantSplit()
}

// Problem is the generated half of a flag algebra problem on graphs of order N.
//
// For each s < N-1 with s = N (mod 2), every admissible graph of order s is a type, paired with the admissible
// flags of that type on (N+s)/2 vertices.  Any two such flags overlap in exactly s vertices of an N-graph.
type Problem struct {
	N              int
	Constraints    lib3flag.Constraints
	Graphs         []*lib3flag.Flag
	GraphDensities []float64 // edge density of each graph
	Blocks         []TypeBlock
}

// New sets up a Problem from the given config.
func New(cfg Config) (*Problem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	C, err := lib3flag.ParseConstraints(cfg.Constraints)
	if err != nil {
		return nil, err
	}
	return Setup(cfg.N, C, cfg.GenOpts())
}

// Setup generates the graphs, types, flags and flag orbits of a problem on graphs of order N.
func Setup(N int, C lib3flag.Constraints, opts lib3flag.GenOpts) (*Problem, error) {
	if N < 1 || N > go3flag.MaxVtxID {
		return nil, errors.Wrapf(go3flag.ErrBadVtxCount, "N=%d", N)
	}

	p := &Problem{
		N:           N,
		Constraints: C,
	}

	var err error
	p.Graphs, err = lib3flag.GenerateGraphs(N, C, opts)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("generated %d graphs of order %d", len(p.Graphs), N)

	p.GraphDensities = make([]float64, len(p.Graphs))
	if total := binomial3(N); total > 0 {
		for i, X := range p.Graphs {
			p.GraphDensities[i] = float64(X.NumEdges()) / float64(total)
		}
	}

	for s := N % 2; s < N-1; s += 2 {
		types, err := lib3flag.GenerateGraphs(s, C, opts)
		if err != nil {
			return nil, err
		}

		m := (N + s) / 2
		flagCounts := make([]int, 0, len(types))
		for _, tg := range types {
			tb := TypeBlock{
				Type:      tg,
				FlagOrder: m,
			}
			tb.Flags, err = lib3flag.GenerateFlags(m, tg, C, opts)
			if err != nil {
				return nil, err
			}
			tb.Orbits, err = lib3flag.FlagOrbits(tg, tb.Flags)
			if err != nil {
				return nil, err
			}
			p.Blocks = append(p.Blocks, tb)
			flagCounts = append(flagCounts, len(tb.Flags))
		}
		klog.V(1).Infof("generated %d types of order %d, with %v flags of order %d", len(types), s, flagCounts, m)
	}

	return p, nil
}

// NumFlags returns the total number of flags over all types.
func (p *Problem) NumFlags() int {
	N := 0
	for _, tb := range p.Blocks {
		N += len(tb.Flags)
	}
	return N
}

// WriteSummary writes a human readable overview of p.
func (p *Problem) WriteSummary(out io.Writer) {
	if p.Constraints.IsEmpty() {
		fmt.Fprintf(out, "order %d, unconstrained\n", p.N)
	} else {
		fmt.Fprintf(out, "order %d, constraints: %v\n", p.N, p.Constraints)
	}
	fmt.Fprintf(out, "%s graphs\n", humanize.Comma(int64(len(p.Graphs))))
	for ti, tb := range p.Blocks {
		inv, anti := tb.InvariantSplit()
		fmt.Fprintf(out, "type %d  %-24v  %s flags of order %d  (%d : %d)\n",
			ti+1, tb.Type, humanize.Comma(int64(len(tb.Flags))), tb.FlagOrder, inv, anti)
	}
	fmt.Fprintf(out, "%s flags over %d types\n", humanize.Comma(int64(p.NumFlags())), len(p.Blocks))
}

func binomial3(N int) int {
	return N * (N - 1) * (N - 2) / 6
}
