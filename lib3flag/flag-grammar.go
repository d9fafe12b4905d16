package lib3flag

import (
	"strings"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// FlagExpr is the text form of a flag:
//
//	4:(1,2,3)(1,2,4)     a 3-graph on 4 vertices with two edges
//	4:1:(2,3,4)          a flag on 4 vertices whose first vertex is a root
type FlagExpr struct {
	NumVerts int         `parser:"@Int \":\""`
	TypeSize int         `parser:"(@Int \":\")?"`
	Edges    []*EdgeExpr `parser:"@@*"`
}

type EdgeExpr struct {
	Va int `parser:"\"(\" @Int \",\""`
	Vb int `parser:"@Int \",\""`
	Vc int `parser:"@Int \")\""`
}

// ConstraintsExpr is the text form of a constraint set; clauses are optionally separated by ';'
//
//	span 4 < 3                       every 4 vertices span fewer than 3 edges
//	forbid 4:(1,2,3)(1,2,4)(1,3,4)   K4- is forbidden as a subgraph
//	induced 4:(1,2,3)                forbidden as an induced subgraph
type ConstraintsExpr struct {
	Clauses []*ClauseExpr `parser:"(@@ \";\"?)*"`
}

type ClauseExpr struct {
	Span    *SpanExpr `parser:"  @@"`
	Forbid  *FlagExpr `parser:"| \"forbid\" @@"`
	Induced *FlagExpr `parser:"| \"induced\" @@"`
}

type SpanExpr struct {
	K     int `parser:"\"span\" @Int"`
	Bound int `parser:"\"<\" @Int"`
}

var (
	parseFlagExpr        = participle.MustBuild[FlagExpr]()
	parseConstraintsExpr = participle.MustBuild[ConstraintsExpr]()
)

// NewFlagFromString parses a flag expression such as "4:1:(2,3,4)".
func NewFlagFromString(flagExpr string) (*Flag, error) {
	X := &Flag{}
	if err := X.InitFromString(flagExpr); err != nil {
		return nil, err
	}
	return X, nil
}

// InitFromString resets X from a flag expression such as "4:(1,2,3)(1,2,4)".
func (X *Flag) InitFromString(flagExpr string) error {
	X.Init(nil)

	Xexpr, err := parseFlagExpr.ParseString("", flagExpr)
	if err != nil {
		return errors.Wrap(go3flag.ErrBadEncoding, err.Error())
	}
	return X.initFromExpr(Xexpr)
}

func (X *Flag) initFromExpr(Xexpr *FlagExpr) error {
	Xn, err := NewFlag(Xexpr.NumVerts, Xexpr.TypeSize)
	if err != nil {
		return err
	}
	for _, edge := range Xexpr.Edges {
		if err = Xn.AddEdge(edge.Va, edge.Vb, edge.Vc); err != nil {
			return err
		}
	}
	X.Init(Xn)
	return nil
}

// ParseConstraints parses a constraint expression such as "span 4 < 3; forbid 4:(1,2,3)(1,2,4)(1,3,4)".
//
// An empty expression yields an empty (unconstrained) set.
func ParseConstraints(constraintsExpr string) (Constraints, error) {
	var C Constraints
	if strings.TrimSpace(constraintsExpr) == "" {
		return C, nil
	}

	Cexpr, err := parseConstraintsExpr.ParseString("", constraintsExpr)
	if err != nil {
		return C, errors.Wrap(go3flag.ErrBadConstraint, err.Error())
	}

	for i, clause := range Cexpr.Clauses {
		switch {
		case clause.Span != nil:
			if clause.Span.K < 3 || clause.Span.Bound < 1 {
				return C, errors.Wrapf(go3flag.ErrBadConstraint, "clause #%d: span %d < %d", i+1, clause.Span.K, clause.Span.Bound)
			}
			C = C.WithEdgeBound(clause.Span.K, clause.Span.Bound)
		case clause.Forbid != nil, clause.Induced != nil:
			Xexpr, induced := clause.Forbid, false
			if Xexpr == nil {
				Xexpr, induced = clause.Induced, true
			}
			H := &Flag{}
			if err = H.initFromExpr(Xexpr); err != nil {
				return C, errors.Wrapf(err, "clause #%d", i+1)
			}
			if !H.IsPlain() {
				return C, errors.Wrapf(go3flag.ErrTypeNotPlain, "clause #%d", i+1)
			}
			if induced {
				C = C.WithForbiddenInduced(H)
			} else {
				C = C.WithForbidden(H)
			}
		}
	}
	return C, nil
}

// MustParseConstraints is ParseConstraints that panics on error.
func MustParseConstraints(constraintsExpr string) Constraints {
	C, err := ParseConstraints(constraintsExpr)
	if err != nil {
		panic(err)
	}
	return C
}
