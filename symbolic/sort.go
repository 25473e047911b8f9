package symbolic

import (
	"fmt"
	"go/ast"
	"go/parser"
	"strings"
)

// Kind is the logical type family of a solver symbol.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindReal
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Sort is the declared type of a variable: a scalar (bool, int, real) or the
// signature of an uninterpreted function over scalars.
type Sort struct {
	kind   Kind
	domain []Sort
	rng    *Sort
}

var (
	Bool = Sort{kind: KindBool}
	Int  = Sort{kind: KindInt}
	Real = Sort{kind: KindReal}
)

// Func returns the sort of an uninterpreted function from domain to rng.
// It panics if the signature is empty or mentions a function sort.
func Func(domain []Sort, rng Sort) Sort {
	if len(domain) == 0 {
		panic("function sort needs at least one input sort")
	}
	for _, s := range append([]Sort{rng}, domain...) {
		if s.kind == KindFunc {
			panic(fmt.Sprintf("function sort over non-scalar sort '%s'", s))
		}
	}
	return Sort{
		kind:   KindFunc,
		domain: append([]Sort(nil), domain...),
		rng:    &rng,
	}
}

func (s Sort) Kind() Kind {
	return s.kind
}

// Domain returns the input sorts of a function sort, nil for scalars.
func (s Sort) Domain() []Sort {
	return append([]Sort(nil), s.domain...)
}

// Range returns the output sort of a function sort. For scalars it is the
// sort itself.
func (s Sort) Range() Sort {
	if s.rng == nil {
		return s
	}
	return *s.rng
}

func (s Sort) IsScalar() bool {
	return s.kind != KindFunc
}

func (s Sort) Equal(other Sort) bool {
	if s.kind != other.kind || len(s.domain) != len(other.domain) {
		return false
	}
	for i := range s.domain {
		if !s.domain[i].Equal(other.domain[i]) {
			return false
		}
	}
	if s.kind == KindFunc {
		return s.rng.Equal(*other.rng)
	}
	return true
}

func (s Sort) String() string {
	if s.kind != KindFunc {
		return s.kind.String()
	}
	var in []string
	for _, d := range s.domain {
		in = append(in, d.String())
	}
	return fmt.Sprintf("func(%s) %s", strings.Join(in, ", "), s.rng)
}

// ParseSort parses a sort annotation. Scalars are written bool, int and
// real (float and float64 are accepted for real). Functions are written
// either as Go function types, func(int, int) bool, or as an annotation
// mapping, {(int, int): bool}.
func ParseSort(text string) (Sort, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "{") {
		return parseMappingSort(text)
	}
	expr, err := parser.ParseExpr(text)
	if err != nil {
		return Sort{}, fmt.Errorf("%w '%s': %v", ErrBadSort, text, err)
	}
	return sortFromExpr(text, expr)
}

func parseMappingSort(text string) (Sort, error) {
	body, ok := strings.CutSuffix(strings.TrimPrefix(text, "{"), "}")
	if !ok {
		return Sort{}, fmt.Errorf("%w '%s': unterminated mapping", ErrBadSort, text)
	}
	in, out, ok := strings.Cut(body, ":")
	if !ok {
		return Sort{}, fmt.Errorf("%w '%s': mapping needs 'inputs: output'", ErrBadSort, text)
	}
	in = strings.TrimSpace(in)
	if strings.HasPrefix(in, "(") && strings.HasSuffix(in, ")") {
		in = in[1 : len(in)-1]
	}
	var domain []Sort
	for _, part := range strings.Split(in, ",") {
		s, err := parseScalar(text, strings.TrimSpace(part))
		if err != nil {
			return Sort{}, err
		}
		domain = append(domain, s)
	}
	rng, err := parseScalar(text, strings.TrimSpace(out))
	if err != nil {
		return Sort{}, err
	}
	return Func(domain, rng), nil
}

func sortFromExpr(text string, expr ast.Expr) (Sort, error) {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return sortFromExpr(text, e.X)
	case *ast.Ident:
		return parseScalar(text, e.Name)
	case *ast.FuncType:
		var domain []Sort
		for _, field := range e.Params.List {
			s, err := sortFromExpr(text, field.Type)
			if err != nil {
				return Sort{}, err
			}
			if !s.IsScalar() {
				return Sort{}, fmt.Errorf("%w '%s': function inputs must be scalar", ErrBadSort, text)
			}
			n := len(field.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				domain = append(domain, s)
			}
		}
		if len(domain) == 0 {
			return Sort{}, fmt.Errorf("%w '%s': function needs at least one input", ErrBadSort, text)
		}
		if e.Results == nil || e.Results.NumFields() != 1 {
			return Sort{}, fmt.Errorf("%w '%s': function needs exactly one result", ErrBadSort, text)
		}
		rng, err := sortFromExpr(text, e.Results.List[0].Type)
		if err != nil {
			return Sort{}, err
		}
		if !rng.IsScalar() {
			return Sort{}, fmt.Errorf("%w '%s': function result must be scalar", ErrBadSort, text)
		}
		return Func(domain, rng), nil
	default:
		return Sort{}, fmt.Errorf("%w '%s'", ErrBadSort, text)
	}
}

func parseScalar(text, name string) (Sort, error) {
	switch name {
	case "bool":
		return Bool, nil
	case "int":
		return Int, nil
	case "real", "float", "float64":
		return Real, nil
	default:
		return Sort{}, fmt.Errorf("%w '%s': unknown sort '%s'", ErrBadSort, text, name)
	}
}
