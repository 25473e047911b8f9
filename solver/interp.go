package solver

import (
	"fmt"
	"strings"

	"github.com/aclements/go-z3/z3"

	"slava0135/easyz3/lower"
	"slava0135/easyz3/symbolic"
)

// FuncInterp is the model's interpretation of a declared function.
type FuncInterp struct {
	name  string
	sort  symbolic.Sort
	decl  z3.FuncDecl
	table *lower.Table
	model *z3.Model
}

func (f *FuncInterp) Name() string {
	return f.name
}

func (f *FuncInterp) Sort() symbolic.Sort {
	return f.sort
}

// Apply evaluates the interpretation at native arguments. Points the model
// leaves open get the solver's completion value.
func (f *FuncInterp) Apply(args ...any) (any, error) {
	domain := f.sort.Domain()
	if len(args) != len(domain) {
		return nil, fmt.Errorf("%w: '%s' takes %d, got %d", lower.ErrArity, f.name, len(domain), len(args))
	}
	var lits []z3.Value
	for i, a := range args {
		lit, err := f.table.Literal(a, domain[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d of '%s': %w", i+1, f.name, err)
		}
		lits = append(lits, lit)
	}
	return decode(f.model.Eval(f.decl.Apply(lits...), true))
}

// String returns the entry of the function in the printed model.
func (f *FuncInterp) String() string {
	if s, ok := interpBlock(f.model.String(), f.name); ok {
		return s
	}
	return f.name + " -> {}"
}

// interpBlock finds "name -> value" in a printed model. A value opening a
// brace runs up to the closing brace line.
func interpBlock(model, name string) (string, bool) {
	lines := strings.Split(model, "\n")
	for i, line := range lines {
		segments := strings.SplitN(line, " -> ", 2)
		if len(segments) != 2 || segments[0] != name {
			continue
		}
		if !strings.HasSuffix(strings.TrimSpace(segments[1]), "{") {
			return line, true
		}
		block := []string{line}
		for _, next := range lines[i+1:] {
			block = append(block, next)
			if strings.TrimSpace(next) == "}" {
				break
			}
		}
		return strings.Join(block, "\n"), true
	}
	return "", false
}
