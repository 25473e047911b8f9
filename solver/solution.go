package solver

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"slava0135/easyz3/symbolic"
)

// Solution is a solved declaration. Values are decoded on first access and
// cached, so repeated reads return the same value.
type Solution struct {
	name  string
	decls []symbolic.Declaration
	sorts map[string]symbolic.Sort
	model Model

	mu    sync.Mutex
	cache map[string]any
}

func newSolution(name string, decls []symbolic.Declaration, model Model) *Solution {
	s := &Solution{
		name:  name,
		decls: decls,
		sorts: make(map[string]symbolic.Sort, len(decls)),
		model: model,
		cache: make(map[string]any),
	}
	for _, d := range decls {
		s.sorts[d.Name] = d.Sort
	}
	return s
}

func (s *Solution) Name() string {
	return s.name
}

// Names returns the declared names in declaration order.
func (s *Solution) Names() []string {
	var names []string
	for _, d := range s.decls {
		names = append(names, d.Name)
	}
	return names
}

func (s *Solution) Sort(name string) (symbolic.Sort, bool) {
	sort, ok := s.sorts[name]
	return sort, ok
}

// Get returns the decoded value of name: a bool, an int64 or *big.Int, a
// float64, or a *FuncInterp for function sorts.
func (s *Solution) Get(name string) (any, error) {
	sort, ok := s.sorts[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s' in '%s'", ErrNoSuchVariable, name, s.name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.cache[name]; ok {
		return v, nil
	}
	v, err := s.model.Value(name, sort)
	if err != nil {
		return nil, fmt.Errorf("decode '%s': %w", name, err)
	}
	s.cache[name] = v
	return v, nil
}

func (s *Solution) Bool(name string) (bool, error) {
	v, err := s.Get(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, s.wrongSort(name, symbolic.Bool)
	}
	return b, nil
}

// Int returns an integer value that fits in int64.
func (s *Solution) Int(name string) (int64, error) {
	v, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int64:
		return v, nil
	case *big.Int:
		return 0, fmt.Errorf("%w: '%s' is %s", ErrOverflow, name, v)
	}
	return 0, s.wrongSort(name, symbolic.Int)
}

func (s *Solution) BigInt(name string) (*big.Int, error) {
	v, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case int64:
		return big.NewInt(v), nil
	case *big.Int:
		return new(big.Int).Set(v), nil
	}
	return nil, s.wrongSort(name, symbolic.Int)
}

func (s *Solution) Float(name string) (float64, error) {
	v, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, s.wrongSort(name, symbolic.Real)
	}
	return f, nil
}

func (s *Solution) Func(name string) (*FuncInterp, error) {
	v, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	f, ok := v.(*FuncInterp)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' is %s, not a function", ErrWrongSort, name, s.sorts[name])
	}
	return f, nil
}

func (s *Solution) wrongSort(name string, want symbolic.Sort) error {
	return fmt.Errorf("%w: '%s' is %s, not %s", ErrWrongSort, name, s.sorts[name], want)
}

// Values decodes every declared name.
func (s *Solution) Values() (map[string]any, error) {
	values := make(map[string]any, len(s.decls))
	if err := s.Export(values); err != nil {
		return nil, err
	}
	return values, nil
}

// Export stores the value of every declared name into dst.
func (s *Solution) Export(dst map[string]any) error {
	for _, d := range s.decls {
		v, err := s.Get(d.Name)
		if err != nil {
			return err
		}
		dst[d.Name] = v
	}
	return nil
}

// String returns the model as printed by the engine.
func (s *Solution) String() string {
	return s.model.String()
}

// MarshalYAML writes the name and the values in declaration order.
func (s *Solution) MarshalYAML() (any, error) {
	values := &yaml.Node{Kind: yaml.MappingNode}
	for _, d := range s.decls {
		v, err := s.Get(d.Name)
		if err != nil {
			return nil, err
		}
		values.Content = append(values.Content, scalar("!!str", d.Name), valueNode(v))
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalar("!!str", "name"), scalar("!!str", s.name),
			scalar("!!str", "values"), values,
		},
	}, nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func valueNode(v any) *yaml.Node {
	switch v := v.(type) {
	case bool:
		return scalar("!!bool", strconv.FormatBool(v))
	case int64:
		return scalar("!!int", strconv.FormatInt(v, 10))
	case *big.Int:
		return scalar("!!int", v.String())
	case float64:
		text := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		return scalar("!!float", text)
	case *FuncInterp:
		n := scalar("!!str", v.String())
		n.Style = yaml.LiteralStyle
		return n
	default:
		return scalar("!!str", fmt.Sprint(v))
	}
}
