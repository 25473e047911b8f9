package problem

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-set/v3"
	"gopkg.in/yaml.v3"

	"slava0135/easyz3/solver"
)

// File is a problem file:
//
//	name: pythagoras
//	engine: z3
//	vars:
//	  a: int
//	  f: func(int) bool
//	let:
//	  s: a + b
//	assert:
//	  - a > 0 && b > 0
//
// vars and let are ordered mappings; their order is kept.
type File struct {
	Name   string    `yaml:"name"`
	Engine string    `yaml:"engine"`
	Vars   yaml.Node `yaml:"vars"`
	Let    yaml.Node `yaml:"let"`
	Assert []string  `yaml:"assert"`
}

type pair struct {
	key, value string
}

func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFile, err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrBadFile)
	}
	return &f, nil
}

func LoadFile(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	f, err := Load(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Build declares the variables, binds the helpers and asserts the
// constraints of f, in file order. The engine named in the file is used
// unless opts choose another one.
func (f *File) Build(opts ...solver.Option) (*Builder, error) {
	vars, err := pairs(&f.Vars, "vars")
	if err != nil {
		return nil, err
	}
	lets, err := pairs(&f.Let, "let")
	if err != nil {
		return nil, err
	}
	if f.Engine != "" {
		e, err := solver.EngineByName(f.Engine)
		if err != nil {
			return nil, err
		}
		opts = append([]solver.Option{solver.WithEngine(e)}, opts...)
	}
	b := NewBuilder(f.Name, opts...)
	for _, v := range vars {
		if err := b.Declare(v.key, v.value); err != nil {
			return nil, fmt.Errorf("vars: %w", err)
		}
	}
	for _, l := range lets {
		if err := b.Let(l.key, l.value); err != nil {
			return nil, fmt.Errorf("let '%s': %w", l.key, err)
		}
	}
	for i, a := range f.Assert {
		if err := b.Assert(a); err != nil {
			return nil, fmt.Errorf("assert %d: %w", i+1, err)
		}
	}
	return b, nil
}

// pairs reads an ordered mapping of scalars. A one-entry flow mapping value
// is read back as annotation text, so "f: {int: bool}" works unquoted.
func pairs(n *yaml.Node, field string) ([]pair, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s must be a mapping (line %d)", ErrBadFile, field, n.Line)
	}
	seen := set.New[string](len(n.Content) / 2)
	var res []pair
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: %s key must be a name (line %d)", ErrBadFile, field, k.Line)
		}
		if !seen.Insert(k.Value) {
			return nil, fmt.Errorf("%w: %s '%s' (line %d)", ErrDuplicateKey, field, k.Value, k.Line)
		}
		text, err := scalarText(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s '%s': %v", ErrBadFile, field, k.Value, err)
		}
		res = append(res, pair{key: k.Value, value: text})
	}
	return res, nil
}

func scalarText(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.MappingNode:
		if len(n.Content) == 2 && n.Content[0].Kind == yaml.ScalarNode && n.Content[1].Kind == yaml.ScalarNode {
			return fmt.Sprintf("{%s: %s}", n.Content[0].Value, n.Content[1].Value), nil
		}
	}
	return "", fmt.Errorf("line %d: expected text", n.Line)
}
