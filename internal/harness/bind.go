package harness

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/roach88/symtab/internal/interner"
	"github.com/roach88/symtab/internal/symtab"
)

// domainOps erases the value type of a domain so scenario steps, which
// carry values as strings, can drive it.
type domainOps interface {
	intern(t *symtab.Table, value string) (boundSymbol, error)
	lookup(t *symtab.Table, value string) (boundSymbol, bool, error)
}

// boundSymbol is a symbol of any domain held by name between steps.
type boundSymbol interface {
	id() interner.ID
	resolveOn(t *symtab.Table) (string, error)
	chars() (display, forward, backward string, err error)
}

type typedDomain[T any] struct {
	d      symtab.Domain[T]
	parse  func(string) (T, error)
	format func(T) string
}

func newDomainOps(def DomainDef) (domainOps, error) {
	switch def.Kind {
	case KindString:
		return typedDomain[string]{
			d:      symtab.StringDomain[string](def.Name),
			parse:  func(s string) (string, error) { return s, nil },
			format: func(s string) string { return s },
		}, nil
	case KindInt:
		return typedDomain[int64]{
			d:      symtab.Int64Domain(def.Name),
			parse:  func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) },
			format: func(v int64) string { return strconv.FormatInt(v, 10) },
		}, nil
	default:
		return nil, fmt.Errorf("unknown domain kind %q", def.Kind)
	}
}

func (td typedDomain[T]) intern(t *symtab.Table, value string) (boundSymbol, error) {
	v, err := td.parse(value)
	if err != nil {
		return nil, fmt.Errorf("domain %s: %w", td.d.Name(), err)
	}
	return typedSymbol[T]{sym: symtab.Intern(t, td.d, v), format: td.format}, nil
}

func (td typedDomain[T]) lookup(t *symtab.Table, value string) (boundSymbol, bool, error) {
	v, err := td.parse(value)
	if err != nil {
		return nil, false, fmt.Errorf("domain %s: %w", td.d.Name(), err)
	}
	sym, ok := symtab.GetInterned(t, td.d, v)
	if !ok {
		return nil, false, nil
	}
	return typedSymbol[T]{sym: sym, format: td.format}, true, nil
}

type typedSymbol[T any] struct {
	sym    symtab.Symbol[T]
	format func(T) string
}

func (ts typedSymbol[T]) id() interner.ID { return ts.sym.ID() }

func (ts typedSymbol[T]) resolveOn(t *symtab.Table) (string, error) {
	v, err := symtab.Resolve(t, ts.sym)
	if err != nil {
		return "", err
	}
	return ts.format(v), nil
}

func (ts typedSymbol[T]) chars() (display, forward, backward string, err error) {
	it, err := symtab.NewIterator(ts.sym)
	if err != nil {
		return "", "", "", err
	}
	display = it.String()
	back := it.Clone()
	forward = string(slices.Collect(it.All()))
	backward = string(slices.Collect(back.Backward()))
	return display, forward, backward, nil
}
