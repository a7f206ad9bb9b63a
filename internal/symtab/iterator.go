package symtab

import (
	"iter"
	"slices"
	"strings"
)

// cursor marks the front-consumption point in Iterator.String.
const cursor = "•"

// Iterator is a double-ended view over the characters of a symbol's value.
//
// The value is resolved once, when the iterator is created. Front and back
// consumption share one buffer, so together they yield each rune at most
// once.
type Iterator[T any] struct {
	source Symbol[T]
	runes  []rune
	front  int
	back   int
}

// NewIterator resolves source and returns a view over its characters.
func NewIterator[T any](source Symbol[T]) (*Iterator[T], error) {
	text, err := source.Text()
	if err != nil {
		return nil, err
	}
	runes := []rune(text)
	return &Iterator[T]{source: source, runes: runes, back: len(runes)}, nil
}

// Source returns the symbol the iterator was built from.
func (it *Iterator[T]) Source() Symbol[T] {
	return it.source
}

// HasNext reports whether any characters remain.
func (it *Iterator[T]) HasNext() bool {
	return it.front < it.back
}

// Len returns the number of remaining characters.
func (it *Iterator[T]) Len() int {
	return it.back - it.front
}

// Peek returns the next front character without consuming it.
func (it *Iterator[T]) Peek() (rune, bool) {
	if !it.HasNext() {
		return 0, false
	}
	return it.runes[it.front], true
}

// Next consumes and returns the next front character.
func (it *Iterator[T]) Next() (rune, bool) {
	if !it.HasNext() {
		return 0, false
	}
	r := it.runes[it.front]
	it.front++
	return r, true
}

// NextBack consumes and returns the next back character.
func (it *Iterator[T]) NextBack() (rune, bool) {
	if !it.HasNext() {
		return 0, false
	}
	it.back--
	return it.runes[it.back], true
}

// Remaining returns the unconsumed characters.
func (it *Iterator[T]) Remaining() string {
	return string(it.runes[it.front:it.back])
}

// All consumes the iterator from the front.
func (it *Iterator[T]) All() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for {
			r, ok := it.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Backward consumes the iterator from the back.
func (it *Iterator[T]) Backward() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for {
			r, ok := it.NextBack()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Clone returns an independent copy with the same position.
func (it *Iterator[T]) Clone() *Iterator[T] {
	c := *it
	return &c
}

// Equal reports whether both iterators come from equal symbols and have
// the same characters left.
func (it *Iterator[T]) Equal(o *Iterator[T]) bool {
	return it.source.Equal(o.source) &&
		slices.Equal(it.runes[it.front:it.back], o.runes[o.front:o.back])
}

// String renders the quoted value with a cursor at the front-consumption
// point, or a single cursor at the end once nothing remains:
//
//	"•toad"  "t•oad"  "toad•"
func (it *Iterator[T]) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for i, r := range it.runes {
		if it.HasNext() && i == it.front {
			b.WriteString(cursor)
		}
		b.WriteRune(r)
	}
	if !it.HasNext() {
		b.WriteString(cursor)
	}
	b.WriteByte('"')
	return b.String()
}
