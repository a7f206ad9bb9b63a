package interner

import (
	"slices"
)

// Array interns strings into a growable slice of cells.
//
// Intern and GetInterned are O(n) in the number of distinct strings; Resolve
// is O(1). There is no compression beyond sharing one cell across markers,
// so every unique string is stored exactly once, as-is.
type Array struct {
	cells []cell
}

var (
	_ Interner  = (*Array)(nil)
	_ Inspector = (*Array)(nil)
)

type cell struct {
	value   string
	markers map[Marker]struct{}
}

func newCell(value string) cell {
	return cell{value: value, markers: make(map[Marker]struct{})}
}

// NewArray creates a store holding only the sentinel cell.
func NewArray() *Array {
	return &Array{cells: []cell{newCell("")}}
}

// position returns the index of val, skipping the sentinel.
func (a *Array) position(val string) (int, bool) {
	for i := 1; i < len(a.cells); i++ {
		if a.cells[i].value == val {
			return i, true
		}
	}
	return 0, false
}

// Intern implements Interner.
func (a *Array) Intern(val string, m Marker) ID {
	if pos, ok := a.position(val); ok {
		a.cells[pos].markers[m] = struct{}{}
		return ID(pos)
	}

	c := newCell(val)
	c.markers[m] = struct{}{}
	a.cells = append(a.cells, c)
	return ID(len(a.cells) - 1)
}

// Resolve implements Interner.
func (a *Array) Resolve(id ID) (string, error) {
	if id >= ID(len(a.cells)) {
		return "", &InvalidIDError{ID: id, Len: len(a.cells)}
	}
	return a.cells[id].value, nil
}

// GetInterned implements Interner.
func (a *Array) GetInterned(val string, m Marker) (ID, bool) {
	pos, ok := a.position(val)
	if !ok {
		return 0, false
	}
	if _, seen := a.cells[pos].markers[m]; !seen {
		return 0, false
	}
	return ID(pos), true
}

// Len implements Inspector.
func (a *Array) Len() int {
	return len(a.cells)
}

// Cells implements Inspector. Markers within each cell are sorted.
func (a *Array) Cells() []Cell {
	out := make([]Cell, len(a.cells))
	for i, c := range a.cells {
		markers := make([]Marker, 0, len(c.markers))
		for m := range c.markers {
			markers = append(markers, m)
		}
		slices.Sort(markers)
		out[i] = Cell{Value: c.value, Markers: markers}
	}
	return out
}
