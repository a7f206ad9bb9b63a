package interner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_NewHasSentinel(t *testing.T) {
	a := NewArray()
	assert.Equal(t, 1, a.Len(), "new store should hold only the sentinel")

	s, err := a.Resolve(Sentinel)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestArray_InternAssignsPositions(t *testing.T) {
	a := NewArray()

	hello := a.Intern("hello", "user")
	goodbye := a.Intern("goodbye", "user")

	assert.Equal(t, ID(1), hello, "first string goes right after the sentinel")
	assert.Equal(t, ID(2), goodbye)
	assert.Equal(t, 3, a.Len())
}

func TestArray_InternIdempotent(t *testing.T) {
	a := NewArray()

	first := a.Intern("hello", "user")
	second := a.Intern("hello", "user")

	assert.Equal(t, first, second, "same string must map to the same id")
	assert.Equal(t, 2, a.Len(), "no new cell on repeat intern")
}

func TestArray_InternSharesCellAcrossMarkers(t *testing.T) {
	a := NewArray()

	user := a.Intern("alice", "user")
	email := a.Intern("alice", "email")

	assert.Equal(t, user, email, "markers share one cell")
	assert.Equal(t, 2, a.Len())

	want := []Cell{
		{Value: "", Markers: []Marker{}},
		{Value: "alice", Markers: []Marker{"email", "user"}},
	}
	if diff := cmp.Diff(want, a.Cells()); diff != "" {
		t.Errorf("Cells() mismatch (-want +got):\n%s", diff)
	}
}

func TestArray_EmptyStringNeverReusesSentinel(t *testing.T) {
	a := NewArray()

	id := a.Intern("", "user")
	assert.NotEqual(t, Sentinel, id, "sentinel is never handed out")
	assert.Equal(t, ID(1), id)

	again := a.Intern("", "user")
	assert.Equal(t, id, again)

	s, err := a.Resolve(id)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestArray_DistinctStringsDistinctIDs(t *testing.T) {
	a := NewArray()
	const n = 100

	seen := make(map[ID]string, n)
	for i := 0; i < n; i++ {
		s := fmt.Sprintf("value-%d", i)
		id := a.Intern(s, "m")
		prev, dup := seen[id]
		assert.False(t, dup, "id %d issued for both %q and %q", id, prev, s)
		seen[id] = s
	}
	assert.Len(t, seen, n)

	for id, s := range seen {
		got, err := a.Resolve(id)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestArray_ResolveInvalidID(t *testing.T) {
	a := NewArray()
	a.Intern("hello", "user")

	_, err := a.Resolve(ID(7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidID))

	var invalid *InvalidIDError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, ID(7), invalid.ID)
	assert.Equal(t, 2, invalid.Len)
	assert.Contains(t, err.Error(), "id 7")
}

func TestArray_GetInterned(t *testing.T) {
	a := NewArray()

	_, ok := a.GetInterned("frog", "animal")
	assert.False(t, ok, "nothing interned yet")

	id := a.Intern("frog", "animal")

	got, ok := a.GetInterned("frog", "animal")
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = a.GetInterned("toad", "animal")
	assert.False(t, ok, "different string")

	_, ok = a.GetInterned("frog", "plant")
	assert.False(t, ok, "string present but never interned under this marker")
}

func TestArray_GetInternedDoesNotMutate(t *testing.T) {
	a := NewArray()
	a.Intern("frog", "animal")
	before := a.Cells()

	a.GetInterned("frog", "plant")
	a.GetInterned("newt", "animal")

	if diff := cmp.Diff(before, a.Cells()); diff != "" {
		t.Errorf("GetInterned mutated the store (-before +after):\n%s", diff)
	}
}

func TestArray_CellsIsSnapshot(t *testing.T) {
	a := NewArray()
	a.Intern("frog", "animal")

	cells := a.Cells()
	cells[1].Value = "changed"
	cells[1].Markers[0] = "changed"

	s, err := a.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, "frog", s)

	_, ok := a.GetInterned("frog", "animal")
	assert.True(t, ok)
}
