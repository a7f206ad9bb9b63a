package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringDomain(t *testing.T) {
	d := StringDomain[UserID]("user")
	assert.Equal(t, "user", d.Name())
	assert.Equal(t, "alice", d.encode("alice"))

	v, err := d.decode("bob")
	require.NoError(t, err)
	assert.Equal(t, UserID("bob"), v)
}

func TestInt64Domain(t *testing.T) {
	d := Int64Domain("port")
	assert.Equal(t, "-12", d.encode(-12))

	v, err := d.decode("8080")
	require.NoError(t, err)
	assert.Equal(t, int64(8080), v)

	_, err = d.decode("eighty")
	assert.Error(t, err)
}

func TestDomain_ParseFailureSurfacesOnResolve(t *testing.T) {
	tbl := newTestTable(t, nil)

	// Same name as ports but string typed: "http" lands under marker "port".
	loose := StringDomain[string]("port")
	Intern(tbl, loose, "http")

	sym, ok := GetInterned(tbl, loose, "http")
	require.True(t, ok)

	// Re-tag the stored id as an int64 port symbol.
	portSym := newSymbol(sym.ID(), ports, tbl)
	_, err := Resolve(tbl, portSym)
	assert.True(t, IsParseError(err))
}

func TestDomain_Zero(t *testing.T) {
	tbl := newTestTable(t, nil)
	var zero Domain[string]

	assert.True(t, zero.IsZero())
	assert.False(t, words.IsZero())
	assert.Equal(t, "", zero.Name())

	Intern(tbl, words, "hello")
	_, ok := GetInterned(tbl, zero, "hello")
	assert.False(t, ok)
	assert.False(t, HasInterned(tbl, zero, "hello"))

	assert.PanicsWithValue(t, ErrZeroDomain, func() { Intern(tbl, zero, "hello") })
	assert.Equal(t, 2, tbl.Len(), "a panicking intern leaves the store untouched")
}

func TestDomain_NilCodecPanics(t *testing.T) {
	assert.Panics(t, func() { NewDomain[string]("broken", nil) })
}

func TestDomain_CopiesCompareEqual(t *testing.T) {
	copied := words
	assert.True(t, copied == words)
	assert.False(t, StringDomain[string]("word") == words, "each constructor call is a distinct domain")
}
