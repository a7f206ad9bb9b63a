package symtab

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type UserID string

type Hostname string

var (
	words = StringDomain[string]("word")
	users = StringDomain[UserID]("user")
	hosts = StringDomain[Hostname]("host")
	ports = Int64Domain("port")

	// testIdentities is shared so every test table gets a distinct identity.
	testIdentities = NewSequenceGenerator("test")
)

// newTestTable creates an array-backed table with a deterministic identity
// and logs discarded.
func newTestTable(t *testing.T, gen IdentityGenerator) *Table {
	t.Helper()
	if gen == nil {
		gen = testIdentities
	}
	tbl, err := New(FlavorArray,
		WithIdentityGenerator(gen),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return tbl
}
