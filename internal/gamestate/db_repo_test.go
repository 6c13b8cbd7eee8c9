package gamestate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) (*SQLStore, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "pennypet.sqlite")
	s, err := OpenSQLStore(DialectSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dsn
}

func TestSQLStore_RoundTrip(t *testing.T) {
	s, _ := openTestSQLite(t)

	payload := []byte(`{"money":250,"daysPlayed":3}`)
	require.NoError(t, s.Save(KeyGameState, payload))

	got, ok, err := s.Load(KeyGameState)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, payload, got)
}

func TestSQLStore_MissingKey(t *testing.T) {
	s, _ := openTestSQLite(t)

	got, ok, err := s.Load("never_saved")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, got)
}

func TestSQLStore_SaveUpserts(t *testing.T) {
	s, _ := openTestSQLite(t)

	require.NoError(t, s.Save(KeyGameState, []byte("first")))
	require.NoError(t, s.Save(KeyGameState, []byte("second")))

	got, ok, err := s.Load(KeyGameState)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", string(got))
}

func TestSQLStore_KeysAreIndependent(t *testing.T) {
	s, _ := openTestSQLite(t)

	require.NoError(t, s.Save(KeyGameState, []byte(`{"money":10}`)))
	require.NoError(t, s.Save(KeyPetAges, []byte(`{"dog":2}`)))

	state, ok, err := s.Load(KeyGameState)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"money":10}`, string(state))

	ages, ok, err := s.Load(KeyPetAges)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"dog":2}`, string(ages))
}

func TestSQLStore_ReopenKeepsSaves(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "pennypet.sqlite")

	first, err := OpenSQLStore(DialectSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, first.Save(KeyGameState, []byte(`{"money":77}`)))
	require.NoError(t, first.Close())

	// Reopening replays the migration check against an already-migrated file.
	second, err := OpenSQLStore(DialectSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, ok, err := second.Load(KeyGameState)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"money":77}`, string(got))
}

func TestOpenSQLStore_PostgresRequiresDSN(t *testing.T) {
	_, err := OpenSQLStore(DialectPostgres, "   ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires a dsn")
}

func TestOpenSQLStore_UnsupportedDialect(t *testing.T) {
	_, err := OpenSQLStore(Dialect("oracle"), "whatever")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported dialect")
}
