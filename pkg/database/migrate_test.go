package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"testing/fstest"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const existsQuery = "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)"

func TestRunMigrations_AppliesPendingInOrder(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	migrations := fstest.MapFS{
		"002_artworks.up.sql":  {Data: []byte("CREATE TABLE artworks (id UUID)")},
		"001_artists.up.sql":   {Data: []byte("CREATE TABLE artists (id TEXT)")},
		"001_artists.down.sql": {Data: []byte("DROP TABLE artists")},
		"README.md":            {Data: []byte("notes")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).WithArgs("001_artists.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).WithArgs("002_artworks.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE artworks (id UUID)")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("002_artworks.up.sql").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = RunMigrations(context.Background(), mock, migrations, quietLogger())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_SQLErrorRollsBack(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	migrations := fstest.MapFS{
		"001_bad.up.sql": {Data: []byte("CREATE TABLE oops (")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).WithArgs("001_bad.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE oops (")).
		WillReturnError(errors.New("syntax error at end of input"))
	mock.ExpectRollback()

	err = RunMigrations(context.Background(), mock, migrations, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute migration 001_bad.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_TrackingTableFailure(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnError(errors.New("permission denied for schema public"))

	err = RunMigrations(context.Background(), mock, fstest.MapFS{}, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create schema_migrations table")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.True(t, isConnectionError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")))
	assert.True(t, isConnectionError(errors.New("read: connection reset by peer")))
	assert.True(t, isConnectionError(errors.New("unexpected EOF")))
	assert.False(t, isConnectionError(errors.New(`relation "artworks" does not exist`)))
	assert.False(t, isConnectionError(errors.New("duplicate key value violates unique constraint")))
}
