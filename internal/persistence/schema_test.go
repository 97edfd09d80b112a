package persistence

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// Two consecutive starts: every statement is IF NOT EXISTS.
	for i := 0; i < 2; i++ {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS applicants`).
			WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS credentials`).
			WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	}

	logger := zaptest.NewLogger(t)
	require.NoError(t, EnsureSchema(context.Background(), mock, logger))
	require.NoError(t, EnsureSchema(context.Background(), mock, logger))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_ExecError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS applicants`).
		WillReturnError(errors.New("permission denied"))

	err = EnsureSchema(context.Background(), mock, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_applicants.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_NilDB(t *testing.T) {
	err := EnsureSchema(context.Background(), nil, zaptest.NewLogger(t))
	assert.Error(t, err)
}
