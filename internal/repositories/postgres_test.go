package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	ideaA  = "7f1d3c52-1b8e-4f3a-9f0e-2a4c6b8d0e11"
	userA  = "0c9b8a76-5d4e-4f3a-8b2c-1d0e9f8a7b61"
	userB  = "3e2d1c0b-9a8f-4e7d-8c6b-5a4f3e2d1c0b"
	commA  = "9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"
	pgUniq = "23505"
	pgFK   = "23503"
)

// newMockDB opens gorm over sqlmock the way InitDB opens Postgres, with
// driver errors translated. Unmet expectations fail the test.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code, Message: "constraint violated"}
}
