package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB opens gorm over a sqlmock connection so the emitted SQL can be
// asserted without a real database.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
		AddRow(1, "Alice", "alice@example.com", "hashed")

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = .+`).
		WillReturnRows(rows)

	user, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	require.Equal(t, uint64(1), user.ID)
	require.Equal(t, "alice@example.com", user.Email)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}))

	_, err := repo.FindByEmail("ghost@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
		AddRow(7, "Bob", "bob@example.com", "hashed")

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = .+`).
		WillReturnRows(rows)

	user, err := repo.FindByID(7)
	require.NoError(t, err)
	require.Equal(t, uint64(7), user.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}
