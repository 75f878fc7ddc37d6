package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		now := time.Now()
		mock.ExpectQuery(`(?s)INSERT INTO users .* RETURNING id, created_at`).
			WithArgs("Test User", "test@example.com", "hashed", "USER").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

		u, err := repo.Create(ctx, "Test User", "test@example.com", "hashed", RoleUser)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, "test@example.com", u.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)INSERT INTO users .*`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err = repo.Create(ctx, "Test User", "test@example.com", "hashed", RoleUser)
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		rows := sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "created_at"}).
			AddRow(1, "Test User", "test@example.com", "hashed", "USER", time.Now())

		mock.ExpectQuery(`(?s)SELECT .* FROM users.*WHERE email = \$1`).
			WithArgs("test@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "test@example.com")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, RoleUser, u.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* FROM users.*`).
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "created_at"}))

		_, err = repo.FindByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
