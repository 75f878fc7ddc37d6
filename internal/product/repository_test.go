package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "price_cents", "stock",
		"image_url", "featured_home", "created_at",
	})
}

func TestRepository_GetList(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, true)

		rows := productRows().
			AddRow(1, "Star Quilt", "Hand stitched", 19900, 3, "img.jpg", true, time.Now()).
			AddRow(2, "Log Cabin Quilt", "Classic pattern", 24900, 1, nil, false, time.Now())

		mock.ExpectQuery(`(?s)SELECT .* FROM products.*ORDER BY created_at DESC.*LIMIT \$1`).
			WithArgs(100).
			WillReturnRows(rows)

		res, err := repo.GetList(ctx, ListOptions{Limit: 100})
		assert.NoError(t, err)
		if assert.Len(t, res, 2) {
			assert.Equal(t, "Star Quilt", res[0].Title)
			assert.Equal(t, int64(19900), res[0].PriceCents)
			assert.Nil(t, res[1].ImageURL)
		}
	})

	t.Run("FeaturedOnly", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, true)

		rows := productRows().
			AddRow(1, "Star Quilt", "Hand stitched", 19900, 3, nil, true, time.Now())

		mock.ExpectQuery(`(?s)SELECT .*WHERE featured_home = true.*`).
			WithArgs(12).
			WillReturnRows(rows)

		res, err := repo.GetList(ctx, ListOptions{FeaturedOnly: true, Limit: 12})
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("FeaturedUnsupported", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, false)

		// No query must be issued: the capability is resolved at startup
		// and callers get an empty set, never a 5xx.
		res, err := repo.GetList(ctx, ListOptions{FeaturedOnly: true, Limit: 12})
		assert.NoError(t, err)
		assert.Empty(t, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, true)

		mock.ExpectQuery(`(?s)SELECT .*`).WillReturnError(errors.New("db error"))
		_, err = repo.GetList(ctx, ListOptions{Limit: 10})
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, true)

		rows := productRows().
			AddRow(7, "Star Quilt", "Hand stitched", 1999, 5, nil, false, time.Now())

		mock.ExpectQuery(`(?s)SELECT .*WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), p.ID)
		assert.Equal(t, int64(1999), p.PriceCents)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, true)

		mock.ExpectQuery(`(?s)SELECT .*`).
			WithArgs(int64(404)).
			WillReturnRows(productRows())

		_, err = repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	price := int64(19900)

	t.Run("WithFeatured", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, true)

		mock.ExpectQuery(`(?s)INSERT INTO products .*featured_home.*RETURNING id, created_at`).
			WithArgs("Star Quilt", "Hand stitched", price, 3, nil, true).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

		p, err := repo.Create(ctx, NewProduct{
			Title:        "Star Quilt",
			Description:  "Hand stitched",
			PriceCents:   &price,
			Stock:        3,
			FeaturedHome: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
		assert.True(t, p.FeaturedHome)
	})

	t.Run("FeaturedUnsupported", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, false)

		mock.ExpectQuery(`(?s)INSERT INTO products \(title, description, price_cents, stock, image_url\).*`).
			WithArgs("Star Quilt", "Hand stitched", price, 3, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

		p, err := repo.Create(ctx, NewProduct{
			Title:        "Star Quilt",
			Description:  "Hand stitched",
			PriceCents:   &price,
			Stock:        3,
			FeaturedHome: true, // silently ignored
		})
		assert.NoError(t, err)
		assert.False(t, p.FeaturedHome)
	})
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdate", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, true)

		title := "New Title"
		price := int64(500)

		mock.ExpectExec(`UPDATE products SET title = \$1, price_cents = \$2 WHERE id = \$3`).
			WithArgs(title, price, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows := productRows().
			AddRow(7, title, "desc", price, 1, nil, false, time.Now())
		mock.ExpectQuery(`(?s)SELECT .*WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		p, err := repo.Update(ctx, 7, UpdateProduct{Title: &title, PriceCents: &price})
		assert.NoError(t, err)
		assert.Equal(t, title, p.Title)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, true)

		title := "New Title"
		mock.ExpectExec(`UPDATE products SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err = repo.Update(ctx, 404, UpdateProduct{Title: &title})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db, true)

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, 7))

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(ctx, 404), ErrProductNotFound)
}
