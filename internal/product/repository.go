package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Repository interface {
	GetList(ctx context.Context, opts ListOptions) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, input NewProduct) (*Product, error)
	Update(ctx context.Context, id int64, input UpdateProduct) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB

	// featuredSupported is resolved once at startup. When the column is
	// missing, featured filtering returns an empty set instead of failing
	// and writes ignore the flag.
	featuredSupported bool
}

func NewRepository(db *sql.DB, featuredSupported bool) Repository {
	return &repository{db: db, featuredSupported: featuredSupported}
}

// featuredColumn keeps the scan shape stable whether or not the optional
// column is provisioned.
func (r *repository) featuredColumn() string {
	if r.featuredSupported {
		return "featured_home"
	}
	return "false AS featured_home"
}

func (r *repository) GetList(ctx context.Context, opts ListOptions) ([]Product, error) {
	if opts.FeaturedOnly && !r.featuredSupported {
		return []Product{}, nil
	}

	var where string
	if opts.FeaturedOnly {
		where = "WHERE featured_home = true"
	}

	query := fmt.Sprintf(`
		SELECT id, title, description, price_cents, stock, image_url, %s, created_at
		FROM products
		%s
		ORDER BY created_at DESC
		LIMIT $1
	`, r.featuredColumn(), where)

	rows, err := r.db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.PriceCents,
			&p.Stock, &p.ImageURL, &p.FeaturedHome, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := fmt.Sprintf(`
		SELECT id, title, description, price_cents, stock, image_url, %s, created_at
		FROM products
		WHERE id = $1
	`, r.featuredColumn())

	var p Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.PriceCents,
		&p.Stock, &p.ImageURL, &p.FeaturedHome, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, input NewProduct) (*Product, error) {
	p := &Product{
		Title:       input.Title,
		Description: input.Description,
		PriceCents:  *input.PriceCents,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}

	if r.featuredSupported {
		p.FeaturedHome = input.FeaturedHome
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO products (title, description, price_cents, stock, image_url, featured_home)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`, p.Title, p.Description, p.PriceCents, p.Stock, p.ImageURL, p.FeaturedHome).
			Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (title, description, price_cents, stock, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, p.Title, p.Description, p.PriceCents, p.Stock, p.ImageURL).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, input UpdateProduct) (*Product, error) {
	setParts := []string{}
	args := []interface{}{}
	arg := 1

	addSet := func(col string, val interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", col, arg))
		args = append(args, val)
		arg++
	}

	if input.Title != nil {
		addSet("title", *input.Title)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.PriceCents != nil {
		addSet("price_cents", *input.PriceCents)
	}
	if input.Stock != nil {
		addSet("stock", *input.Stock)
	}
	if input.ImageURL != nil {
		addSet("image_url", *input.ImageURL)
	}
	if input.FeaturedHome != nil && r.featuredSupported {
		addSet("featured_home", *input.FeaturedHome)
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d",
		strings.Join(setParts, ", "), arg,
	)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProductNotFound
	}
	return nil
}
