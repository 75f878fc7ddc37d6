package product

import "time"

type Product struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PriceCents   int64     `json:"priceCents"`
	Stock        int       `json:"stock"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	FeaturedHome bool      `json:"featuredHome"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ListOptions struct {
	FeaturedOnly bool
	Limit        int
}

type NewProduct struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	PriceCents   *int64  `json:"priceCents"`
	Stock        int     `json:"stock"`
	ImageURL     *string `json:"imageUrl"`
	FeaturedHome bool    `json:"featuredHome"`
}

type UpdateProduct struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	PriceCents   *int64  `json:"priceCents"`
	Stock        *int    `json:"stock"`
	ImageURL     *string `json:"imageUrl"`
	FeaturedHome *bool   `json:"featuredHome"`
}
