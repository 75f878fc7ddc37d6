package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"quiltshop-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetList(ctx context.Context, opts ListOptions) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, input NewProduct) (*Product, error)
	Update(ctx context.Context, id int64, input UpdateProduct) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetList(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProductList"),
	)

	start := time.Now()

	if opts.Limit <= 0 {
		opts.Limit = 100
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}

	products, err := s.repo.GetList(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Debug("get product list success",
		zap.Int("count", len(products)),
		zap.Bool("featured_only", opts.FeaturedOnly),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input NewProduct) (*Product, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("title cannot be empty")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errors.New("description cannot be empty")
	}
	if input.PriceCents == nil {
		return nil, errors.New("priceCents is required")
	}
	if *input.PriceCents < 0 {
		return nil, errors.New("priceCents cannot be negative")
	}
	if input.Stock < 0 {
		return nil, errors.New("stock cannot be negative")
	}

	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProduct) (*Product, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, errors.New("title cannot be empty")
	}
	if input.PriceCents != nil && *input.PriceCents < 0 {
		return nil, errors.New("priceCents cannot be negative")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, errors.New("stock cannot be negative")
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
