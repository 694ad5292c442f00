package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Redis key prefixes
const (
	categoriesKey   = "trivia:categories"
	rateLimitPrefix = "trivia:ratelimit:"
)

// CategoryRepository is a read-through Redis cache in front of another
// domain.CategoryRepository. Redis failures are logged and the request is
// served from the underlying repository.
type CategoryRepository struct {
	next   domain.CategoryRepository
	redis  *redis.Client
	ttl    time.Duration
	logger echo.Logger
}

// NewCategoryRepository wraps next with a cache whose entries expire after ttl
func NewCategoryRepository(next domain.CategoryRepository, client *redis.Client, ttl time.Duration, logger echo.Logger) *CategoryRepository {
	return &CategoryRepository{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

// List retrieves all categories, from Redis when cached
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := r.load(ctx)
	if err == nil {
		return categories, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.logger.Warnf("category cache read failed: %v", err)
	}

	categories, err = r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	// An empty table is not cached so newly seeded categories show up at once
	if len(categories) > 0 {
		if err := r.store(ctx, categories); err != nil {
			r.logger.Warnf("category cache write failed: %v", err)
		}
	}

	return categories, nil
}

// GetByID retrieves a category by its ID. Ids missing from the cached list
// are looked up in the underlying repository.
func (r *CategoryRepository) GetByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	categories, err := r.load(ctx)
	if err == nil {
		for _, c := range categories {
			if c.ID == id {
				category := c
				return &category, nil
			}
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warnf("category cache read failed: %v", err)
	}

	return r.next.GetByID(ctx, id)
}

// Invalidate drops the cached category list
func (r *CategoryRepository) Invalidate(ctx context.Context) error {
	if err := r.redis.Del(ctx, categoriesKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate categories: %w", err)
	}
	return nil
}

func (r *CategoryRepository) load(ctx context.Context) ([]domain.Category, error) {
	data, err := r.redis.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) store(ctx context.Context, categories []domain.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	return r.redis.Set(ctx, categoriesKey, data, r.ttl).Err()
}
