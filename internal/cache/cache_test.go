package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

type stubCategories struct {
	categories []domain.Category
	listCalls  int
	getCalls   int
}

func (s *stubCategories) List(ctx context.Context) ([]domain.Category, error) {
	s.listCalls++
	return s.categories, nil
}

func (s *stubCategories) GetByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	s.getCalls++
	for _, c := range s.categories {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCategoryRepositoryReadThrough(t *testing.T) {
	mr, client := newRedis(t)
	stub := &stubCategories{categories: []domain.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}}
	repo := NewCategoryRepository(stub, client, time.Minute, echo.New().Logger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 2 || got[1].Type != "Art" {
			t.Fatalf("List() = %+v", got)
		}
	}
	if stub.listCalls != 1 {
		t.Errorf("underlying List called %d times, want 1", stub.listCalls)
	}
	if !mr.Exists(categoriesKey) {
		t.Error("categories were not cached")
	}

	mr.FastForward(2 * time.Minute)
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if stub.listCalls != 2 {
		t.Errorf("underlying List called %d times after expiry, want 2", stub.listCalls)
	}
}

func TestCategoryRepositoryGetByID(t *testing.T) {
	_, client := newRedis(t)
	stub := &stubCategories{categories: []domain.Category{{ID: 1, Type: "Science"}}}
	repo := NewCategoryRepository(stub, client, time.Minute, echo.New().Logger)
	ctx := context.Background()

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	got, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID(1) error = %v", err)
	}
	if got.Type != "Science" {
		t.Errorf("GetByID(1).Type = %q, want Science", got.Type)
	}
	if stub.getCalls != 0 {
		t.Errorf("cached id hit the underlying repository")
	}

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("GetByID(42) error = %v, want ErrCategoryNotFound", err)
	}
	if stub.getCalls != 1 {
		t.Errorf("underlying GetByID called %d times, want 1", stub.getCalls)
	}
}

func TestCategoryRepositoryFallsBackWhenRedisIsDown(t *testing.T) {
	mr, client := newRedis(t)
	stub := &stubCategories{categories: []domain.Category{{ID: 3, Type: "Geography"}}}
	repo := NewCategoryRepository(stub, client, time.Minute, echo.New().Logger)
	mr.Close()

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("List() = %+v", got)
	}
}

func TestCategoryRepositoryInvalidate(t *testing.T) {
	mr, client := newRedis(t)
	stub := &stubCategories{categories: []domain.Category{{ID: 1, Type: "Science"}}}
	repo := NewCategoryRepository(stub, client, time.Minute, echo.New().Logger)
	ctx := context.Background()

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if err := repo.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if mr.Exists(categoriesKey) {
		t.Error("categories still cached after Invalidate")
	}
}

func TestRateLimiter(t *testing.T) {
	mr, client := newRedis(t)
	limiter := NewRateLimiter(client, 2, time.Minute)
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if ok != want {
			t.Errorf("request %d: Allow() = %v, want %v", i+1, ok, want)
		}
	}

	ok, err := limiter.Allow(ctx, "10.0.0.2")
	if err != nil || !ok {
		t.Errorf("other client: Allow() = %v, %v; want true, nil", ok, err)
	}

	mr.FastForward(time.Minute)
	ok, err = limiter.Allow(ctx, "10.0.0.1")
	if err != nil || !ok {
		t.Errorf("after window: Allow() = %v, %v; want true, nil", ok, err)
	}
}
