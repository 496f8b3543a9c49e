package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// RestaurantInput carries the editable fields of a restaurant.
type RestaurantInput struct {
	Name     string
	Rating   float64
	Location string
}

// RestaurantService manages the restaurant directory.
type RestaurantService struct {
	repo   repository.RestaurantRepository
	cache  repository.RestaurantCache
	logger *zap.Logger
	now    func() time.Time
}

// NewRestaurantService builds the service. cache may be nil.
func NewRestaurantService(repo repository.RestaurantRepository, cache repository.RestaurantCache, logger *zap.Logger) *RestaurantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RestaurantService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// Create adds a restaurant with a unique name.
func (s *RestaurantService) Create(ctx context.Context, in RestaurantInput) (*domain.Restaurant, error) {
	exists, err := s.repo.ExistsByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrRestaurantNameTaken
	}

	now := s.now().UTC()
	rest := &domain.Restaurant{
		ID:        uuid.New(),
		Name:      in.Name,
		Rating:    in.Rating,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

// Update replaces the editable fields of an existing restaurant.
func (s *RestaurantService) Update(ctx context.Context, id uuid.UUID, in RestaurantInput) (*domain.Restaurant, error) {
	rest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rest.Name = in.Name
	rest.Rating = in.Rating
	rest.Location = in.Location
	rest.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, rest); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return rest, nil
}

// Delete removes a restaurant and returns the removed record.
func (s *RestaurantService) Delete(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	rest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return rest, nil
}

// Get returns a restaurant by id, consulting the cache first.
func (s *RestaurantService) Get(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	if s.cache != nil {
		rest, err := s.cache.Get(ctx, id)
		if err == nil {
			return rest, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.logger.Debug("restaurant cache read failed", zap.Error(err))
		}
	}

	rest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, rest); err != nil {
			s.logger.Debug("restaurant cache write failed", zap.Error(err))
		}
	}
	return rest, nil
}

// GetByName returns the restaurant with the given name.
func (s *RestaurantService) GetByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	return s.repo.GetByName(ctx, name)
}

// List returns a zero-based page ordered by name.
func (s *RestaurantService) List(ctx context.Context, page, size int) (*domain.RestaurantPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	if page > math.MaxInt/size {
		// Past any reachable offset; report the total with no items.
		_, total, err := s.repo.List(ctx, 0, 0)
		if err != nil {
			return nil, err
		}
		return &domain.RestaurantPage{Items: []domain.Restaurant{}, Page: page, Size: size, Total: total}, nil
	}

	items, total, err := s.repo.List(ctx, size, page*size)
	if err != nil {
		return nil, err
	}
	return &domain.RestaurantPage{Items: items, Page: page, Size: size, Total: total}, nil
}

// ListByLocation returns every restaurant at location.
func (s *RestaurantService) ListByLocation(ctx context.Context, location string) ([]domain.Restaurant, error) {
	return s.repo.ListByLocation(ctx, location)
}

func (s *RestaurantService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("restaurant cache invalidation failed", zap.String("id", id.String()), zap.Error(err))
	}
}
