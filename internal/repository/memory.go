package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// memoryUserRepository backs the service when no database is configured.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserRepository returns a process-local credential store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]domain.User)}
}

func (r *memoryUserRepository) Exists(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[username]
	return ok, nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	r.users[user.Username] = *user
	saved := *user
	return &saved, nil
}

type memoryRestaurantRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]domain.Restaurant
}

// NewMemoryRestaurantRepository returns a process-local restaurant store.
func NewMemoryRestaurantRepository() RestaurantRepository {
	return &memoryRestaurantRepository{byID: make(map[uuid.UUID]domain.Restaurant)}
}

func (r *memoryRestaurantRepository) Create(_ context.Context, rest *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTakenLocked(rest.Name, uuid.Nil) {
		return domain.ErrRestaurantNameTaken
	}
	r.byID[rest.ID] = *rest
	return nil
}

func (r *memoryRestaurantRepository) Update(_ context.Context, rest *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rest.ID]; !ok {
		return domain.ErrRestaurantNotFound
	}
	if r.nameTakenLocked(rest.Name, rest.ID) {
		return domain.ErrRestaurantNameTaken
	}
	r.byID[rest.ID] = *rest
	return nil
}

func (r *memoryRestaurantRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrRestaurantNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryRestaurantRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rest, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return &rest, nil
}

func (r *memoryRestaurantRepository) GetByName(_ context.Context, name string) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rest := range r.byID {
		if rest.Name == name {
			found := rest
			return &found, nil
		}
	}
	return nil, domain.ErrRestaurantNotFound
}

func (r *memoryRestaurantRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nameTakenLocked(name, uuid.Nil), nil
}

func (r *memoryRestaurantRepository) List(_ context.Context, limit, offset int) ([]domain.Restaurant, int64, error) {
	all := r.sorted(func(domain.Restaurant) bool { return true })
	total := int64(len(all))
	if offset < 0 || limit <= 0 || offset >= len(all) {
		return []domain.Restaurant{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *memoryRestaurantRepository) ListByLocation(_ context.Context, location string) ([]domain.Restaurant, error) {
	return r.sorted(func(rest domain.Restaurant) bool { return rest.Location == location }), nil
}

func (r *memoryRestaurantRepository) sorted(keep func(domain.Restaurant) bool) []domain.Restaurant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Restaurant, 0, len(r.byID))
	for _, rest := range r.byID {
		if keep(rest) {
			out = append(out, rest)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *memoryRestaurantRepository) nameTakenLocked(name string, except uuid.UUID) bool {
	for id, rest := range r.byID {
		if rest.Name == name && id != except {
			return true
		}
	}
	return false
}
