package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// RestaurantRepository manages restaurant persistence. Lookups return
// domain.ErrRestaurantNotFound when absent and writes return
// domain.ErrRestaurantNameTaken on a duplicate name.
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) error
	Update(ctx context.Context, r *domain.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	GetByName(ctx context.Context, name string) (*domain.Restaurant, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]domain.Restaurant, int64, error)
	ListByLocation(ctx context.Context, location string) ([]domain.Restaurant, error)
}

type restaurantRepository struct {
	pool *pgxpool.Pool
}

// NewRestaurantRepository builds the repository.
func NewRestaurantRepository(pool *pgxpool.Pool) RestaurantRepository {
	return &restaurantRepository{pool: pool}
}

const restaurantColumns = `id, name, rating, location, created_at, updated_at`

func (r *restaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) error {
	const query = `
        INSERT INTO restaurants (id, name, rating, location, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	if _, err := r.pool.Exec(ctx, query,
		rest.ID,
		rest.Name,
		rest.Rating,
		rest.Location,
		rest.CreatedAt,
		rest.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRestaurantNameTaken
		}
		return err
	}
	return nil
}

func (r *restaurantRepository) Update(ctx context.Context, rest *domain.Restaurant) error {
	const query = `
        UPDATE restaurants SET name=$1, rating=$2, location=$3, updated_at=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		rest.Name,
		rest.Rating,
		rest.Location,
		rest.UpdatedAt,
		rest.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRestaurantNameTaken
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func (r *restaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM restaurants WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	return r.getOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id=$1`, id)
}

func (r *restaurantRepository) GetByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	return r.getOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE name=$1`, name)
}

func (r *restaurantRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM restaurants WHERE name=$1)`, name).Scan(&exists)
	return exists, err
}

func (r *restaurantRepository) List(ctx context.Context, limit, offset int) ([]domain.Restaurant, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 || offset < 0 {
		return []domain.Restaurant{}, total, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := scanRestaurants(rows)
	return items, total, err
}

func (r *restaurantRepository) ListByLocation(ctx context.Context, location string) ([]domain.Restaurant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE location=$1 ORDER BY name`,
		location)
	if err != nil {
		return nil, err
	}
	return scanRestaurants(rows)
}

func (r *restaurantRepository) getOne(ctx context.Context, query string, arg any) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&rest.ID,
		&rest.Name,
		&rest.Rating,
		&rest.Location,
		&rest.CreatedAt,
		&rest.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, err
	}
	return &rest, nil
}

func scanRestaurants(rows pgx.Rows) ([]domain.Restaurant, error) {
	defer rows.Close()

	result := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Rating, &rest.Location, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, rest)
	}
	return result, rows.Err()
}
