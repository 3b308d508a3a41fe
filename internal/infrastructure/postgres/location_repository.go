package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(location *entity.Location) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO locations (id, name, description) VALUES ($1, $2, $3)`,
		location.ID, location.Name, nullable(location.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	var l entity.Location
	var desc *string
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description FROM locations WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &desc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	if desc != nil {
		l.Description = *desc
	}
	return &l, nil
}

func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description FROM locations ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		var desc *string
		if err := rows.Scan(&l.ID, &l.Name, &desc); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		if desc != nil {
			l.Description = *desc
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LocationRepo) Update(location *entity.Location) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE locations SET name = $2, description = $3 WHERE id = $1`,
		location.ID, location.Name, nullable(location.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LocationRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
