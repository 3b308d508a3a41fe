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

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, item_id, alert_type, message, status, created_at, resolved_at, resolved_by`

// Create persiste una alerta. Devuelve ErrDuplicate si ya existe una alerta
// activa del mismo tipo para el artículo (índice único parcial): así una
// carrera entre dos evaluaciones concurrentes se reduce a un no-op.
func (r *AlertRepo) Create(alert *entity.Alert) error {
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.ItemID, alert.Type, alert.Message, alert.Status,
		alert.CreatedAt, alert.ResolvedAt, alert.ResolvedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *AlertRepo) GetByID(id string) (*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	a, err := scanAlert(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// FindActiveByItemAndType busca la alerta activa de un tipo para un artículo
// (a lo sumo una, por la deduplicación del motor).
func (r *AlertRepo) FindActiveByItemAndType(itemID, alertType string) (*entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + ` FROM alerts
		WHERE item_id = $1 AND alert_type = $2 AND status = 'active'
		ORDER BY created_at DESC LIMIT 1`
	a, err := scanAlert(r.q.QueryRow(context.Background(), query, itemID, alertType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active alert: %w", err)
	}
	return a, nil
}

// List lista alertas filtradas por artículo, estado o tipo.
func (r *AlertRepo) List(filter repository.AlertFilter) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND alert_type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// UpdateStatus escribe la transición de estado (y resolved_at/resolved_by si aplica).
// El resto de columnas de la alerta no se tocan: el mensaje es un snapshot.
func (r *AlertRepo) UpdateStatus(alert *entity.Alert) error {
	query := `
		UPDATE alerts SET status = $2, resolved_at = $3, resolved_by = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.Status, alert.ResolvedAt, alert.ResolvedBy)
	if err != nil {
		return fmt.Errorf("update alert status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByItem cuenta las alertas de un artículo.
func (r *AlertRepo) CountByItem(itemID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM alerts WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return n, nil
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	err := row.Scan(&a.ID, &a.ItemID, &a.Type, &a.Message, &a.Status,
		&a.CreatedAt, &a.ResolvedAt, &a.ResolvedBy)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
