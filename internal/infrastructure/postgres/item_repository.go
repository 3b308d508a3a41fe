package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, sku, description, category_id, location_id, supplier_id,
		quantity, minimum_stock, maximum_stock, reorder_point, unit_price, barcode,
		expiration_date, last_restock_date, created_at, updated_at, created_by, updated_by`

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.Description, item.CategoryID, item.LocationID,
		item.SupplierID, item.Quantity, item.MinimumStock, item.MaximumStock, item.ReorderPoint,
		item.UnitPrice, item.Barcode, item.ExpirationDate, item.LastRestockDate,
		item.CreatedAt, item.UpdatedAt, item.CreatedBy, item.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySKU obtiene un artículo por SKU (único).
func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`
	return r.scanOne(query, sku)
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
// Serializa los movimientos concurrentes sobre el mismo artículo.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update escribe los atributos editables. Nunca toca quantity ni
// last_restock_date: esas columnas pertenecen a UpdateQuantity.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, description = $3, category_id = $4, location_id = $5,
			supplier_id = $6, minimum_stock = $7, maximum_stock = $8, reorder_point = $9,
			unit_price = $10, barcode = $11, expiration_date = $12, updated_at = $13, updated_by = $14
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.CategoryID, item.LocationID,
		item.SupplierID, item.MinimumStock, item.MaximumStock, item.ReorderPoint,
		item.UnitPrice, item.Barcode, item.ExpirationDate, item.UpdatedAt, item.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity escribe la cantidad resultante de un movimiento (dentro de la tx del procesador).
func (r *ItemRepo) UpdateQuantity(itemID string, quantity int64, lastRestock *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE items SET quantity = $2, last_restock_date = $3, updated_at = $4, updated_by = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, itemID, quantity, lastRestock, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista artículos paginados por nombre.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Delete elimina un artículo. La FK desde stock_movements/alerts hace que el
// intento sobre un artículo con historial falle; se traduce a ErrConflict.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) scanOne(query string, arg any) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// scanItem escanea una fila de items (pgx.Row o pgx.Rows).
func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var description, barcode, createdBy, updatedBy *string
	err := row.Scan(
		&i.ID, &i.Name, &i.SKU, &description, &i.CategoryID, &i.LocationID, &i.SupplierID,
		&i.Quantity, &i.MinimumStock, &i.MaximumStock, &i.ReorderPoint, &i.UnitPrice, &barcode,
		&i.ExpirationDate, &i.LastRestockDate, &i.CreatedAt, &i.UpdatedAt, &createdBy, &updatedBy,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		i.Description = *description
	}
	if barcode != nil {
		i.Barcode = *barcode
	}
	if createdBy != nil {
		i.CreatedBy = *createdBy
	}
	if updatedBy != nil {
		i.UpdatedBy = *updatedBy
	}
	return &i, nil
}
