package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo insert y delete: las filas son inmutables.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento (insert único y atómico; sin total derivado que mantener).
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Notes, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct devuelve todos los movimientos de un producto acotados al
// propietario, en orden de creación. Entrada del pliegue de stock actual.
func (r *StockMovementRepo) ListByProduct(productID, ownerID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, COALESCE(notes, ''), created_by, created_at
		FROM stock_movements WHERE product_id = $1 AND created_by = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByOwner devuelve todos los movimientos del propietario. Entrada del
// pliegue por producto del listado de productos.
func (r *StockMovementRepo) ListByOwner(ownerID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, COALESCE(notes, ''), created_by, created_at
		FROM stock_movements WHERE created_by = $1`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list movements by owner: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// List lista movimientos del propietario con filtros, nombres de producto y
// autor resueltos por JOIN, orden por created_at y paginación.
func (r *StockMovementRepo) List(ownerID string, f repository.MovementFilter) ([]*repository.MovementWithRefs, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, COALESCE(m.notes, ''), m.created_by, m.created_at,
		       p.name, u.full_name
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		JOIN users u ON u.id = m.created_by
		WHERE m.created_by = $1`
	args := []any{ownerID}
	pos := 2
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND m.type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.created_at %s LIMIT $%d OFFSET $%d", sortOrder(f.Order), pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*repository.MovementWithRefs
	for rows.Next() {
		var m repository.MovementWithRefs
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Notes,
			&m.CreatedBy, &m.CreatedAt, &m.ProductName, &m.CreatedByName); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina un movimiento acotado al propietario (borrado duro).
func (r *StockMovementRepo) Delete(id, ownerID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete stock movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByProduct elimina todos los movimientos de un producto (cascada del
// borrado de producto; se invoca dentro de la transacción del TxRunner).
func (r *StockMovementRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete movements by product: %w", err)
	}
	return nil
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Notes, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
