package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// El stock NO vive aquí: se deriva del libro de movimientos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, description, sku, price, min_stock, category_id, image_url, created_by, created_at, updated_at`

// Create persiste un nuevo producto. SKU único por propietario.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, sku, price, min_stock, category_id, image_url, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.SKU, product.Price,
		product.MinStock, product.CategoryID, product.ImageURL, product.CreatedBy,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID acotado al propietario.
func (r *ProductRepo) GetByID(id, ownerID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND created_by = $2`
	var p entity.Product
	var imageURL *string
	err := r.q.QueryRow(context.Background(), query, id, ownerID).Scan(
		&p.ID, &p.Name, &p.Description, &p.SKU, &p.Price, &p.MinStock,
		&p.CategoryID, &imageURL, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if imageURL != nil {
		p.ImageURL = *imageURL
	}
	return &p, nil
}

// List lista productos del propietario con búsqueda (nombre o SKU, sin
// acentos), filtro por categoría, orden y paginación.
func (r *ProductRepo) List(ownerID string, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE created_by = $1`
	args := []any{ownerID}
	pos := 2
	if f.Search != "" {
		query += fmt.Sprintf(" AND (unaccent(name) ILIKE '%%' || $%d || '%%' OR sku ILIKE '%%' || $%d || '%%')", pos, pos)
		args = append(args, f.Search)
		pos++
	}
	if f.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, f.CategoryID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		sortColumn(f.Sort, map[string]string{
			"name": "name", "sku": "sku", "price": "price", "created_at": "created_at",
		}, "name"),
		sortOrder(f.Order), pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var imageURL *string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.Price, &p.MinStock,
			&p.CategoryID, &imageURL, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if imageURL != nil {
			p.ImageURL = *imageURL
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto acotado al propietario. No toca el stock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $3, description = $4, sku = $5, price = $6, min_stock = $7, category_id = $8, updated_at = $9
		WHERE id = $1 AND created_by = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.CreatedBy, product.Name, product.Description, product.SKU,
		product.Price, product.MinStock, product.CategoryID, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetImageURL persiste la URL de la imagen del producto.
func (r *ProductRepo) SetImageURL(id, ownerID, imageURL string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET image_url = $3, updated_at = now() WHERE id = $1 AND created_by = $2`,
		id, ownerID, imageURL,
	)
	if err != nil {
		return fmt.Errorf("set product image: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCategory cuenta productos de una categoría (guardia del borrado de categoría).
func (r *ProductRepo) CountByCategory(categoryID, ownerID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE category_id = $1 AND created_by = $2`,
		categoryID, ownerID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// Delete elimina un producto acotado al propietario.
func (r *ProductRepo) Delete(id, ownerID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM products WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
