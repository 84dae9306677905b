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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.CreatedBy,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID acotada al propietario.
func (r *CategoryRepo) GetByID(id, ownerID string) (*entity.Category, error) {
	query := `
		SELECT id, name, description, created_by, created_at, updated_at
		FROM categories WHERE id = $1 AND created_by = $2`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id, ownerID).Scan(
		&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// List lista categorías del propietario con búsqueda, orden y paginación.
func (r *CategoryRepo) List(ownerID string, f repository.CategoryFilter) ([]*entity.Category, error) {
	query := `
		SELECT id, name, description, created_by, created_at, updated_at
		FROM categories WHERE created_by = $1`
	args := []any{ownerID}
	pos := 2
	if f.Search != "" {
		query += fmt.Sprintf(" AND unaccent(name) ILIKE '%%' || $%d || '%%'", pos)
		args = append(args, f.Search)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		sortColumn(f.Sort, map[string]string{"name": "name", "created_at": "created_at"}, "name"),
		sortOrder(f.Order), pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza una categoría acotada al propietario.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET name = $3, description = $4, updated_at = $5
		WHERE id = $1 AND created_by = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		category.ID, category.CreatedBy, category.Name, category.Description, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una categoría acotada al propietario.
func (r *CategoryRepo) Delete(id, ownerID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM categories WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
