package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, email, password_hash, full_name, google_id, reset_token, reset_token_expires, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, google_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.GoogleID,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.scanOne(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail obtiene un usuario por email.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.scanOne(`SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
}

// GetByResetToken obtiene un usuario por su token de recuperación activo.
func (r *UserRepo) GetByResetToken(token string) (*entity.User, error) {
	return r.scanOne(`SELECT `+userColumns+` FROM users WHERE reset_token = $1 LIMIT 1`, token)
}

// SetGoogleID vincula la cuenta con un subject de Google.
func (r *UserRepo) SetGoogleID(userID, googleID string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE users SET google_id = $2, updated_at = now() WHERE id = $1`,
		userID, googleID,
	)
	if err != nil {
		return fmt.Errorf("set google id: %w", err)
	}
	return nil
}

// SetResetToken guarda el token de recuperación y su expiración.
func (r *UserRepo) SetResetToken(userID, token string, expires time.Time) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE users SET reset_token = $2, reset_token_expires = $3, updated_at = now() WHERE id = $1`,
		userID, token, expires,
	)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// UpdatePassword cambia el hash y limpia el token de recuperación.
func (r *UserRepo) UpdatePassword(userID, passwordHash string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE users SET password_hash = $2, reset_token = NULL, reset_token_expires = NULL, updated_at = now() WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(query string, arg any) (*entity.User, error) {
	var u entity.User
	var googleID, resetToken *string
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &googleID, &resetToken,
		&u.ResetTokenExpires, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if googleID != nil {
		u.GoogleID = *googleID
	}
	if resetToken != nil {
		u.ResetToken = *resetToken
	}
	return &u, nil
}
