package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, is_admin, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, is_admin)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING created_at, updated_at`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin,
	)
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	user.CreatedAt = tsToTime(createdAt)
	user.UpdatedAt = tsToTime(updatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.scanUser(ctx, row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return r.scanUser(ctx, row)
}

func (r *UserRepository) scanUser(ctx context.Context, row pgx.Row) (*entities.User, error) {
	var u entities.User
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = tsToTime(createdAt)
	u.UpdatedAt = tsToTime(updatedAt)
	if err := r.attachRegisteredHackathons(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// attachRegisteredHackathons derives the user's registered list from the
// registrations join, the canonical source in the hosted variant.
func (r *UserRepository) attachRegisteredHackathons(ctx context.Context, u *entities.User) error {
	rows, err := r.pool.Query(ctx,
		`SELECT hackathon_id FROM registrations WHERE user_id = $1 ORDER BY registered_at`, u.ID)
	if err != nil {
		return fmt.Errorf("get registered hackathons: %w", err)
	}
	defer rows.Close()
	u.RegisteredHackathonIDs = []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan registered hackathon: %w", err)
		}
		u.RegisteredHackathonIDs = append(u.RegisteredHackathonIDs, id)
	}
	return rows.Err()
}

func (r *UserRepository) All(ctx context.Context) ([]entities.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var out []entities.User
	for rows.Next() {
		var u entities.User
		var createdAt, updatedAt pgtype.Timestamptz
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt = tsToTime(createdAt)
		u.UpdatedAt = tsToTime(updatedAt)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $2, email = $3, password_hash = $4, is_admin = $5, updated_at = now()
         WHERE id = $1`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
