package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/ports/output"
)

var _ output.RegistrationRepository = (*RegistrationRepository)(nil)

// RegistrationRepository implements the compound registration writes as
// single transactions, the hosted-variant equivalent of the original's
// batched multi-document write.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

const registrationColumns = `id, user_id, hackathon_id, full_name, mobile, college,
    education, field, team_name, team_size, status, registered_at, created_at, updated_at`

func (r *RegistrationRepository) Register(ctx context.Context, registration *entities.Registration) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin register: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO registrations (id, user_id, hackathon_id, full_name, mobile, college,
             education, field, team_name, team_size, status, registered_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
         RETURNING created_at, updated_at`,
		registration.ID, registration.UserID, registration.HackathonID,
		registration.FullName, registration.Mobile, registration.College,
		registration.Education, registration.Field, registration.TeamName,
		registration.TeamSize, registration.Status, timeToTs(registration.RegisteredAt),
	)
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("create registration: %w", err)
	}
	registration.CreatedAt = tsToTime(createdAt)
	registration.UpdatedAt = tsToTime(updatedAt)

	if domain.CountsTowardCapacity(registration.Status) {
		if _, err := tx.Exec(ctx,
			`UPDATE hackathons SET participant_count = participant_count + 1, updated_at = now()
             WHERE id = $1`, registration.HackathonID); err != nil {
			return fmt.Errorf("increment participant count: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit register: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) Unregister(ctx context.Context, registration *entities.Registration) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unregister: %w", err)
	}
	defer tx.Rollback(ctx)

	var status string
	row := tx.QueryRow(ctx,
		`DELETE FROM registrations WHERE id = $1 RETURNING status`, registration.ID)
	if err := row.Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	if domain.CountsTowardCapacity(status) {
		if _, err := tx.Exec(ctx,
			`UPDATE hackathons SET participant_count = GREATEST(participant_count - 1, 0), updated_at = now()
             WHERE id = $1`, registration.HackathonID); err != nil {
			return fmt.Errorf("decrement participant count: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit unregister: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*entities.Registration, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id)
	return scanRegistration(row)
}

func (r *RegistrationRepository) FindByUserAndHackathon(ctx context.Context, userID, hackathonID string) (*entities.Registration, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations
         WHERE user_id = $1 AND hackathon_id = $2`, userID, hackathonID)
	return scanRegistration(row)
}

func scanRegistration(row pgx.Row) (*entities.Registration, error) {
	var reg entities.Registration
	var registeredAt, createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&reg.ID, &reg.UserID, &reg.HackathonID, &reg.FullName, &reg.Mobile,
		&reg.College, &reg.Education, &reg.Field, &reg.TeamName, &reg.TeamSize,
		&reg.Status, &registeredAt, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}
	reg.RegisteredAt = tsToTime(registeredAt)
	reg.CreatedAt = tsToTime(createdAt)
	reg.UpdatedAt = tsToTime(updatedAt)
	return &reg, nil
}

func (r *RegistrationRepository) FindByUserID(ctx context.Context, userID string) ([]entities.Registration, error) {
	return r.list(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE user_id = $1 ORDER BY registered_at`, userID)
}

func (r *RegistrationRepository) FindByHackathonID(ctx context.Context, hackathonID string) ([]entities.Registration, error) {
	return r.list(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE hackathon_id = $1 ORDER BY registered_at`, hackathonID)
}

func (r *RegistrationRepository) FindByHackathonAndStatus(ctx context.Context, hackathonID, status string) ([]entities.Registration, error) {
	return r.list(ctx,
		`SELECT `+registrationColumns+` FROM registrations
         WHERE hackathon_id = $1 AND status = $2 ORDER BY registered_at`, hackathonID, status)
}

func (r *RegistrationRepository) list(ctx context.Context, query string, args ...any) ([]entities.Registration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()
	var out []entities.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *reg)
	}
	return out, rows.Err()
}

func (r *RegistrationRepository) CountByHackathonAndStatus(ctx context.Context, hackathonID, status string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM registrations WHERE hackathon_id = $1 AND status = $2`,
		hackathonID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin status update: %w", err)
	}
	defer tx.Rollback(ctx)

	var prevStatus, hackathonID string
	row := tx.QueryRow(ctx,
		`SELECT status, hackathon_id FROM registrations WHERE id = $1 FOR UPDATE`, id)
	if err := row.Scan(&prevStatus, &hackathonID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("lock registration: %w", err)
	}
	if prevStatus == status {
		return tx.Commit(ctx)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE registrations SET status = $2, updated_at = now() WHERE id = $1`, id, status); err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	delta := 0
	if domain.CountsTowardCapacity(status) && !domain.CountsTowardCapacity(prevStatus) {
		delta = 1
	} else if !domain.CountsTowardCapacity(status) && domain.CountsTowardCapacity(prevStatus) {
		delta = -1
	}
	if delta != 0 {
		if _, err := tx.Exec(ctx,
			`UPDATE hackathons SET participant_count = GREATEST(participant_count + $2, 0), updated_at = now()
             WHERE id = $1`, hackathonID, delta); err != nil {
			return fmt.Errorf("adjust participant count: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit status update: %w", err)
	}
	return nil
}
