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

var _ output.HackathonRepository = (*HackathonRepository)(nil)

type HackathonRepository struct {
	pool *pgxpool.Pool
}

func NewHackathonRepository(pool *pgxpool.Pool) *HackathonRepository {
	return &HackathonRepository{pool: pool}
}

const hackathonColumns = `id, title, description, starts_at, ends_at, location,
    max_participants, participant_count, prize_pool, registration_deadline,
    organizer, status, created_at, updated_at`

func (r *HackathonRepository) Create(ctx context.Context, hackathon *entities.Hackathon) error {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO hackathons (id, title, description, starts_at, ends_at, location,
             max_participants, participant_count, prize_pool, registration_deadline, organizer, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
         RETURNING created_at, updated_at`,
		hackathon.ID, hackathon.Title, hackathon.Description,
		timeToTs(hackathon.StartsAt), timeToTs(hackathon.EndsAt), hackathon.Location,
		hackathon.MaxParticipants, hackathon.ParticipantCount, hackathon.PrizePool,
		timeToTs(hackathon.RegistrationDeadline), hackathon.Organizer, hackathon.Status,
	)
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("create hackathon: %w", err)
	}
	hackathon.CreatedAt = tsToTime(createdAt)
	hackathon.UpdatedAt = tsToTime(updatedAt)
	return nil
}

func (r *HackathonRepository) FindByID(ctx context.Context, id string) (*entities.Hackathon, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+hackathonColumns+` FROM hackathons WHERE id = $1`, id)
	h, err := scanHackathon(row)
	if err != nil {
		return nil, err
	}
	if err := r.attachRegisteredUsers(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func scanHackathon(row pgx.Row) (*entities.Hackathon, error) {
	var h entities.Hackathon
	var startsAt, endsAt, deadline, createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&h.ID, &h.Title, &h.Description, &startsAt, &endsAt, &h.Location,
		&h.MaxParticipants, &h.ParticipantCount, &h.PrizePool, &deadline,
		&h.Organizer, &h.Status, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrHackathonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get hackathon: %w", err)
	}
	h.StartsAt = tsToTime(startsAt)
	h.EndsAt = tsToTime(endsAt)
	h.RegistrationDeadline = tsToTime(deadline)
	h.CreatedAt = tsToTime(createdAt)
	h.UpdatedAt = tsToTime(updatedAt)
	return &h, nil
}

func (r *HackathonRepository) attachRegisteredUsers(ctx context.Context, h *entities.Hackathon) error {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM registrations WHERE hackathon_id = $1 ORDER BY registered_at`, h.ID)
	if err != nil {
		return fmt.Errorf("get registered users: %w", err)
	}
	defer rows.Close()
	h.RegisteredUserIDs = []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan registered user: %w", err)
		}
		h.RegisteredUserIDs = append(h.RegisteredUserIDs, id)
	}
	return rows.Err()
}

func (r *HackathonRepository) All(ctx context.Context) ([]entities.Hackathon, error) {
	return r.list(ctx, `SELECT `+hackathonColumns+` FROM hackathons ORDER BY starts_at`)
}

func (r *HackathonRepository) FindByStatus(ctx context.Context, status string) ([]entities.Hackathon, error) {
	return r.list(ctx,
		`SELECT `+hackathonColumns+` FROM hackathons WHERE status = $1 ORDER BY starts_at`, status)
}

func (r *HackathonRepository) list(ctx context.Context, query string, args ...any) ([]entities.Hackathon, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list hackathons: %w", err)
	}
	defer rows.Close()
	var out []entities.Hackathon
	for rows.Next() {
		h, err := scanHackathon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

func (r *HackathonRepository) Update(ctx context.Context, hackathon *entities.Hackathon) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE hackathons SET title = $2, description = $3, starts_at = $4, ends_at = $5,
             location = $6, max_participants = $7, participant_count = $8, prize_pool = $9,
             registration_deadline = $10, organizer = $11, status = $12, updated_at = now()
         WHERE id = $1`,
		hackathon.ID, hackathon.Title, hackathon.Description,
		timeToTs(hackathon.StartsAt), timeToTs(hackathon.EndsAt), hackathon.Location,
		hackathon.MaxParticipants, hackathon.ParticipantCount, hackathon.PrizePool,
		timeToTs(hackathon.RegistrationDeadline), hackathon.Organizer, hackathon.Status,
	)
	if err != nil {
		return fmt.Errorf("update hackathon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHackathonNotFound
	}
	return nil
}

// Delete removes the hackathon; the registrations FK cascades, so no orphan
// registration survives.
func (r *HackathonRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM hackathons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete hackathon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHackathonNotFound
	}
	return nil
}
