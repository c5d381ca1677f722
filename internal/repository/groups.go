package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const groupColumns = `id, group_code, token, max_guests, side, created_at`

// GroupRepository handles persistence for guest groups.
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository constructs a GroupRepository.
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts a group with a fresh id and invitation token.
// A taken group code yields ErrConflict and leaves the existing row untouched.
func (r *GroupRepository) Create(ctx context.Context, code string, maxGuests int, side model.Side) (*model.GuestGroup, error) {
	g := &model.GuestGroup{
		ID:        uuid.NewString(),
		GroupCode: code,
		Token:     uuid.NewString(),
		MaxGuests: maxGuests,
		Side:      side,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO guest_groups (`+groupColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		g.ID, g.GroupCode, g.Token, g.MaxGuests, g.Side, g.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("insert group: %w", err)
	}
	return g, nil
}

// List returns all groups, newest first.
func (r *GroupRepository) List(ctx context.Context) ([]model.GuestGroup, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+groupColumns+` FROM guest_groups ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []model.GuestGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// GetByToken resolves an invitation token.
func (r *GroupRepository) GetByToken(ctx context.Context, token string) (*model.GuestGroup, error) {
	return r.getOne(ctx, `SELECT `+groupColumns+` FROM guest_groups WHERE token = $1`, token)
}

// GetByCode looks a group up by its human-readable code.
func (r *GroupRepository) GetByCode(ctx context.Context, code string) (*model.GuestGroup, error) {
	return r.getOne(ctx, `SELECT `+groupColumns+` FROM guest_groups WHERE group_code = $1`, code)
}

// Update changes capacity and side. Code and token never change.
// In the same transaction a stored response larger than the new capacity is
// cut down to it: the count is capped and only the first maxGuests names
// are kept.
func (r *GroupRepository) Update(ctx context.Context, id string, maxGuests int, side model.Side) (_ *model.GuestGroup, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	g, err := scanGroup(tx.QueryRow(ctx,
		`UPDATE guest_groups SET max_guests = $2, side = $3
		 WHERE id = $1
		 RETURNING `+groupColumns,
		id, maxGuests, side,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE rsvp_responses SET
		     number_attending = LEAST(number_attending, $2::int),
		     guest_names = (
		         SELECT COALESCE(jsonb_agg(name ORDER BY pos), '[]'::jsonb)
		         FROM jsonb_array_elements(guest_names) WITH ORDINALITY AS t(name, pos)
		         WHERE pos <= $2::int
		     )
		 WHERE group_id = $1
		   AND (number_attending > $2::int OR jsonb_array_length(guest_names) > $2::int)`,
		id, maxGuests,
	)
	if err != nil {
		return nil, fmt.Errorf("clamp rsvp to capacity: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return g, nil
}

// Delete removes a group. Its RSVP goes with it (ON DELETE CASCADE); guests
// referencing the code are left in place.
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM guest_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GroupRepository) getOne(ctx context.Context, query string, args ...any) (*model.GuestGroup, error) {
	g, err := scanGroup(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func scanGroup(row pgx.Row) (*model.GuestGroup, error) {
	var g model.GuestGroup
	if err := row.Scan(&g.ID, &g.GroupCode, &g.Token, &g.MaxGuests, &g.Side, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan group: %w", err)
	}
	return &g, nil
}
