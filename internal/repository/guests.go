package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const guestColumns = `id, first_name, family_name, phone, side, relation, group_code, created_at`

// GuestRepository handles persistence for guests.
type GuestRepository struct {
	db *pgxpool.Pool
}

// NewGuestRepository constructs a GuestRepository.
func NewGuestRepository(db *pgxpool.Pool) *GuestRepository {
	return &GuestRepository{db: db}
}

// Create inserts a guest. The request is expected to be normalised already.
func (r *GuestRepository) Create(ctx context.Context, req model.CreateGuestRequest) (*model.Guest, error) {
	g := newGuest(req)
	if err := insertGuest(ctx, r.db, g); err != nil {
		return nil, err
	}
	return g, nil
}

// List returns all guests, newest first.
func (r *GuestRepository) List(ctx context.Context) ([]model.Guest, error) {
	return r.query(ctx, `SELECT `+guestColumns+` FROM guests ORDER BY created_at DESC`)
}

// ListByGroupCode returns the guests whose soft reference matches code.
func (r *GuestRepository) ListByGroupCode(ctx context.Context, code string) ([]model.Guest, error) {
	return r.query(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE group_code = $1 ORDER BY created_at ASC`,
		code,
	)
}

// Delete removes a guest by id.
func (r *GuestRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuestRepository) query(ctx context.Context, query string, args ...any) ([]model.Guest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()

	var guests []model.Guest
	for rows.Next() {
		var g model.Guest
		if err := rows.Scan(&g.ID, &g.FirstName, &g.FamilyName, &g.Phone, &g.Side, &g.Relation, &g.GroupCode, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func newGuest(req model.CreateGuestRequest) *model.Guest {
	return &model.Guest{
		ID:         uuid.NewString(),
		FirstName:  req.FirstName,
		FamilyName: req.FamilyName,
		Phone:      req.Phone,
		Side:       req.Side,
		Relation:   req.Relation,
		GroupCode:  req.GroupCode,
		CreatedAt:  time.Now().UTC(),
	}
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertGuest(ctx context.Context, db execer, g *model.Guest) error {
	_, err := db.Exec(ctx,
		`INSERT INTO guests (`+guestColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		g.ID, g.FirstName, g.FamilyName, g.Phone, g.Side, g.Relation, g.GroupCode, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert guest: %w", err)
	}
	return nil
}
