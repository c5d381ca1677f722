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

const rsvpColumns = `id, group_id, attending, number_attending, guest_names, language, submitted_at, updated_at`

// RSVPRepository handles persistence for RSVP responses.
type RSVPRepository struct {
	db *pgxpool.Pool
}

// NewRSVPRepository constructs an RSVPRepository.
func NewRSVPRepository(db *pgxpool.Pool) *RSVPRepository {
	return &RSVPRepository{db: db}
}

// Upsert records the response for a group, replacing any earlier one.
// created is true when no response existed before.
//
// The write is a single INSERT … ON CONFLICT statement keyed on the unique
// group_id, so two concurrent submissions for one invitation cannot both
// insert: Postgres serialises them on the index and the loser takes the
// DO UPDATE branch.
//
// xmax is zero only for a freshly inserted tuple, which is how the statement
// reports which branch it took.
func (r *RSVPRepository) Upsert(ctx context.Context, resp model.RSVPResponse) (*model.RSVPResponse, bool, error) {
	now := time.Now().UTC()
	if resp.GuestNames == nil {
		resp.GuestNames = []string{}
	}

	var created bool
	err := r.db.QueryRow(ctx,
		`INSERT INTO rsvp_responses (`+rsvpColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 ON CONFLICT (group_id) DO UPDATE SET
		     attending        = EXCLUDED.attending,
		     number_attending = EXCLUDED.number_attending,
		     guest_names      = EXCLUDED.guest_names,
		     language         = EXCLUDED.language,
		     updated_at       = EXCLUDED.updated_at
		 RETURNING id, submitted_at, updated_at, (xmax = 0) AS inserted`,
		uuid.NewString(), resp.GroupID, resp.Attending, resp.NumberAttending,
		resp.GuestNames, resp.Language, now,
	).Scan(&resp.ID, &resp.SubmittedAt, &resp.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("upsert rsvp: %w", err)
	}
	return &resp, created, nil
}

// GetByGroupID returns the response of a group or ErrNotFound.
func (r *RSVPRepository) GetByGroupID(ctx context.Context, groupID string) (*model.RSVPResponse, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+rsvpColumns+` FROM rsvp_responses WHERE group_id = $1`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("get rsvp: %w", err)
	}
	resp, err := pgx.CollectExactlyOneRow(rows, scanRSVP)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get rsvp: %w", err)
	}
	return &resp, nil
}

// List returns every recorded response.
func (r *RSVPRepository) List(ctx context.Context) ([]model.RSVPResponse, error) {
	rows, err := r.db.Query(ctx, `SELECT `+rsvpColumns+` FROM rsvp_responses`)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	resps, err := pgx.CollectRows(rows, scanRSVP)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	return resps, nil
}

func scanRSVP(row pgx.CollectableRow) (model.RSVPResponse, error) {
	var resp model.RSVPResponse
	err := row.Scan(&resp.ID, &resp.GroupID, &resp.Attending, &resp.NumberAttending,
		&resp.GuestNames, &resp.Language, &resp.SubmittedAt, &resp.UpdatedAt)
	return resp, err
}
