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

// ImportRepository writes bulk-import rows.
type ImportRepository struct {
	db *pgxpool.Pool
}

// NewImportRepository constructs an ImportRepository.
func NewImportRepository(db *pgxpool.Pool) *ImportRepository {
	return &ImportRepository{db: db}
}

// ImportRow ensures the row's group exists and adds the guest, both inside
// one transaction. groupCreated reports whether the group was new.
//
// The group insert uses ON CONFLICT DO NOTHING so an existing code is
// detected by the statement itself: RETURNING yields no row and the guest is
// attached to the existing group. A failure anywhere rolls back this row
// only; rows already committed by earlier calls are unaffected.
//
// The row must be normalised (defaults applied) by the caller.
func (r *ImportRepository) ImportRow(ctx context.Context, row model.ImportRow) (groupCreated bool, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	maxGuests := model.DefaultMaxGuests
	if row.MaxGuests != nil {
		maxGuests = *row.MaxGuests
	}

	var groupID string
	err = tx.QueryRow(ctx,
		`INSERT INTO guest_groups (`+groupColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (group_code) DO NOTHING
		 RETURNING id`,
		uuid.NewString(), row.GroupCode, uuid.NewString(), maxGuests, row.Side, time.Now().UTC(),
	).Scan(&groupID)
	switch {
	case err == nil:
		groupCreated = true
	case errors.Is(err, pgx.ErrNoRows):
		err = nil
	default:
		return false, fmt.Errorf("ensure group %q: %w", row.GroupCode, err)
	}

	var phone *string
	if row.Phone != "" {
		phone = &row.Phone
	}
	err = insertGuest(ctx, tx, newGuest(model.CreateGuestRequest{
		FirstName:  row.FirstName,
		FamilyName: row.FamilyName,
		Phone:      phone,
		Side:       row.Side,
		Relation:   row.Relation,
		GroupCode:  row.GroupCode,
	}))
	if err != nil {
		return false, err
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return groupCreated, nil
}
