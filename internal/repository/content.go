package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// settingsID is the primary key of the only site_settings row.
const settingsID = "main"

// SettingsRepository reads and writes the singleton site content document.
// Nothing is cached; every call goes to the database.
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository constructs a SettingsRepository.
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the defaults overlaid with whatever keys are stored.
func (r *SettingsRepository) Get(ctx context.Context) (model.SiteContent, error) {
	content := model.DefaultSiteContent()

	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM site_settings WHERE id = $1`, settingsID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return content, nil
		}
		return content, fmt.Errorf("get settings: %w", err)
	}
	if err := json.Unmarshal(data, &content); err != nil {
		return content, fmt.Errorf("decode settings: %w", err)
	}
	return content, nil
}

// Save replaces the stored document.
func (r *SettingsRepository) Save(ctx context.Context, content model.SiteContent) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO site_settings (id, data, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		settingsID, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// SaveIfMissing stores content only when no document exists yet.
func (r *SettingsRepository) SaveIfMissing(ctx context.Context, content model.SiteContent) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO site_settings (id, data) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		settingsID, data,
	)
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

const timelineColumns = `id, time, label_en, label_ar, sort_order, created_at`

// TimelineRepository handles persistence for the wedding day programme.
type TimelineRepository struct {
	db *pgxpool.Pool
}

// NewTimelineRepository constructs a TimelineRepository.
func NewTimelineRepository(db *pgxpool.Pool) *TimelineRepository {
	return &TimelineRepository{db: db}
}

// List returns the items in display order.
func (r *TimelineRepository) List(ctx context.Context) ([]model.TimelineItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+timelineColumns+` FROM timeline_items ORDER BY sort_order ASC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	items, err := pgx.CollectRows(rows, scanTimelineItem)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	return items, nil
}

// Count returns the number of items.
func (r *TimelineRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM timeline_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count timeline: %w", err)
	}
	return n, nil
}

// Create inserts an item. SortOrder must already be resolved.
func (r *TimelineRepository) Create(ctx context.Context, req model.CreateTimelineRequest) (*model.TimelineItem, error) {
	item := &model.TimelineItem{
		ID:        uuid.NewString(),
		Time:      req.Time,
		LabelEn:   req.LabelEn,
		LabelAr:   req.LabelAr,
		CreatedAt: time.Now().UTC(),
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO timeline_items (`+timelineColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.Time, item.LabelEn, item.LabelAr, item.SortOrder, item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert timeline item: %w", err)
	}
	return item, nil
}

// Update overwrites every editable field of an item.
func (r *TimelineRepository) Update(ctx context.Context, req model.UpdateTimelineRequest) (*model.TimelineItem, error) {
	rows, err := r.db.Query(ctx,
		`UPDATE timeline_items SET time = $2, label_en = $3, label_ar = $4, sort_order = $5
		 WHERE id = $1
		 RETURNING `+timelineColumns,
		req.ID, req.Time, req.LabelEn, req.LabelAr, req.SortOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("update timeline item: %w", err)
	}
	item, err := pgx.CollectExactlyOneRow(rows, scanTimelineItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update timeline item: %w", err)
	}
	return &item, nil
}

// Delete removes an item by id.
func (r *TimelineRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM timeline_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete timeline item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTimelineItem(row pgx.CollectableRow) (model.TimelineItem, error) {
	var it model.TimelineItem
	err := row.Scan(&it.ID, &it.Time, &it.LabelEn, &it.LabelAr, &it.SortOrder, &it.CreatedAt)
	return it, err
}
