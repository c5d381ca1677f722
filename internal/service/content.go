package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/validate"
)

// ContentService manages the page copy and the wedding day timeline.
type ContentService struct {
	settings SettingsStore
	timeline TimelineStore
}

// NewContentService constructs a ContentService.
func NewContentService(settings SettingsStore, timeline TimelineStore) *ContentService {
	return &ContentService{settings: settings, timeline: timeline}
}

// Settings returns the current site content.
func (s *ContentService) Settings(ctx context.Context) (model.SiteContent, error) {
	content, err := s.settings.Get(ctx)
	if err != nil {
		return content, fmt.Errorf("get settings: %w", err)
	}
	return content, nil
}

// UpdateSettings merges a partial JSON document over the current content and
// stores the result. Keys absent from patch keep their value; unknown keys
// are rejected.
func (s *ContentService) UpdateSettings(ctx context.Context, patch []byte) (model.SiteContent, error) {
	current, err := s.Settings(ctx)
	if err != nil {
		return current, err
	}

	dec := json.NewDecoder(bytes.NewReader(patch))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&current); err != nil {
		return current, validate.Field("settings", "invalid document: "+err.Error())
	}
	if res := validate.Check(current); !res.OK() {
		return current, res.Err
	}

	if err := s.settings.Save(ctx, current); err != nil {
		return current, fmt.Errorf("save settings: %w", err)
	}
	return current, nil
}

// Timeline returns the programme in display order.
func (s *ContentService) Timeline(ctx context.Context) ([]model.TimelineItem, error) {
	items, err := s.timeline.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	return items, nil
}

// CreateTimelineItem appends an item. Without an explicit sort order it goes
// after the existing ones.
func (s *ContentService) CreateTimelineItem(ctx context.Context, req model.CreateTimelineRequest) (*model.TimelineItem, error) {
	if req.SortOrder == nil {
		n, err := s.timeline.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count timeline: %w", err)
		}
		req.SortOrder = &n
	}
	item, err := s.timeline.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create timeline item: %w", err)
	}
	return item, nil
}

// UpdateTimelineItem overwrites an item.
func (s *ContentService) UpdateTimelineItem(ctx context.Context, req model.UpdateTimelineRequest) (*model.TimelineItem, error) {
	item, err := s.timeline.Update(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update timeline item: %w", err)
	}
	return item, nil
}

// DeleteTimelineItem removes an item.
func (s *ContentService) DeleteTimelineItem(ctx context.Context, id string) error {
	if err := s.timeline.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete timeline item: %w", err)
	}
	return nil
}
