package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/validate"
	"go.uber.org/zap"
)

// GroupService manages invitation groups.
type GroupService struct {
	groups GroupStore
	dir    directory
	log    *zap.Logger
}

// NewGroupService constructs a GroupService with its dependencies.
func NewGroupService(groups GroupStore, guests GuestStore, rsvps RSVPStore, log *zap.Logger) *GroupService {
	return &GroupService{
		groups: groups,
		dir:    directory{groups: groups, guests: guests, rsvps: rsvps},
		log:    log,
	}
}

// List returns every group with its response and guests, newest first.
func (s *GroupService) List(ctx context.Context) ([]model.GroupDetail, error) {
	groups, err := s.dir.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// Create registers a new group with a fresh invitation token.
// A duplicate code returns repository.ErrConflict.
func (s *GroupService) Create(ctx context.Context, req model.CreateGroupRequest) (*model.GuestGroup, error) {
	code := strings.TrimSpace(req.GroupCode)
	if code == "" {
		return nil, validate.Field("groupCode", "is required")
	}
	maxGuests := model.DefaultMaxGuests
	if req.MaxGuests != nil {
		maxGuests = *req.MaxGuests
	}

	group, err := s.groups.Create(ctx, code, maxGuests, normalizeSide(req.Side))
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create group: %w", err)
	}
	s.log.Info("group created", zap.String("group_code", group.GroupCode), zap.Int("max_guests", group.MaxGuests))
	return group, nil
}

// Update changes a group's capacity and side. A stored response above the
// new capacity is clamped to it along with the group.
func (s *GroupService) Update(ctx context.Context, req model.UpdateGroupRequest) (*model.GuestGroup, error) {
	if req.MaxGuests == nil {
		return nil, validate.Field("maxGuests", "is required")
	}
	group, err := s.groups.Update(ctx, req.ID, *req.MaxGuests, normalizeSide(req.Side))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update group: %w", err)
	}
	return group, nil
}

// Delete removes a group and its response. Guests keep their group code.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete group: %w", err)
	}
	s.log.Info("group deleted", zap.String("group_id", id))
	return nil
}
