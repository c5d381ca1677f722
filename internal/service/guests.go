package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/validate"
)

// GuestService manages the guest list.
type GuestService struct {
	guests GuestStore
	groups GroupStore
}

// NewGuestService constructs a GuestService.
func NewGuestService(guests GuestStore, groups GroupStore) *GuestService {
	return &GuestService{guests: guests, groups: groups}
}

// Create adds a guest to an existing group. The group code is checked at
// write time so a typo cannot create a guest nobody can reach; the reference
// itself is still by code and survives the group's deletion.
// Side defaults to groom, relation to model.DefaultRelation.
func (s *GuestService) Create(ctx context.Context, req model.CreateGuestRequest) (*model.Guest, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.FamilyName = strings.TrimSpace(req.FamilyName)
	req.GroupCode = strings.TrimSpace(req.GroupCode)
	req.Relation = strings.TrimSpace(req.Relation)

	verr := &validate.Error{}
	if req.FirstName == "" {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "firstName", Message: "is required"})
	}
	if req.FamilyName == "" {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "familyName", Message: "is required"})
	}
	if req.GroupCode == "" {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "groupCode", Message: "is required"})
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	if _, err := s.groups.GetByCode(ctx, req.GroupCode); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validate.Field("groupCode", "does not match any group")
		}
		return nil, fmt.Errorf("resolve group: %w", err)
	}

	if req.Phone != nil {
		if p := strings.TrimSpace(*req.Phone); p != "" {
			req.Phone = &p
		} else {
			req.Phone = nil
		}
	}
	req.Side = normalizeSide(req.Side)
	if req.Relation == "" {
		req.Relation = model.DefaultRelation
	}

	guest, err := s.guests.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return guest, nil
}

// List returns all guests, newest first.
func (s *GuestService) List(ctx context.Context) ([]model.Guest, error) {
	guests, err := s.guests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

// Delete removes a guest by id.
func (s *GuestService) Delete(ctx context.Context, id string) error {
	if err := s.guests.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}
