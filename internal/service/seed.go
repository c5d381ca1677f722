package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository"
	"go.uber.org/zap"
)

// sampleGroups and sampleGuests give a fresh install something to click on.
var (
	sampleGroups = []model.CreateGroupRequest{
		{GroupCode: "RACHIDI-FAM", MaxGuests: intPtr(4), Side: model.SideGroom},
		{GroupCode: "BRIDE-FAMILY", MaxGuests: intPtr(4), Side: model.SideBride},
		{GroupCode: "FRIENDS-01", MaxGuests: intPtr(2), Side: model.SideGroom},
	}
	sampleGuests = []model.CreateGuestRequest{
		{FirstName: "Hussein", FamilyName: "Rachidi", Phone: strPtr("81538385"), Side: model.SideGroom, Relation: "Groom", GroupCode: "RACHIDI-FAM"},
		{FirstName: "Suzan", FamilyName: "Rachidi", Side: model.SideBride, Relation: "Bride", GroupCode: "BRIDE-FAMILY"},
	}
)

func intPtr(n int) *int { return &n }
func strPtr(s string) *string { return &s }

// Seeder fills an empty database with default content.
type Seeder struct {
	settings SettingsStore
	content  *ContentService
	groups   *GroupService
	guests   *GuestService
	log      *zap.Logger
}

// NewSeeder constructs a Seeder on top of the regular services.
func NewSeeder(settings SettingsStore, content *ContentService, groups *GroupService, guests *GuestService, log *zap.Logger) *Seeder {
	return &Seeder{settings: settings, content: content, groups: groups, guests: guests, log: log}
}

// Seed stores the default settings and timeline when none exist. With
// samples set it also adds the sample groups and guests; groups that already
// exist are left alone and their guests are not added again.
// It returns the groups known after seeding.
func (s *Seeder) Seed(ctx context.Context, samples bool) ([]model.GroupDetail, error) {
	if err := s.settings.SaveIfMissing(ctx, model.DefaultSiteContent()); err != nil {
		return nil, err
	}

	items, err := s.content.Timeline(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		for _, item := range model.DefaultTimeline() {
			if _, err := s.content.CreateTimelineItem(ctx, item); err != nil {
				return nil, err
			}
		}
		s.log.Info("seeded timeline", zap.Int("items", len(model.DefaultTimeline())))
	}

	if samples {
		fresh := make(map[string]bool)
		for _, req := range sampleGroups {
			_, err := s.groups.Create(ctx, req)
			switch {
			case err == nil:
				fresh[req.GroupCode] = true
			case errors.Is(err, repository.ErrConflict):
				s.log.Info("sample group exists", zap.String("group_code", req.GroupCode))
			default:
				return nil, fmt.Errorf("seed group %s: %w", req.GroupCode, err)
			}
		}
		for _, req := range sampleGuests {
			if !fresh[req.GroupCode] {
				continue
			}
			if _, err := s.guests.Create(ctx, req); err != nil {
				return nil, fmt.Errorf("seed guest %s: %w", req.FirstName, err)
			}
		}
	}

	return s.groups.List(ctx)
}
