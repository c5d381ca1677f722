// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
//
// Each service depends on small store interfaces rather than concrete
// repositories, so the pgx implementations and the in-memory store are
// interchangeable.
package service

import (
	"context"
	"slices"
	"strings"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"golang.org/x/sync/errgroup"
)

// GroupStore persists guest groups.
type GroupStore interface {
	Create(ctx context.Context, code string, maxGuests int, side model.Side) (*model.GuestGroup, error)
	List(ctx context.Context) ([]model.GuestGroup, error)
	GetByToken(ctx context.Context, token string) (*model.GuestGroup, error)
	GetByCode(ctx context.Context, code string) (*model.GuestGroup, error)
	Update(ctx context.Context, id string, maxGuests int, side model.Side) (*model.GuestGroup, error)
	Delete(ctx context.Context, id string) error
}

// GuestStore persists guests.
type GuestStore interface {
	Create(ctx context.Context, req model.CreateGuestRequest) (*model.Guest, error)
	List(ctx context.Context) ([]model.Guest, error)
	ListByGroupCode(ctx context.Context, code string) ([]model.Guest, error)
	Delete(ctx context.Context, id string) error
}

// RSVPStore persists RSVP responses. Upsert must be atomic per group.
type RSVPStore interface {
	Upsert(ctx context.Context, resp model.RSVPResponse) (*model.RSVPResponse, bool, error)
	GetByGroupID(ctx context.Context, groupID string) (*model.RSVPResponse, error)
	List(ctx context.Context) ([]model.RSVPResponse, error)
}

// RowImporter writes one import row (group if missing, then guest) atomically.
type RowImporter interface {
	ImportRow(ctx context.Context, row model.ImportRow) (groupCreated bool, err error)
}

// SettingsStore reads and writes the site content document.
type SettingsStore interface {
	Get(ctx context.Context) (model.SiteContent, error)
	Save(ctx context.Context, content model.SiteContent) error
	SaveIfMissing(ctx context.Context, content model.SiteContent) error
}

// TimelineStore persists timeline items.
type TimelineStore interface {
	List(ctx context.Context) ([]model.TimelineItem, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, req model.CreateTimelineRequest) (*model.TimelineItem, error)
	Update(ctx context.Context, req model.UpdateTimelineRequest) (*model.TimelineItem, error)
	Delete(ctx context.Context, id string) error
}

// directory joins groups with their responses and guests. The three reads
// are independent and run concurrently.
type directory struct {
	groups GroupStore
	guests GuestStore
	rsvps  RSVPStore
}

func (d directory) load(ctx context.Context) ([]model.GroupDetail, error) {
	var (
		groups []model.GuestGroup
		guests []model.Guest
		rsvps  []model.RSVPResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		groups, err = d.groups.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		guests, err = d.guests.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		rsvps, err = d.rsvps.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byGroup := make(map[string]*model.RSVPResponse, len(rsvps))
	for i := range rsvps {
		byGroup[rsvps[i].GroupID] = &rsvps[i]
	}
	byCode := make(map[string][]model.Guest)
	// Guests come newest first; members are listed in the order they were added.
	for _, guest := range slices.Backward(guests) {
		byCode[guest.GroupCode] = append(byCode[guest.GroupCode], guest)
	}

	out := make([]model.GroupDetail, 0, len(groups))
	for _, grp := range groups {
		members := byCode[grp.GroupCode]
		if members == nil {
			members = []model.Guest{}
		}
		out = append(out, model.GroupDetail{
			GuestGroup:   grp,
			RSVPResponse: byGroup[grp.ID],
			Guests:       members,
		})
	}
	return out, nil
}

// normalizeSide maps free-form input to a known side, defaulting to groom.
func normalizeSide(s model.Side) model.Side {
	side := model.Side(strings.ToLower(strings.TrimSpace(string(s))))
	if side.Valid() {
		return side
	}
	return model.SideGroom
}
