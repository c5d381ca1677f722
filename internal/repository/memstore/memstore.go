// Package memstore is an in-memory implementation of the repository
// contracts. It enforces the same keys and cascades as the SQL schema and is
// used by service and handler tests.
package memstore

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository"
	"github.com/google/uuid"
)

var (
	errInjected   = errors.New("memstore: injected guest insert failure")
	errForeignKey = errors.New("memstore: rsvp references unknown group")
)

// Store holds every table behind one mutex.
type Store struct {
	mu       sync.Mutex
	now      func() time.Time
	groups   []model.GuestGroup
	guests   []model.Guest
	rsvps    map[string]model.RSVPResponse // by group id
	settings *model.SiteContent
	timeline []model.TimelineItem

	// FailGuestInsert, when set, makes guest inserts for that group code fail.
	FailGuestInsert string
}

// New returns an empty store.
func New() *Store {
	var tick int64
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Store{
		rsvps: make(map[string]model.RSVPResponse),
		// Strictly increasing timestamps keep ordering deterministic.
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Millisecond)
		},
	}
}

// Groups returns the group table view.
func (s *Store) Groups() *Groups { return &Groups{s} }

// Guests returns the guest table view.
func (s *Store) Guests() *Guests { return &Guests{s} }

// RSVPs returns the response table view.
func (s *Store) RSVPs() *RSVPs { return &RSVPs{s} }

// Importer returns the bulk import writer.
func (s *Store) Importer() *Importer { return &Importer{s} }

// Settings returns the site content view.
func (s *Store) Settings() *Settings { return &Settings{s} }

// Timeline returns the timeline view.
func (s *Store) Timeline() *Timeline { return &Timeline{s} }

// ─── Groups ──────────────────────────────────────────────────────────────────

// Groups is the in-memory group table.
type Groups struct{ s *Store }

// Create adds a group; a taken code returns repository.ErrConflict.
func (g *Groups) Create(_ context.Context, code string, maxGuests int, side model.Side) (*model.GuestGroup, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	grp, _, err := g.s.createGroupLocked(code, maxGuests, side)
	return grp, err
}

func (s *Store) createGroupLocked(code string, maxGuests int, side model.Side) (*model.GuestGroup, bool, error) {
	for _, existing := range s.groups {
		if existing.GroupCode == code {
			out := existing
			return &out, false, repository.ErrConflict
		}
	}
	grp := model.GuestGroup{
		ID:        uuid.NewString(),
		GroupCode: code,
		Token:     uuid.NewString(),
		MaxGuests: maxGuests,
		Side:      side,
		CreatedAt: s.now(),
	}
	s.groups = append(s.groups, grp)
	return &grp, true, nil
}

// List returns groups newest first.
func (g *Groups) List(context.Context) ([]model.GuestGroup, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	out := slices.Clone(g.s.groups)
	slices.Reverse(out)
	return out, nil
}

// GetByToken finds a group by invitation token.
func (g *Groups) GetByToken(_ context.Context, token string) (*model.GuestGroup, error) {
	return g.find(func(grp model.GuestGroup) bool { return grp.Token == token })
}

// GetByCode finds a group by code.
func (g *Groups) GetByCode(_ context.Context, code string) (*model.GuestGroup, error) {
	return g.find(func(grp model.GuestGroup) bool { return grp.GroupCode == code })
}

// Update changes capacity and side and clamps a stored response to the
// new capacity.
func (g *Groups) Update(_ context.Context, id string, maxGuests int, side model.Side) (*model.GuestGroup, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	for i := range g.s.groups {
		if g.s.groups[i].ID == id {
			g.s.groups[i].MaxGuests = maxGuests
			g.s.groups[i].Side = side
			if resp, ok := g.s.rsvps[id]; ok {
				resp.NumberAttending = min(resp.NumberAttending, maxGuests)
				if len(resp.GuestNames) > maxGuests {
					resp.GuestNames = slices.Clone(resp.GuestNames[:maxGuests])
				}
				g.s.rsvps[id] = resp
			}
			out := g.s.groups[i]
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Delete removes a group and its response.
func (g *Groups) Delete(_ context.Context, id string) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	i := slices.IndexFunc(g.s.groups, func(grp model.GuestGroup) bool { return grp.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	g.s.groups = slices.Delete(g.s.groups, i, i+1)
	delete(g.s.rsvps, id)
	return nil
}

func (g *Groups) find(match func(model.GuestGroup) bool) (*model.GuestGroup, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	for _, grp := range g.s.groups {
		if match(grp) {
			out := grp
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ─── Guests ──────────────────────────────────────────────────────────────────

// Guests is the in-memory guest table.
type Guests struct{ s *Store }

// Create adds a guest.
func (g *Guests) Create(_ context.Context, req model.CreateGuestRequest) (*model.Guest, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	return g.s.insertGuestLocked(req)
}

func (s *Store) insertGuestLocked(req model.CreateGuestRequest) (*model.Guest, error) {
	if s.FailGuestInsert != "" && req.GroupCode == s.FailGuestInsert {
		return nil, errInjected
	}
	guest := model.Guest{
		ID:         uuid.NewString(),
		FirstName:  req.FirstName,
		FamilyName: req.FamilyName,
		Phone:      req.Phone,
		Side:       req.Side,
		Relation:   req.Relation,
		GroupCode:  req.GroupCode,
		CreatedAt:  s.now(),
	}
	s.guests = append(s.guests, guest)
	return &guest, nil
}

// List returns guests newest first.
func (g *Guests) List(context.Context) ([]model.Guest, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	out := slices.Clone(g.s.guests)
	slices.Reverse(out)
	return out, nil
}

// ListByGroupCode returns a group's guests oldest first.
func (g *Guests) ListByGroupCode(_ context.Context, code string) ([]model.Guest, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	var out []model.Guest
	for _, guest := range g.s.guests {
		if guest.GroupCode == code {
			out = append(out, guest)
		}
	}
	return out, nil
}

// Delete removes a guest.
func (g *Guests) Delete(_ context.Context, id string) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	i := slices.IndexFunc(g.s.guests, func(guest model.Guest) bool { return guest.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	g.s.guests = slices.Delete(g.s.guests, i, i+1)
	return nil
}

// ─── RSVPs ───────────────────────────────────────────────────────────────────

// RSVPs is the in-memory response table, one entry per group.
type RSVPs struct{ s *Store }

// Upsert creates or replaces the group's response; created reports which.
func (r *RSVPs) Upsert(_ context.Context, resp model.RSVPResponse) (*model.RSVPResponse, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !slices.ContainsFunc(r.s.groups, func(g model.GuestGroup) bool { return g.ID == resp.GroupID }) {
		return nil, false, errForeignKey
	}
	if resp.GuestNames == nil {
		resp.GuestNames = []string{}
	}
	resp.GuestNames = slices.Clone(resp.GuestNames)

	now := r.s.now()
	existing, ok := r.s.rsvps[resp.GroupID]
	if ok {
		resp.ID = existing.ID
		resp.SubmittedAt = existing.SubmittedAt
	} else {
		resp.ID = uuid.NewString()
		resp.SubmittedAt = now
	}
	resp.UpdatedAt = now
	r.s.rsvps[resp.GroupID] = resp

	out := resp
	return &out, !ok, nil
}

// GetByGroupID returns a group's response.
func (r *RSVPs) GetByGroupID(_ context.Context, groupID string) (*model.RSVPResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	resp, ok := r.s.rsvps[groupID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &resp, nil
}

// List returns every response in no particular order.
func (r *RSVPs) List(context.Context) ([]model.RSVPResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.RSVPResponse, 0, len(r.s.rsvps))
	for _, resp := range r.s.rsvps {
		out = append(out, resp)
	}
	return out, nil
}

// Count returns how many responses are stored.
func (r *RSVPs) Count() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.rsvps)
}

// ─── Import ──────────────────────────────────────────────────────────────────

// Importer writes import rows against the store's tables.
type Importer struct{ s *Store }

// ImportRow mirrors the transactional row import: nothing is kept when the
// guest insert fails.
func (im *Importer) ImportRow(_ context.Context, row model.ImportRow) (bool, error) {
	im.s.mu.Lock()
	defer im.s.mu.Unlock()

	maxGuests := model.DefaultMaxGuests
	if row.MaxGuests != nil {
		maxGuests = *row.MaxGuests
	}
	snapshot := len(im.s.groups)
	_, created, err := im.s.createGroupLocked(row.GroupCode, maxGuests, row.Side)
	if err != nil && !errors.Is(err, repository.ErrConflict) {
		return false, err
	}

	var phone *string
	if row.Phone != "" {
		phone = &row.Phone
	}
	if _, err := im.s.insertGuestLocked(model.CreateGuestRequest{
		FirstName:  row.FirstName,
		FamilyName: row.FamilyName,
		Phone:      phone,
		Side:       row.Side,
		Relation:   row.Relation,
		GroupCode:  row.GroupCode,
	}); err != nil {
		im.s.groups = im.s.groups[:snapshot]
		return false, err
	}
	return created, nil
}

// ─── Settings ────────────────────────────────────────────────────────────────

// Settings holds the site content document.
type Settings struct{ s *Store }

// Get returns the stored content or the defaults.
func (st *Settings) Get(context.Context) (model.SiteContent, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if st.s.settings == nil {
		return model.DefaultSiteContent(), nil
	}
	return *st.s.settings, nil
}

// Save replaces the content.
func (st *Settings) Save(_ context.Context, content model.SiteContent) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.settings = &content
	return nil
}

// SaveIfMissing stores content only when nothing is stored yet.
func (st *Settings) SaveIfMissing(_ context.Context, content model.SiteContent) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if st.s.settings == nil {
		st.s.settings = &content
	}
	return nil
}

// ─── Timeline ────────────────────────────────────────────────────────────────

// Timeline is the in-memory timeline table.
type Timeline struct{ s *Store }

// List returns items by sort order.
func (t *Timeline) List(context.Context) ([]model.TimelineItem, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	out := slices.Clone(t.s.timeline)
	slices.SortStableFunc(out, func(a, b model.TimelineItem) int { return a.SortOrder - b.SortOrder })
	return out, nil
}

// Count returns the number of items.
func (t *Timeline) Count(context.Context) (int, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return len(t.s.timeline), nil
}

// Create adds an item.
func (t *Timeline) Create(_ context.Context, req model.CreateTimelineRequest) (*model.TimelineItem, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	item := model.TimelineItem{
		ID:        uuid.NewString(),
		Time:      req.Time,
		LabelEn:   req.LabelEn,
		LabelAr:   req.LabelAr,
		CreatedAt: t.s.now(),
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	t.s.timeline = append(t.s.timeline, item)
	return &item, nil
}

// Update overwrites an item's fields.
func (t *Timeline) Update(_ context.Context, req model.UpdateTimelineRequest) (*model.TimelineItem, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i := range t.s.timeline {
		if t.s.timeline[i].ID == req.ID {
			it := &t.s.timeline[i]
			it.Time, it.LabelEn, it.LabelAr, it.SortOrder = req.Time, req.LabelEn, req.LabelAr, req.SortOrder
			out := *it
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Delete removes an item.
func (t *Timeline) Delete(_ context.Context, id string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	i := slices.IndexFunc(t.s.timeline, func(it model.TimelineItem) bool { return it.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	t.s.timeline = slices.Delete(t.s.timeline, i, i+1)
	return nil
}
