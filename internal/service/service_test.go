package service

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository/memstore"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store   *memstore.Store
	groups  *GroupService
	guests  *GuestService
	rsvp    *RSVPService
	imports *ImportService
	content *ContentService
	export  *ExportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memstore.New()
	log := zap.NewNop()
	return &fixture{
		store:   s,
		groups:  NewGroupService(s.Groups(), s.Guests(), s.RSVPs(), log),
		guests:  NewGuestService(s.Guests(), s.Groups()),
		rsvp:    NewRSVPService(s.Groups(), s.Guests(), s.RSVPs(), log),
		imports: NewImportService(s.Importer(), log),
		content: NewContentService(s.Settings(), s.Timeline()),
		export:  NewExportService(s.Groups(), s.Guests(), s.RSVPs()),
	}
}

func (f *fixture) group(t *testing.T, code string, maxGuests int, side model.Side) *model.GuestGroup {
	t.Helper()
	g, err := f.groups.Create(context.Background(), model.CreateGroupRequest{GroupCode: code, MaxGuests: &maxGuests, Side: side})
	require.NoError(t, err)
	return g
}

func submit(token string, attending bool, n *int, names ...string) model.SubmitRSVPRequest {
	return model.SubmitRSVPRequest{Token: token, Attending: &attending, NumberAttending: n, GuestNames: names}
}

func ptr[T any](v T) *T { return &v }

// ─── Groups ──────────────────────────────────────────────────────────────────

func TestCreateGroupDefaults(t *testing.T) {
	f := newFixture(t)
	g, err := f.groups.Create(context.Background(), model.CreateGroupRequest{GroupCode: "  FRIENDS-01 "})
	require.NoError(t, err)

	assert.Equal(t, "FRIENDS-01", g.GroupCode)
	assert.Equal(t, model.DefaultMaxGuests, g.MaxGuests)
	assert.Equal(t, model.SideGroom, g.Side)
	assert.Len(t, g.Token, 36)
}

func TestCreateGroupBlankCode(t *testing.T) {
	f := newFixture(t)
	_, err := f.groups.Create(context.Background(), model.CreateGroupRequest{GroupCode: "   "})
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "groupCode", verr.Fields[0].Field)
}

func TestCreateGroupDuplicateLeavesOriginal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orig := f.group(t, "FRIENDS-01", 2, model.SideGroom)

	_, err := f.groups.Create(ctx, model.CreateGroupRequest{GroupCode: "FRIENDS-01", MaxGuests: ptr(9), Side: model.SideBride})
	assert.ErrorIs(t, err, repository.ErrConflict)

	list, err := f.groups.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *orig, list[0].GuestGroup)
}

func TestUpdateGroupKeepsCodeAndToken(t *testing.T) {
	f := newFixture(t)
	g := f.group(t, "FRIENDS-01", 2, model.SideGroom)

	upd, err := f.groups.Update(context.Background(), model.UpdateGroupRequest{ID: g.ID, MaxGuests: ptr(5), Side: model.SideBride})
	require.NoError(t, err)
	assert.Equal(t, 5, upd.MaxGuests)
	assert.Equal(t, model.SideBride, upd.Side)
	assert.Equal(t, g.GroupCode, upd.GroupCode)
	assert.Equal(t, g.Token, upd.Token)

	_, err = f.groups.Update(context.Background(), model.UpdateGroupRequest{ID: "00000000-0000-0000-0000-000000000000", MaxGuests: ptr(1), Side: model.SideGroom})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateGroupClampsStoredResponse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "RACHIDI-FAM", 4, model.SideGroom)
	_, err := f.rsvp.Submit(ctx, submit(g.Token, true, ptr(4), "A", "B", "C", "D"))
	require.NoError(t, err)

	_, err = f.groups.Update(ctx, model.UpdateGroupRequest{ID: g.ID, MaxGuests: ptr(1), Side: model.SideGroom})
	require.NoError(t, err)

	view, err := f.rsvp.Invitation(ctx, g.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, view.MaxGuests)
	require.NotNil(t, view.RSVP)
	assert.Equal(t, 1, view.RSVP.NumberAttending)
	assert.Equal(t, []string{"A"}, view.RSVP.GuestNames)

	_, err = f.groups.Update(ctx, model.UpdateGroupRequest{ID: g.ID, MaxGuests: ptr(6), Side: model.SideGroom})
	require.NoError(t, err)
	view, err = f.rsvp.Invitation(ctx, g.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, view.RSVP.NumberAttending, "raising capacity does not restore dropped guests")
}

func TestListGroupsJoinsResponsesAndGuests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.group(t, "A", 2, model.SideGroom)
	f.group(t, "B", 2, model.SideBride)
	_, err := f.guests.Create(ctx, model.CreateGuestRequest{FirstName: "Ali", FamilyName: "X", GroupCode: "A"})
	require.NoError(t, err)
	_, err = f.guests.Create(ctx, model.CreateGuestRequest{FirstName: "Mona", FamilyName: "X", GroupCode: "A"})
	require.NoError(t, err)
	_, err = f.rsvp.Submit(ctx, submit(a.Token, true, ptr(2)))
	require.NoError(t, err)

	list, err := f.groups.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "B", list[0].GroupCode, "newest first")
	assert.Nil(t, list[0].RSVPResponse)
	assert.NotNil(t, list[0].Guests)
	assert.Empty(t, list[0].Guests)

	assert.Equal(t, "A", list[1].GroupCode)
	require.NotNil(t, list[1].RSVPResponse)
	assert.Equal(t, 2, list[1].RSVPResponse.NumberAttending)
	require.Len(t, list[1].Guests, 2)
	assert.Equal(t, "Ali", list[1].Guests[0].FirstName)
}

func TestDeleteGroupCascadesResponseKeepsGuests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "RACHIDI-FAM", 4, model.SideGroom)
	_, err := f.guests.Create(ctx, model.CreateGuestRequest{FirstName: "Hussein", FamilyName: "Rachidi", GroupCode: "RACHIDI-FAM"})
	require.NoError(t, err)
	_, err = f.rsvp.Submit(ctx, submit(g.Token, true, ptr(3)))
	require.NoError(t, err)

	require.NoError(t, f.groups.Delete(ctx, g.ID))

	assert.Equal(t, 0, f.store.RSVPs().Count())
	guests, err := f.guests.List(ctx)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "RACHIDI-FAM", guests[0].GroupCode)

	_, err = f.rsvp.Invitation(ctx, g.Token)
	assert.ErrorIs(t, err, repository.ErrNotFound, "deleted group looks like a token that never existed")

	assert.ErrorIs(t, f.groups.Delete(ctx, g.ID), repository.ErrNotFound)
}

// ─── Guests ──────────────────────────────────────────────────────────────────

func TestCreateGuestDefaults(t *testing.T) {
	f := newFixture(t)
	f.group(t, "BRIDE-FAMILY", 4, model.SideBride)

	g, err := f.guests.Create(context.Background(), model.CreateGuestRequest{
		FirstName: " Suzan ", FamilyName: "Rachidi", Phone: ptr("  "), GroupCode: "BRIDE-FAMILY",
	})
	require.NoError(t, err)
	assert.Equal(t, "Suzan", g.FirstName)
	assert.Nil(t, g.Phone)
	assert.Equal(t, model.SideGroom, g.Side, "side defaults to groom, not the group's side")
	assert.Equal(t, model.DefaultRelation, g.Relation)
}

func TestCreateGuestUnknownGroup(t *testing.T) {
	f := newFixture(t)
	_, err := f.guests.Create(context.Background(), model.CreateGuestRequest{FirstName: "A", FamilyName: "B", GroupCode: "TYPO"})
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "groupCode", verr.Fields[0].Field)
}

func TestCreateGuestMissingFields(t *testing.T) {
	f := newFixture(t)
	_, err := f.guests.Create(context.Background(), model.CreateGuestRequest{FirstName: " "})
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestDeleteGuest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.group(t, "A", 2, model.SideGroom)
	g, err := f.guests.Create(ctx, model.CreateGuestRequest{FirstName: "A", FamilyName: "B", GroupCode: "A"})
	require.NoError(t, err)

	require.NoError(t, f.guests.Delete(ctx, g.ID))
	assert.ErrorIs(t, f.guests.Delete(ctx, g.ID), repository.ErrNotFound)
}

// ─── RSVP ────────────────────────────────────────────────────────────────────

func TestClamp(t *testing.T) {
	group := model.GuestGroup{ID: "g", MaxGuests: 2}
	tests := []struct {
		name      string
		req       model.SubmitRSVPRequest
		wantN     int
		wantNames []string
		wantLang  string
	}{
		{"oversized count", submit("t", true, ptr(3), "A", "B", "C"), 2, []string{"A", "B"}, "en"},
		{"negative count", submit("t", true, ptr(-4)), 0, []string{}, "en"},
		{"omitted count", submit("t", true, nil, "A"), 1, []string{"A"}, "en"},
		{"explicit zero kept", submit("t", true, ptr(0)), 0, []string{}, "en"},
		{"declined ignores count", submit("t", false, ptr(2), "A", "B"), 0, []string{}, "en"},
		{"blank names dropped", submit("t", true, ptr(2), " ", "A", "", "B", "C"), 2, []string{"A", "B"}, "en"},
		{"arabic", model.SubmitRSVPRequest{Token: "t", Attending: ptr(true), Language: "ar"}, 1, []string{}, "ar"},
		{"unknown language", model.SubmitRSVPRequest{Token: "t", Attending: ptr(true), Language: "fr"}, 1, []string{}, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(group, tt.req)
			assert.Equal(t, "g", got.GroupID)
			assert.Equal(t, tt.wantN, got.NumberAttending)
			assert.Equal(t, tt.wantNames, got.GuestNames)
			assert.Equal(t, tt.wantLang, got.Language)
		})
	}
}

func TestClampZeroCapacity(t *testing.T) {
	got := Clamp(model.GuestGroup{MaxGuests: 0}, submit("t", true, ptr(1), "A"))
	assert.Equal(t, 0, got.NumberAttending)
	assert.Empty(t, got.GuestNames)
}

func TestSubmitEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "FRIENDS-01", 2, model.SideGroom)

	view, err := f.rsvp.Invitation(ctx, g.Token)
	require.NoError(t, err)
	assert.Equal(t, "FRIENDS-01", view.GroupCode)
	assert.Equal(t, 2, view.MaxGuests)
	assert.Nil(t, view.RSVP)
	assert.NotNil(t, view.Guests)

	res, err := f.rsvp.Submit(ctx, submit(g.Token, true, ptr(3), "A", "B", "C"))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.Updated, "first submission creates")

	view, err = f.rsvp.Invitation(ctx, g.Token)
	require.NoError(t, err)
	require.NotNil(t, view.RSVP)
	assert.Equal(t, 2, view.RSVP.NumberAttending)
	assert.Equal(t, []string{"A", "B"}, view.RSVP.GuestNames)

	res, err = f.rsvp.Submit(ctx, submit(g.Token, false, ptr(2), "A"))
	require.NoError(t, err)
	assert.True(t, res.Updated, "resubmission updates")

	stored, err := f.store.RSVPs().GetByGroupID(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, stored.Attending)
	assert.Equal(t, 0, stored.NumberAttending)
	assert.Empty(t, stored.GuestNames)
	assert.Equal(t, 1, f.store.RSVPs().Count())
}

func TestSubmitUnknownToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.rsvp.Submit(context.Background(), submit("nope", true, nil))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.rsvp.Invitation(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmitMissingToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.rsvp.Invitation(context.Background(), " ")
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "token", verr.Fields[0].Field)
}

func TestConcurrentSubmissionsKeepOneResponse(t *testing.T) {
	f := newFixture(t)
	g := f.group(t, "FRIENDS-01", 2, model.SideGroom)

	const n = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.rsvp.Submit(context.Background(), submit(g.Token, i%2 == 0, ptr(i)))
			if assert.NoError(t, err) && !res.Updated {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, f.store.RSVPs().Count())
}

// ─── Import ──────────────────────────────────────────────────────────────────

func TestImportCreatesGroupOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rows := []model.ImportRow{
		{FirstName: "Hussein", FamilyName: "Rachidi", Side: "groom", GroupCode: "RACHIDI-FAM", MaxGuests: ptr(4)},
		{FirstName: "Suzan", FamilyName: "Rachidi", Side: "groom", GroupCode: "RACHIDI-FAM", MaxGuests: ptr(4)},
	}

	res := f.imports.Import(ctx, rows)
	assert.Equal(t, model.ImportResult{Created: 2, GroupsCreated: 1}, res)

	list, err := f.groups.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4, list[0].MaxGuests)
	assert.Len(t, list[0].Guests, 2)
}

func TestImportZeroCapacityUsesDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.imports.Import(ctx, []model.ImportRow{
		{FirstName: "A", FamilyName: "B", GroupCode: "ZERO", MaxGuests: ptr(0)},
		{FirstName: "C", FamilyName: "D", GroupCode: "NEGATIVE", MaxGuests: ptr(-3)},
	})
	assert.Equal(t, model.ImportResult{Created: 2, GroupsCreated: 2}, res)

	list, err := f.groups.List(ctx)
	require.NoError(t, err)
	for _, g := range list {
		assert.Equal(t, model.DefaultMaxGuests, g.MaxGuests, g.GroupCode)
	}
}

func TestImportSkipsIncompleteRowsAndUsesExistingGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.group(t, "FRIENDS-01", 2, model.SideGroom)

	res := f.imports.Import(ctx, []model.ImportRow{
		{FirstName: "A", FamilyName: "B", GroupCode: "FRIENDS-01", MaxGuests: ptr(9)},
		{FirstName: "", FamilyName: "B", GroupCode: "FRIENDS-01"},
		{FirstName: "A", FamilyName: " ", GroupCode: "X"},
		{FirstName: "A", FamilyName: "B"},
		{FirstName: "C", FamilyName: "D", GroupCode: "NEW", Side: "BRIDE", Relation: "cousin"},
	})
	assert.Equal(t, model.ImportResult{Created: 2, GroupsCreated: 1, Skipped: 3}, res)

	byCode := map[string]model.GroupDetail{}
	list, err := f.groups.List(ctx)
	require.NoError(t, err)
	for _, g := range list {
		byCode[g.GroupCode] = g
	}
	assert.Equal(t, 2, byCode["FRIENDS-01"].MaxGuests, "existing group is not resized")
	assert.Equal(t, model.DefaultMaxGuests, byCode["NEW"].MaxGuests)
	assert.Equal(t, model.SideBride, byCode["NEW"].Side)
	assert.Equal(t, "cousin", byCode["NEW"].Guests[0].Relation)
}

func TestImportFailedRowIsIsolated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.FailGuestInsert = "BROKEN"

	res := f.imports.Import(ctx, []model.ImportRow{
		{FirstName: "A", FamilyName: "A", GroupCode: "OK-1"},
		{FirstName: "B", FamilyName: "B", GroupCode: "BROKEN"},
		{FirstName: "C", FamilyName: "C", GroupCode: "OK-2"},
	})
	assert.Equal(t, model.ImportResult{Created: 2, GroupsCreated: 2, Failed: 1}, res)

	list, err := f.groups.List(ctx)
	require.NoError(t, err)
	codes := []string{}
	for _, g := range list {
		codes = append(codes, g.GroupCode)
	}
	assert.ElementsMatch(t, []string{"OK-1", "OK-2"}, codes, "failed row leaves no group behind")
}

func TestParseImportJSON(t *testing.T) {
	rows, err := ParseImportJSON([]byte(`{"guests":[{"firstName":"A","familyName":"B","groupCode":"G","maxGuests":3}]}`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, *rows[0].MaxGuests)

	rows, err = ParseImportJSON([]byte(` [{"firstName":"A"}] `))
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = ParseImportJSON([]byte(`[{"firstName":"A","familyName":"B","groupCode":"G"},{"firstName":"C","phone":81538385},{"firstName":"E","familyName":"F","groupCode":"G"}]`))
	require.NoError(t, err, "a malformed row does not reject the payload")
	require.Len(t, rows, 3)
	assert.Equal(t, model.ImportRow{}, rows[1])
	assert.Equal(t, "E", rows[2].FirstName)

	for _, bad := range []string{`{"guests":{"a":1}}`, `{"guests":null}`, `{}`, `"x"`, ``, `{"rows":[]}`} {
		_, err := ParseImportJSON([]byte(bad))
		assert.ErrorIs(t, err, ErrExpectedArray, bad)
	}
}

func TestParseImportCSV(t *testing.T) {
	doc := "\ufeffFirst Name,Last Name,Phone,Side,Relation,Group Code,Max Guests,Notes\n" +
		"Hussein,Rachidi,81538385,groom,Groom,RACHIDI-FAM,4,vip\n" +
		"Suzan,Rachidi,,bride,,BRIDE-FAMILY,n/a\n" +
		"Lina,Haddad,,bride,,BRIDE-FAMILY,0\n"
	rows, err := ParseImportCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Hussein", rows[0].FirstName)
	assert.Equal(t, "Rachidi", rows[0].FamilyName)
	assert.Equal(t, "RACHIDI-FAM", rows[0].GroupCode)
	assert.Equal(t, 4, *rows[0].MaxGuests)
	assert.Equal(t, model.Side("bride"), rows[1].Side)
	assert.Nil(t, rows[1].MaxGuests)
	assert.Nil(t, rows[2].MaxGuests, "zero capacity means the default")
}

func TestParseImportCSVMissingColumn(t *testing.T) {
	_, err := ParseImportCSV(strings.NewReader("first,family\nA,B\n"))
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields[0].Message, "groupCode")

	_, err = ParseImportCSV(strings.NewReader(""))
	require.ErrorAs(t, err, &verr)
}

// ─── Content ─────────────────────────────────────────────────────────────────

func TestSettingsDefaultsAndMerge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.content.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSiteContent(), got)

	got, err = f.content.UpdateSettings(ctx, []byte(`{"groomNameEn":"Karim","sfxEnabled":false}`))
	require.NoError(t, err)
	assert.Equal(t, "Karim", got.GroomNameEn)
	assert.False(t, got.SfxEnabled)
	assert.Equal(t, "Suzan", got.BrideNameEn, "untouched keys survive")

	got, err = f.content.UpdateSettings(ctx, []byte(`{"venueNameEn":"Garden"}`))
	require.NoError(t, err)
	assert.Equal(t, "Karim", got.GroomNameEn, "earlier patch persisted")
	assert.Equal(t, "Garden", got.VenueNameEn)
}

func TestSettingsRejectsBadPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, patch := range []string{`{"unknownKey":1}`, `{"primaryColor":"gold"}`, `[1]`} {
		_, err := f.content.UpdateSettings(ctx, []byte(patch))
		var verr *validate.Error
		assert.ErrorAs(t, err, &verr, patch)
	}

	got, err := f.content.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSiteContent(), got, "rejected patches are not stored")
}

func TestTimelineCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.content.CreateTimelineItem(ctx, model.CreateTimelineRequest{Time: "9:00 PM", LabelEn: "Entrance"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.SortOrder)
	second, err := f.content.CreateTimelineItem(ctx, model.CreateTimelineRequest{Time: "10:00 PM", LabelEn: "Dinner"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.SortOrder, "defaults to the item count")
	_, err = f.content.CreateTimelineItem(ctx, model.CreateTimelineRequest{Time: "8:00 PM", LabelEn: "Welcome", SortOrder: ptr(0)})
	require.NoError(t, err)

	_, err = f.content.UpdateTimelineItem(ctx, model.UpdateTimelineRequest{ID: first.ID, Time: "9:30 PM", LabelEn: "Entrance", SortOrder: 5})
	require.NoError(t, err)

	items, err := f.content.Timeline(ctx)
	require.NoError(t, err)
	labels := []string{}
	for _, it := range items {
		labels = append(labels, it.LabelEn)
	}
	assert.Equal(t, []string{"Welcome", "Dinner", "Entrance"}, labels)

	require.NoError(t, f.content.DeleteTimelineItem(ctx, second.ID))
	assert.ErrorIs(t, f.content.DeleteTimelineItem(ctx, second.ID), repository.ErrNotFound)
	_, err = f.content.UpdateTimelineItem(ctx, model.UpdateTimelineRequest{ID: second.ID, Time: "x", LabelEn: "y"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// ─── Export ──────────────────────────────────────────────────────────────────

func TestExportCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.group(t, "RACHIDI-FAM", 4, model.SideGroom)
	b := f.group(t, "BRIDE-FAMILY", 4, model.SideBride)
	c := f.group(t, "FRIENDS, 01", 2, model.SideGroom)
	for _, g := range []model.CreateGuestRequest{
		{FirstName: "Hussein", FamilyName: "Rachidi", GroupCode: "RACHIDI-FAM"},
		{FirstName: "Ali", FamilyName: "Rachidi", GroupCode: "RACHIDI-FAM"},
	} {
		_, err := f.guests.Create(ctx, g)
		require.NoError(t, err)
	}
	_, err := f.rsvp.Submit(ctx, submit(a.Token, true, ptr(2), "Hussein", `Ali "Jr"`))
	require.NoError(t, err)
	_, err = f.rsvp.Submit(ctx, submit(b.Token, false, nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.export.WriteCSV(ctx, &buf))
	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, ExportHeader, lines[0])
	assert.Regexp(t, `^RACHIDI-FAM,groom,4,Attending,2,"Hussein; Ali ""Jr""","Hussein Rachidi; Ali Rachidi",`+a.Token+`,2026-\d\d-\d\dT\d\d:\d\d:\d\d\.\d{3}Z$`, lines[1])
	assert.Regexp(t, `^BRIDE-FAMILY,bride,4,Not Attending,0,"","",`+b.Token+`,2026-`, lines[2])
	assert.Equal(t, `"FRIENDS, 01",groom,2,No Response,0,"","",`+c.Token+`,`, lines[3])
}

// ─── Seed ────────────────────────────────────────────────────────────────────

func TestSeedIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seeder := NewSeeder(f.store.Settings(), f.content, f.groups, f.guests, zap.NewNop())

	groups, err := seeder.Seed(ctx, true)
	require.NoError(t, err)
	assert.Len(t, groups, 3)

	_, err = seeder.Seed(ctx, true)
	require.NoError(t, err)

	items, err := f.content.Timeline(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, "Welcome Drink", items[0].LabelEn)

	guests, err := f.guests.List(ctx)
	require.NoError(t, err)
	assert.Len(t, guests, 2)
}
