package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
)

// ExportHeader is the first line of the RSVP export.
const ExportHeader = "Group Code,Side,Max Guests,RSVP Status,Number Attending,Guest Names,Guests in Group,Token,Last Updated"

// isoMillis matches the ISO-8601 form spreadsheet tools expect.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// RSVP status labels used in the export.
const (
	StatusAttending    = "Attending"
	StatusNotAttending = "Not Attending"
	StatusNoResponse   = "No Response"
)

// ExportService renders the guest directory as CSV.
type ExportService struct {
	dir directory
}

// NewExportService constructs an ExportService.
func NewExportService(groups GroupStore, guests GuestStore, rsvps RSVPStore) *ExportService {
	return &ExportService{dir: directory{groups: groups, guests: guests, rsvps: rsvps}}
}

// WriteCSV writes one line per group, oldest group first. The two name
// columns are always quoted and joined with "; ".
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	groups, err := s.dir.load(ctx)
	if err != nil {
		return fmt.Errorf("load groups: %w", err)
	}
	slices.SortStableFunc(groups, func(a, b model.GroupDetail) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	bw := bufio.NewWriter(w)
	bw.WriteString(ExportHeader)
	for _, g := range groups {
		bw.WriteByte('\n')
		bw.WriteString(exportLine(g))
	}
	return bw.Flush()
}

func exportLine(g model.GroupDetail) string {
	status, attending, names, updated := StatusNoResponse, "0", "", ""
	if r := g.RSVPResponse; r != nil {
		status = StatusNotAttending
		if r.Attending {
			status = StatusAttending
		}
		attending = strconv.Itoa(r.NumberAttending)
		names = strings.Join(r.GuestNames, "; ")
		updated = r.UpdatedAt.UTC().Format(isoMillis)
	}

	members := make([]string, len(g.Guests))
	for i, guest := range g.Guests {
		members[i] = guest.FullName()
	}

	return strings.Join([]string{
		csvField(g.GroupCode),
		string(g.Side),
		strconv.Itoa(g.MaxGuests),
		status,
		attending,
		quote(names),
		quote(strings.Join(members, "; ")),
		g.Token,
		updated,
	}, ",")
}

// csvField quotes a value only when it would otherwise break the line.
func csvField(v string) string {
	if strings.ContainsAny(v, ",\"\r\n") {
		return quote(v)
	}
	return v
}

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
