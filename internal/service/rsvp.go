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

// RSVPService serves invitation links and records responses.
// The token in the link is the guest's only credential.
type RSVPService struct {
	groups GroupStore
	guests GuestStore
	rsvps  RSVPStore
	log    *zap.Logger
}

// NewRSVPService constructs an RSVPService.
func NewRSVPService(groups GroupStore, guests GuestStore, rsvps RSVPStore, log *zap.Logger) *RSVPService {
	return &RSVPService{groups: groups, guests: guests, rsvps: rsvps, log: log}
}

// Invitation resolves a token to its group, roster and current response.
// Unknown tokens, including those of deleted groups, return
// repository.ErrNotFound.
func (s *RSVPService) Invitation(ctx context.Context, token string) (*model.InvitationView, error) {
	group, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	guests, err := s.guests.ListByGroupCode(ctx, group.GroupCode)
	if err != nil {
		return nil, fmt.Errorf("list group guests: %w", err)
	}
	if guests == nil {
		guests = []model.Guest{}
	}

	view := &model.InvitationView{
		GroupCode: group.GroupCode,
		MaxGuests: group.MaxGuests,
		Side:      group.Side,
		Guests:    guests,
	}

	resp, err := s.rsvps.GetByGroupID(ctx, group.ID)
	switch {
	case err == nil:
		view.RSVP = &model.RSVPSummary{
			Attending:       resp.Attending,
			NumberAttending: resp.NumberAttending,
			GuestNames:      resp.GuestNames,
			Language:        resp.Language,
			SubmittedAt:     resp.SubmittedAt,
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		return nil, fmt.Errorf("get rsvp: %w", err)
	}
	return view, nil
}

// Submit records the group's response, replacing any earlier one.
func (s *RSVPService) Submit(ctx context.Context, req model.SubmitRSVPRequest) (*model.SubmitRSVPResult, error) {
	if req.Attending == nil {
		return nil, validate.Field("attending", "is required")
	}
	group, err := s.resolve(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	resp := Clamp(*group, req)
	if resp.Attending && resp.NumberAttending == 0 {
		// Accepted as sent; whether this should count as one is undecided.
		s.log.Warn("attending response with zero guests",
			zap.String("group_code", group.GroupCode))
	}

	saved, created, err := s.rsvps.Upsert(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("save rsvp: %w", err)
	}
	s.log.Info("rsvp recorded",
		zap.String("group_code", group.GroupCode),
		zap.Bool("attending", saved.Attending),
		zap.Int("number_attending", saved.NumberAttending),
		zap.Bool("created", created),
	)
	return &model.SubmitRSVPResult{Success: true, Updated: !created}, nil
}

func (s *RSVPService) resolve(ctx context.Context, token string) (*model.GuestGroup, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, validate.Field("token", "is required")
	}
	group, err := s.groups.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	return group, nil
}

// Clamp turns a submission into the response that will be stored:
//
//   - not attending: zero guests and no names, whatever was sent;
//   - attending: the count is bounded to [0, group.MaxGuests], and an
//     omitted count means one guest;
//   - blank names are dropped and the rest truncated to group.MaxGuests;
//   - the language is English unless Arabic was chosen.
//
// req.Attending must be non-nil.
func Clamp(group model.GuestGroup, req model.SubmitRSVPRequest) model.RSVPResponse {
	resp := model.RSVPResponse{
		GroupID:    group.ID,
		Attending:  *req.Attending,
		GuestNames: []string{},
		Language:   normalizeLanguage(req.Language),
	}
	if !resp.Attending {
		return resp
	}

	n := 1
	if req.NumberAttending != nil {
		n = *req.NumberAttending
	}
	resp.NumberAttending = min(max(n, 0), group.MaxGuests)

	for _, name := range req.GuestNames {
		if len(resp.GuestNames) == group.MaxGuests {
			break
		}
		if name = strings.TrimSpace(name); name != "" {
			resp.GuestNames = append(resp.GuestNames, name)
		}
	}
	return resp
}

func normalizeLanguage(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), model.LanguageArabic) {
		return model.LanguageArabic
	}
	return model.LanguageEnglish
}
