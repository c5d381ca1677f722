// Package model defines the core domain types for the wedding invitation system.
package model

import "time"

// Side is the half of the couple a group or guest belongs to.
type Side string

const (
	SideGroom Side = "groom"
	SideBride Side = "bride"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideGroom || s == SideBride
}

// Supported response languages.
const (
	LanguageEnglish = "en"
	LanguageArabic  = "ar"
)

// DefaultMaxGuests is used when a group is created without an explicit capacity.
const DefaultMaxGuests = 2

// DefaultRelation is applied to guests created without a relation.
const DefaultRelation = "Friend"

// GuestGroup is an invitation unit sharing one capacity and one RSVP link.
type GuestGroup struct {
	ID        string    `json:"id"`
	GroupCode string    `json:"groupCode"`
	Token     string    `json:"token"`
	MaxGuests int       `json:"maxGuests"`
	Side      Side      `json:"side"`
	CreatedAt time.Time `json:"createdAt"`
}

// Guest is a person on the guest list. GroupCode is a soft reference to
// GuestGroup.GroupCode; deleting the group leaves the guest in place.
type Guest struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	FamilyName string    `json:"familyName"`
	Phone      *string   `json:"phone"`
	Side       Side      `json:"side"`
	Relation   string    `json:"relation"`
	GroupCode  string    `json:"groupCode"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FullName returns "first family".
func (g Guest) FullName() string {
	return g.FirstName + " " + g.FamilyName
}

// RSVPResponse is the single response recorded for a group.
type RSVPResponse struct {
	ID              string    `json:"id"`
	GroupID         string    `json:"groupId"`
	Attending       bool      `json:"attending"`
	NumberAttending int       `json:"numberAttending"`
	GuestNames      []string  `json:"guestNames"`
	Language        string    `json:"language"`
	SubmittedAt     time.Time `json:"submittedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// GroupDetail is a group joined with its response and member guests.
type GroupDetail struct {
	GuestGroup
	RSVPResponse *RSVPResponse `json:"rsvpResponse"`
	Guests       []Guest       `json:"guests"`
}

// TimelineItem is one entry of the wedding day programme.
type TimelineItem struct {
	ID        string    `json:"id"`
	Time      string    `json:"time"`
	LabelEn   string    `json:"labelEn"`
	LabelAr   string    `json:"labelAr"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

// LoginRequest is the payload for POST /api/auth.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SubmitRSVPRequest is the payload a guest posts from their invitation link.
// NumberAttending is a pointer so an omitted count can be told apart from 0.
type SubmitRSVPRequest struct {
	Token           string   `json:"token" validate:"required"`
	Attending       *bool    `json:"attending" validate:"required"`
	NumberAttending *int     `json:"numberAttending"`
	GuestNames      []string `json:"guestNames" validate:"omitempty,dive,max=120"`
	Language        string   `json:"language"`
}

// CreateGroupRequest is the payload for POST /api/groups.
type CreateGroupRequest struct {
	GroupCode string `json:"groupCode" validate:"required,max=64"`
	MaxGuests *int   `json:"maxGuests" validate:"omitempty,min=0,max=100"`
	Side      Side   `json:"side" validate:"omitempty,oneof=bride groom"`
}

// UpdateGroupRequest is the payload for PUT /api/groups.
type UpdateGroupRequest struct {
	ID        string `json:"id" validate:"required,uuid"`
	MaxGuests *int   `json:"maxGuests" validate:"required,min=0,max=100"`
	Side      Side   `json:"side" validate:"required,oneof=bride groom"`
}

// DeleteRequest carries the target id of every DELETE endpoint.
type DeleteRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// CreateGuestRequest is the payload for POST /api/guests.
type CreateGuestRequest struct {
	FirstName  string  `json:"firstName" validate:"required,max=100"`
	FamilyName string  `json:"familyName" validate:"required,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=40"`
	Side       Side    `json:"side" validate:"omitempty,oneof=bride groom"`
	Relation   string  `json:"relation" validate:"omitempty,max=60"`
	GroupCode  string  `json:"groupCode" validate:"required,max=64"`
}

// ImportRow is one line of a bulk import. Only FirstName, FamilyName and
// GroupCode are mandatory; rows lacking them are skipped.
type ImportRow struct {
	FirstName  string `json:"firstName"`
	FamilyName string `json:"familyName"`
	Phone      string `json:"phone"`
	Side       Side   `json:"side"`
	Relation   string `json:"relation"`
	GroupCode  string `json:"groupCode"`
	MaxGuests  *int   `json:"maxGuests"`
}

// CreateTimelineRequest is the payload for POST /api/timeline.
type CreateTimelineRequest struct {
	Time      string `json:"time" validate:"required,max=40"`
	LabelEn   string `json:"labelEn" validate:"required,max=200"`
	LabelAr   string `json:"labelAr" validate:"max=200"`
	SortOrder *int   `json:"sortOrder" validate:"omitempty,min=0"`
}

// UpdateTimelineRequest is the payload for PUT /api/timeline.
type UpdateTimelineRequest struct {
	ID        string `json:"id" validate:"required,uuid"`
	Time      string `json:"time" validate:"required,max=40"`
	LabelEn   string `json:"labelEn" validate:"required,max=200"`
	LabelAr   string `json:"labelAr" validate:"max=200"`
	SortOrder int    `json:"sortOrder" validate:"min=0"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

// RSVPSummary is the guest-facing view of a recorded response.
type RSVPSummary struct {
	Attending       bool      `json:"attending"`
	NumberAttending int       `json:"numberAttending"`
	GuestNames      []string  `json:"guestNames"`
	Language        string    `json:"language"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

// InvitationView is what an invitation link resolves to.
type InvitationView struct {
	GroupCode string       `json:"groupCode"`
	MaxGuests int          `json:"maxGuests"`
	Side      Side         `json:"side"`
	Guests    []Guest      `json:"guests"`
	RSVP      *RSVPSummary `json:"rsvp"`
}

// SubmitRSVPResult reports whether the submission replaced an earlier response.
type SubmitRSVPResult struct {
	Success bool `json:"success"`
	Updated bool `json:"updated"`
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Created       int `json:"created"`
	GroupsCreated int `json:"groupsCreated"`
	Skipped       int `json:"skipped"`
	Failed        int `json:"failed"`
}

// AuthStatus is returned by GET /api/auth.
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
}

// SuccessResponse acknowledges mutations that return no entity.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}
