package model

// SiteContent is the singleton document holding the page copy and asset URLs.
// Stored documents are overlaid on DefaultSiteContent, so a partial document
// still yields a complete page.
type SiteContent struct {
	// Hero
	GroomNameEn string `json:"groomNameEn" validate:"max=100"`
	GroomNameAr string `json:"groomNameAr" validate:"max=100"`
	BrideNameEn string `json:"brideNameEn" validate:"max=100"`
	BrideNameAr string `json:"brideNameAr" validate:"max=100"`
	WeddingDate string `json:"weddingDate"`
	HeroImage   string `json:"heroImage"`

	// Countdown
	CountdownDate string `json:"countdownDate"`
	CountdownBg   string `json:"countdownBg"`

	// Invitation
	InvitationTextEn string `json:"invitationTextEn"`
	InvitationTextAr string `json:"invitationTextAr"`
	InvitationBg     string `json:"invitationBg"`

	// Location
	EventDate      string `json:"eventDate"`
	EventTime      string `json:"eventTime"`
	VenueNameEn    string `json:"venueNameEn"`
	VenueNameAr    string `json:"venueNameAr"`
	VenueAddressEn string `json:"venueAddressEn"`
	VenueAddressAr string `json:"venueAddressAr"`
	GoogleMapsURL  string `json:"googleMapsUrl" validate:"omitempty,url"`
	LocationBg     string `json:"locationBg"`

	TimelineBg string `json:"timelineBg"`

	// Gift
	GiftTextEn       string `json:"giftTextEn"`
	GiftTextAr       string `json:"giftTextAr"`
	GiftProviderName string `json:"giftProviderName"`
	GiftAccountID    string `json:"giftAccountId"`
	GiftPhone        string `json:"giftPhone"`
	GiftBg           string `json:"giftBg"`

	// RSVP
	RSVPDeadlineEn string `json:"rsvpDeadlineEn"`
	RSVPDeadlineAr string `json:"rsvpDeadlineAr"`
	RSVPBg         string `json:"rsvpBg"`

	// Envelope
	EnvelopeImage string `json:"envelopeImage"`
	SealImage     string `json:"sealImage"`
	SfxEnabled    bool   `json:"sfxEnabled"`

	MusicFile string `json:"musicFile"`

	PrimaryColor string `json:"primaryColor" validate:"omitempty,hexcolor"`
}

// DefaultSiteContent returns the content shown before anything is configured.
func DefaultSiteContent() SiteContent {
	return SiteContent{
		GroomNameEn: "Hussein",
		GroomNameAr: "حسين",
		BrideNameEn: "Suzan",
		BrideNameAr: "سوزان",
		WeddingDate: "June 12, 2026",

		CountdownDate: "2026-06-12T20:00:00",

		InvitationTextEn: "With joyous hearts,\nTogether with their families,\nHussein & Suzan\nrequest the honor of your presence\nat their wedding celebration\nJune 12, 2026",
		InvitationTextAr: "بقلوب مليئة بالفرح،\nبرفقة عائلتيهما،\nحسين و سوزان\nيتشرفان بدعوتكم لحضور\nحفل زفافهما\n١٢ يونيو ٢٠٢٦",

		EventDate:      "June 12, 2026",
		EventTime:      "8:00 PM",
		VenueNameEn:    "Plein Nature",
		VenueNameAr:    "بلين ناتشر",
		VenueAddressEn: "Beirut, Lebanon",
		VenueAddressAr: "بيروت، لبنان",
		GoogleMapsURL:  "https://maps.google.com",

		GiftTextEn:       "Your Presence is the only gift we truly need.\nBut if you wish to bless us further, our wedding registry can be found at:",
		GiftTextAr:       "حضوركم هو الهدية الوحيدة التي نحتاجها حقاً.\nولكن إذا أردتم إسعادنا أكثر، يمكنكم ذلك عبر:",
		GiftProviderName: "Whish Money",
		GiftAccountID:    "31135154-03",
		GiftPhone:        "81538385",

		RSVPDeadlineEn: "May 1, 2026",
		RSVPDeadlineAr: "١ مايو ٢٠٢٦",

		SfxEnabled:   true,
		PrimaryColor: "#C9A96E",
	}
}

// DefaultTimeline is the programme inserted by the seed command.
func DefaultTimeline() []CreateTimelineRequest {
	order := func(n int) *int { return &n }
	return []CreateTimelineRequest{
		{Time: "8:00 PM", LabelEn: "Welcome Drink", LabelAr: "مشروب الاستقبال", SortOrder: order(0)},
		{Time: "9:00 PM", LabelEn: "Groom & Bride Entrance", LabelAr: "دخول العروسين", SortOrder: order(1)},
		{Time: "10:00 PM", LabelEn: "Dinner", LabelAr: "العشاء", SortOrder: order(2)},
		{Time: "11:00 PM", LabelEn: "Cake Cutting", LabelAr: "قطع الكعكة", SortOrder: order(3)},
	}
}
