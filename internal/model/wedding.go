package model

import "time"

// WeddingDetails is the single bilingual (English/Malay) content row that
// drives the invitation site. Exactly one row exists, always with ID 1; it is
// seeded with defaults at startup and edited by the admin afterwards.
//
// The _en/_ms suffix pairs hold the same text in English and Malay. All
// fields are plain display strings — dates and times included — because the
// couple writes them exactly as they should appear on the invitation
// ("Saturday, Dec 27th 2025" / "Sabtu, 27 Dis 2025"), not as machine dates.
type WeddingDetails struct {
	ID int `json:"id" db:"id"`

	GroomName string `json:"groom_name" db:"groom_name"`
	BrideName string `json:"bride_name" db:"bride_name"`

	WeddingDate   string `json:"wedding_date"    db:"wedding_date"`
	WeddingDateMS string `json:"wedding_date_ms" db:"wedding_date_ms"`

	CeremonyTimeStart  string `json:"ceremony_time_start"  db:"ceremony_time_start"`
	CeremonyTimeEnd    string `json:"ceremony_time_end"    db:"ceremony_time_end"`
	ReceptionTimeStart string `json:"reception_time_start" db:"reception_time_start"`
	ReceptionTimeEnd   string `json:"reception_time_end"   db:"reception_time_end"`

	VenueName          string `json:"venue_name"            db:"venue_name"`
	VenueAddress       string `json:"venue_address"         db:"venue_address"`
	VenueGoogleMapsURL string `json:"venue_google_maps_url" db:"venue_google_maps_url"`

	Contact1Name    string `json:"contact1_name"     db:"contact1_name"`
	Contact1Phone   string `json:"contact1_phone"    db:"contact1_phone"`
	Contact1LabelEN string `json:"contact1_label_en" db:"contact1_label_en"`
	Contact1LabelMS string `json:"contact1_label_ms" db:"contact1_label_ms"`
	Contact2Name    string `json:"contact2_name"     db:"contact2_name"`
	Contact2Phone   string `json:"contact2_phone"    db:"contact2_phone"`
	Contact2LabelEN string `json:"contact2_label_en" db:"contact2_label_en"`
	Contact2LabelMS string `json:"contact2_label_ms" db:"contact2_label_ms"`
	Contact3Name    string `json:"contact3_name"     db:"contact3_name"`
	Contact3Phone   string `json:"contact3_phone"    db:"contact3_phone"`
	Contact3LabelEN string `json:"contact3_label_en" db:"contact3_label_en"`
	Contact3LabelMS string `json:"contact3_label_ms" db:"contact3_label_ms"`
	Contact4Name    string `json:"contact4_name"     db:"contact4_name"`
	Contact4Phone   string `json:"contact4_phone"    db:"contact4_phone"`
	Contact4LabelEN string `json:"contact4_label_en" db:"contact4_label_en"`
	Contact4LabelMS string `json:"contact4_label_ms" db:"contact4_label_ms"`

	RSVPDeadline   string `json:"rsvp_deadline"    db:"rsvp_deadline"`
	RSVPDeadlineMS string `json:"rsvp_deadline_ms" db:"rsvp_deadline_ms"`

	EventTypeEN   string `json:"event_type_en"   db:"event_type_en"`
	EventTypeMS   string `json:"event_type_ms"   db:"event_type_ms"`
	DressCodeEN   string `json:"dress_code_en"   db:"dress_code_en"`
	DressCodeMS   string `json:"dress_code_ms"   db:"dress_code_ms"`
	ParkingInfoEN string `json:"parking_info_en" db:"parking_info_en"`
	ParkingInfoMS string `json:"parking_info_ms" db:"parking_info_ms"`
	FoodInfoEN    string `json:"food_info_en"    db:"food_info_en"`
	FoodInfoMS    string `json:"food_info_ms"    db:"food_info_ms"`

	InvitationNoteEN string `json:"invitation_note_en" db:"invitation_note_en"`
	InvitationNoteMS string `json:"invitation_note_ms" db:"invitation_note_ms"`

	// Formal invitation-card copy.
	GroomTitleEN string `json:"groom_title_en" db:"groom_title_en"`
	GroomTitleMS string `json:"groom_title_ms" db:"groom_title_ms"`
	BrideTitleEN string `json:"bride_title_en" db:"bride_title_en"`
	BrideTitleMS string `json:"bride_title_ms" db:"bride_title_ms"`

	GroomFatherName string `json:"groom_father_name" db:"groom_father_name"`
	GroomMotherName string `json:"groom_mother_name" db:"groom_mother_name"`
	BrideFatherName string `json:"bride_father_name" db:"bride_father_name"`
	BrideMotherName string `json:"bride_mother_name" db:"bride_mother_name"`

	GroomFatherTitleEN string `json:"groom_father_title_en" db:"groom_father_title_en"`
	GroomFatherTitleMS string `json:"groom_father_title_ms" db:"groom_father_title_ms"`
	GroomMotherTitleEN string `json:"groom_mother_title_en" db:"groom_mother_title_en"`
	GroomMotherTitleMS string `json:"groom_mother_title_ms" db:"groom_mother_title_ms"`
	BrideFatherTitleEN string `json:"bride_father_title_en" db:"bride_father_title_en"`
	BrideFatherTitleMS string `json:"bride_father_title_ms" db:"bride_father_title_ms"`
	BrideMotherTitleEN string `json:"bride_mother_title_en" db:"bride_mother_title_en"`
	BrideMotherTitleMS string `json:"bride_mother_title_ms" db:"bride_mother_title_ms"`

	BismillahTextEN    string `json:"bismillah_text_en"    db:"bismillah_text_en"`
	BismillahTextMS    string `json:"bismillah_text_ms"    db:"bismillah_text_ms"`
	WithPleasureTextEN string `json:"with_pleasure_text_en" db:"with_pleasure_text_en"`
	WithPleasureTextMS string `json:"with_pleasure_text_ms" db:"with_pleasure_text_ms"`
	TogetherWithTextEN string `json:"together_with_text_en" db:"together_with_text_en"`
	TogetherWithTextMS string `json:"together_with_text_ms" db:"together_with_text_ms"`

	InvitationMessageEN   string `json:"invitation_message_en"    db:"invitation_message_en"`
	InvitationMessageMS   string `json:"invitation_message_ms"    db:"invitation_message_ms"`
	CordiallyInviteTextEN string `json:"cordially_invite_text_en" db:"cordially_invite_text_en"`
	CordiallyInviteTextMS string `json:"cordially_invite_text_ms" db:"cordially_invite_text_ms"`

	// Gift / QR money-gift fields.
	QRCodeURL   string `json:"qr_code_url"   db:"qr_code_url"`
	QROwnerName string `json:"qr_owner_name" db:"qr_owner_name"`
	QRBankName  string `json:"qr_bank_name"  db:"qr_bank_name"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// weddingFields is the explicit allowlist of columns an admin may update.
// id and updated_at are deliberately absent: the row ID is fixed at 1 and
// the timestamp is stamped by the store on every update.
//
// Keeping this list explicit (instead of deriving it with reflection from
// struct tags) means an unknown or malicious key in an update payload is
// simply dropped, and the UPDATE statement can only ever name these columns.
var weddingFields = []string{
	"groom_name", "bride_name",
	"wedding_date", "wedding_date_ms",
	"ceremony_time_start", "ceremony_time_end",
	"reception_time_start", "reception_time_end",
	"venue_name", "venue_address", "venue_google_maps_url",
	"contact1_name", "contact1_phone", "contact1_label_en", "contact1_label_ms",
	"contact2_name", "contact2_phone", "contact2_label_en", "contact2_label_ms",
	"contact3_name", "contact3_phone", "contact3_label_en", "contact3_label_ms",
	"contact4_name", "contact4_phone", "contact4_label_en", "contact4_label_ms",
	"rsvp_deadline", "rsvp_deadline_ms",
	"event_type_en", "event_type_ms",
	"dress_code_en", "dress_code_ms",
	"parking_info_en", "parking_info_ms",
	"food_info_en", "food_info_ms",
	"invitation_note_en", "invitation_note_ms",
	"groom_title_en", "groom_title_ms", "bride_title_en", "bride_title_ms",
	"groom_father_name", "groom_mother_name",
	"bride_father_name", "bride_mother_name",
	"groom_father_title_en", "groom_father_title_ms",
	"groom_mother_title_en", "groom_mother_title_ms",
	"bride_father_title_en", "bride_father_title_ms",
	"bride_mother_title_en", "bride_mother_title_ms",
	"bismillah_text_en", "bismillah_text_ms",
	"with_pleasure_text_en", "with_pleasure_text_ms",
	"together_with_text_en", "together_with_text_ms",
	"invitation_message_en", "invitation_message_ms",
	"cordially_invite_text_en", "cordially_invite_text_ms",
	"qr_code_url", "qr_owner_name", "qr_bank_name",
}

var weddingFieldSet = func() map[string]bool {
	set := make(map[string]bool, len(weddingFields))
	for _, f := range weddingFields {
		set[f] = true
	}
	return set
}()

// WeddingFields returns the ordered list of updatable column names.
func WeddingFields() []string {
	return weddingFields
}

// IsWeddingField reports whether name is an updatable wedding-details column.
func IsWeddingField(name string) bool {
	return weddingFieldSet[name]
}

// DefaultWeddingDetails returns the row seeded at first startup. The values
// are placeholders for the couple to replace through the admin editor.
func DefaultWeddingDetails() *WeddingDetails {
	return &WeddingDetails{
		ID:        1,
		GroomName: "Hafiz",
		BrideName: "Afini",

		WeddingDate:   "Saturday, Dec 27th 2025",
		WeddingDateMS: "Sabtu, 27 Dis 2025",

		CeremonyTimeStart:  "10:00 AM",
		CeremonyTimeEnd:    "12:00 PM",
		ReceptionTimeStart: "1:00 PM",
		ReceptionTimeEnd:   "4:00 PM",

		VenueName:          "Dewan Banquet Hall",
		VenueAddress:       "Jalan Mawar 1/2, Taman Mawar, 43000 Kajang, Selangor",
		VenueGoogleMapsURL: "https://maps.google.com/?q=Dewan+Banquet+Hall+Kajang",

		Contact1Name:    "Hafiz",
		Contact1Phone:   "+60 12-345 6789",
		Contact1LabelEN: "Groom's Family",
		Contact1LabelMS: "Keluarga Pengantin Lelaki",
		Contact2Name:    "Afini",
		Contact2Phone:   "+60 12-987 6543",
		Contact2LabelEN: "Bride's Family",
		Contact2LabelMS: "Keluarga Pengantin Perempuan",
		Contact3Name:    "Ahmad (Father)",
		Contact3Phone:   "+60 13-111 2222",
		Contact3LabelEN: "Groom's Father",
		Contact3LabelMS: "Bapa Pengantin Lelaki",
		Contact4Name:    "Siti (Mother)",
		Contact4Phone:   "+60 14-333 4444",
		Contact4LabelEN: "Bride's Mother",
		Contact4LabelMS: "Ibu Pengantin Perempuan",

		RSVPDeadline:   "December 20, 2025",
		RSVPDeadlineMS: "20 Disember 2025",

		EventTypeEN:   "WALIMATUL URUS",
		EventTypeMS:   "WALIMATUL URUS",
		DressCodeEN:   "Smart Casual",
		DressCodeMS:   "Smart Casual",
		ParkingInfoEN: "Parking available",
		ParkingInfoMS: "Tempat letak kereta tersedia",
		FoodInfoEN:    "Halal food provided",
		FoodInfoMS:    "Hidangan halal disediakan",

		InvitationNoteEN: "Please bring this invitation",
		InvitationNoteMS: "Sila bawa jemputan ini",

		GroomFatherTitleEN: "Father of the Groom",
		GroomFatherTitleMS: "Ayah Pengantin Lelaki",
		GroomMotherTitleEN: "Mother of the Groom",
		GroomMotherTitleMS: "Ibu Pengantin Lelaki",
		BrideFatherTitleEN: "Father of the Bride",
		BrideFatherTitleMS: "Ayah Pengantin Perempuan",
		BrideMotherTitleEN: "Mother of the Bride",
		BrideMotherTitleMS: "Ibu Pengantin Perempuan",

		BismillahTextEN:    "In the name of Allah, the Most Gracious, the Most Merciful",
		BismillahTextMS:    "Dengan nama Allah Yang Maha Pemurah lagi Maha Penyayang",
		WithPleasureTextEN: "With great pleasure, we",
		WithPleasureTextMS: "Dengan penuh kesyukuran, kami",
		TogetherWithTextEN: "together with",
		TogetherWithTextMS: "bersama",

		InvitationMessageEN:   "cordially invite you to join us at the Wedding Reception of our beloved children",
		InvitationMessageMS:   "menjemput Yang Berbahagia ke majlis perkahwinan anakanda kami",
		CordiallyInviteTextEN: "Cordially invite you to join us at the Wedding Reception of our beloved children",
		CordiallyInviteTextMS: "Dengan hormatnya menjemput anda ke majlis perkahwinan anak kami",
	}
}
