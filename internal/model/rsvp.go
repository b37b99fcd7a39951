package model

import "time"

// RSVPResponse is a guest's confirmation of attendance.
//
// Phone is stored in normalized +60XXXXXXXXX form and is UNIQUE across all
// responses — one RSVP per phone number. The uniqueness lives in the database
// (unique index), not just in application pre-checks, so it holds under
// concurrent submissions.
type RSVPResponse struct {
	ID          string    `json:"id"           db:"id"`
	Name        string    `json:"name"         db:"name"`
	Phone       string    `json:"phone"        db:"phone"`
	Pax         int       `json:"pax"          db:"pax"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}

// RSVPStats aggregates responses for the admin dashboard.
// TotalGuests is the sum of pax over all responses.
type RSVPStats struct {
	TotalResponses int `json:"total_responses"`
	TotalGuests    int `json:"total_guests"`
}
