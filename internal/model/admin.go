// Package model defines the data structures used throughout the application.
package model

import "time"

// AdminUser represents the single back-office account.
//
// The password hash is bcrypt output (cost 12) and must never leave the
// service layer — handlers and API responses only ever see PublicUser.
//
// WHY A SEPARATE PublicUser TYPE?
// Returning the full AdminUser from a login or /me endpoint would serialize
// the password hash into the JSON response. A dedicated public view makes
// that mistake impossible to write by accident.
type AdminUser struct {
	ID           string    `json:"id"         db:"id"`
	Username     string    `json:"username"   db:"username"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PublicUser is the externally visible identity of an admin account.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Public returns the safe, externally visible view of the account.
func (u *AdminUser) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}
