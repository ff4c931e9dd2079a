// Package models defines the per-user profile row.
package models

import "time"

// UserDetails is the singleton profile row for a user. Optional fields are
// pointers so "never supplied" stays distinguishable from a zero value.
type UserDetails struct {
	UserID            int64      `json:"user_id"`
	FirstName         *string    `json:"first_name"`
	MiddleName        *string    `json:"middle_name"`
	LastName          *string    `json:"last_name"`
	DisplayName       *string    `json:"display_name"`
	Email             *string    `json:"email"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	GenderID          *int       `json:"gender_id"`
	ProfilePictureURL *string    `json:"profile_picture_url"`
	Creator           int64      `json:"creator"`
	CreatedAt         time.Time  `json:"created_at"`
	Updator           *int64     `json:"updator"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// Input carries the caller-supplied fields of a create or update. Nil means
// the field was not supplied: creates store null, updates leave the stored
// value alone.
type Input struct {
	FirstName         *string    `json:"first_name"`
	MiddleName        *string    `json:"middle_name"`
	LastName          *string    `json:"last_name"`
	DisplayName       *string    `json:"display_name"`
	Email             *string    `json:"email"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	GenderID          *int       `json:"gender_id"`
	ProfilePictureURL *string    `json:"profile_picture_url"`
}

// Apply overwrites the supplied fields on d.
func (in Input) Apply(d *UserDetails) {
	if in.FirstName != nil {
		d.FirstName = in.FirstName
	}
	if in.MiddleName != nil {
		d.MiddleName = in.MiddleName
	}
	if in.LastName != nil {
		d.LastName = in.LastName
	}
	if in.DisplayName != nil {
		d.DisplayName = in.DisplayName
	}
	if in.Email != nil {
		d.Email = in.Email
	}
	if in.DateOfBirth != nil {
		d.DateOfBirth = in.DateOfBirth
	}
	if in.GenderID != nil {
		d.GenderID = in.GenderID
	}
	if in.ProfilePictureURL != nil {
		d.ProfilePictureURL = in.ProfilePictureURL
	}
}
