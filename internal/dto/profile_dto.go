package dto

import "github.com/google/uuid"

// ProfileResponse is the member-facing view of a Profile. Gabbai notes are
// never serialized here.
type ProfileResponse struct {
	ID                  uuid.UUID   `json:"id"`
	UserID              *uuid.UUID  `json:"user,omitempty"`
	FirstName           string      `json:"first_name,omitempty"`
	LastName            string      `json:"last_name,omitempty"`
	DisplayName         string      `json:"display_name"`
	FullName            string      `json:"full_name,omitempty"`
	FullAliyaName       string      `json:"full_aliya_name,omitempty"`
	FatherFullName      string      `json:"father_full_name,omitempty"`
	Title               string      `json:"title,omitempty"`
	Gender              string      `json:"gender,omitempty"`
	ProfileRole         int         `json:"profile_role"`
	ReadOnly            bool        `json:"read_only"`
	DefaultFamilyID     *uuid.UUID  `json:"default_family_to_add_children,omitempty"`
	DodDay              *int        `json:"dod_day,omitempty"`
	DodMonth            *int        `json:"dod_month,omitempty"`
	BarMitzvahed        bool        `json:"bar_mitzvahed"`
	BarMitzvahParashaID *uuid.UUID  `json:"bar_mitzvah_parasha,omitempty"`
	Phone               string      `json:"phone,omitempty"`
	Email               string      `json:"email,omitempty"`
	UserNotes           string      `json:"user_notes,omitempty"`
	HeadOfHousehold     bool        `json:"head_of_household"`
	Duties              []uuid.UUID `json:"duties,omitempty"`

	Parents  []ProfileResponse `json:"parents,omitempty"`
	Spouse   *ProfileResponse  `json:"spouse,omitempty"`
	Children []ProfileResponse `json:"children,omitempty"`
}

// UpdateProfileRequest carries the member-editable fields.
type UpdateProfileRequest struct {
	FirstName           *string    `json:"first_name"`
	LastName            *string    `json:"last_name"`
	FullName            *string    `json:"full_name"`
	FatherFullName      *string    `json:"father_full_name"`
	Title               *string    `json:"title"`
	Gender              *string    `json:"gender"`
	DodDay              *int       `json:"dod_day"`
	DodMonth            *int       `json:"dod_month"`
	BarMitzvahed        *bool      `json:"bar_mitzvahed"`
	BarMitzvahParashaID *uuid.UUID `json:"bar_mitzvah_parasha"`
	Phone               *string    `json:"phone"`
	Email               *string    `json:"email"`
	UserNotes           *string    `json:"user_notes"`
	HeadOfHousehold     *bool      `json:"head_of_household"`
}

// CreateRelativeRequest creates a Profile as someone's spouse, child or
// parent.
type CreateRelativeRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FullName       string `json:"full_name"`
	FatherFullName string `json:"father_full_name"`
	Title          string `json:"title"`
	Gender         string `json:"gender"`
	BarMitzvahed   *bool  `json:"bar_mitzvahed"`
}

type CheckUserResponse struct {
	Exists           bool   `json:"exists"`
	Verified         bool   `json:"verified,omitempty"`
	Family           string `json:"family,omitempty"`
	Relation         string `json:"relation,omitempty"`
	VerificationCode *bool  `json:"verification_code,omitempty"`
}

type CheckCodeResponse struct {
	Exists           bool   `json:"exists"`
	VerificationCode bool   `json:"verification_code"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	FullName         string `json:"full_name,omitempty"`
	Verified         bool   `json:"verified"`
}
