package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile roles. Derived from the graph on every read, never stored.
type ProfileRole int

const (
	// RoleIndependent profiles have their own login account and cannot be
	// edited by anyone else.
	RoleIndependent ProfileRole = 1
	// RoleControlled profiles have no account but some parent does, so that
	// parent manages them (typically a child).
	RoleControlled ProfileRole = 2
	// RoleMeta profiles exist only as metadata, e.g. a grandparent entered
	// for aliya-name purposes.
	RoleMeta ProfileRole = 3
)

const (
	GenderMale   = "m"
	GenderFemale = "f"
)

const (
	TitleCohen   = "cohen"
	TitleLevi    = "levi"
	TitleYisrael = "yisrael"
)

// Hebrew months, used for yahrzeit dates.
const (
	MonthTishrei = iota + 1
	MonthMarcheshvan
	MonthKislev
	MonthTevet
	MonthShvat
	MonthAdar1
	MonthAdar2
	MonthNisan
	MonthIyar
	MonthSivan
	MonthTamuz
	MonthAv
	MonthElul
)

// Profile is a tracked person, with or without a login account. First/last
// names may be blank for metadata-only relatives, as long as the Hebrew
// full name is set.
type Profile struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user,omitempty"`
	User   *User      `json:"-"`

	FirstName           string `gorm:"size:30" json:"first_name,omitempty"`
	LastName            string `gorm:"size:30" json:"last_name,omitempty"`
	DisplayNameOverride string `gorm:"size:30" json:"-"`
	FullName            string `gorm:"size:200" json:"full_name,omitempty"`
	Title               string `gorm:"size:7;default:'yisrael'" json:"title,omitempty"`
	// FatherFullName is free text, used only when no father Profile is linked.
	FatherFullName string `gorm:"size:200" json:"-"`
	Gender         string `gorm:"size:1" json:"gender,omitempty"`

	// DefaultFamilyID is the canonical household: new spouses and children
	// are attached to this Family. Created lazily by the family graph.
	DefaultFamilyID *uuid.UUID `gorm:"type:uuid" json:"default_family_to_add_children,omitempty"`
	DefaultFamily   *Family    `gorm:"foreignKey:DefaultFamilyID" json:"-"`

	// VerificationCode is the one-time secret a future account presents to
	// claim this Profile. Present iff no User is linked.
	VerificationCode *int `gorm:"index" json:"verification_code,omitempty"`

	Duties []Duty `gorm:"many2many:profile_duties" json:"-"`

	DodDay              *int       `json:"dod_day,omitempty"`
	DodMonth            *int       `json:"dod_month,omitempty"`
	BarMitzvahed        bool       `gorm:"default:true" json:"bar_mitzvahed"`
	BarMitzvahParashaID *uuid.UUID `gorm:"type:uuid" json:"bar_mitzvah_parasha,omitempty"`

	Phone           string `gorm:"size:20" json:"phone,omitempty"`
	Email           string `gorm:"size:50" json:"email,omitempty"`
	UserNotes       string `gorm:"type:text" json:"user_notes,omitempty"`
	GabbaiNotes     string `gorm:"type:text" json:"-"`
	HeadOfHousehold bool   `gorm:"default:false" json:"head_of_household"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// DisplayName is the override if set, else the first name, else the Hebrew
// full name (metadata-only relatives have no first name).
func (p *Profile) DisplayName() string {
	return p.displayName(false)
}

func (p *Profile) DisplayNameWithFamily() string {
	return p.displayName(true)
}

func (p *Profile) displayName(withFamily bool) string {
	if p.DisplayNameOverride != "" {
		return p.DisplayNameOverride
	}
	if p.FirstName != "" {
		if withFamily && p.LastName != "" {
			return p.FirstName + " " + p.LastName
		}
		return p.FirstName
	}
	return p.FullName
}

// Male is the default when gender was never set, matching aliya phrasing.
func (p *Profile) Male() bool {
	return p.Gender != GenderFemale
}
