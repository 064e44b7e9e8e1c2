package models

import (
	"time"

	"github.com/google/uuid"
)

// KiddushDutyID is the well-known household Kiddush duty, seeded at startup.
// Saving a head-of-household Profile attaches it automatically.
var KiddushDutyID = uuid.MustParse("8f14e45f-ceea-467f-9575-af5a9e316455")

// Duty is a catalog entry of ritual duties (tafkidim).
type Duty struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category string    `gorm:"size:30" json:"category"`
	Name     string    `gorm:"size:30;not null;uniqueIndex" json:"name"`
	OrderID  int       `gorm:"uniqueIndex" json:"order_id"`

	ApplicableForProfile   bool `gorm:"default:true" json:"applicable_for_profile"`
	NotApplicableForRoster bool `gorm:"default:false" json:"not_applicable_for_roster"`
	ApplicableForAdults    bool `gorm:"default:true" json:"applicable_for_adults"`
	ApplicableForChildren  bool `gorm:"default:false" json:"applicable_for_children"`
	ApplicableForShabbat   bool `gorm:"default:true" json:"applicable_for_shabbat"`
	ApplicableForHag       bool `gorm:"default:false" json:"applicable_for_hag"`
	ApplicableForMevarchim bool `gorm:"default:false" json:"applicable_for_mevarchim"`
}

// Shabbat is a specific shabbat or hag with its Torah reading.
type Shabbat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date      time.Time `gorm:"uniqueIndex;not null" json:"date"`
	ParashaID uuid.UUID `gorm:"type:uuid;not null" json:"parasha"`
	Parasha   *Parasha  `json:"-"`
}

// Roster is one duty slot on one shabbat.
type Roster struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShabbatID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roster_shabbat_duty" json:"shabbat"`
	Shabbat   *Shabbat  `json:"-"`
	DutyID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roster_shabbat_duty" json:"duty"`
	Duty      *Duty     `json:"-"`
}

// Assignment statuses.
const (
	AssignmentOffered   = "OFFERED"
	AssignmentConfirmed = "CONFIRMED"
	AssignmentPostponed = "POSTPONED"
	AssignmentRefusal   = "REFUSAL"
	AssignmentCancelled = "CANCELLED"
)

// Offer types. Stand-in and special offers are not counted as a turn.
const (
	OfferRegular = "REGULAR"
	OfferStandin = "STANDIN"
	OfferSpecial = "SPECIAL"
)

// Assignment offers a roster slot to a Profile. A Profile appears at most
// once per roster.
type Assignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RosterID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_roster_profile" json:"roster"`
	Roster    *Roster   `json:"-"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_roster_profile" json:"profile"`
	Profile   *Profile  `json:"-"`
	Status    string    `gorm:"size:10;default:'OFFERED'" json:"status"`
	OfferType string    `gorm:"size:10;default:'REGULAR'" json:"offer_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
