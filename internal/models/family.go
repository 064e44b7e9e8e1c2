package models

import (
	"time"

	"github.com/google/uuid"
)

// Family is a household: a set of parent Profiles and a set of child
// Profiles. All spouse/father/mother/children derivations run over these two
// relations; nothing is stored on Profile directly.
type Family struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Parents   []Profile `gorm:"many2many:family_parents" json:"parents,omitempty"`
	Children  []Profile `gorm:"many2many:family_children" json:"children,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// DisplayName joins the parents' display names. When the parents share a last
// name it is appended once; otherwise every parent is shown with their own.
func (f *Family) DisplayName() string {
	return f.displayName(false)
}

func (f *Family) displayName(forceAllLastNames bool) string {
	names := ""
	familyName := ""
	for _, parent := range f.Parents {
		if forceAllLastNames {
			names += parent.DisplayNameWithFamily() + " + "
		} else {
			names += parent.DisplayName() + " & "
			if familyName == "" {
				familyName = parent.LastName
			} else if parent.LastName != "" && familyName != parent.LastName {
				// someone in the family has a different last name
				return f.displayName(true)
			}
		}
	}
	if len(names) < 3 {
		return ""
	}
	names = names[:len(names)-3]
	if forceAllLastNames {
		return names
	}
	return names + " " + familyName
}
