package services

import "github.com/itamarben/shul-backend/internal/models"

// FullAliyaName composes the ritual name used when calling a person up to
// the Torah: their Hebrew name, then "ben"/"bat" plus the father's Hebrew
// name, then the Cohen/Levi suffix. The suffix attaches once, after the
// whole chain. Requires a Hebrew full name; otherwise the result is empty.
func (s *ProfileService) FullAliyaName(p *models.Profile) (string, error) {
	if p.FullName == "" {
		return "", nil
	}
	fatherName, err := s.FatherName(p)
	if err != nil {
		return "", err
	}
	return composeAliyaName(p.FullName, p.Male(), fatherName, p.Title), nil
}

// FatherName prefers the linked father Profile's Hebrew name; the free-text
// field is the fallback for unlinked fathers.
func (s *ProfileService) FatherName(p *models.Profile) (string, error) {
	father, err := s.Father(p)
	if err != nil {
		return "", err
	}
	if father != nil && father.FullName != "" {
		return father.FullName, nil
	}
	return p.FatherFullName, nil
}

func composeAliyaName(fullName string, male bool, fatherFullName, title string) string {
	name := fullName
	if fatherFullName != "" {
		if male {
			name += " בן " + fatherFullName
		} else {
			name += " בת " + fatherFullName
		}
	}
	switch title {
	case models.TitleCohen:
		name += " הכהן"
	case models.TitleLevi:
		name += " הלוי"
	}
	return name
}
