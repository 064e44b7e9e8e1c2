package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateShabbatRequest struct {
	Date      time.Time `json:"date"`
	ParashaID uuid.UUID `json:"parasha"`
}

type CreateRosterRequest struct {
	ShabbatID uuid.UUID `json:"shabbat"`
	DutyID    uuid.UUID `json:"duty"`
}

type AssignRequest struct {
	ProfileID uuid.UUID `json:"profile"`
	OfferType string    `json:"offer_type,omitempty"`
}

type AssignmentStatusRequest struct {
	Status string `json:"status"`
}

type SettingRequest struct {
	Value interface{} `json:"value"`
}
