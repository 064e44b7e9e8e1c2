package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/config"
	"github.com/itamarben/shul-backend/internal/dto"
	"github.com/itamarben/shul-backend/internal/middleware"
	"github.com/itamarben/shul-backend/internal/models"
	"github.com/itamarben/shul-backend/internal/services"
	"gorm.io/gorm"
)

type RosterHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	rosters  *services.RosterService
	profiles *services.ProfileService
}

func NewRosterHandler(db *gorm.DB, cfg *config.Config, rosters *services.RosterService, profiles *services.ProfileService) *RosterHandler {
	return &RosterHandler{db: db, cfg: cfg, rosters: rosters, profiles: profiles}
}

// ListShabbatot returns upcoming shabbatot. ?from=2026-09-05 narrows the
// range; the default is everything.
func (h *RosterHandler) ListShabbatot(c *fiber.Ctx) error {
	var from time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(c, "Invalid from date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	shabbatot, err := h.rosters.ListShabbatot(from)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(shabbatot)
}

func (h *RosterHandler) CreateShabbat(c *fiber.Ctx) error {
	var req dto.CreateShabbatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Date.IsZero() || req.ParashaID == uuid.Nil {
		return badRequest(c, "date and parasha are required")
	}
	shabbat, err := h.rosters.CreateShabbat(req.Date, req.ParashaID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shabbat)
}

func (h *RosterHandler) ListRosters(c *fiber.Ctx) error {
	shabbatID, err := uuid.Parse(c.Params("shabbatId"))
	if err != nil {
		return badRequest(c, "Invalid shabbat id")
	}
	rosters, err := h.rosters.ListRosters(shabbatID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(rosters)
}

func (h *RosterHandler) CreateRoster(c *fiber.Ctx) error {
	var req dto.CreateRosterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ShabbatID == uuid.Nil || req.DutyID == uuid.Nil {
		return badRequest(c, "shabbat and duty are required")
	}
	roster, err := h.rosters.CreateRoster(req.ShabbatID, req.DutyID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(roster)
}

// Assign offers a roster slot to a Profile. Gabbai only.
func (h *RosterHandler) Assign(c *fiber.Ctx) error {
	rosterID, err := uuid.Parse(c.Params("rosterId"))
	if err != nil {
		return badRequest(c, "Invalid roster id")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ProfileID == uuid.Nil {
		return badRequest(c, "profile is required")
	}

	assignment, err := h.rosters.Assign(rosterID, req.ProfileID, req.OfferType)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// MyAssignments lists the requester's own offers and confirmations.
func (h *RosterHandler) MyAssignments(c *fiber.Ctx) error {
	profileID, err := middleware.ProfileID(c)
	if err != nil {
		return notFound(c)
	}
	assignments, err := h.rosters.ListForProfile(profileID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(assignments)
}

// SetStatus answers an offer: members confirm, postpone or refuse their own;
// the gabbai may set any status on any assignment.
func (h *RosterHandler) SetStatus(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("assignmentId"))
	if err != nil {
		return badRequest(c, "Invalid assignment id")
	}
	var req dto.AssignmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var requester *models.Profile
	gabbai := middleware.IsGabbai(c, h.db, h.cfg)
	if !gabbai {
		profileID, err := middleware.ProfileID(c)
		if err != nil {
			return notFound(c)
		}
		requester, err = h.profiles.Get(profileID)
		if err != nil {
			return notFound(c)
		}
	}

	assignment, err := h.rosters.SetStatus(assignmentID, requester, req.Status, gabbai)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(assignment)
}

// ListDuties returns the duty catalogue, ordered for display.
func (h *RosterHandler) ListDuties(c *fiber.Ctx) error {
	var duties []models.Duty
	if err := h.db.Order("order_id").Find(&duties).Error; err != nil {
		return internalError(c)
	}
	return c.JSON(duties)
}
