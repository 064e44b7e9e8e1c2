package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/services"
)

type TorahHandler struct {
	torah *services.TorahService
}

func NewTorahHandler(torah *services.TorahService) *TorahHandler {
	return &TorahHandler{torah: torah}
}

func (h *TorahHandler) ListParashot(c *fiber.Ctx) error {
	parashot, err := h.torah.ListParashot()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(parashot)
}

func (h *TorahHandler) ListSegments(c *fiber.Ctx) error {
	parashaID, err := uuid.Parse(c.Params("parashaId"))
	if err != nil {
		return badRequest(c, "Invalid parasha id")
	}
	segments, err := h.torah.ListSegments(parashaID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(segments)
}

type createParashaRequest struct {
	Name string `json:"name"`
}

func (h *TorahHandler) CreateParasha(c *fiber.Ctx) error {
	var req createParashaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "name is required")
	}
	parasha, err := h.torah.CreateParasha(req.Name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(parasha)
}

type createSegmentRequest struct {
	ParashaID   uuid.UUID `json:"parasha"`
	SegmentType int       `json:"segment_type"`
	StartPos    string    `json:"start_pos"`
	EndPos      string    `json:"end_pos"`
	TotalPsukim int       `json:"total_psukim"`
}

func (h *TorahHandler) CreateSegment(c *fiber.Ctx) error {
	var req createSegmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ParashaID == uuid.Nil {
		return badRequest(c, "parasha is required")
	}
	segment, err := h.torah.CreateSegment(req.ParashaID, req.SegmentType, req.StartPos, req.EndPos, req.TotalPsukim)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(segment)
}
