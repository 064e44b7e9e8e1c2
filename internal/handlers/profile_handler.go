package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/config"
	"github.com/itamarben/shul-backend/internal/dto"
	"github.com/itamarben/shul-backend/internal/middleware"
	"github.com/itamarben/shul-backend/internal/models"
	"github.com/itamarben/shul-backend/internal/services"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	profiles *services.ProfileService
	families *services.FamilyService
	authz    *services.AuthzService
}

func NewProfileHandler(db *gorm.DB, cfg *config.Config, profiles *services.ProfileService, families *services.FamilyService, authz *services.AuthzService) *ProfileHandler {
	return &ProfileHandler{db: db, cfg: cfg, profiles: profiles, families: families, authz: authz}
}

// requester resolves the authenticated account's Profile.
func (h *ProfileHandler) requester(c *fiber.Ctx) (*models.Profile, error) {
	profileID, err := middleware.ProfileID(c)
	if err != nil {
		return nil, err
	}
	return h.profiles.Get(profileID)
}

// List returns the requester's visibility set. The gabbai sees everyone.
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	var list []models.Profile
	if middleware.IsGabbai(c, h.db, h.cfg) {
		if err := h.db.Order("first_name").Find(&list).Error; err != nil {
			return internalError(c)
		}
	} else {
		requester, err := h.requester(c)
		if err != nil {
			return notFound(c)
		}
		ids, err := h.authz.AuthorizedIDs(requester, false)
		if err != nil {
			return internalError(c)
		}
		if err := h.db.Where("id IN ?", ids).Order("first_name").Find(&list).Error; err != nil {
			return internalError(c)
		}
	}

	resp := make([]dto.ProfileResponse, 0, len(list))
	for i := range list {
		resp = append(resp, h.serialize(c, &list[i], false))
	}
	return c.JSON(resp)
}

// Me returns the requester's own Profile with relations expanded.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	requester, err := h.requester(c)
	if err != nil {
		return notFound(c)
	}
	return c.JSON(h.serialize(c, requester, true))
}

// Get returns a single Profile. Invisible and missing targets both map to
// 404, so existence never leaks.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	target, _, status := h.resolveTarget(c, false)
	if status != 0 {
		return errStatus(c, status)
	}
	return c.JSON(h.serialize(c, target, true))
}

// Update edits a Profile within the requester's write permissions.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	target, _, status := h.resolveTarget(c, true)
	if status != 0 {
		return errStatus(c, status)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	applyProfileUpdate(target, &req)
	if err := h.profiles.Save(target); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(h.serialize(c, target, true))
}

// resolveTarget loads :id and enforces visibility. Returns a non-zero HTTP
// status when the request must be rejected.
func (h *ProfileHandler) resolveTarget(c *fiber.Ctx, write bool) (*models.Profile, *models.Profile, int) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, nil, fiber.StatusNotFound
	}
	target, err := h.profiles.Get(id)
	if err != nil {
		return nil, nil, fiber.StatusNotFound
	}

	if middleware.IsGabbai(c, h.db, h.cfg) {
		return target, nil, 0
	}

	requester, err := h.requester(c)
	if err != nil {
		return nil, nil, fiber.StatusNotFound
	}

	canRead, err := h.authz.HasPermission(target, requester, false)
	if err != nil || !canRead {
		return nil, nil, fiber.StatusNotFound
	}
	if write {
		canWrite, err := h.authz.HasPermission(target, requester, true)
		if err != nil {
			return nil, nil, fiber.StatusInternalServerError
		}
		if !canWrite {
			// Readable but locked: the caller already knows it exists.
			return nil, nil, fiber.StatusForbidden
		}
	}
	return target, requester, 0
}

// --- nested spouse ---

func (h *ProfileHandler) ListSpouse(c *fiber.Ctx) error {
	target, _, status := h.resolveTarget(c, false)
	if status != 0 {
		return errStatus(c, status)
	}
	spouse, err := h.profiles.Spouse(target)
	if err != nil {
		return internalError(c)
	}
	if spouse == nil {
		return c.JSON([]dto.ProfileResponse{})
	}
	return c.JSON([]dto.ProfileResponse{h.serialize(c, spouse, false)})
}

// CreateSpouse creates a Profile and links it as the target's spouse.
func (h *ProfileHandler) CreateSpouse(c *fiber.Ctx) error {
	target, _, status := h.resolveTarget(c, true)
	if status != 0 {
		return errStatus(c, status)
	}

	existing, err := h.profiles.Spouse(target)
	if err != nil {
		return internalError(c)
	}
	if existing != nil {
		return badRequest(c, services.ErrSpouseExists.Error())
	}

	profile, ok := h.createRelative(c, services.SpouseOf(target))
	if !ok {
		return nil
	}
	return c.Status(fiber.StatusCreated).JSON(h.serialize(c, profile, false))
}

// AssociateSpouse links an existing Profile as spouse. Gabbai only.
func (h *ProfileHandler) AssociateSpouse(c *fiber.Ctx) error {
	return h.associate(c, func(target, other *models.Profile) error {
		return h.families.AssociateSpouse(target, other)
	}, "spouseId")
}

// --- nested children ---

func (h *ProfileHandler) ListChildren(c *fiber.Ctx) error {
	target, _, status := h.resolveTarget(c, false)
	if status != 0 {
		return errStatus(c, status)
	}
	children, err := h.profiles.Children(target)
	if err != nil {
		return internalError(c)
	}
	resp := make([]dto.ProfileResponse, 0, len(children))
	for i := range children {
		resp = append(resp, h.serialize(c, &children[i], false))
	}
	return c.JSON(resp)
}

func (h *ProfileHandler) CreateChild(c *fiber.Ctx) error {
	target, _, status := h.resolveTarget(c, true)
	if status != 0 {
		return errStatus(c, status)
	}
	profile, ok := h.createRelative(c, services.ChildOf(target))
	if !ok {
		return nil
	}
	return c.Status(fiber.StatusCreated).JSON(h.serialize(c, profile, false))
}

// AssociateChild links an existing Profile as child. Gabbai only.
func (h *ProfileHandler) AssociateChild(c *fiber.Ctx) error {
	return h.associate(c, func(target, other *models.Profile) error {
		return h.families.AssociateChild(target, other)
	}, "childId")
}

// --- nested parents ---

func (h *ProfileHandler) ListParents(c *fiber.Ctx) error {
	target, _, status := h.resolveTarget(c, false)
	if status != 0 {
		return errStatus(c, status)
	}

	var resp []dto.ProfileResponse
	father, err := h.profiles.Father(target)
	if err != nil {
		return internalError(c)
	}
	if father != nil {
		resp = append(resp, h.serialize(c, father, false))
	}
	mother, err := h.profiles.Mother(target)
	if err != nil {
		return internalError(c)
	}
	if mother != nil {
		resp = append(resp, h.serialize(c, mother, false))
	}
	return c.JSON(resp)
}

// CreateParent creates a Profile as a parent of the target (the requester
// recording their own father or mother).
func (h *ProfileHandler) CreateParent(c *fiber.Ctx) error {
	target, _, status := h.resolveTarget(c, true)
	if status != 0 {
		return errStatus(c, status)
	}
	profile, ok := h.createRelative(c, services.ParentOf(target))
	if !ok {
		return nil
	}
	return c.Status(fiber.StatusCreated).JSON(h.serialize(c, profile, false))
}

// --- families ---

func (h *ProfileHandler) ListFamilies(c *fiber.Ctx) error {
	target, _, status := h.resolveTarget(c, false)
	if status != 0 {
		return errStatus(c, status)
	}
	families, err := h.families.ListForParent(target.ID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(families)
}

// --- helpers ---

func (h *ProfileHandler) associate(c *fiber.Ctx, link func(target, other *models.Profile) error, param string) error {
	if !middleware.IsGabbai(c, h.db, h.cfg) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "You don't have permission to associate existing profiles",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c)
	}
	otherID, err := uuid.Parse(c.Params(param))
	if err != nil {
		return notFound(c)
	}
	target, err := h.profiles.Get(id)
	if err != nil {
		return notFound(c)
	}
	other, err := h.profiles.Get(otherID)
	if err != nil {
		return notFound(c)
	}

	if err := link(target, other); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// createRelative parses the body and creates a linked Profile. On failure
// the response has been written and ok is false.
func (h *ProfileHandler) createRelative(c *fiber.Ctx, link services.LinkingContext) (*models.Profile, bool) {
	var req dto.CreateRelativeRequest
	if err := c.BodyParser(&req); err != nil {
		badRequest(c, "Invalid request body")
		return nil, false
	}

	profile := &models.Profile{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		FullName:       req.FullName,
		FatherFullName: req.FatherFullName,
		Title:          req.Title,
		Gender:         req.Gender,
		BarMitzvahed:   true,
	}
	if req.BarMitzvahed != nil {
		profile.BarMitzvahed = *req.BarMitzvahed
	}
	if req.FirstName != "" && req.LastName != "" {
		profile.DisplayNameOverride = req.FirstName + "_" + req.LastName
	}

	if err := h.profiles.Create(profile, link); err != nil {
		serviceError(c, err)
		return nil, false
	}
	return profile, true
}

func applyProfileUpdate(p *models.Profile, req *dto.UpdateProfileRequest) {
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.FatherFullName != nil {
		p.FatherFullName = *req.FatherFullName
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.DodDay != nil {
		p.DodDay = req.DodDay
	}
	if req.DodMonth != nil {
		p.DodMonth = req.DodMonth
	}
	if req.BarMitzvahed != nil {
		p.BarMitzvahed = *req.BarMitzvahed
	}
	if req.BarMitzvahParashaID != nil {
		p.BarMitzvahParashaID = req.BarMitzvahParashaID
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.UserNotes != nil {
		p.UserNotes = *req.UserNotes
	}
	if req.HeadOfHousehold != nil {
		p.HeadOfHousehold = *req.HeadOfHousehold
	}
}

// serialize builds the member-facing view. deep expands parents, spouse and
// children one level; nested entries stay flat.
func (h *ProfileHandler) serialize(c *fiber.Ctx, p *models.Profile, deep bool) dto.ProfileResponse {
	role, err := h.profiles.Role(p)
	if err != nil {
		slog.Error("failed to derive profile role", "profile", p.ID, "error", err)
	}
	aliyaName, err := h.profiles.FullAliyaName(p)
	if err != nil {
		slog.Error("failed to compose aliya name", "profile", p.ID, "error", err)
	}
	fatherName, _ := h.profiles.FatherName(p)

	readOnly := role == models.RoleIndependent
	if profileID, err := middleware.ProfileID(c); err == nil && profileID == p.ID {
		readOnly = false
	}

	resp := dto.ProfileResponse{
		ID:                  p.ID,
		UserID:              p.UserID,
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		DisplayName:         p.DisplayNameWithFamily(),
		FullName:            p.FullName,
		FullAliyaName:       aliyaName,
		FatherFullName:      fatherName,
		Title:               p.Title,
		Gender:              p.Gender,
		ProfileRole:         int(role),
		ReadOnly:            readOnly,
		DefaultFamilyID:     p.DefaultFamilyID,
		DodDay:              p.DodDay,
		DodMonth:            p.DodMonth,
		BarMitzvahed:        p.BarMitzvahed,
		BarMitzvahParashaID: p.BarMitzvahParashaID,
		Phone:               p.Phone,
		Email:               p.Email,
		UserNotes:           p.UserNotes,
		HeadOfHousehold:     p.HeadOfHousehold,
	}
	for _, d := range p.Duties {
		resp.Duties = append(resp.Duties, d.ID)
	}

	if deep {
		if parents, err := h.profiles.Parents(p); err == nil {
			for i := range parents {
				resp.Parents = append(resp.Parents, h.serialize(c, &parents[i], false))
			}
		}
		if spouse, err := h.profiles.Spouse(p); err == nil && spouse != nil {
			flat := h.serialize(c, spouse, false)
			resp.Spouse = &flat
		}
		if children, err := h.profiles.Children(p); err == nil {
			for i := range children {
				resp.Children = append(resp.Children, h.serialize(c, &children[i], false))
			}
		}
	}
	return resp
}

// --- shared response helpers ---

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "profile not found",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func errStatus(c *fiber.Ctx, status int) error {
	msg := "profile not found"
	if status == fiber.StatusForbidden {
		msg = services.ErrPermissionDenied.Error()
	} else if status == fiber.StatusInternalServerError {
		msg = "Internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

// serviceError maps service sentinels to HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		return notFound(c)
	case errors.Is(err, services.ErrPermissionDenied):
		return errStatus(c, fiber.StatusForbidden)
	case errors.Is(err, services.ErrCodeConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrSpouseExists),
		errors.Is(err, services.ErrAlreadyChildOfFamily),
		errors.Is(err, services.ErrAlreadyAssigned),
		errors.Is(err, services.ErrInvalidStatus):
		return badRequest(c, err.Error())
	default:
		slog.Error("unhandled service error", "error", err)
		return internalError(c)
	}
}
