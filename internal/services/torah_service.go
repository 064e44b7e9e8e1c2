package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/itamarben/shul-backend/internal/models"
	"gorm.io/gorm"
)

// TorahService is the parasha/segment lookup surface.
type TorahService struct {
	db *gorm.DB
}

func NewTorahService(db *gorm.DB) *TorahService {
	return &TorahService{db: db}
}

func (s *TorahService) ListParashot() ([]models.Parasha, error) {
	var parashot []models.Parasha
	if err := s.db.Order("name").Find(&parashot).Error; err != nil {
		return nil, fmt.Errorf("failed to list parashot: %w", err)
	}
	return parashot, nil
}

func (s *TorahService) ListSegments(parashaID uuid.UUID) ([]models.Segment, error) {
	var segments []models.Segment
	if err := s.db.Where("parasha_id = ?", parashaID).Order("segment_type").Find(&segments).Error; err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}
	return segments, nil
}

func (s *TorahService) CreateParasha(name string) (*models.Parasha, error) {
	parasha := models.Parasha{ID: uuid.New(), Name: name}
	if err := s.db.Create(&parasha).Error; err != nil {
		return nil, fmt.Errorf("failed to create parasha: %w", err)
	}
	return &parasha, nil
}

func (s *TorahService) CreateSegment(parashaID uuid.UUID, segmentType int, startPos, endPos string, totalPsukim int) (*models.Segment, error) {
	if segmentType < models.SegmentRishon || segmentType > models.SegmentHaftorah {
		return nil, ErrInvalidStatus
	}
	segment := models.Segment{
		ID:          uuid.New(),
		ParashaID:   parashaID,
		SegmentType: segmentType,
		StartPos:    startPos,
		EndPos:      endPos,
		TotalPsukim: totalPsukim,
	}
	if err := s.db.Create(&segment).Error; err != nil {
		return nil, fmt.Errorf("failed to create segment: %w", err)
	}
	return &segment, nil
}
