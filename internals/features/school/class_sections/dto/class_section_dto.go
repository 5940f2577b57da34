// file: internals/features/school/class_sections/dto/class_section_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/class_sections/model"
)

// =======================
// Request DTO
// =======================

type ClassSectionCreateDTO struct {
	ClassSectionSchoolID       uuid.UUID `json:"class_section_school_id" validate:"required"`
	ClassSectionGradeLevelID   uuid.UUID `json:"class_section_grade_level_id" validate:"required"`
	ClassSectionAcademicYearID uuid.UUID `json:"class_section_academic_year_id" validate:"required"`

	ClassSectionName       string `json:"class_section_name" validate:"required,min=1,max=120"`
	ClassSectionCapacity   int    `json:"class_section_capacity" validate:"gte=0"`
	ClassSectionEnrollment int    `json:"class_section_enrollment" validate:"gte=0"`
	ClassSectionStatus     string `json:"class_section_status" validate:"omitempty,oneof=active inactive archived"`
}

type ClassSectionUpdateDTO struct {
	ClassSectionSchoolID       *uuid.UUID `json:"class_section_school_id,omitempty"`
	ClassSectionGradeLevelID   *uuid.UUID `json:"class_section_grade_level_id,omitempty"`
	ClassSectionAcademicYearID *uuid.UUID `json:"class_section_academic_year_id,omitempty"`

	ClassSectionName       *string `json:"class_section_name,omitempty" validate:"omitempty,min=1,max=120"`
	ClassSectionCapacity   *int    `json:"class_section_capacity,omitempty" validate:"omitempty,gte=0"`
	ClassSectionEnrollment *int    `json:"class_section_enrollment,omitempty" validate:"omitempty,gte=0"`
	ClassSectionStatus     *string `json:"class_section_status,omitempty" validate:"omitempty,oneof=active inactive archived"`
}

type ClassSectionFilterDTO struct {
	Q              *string    `query:"q"                validate:"omitempty,max=100"`
	Status         *string    `query:"status"           validate:"omitempty,oneof=active inactive archived"`
	SchoolID       *uuid.UUID `query:"school_id"        validate:"omitempty"`
	GradeLevelID   *uuid.UUID `query:"grade_level_id"   validate:"omitempty"`
	AcademicYearID *uuid.UUID `query:"academic_year_id" validate:"omitempty"`
}

// =======================
// Response DTO
// =======================

type ClassSectionResponseDTO struct {
	ClassSectionID        uuid.UUID `json:"class_section_id"`
	ClassSectionCompanyID uuid.UUID `json:"class_section_company_id"`

	ClassSectionSchoolID       uuid.UUID `json:"class_section_school_id"`
	ClassSectionGradeLevelID   uuid.UUID `json:"class_section_grade_level_id"`
	ClassSectionAcademicYearID uuid.UUID `json:"class_section_academic_year_id"`

	// Nama terresolve dari FK (expand saat list/detail)
	SchoolName       *string `json:"school_name,omitempty"`
	GradeLevelName   *string `json:"grade_level_name,omitempty"`
	AcademicYearName *string `json:"academic_year_name,omitempty"`

	ClassSectionName       string `json:"class_section_name"`
	ClassSectionCapacity   int    `json:"class_section_capacity"`
	ClassSectionEnrollment int    `json:"class_section_enrollment"`
	ClassSectionStatus     string `json:"class_section_status"`

	// Dihitung saat baca, clamp 0..100
	OccupancyPercent float64 `json:"occupancy_percent"`

	ClassSectionCreatedAt time.Time  `json:"class_section_created_at"`
	ClassSectionUpdatedAt time.Time  `json:"class_section_updated_at"`
	ClassSectionDeletedAt *time.Time `json:"class_section_deleted_at,omitempty"`
}

// =======================
// Helpers
// =======================

func (p *ClassSectionCreateDTO) Normalize() {
	p.ClassSectionName = strings.TrimSpace(p.ClassSectionName)
	p.ClassSectionStatus = strings.ToLower(strings.TrimSpace(p.ClassSectionStatus))
	if p.ClassSectionStatus == "" {
		p.ClassSectionStatus = model.SectionStatusActive
	}
}

func (p *ClassSectionCreateDTO) ToModel(companyID uuid.UUID) model.ClassSectionModel {
	return model.ClassSectionModel{
		ClassSectionCompanyID:      companyID,
		ClassSectionSchoolID:       p.ClassSectionSchoolID,
		ClassSectionGradeLevelID:   p.ClassSectionGradeLevelID,
		ClassSectionAcademicYearID: p.ClassSectionAcademicYearID,
		ClassSectionName:           p.ClassSectionName,
		ClassSectionCapacity:       p.ClassSectionCapacity,
		ClassSectionEnrollment:     p.ClassSectionEnrollment,
		ClassSectionStatus:         p.ClassSectionStatus,
	}
}

func (u *ClassSectionUpdateDTO) ApplyUpdates(ent *model.ClassSectionModel) {
	if u.ClassSectionSchoolID != nil {
		ent.ClassSectionSchoolID = *u.ClassSectionSchoolID
	}
	if u.ClassSectionGradeLevelID != nil {
		ent.ClassSectionGradeLevelID = *u.ClassSectionGradeLevelID
	}
	if u.ClassSectionAcademicYearID != nil {
		ent.ClassSectionAcademicYearID = *u.ClassSectionAcademicYearID
	}
	if u.ClassSectionName != nil {
		ent.ClassSectionName = strings.TrimSpace(*u.ClassSectionName)
	}
	if u.ClassSectionCapacity != nil {
		ent.ClassSectionCapacity = *u.ClassSectionCapacity
	}
	if u.ClassSectionEnrollment != nil {
		ent.ClassSectionEnrollment = *u.ClassSectionEnrollment
	}
	if u.ClassSectionStatus != nil {
		ent.ClassSectionStatus = strings.ToLower(strings.TrimSpace(*u.ClassSectionStatus))
	}
}

func FromClassSectionModel(ent model.ClassSectionModel) ClassSectionResponseDTO {
	resp := ClassSectionResponseDTO{
		ClassSectionID:             ent.ClassSectionID,
		ClassSectionCompanyID:      ent.ClassSectionCompanyID,
		ClassSectionSchoolID:       ent.ClassSectionSchoolID,
		ClassSectionGradeLevelID:   ent.ClassSectionGradeLevelID,
		ClassSectionAcademicYearID: ent.ClassSectionAcademicYearID,
		ClassSectionName:           ent.ClassSectionName,
		ClassSectionCapacity:       ent.ClassSectionCapacity,
		ClassSectionEnrollment:     ent.ClassSectionEnrollment,
		ClassSectionStatus:         ent.ClassSectionStatus,
		OccupancyPercent:           model.OccupancyPercent(ent.ClassSectionEnrollment, ent.ClassSectionCapacity),
		ClassSectionCreatedAt:      ent.ClassSectionCreatedAt,
		ClassSectionUpdatedAt:      ent.ClassSectionUpdatedAt,
	}
	if ent.ClassSectionDeletedAt.Valid {
		t := ent.ClassSectionDeletedAt.Time
		resp.ClassSectionDeletedAt = &t
	}
	return resp
}
