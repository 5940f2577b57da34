// file: internals/features/school/grade_levels/dto/grade_level_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/grade_levels/model"
)

// =======================
// Request DTO
// =======================

type GradeLevelCreateDTO struct {
	GradeLevelName           string `json:"grade_level_name" validate:"required,min=1,max=120"`
	GradeLevelCode           string `json:"grade_level_code" validate:"required,min=1,max=24"`
	GradeLevelOrder          int    `json:"grade_level_order" validate:"gte=0"`
	GradeLevelEducationLevel string `json:"grade_level_education_level" validate:"required,oneof=tk sd smp sma smk"`
	GradeLevelStudentCapacity int   `json:"grade_level_student_capacity" validate:"gte=0"`
	GradeLevelIsActive       *bool  `json:"grade_level_is_active,omitempty"`

	// Sekolah yang memakai tingkat ini (junction, replace-all saat update)
	SchoolIDs []uuid.UUID `json:"school_ids" validate:"omitempty,dive,required"`
}

type GradeLevelUpdateDTO struct {
	GradeLevelName            *string `json:"grade_level_name,omitempty" validate:"omitempty,min=1,max=120"`
	GradeLevelCode            *string `json:"grade_level_code,omitempty" validate:"omitempty,min=1,max=24"`
	GradeLevelOrder           *int    `json:"grade_level_order,omitempty" validate:"omitempty,gte=0"`
	GradeLevelEducationLevel  *string `json:"grade_level_education_level,omitempty" validate:"omitempty,oneof=tk sd smp sma smk"`
	GradeLevelStudentCapacity *int    `json:"grade_level_student_capacity,omitempty" validate:"omitempty,gte=0"`
	GradeLevelIsActive        *bool   `json:"grade_level_is_active,omitempty"`

	// nil = junction tidak disentuh; [] = kosongkan relasi
	SchoolIDs *[]uuid.UUID `json:"school_ids,omitempty"`
}

type GradeLevelFilterDTO struct {
	Q              *string    `query:"q"               validate:"omitempty,max=100"`
	Active         *bool      `query:"active"          validate:"omitempty"`
	EducationLevel *string    `query:"education_level" validate:"omitempty,oneof=tk sd smp sma smk"`
	SchoolID       *uuid.UUID `query:"school_id"       validate:"omitempty"`
}

// =======================
// Response DTO
// =======================

type GradeLevelResponseDTO struct {
	GradeLevelID              uuid.UUID `json:"grade_level_id"`
	GradeLevelCompanyID       uuid.UUID `json:"grade_level_company_id"`
	GradeLevelName            string    `json:"grade_level_name"`
	GradeLevelCode            string    `json:"grade_level_code"`
	GradeLevelOrder           int       `json:"grade_level_order"`
	GradeLevelEducationLevel  string    `json:"grade_level_education_level"`
	GradeLevelStudentCapacity int       `json:"grade_level_student_capacity"`
	GradeLevelIsActive        bool      `json:"grade_level_is_active"`

	// Relasi sekolah (id + nama terresolve)
	SchoolIDs   []uuid.UUID `json:"school_ids"`
	SchoolNames []string    `json:"school_names,omitempty"`

	GradeLevelCreatedAt time.Time  `json:"grade_level_created_at"`
	GradeLevelUpdatedAt time.Time  `json:"grade_level_updated_at"`
	GradeLevelDeletedAt *time.Time `json:"grade_level_deleted_at,omitempty"`
}

// =======================
// Helpers
// =======================

func (p *GradeLevelCreateDTO) Normalize() {
	p.GradeLevelName = strings.TrimSpace(p.GradeLevelName)
	p.GradeLevelCode = strings.ToUpper(strings.TrimSpace(p.GradeLevelCode))
	p.GradeLevelEducationLevel = strings.ToLower(strings.TrimSpace(p.GradeLevelEducationLevel))
}

func (p *GradeLevelCreateDTO) ToModel(companyID uuid.UUID) model.GradeLevelModel {
	isActive := true
	if p.GradeLevelIsActive != nil {
		isActive = *p.GradeLevelIsActive
	}
	return model.GradeLevelModel{
		GradeLevelCompanyID:       companyID,
		GradeLevelName:            p.GradeLevelName,
		GradeLevelCode:            p.GradeLevelCode,
		GradeLevelOrder:           p.GradeLevelOrder,
		GradeLevelEducationLevel:  p.GradeLevelEducationLevel,
		GradeLevelStudentCapacity: p.GradeLevelStudentCapacity,
		GradeLevelIsActive:        isActive,
	}
}

func (u *GradeLevelUpdateDTO) ApplyUpdates(ent *model.GradeLevelModel) {
	if u.GradeLevelName != nil {
		ent.GradeLevelName = strings.TrimSpace(*u.GradeLevelName)
	}
	if u.GradeLevelCode != nil {
		ent.GradeLevelCode = strings.ToUpper(strings.TrimSpace(*u.GradeLevelCode))
	}
	if u.GradeLevelOrder != nil {
		ent.GradeLevelOrder = *u.GradeLevelOrder
	}
	if u.GradeLevelEducationLevel != nil {
		ent.GradeLevelEducationLevel = strings.ToLower(strings.TrimSpace(*u.GradeLevelEducationLevel))
	}
	if u.GradeLevelStudentCapacity != nil {
		ent.GradeLevelStudentCapacity = *u.GradeLevelStudentCapacity
	}
	if u.GradeLevelIsActive != nil {
		ent.GradeLevelIsActive = *u.GradeLevelIsActive
	}
}

func FromGradeLevelModel(ent model.GradeLevelModel, schoolIDs []uuid.UUID, schoolNames []string) GradeLevelResponseDTO {
	if schoolIDs == nil {
		schoolIDs = []uuid.UUID{}
	}
	resp := GradeLevelResponseDTO{
		GradeLevelID:              ent.GradeLevelID,
		GradeLevelCompanyID:       ent.GradeLevelCompanyID,
		GradeLevelName:            ent.GradeLevelName,
		GradeLevelCode:            ent.GradeLevelCode,
		GradeLevelOrder:           ent.GradeLevelOrder,
		GradeLevelEducationLevel:  ent.GradeLevelEducationLevel,
		GradeLevelStudentCapacity: ent.GradeLevelStudentCapacity,
		GradeLevelIsActive:        ent.GradeLevelIsActive,
		SchoolIDs:                 schoolIDs,
		SchoolNames:               schoolNames,
		GradeLevelCreatedAt:       ent.GradeLevelCreatedAt,
		GradeLevelUpdatedAt:       ent.GradeLevelUpdatedAt,
	}
	if ent.GradeLevelDeletedAt.Valid {
		t := ent.GradeLevelDeletedAt.Time
		resp.GradeLevelDeletedAt = &t
	}
	return resp
}
