// file: internals/features/school/academic_years/dto/academic_year_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/academic_years/model"
)

// =======================
// Request DTO
// =======================

type AcademicYearCreateDTO struct {
	AcademicYearName      string    `json:"academic_year_name" validate:"required,min=4,max=100"`
	AcademicYearStartDate time.Time `json:"academic_year_start_date" validate:"required"`
	AcademicYearEndDate   time.Time `json:"academic_year_end_date" validate:"required,gtfield=AcademicYearStartDate"`
	AcademicYearTermCount int       `json:"academic_year_term_count" validate:"omitempty,gte=1,lte=4"`
	AcademicYearIsActive  *bool     `json:"academic_year_is_active,omitempty"`
}

type AcademicYearUpdateDTO struct {
	AcademicYearName      *string    `json:"academic_year_name,omitempty" validate:"omitempty,min=4,max=100"`
	AcademicYearStartDate *time.Time `json:"academic_year_start_date,omitempty"`
	AcademicYearEndDate   *time.Time `json:"academic_year_end_date,omitempty"`
	AcademicYearTermCount *int       `json:"academic_year_term_count,omitempty" validate:"omitempty,gte=1,lte=4"`
	AcademicYearIsActive  *bool      `json:"academic_year_is_active,omitempty"`
}

type AcademicYearFilterDTO struct {
	Q      *string `query:"q"      validate:"omitempty,max=100"`
	Active *bool   `query:"active" validate:"omitempty"`
}

// =======================
// Response DTO
// =======================

type AcademicYearResponseDTO struct {
	AcademicYearID        uuid.UUID  `json:"academic_year_id"`
	AcademicYearCompanyID uuid.UUID  `json:"academic_year_company_id"`
	AcademicYearName      string     `json:"academic_year_name"`
	AcademicYearStartDate time.Time  `json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time  `json:"academic_year_end_date"`
	AcademicYearTermCount int        `json:"academic_year_term_count"`
	AcademicYearIsActive  bool       `json:"academic_year_is_active"`
	AcademicYearCreatedAt time.Time  `json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time  `json:"academic_year_updated_at"`
	AcademicYearDeletedAt *time.Time `json:"academic_year_deleted_at,omitempty"`
}

// =======================
// Helpers
// =======================

func (p *AcademicYearCreateDTO) Normalize() {
	p.AcademicYearName = strings.TrimSpace(p.AcademicYearName)
	if p.AcademicYearTermCount == 0 {
		p.AcademicYearTermCount = 2
	}
}

func (p *AcademicYearCreateDTO) ToModel(companyID uuid.UUID) model.AcademicYearModel {
	isActive := false
	if p.AcademicYearIsActive != nil {
		isActive = *p.AcademicYearIsActive
	}
	return model.AcademicYearModel{
		AcademicYearCompanyID: companyID,
		AcademicYearName:      p.AcademicYearName,
		AcademicYearStartDate: p.AcademicYearStartDate,
		AcademicYearEndDate:   p.AcademicYearEndDate,
		AcademicYearTermCount: p.AcademicYearTermCount,
		AcademicYearIsActive:  isActive,
	}
}

func (u *AcademicYearUpdateDTO) ApplyUpdates(ent *model.AcademicYearModel) {
	if u.AcademicYearName != nil {
		ent.AcademicYearName = strings.TrimSpace(*u.AcademicYearName)
	}
	if u.AcademicYearStartDate != nil {
		ent.AcademicYearStartDate = *u.AcademicYearStartDate
	}
	if u.AcademicYearEndDate != nil {
		ent.AcademicYearEndDate = *u.AcademicYearEndDate
	}
	if u.AcademicYearTermCount != nil {
		ent.AcademicYearTermCount = *u.AcademicYearTermCount
	}
	if u.AcademicYearIsActive != nil {
		ent.AcademicYearIsActive = *u.AcademicYearIsActive
	}
}

func FromAcademicYearModel(ent model.AcademicYearModel) AcademicYearResponseDTO {
	resp := AcademicYearResponseDTO{
		AcademicYearID:        ent.AcademicYearID,
		AcademicYearCompanyID: ent.AcademicYearCompanyID,
		AcademicYearName:      ent.AcademicYearName,
		AcademicYearStartDate: ent.AcademicYearStartDate,
		AcademicYearEndDate:   ent.AcademicYearEndDate,
		AcademicYearTermCount: ent.AcademicYearTermCount,
		AcademicYearIsActive:  ent.AcademicYearIsActive,
		AcademicYearCreatedAt: ent.AcademicYearCreatedAt,
		AcademicYearUpdatedAt: ent.AcademicYearUpdatedAt,
	}
	if ent.AcademicYearDeletedAt.Valid {
		t := ent.AcademicYearDeletedAt.Time
		resp.AcademicYearDeletedAt = &t
	}
	return resp
}

func FromAcademicYearModels(list []model.AcademicYearModel) []AcademicYearResponseDTO {
	out := make([]AcademicYearResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromAcademicYearModel(it))
	}
	return out
}
