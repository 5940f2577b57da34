// file: internals/features/organization/schools/dto/school_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/organization/schools/model"
)

// =======================
// Request DTO
// =======================

type SchoolCreateDTO struct {
	SchoolName string  `json:"school_name" validate:"required,min=3,max=150"`
	SchoolCode string  `json:"school_code" validate:"required,min=2,max=24"`
	SchoolSlug string  `json:"school_slug" validate:"omitempty,max=100"`
	SchoolBio  *string `json:"school_bio,omitempty"`
	SchoolIsActive *bool `json:"school_is_active,omitempty"`
}

type SchoolUpdateDTO struct {
	SchoolName     *string `json:"school_name,omitempty" validate:"omitempty,min=3,max=150"`
	SchoolCode     *string `json:"school_code,omitempty" validate:"omitempty,min=2,max=24"`
	SchoolSlug     *string `json:"school_slug,omitempty" validate:"omitempty,max=100"`
	SchoolBio      *string `json:"school_bio,omitempty"`
	SchoolIsActive *bool   `json:"school_is_active,omitempty"`
}

type SchoolFilterDTO struct {
	Q       *string `query:"q"        validate:"omitempty,max=100"`
	Active  *bool   `query:"active"   validate:"omitempty"`
	SortBy  *string `query:"sort_by"  validate:"omitempty,oneof=created_at updated_at name code"`
	SortDir *string `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

// =======================
// Response DTO
// =======================

type SchoolResponseDTO struct {
	SchoolID        uuid.UUID `json:"school_id"`
	SchoolCompanyID uuid.UUID `json:"school_company_id"`
	SchoolName      string    `json:"school_name"`
	SchoolCode      string    `json:"school_code"`
	SchoolSlug      string    `json:"school_slug"`
	SchoolBio       *string   `json:"school_bio,omitempty"`
	SchoolIsActive  bool      `json:"school_is_active"`

	SchoolCreatedAt time.Time  `json:"school_created_at"`
	SchoolUpdatedAt time.Time  `json:"school_updated_at"`
	SchoolDeletedAt *time.Time `json:"school_deleted_at,omitempty"`
}

// =======================
// Helpers
// =======================

func (p *SchoolCreateDTO) Normalize() {
	p.SchoolName = strings.TrimSpace(p.SchoolName)
	p.SchoolCode = strings.ToUpper(strings.TrimSpace(p.SchoolCode))
	p.SchoolSlug = strings.ToLower(strings.TrimSpace(p.SchoolSlug))
}

func (p *SchoolCreateDTO) ToModel(companyID uuid.UUID) model.SchoolModel {
	isActive := true
	if p.SchoolIsActive != nil {
		isActive = *p.SchoolIsActive
	}
	return model.SchoolModel{
		SchoolCompanyID: companyID,
		SchoolName:      p.SchoolName,
		SchoolCode:      p.SchoolCode,
		SchoolSlug:      p.SchoolSlug,
		SchoolBio:       p.SchoolBio,
		SchoolIsActive:  isActive,
	}
}

func (u *SchoolUpdateDTO) ApplyUpdates(ent *model.SchoolModel) {
	if u.SchoolName != nil {
		ent.SchoolName = strings.TrimSpace(*u.SchoolName)
	}
	if u.SchoolCode != nil {
		ent.SchoolCode = strings.ToUpper(strings.TrimSpace(*u.SchoolCode))
	}
	if u.SchoolSlug != nil {
		ent.SchoolSlug = strings.ToLower(strings.TrimSpace(*u.SchoolSlug))
	}
	if u.SchoolBio != nil {
		ent.SchoolBio = u.SchoolBio
	}
	if u.SchoolIsActive != nil {
		ent.SchoolIsActive = *u.SchoolIsActive
	}
}

func FromSchoolModel(ent model.SchoolModel) SchoolResponseDTO {
	resp := SchoolResponseDTO{
		SchoolID:        ent.SchoolID,
		SchoolCompanyID: ent.SchoolCompanyID,
		SchoolName:      ent.SchoolName,
		SchoolCode:      ent.SchoolCode,
		SchoolSlug:      ent.SchoolSlug,
		SchoolBio:       ent.SchoolBio,
		SchoolIsActive:  ent.SchoolIsActive,
		SchoolCreatedAt: ent.SchoolCreatedAt,
		SchoolUpdatedAt: ent.SchoolUpdatedAt,
	}
	if ent.SchoolDeletedAt.Valid {
		t := ent.SchoolDeletedAt.Time
		resp.SchoolDeletedAt = &t
	}
	return resp
}

func FromSchoolModels(list []model.SchoolModel) []SchoolResponseDTO {
	out := make([]SchoolResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromSchoolModel(it))
	}
	return out
}
