// file: internals/features/organization/companies/dto/company_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/organization/companies/model"
)

// =======================
// Request DTO
// =======================

type CompanyCreateDTO struct {
	CompanyName string  `json:"company_name" validate:"required,min=3,max=150"`
	CompanyCode string  `json:"company_code" validate:"required,min=2,max=24"`
	CompanySlug string  `json:"company_slug" validate:"omitempty,max=100"`
	CompanyBio  *string `json:"company_bio,omitempty"`
	// pointer: bedakan "tidak dikirim" vs "false"
	CompanyIsActive *bool `json:"company_is_active,omitempty"`
}

type CompanyUpdateDTO struct {
	CompanyName     *string `json:"company_name,omitempty" validate:"omitempty,min=3,max=150"`
	CompanyCode     *string `json:"company_code,omitempty" validate:"omitempty,min=2,max=24"`
	CompanySlug     *string `json:"company_slug,omitempty" validate:"omitempty,max=100"`
	CompanyBio      *string `json:"company_bio,omitempty"`
	CompanyIsActive *bool   `json:"company_is_active,omitempty"`
}

type CompanyFilterDTO struct {
	Q      *string `query:"q"      validate:"omitempty,max=100"`
	Active *bool   `query:"active" validate:"omitempty"`
	SortBy *string `query:"sort_by"  validate:"omitempty,oneof=created_at updated_at name code"`
	SortDir *string `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

// =======================
// Response DTO
// =======================

type CompanyResponseDTO struct {
	CompanyID       uuid.UUID `json:"company_id"`
	CompanyName     string    `json:"company_name"`
	CompanyCode     string    `json:"company_code"`
	CompanySlug     string    `json:"company_slug"`
	CompanyBio      *string   `json:"company_bio,omitempty"`
	CompanyIsActive bool      `json:"company_is_active"`

	CompanyCreatedAt time.Time  `json:"company_created_at"`
	CompanyUpdatedAt time.Time  `json:"company_updated_at"`
	CompanyDeletedAt *time.Time `json:"company_deleted_at,omitempty"`
}

// =======================
// Helpers
// =======================

func (p *CompanyCreateDTO) Normalize() {
	p.CompanyName = strings.TrimSpace(p.CompanyName)
	p.CompanyCode = strings.ToUpper(strings.TrimSpace(p.CompanyCode))
	p.CompanySlug = strings.ToLower(strings.TrimSpace(p.CompanySlug))
}

func (p *CompanyCreateDTO) ToModel() model.CompanyModel {
	isActive := true
	if p.CompanyIsActive != nil {
		isActive = *p.CompanyIsActive
	}
	return model.CompanyModel{
		CompanyName:     p.CompanyName,
		CompanyCode:     p.CompanyCode,
		CompanySlug:     p.CompanySlug,
		CompanyBio:      p.CompanyBio,
		CompanyIsActive: isActive,
	}
}

func (u *CompanyUpdateDTO) ApplyUpdates(ent *model.CompanyModel) {
	if u.CompanyName != nil {
		ent.CompanyName = strings.TrimSpace(*u.CompanyName)
	}
	if u.CompanyCode != nil {
		ent.CompanyCode = strings.ToUpper(strings.TrimSpace(*u.CompanyCode))
	}
	if u.CompanySlug != nil {
		ent.CompanySlug = strings.ToLower(strings.TrimSpace(*u.CompanySlug))
	}
	if u.CompanyBio != nil {
		ent.CompanyBio = u.CompanyBio
	}
	if u.CompanyIsActive != nil {
		ent.CompanyIsActive = *u.CompanyIsActive
	}
}

// Mapper entity -> response
func FromCompanyModel(ent model.CompanyModel) CompanyResponseDTO {
	resp := CompanyResponseDTO{
		CompanyID:        ent.CompanyID,
		CompanyName:      ent.CompanyName,
		CompanyCode:      ent.CompanyCode,
		CompanySlug:      ent.CompanySlug,
		CompanyBio:       ent.CompanyBio,
		CompanyIsActive:  ent.CompanyIsActive,
		CompanyCreatedAt: ent.CompanyCreatedAt,
		CompanyUpdatedAt: ent.CompanyUpdatedAt,
	}
	if ent.CompanyDeletedAt.Valid {
		t := ent.CompanyDeletedAt.Time
		resp.CompanyDeletedAt = &t
	}
	return resp
}

func FromCompanyModels(list []model.CompanyModel) []CompanyResponseDTO {
	out := make([]CompanyResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromCompanyModel(it))
	}
	return out
}
