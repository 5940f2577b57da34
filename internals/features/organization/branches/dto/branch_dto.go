// file: internals/features/organization/branches/dto/branch_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/features/organization/branches/model"
)

// =======================
// Request DTO
// =======================

type BranchCreateDTO struct {
	BranchSchoolID uuid.UUID `json:"branch_school_id" validate:"required"`
	BranchName     string    `json:"branch_name" validate:"required,min=3,max=150"`
	BranchCode     string    `json:"branch_code" validate:"required,min=2,max=24"`
	BranchIsActive *bool     `json:"branch_is_active,omitempty"`
}

type BranchUpdateDTO struct {
	BranchSchoolID *uuid.UUID `json:"branch_school_id,omitempty"`
	BranchName     *string    `json:"branch_name,omitempty" validate:"omitempty,min=3,max=150"`
	BranchCode     *string    `json:"branch_code,omitempty" validate:"omitempty,min=2,max=24"`
	BranchIsActive *bool      `json:"branch_is_active,omitempty"`
}

type BranchFilterDTO struct {
	Q        *string `query:"q"         validate:"omitempty,max=100"`
	SchoolID *string `query:"school_id" validate:"omitempty,uuid4"`
	Active   *bool   `query:"active"    validate:"omitempty"`
	SortBy   *string `query:"sort_by"   validate:"omitempty,oneof=created_at updated_at name code"`
	SortDir  *string `query:"sort_dir"  validate:"omitempty,oneof=asc desc"`
}

type BranchProfileUpsertDTO struct {
	BranchProfilePhone           *string        `json:"branch_profile_phone,omitempty" validate:"omitempty,max=30"`
	BranchProfileAddress         *string        `json:"branch_profile_address,omitempty"`
	BranchProfileCity            *string        `json:"branch_profile_city,omitempty" validate:"omitempty,max=80"`
	BranchProfileStudentCapacity *int           `json:"branch_profile_student_capacity,omitempty" validate:"omitempty,min=0"`
	BranchProfileExtra           datatypes.JSON `json:"branch_profile_extra,omitempty"`
}

// =======================
// Response DTO
// =======================

type BranchResponseDTO struct {
	BranchID        uuid.UUID `json:"branch_id"`
	BranchCompanyID uuid.UUID `json:"branch_company_id"`
	BranchSchoolID  uuid.UUID `json:"branch_school_id"`
	// Nama school di-resolve untuk tampilan tabel
	BranchSchoolName *string `json:"branch_school_name,omitempty"`

	BranchName     string `json:"branch_name"`
	BranchCode     string `json:"branch_code"`
	BranchIsActive bool   `json:"branch_is_active"`

	BranchCreatedAt time.Time  `json:"branch_created_at"`
	BranchUpdatedAt time.Time  `json:"branch_updated_at"`
	BranchDeletedAt *time.Time `json:"branch_deleted_at,omitempty"`
}

type BranchProfileResponseDTO struct {
	BranchProfileBranchID        uuid.UUID      `json:"branch_profile_branch_id"`
	BranchProfilePhone           *string        `json:"branch_profile_phone,omitempty"`
	BranchProfileAddress         *string        `json:"branch_profile_address,omitempty"`
	BranchProfileCity            *string        `json:"branch_profile_city,omitempty"`
	BranchProfileStudentCapacity int            `json:"branch_profile_student_capacity"`
	BranchProfileExtra           datatypes.JSON `json:"branch_profile_extra,omitempty"`
	BranchProfileUpdatedAt       time.Time      `json:"branch_profile_updated_at"`
}

// =======================
// Helpers
// =======================

func (p *BranchCreateDTO) Normalize() {
	p.BranchName = strings.TrimSpace(p.BranchName)
	p.BranchCode = strings.ToUpper(strings.TrimSpace(p.BranchCode))
}

func (p *BranchCreateDTO) ToModel(companyID uuid.UUID) model.BranchModel {
	isActive := true
	if p.BranchIsActive != nil {
		isActive = *p.BranchIsActive
	}
	return model.BranchModel{
		BranchCompanyID: companyID,
		BranchSchoolID:  p.BranchSchoolID,
		BranchName:      p.BranchName,
		BranchCode:      p.BranchCode,
		BranchIsActive:  isActive,
	}
}

func (u *BranchUpdateDTO) ApplyUpdates(ent *model.BranchModel) {
	if u.BranchSchoolID != nil {
		ent.BranchSchoolID = *u.BranchSchoolID
	}
	if u.BranchName != nil {
		ent.BranchName = strings.TrimSpace(*u.BranchName)
	}
	if u.BranchCode != nil {
		ent.BranchCode = strings.ToUpper(strings.TrimSpace(*u.BranchCode))
	}
	if u.BranchIsActive != nil {
		ent.BranchIsActive = *u.BranchIsActive
	}
}

func (p *BranchProfileUpsertDTO) ToModel(branchID uuid.UUID) model.BranchProfileModel {
	m := model.BranchProfileModel{
		BranchProfileBranchID: branchID,
		BranchProfilePhone:    p.BranchProfilePhone,
		BranchProfileAddress:  p.BranchProfileAddress,
		BranchProfileCity:     p.BranchProfileCity,
		BranchProfileExtra:    p.BranchProfileExtra,
	}
	if p.BranchProfileStudentCapacity != nil {
		m.BranchProfileStudentCapacity = *p.BranchProfileStudentCapacity
	}
	return m
}

// FromBranchModel: schoolName boleh nil kalau tidak di-resolve.
func FromBranchModel(ent model.BranchModel, schoolName *string) BranchResponseDTO {
	resp := BranchResponseDTO{
		BranchID:         ent.BranchID,
		BranchCompanyID:  ent.BranchCompanyID,
		BranchSchoolID:   ent.BranchSchoolID,
		BranchSchoolName: schoolName,
		BranchName:       ent.BranchName,
		BranchCode:       ent.BranchCode,
		BranchIsActive:   ent.BranchIsActive,
		BranchCreatedAt:  ent.BranchCreatedAt,
		BranchUpdatedAt:  ent.BranchUpdatedAt,
	}
	if ent.BranchDeletedAt.Valid {
		t := ent.BranchDeletedAt.Time
		resp.BranchDeletedAt = &t
	}
	return resp
}

func FromBranchProfileModel(ent model.BranchProfileModel) BranchProfileResponseDTO {
	return BranchProfileResponseDTO{
		BranchProfileBranchID:        ent.BranchProfileBranchID,
		BranchProfilePhone:           ent.BranchProfilePhone,
		BranchProfileAddress:         ent.BranchProfileAddress,
		BranchProfileCity:            ent.BranchProfileCity,
		BranchProfileStudentCapacity: ent.BranchProfileStudentCapacity,
		BranchProfileExtra:           ent.BranchProfileExtra,
		BranchProfileUpdatedAt:       ent.BranchProfileUpdatedAt,
	}
}
