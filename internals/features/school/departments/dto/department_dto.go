// file: internals/features/school/departments/dto/department_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/departments/model"
)

// =======================
// Request DTO
// =======================

type DepartmentCreateDTO struct {
	DepartmentName     string     `json:"department_name" validate:"required,min=1,max=120"`
	DepartmentCode     string     `json:"department_code" validate:"required,min=1,max=24"`
	DepartmentParentID *uuid.UUID `json:"department_parent_id,omitempty"`

	DepartmentHeadName  *string `json:"department_head_name,omitempty" validate:"omitempty,max=120"`
	DepartmentHeadPhone *string `json:"department_head_phone,omitempty" validate:"omitempty,max=30"`
	DepartmentHeadEmail *string `json:"department_head_email,omitempty" validate:"omitempty,email,max=120"`

	DepartmentIsActive *bool `json:"department_is_active,omitempty"`

	// Relasi many-to-many (replace-all saat update)
	SchoolIDs []uuid.UUID `json:"school_ids" validate:"omitempty,dive,required"`
	BranchIDs []uuid.UUID `json:"branch_ids" validate:"omitempty,dive,required"`
}

type DepartmentUpdateDTO struct {
	DepartmentName     *string    `json:"department_name,omitempty" validate:"omitempty,min=1,max=120"`
	DepartmentCode     *string    `json:"department_code,omitempty" validate:"omitempty,min=1,max=24"`
	DepartmentParentID *uuid.UUID `json:"department_parent_id,omitempty"`
	ClearParent        bool       `json:"clear_parent,omitempty"`

	DepartmentHeadName  *string `json:"department_head_name,omitempty" validate:"omitempty,max=120"`
	DepartmentHeadPhone *string `json:"department_head_phone,omitempty" validate:"omitempty,max=30"`
	DepartmentHeadEmail *string `json:"department_head_email,omitempty" validate:"omitempty,email,max=120"`

	DepartmentIsActive *bool `json:"department_is_active,omitempty"`

	// nil = junction tidak disentuh; [] = kosongkan relasi
	SchoolIDs *[]uuid.UUID `json:"school_ids,omitempty"`
	BranchIDs *[]uuid.UUID `json:"branch_ids,omitempty"`
}

type DepartmentFilterDTO struct {
	Q        *string    `query:"q"         validate:"omitempty,max=100"`
	Active   *bool      `query:"active"    validate:"omitempty"`
	SchoolID *uuid.UUID `query:"school_id" validate:"omitempty"`
	BranchID *uuid.UUID `query:"branch_id" validate:"omitempty"`
}

// =======================
// Response DTO
// =======================

type DepartmentResponseDTO struct {
	DepartmentID        uuid.UUID  `json:"department_id"`
	DepartmentCompanyID uuid.UUID  `json:"department_company_id"`
	DepartmentName      string     `json:"department_name"`
	DepartmentCode      string     `json:"department_code"`
	DepartmentParentID  *uuid.UUID `json:"department_parent_id,omitempty"`

	DepartmentHeadName  *string `json:"department_head_name,omitempty"`
	DepartmentHeadPhone *string `json:"department_head_phone,omitempty"`
	DepartmentHeadEmail *string `json:"department_head_email,omitempty"`

	DepartmentIsActive bool `json:"department_is_active"`

	SchoolIDs   []uuid.UUID `json:"school_ids"`
	SchoolNames []string    `json:"school_names,omitempty"`
	BranchIDs   []uuid.UUID `json:"branch_ids"`

	DepartmentCreatedAt time.Time  `json:"department_created_at"`
	DepartmentUpdatedAt time.Time  `json:"department_updated_at"`
	DepartmentDeletedAt *time.Time `json:"department_deleted_at,omitempty"`
}

// Simpul pohon untuk endpoint tree
type DepartmentTreeNodeDTO struct {
	DepartmentID       uuid.UUID               `json:"department_id"`
	DepartmentName     string                  `json:"department_name"`
	DepartmentCode     string                  `json:"department_code"`
	DepartmentParentID *uuid.UUID              `json:"department_parent_id,omitempty"`
	DepartmentIsActive bool                    `json:"department_is_active"`
	Children           []DepartmentTreeNodeDTO `json:"children"`
}

// =======================
// Helpers
// =======================

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (p *DepartmentCreateDTO) Normalize() {
	p.DepartmentName = strings.TrimSpace(p.DepartmentName)
	p.DepartmentCode = strings.ToUpper(strings.TrimSpace(p.DepartmentCode))
	p.DepartmentHeadName = trimPtr(p.DepartmentHeadName)
	p.DepartmentHeadPhone = trimPtr(p.DepartmentHeadPhone)
	p.DepartmentHeadEmail = trimPtr(p.DepartmentHeadEmail)
}

func (p *DepartmentCreateDTO) ToModel(companyID uuid.UUID) model.DepartmentModel {
	isActive := true
	if p.DepartmentIsActive != nil {
		isActive = *p.DepartmentIsActive
	}
	return model.DepartmentModel{
		DepartmentCompanyID: companyID,
		DepartmentName:      p.DepartmentName,
		DepartmentCode:      p.DepartmentCode,
		DepartmentParentID:  p.DepartmentParentID,
		DepartmentHeadName:  p.DepartmentHeadName,
		DepartmentHeadPhone: p.DepartmentHeadPhone,
		DepartmentHeadEmail: p.DepartmentHeadEmail,
		DepartmentIsActive:  isActive,
	}
}

func (u *DepartmentUpdateDTO) ApplyUpdates(ent *model.DepartmentModel) {
	if u.DepartmentName != nil {
		ent.DepartmentName = strings.TrimSpace(*u.DepartmentName)
	}
	if u.DepartmentCode != nil {
		ent.DepartmentCode = strings.ToUpper(strings.TrimSpace(*u.DepartmentCode))
	}
	if u.ClearParent {
		ent.DepartmentParentID = nil
	} else if u.DepartmentParentID != nil {
		ent.DepartmentParentID = u.DepartmentParentID
	}
	if u.DepartmentHeadName != nil {
		ent.DepartmentHeadName = trimPtr(u.DepartmentHeadName)
	}
	if u.DepartmentHeadPhone != nil {
		ent.DepartmentHeadPhone = trimPtr(u.DepartmentHeadPhone)
	}
	if u.DepartmentHeadEmail != nil {
		ent.DepartmentHeadEmail = trimPtr(u.DepartmentHeadEmail)
	}
	if u.DepartmentIsActive != nil {
		ent.DepartmentIsActive = *u.DepartmentIsActive
	}
}

func FromDepartmentModel(ent model.DepartmentModel, schoolIDs []uuid.UUID, schoolNames []string, branchIDs []uuid.UUID) DepartmentResponseDTO {
	if schoolIDs == nil {
		schoolIDs = []uuid.UUID{}
	}
	if branchIDs == nil {
		branchIDs = []uuid.UUID{}
	}
	resp := DepartmentResponseDTO{
		DepartmentID:        ent.DepartmentID,
		DepartmentCompanyID: ent.DepartmentCompanyID,
		DepartmentName:      ent.DepartmentName,
		DepartmentCode:      ent.DepartmentCode,
		DepartmentParentID:  ent.DepartmentParentID,
		DepartmentHeadName:  ent.DepartmentHeadName,
		DepartmentHeadPhone: ent.DepartmentHeadPhone,
		DepartmentHeadEmail: ent.DepartmentHeadEmail,
		DepartmentIsActive:  ent.DepartmentIsActive,
		SchoolIDs:           schoolIDs,
		SchoolNames:         schoolNames,
		BranchIDs:           branchIDs,
		DepartmentCreatedAt: ent.DepartmentCreatedAt,
		DepartmentUpdatedAt: ent.DepartmentUpdatedAt,
	}
	if ent.DepartmentDeletedAt.Valid {
		t := ent.DepartmentDeletedAt.Time
		resp.DepartmentDeletedAt = &t
	}
	return resp
}
