// file: internals/features/school/departments/model/department_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DepartmentModel merepresentasikan tabel departments.
// Parent id self-referential membentuk pohon; siklus dijaga saat
// membangun pohon, bukan sebagai constraint DB.
type DepartmentModel struct {
	// ============ PK & Tenant ============
	DepartmentID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:department_id" json:"department_id"`
	DepartmentCompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:department_company_id" json:"department_company_id"`

	// ============ Identitas ============
	DepartmentName string `gorm:"type:varchar(120);not null;column:department_name" json:"department_name"`
	DepartmentCode string `gorm:"type:varchar(24);not null;column:department_code" json:"department_code"`

	// Struktur pohon
	DepartmentParentID *uuid.UUID `gorm:"type:uuid;index;column:department_parent_id" json:"department_parent_id,omitempty"`

	// Kepala departemen
	DepartmentHeadName  *string `gorm:"type:varchar(120);column:department_head_name" json:"department_head_name,omitempty"`
	DepartmentHeadPhone *string `gorm:"type:varchar(30);column:department_head_phone" json:"department_head_phone,omitempty"`
	DepartmentHeadEmail *string `gorm:"type:varchar(120);column:department_head_email" json:"department_head_email,omitempty"`

	// ============ Status ============
	DepartmentIsActive bool `gorm:"not null;default:true;column:department_is_active" json:"department_is_active"`

	// ============ Audit / Soft delete ============
	DepartmentCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:department_created_at" json:"department_created_at"`
	DepartmentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:department_updated_at" json:"department_updated_at"`
	DepartmentDeletedAt gorm.DeletedAt `gorm:"column:department_deleted_at;index" json:"department_deleted_at,omitempty"`
}

func (DepartmentModel) TableName() string { return "departments" }

func (m *DepartmentModel) BeforeSave(tx *gorm.DB) error {
	m.DepartmentName = strings.TrimSpace(m.DepartmentName)
	m.DepartmentCode = strings.ToUpper(strings.TrimSpace(m.DepartmentCode))
	if m.DepartmentName == "" {
		return errors.New("department_name wajib diisi")
	}
	if m.DepartmentCode == "" {
		return errors.New("department_code wajib diisi")
	}
	// Minimal: tidak boleh jadi parent dirinya sendiri
	if m.DepartmentParentID != nil && *m.DepartmentParentID == m.DepartmentID {
		return errors.New("department_parent_id tidak boleh menunjuk diri sendiri")
	}
	return nil
}

/* ============================================
   Junctions: department_schools & department_branches
   Murni pasangan id; lifecycle milik entity departemen.
============================================ */

type DepartmentSchoolModel struct {
	DepartmentSchoolDepartmentID uuid.UUID `gorm:"type:uuid;primaryKey;column:department_school_department_id" json:"department_school_department_id"`
	DepartmentSchoolSchoolID     uuid.UUID `gorm:"type:uuid;primaryKey;column:department_school_school_id" json:"department_school_school_id"`
}

func (DepartmentSchoolModel) TableName() string { return "department_schools" }

type DepartmentBranchModel struct {
	DepartmentBranchDepartmentID uuid.UUID `gorm:"type:uuid;primaryKey;column:department_branch_department_id" json:"department_branch_department_id"`
	DepartmentBranchBranchID     uuid.UUID `gorm:"type:uuid;primaryKey;column:department_branch_branch_id" json:"department_branch_branch_id"`
}

func (DepartmentBranchModel) TableName() string { return "department_branches" }
