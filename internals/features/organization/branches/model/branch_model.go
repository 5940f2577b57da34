// file: internals/features/organization/branches/model/branch_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BranchModel merepresentasikan tabel branches (anak dari school).
type BranchModel struct {
	// ============ PK & Tenant ============
	BranchID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:branch_id" json:"branch_id"`
	BranchCompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:branch_company_id" json:"branch_company_id"`

	// Parent
	BranchSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:branch_school_id" json:"branch_school_id"`

	// ============ Identitas ============
	BranchName string `gorm:"type:varchar(150);not null;column:branch_name" json:"branch_name"`
	BranchCode string `gorm:"type:varchar(24);not null;column:branch_code" json:"branch_code"`

	// ============ Status ============
	BranchIsActive bool `gorm:"not null;default:true;column:branch_is_active" json:"branch_is_active"`

	// ============ Audit / Soft delete ============
	BranchCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:branch_created_at" json:"branch_created_at"`
	BranchUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:branch_updated_at" json:"branch_updated_at"`
	BranchDeletedAt gorm.DeletedAt `gorm:"column:branch_deleted_at;index" json:"branch_deleted_at,omitempty"`
}

func (BranchModel) TableName() string { return "branches" }

func (m *BranchModel) BeforeSave(tx *gorm.DB) error {
	m.BranchName = strings.TrimSpace(m.BranchName)
	m.BranchCode = strings.ToUpper(strings.TrimSpace(m.BranchCode))
	if m.BranchName == "" {
		return errors.New("branch_name wajib diisi")
	}
	if m.BranchCode == "" {
		return errors.New("branch_code wajib diisi")
	}
	return nil
}

// BranchProfileModel: tabel extension 1:1 dengan branches.
type BranchProfileModel struct {
	BranchProfileBranchID uuid.UUID `gorm:"type:uuid;primaryKey;column:branch_profile_branch_id" json:"branch_profile_branch_id"`

	BranchProfilePhone   *string `gorm:"type:varchar(30);column:branch_profile_phone" json:"branch_profile_phone,omitempty"`
	BranchProfileAddress *string `gorm:"type:text;column:branch_profile_address" json:"branch_profile_address,omitempty"`
	BranchProfileCity    *string `gorm:"type:varchar(80);column:branch_profile_city" json:"branch_profile_city,omitempty"`

	BranchProfileStudentCapacity int `gorm:"type:integer;not null;default:0;column:branch_profile_student_capacity" json:"branch_profile_student_capacity"`

	BranchProfileExtra datatypes.JSON `gorm:"type:jsonb;column:branch_profile_extra" json:"branch_profile_extra,omitempty"`

	BranchProfileCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:branch_profile_created_at" json:"branch_profile_created_at"`
	BranchProfileUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:branch_profile_updated_at" json:"branch_profile_updated_at"`
}

func (BranchProfileModel) TableName() string { return "branch_profiles" }
