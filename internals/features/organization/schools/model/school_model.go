// file: internals/features/organization/schools/model/school_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolModel merepresentasikan tabel schools (anak dari company).
type SchoolModel struct {
	// ============ PK & Tenant ============
	SchoolID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:school_id" json:"school_id"`
	SchoolCompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:school_company_id" json:"school_company_id"`

	// ============ Identitas ============
	SchoolName string  `gorm:"type:varchar(150);not null;column:school_name" json:"school_name"`
	SchoolCode string  `gorm:"type:varchar(24);not null;column:school_code" json:"school_code"`
	SchoolSlug string  `gorm:"type:varchar(100);not null;column:school_slug" json:"school_slug"`
	SchoolBio  *string `gorm:"type:text;column:school_bio" json:"school_bio,omitempty"`

	// ============ Status ============
	SchoolIsActive bool `gorm:"not null;default:true;column:school_is_active" json:"school_is_active"`

	// ============ Audit / Soft delete ============
	SchoolCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:school_created_at" json:"school_created_at"`
	SchoolUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:school_updated_at" json:"school_updated_at"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"school_deleted_at,omitempty"`
}

func (SchoolModel) TableName() string { return "schools" }

func (m *SchoolModel) BeforeSave(tx *gorm.DB) error {
	m.SchoolName = strings.TrimSpace(m.SchoolName)
	m.SchoolCode = strings.ToUpper(strings.TrimSpace(m.SchoolCode))
	if m.SchoolName == "" {
		return errors.New("school_name wajib diisi")
	}
	if m.SchoolCode == "" {
		return errors.New("school_code wajib diisi")
	}
	if m.SchoolBio != nil {
		b := strings.TrimSpace(*m.SchoolBio)
		if b == "" {
			m.SchoolBio = nil
		} else {
			m.SchoolBio = &b
		}
	}
	return nil
}
