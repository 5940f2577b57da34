// file: internals/features/organization/companies/model/company_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyModel merepresentasikan tabel companies (akar tenant).
type CompanyModel struct {
	// PK
	CompanyID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:company_id" json:"company_id"`

	// Identitas
	CompanyName string  `gorm:"type:varchar(150);not null;column:company_name" json:"company_name"`
	CompanyCode string  `gorm:"type:varchar(24);not null;uniqueIndex;column:company_code" json:"company_code"`
	CompanySlug string  `gorm:"type:varchar(100);not null;uniqueIndex;column:company_slug" json:"company_slug"`
	CompanyBio  *string `gorm:"type:text;column:company_bio" json:"company_bio,omitempty"`

	// Status
	CompanyIsActive bool `gorm:"not null;default:true;column:company_is_active" json:"company_is_active"`

	// Audit / Soft delete
	CompanyCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:company_created_at" json:"company_created_at"`
	CompanyUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:company_updated_at" json:"company_updated_at"`
	CompanyDeletedAt gorm.DeletedAt `gorm:"column:company_deleted_at;index" json:"company_deleted_at,omitempty"`
}

func (CompanyModel) TableName() string { return "companies" }

// ============ Hooks: normalisasi ringan ============
func (m *CompanyModel) BeforeSave(tx *gorm.DB) error {
	m.CompanyName = strings.TrimSpace(m.CompanyName)
	m.CompanyCode = strings.ToUpper(strings.TrimSpace(m.CompanyCode))
	if m.CompanyName == "" {
		return errors.New("company_name wajib diisi")
	}
	if m.CompanyCode == "" {
		return errors.New("company_code wajib diisi")
	}
	if m.CompanyBio != nil {
		b := strings.TrimSpace(*m.CompanyBio)
		if b == "" {
			m.CompanyBio = nil
		} else {
			m.CompanyBio = &b
		}
	}
	return nil
}
