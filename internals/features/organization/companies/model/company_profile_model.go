// file: internals/features/organization/companies/model/company_profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CompanyProfileModel: tabel extension 1:1 dengan companies.
// Invariant: maksimal satu baris per company_id (upsert, bukan append).
type CompanyProfileModel struct {
	// PK sekaligus FK ke companies (1:1)
	CompanyProfileCompanyID uuid.UUID `gorm:"type:uuid;primaryKey;column:company_profile_company_id" json:"company_profile_company_id"`

	// Kontak
	CompanyProfileEmail   *string `gorm:"type:varchar(120);column:company_profile_email" json:"company_profile_email,omitempty"`
	CompanyProfilePhone   *string `gorm:"type:varchar(30);column:company_profile_phone" json:"company_profile_phone,omitempty"`
	CompanyProfileWebsite *string `gorm:"type:text;column:company_profile_website" json:"company_profile_website,omitempty"`

	// Alamat
	CompanyProfileAddress    *string `gorm:"type:text;column:company_profile_address" json:"company_profile_address,omitempty"`
	CompanyProfileCity       *string `gorm:"type:varchar(80);column:company_profile_city" json:"company_profile_city,omitempty"`
	CompanyProfileProvince   *string `gorm:"type:varchar(80);column:company_profile_province" json:"company_profile_province,omitempty"`
	CompanyProfilePostalCode *string `gorm:"type:varchar(12);column:company_profile_postal_code" json:"company_profile_postal_code,omitempty"`

	// Legal & lain-lain
	CompanyProfileTaxNumber     *string    `gorm:"type:varchar(32);column:company_profile_tax_number" json:"company_profile_tax_number,omitempty"`
	CompanyProfileEstablishedAt *time.Time `gorm:"type:date;column:company_profile_established_at" json:"company_profile_established_at,omitempty"`

	// Atribut tambahan bebas (field wizard yang bukan kolom first-class)
	CompanyProfileExtra datatypes.JSON `gorm:"type:jsonb;column:company_profile_extra" json:"company_profile_extra,omitempty"`

	CompanyProfileCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:company_profile_created_at" json:"company_profile_created_at"`
	CompanyProfileUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:company_profile_updated_at" json:"company_profile_updated_at"`
}

func (CompanyProfileModel) TableName() string { return "company_profiles" }
