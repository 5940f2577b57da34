// file: internals/features/organization/companies/dto/company_profile_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/features/organization/companies/model"
)

// Upsert request: satu baris per company, tulis ulang field yang dikirim.
type CompanyProfileUpsertDTO struct {
	CompanyProfileEmail      *string    `json:"company_profile_email,omitempty" validate:"omitempty,email,max=120"`
	CompanyProfilePhone      *string    `json:"company_profile_phone,omitempty" validate:"omitempty,max=30"`
	CompanyProfileWebsite    *string    `json:"company_profile_website,omitempty" validate:"omitempty,url"`
	CompanyProfileAddress    *string    `json:"company_profile_address,omitempty"`
	CompanyProfileCity       *string    `json:"company_profile_city,omitempty" validate:"omitempty,max=80"`
	CompanyProfileProvince   *string    `json:"company_profile_province,omitempty" validate:"omitempty,max=80"`
	CompanyProfilePostalCode *string    `json:"company_profile_postal_code,omitempty" validate:"omitempty,max=12"`
	CompanyProfileTaxNumber  *string    `json:"company_profile_tax_number,omitempty" validate:"omitempty,max=32"`
	CompanyProfileEstablishedAt *time.Time    `json:"company_profile_established_at,omitempty"`
	CompanyProfileExtra         datatypes.JSON `json:"company_profile_extra,omitempty"`
}

type CompanyProfileResponseDTO struct {
	CompanyProfileCompanyID     uuid.UUID      `json:"company_profile_company_id"`
	CompanyProfileEmail         *string        `json:"company_profile_email,omitempty"`
	CompanyProfilePhone         *string        `json:"company_profile_phone,omitempty"`
	CompanyProfileWebsite       *string        `json:"company_profile_website,omitempty"`
	CompanyProfileAddress       *string        `json:"company_profile_address,omitempty"`
	CompanyProfileCity          *string        `json:"company_profile_city,omitempty"`
	CompanyProfileProvince      *string        `json:"company_profile_province,omitempty"`
	CompanyProfilePostalCode    *string        `json:"company_profile_postal_code,omitempty"`
	CompanyProfileTaxNumber     *string        `json:"company_profile_tax_number,omitempty"`
	CompanyProfileEstablishedAt *time.Time     `json:"company_profile_established_at,omitempty"`
	CompanyProfileExtra         datatypes.JSON `json:"company_profile_extra,omitempty"`
	CompanyProfileUpdatedAt     time.Time      `json:"company_profile_updated_at"`
}

func (p *CompanyProfileUpsertDTO) Normalize() {
	trim := func(s **string) {
		if *s == nil {
			return
		}
		v := strings.TrimSpace(**s)
		if v == "" {
			*s = nil
		} else {
			*s = &v
		}
	}
	trim(&p.CompanyProfileEmail)
	trim(&p.CompanyProfilePhone)
	trim(&p.CompanyProfileWebsite)
	trim(&p.CompanyProfileAddress)
	trim(&p.CompanyProfileCity)
	trim(&p.CompanyProfileProvince)
	trim(&p.CompanyProfilePostalCode)
	trim(&p.CompanyProfileTaxNumber)
}

func (p *CompanyProfileUpsertDTO) ToModel(companyID uuid.UUID) model.CompanyProfileModel {
	return model.CompanyProfileModel{
		CompanyProfileCompanyID:     companyID,
		CompanyProfileEmail:         p.CompanyProfileEmail,
		CompanyProfilePhone:         p.CompanyProfilePhone,
		CompanyProfileWebsite:       p.CompanyProfileWebsite,
		CompanyProfileAddress:       p.CompanyProfileAddress,
		CompanyProfileCity:          p.CompanyProfileCity,
		CompanyProfileProvince:      p.CompanyProfileProvince,
		CompanyProfilePostalCode:    p.CompanyProfilePostalCode,
		CompanyProfileTaxNumber:     p.CompanyProfileTaxNumber,
		CompanyProfileEstablishedAt: p.CompanyProfileEstablishedAt,
		CompanyProfileExtra:         p.CompanyProfileExtra,
	}
}

func FromCompanyProfileModel(ent model.CompanyProfileModel) CompanyProfileResponseDTO {
	return CompanyProfileResponseDTO{
		CompanyProfileCompanyID:     ent.CompanyProfileCompanyID,
		CompanyProfileEmail:         ent.CompanyProfileEmail,
		CompanyProfilePhone:         ent.CompanyProfilePhone,
		CompanyProfileWebsite:       ent.CompanyProfileWebsite,
		CompanyProfileAddress:       ent.CompanyProfileAddress,
		CompanyProfileCity:          ent.CompanyProfileCity,
		CompanyProfileProvince:      ent.CompanyProfileProvince,
		CompanyProfilePostalCode:    ent.CompanyProfilePostalCode,
		CompanyProfileTaxNumber:     ent.CompanyProfileTaxNumber,
		CompanyProfileEstablishedAt: ent.CompanyProfileEstablishedAt,
		CompanyProfileExtra:         ent.CompanyProfileExtra,
		CompanyProfileUpdatedAt:     ent.CompanyProfileUpdatedAt,
	}
}
