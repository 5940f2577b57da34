// file: internals/features/organization/schools/dto/school_profile_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/features/organization/schools/model"
)

type SchoolProfileUpsertDTO struct {
	SchoolProfileEmail   *string `json:"school_profile_email,omitempty" validate:"omitempty,email,max=120"`
	SchoolProfilePhone   *string `json:"school_profile_phone,omitempty" validate:"omitempty,max=30"`
	SchoolProfileAddress *string `json:"school_profile_address,omitempty"`
	SchoolProfileCity    *string `json:"school_profile_city,omitempty" validate:"omitempty,max=80"`

	SchoolProfileHeadmasterName  *string `json:"school_profile_headmaster_name,omitempty" validate:"omitempty,max=120"`
	SchoolProfileHeadmasterPhone *string `json:"school_profile_headmaster_phone,omitempty" validate:"omitempty,max=30"`

	SchoolProfileTeacherCount       *int `json:"school_profile_teacher_count,omitempty" validate:"omitempty,min=0"`
	SchoolProfileTeacherActiveCount *int `json:"school_profile_teacher_active_count,omitempty" validate:"omitempty,min=0"`
	SchoolProfileStudentCount       *int `json:"school_profile_student_count,omitempty" validate:"omitempty,min=0"`
	SchoolProfileStudentCapacity    *int `json:"school_profile_student_capacity,omitempty" validate:"omitempty,min=0"`

	SchoolProfileEstablishedAt *time.Time     `json:"school_profile_established_at,omitempty"`
	SchoolProfileExtra         datatypes.JSON `json:"school_profile_extra,omitempty"`
}

type SchoolProfileResponseDTO struct {
	SchoolProfileSchoolID uuid.UUID `json:"school_profile_school_id"`

	SchoolProfileEmail   *string `json:"school_profile_email,omitempty"`
	SchoolProfilePhone   *string `json:"school_profile_phone,omitempty"`
	SchoolProfileAddress *string `json:"school_profile_address,omitempty"`
	SchoolProfileCity    *string `json:"school_profile_city,omitempty"`

	SchoolProfileHeadmasterName  *string `json:"school_profile_headmaster_name,omitempty"`
	SchoolProfileHeadmasterPhone *string `json:"school_profile_headmaster_phone,omitempty"`

	SchoolProfileTeacherCount       int `json:"school_profile_teacher_count"`
	SchoolProfileTeacherActiveCount int `json:"school_profile_teacher_active_count"`
	SchoolProfileStudentCount       int `json:"school_profile_student_count"`
	SchoolProfileStudentCapacity    int `json:"school_profile_student_capacity"`

	SchoolProfileEstablishedAt *time.Time     `json:"school_profile_established_at,omitempty"`
	SchoolProfileExtra         datatypes.JSON `json:"school_profile_extra,omitempty"`
	SchoolProfileUpdatedAt     time.Time      `json:"school_profile_updated_at"`
}

func (p *SchoolProfileUpsertDTO) Normalize() {
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
	trim(&p.SchoolProfileEmail)
	trim(&p.SchoolProfilePhone)
	trim(&p.SchoolProfileAddress)
	trim(&p.SchoolProfileCity)
	trim(&p.SchoolProfileHeadmasterName)
	trim(&p.SchoolProfileHeadmasterPhone)
}

func (p *SchoolProfileUpsertDTO) ToModel(schoolID uuid.UUID) model.SchoolProfileModel {
	m := model.SchoolProfileModel{
		SchoolProfileSchoolID:        schoolID,
		SchoolProfileEmail:           p.SchoolProfileEmail,
		SchoolProfilePhone:           p.SchoolProfilePhone,
		SchoolProfileAddress:         p.SchoolProfileAddress,
		SchoolProfileCity:            p.SchoolProfileCity,
		SchoolProfileHeadmasterName:  p.SchoolProfileHeadmasterName,
		SchoolProfileHeadmasterPhone: p.SchoolProfileHeadmasterPhone,
		SchoolProfileEstablishedAt:   p.SchoolProfileEstablishedAt,
		SchoolProfileExtra:           p.SchoolProfileExtra,
	}
	if p.SchoolProfileTeacherCount != nil {
		m.SchoolProfileTeacherCount = *p.SchoolProfileTeacherCount
	}
	if p.SchoolProfileTeacherActiveCount != nil {
		m.SchoolProfileTeacherActiveCount = *p.SchoolProfileTeacherActiveCount
	}
	if p.SchoolProfileStudentCount != nil {
		m.SchoolProfileStudentCount = *p.SchoolProfileStudentCount
	}
	if p.SchoolProfileStudentCapacity != nil {
		m.SchoolProfileStudentCapacity = *p.SchoolProfileStudentCapacity
	}
	return m
}

func FromSchoolProfileModel(ent model.SchoolProfileModel) SchoolProfileResponseDTO {
	return SchoolProfileResponseDTO{
		SchoolProfileSchoolID:           ent.SchoolProfileSchoolID,
		SchoolProfileEmail:              ent.SchoolProfileEmail,
		SchoolProfilePhone:              ent.SchoolProfilePhone,
		SchoolProfileAddress:            ent.SchoolProfileAddress,
		SchoolProfileCity:               ent.SchoolProfileCity,
		SchoolProfileHeadmasterName:     ent.SchoolProfileHeadmasterName,
		SchoolProfileHeadmasterPhone:    ent.SchoolProfileHeadmasterPhone,
		SchoolProfileTeacherCount:       ent.SchoolProfileTeacherCount,
		SchoolProfileTeacherActiveCount: ent.SchoolProfileTeacherActiveCount,
		SchoolProfileStudentCount:       ent.SchoolProfileStudentCount,
		SchoolProfileStudentCapacity:    ent.SchoolProfileStudentCapacity,
		SchoolProfileEstablishedAt:      ent.SchoolProfileEstablishedAt,
		SchoolProfileExtra:              ent.SchoolProfileExtra,
		SchoolProfileUpdatedAt:          ent.SchoolProfileUpdatedAt,
	}
}
