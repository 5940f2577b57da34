// file: internals/features/organization/schools/model/school_profile_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SchoolProfileModel: tabel extension 1:1 dengan schools (upsert, bukan append).
type SchoolProfileModel struct {
	SchoolProfileSchoolID uuid.UUID `gorm:"type:uuid;primaryKey;column:school_profile_school_id" json:"school_profile_school_id"`

	// Kontak & alamat
	SchoolProfileEmail   *string `gorm:"type:varchar(120);column:school_profile_email" json:"school_profile_email,omitempty"`
	SchoolProfilePhone   *string `gorm:"type:varchar(30);column:school_profile_phone" json:"school_profile_phone,omitempty"`
	SchoolProfileAddress *string `gorm:"type:text;column:school_profile_address" json:"school_profile_address,omitempty"`
	SchoolProfileCity    *string `gorm:"type:varchar(80);column:school_profile_city" json:"school_profile_city,omitempty"`

	// Kepala sekolah
	SchoolProfileHeadmasterName  *string `gorm:"type:varchar(120);column:school_profile_headmaster_name" json:"school_profile_headmaster_name,omitempty"`
	SchoolProfileHeadmasterPhone *string `gorm:"type:varchar(30);column:school_profile_headmaster_phone" json:"school_profile_headmaster_phone,omitempty"`

	// Kapasitas (dipakai lintas step wizard: active <= total)
	SchoolProfileTeacherCount       int `gorm:"type:integer;not null;default:0;column:school_profile_teacher_count" json:"school_profile_teacher_count"`
	SchoolProfileTeacherActiveCount int `gorm:"type:integer;not null;default:0;column:school_profile_teacher_active_count" json:"school_profile_teacher_active_count"`
	SchoolProfileStudentCount       int `gorm:"type:integer;not null;default:0;column:school_profile_student_count" json:"school_profile_student_count"`
	SchoolProfileStudentCapacity    int `gorm:"type:integer;not null;default:0;column:school_profile_student_capacity" json:"school_profile_student_capacity"`

	SchoolProfileEstablishedAt *time.Time `gorm:"type:date;column:school_profile_established_at" json:"school_profile_established_at,omitempty"`

	// Atribut tambahan bebas
	SchoolProfileExtra datatypes.JSON `gorm:"type:jsonb;column:school_profile_extra" json:"school_profile_extra,omitempty"`

	SchoolProfileCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:school_profile_created_at" json:"school_profile_created_at"`
	SchoolProfileUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:school_profile_updated_at" json:"school_profile_updated_at"`
}

func (SchoolProfileModel) TableName() string { return "school_profiles" }

func (m *SchoolProfileModel) BeforeSave(tx *gorm.DB) error {
	// Mirror aturan wizard: guru aktif tidak boleh melebihi total guru.
	if m.SchoolProfileTeacherActiveCount > m.SchoolProfileTeacherCount {
		return errors.New("school_profile_teacher_active_count tidak boleh melebihi total guru")
	}
	return nil
}
