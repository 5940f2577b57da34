// file: internals/features/school/grade_levels/model/grade_level_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Jenjang pendidikan yang dikenal
const (
	EducationLevelTK  = "tk"
	EducationLevelSD  = "sd"
	EducationLevelSMP = "smp"
	EducationLevelSMA = "sma"
	EducationLevelSMK = "smk"
)

var EducationLevels = []string{
	EducationLevelTK, EducationLevelSD, EducationLevelSMP, EducationLevelSMA, EducationLevelSMK,
}

// GradeLevelModel merepresentasikan tabel grade_levels (tingkat/kelas).
type GradeLevelModel struct {
	// ============ PK & Tenant ============
	GradeLevelID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_level_id" json:"grade_level_id"`
	GradeLevelCompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:grade_level_company_id" json:"grade_level_company_id"`

	// ============ Identitas ============
	GradeLevelName string `gorm:"type:varchar(120);not null;column:grade_level_name" json:"grade_level_name"`
	GradeLevelCode string `gorm:"type:varchar(24);not null;column:grade_level_code" json:"grade_level_code"`

	// Urutan numerik untuk sort tampilan (kelas 1 sebelum kelas 2, dst)
	GradeLevelOrder          int    `gorm:"type:integer;not null;default:0;column:grade_level_order" json:"grade_level_order"`
	GradeLevelEducationLevel string `gorm:"type:varchar(8);not null;column:grade_level_education_level" json:"grade_level_education_level"`

	// Kapasitas
	GradeLevelStudentCapacity int `gorm:"type:integer;not null;default:0;column:grade_level_student_capacity" json:"grade_level_student_capacity"`

	// ============ Status ============
	GradeLevelIsActive bool `gorm:"not null;default:true;column:grade_level_is_active" json:"grade_level_is_active"`

	// ============ Audit / Soft delete ============
	GradeLevelCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:grade_level_created_at" json:"grade_level_created_at"`
	GradeLevelUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:grade_level_updated_at" json:"grade_level_updated_at"`
	GradeLevelDeletedAt gorm.DeletedAt `gorm:"column:grade_level_deleted_at;index" json:"grade_level_deleted_at,omitempty"`
}

func (GradeLevelModel) TableName() string { return "grade_levels" }

func (m *GradeLevelModel) BeforeSave(tx *gorm.DB) error {
	m.GradeLevelName = strings.TrimSpace(m.GradeLevelName)
	m.GradeLevelCode = strings.ToUpper(strings.TrimSpace(m.GradeLevelCode))
	m.GradeLevelEducationLevel = strings.ToLower(strings.TrimSpace(m.GradeLevelEducationLevel))
	if m.GradeLevelName == "" {
		return errors.New("grade_level_name wajib diisi")
	}
	if m.GradeLevelCode == "" {
		return errors.New("grade_level_code wajib diisi")
	}
	ok := false
	for _, lv := range EducationLevels {
		if m.GradeLevelEducationLevel == lv {
			ok = true
			break
		}
	}
	if !ok {
		return errors.New("grade_level_education_level tidak dikenal")
	}
	if m.GradeLevelStudentCapacity < 0 {
		return errors.New("grade_level_student_capacity tidak boleh negatif")
	}
	return nil
}

/* ============================================
   Junction: grade_level_schools
   Murni pasangan (grade_level_id, school_id); hidup-matinya
   diurus entity induk (create/update/delete grade level).
============================================ */

type GradeLevelSchoolModel struct {
	GradeLevelSchoolGradeLevelID uuid.UUID `gorm:"type:uuid;primaryKey;column:grade_level_school_grade_level_id" json:"grade_level_school_grade_level_id"`
	GradeLevelSchoolSchoolID     uuid.UUID `gorm:"type:uuid;primaryKey;column:grade_level_school_school_id" json:"grade_level_school_school_id"`
}

func (GradeLevelSchoolModel) TableName() string { return "grade_level_schools" }
