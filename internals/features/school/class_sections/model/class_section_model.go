// file: internals/features/school/class_sections/model/class_section_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status rombel. Berbeda dengan entity lain, archived adalah status
// eksplisit — bukan target toggle.
const (
	SectionStatusActive   = "active"
	SectionStatusInactive = "inactive"
	SectionStatusArchived = "archived"
)

// ClassSectionModel merepresentasikan tabel class_sections (rombongan belajar).
type ClassSectionModel struct {
	// ============ PK & Tenant ============
	ClassSectionID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_section_id" json:"class_section_id"`
	ClassSectionCompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:class_section_company_id" json:"class_section_company_id"`

	// Penempatan
	ClassSectionSchoolID       uuid.UUID `gorm:"type:uuid;not null;index;column:class_section_school_id" json:"class_section_school_id"`
	ClassSectionGradeLevelID   uuid.UUID `gorm:"type:uuid;not null;index;column:class_section_grade_level_id" json:"class_section_grade_level_id"`
	ClassSectionAcademicYearID uuid.UUID `gorm:"type:uuid;not null;index;column:class_section_academic_year_id" json:"class_section_academic_year_id"`

	// ============ Identitas ============
	ClassSectionName string `gorm:"type:varchar(120);not null;column:class_section_name" json:"class_section_name"`

	// Kapasitas & isi. Enrollment > capacity TIDAK ditolak di DB;
	// tampilan persentase yang melakukan clamp.
	ClassSectionCapacity   int `gorm:"type:integer;not null;default:0;column:class_section_capacity" json:"class_section_capacity"`
	ClassSectionEnrollment int `gorm:"type:integer;not null;default:0;column:class_section_enrollment" json:"class_section_enrollment"`

	// ============ Status ============
	ClassSectionStatus string `gorm:"type:varchar(12);not null;default:'active';column:class_section_status" json:"class_section_status"`

	// ============ Audit / Soft delete ============
	ClassSectionCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:class_section_created_at" json:"class_section_created_at"`
	ClassSectionUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:class_section_updated_at" json:"class_section_updated_at"`
	ClassSectionDeletedAt gorm.DeletedAt `gorm:"column:class_section_deleted_at;index" json:"class_section_deleted_at,omitempty"`
}

func (ClassSectionModel) TableName() string { return "class_sections" }

func (m *ClassSectionModel) BeforeSave(tx *gorm.DB) error {
	m.ClassSectionName = strings.TrimSpace(m.ClassSectionName)
	m.ClassSectionStatus = strings.ToLower(strings.TrimSpace(m.ClassSectionStatus))
	if m.ClassSectionName == "" {
		return errors.New("class_section_name wajib diisi")
	}
	switch m.ClassSectionStatus {
	case SectionStatusActive, SectionStatusInactive, SectionStatusArchived:
	case "":
		m.ClassSectionStatus = SectionStatusActive
	default:
		return errors.New("class_section_status tidak dikenal")
	}
	if m.ClassSectionCapacity < 0 {
		return errors.New("class_section_capacity tidak boleh negatif")
	}
	if m.ClassSectionEnrollment < 0 {
		return errors.New("class_section_enrollment tidak boleh negatif")
	}
	return nil
}

// OccupancyPercent menghitung keterisian untuk tampilan, clamp 0..100.
// Kapasitas 0/negatif mengembalikan 0, over-enrollment mentok di 100 —
// tidak pernah NaN/overflow.
func OccupancyPercent(enrollment, capacity int) float64 {
	if capacity <= 0 || enrollment <= 0 {
		return 0
	}
	pct := float64(enrollment) / float64(capacity) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
