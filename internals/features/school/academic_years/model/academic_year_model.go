// file: internals/features/school/academic_years/model/academic_year_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicYearModel merepresentasikan tabel academic_years (tahun ajaran).
type AcademicYearModel struct {
	// ============ PK & Tenant ============
	AcademicYearID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academic_year_id" json:"academic_year_id"`
	AcademicYearCompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:academic_year_company_id" json:"academic_year_company_id"`

	// ============ Identitas ============
	AcademicYearName string `gorm:"type:varchar(100);not null;column:academic_year_name" json:"academic_year_name"`

	// Periode (invariant: end > start)
	AcademicYearStartDate time.Time `gorm:"type:date;not null;column:academic_year_start_date" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"type:date;not null;column:academic_year_end_date" json:"academic_year_end_date"`

	// Jumlah semester/term dalam satu tahun ajaran
	AcademicYearTermCount int `gorm:"type:integer;not null;default:2;column:academic_year_term_count" json:"academic_year_term_count"`

	// ============ Status ============
	AcademicYearIsActive bool `gorm:"not null;default:false;column:academic_year_is_active" json:"academic_year_is_active"`

	// ============ Audit / Soft delete ============
	AcademicYearCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:academic_year_created_at" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:academic_year_updated_at" json:"academic_year_updated_at"`
	AcademicYearDeletedAt gorm.DeletedAt `gorm:"column:academic_year_deleted_at;index" json:"academic_year_deleted_at,omitempty"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

func (m *AcademicYearModel) BeforeSave(tx *gorm.DB) error {
	m.AcademicYearName = strings.TrimSpace(m.AcademicYearName)
	if m.AcademicYearName == "" {
		return errors.New("academic_year_name wajib diisi")
	}
	// Mirror validasi DTO: tanggal selesai harus setelah tanggal mulai.
	if !m.AcademicYearEndDate.After(m.AcademicYearStartDate) {
		return errors.New("academic_year_end_date harus setelah academic_year_start_date")
	}
	if m.AcademicYearTermCount < 1 {
		return errors.New("academic_year_term_count minimal 1")
	}
	return nil
}
