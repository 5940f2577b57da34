// file: internals/features/school/mock_exams/model/mock_exam_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Status jadwal tryout
const (
	MockExamStatusScheduled = "scheduled"
	MockExamStatusCompleted = "completed"
	MockExamStatusCancelled = "cancelled"
)

// MockExamModel merepresentasikan tabel mock_exams (jadwal tryout).
type MockExamModel struct {
	// ============ PK & Tenant ============
	MockExamID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:mock_exam_id" json:"mock_exam_id"`
	MockExamCompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:mock_exam_company_id" json:"mock_exam_company_id"`

	// ============ Identitas ============
	MockExamTitle string `gorm:"type:varchar(180);not null;column:mock_exam_title" json:"mock_exam_title"`

	// Jadwal (jam disimpan "HH:MM" lokal tenant)
	MockExamDate      time.Time `gorm:"type:date;not null;index;column:mock_exam_date" json:"mock_exam_date"`
	MockExamStartTime string    `gorm:"type:varchar(5);not null;column:mock_exam_start_time" json:"mock_exam_start_time"`
	MockExamEndTime   string    `gorm:"type:varchar(5);not null;column:mock_exam_end_time" json:"mock_exam_end_time"`

	// Sasaran
	MockExamGradeLevelID   uuid.UUID `gorm:"type:uuid;not null;index;column:mock_exam_grade_level_id" json:"mock_exam_grade_level_id"`
	MockExamAcademicYearID uuid.UUID `gorm:"type:uuid;not null;index;column:mock_exam_academic_year_id" json:"mock_exam_academic_year_id"`

	// Mata pelajaran yang diujikan
	MockExamSubjects pq.StringArray `gorm:"type:text[];column:mock_exam_subjects" json:"mock_exam_subjects"`

	MockExamMaxScore int `gorm:"type:integer;not null;default:100;column:mock_exam_max_score" json:"mock_exam_max_score"`

	// ============ Status ============
	MockExamStatus string `gorm:"type:varchar(12);not null;default:'scheduled';column:mock_exam_status" json:"mock_exam_status"`

	// ============ Audit / Soft delete ============
	MockExamCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:mock_exam_created_at" json:"mock_exam_created_at"`
	MockExamUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:mock_exam_updated_at" json:"mock_exam_updated_at"`
	MockExamDeletedAt gorm.DeletedAt `gorm:"column:mock_exam_deleted_at;index" json:"mock_exam_deleted_at,omitempty"`
}

func (MockExamModel) TableName() string { return "mock_exams" }

func (m *MockExamModel) BeforeSave(tx *gorm.DB) error {
	m.MockExamTitle = strings.TrimSpace(m.MockExamTitle)
	m.MockExamStatus = strings.ToLower(strings.TrimSpace(m.MockExamStatus))
	if m.MockExamTitle == "" {
		return errors.New("mock_exam_title wajib diisi")
	}
	switch m.MockExamStatus {
	case MockExamStatusScheduled, MockExamStatusCompleted, MockExamStatusCancelled:
	case "":
		m.MockExamStatus = MockExamStatusScheduled
	default:
		return errors.New("mock_exam_status tidak dikenal")
	}
	if !validClock(m.MockExamStartTime) || !validClock(m.MockExamEndTime) {
		return errors.New("jam mulai/selesai harus berformat HH:MM")
	}
	if m.MockExamEndTime <= m.MockExamStartTime {
		return errors.New("jam selesai harus setelah jam mulai")
	}
	if m.MockExamMaxScore < 1 {
		return errors.New("mock_exam_max_score minimal 1")
	}
	return nil
}

// validClock: "HH:MM" 24 jam, jam WAJIB dua digit ("07:30", bukan "7:30")
// supaya perbandingan leksikografis start/end tetap benar.
func validClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return false
	}
	return true
}

/* ============================================
   Junction: mock_exam_sections (tryout → rombel peserta)
============================================ */

type MockExamSectionModel struct {
	MockExamSectionMockExamID     uuid.UUID `gorm:"type:uuid;primaryKey;column:mock_exam_section_mock_exam_id" json:"mock_exam_section_mock_exam_id"`
	MockExamSectionClassSectionID uuid.UUID `gorm:"type:uuid;primaryKey;column:mock_exam_section_class_section_id" json:"mock_exam_section_class_section_id"`
}

func (MockExamSectionModel) TableName() string { return "mock_exam_sections" }
