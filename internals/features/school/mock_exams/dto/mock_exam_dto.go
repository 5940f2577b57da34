// file: internals/features/school/mock_exams/dto/mock_exam_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sekolahku_backend/internals/features/school/mock_exams/model"
)

// =======================
// Request DTO
// =======================

type MockExamCreateDTO struct {
	MockExamTitle     string    `json:"mock_exam_title" validate:"required,min=3,max=180"`
	MockExamDate      time.Time `json:"mock_exam_date" validate:"required"`
	MockExamStartTime string    `json:"mock_exam_start_time" validate:"required,len=5"`
	MockExamEndTime   string    `json:"mock_exam_end_time" validate:"required,len=5"`

	MockExamGradeLevelID   uuid.UUID `json:"mock_exam_grade_level_id" validate:"required"`
	MockExamAcademicYearID uuid.UUID `json:"mock_exam_academic_year_id" validate:"required"`

	MockExamSubjects []string `json:"mock_exam_subjects" validate:"required,min=1,dive,min=1,max=80"`
	MockExamMaxScore int      `json:"mock_exam_max_score" validate:"omitempty,gte=1,lte=1000"`
	MockExamStatus   string   `json:"mock_exam_status" validate:"omitempty,oneof=scheduled completed cancelled"`

	// Rombel peserta (junction, replace-all saat update)
	ClassSectionIDs []uuid.UUID `json:"class_section_ids" validate:"omitempty,dive,required"`
}

type MockExamUpdateDTO struct {
	MockExamTitle     *string    `json:"mock_exam_title,omitempty" validate:"omitempty,min=3,max=180"`
	MockExamDate      *time.Time `json:"mock_exam_date,omitempty"`
	MockExamStartTime *string    `json:"mock_exam_start_time,omitempty" validate:"omitempty,len=5"`
	MockExamEndTime   *string    `json:"mock_exam_end_time,omitempty" validate:"omitempty,len=5"`

	MockExamGradeLevelID   *uuid.UUID `json:"mock_exam_grade_level_id,omitempty"`
	MockExamAcademicYearID *uuid.UUID `json:"mock_exam_academic_year_id,omitempty"`

	MockExamSubjects *[]string `json:"mock_exam_subjects,omitempty" validate:"omitempty,min=1,dive,min=1,max=80"`
	MockExamMaxScore *int      `json:"mock_exam_max_score,omitempty" validate:"omitempty,gte=1,lte=1000"`
	MockExamStatus   *string   `json:"mock_exam_status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled"`

	// nil = junction tidak disentuh; [] = kosongkan peserta
	ClassSectionIDs *[]uuid.UUID `json:"class_section_ids,omitempty"`
}

type MockExamFilterDTO struct {
	Q              *string    `query:"q"                validate:"omitempty,max=100"`
	Status         *string    `query:"status"           validate:"omitempty,oneof=scheduled completed cancelled"`
	GradeLevelID   *uuid.UUID `query:"grade_level_id"   validate:"omitempty"`
	AcademicYearID *uuid.UUID `query:"academic_year_id" validate:"omitempty"`

	// Rentang tanggal inklusif, "2006-01-02" (ditafsirkan di timezone tenant)
	DateFrom *string `query:"date_from" validate:"omitempty,len=10"`
	DateTo   *string `query:"date_to"   validate:"omitempty,len=10"`
}

// =======================
// Response DTO
// =======================

type MockExamResponseDTO struct {
	MockExamID        uuid.UUID `json:"mock_exam_id"`
	MockExamCompanyID uuid.UUID `json:"mock_exam_company_id"`

	MockExamTitle     string    `json:"mock_exam_title"`
	MockExamDate      time.Time `json:"mock_exam_date"`
	MockExamStartTime string    `json:"mock_exam_start_time"`
	MockExamEndTime   string    `json:"mock_exam_end_time"`

	MockExamGradeLevelID   uuid.UUID `json:"mock_exam_grade_level_id"`
	MockExamAcademicYearID uuid.UUID `json:"mock_exam_academic_year_id"`

	// Nama terresolve dari FK
	GradeLevelName   *string `json:"grade_level_name,omitempty"`
	AcademicYearName *string `json:"academic_year_name,omitempty"`

	MockExamSubjects []string `json:"mock_exam_subjects"`
	MockExamMaxScore int      `json:"mock_exam_max_score"`
	MockExamStatus   string   `json:"mock_exam_status"`

	ClassSectionIDs []uuid.UUID `json:"class_section_ids"`

	MockExamCreatedAt time.Time  `json:"mock_exam_created_at"`
	MockExamUpdatedAt time.Time  `json:"mock_exam_updated_at"`
	MockExamDeletedAt *time.Time `json:"mock_exam_deleted_at,omitempty"`
}

// =======================
// Helpers
// =======================

func (p *MockExamCreateDTO) Normalize() {
	p.MockExamTitle = strings.TrimSpace(p.MockExamTitle)
	p.MockExamStatus = strings.ToLower(strings.TrimSpace(p.MockExamStatus))
	if p.MockExamStatus == "" {
		p.MockExamStatus = model.MockExamStatusScheduled
	}
	if p.MockExamMaxScore == 0 {
		p.MockExamMaxScore = 100
	}
	subjects := make([]string, 0, len(p.MockExamSubjects))
	for _, s := range p.MockExamSubjects {
		if v := strings.TrimSpace(s); v != "" {
			subjects = append(subjects, v)
		}
	}
	p.MockExamSubjects = subjects
}

func (p *MockExamCreateDTO) ToModel(companyID uuid.UUID) model.MockExamModel {
	return model.MockExamModel{
		MockExamCompanyID:      companyID,
		MockExamTitle:          p.MockExamTitle,
		MockExamDate:           p.MockExamDate,
		MockExamStartTime:      p.MockExamStartTime,
		MockExamEndTime:        p.MockExamEndTime,
		MockExamGradeLevelID:   p.MockExamGradeLevelID,
		MockExamAcademicYearID: p.MockExamAcademicYearID,
		MockExamSubjects:       pq.StringArray(p.MockExamSubjects),
		MockExamMaxScore:       p.MockExamMaxScore,
		MockExamStatus:         p.MockExamStatus,
	}
}

func (u *MockExamUpdateDTO) ApplyUpdates(ent *model.MockExamModel) {
	if u.MockExamTitle != nil {
		ent.MockExamTitle = strings.TrimSpace(*u.MockExamTitle)
	}
	if u.MockExamDate != nil {
		ent.MockExamDate = *u.MockExamDate
	}
	if u.MockExamStartTime != nil {
		ent.MockExamStartTime = *u.MockExamStartTime
	}
	if u.MockExamEndTime != nil {
		ent.MockExamEndTime = *u.MockExamEndTime
	}
	if u.MockExamGradeLevelID != nil {
		ent.MockExamGradeLevelID = *u.MockExamGradeLevelID
	}
	if u.MockExamAcademicYearID != nil {
		ent.MockExamAcademicYearID = *u.MockExamAcademicYearID
	}
	if u.MockExamSubjects != nil {
		ent.MockExamSubjects = pq.StringArray(*u.MockExamSubjects)
	}
	if u.MockExamMaxScore != nil {
		ent.MockExamMaxScore = *u.MockExamMaxScore
	}
	if u.MockExamStatus != nil {
		ent.MockExamStatus = strings.ToLower(strings.TrimSpace(*u.MockExamStatus))
	}
}

func FromMockExamModel(ent model.MockExamModel, sectionIDs []uuid.UUID) MockExamResponseDTO {
	if sectionIDs == nil {
		sectionIDs = []uuid.UUID{}
	}
	resp := MockExamResponseDTO{
		MockExamID:             ent.MockExamID,
		MockExamCompanyID:      ent.MockExamCompanyID,
		MockExamTitle:          ent.MockExamTitle,
		MockExamDate:           ent.MockExamDate,
		MockExamStartTime:      ent.MockExamStartTime,
		MockExamEndTime:        ent.MockExamEndTime,
		MockExamGradeLevelID:   ent.MockExamGradeLevelID,
		MockExamAcademicYearID: ent.MockExamAcademicYearID,
		MockExamSubjects:       []string(ent.MockExamSubjects),
		MockExamMaxScore:       ent.MockExamMaxScore,
		MockExamStatus:         ent.MockExamStatus,
		ClassSectionIDs:        sectionIDs,
		MockExamCreatedAt:      ent.MockExamCreatedAt,
		MockExamUpdatedAt:      ent.MockExamUpdatedAt,
	}
	if resp.MockExamSubjects == nil {
		resp.MockExamSubjects = []string{}
	}
	if ent.MockExamDeletedAt.Valid {
		t := ent.MockExamDeletedAt.Time
		resp.MockExamDeletedAt = &t
	}
	return resp
}
