// file: internals/features/school/mock_exams/controller/mock_exam_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicYearModel "sekolahku_backend/internals/features/school/academic_years/model"
	classSectionModel "sekolahku_backend/internals/features/school/class_sections/model"
	gradeLevelModel "sekolahku_backend/internals/features/school/grade_levels/model"
	dto "sekolahku_backend/internals/features/school/mock_exams/dto"
	model "sekolahku_backend/internals/features/school/mock_exams/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/dbtime"
)

/* ============================================
   Controller
============================================ */

type MockExamController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewMockExamController(db *gorm.DB, v *validator.Validate) *MockExamController {
	if v == nil {
		v = validator.New()
	}
	return &MockExamController{DB: db, Validator: v}
}

func httpErr(c *fiber.Ctx, code int, msg string) error {
	return helper.JsonError(c, code, msg)
}

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

func (ctl *MockExamController) find(c *fiber.Ctx) (*model.MockExamModel, error) {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var ent model.MockExamModel
	if err := ctl.DB.
		First(&ent, "mock_exam_company_id = ? AND mock_exam_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tryout tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return &ent, nil
}

// ensureRefsOwned: FK dan rombel peserta harus milik tenant.
func (ctl *MockExamController) ensureRefsOwned(companyID uuid.UUID, ent *model.MockExamModel, sectionIDs []uuid.UUID) error {
	var cnt int64
	if err := ctl.DB.Model(&gradeLevelModel.GradeLevelModel{}).
		Where("grade_level_company_id = ? AND grade_level_id = ?", companyID, ent.MockExamGradeLevelID).
		Count(&cnt).Error; err != nil || cnt == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Tingkat tidak ditemukan")
	}
	if err := ctl.DB.Model(&academicYearModel.AcademicYearModel{}).
		Where("academic_year_company_id = ? AND academic_year_id = ?", companyID, ent.MockExamAcademicYearID).
		Count(&cnt).Error; err != nil || cnt == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Tahun ajaran tidak ditemukan")
	}
	if len(sectionIDs) > 0 {
		if err := ctl.DB.Model(&classSectionModel.ClassSectionModel{}).
			Where("class_section_company_id = ? AND class_section_id IN ?", companyID, sectionIDs).
			Count(&cnt).Error; err != nil || cnt != int64(len(uniq(sectionIDs))) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Ada class_section_id yang tidak valid")
		}
	}
	return nil
}

func uniq(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

/* ============================================
   CREATE (+ junction peserta dalam satu transaksi)
   POST /admin/mock-exams
============================================ */

func (ctl *MockExamController) Create(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var p dto.MockExamCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	ent := p.ToModel(companyID)
	if err := ctl.ensureRefsOwned(companyID, &ent, p.ClassSectionIDs); err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ent).Error; err != nil {
			return err
		}
		return helper.ReconcileJunction(tx, "mock_exam_sections",
			"mock_exam_section_mock_exam_id", "mock_exam_section_class_section_id",
			ent.MockExamID, p.ClassSectionIDs)
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal membuat tryout")
	}

	return helper.JsonCreated(c, "Berhasil membuat tryout",
		dto.FromMockExamModel(ent, uniq(p.ClassSectionIDs)))
}

/* ============================================
   LIST (filter tingkat/tahun/rentang tanggal) + GET
   GET /admin/mock-exams
   GET /admin/mock-exams/:id
============================================ */

func (ctl *MockExamController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var f dto.MockExamFilterDTO
	if err := c.QueryParser(&f); err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(&f); err != nil {
		return httpErr(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.MockExamModel{}).
		Where("mock_exam_company_id = ?", companyID)

	if f.Q != nil && strings.TrimSpace(*f.Q) != "" {
		needle := "%" + strings.TrimSpace(*f.Q) + "%"
		q = q.Where("mock_exam_title ILIKE ?", needle)
	}
	if f.Status != nil {
		q = q.Where("mock_exam_status = ?", *f.Status)
	}
	if f.GradeLevelID != nil {
		q = q.Where("mock_exam_grade_level_id = ?", *f.GradeLevelID)
	}
	if f.AcademicYearID != nil {
		q = q.Where("mock_exam_academic_year_id = ?", *f.AcademicYearID)
	}

	// Rentang tanggal ditafsirkan di timezone tenant
	loc := dbtime.GetCompanyLocation(c)
	if f.DateFrom != nil {
		from, err := time.ParseInLocation("2006-01-02", *f.DateFrom, loc)
		if err != nil {
			return httpErr(c, fiber.StatusBadRequest, "date_from tidak valid (YYYY-MM-DD)")
		}
		q = q.Where("mock_exam_date >= ?", from)
	}
	if f.DateTo != nil {
		to, err := time.ParseInLocation("2006-01-02", *f.DateTo, loc)
		if err != nil {
			return httpErr(c, fiber.StatusBadRequest, "date_to tidak valid (YYYY-MM-DD)")
		}
		q = q.Where("mock_exam_date <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var list []model.MockExamModel
	if err := q.Order("mock_exam_date ASC, mock_exam_start_time ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	resp, err := ctl.expandList(list)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal resolve relasi")
	}

	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "OK", resp, &pagination)
}

// expandList resolve junction peserta + nama tingkat/tahun per halaman.
func (ctl *MockExamController) expandList(list []model.MockExamModel) ([]dto.MockExamResponseDTO, error) {
	resp := make([]dto.MockExamResponseDTO, 0, len(list))
	if len(list) == 0 {
		return resp, nil
	}

	ids := make([]uuid.UUID, 0, len(list))
	gradeIDs := make([]uuid.UUID, 0, len(list))
	yearIDs := make([]uuid.UUID, 0, len(list))
	for _, it := range list {
		ids = append(ids, it.MockExamID)
		gradeIDs = append(gradeIDs, it.MockExamGradeLevelID)
		yearIDs = append(yearIDs, it.MockExamAcademicYearID)
	}

	var rows []model.MockExamSectionModel
	if err := ctl.DB.
		Where("mock_exam_section_mock_exam_id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	byExam := map[uuid.UUID][]uuid.UUID{}
	for _, r := range rows {
		byExam[r.MockExamSectionMockExamID] = append(byExam[r.MockExamSectionMockExamID], r.MockExamSectionClassSectionID)
	}

	gradeNames := map[uuid.UUID]string{}
	var grades []gradeLevelModel.GradeLevelModel
	if err := ctl.DB.Select("grade_level_id", "grade_level_name").
		Where("grade_level_id IN ?", gradeIDs).Find(&grades).Error; err != nil {
		return nil, err
	}
	for _, g := range grades {
		gradeNames[g.GradeLevelID] = g.GradeLevelName
	}

	yearNames := map[uuid.UUID]string{}
	var years []academicYearModel.AcademicYearModel
	if err := ctl.DB.Select("academic_year_id", "academic_year_name").
		Where("academic_year_id IN ?", yearIDs).Find(&years).Error; err != nil {
		return nil, err
	}
	for _, y := range years {
		yearNames[y.AcademicYearID] = y.AcademicYearName
	}

	for _, it := range list {
		r := dto.FromMockExamModel(it, byExam[it.MockExamID])
		if n, ok := gradeNames[it.MockExamGradeLevelID]; ok {
			r.GradeLevelName = &n
		}
		if n, ok := yearNames[it.MockExamAcademicYearID]; ok {
			r.AcademicYearName = &n
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func (ctl *MockExamController) GetByID(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}
	resp, err2 := ctl.expandList([]model.MockExamModel{*ent})
	if err2 != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal resolve relasi")
	}
	return helper.JsonOK(c, "OK", resp[0])
}

/* ============================================
   PATCH (+ junction replace-all bila dikirim)
   PATCH /admin/mock-exams/:id
============================================ */

func (ctl *MockExamController) Patch(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	var p dto.MockExamUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	p.ApplyUpdates(ent)

	var sids []uuid.UUID
	if p.ClassSectionIDs != nil {
		sids = *p.ClassSectionIDs
	}
	if err := ctl.ensureRefsOwned(companyID, ent, sids); err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ent).Error; err != nil {
			return err
		}
		if p.ClassSectionIDs != nil {
			return helper.ReconcileJunction(tx, "mock_exam_sections",
				"mock_exam_section_mock_exam_id", "mock_exam_section_class_section_id",
				ent.MockExamID, *p.ClassSectionIDs)
		}
		return nil
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memperbarui tryout")
	}

	resp, err2 := ctl.expandList([]model.MockExamModel{*ent})
	if err2 != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal resolve relasi")
	}
	return helper.JsonUpdated(c, "Berhasil memperbarui tryout", resp[0])
}

/* ============================================
   UPDATE STATUS (scheduled → completed/cancelled)
   PATCH /admin/mock-exams/:id/status
============================================ */

type mockExamStatusDTO struct {
	MockExamStatus string `json:"mock_exam_status" validate:"required,oneof=scheduled completed cancelled"`
}

func (ctl *MockExamController) UpdateStatus(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	var p mockExamStatusDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	if err := ctl.DB.Model(ent).
		Update("mock_exam_status", p.MockExamStatus).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengubah status")
	}
	ent.MockExamStatus = p.MockExamStatus
	return helper.JsonUpdated(c, "Status tryout diperbarui", dto.FromMockExamModel(*ent, nil))
}

/* ============================================
   DELETE (soft) + cascade junction rows
   DELETE /admin/mock-exams/:id
============================================ */

func (ctl *MockExamController) Delete(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM mock_exam_sections WHERE mock_exam_section_mock_exam_id = ?",
			ent.MockExamID).Error; err != nil {
			return err
		}
		return tx.Delete(ent).Error
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghapus tryout")
	}
	return helper.JsonDeleted(c, "Berhasil menghapus tryout",
		fiber.Map{"mock_exam_id": ent.MockExamID})
}
