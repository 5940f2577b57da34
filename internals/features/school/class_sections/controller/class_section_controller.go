// file: internals/features/school/class_sections/controller/class_section_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	schoolModel "sekolahku_backend/internals/features/organization/schools/model"
	academicYearModel "sekolahku_backend/internals/features/school/academic_years/model"
	dto "sekolahku_backend/internals/features/school/class_sections/dto"
	model "sekolahku_backend/internals/features/school/class_sections/model"
	gradeLevelModel "sekolahku_backend/internals/features/school/grade_levels/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type ClassSectionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassSectionController(db *gorm.DB, v *validator.Validate) *ClassSectionController {
	if v == nil {
		v = validator.New()
	}
	return &ClassSectionController{DB: db, Validator: v}
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

// ensureRefsOwned memastikan semua FK menunjuk entity milik tenant.
func (ctl *ClassSectionController) ensureRefsOwned(c *fiber.Ctx, companyID uuid.UUID, ent *model.ClassSectionModel) error {
	if !helperAuth.ScopeAllowsSchool(c, ent.ClassSectionSchoolID) {
		return fiber.NewError(fiber.StatusForbidden, "School di luar scope akses Anda")
	}
	var cnt int64
	if err := ctl.DB.Model(&schoolModel.SchoolModel{}).
		Where("school_company_id = ? AND school_id = ?", companyID, ent.ClassSectionSchoolID).
		Count(&cnt).Error; err != nil || cnt == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Sekolah tidak ditemukan")
	}
	if err := ctl.DB.Model(&gradeLevelModel.GradeLevelModel{}).
		Where("grade_level_company_id = ? AND grade_level_id = ?", companyID, ent.ClassSectionGradeLevelID).
		Count(&cnt).Error; err != nil || cnt == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Tingkat tidak ditemukan")
	}
	if err := ctl.DB.Model(&academicYearModel.AcademicYearModel{}).
		Where("academic_year_company_id = ? AND academic_year_id = ?", companyID, ent.ClassSectionAcademicYearID).
		Count(&cnt).Error; err != nil || cnt == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Tahun ajaran tidak ditemukan")
	}
	return nil
}

func (ctl *ClassSectionController) find(c *fiber.Ctx) (*model.ClassSectionModel, error) {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var ent model.ClassSectionModel
	if err := ctl.DB.
		First(&ent, "class_section_company_id = ? AND class_section_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Rombel tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return &ent, nil
}

/* ============================================
   CREATE
   POST /admin/class-sections
============================================ */

func (ctl *ClassSectionController) Create(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var p dto.ClassSectionCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	ent := p.ToModel(companyID)
	if err := ctl.ensureRefsOwned(c, companyID, &ent); err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Create(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal membuat rombel")
	}
	return helper.JsonCreated(c, "Berhasil membuat rombel", dto.FromClassSectionModel(ent))
}

/* ============================================
   LIST (expand nama FK) + GET
   GET /admin/class-sections
   GET /admin/class-sections/:id
============================================ */

func (ctl *ClassSectionController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var f dto.ClassSectionFilterDTO
	if err := c.QueryParser(&f); err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(&f); err != nil {
		return httpErr(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.ClassSectionModel{}).
		Where("class_section_company_id = ?", companyID)

	if ids, restricted := helperAuth.GetScopeSchoolIDs(c); restricted {
		q = q.Where("class_section_school_id IN ?", ids)
	}

	if f.Q != nil && strings.TrimSpace(*f.Q) != "" {
		needle := "%" + strings.TrimSpace(*f.Q) + "%"
		q = q.Where("class_section_name ILIKE ?", needle)
	}
	if f.Status != nil {
		q = q.Where("class_section_status = ?", *f.Status)
	}
	if f.SchoolID != nil {
		q = q.Where("class_section_school_id = ?", *f.SchoolID)
	}
	if f.GradeLevelID != nil {
		q = q.Where("class_section_grade_level_id = ?", *f.GradeLevelID)
	}
	if f.AcademicYearID != nil {
		q = q.Where("class_section_academic_year_id = ?", *f.AcademicYearID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var list []model.ClassSectionModel
	if err := q.Order("class_section_name ASC").
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

// expandList resolve nama school/grade level/academic year per halaman (hindari N+1).
func (ctl *ClassSectionController) expandList(list []model.ClassSectionModel) ([]dto.ClassSectionResponseDTO, error) {
	resp := make([]dto.ClassSectionResponseDTO, 0, len(list))
	if len(list) == 0 {
		return resp, nil
	}

	schoolIDs := make([]uuid.UUID, 0, len(list))
	gradeIDs := make([]uuid.UUID, 0, len(list))
	yearIDs := make([]uuid.UUID, 0, len(list))
	for _, it := range list {
		schoolIDs = append(schoolIDs, it.ClassSectionSchoolID)
		gradeIDs = append(gradeIDs, it.ClassSectionGradeLevelID)
		yearIDs = append(yearIDs, it.ClassSectionAcademicYearID)
	}

	schoolNames := map[uuid.UUID]string{}
	var schools []schoolModel.SchoolModel
	if err := ctl.DB.Select("school_id", "school_name").
		Where("school_id IN ?", schoolIDs).Find(&schools).Error; err != nil {
		return nil, err
	}
	for _, s := range schools {
		schoolNames[s.SchoolID] = s.SchoolName
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
		r := dto.FromClassSectionModel(it)
		if n, ok := schoolNames[it.ClassSectionSchoolID]; ok {
			r.SchoolName = &n
		}
		if n, ok := gradeNames[it.ClassSectionGradeLevelID]; ok {
			r.GradeLevelName = &n
		}
		if n, ok := yearNames[it.ClassSectionAcademicYearID]; ok {
			r.AcademicYearName = &n
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func (ctl *ClassSectionController) GetByID(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}
	resp, err2 := ctl.expandList([]model.ClassSectionModel{*ent})
	if err2 != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal resolve relasi")
	}
	return helper.JsonOK(c, "OK", resp[0])
}

/* ============================================
   PATCH
   PATCH /admin/class-sections/:id
============================================ */

func (ctl *ClassSectionController) Patch(c *fiber.Ctx) error {
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

	var p dto.ClassSectionUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	p.ApplyUpdates(ent)
	if err := ctl.ensureRefsOwned(c, companyID, ent); err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Save(ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memperbarui rombel")
	}
	return helper.JsonUpdated(c, "Berhasil memperbarui rombel", dto.FromClassSectionModel(*ent))
}

/* ============================================
   TOGGLE STATUS (active <-> inactive; archived bukan target toggle)
   PATCH /admin/class-sections/:id/toggle-status
   ARCHIVE
   PATCH /admin/class-sections/:id/archive
============================================ */

func (ctl *ClassSectionController) ToggleStatus(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	var next string
	switch ent.ClassSectionStatus {
	case model.SectionStatusActive:
		next = model.SectionStatusInactive
	case model.SectionStatusInactive:
		next = model.SectionStatusActive
	default:
		return httpErr(c, fiber.StatusConflict, "Rombel yang diarsip tidak bisa di-toggle")
	}

	if err := ctl.DB.Model(ent).
		Update("class_section_status", next).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengubah status")
	}
	ent.ClassSectionStatus = next
	return helper.JsonUpdated(c, "Status rombel diperbarui", dto.FromClassSectionModel(*ent))
}

func (ctl *ClassSectionController) Archive(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}
	if ent.ClassSectionStatus == model.SectionStatusArchived {
		return httpErr(c, fiber.StatusConflict, "Rombel sudah diarsip")
	}

	if err := ctl.DB.Model(ent).
		Update("class_section_status", model.SectionStatusArchived).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengarsip rombel")
	}
	ent.ClassSectionStatus = model.SectionStatusArchived
	return helper.JsonUpdated(c, "Rombel diarsip", dto.FromClassSectionModel(*ent))
}

/* ============================================
   DELETE (soft) + cascade junction rows
   DELETE /admin/class-sections/:id
============================================ */

func (ctl *ClassSectionController) Delete(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		// Jadwal tryout yang menunjuk rombel ini ikut dibersihkan
		if err := tx.Exec("DELETE FROM mock_exam_sections WHERE mock_exam_section_class_section_id = ?",
			ent.ClassSectionID).Error; err != nil {
			return err
		}
		return tx.Delete(ent).Error
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghapus rombel")
	}
	return helper.JsonDeleted(c, "Berhasil menghapus rombel",
		fiber.Map{"class_section_id": ent.ClassSectionID})
}
