// file: internals/features/school/grade_levels/controller/grade_level_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	schoolModel "sekolahku_backend/internals/features/organization/schools/model"
	dto "sekolahku_backend/internals/features/school/grade_levels/dto"
	model "sekolahku_backend/internals/features/school/grade_levels/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type GradeLevelController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewGradeLevelController(db *gorm.DB, v *validator.Validate) *GradeLevelController {
	if v == nil {
		v = validator.New()
	}
	return &GradeLevelController{DB: db, Validator: v}
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

// ensureSchoolsOwned: semua school id harus milik tenant (dan dalam scope user).
func (ctl *GradeLevelController) ensureSchoolsOwned(c *fiber.Ctx, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		if !helperAuth.ScopeAllowsSchool(c, id) {
			return fiber.NewError(fiber.StatusForbidden, "School di luar scope akses Anda")
		}
	}
	var cnt int64
	if err := ctl.DB.Model(&schoolModel.SchoolModel{}).
		Where("school_company_id = ? AND school_id IN ?", companyID, ids).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa sekolah")
	}
	if cnt != int64(len(dedupe(ids))) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Ada school_id yang tidak valid")
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
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
   CREATE (+ junction dalam satu transaksi)
   POST /admin/grade-levels
============================================ */

func (ctl *GradeLevelController) Create(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var p dto.GradeLevelCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if err := ctl.ensureSchoolsOwned(c, companyID, p.SchoolIDs); err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	// Uniqueness code per tenant
	var cnt int64
	if err := ctl.DB.Model(&model.GradeLevelModel{}).
		Where("grade_level_company_id = ? AND grade_level_code = ?", companyID, p.GradeLevelCode).
		Count(&cnt).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa kode")
	}
	if cnt > 0 {
		return httpErr(c, fiber.StatusConflict, "Kode tingkat sudah dipakai")
	}

	ent := p.ToModel(companyID)

	// Create dulu (butuh id), baru tulis junction — keduanya satu transaksi.
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ent).Error; err != nil {
			return err
		}
		return helper.ReconcileJunction(tx, "grade_level_schools",
			"grade_level_school_grade_level_id", "grade_level_school_school_id",
			ent.GradeLevelID, p.SchoolIDs)
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal membuat tingkat")
	}

	return helper.JsonCreated(c, "Berhasil membuat tingkat",
		dto.FromGradeLevelModel(ent, dedupe(p.SchoolIDs), nil))
}

/* ============================================
   LIST + GET
   GET /admin/grade-levels   (default sort: grade_level_order ASC)
   GET /admin/grade-levels/:id
============================================ */

func (ctl *GradeLevelController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var f dto.GradeLevelFilterDTO
	if err := c.QueryParser(&f); err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(&f); err != nil {
		return httpErr(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.GradeLevelModel{}).
		Where("grade_level_company_id = ?", companyID)

	if f.Q != nil && strings.TrimSpace(*f.Q) != "" {
		needle := "%" + strings.TrimSpace(*f.Q) + "%"
		q = q.Where("grade_level_name ILIKE ? OR grade_level_code ILIKE ?", needle, needle)
	}
	if f.Active != nil {
		q = q.Where("grade_level_is_active = ?", *f.Active)
	}
	if f.EducationLevel != nil {
		q = q.Where("grade_level_education_level = ?", *f.EducationLevel)
	}
	// Membership filter lewat junction
	if f.SchoolID != nil {
		q = q.Where(`grade_level_id IN (
			SELECT grade_level_school_grade_level_id FROM grade_level_schools
			WHERE grade_level_school_school_id = ?)`, *f.SchoolID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var list []model.GradeLevelModel
	if err := q.Order("grade_level_order ASC, grade_level_created_at ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	resp, err := ctl.expandList(list)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil relasi sekolah")
	}

	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "OK", resp, &pagination)
}

// expandList resolve relasi school (id + nama) untuk satu halaman sekaligus (hindari N+1).
func (ctl *GradeLevelController) expandList(list []model.GradeLevelModel) ([]dto.GradeLevelResponseDTO, error) {
	resp := make([]dto.GradeLevelResponseDTO, 0, len(list))
	if len(list) == 0 {
		return resp, nil
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, it := range list {
		ids = append(ids, it.GradeLevelID)
	}

	var rows []model.GradeLevelSchoolModel
	if err := ctl.DB.
		Where("grade_level_school_grade_level_id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	bySchool := map[uuid.UUID][]uuid.UUID{}
	allSchoolIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		bySchool[r.GradeLevelSchoolGradeLevelID] = append(bySchool[r.GradeLevelSchoolGradeLevelID], r.GradeLevelSchoolSchoolID)
		allSchoolIDs = append(allSchoolIDs, r.GradeLevelSchoolSchoolID)
	}

	names := map[uuid.UUID]string{}
	if len(allSchoolIDs) > 0 {
		var schools []schoolModel.SchoolModel
		if err := ctl.DB.Select("school_id", "school_name").
			Where("school_id IN ?", allSchoolIDs).
			Find(&schools).Error; err != nil {
			return nil, err
		}
		for _, s := range schools {
			names[s.SchoolID] = s.SchoolName
		}
	}

	for _, it := range list {
		sids := bySchool[it.GradeLevelID]
		snames := make([]string, 0, len(sids))
		for _, sid := range sids {
			if n, ok := names[sid]; ok {
				snames = append(snames, n)
			}
		}
		resp = append(resp, dto.FromGradeLevelModel(it, sids, snames))
	}
	return resp, nil
}

func (ctl *GradeLevelController) GetByID(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.GradeLevelModel
	if err := ctl.DB.
		First(&ent, "grade_level_company_id = ? AND grade_level_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Tingkat tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	resp, err := ctl.expandList([]model.GradeLevelModel{ent})
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil relasi sekolah")
	}
	return helper.JsonOK(c, "OK", resp[0])
}

/* ============================================
   PATCH (+ junction replace-all bila dikirim)
   PATCH /admin/grade-levels/:id
============================================ */

func (ctl *GradeLevelController) Patch(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.GradeLevelModel
	if err := ctl.DB.
		First(&ent, "grade_level_company_id = ? AND grade_level_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Tingkat tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var p dto.GradeLevelUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	if p.SchoolIDs != nil {
		if err := ctl.ensureSchoolsOwned(c, companyID, *p.SchoolIDs); err != nil {
			fe := &fiber.Error{}
			if errors.As(err, &fe) {
				return httpErr(c, fe.Code, fe.Message)
			}
			return err
		}
	}

	if p.GradeLevelCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*p.GradeLevelCode))
		var cnt int64
		if err := ctl.DB.Model(&model.GradeLevelModel{}).
			Where("grade_level_company_id = ? AND grade_level_code = ? AND grade_level_id <> ?", companyID, code, ent.GradeLevelID).
			Count(&cnt).Error; err != nil {
			return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa kode")
		}
		if cnt > 0 {
			return httpErr(c, fiber.StatusConflict, "Kode tingkat sudah dipakai")
		}
	}

	p.ApplyUpdates(&ent)
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&ent).Error; err != nil {
			return err
		}
		// nil = junction tidak disentuh; [] = kosongkan relasi
		if p.SchoolIDs != nil {
			return helper.ReconcileJunction(tx, "grade_level_schools",
				"grade_level_school_grade_level_id", "grade_level_school_school_id",
				ent.GradeLevelID, *p.SchoolIDs)
		}
		return nil
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memperbarui tingkat")
	}

	resp, err := ctl.expandList([]model.GradeLevelModel{ent})
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil relasi sekolah")
	}
	return helper.JsonUpdated(c, "Berhasil memperbarui tingkat", resp[0])
}

/* ============================================
   TOGGLE ACTIVE
   PATCH /admin/grade-levels/:id/toggle-active
============================================ */

func (ctl *GradeLevelController) ToggleActive(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.GradeLevelModel
	if err := ctl.DB.
		First(&ent, "grade_level_company_id = ? AND grade_level_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Tingkat tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if err := ctl.DB.Model(&ent).
		Update("grade_level_is_active", !ent.GradeLevelIsActive).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengubah status")
	}
	ent.GradeLevelIsActive = !ent.GradeLevelIsActive
	return helper.JsonUpdated(c, "Status tingkat diperbarui", dto.FromGradeLevelModel(ent, nil, nil))
}

/* ============================================
   DELETE (soft) + cascade junction rows
   DELETE /admin/grade-levels/:id
============================================ */

func (ctl *GradeLevelController) Delete(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.GradeLevelModel
	if err := ctl.DB.
		First(&ent, "grade_level_company_id = ? AND grade_level_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Tingkat tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM grade_level_schools WHERE grade_level_school_grade_level_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&ent).Error
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghapus tingkat")
	}
	return helper.JsonDeleted(c, "Berhasil menghapus tingkat", fiber.Map{"grade_level_id": id})
}
