// file: internals/features/organization/schools/controller/school_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "sekolahku_backend/internals/features/organization/schools/dto"
	model "sekolahku_backend/internals/features/organization/schools/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type SchoolController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSchoolController(db *gorm.DB, v *validator.Validate) *SchoolController {
	if v == nil {
		v = validator.New()
	}
	return &SchoolController{DB: db, Validator: v}
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

/* ============================================
   CREATE
   POST /admin/schools
============================================ */

func (ctl *SchoolController) Create(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var p dto.SchoolCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	// === AUTO SLUG (unik per tenant) ===
	if p.SchoolSlug == "" {
		p.SchoolSlug = helper.Slugify(p.SchoolName, 100)
	} else {
		p.SchoolSlug = helper.Slugify(p.SchoolSlug, 100)
	}
	slug, err := helper.EnsureUniqueSlugCI(c.Context(), ctl.DB, "schools", "school_slug", p.SchoolSlug,
		func(q *gorm.DB) *gorm.DB { return q.Where("school_company_id = ?", companyID) }, 100)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa slug")
	}
	p.SchoolSlug = slug

	// Uniqueness code per tenant
	var cnt int64
	if err := ctl.DB.Model(&model.SchoolModel{}).
		Where("school_company_id = ? AND school_code = ?", companyID, p.SchoolCode).
		Count(&cnt).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa kode")
	}
	if cnt > 0 {
		return httpErr(c, fiber.StatusConflict, "Kode sekolah sudah dipakai")
	}

	ent := p.ToModel(companyID)
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal membuat sekolah")
	}
	return helper.JsonCreated(c, "Berhasil membuat sekolah", dto.FromSchoolModel(ent))
}

/* ============================================
   LIST (dengan scope filter) + GET
   GET /admin/schools
   GET /admin/schools/:id
============================================ */

func (ctl *SchoolController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var f dto.SchoolFilterDTO
	if err := c.QueryParser(&f); err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(&f); err != nil {
		return httpErr(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.SchoolModel{}).
		Where("school_company_id = ?", companyID)

	// Scope filter: role non-admin hanya melihat school yang di-assign
	if ids, restricted := helperAuth.GetScopeSchoolIDs(c); restricted {
		q = q.Where("school_id IN ?", ids)
	}

	if f.Q != nil && strings.TrimSpace(*f.Q) != "" {
		needle := "%" + strings.TrimSpace(*f.Q) + "%"
		q = q.Where("school_name ILIKE ? OR school_code ILIKE ?", needle, needle)
	}
	if f.Active != nil {
		q = q.Where("school_is_active = ?", *f.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	q = q.Order(orderExpr("school", f.SortBy, f.SortDir)).
		Offset(pg.Offset).Limit(pg.Limit)

	var list []model.SchoolModel
	if err := q.Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "OK", dto.FromSchoolModels(list), &pagination)
}

func (ctl *SchoolController) GetByID(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if !helperAuth.ScopeAllowsSchool(c, id) {
		return httpErr(c, fiber.StatusForbidden, "School di luar scope akses Anda")
	}

	var ent model.SchoolModel
	if err := ctl.DB.
		First(&ent, "school_company_id = ? AND school_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonOK(c, "OK", dto.FromSchoolModel(ent))
}

/* ============================================
   PATCH
   PATCH /admin/schools/:id
============================================ */

func (ctl *SchoolController) Patch(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.SchoolModel
	if err := ctl.DB.
		First(&ent, "school_company_id = ? AND school_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var p dto.SchoolUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	if p.SchoolCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*p.SchoolCode))
		var cnt int64
		if err := ctl.DB.Model(&model.SchoolModel{}).
			Where("school_company_id = ? AND school_code = ? AND school_id <> ?", companyID, code, ent.SchoolID).
			Count(&cnt).Error; err != nil {
			return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa kode")
		}
		if cnt > 0 {
			return httpErr(c, fiber.StatusConflict, "Kode sekolah sudah dipakai")
		}
	}

	p.ApplyUpdates(&ent)
	if err := ctl.DB.Save(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memperbarui sekolah")
	}
	return helper.JsonUpdated(c, "Berhasil memperbarui sekolah", dto.FromSchoolModel(ent))
}

/* ============================================
   TOGGLE ACTIVE
   PATCH /admin/schools/:id/toggle-active
============================================ */

func (ctl *SchoolController) ToggleActive(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.SchoolModel
	if err := ctl.DB.
		First(&ent, "school_company_id = ? AND school_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if err := ctl.DB.Model(&ent).
		Update("school_is_active", !ent.SchoolIsActive).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengubah status")
	}
	ent.SchoolIsActive = !ent.SchoolIsActive
	return helper.JsonUpdated(c, "Status sekolah diperbarui", dto.FromSchoolModel(ent))
}

/* ============================================
   DELETE (soft) + cascade junction rows
   DELETE /admin/schools/:id
============================================ */

func (ctl *SchoolController) Delete(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.SchoolModel
	if err := ctl.DB.
		First(&ent, "school_company_id = ? AND school_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		// Baris junction yang menunjuk ke school ini ikut dibersihkan
		if err := tx.Exec("DELETE FROM department_schools WHERE department_school_school_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM grade_level_schools WHERE grade_level_school_school_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("school_profile_school_id = ?", id).
			Delete(&model.SchoolProfileModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ent).Error
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghapus sekolah")
	}
	return helper.JsonDeleted(c, "Berhasil menghapus sekolah", fiber.Map{"school_id": id})
}

/* ============================================
   PROFILE (extension table, upsert 1:1)
   GET /admin/schools/:id/profile
   PUT /admin/schools/:id/profile
============================================ */

func (ctl *SchoolController) GetProfile(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	// Pastikan induk milik tenant
	var cnt int64
	if err := ctl.DB.Model(&model.SchoolModel{}).
		Where("school_company_id = ? AND school_id = ?", companyID, id).
		Count(&cnt).Error; err != nil || cnt == 0 {
		return httpErr(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
	}

	var prof model.SchoolProfileModel
	if err := ctl.DB.First(&prof, "school_profile_school_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Profil belum diisi")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	return helper.JsonOK(c, "OK", dto.FromSchoolProfileModel(prof))
}

func (ctl *SchoolController) UpsertProfile(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var cnt int64
	if err := ctl.DB.Model(&model.SchoolModel{}).
		Where("school_company_id = ? AND school_id = ?", companyID, id).
		Count(&cnt).Error; err != nil || cnt == 0 {
		return httpErr(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
	}

	var p dto.SchoolProfileUpsertDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	// Mirror aturan lintas-step: guru aktif <= total guru
	if p.SchoolProfileTeacherCount != nil && p.SchoolProfileTeacherActiveCount != nil &&
		*p.SchoolProfileTeacherActiveCount > *p.SchoolProfileTeacherCount {
		return httpErr(c, fiber.StatusBadRequest, "Jumlah guru aktif tidak boleh melebihi total guru")
	}

	prof := p.ToModel(id)
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "school_profile_school_id"}},
		UpdateAll: true,
	}).Create(&prof).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menyimpan profil")
	}
	return helper.JsonUpdated(c, "Profil sekolah disimpan", dto.FromSchoolProfileModel(prof))
}

/* ============================================
   Shared: order-by resolver utk list endpoint
============================================ */

func orderExpr(prefix string, sortBy, sortDir *string) string {
	col := prefix + "_created_at"
	if sortBy != nil {
		switch strings.ToLower(strings.TrimSpace(*sortBy)) {
		case "name":
			col = prefix + "_name"
		case "code":
			col = prefix + "_code"
		case "updated_at":
			col = prefix + "_updated_at"
		}
	}
	dir := "DESC"
	if sortDir != nil && strings.EqualFold(strings.TrimSpace(*sortDir), "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}
