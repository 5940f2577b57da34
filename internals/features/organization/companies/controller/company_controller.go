// file: internals/features/organization/companies/controller/company_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/constants"
	dto "sekolahku_backend/internals/features/organization/companies/dto"
	model "sekolahku_backend/internals/features/organization/companies/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type CompanyController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCompanyController(db *gorm.DB, v *validator.Validate) *CompanyController {
	if v == nil {
		v = validator.New()
	}
	return &CompanyController{DB: db, Validator: v}
}

/* ============================================
   RESP/ERR helpers
============================================ */

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

// ensureCompanyAccess: tenant di token harus sama dengan :id, kecuali superadmin.
func ensureCompanyAccess(c *fiber.Ctx, companyID uuid.UUID) error {
	if helperAuth.HasAnyRole(c, []string{constants.RoleSuperadmin}) {
		return nil
	}
	tokenCompany, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	if tokenCompany != companyID {
		return fiber.NewError(fiber.StatusForbidden, "Tidak boleh mengakses company lain")
	}
	return nil
}

/* ============================================
   CREATE (superadmin)
   POST /admin/companies
============================================ */

func (ctl *CompanyController) Create(c *fiber.Ctx) error {
	var p dto.CompanyCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	// === AUTO SLUG ===
	if p.CompanySlug == "" {
		p.CompanySlug = helper.Slugify(p.CompanyName, 100)
	} else {
		p.CompanySlug = helper.Slugify(p.CompanySlug, 100)
	}
	slug, err := helper.EnsureUniqueSlugCI(c.Context(), ctl.DB, "companies", "company_slug", p.CompanySlug, nil, 100)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa slug")
	}
	p.CompanySlug = slug

	// Uniqueness code (global, company adalah akar tenant)
	var cnt int64
	if err := ctl.DB.Model(&model.CompanyModel{}).
		Where("company_code = ?", p.CompanyCode).
		Count(&cnt).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa kode")
	}
	if cnt > 0 {
		return httpErr(c, fiber.StatusConflict, "Kode company sudah dipakai")
	}

	ent := p.ToModel()
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal membuat company")
	}
	return helper.JsonCreated(c, "Berhasil membuat company", dto.FromCompanyModel(ent))
}

/* ============================================
   LIST + GET
   GET /admin/companies
   GET /admin/companies/:id
============================================ */

func (ctl *CompanyController) List(c *fiber.Ctx) error {
	var f dto.CompanyFilterDTO
	if err := c.QueryParser(&f); err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(&f); err != nil {
		return httpErr(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.CompanyModel{})

	// Non-superadmin hanya melihat company miliknya sendiri
	if !helperAuth.HasAnyRole(c, []string{constants.RoleSuperadmin}) {
		companyID, err := helperAuth.GetCompanyID(c)
		if err != nil {
			return err
		}
		q = q.Where("company_id = ?", companyID)
	}

	if f.Q != nil && strings.TrimSpace(*f.Q) != "" {
		needle := "%" + strings.TrimSpace(*f.Q) + "%"
		q = q.Where("company_name ILIKE ? OR company_code ILIKE ?", needle, needle)
	}
	if f.Active != nil {
		q = q.Where("company_is_active = ?", *f.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	q = q.Order(orderExpr("company", f.SortBy, f.SortDir)).
		Offset(pg.Offset).Limit(pg.Limit)

	var list []model.CompanyModel
	if err := q.Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "OK", dto.FromCompanyModels(list), &pagination)
}

func (ctl *CompanyController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ensureCompanyAccess(c, id); err != nil {
		return err
	}

	var ent model.CompanyModel
	if err := ctl.DB.First(&ent, "company_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Company tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonOK(c, "OK", dto.FromCompanyModel(ent))
}

/* ============================================
   PATCH (owner)
   PATCH /admin/companies/:id
============================================ */

func (ctl *CompanyController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ensureCompanyAccess(c, id); err != nil {
		return err
	}

	var ent model.CompanyModel
	if err := ctl.DB.First(&ent, "company_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Company tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var p dto.CompanyUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	// Uniqueness code bila diganti
	if p.CompanyCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*p.CompanyCode))
		var cnt int64
		if err := ctl.DB.Model(&model.CompanyModel{}).
			Where("company_code = ? AND company_id <> ?", code, ent.CompanyID).
			Count(&cnt).Error; err != nil {
			return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa kode")
		}
		if cnt > 0 {
			return httpErr(c, fiber.StatusConflict, "Kode company sudah dipakai")
		}
	}

	p.ApplyUpdates(&ent)
	if err := ctl.DB.Save(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memperbarui company")
	}
	return helper.JsonUpdated(c, "Berhasil memperbarui company", dto.FromCompanyModel(ent))
}

/* ============================================
   TOGGLE ACTIVE
   PATCH /admin/companies/:id/toggle-active
============================================ */

func (ctl *CompanyController) ToggleActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ensureCompanyAccess(c, id); err != nil {
		return err
	}

	var ent model.CompanyModel
	if err := ctl.DB.First(&ent, "company_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Company tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	// Flip hanya kolom status; field lain tidak tersentuh.
	if err := ctl.DB.Model(&ent).
		Update("company_is_active", !ent.CompanyIsActive).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengubah status")
	}
	ent.CompanyIsActive = !ent.CompanyIsActive
	return helper.JsonUpdated(c, "Status company diperbarui", dto.FromCompanyModel(ent))
}

/* ============================================
   DELETE (soft) — owner
   DELETE /admin/companies/:id
============================================ */

func (ctl *CompanyController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ensureCompanyAccess(c, id); err != nil {
		return err
	}

	var ent model.CompanyModel
	if err := ctl.DB.First(&ent, "company_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Company tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		// Profil extension ikut terhapus bersama induknya.
		if err := tx.Where("company_profile_company_id = ?", id).
			Delete(&model.CompanyProfileModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ent).Error
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghapus company")
	}
	return helper.JsonDeleted(c, "Berhasil menghapus company", fiber.Map{"company_id": id})
}

/* ============================================
   PROFILE (extension table, upsert 1:1)
   GET /admin/companies/:id/profile
   PUT /admin/companies/:id/profile
============================================ */

func (ctl *CompanyController) GetProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ensureCompanyAccess(c, id); err != nil {
		return err
	}

	var prof model.CompanyProfileModel
	if err := ctl.DB.First(&prof, "company_profile_company_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Profil belum diisi")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	return helper.JsonOK(c, "OK", dto.FromCompanyProfileModel(prof))
}

func (ctl *CompanyController) UpsertProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ensureCompanyAccess(c, id); err != nil {
		return err
	}

	// Induk harus ada
	var cnt int64
	if err := ctl.DB.Model(&model.CompanyModel{}).
		Where("company_id = ?", id).Count(&cnt).Error; err != nil || cnt == 0 {
		return httpErr(c, fiber.StatusNotFound, "Company tidak ditemukan")
	}

	var p dto.CompanyProfileUpsertDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	prof := p.ToModel(id)
	// Upsert: tepat satu baris per company_id.
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_profile_company_id"}},
		UpdateAll: true,
	}).Create(&prof).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menyimpan profil")
	}
	return helper.JsonUpdated(c, "Profil company disimpan", dto.FromCompanyProfileModel(prof))
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
