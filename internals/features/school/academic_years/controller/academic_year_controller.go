// file: internals/features/school/academic_years/controller/academic_year_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/school/academic_years/dto"
	model "sekolahku_backend/internals/features/school/academic_years/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type AcademicYearController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAcademicYearController(db *gorm.DB, v *validator.Validate) *AcademicYearController {
	if v == nil {
		v = validator.New()
	}
	return &AcademicYearController{DB: db, Validator: v}
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

func (ctl *AcademicYearController) find(c *fiber.Ctx) (*model.AcademicYearModel, error) {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var ent model.AcademicYearModel
	if err := ctl.DB.
		First(&ent, "academic_year_company_id = ? AND academic_year_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return &ent, nil
}

/* ============================================
   CREATE
   POST /admin/academic-years
============================================ */

func (ctl *AcademicYearController) Create(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var p dto.AcademicYearCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	// Nama tahun ajaran unik per tenant ("2026/2027" cuma boleh sekali)
	var cnt int64
	if err := ctl.DB.Model(&model.AcademicYearModel{}).
		Where("academic_year_company_id = ? AND academic_year_name = ?", companyID, p.AcademicYearName).
		Count(&cnt).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa nama")
	}
	if cnt > 0 {
		return httpErr(c, fiber.StatusConflict, "Tahun ajaran dengan nama itu sudah ada")
	}

	ent := p.ToModel(companyID)
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal membuat tahun ajaran")
	}
	return helper.JsonCreated(c, "Berhasil membuat tahun ajaran", dto.FromAcademicYearModel(ent))
}

/* ============================================
   LIST + GET
   GET /admin/academic-years (default: terbaru dulu, by start date)
   GET /admin/academic-years/:id
============================================ */

func (ctl *AcademicYearController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var f dto.AcademicYearFilterDTO
	if err := c.QueryParser(&f); err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(&f); err != nil {
		return httpErr(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.AcademicYearModel{}).
		Where("academic_year_company_id = ?", companyID)

	if f.Q != nil && strings.TrimSpace(*f.Q) != "" {
		needle := "%" + strings.TrimSpace(*f.Q) + "%"
		q = q.Where("academic_year_name ILIKE ?", needle)
	}
	if f.Active != nil {
		q = q.Where("academic_year_is_active = ?", *f.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var list []model.AcademicYearModel
	if err := q.Order("academic_year_start_date DESC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "OK", dto.FromAcademicYearModels(list), &pagination)
}

func (ctl *AcademicYearController) GetByID(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromAcademicYearModel(*ent))
}

/* ============================================
   PATCH
   PATCH /admin/academic-years/:id
============================================ */

func (ctl *AcademicYearController) Patch(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	var p dto.AcademicYearUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	p.ApplyUpdates(ent)
	// Periode dicek setelah merge: salah satu tanggal boleh datang dari data lama.
	if !ent.AcademicYearEndDate.After(ent.AcademicYearStartDate) {
		return httpErr(c, fiber.StatusUnprocessableEntity, "Tanggal selesai harus setelah tanggal mulai")
	}

	if err := ctl.DB.Save(ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memperbarui tahun ajaran")
	}
	return helper.JsonUpdated(c, "Berhasil memperbarui tahun ajaran", dto.FromAcademicYearModel(*ent))
}

/* ============================================
   TOGGLE ACTIVE + SET ACTIVE
   PATCH /admin/academic-years/:id/toggle-active
   PATCH /admin/academic-years/:id/set-active
============================================ */

func (ctl *AcademicYearController) ToggleActive(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Model(ent).
		Update("academic_year_is_active", !ent.AcademicYearIsActive).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengubah status")
	}
	ent.AcademicYearIsActive = !ent.AcademicYearIsActive
	return helper.JsonUpdated(c, "Status tahun ajaran diperbarui", dto.FromAcademicYearModel(*ent))
}

// SetActive menjadikan tahun ajaran ini satu-satunya yang aktif di tenant.
func (ctl *AcademicYearController) SetActive(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.AcademicYearModel{}).
			Where("academic_year_company_id = ? AND academic_year_is_active = TRUE", ent.AcademicYearCompanyID).
			Update("academic_year_is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(ent).
			Update("academic_year_is_active", true).Error
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengaktifkan tahun ajaran")
	}
	ent.AcademicYearIsActive = true
	return helper.JsonUpdated(c, "Tahun ajaran diaktifkan", dto.FromAcademicYearModel(*ent))
}

/* ============================================
   DELETE (soft)
   DELETE /admin/academic-years/:id
============================================ */

func (ctl *AcademicYearController) Delete(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Delete(ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghapus tahun ajaran")
	}
	return helper.JsonDeleted(c, "Berhasil menghapus tahun ajaran",
		fiber.Map{"academic_year_id": ent.AcademicYearID})
}
