// file: internals/features/organization/branches/controller/branch_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "sekolahku_backend/internals/features/organization/branches/dto"
	model "sekolahku_backend/internals/features/organization/branches/model"
	schoolModel "sekolahku_backend/internals/features/organization/schools/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type BranchController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewBranchController(db *gorm.DB, v *validator.Validate) *BranchController {
	if v == nil {
		v = validator.New()
	}
	return &BranchController{DB: db, Validator: v}
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

// ensureSchoolOwned: parent school harus milik tenant dan dalam scope user.
func (ctl *BranchController) ensureSchoolOwned(c *fiber.Ctx, companyID, schoolID uuid.UUID) error {
	if !helperAuth.ScopeAllowsSchool(c, schoolID) {
		return fiber.NewError(fiber.StatusForbidden, "School di luar scope akses Anda")
	}
	var cnt int64
	if err := ctl.DB.Model(&schoolModel.SchoolModel{}).
		Where("school_company_id = ? AND school_id = ?", companyID, schoolID).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal validasi school")
	}
	if cnt == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "School tidak ditemukan")
	}
	return nil
}

/* ============================================
   CREATE
   POST /admin/branches
============================================ */

func (ctl *BranchController) Create(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var p dto.BranchCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if err := ctl.ensureSchoolOwned(c, companyID, p.BranchSchoolID); err != nil {
		return err
	}

	// Uniqueness code per school
	var cnt int64
	if err := ctl.DB.Model(&model.BranchModel{}).
		Where("branch_school_id = ? AND branch_code = ?", p.BranchSchoolID, p.BranchCode).
		Count(&cnt).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa kode")
	}
	if cnt > 0 {
		return httpErr(c, fiber.StatusConflict, "Kode cabang sudah dipakai di sekolah ini")
	}

	ent := p.ToModel(companyID)
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal membuat cabang")
	}
	return helper.JsonCreated(c, "Berhasil membuat cabang", dto.FromBranchModel(ent, nil))
}

/* ============================================
   LIST (FK di-resolve ke nama school) + GET
   GET /admin/branches
============================================ */

func (ctl *BranchController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var f dto.BranchFilterDTO
	if err := c.QueryParser(&f); err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(&f); err != nil {
		return httpErr(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.BranchModel{}).
		Where("branch_company_id = ?", companyID)

	if ids, restricted := helperAuth.GetScopeSchoolIDs(c); restricted {
		q = q.Where("branch_school_id IN ?", ids)
	}
	if f.SchoolID != nil {
		q = q.Where("branch_school_id = ?", *f.SchoolID)
	}
	if f.Q != nil && strings.TrimSpace(*f.Q) != "" {
		needle := "%" + strings.TrimSpace(*f.Q) + "%"
		q = q.Where("branch_name ILIKE ? OR branch_code ILIKE ?", needle, needle)
	}
	if f.Active != nil {
		q = q.Where("branch_is_active = ?", *f.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var list []model.BranchModel
	if err := q.Order(orderExpr("branch", f.SortBy, f.SortDir)).
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	// Resolve nama school sekali jalan (bukan N+1)
	nameByID, err := ctl.schoolNames(list)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil nama school")
	}
	out := make([]dto.BranchResponseDTO, 0, len(list))
	for _, it := range list {
		var name *string
		if n, ok := nameByID[it.BranchSchoolID]; ok {
			name = &n
		}
		out = append(out, dto.FromBranchModel(it, name))
	}

	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	return helper.JsonList(c, "OK", out, &pagination)
}

func (ctl *BranchController) schoolNames(list []model.BranchModel) (map[uuid.UUID]string, error) {
	if len(list) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	idSet := make(map[uuid.UUID]struct{}, len(list))
	ids := make([]uuid.UUID, 0, len(list))
	for _, it := range list {
		if _, ok := idSet[it.BranchSchoolID]; !ok {
			idSet[it.BranchSchoolID] = struct{}{}
			ids = append(ids, it.BranchSchoolID)
		}
	}
	var rows []struct {
		SchoolID   uuid.UUID
		SchoolName string
	}
	if err := ctl.DB.Model(&schoolModel.SchoolModel{}).
		Select("school_id, school_name").
		Where("school_id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		out[r.SchoolID] = r.SchoolName
	}
	return out, nil
}

func (ctl *BranchController) GetByID(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.BranchModel
	if err := ctl.DB.
		First(&ent, "branch_company_id = ? AND branch_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Cabang tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonOK(c, "OK", dto.FromBranchModel(ent, nil))
}

/* ============================================
   PATCH
   PATCH /admin/branches/:id
============================================ */

func (ctl *BranchController) Patch(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.BranchModel
	if err := ctl.DB.
		First(&ent, "branch_company_id = ? AND branch_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Cabang tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var p dto.BranchUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	// Jika pindah school, validasi parent baru milik tenant
	if p.BranchSchoolID != nil && *p.BranchSchoolID != ent.BranchSchoolID {
		if err := ctl.ensureSchoolOwned(c, companyID, *p.BranchSchoolID); err != nil {
			return err
		}
	}

	if p.BranchCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*p.BranchCode))
		targetSchool := ent.BranchSchoolID
		if p.BranchSchoolID != nil {
			targetSchool = *p.BranchSchoolID
		}
		var cnt int64
		if err := ctl.DB.Model(&model.BranchModel{}).
			Where("branch_school_id = ? AND branch_code = ? AND branch_id <> ?", targetSchool, code, ent.BranchID).
			Count(&cnt).Error; err != nil {
			return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa kode")
		}
		if cnt > 0 {
			return httpErr(c, fiber.StatusConflict, "Kode cabang sudah dipakai di sekolah ini")
		}
	}

	p.ApplyUpdates(&ent)
	if err := ctl.DB.Save(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memperbarui cabang")
	}
	return helper.JsonUpdated(c, "Berhasil memperbarui cabang", dto.FromBranchModel(ent, nil))
}

/* ============================================
   TOGGLE ACTIVE
   PATCH /admin/branches/:id/toggle-active
============================================ */

func (ctl *BranchController) ToggleActive(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.BranchModel
	if err := ctl.DB.
		First(&ent, "branch_company_id = ? AND branch_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Cabang tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if err := ctl.DB.Model(&ent).
		Update("branch_is_active", !ent.BranchIsActive).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengubah status")
	}
	ent.BranchIsActive = !ent.BranchIsActive
	return helper.JsonUpdated(c, "Status cabang diperbarui", dto.FromBranchModel(ent, nil))
}

/* ============================================
   DELETE (soft) + cascade junction rows
   DELETE /admin/branches/:id
============================================ */

func (ctl *BranchController) Delete(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var ent model.BranchModel
	if err := ctl.DB.
		First(&ent, "branch_company_id = ? AND branch_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Cabang tidak ditemukan")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM department_branches WHERE department_branch_branch_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("branch_profile_branch_id = ?", id).
			Delete(&model.BranchProfileModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ent).Error
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghapus cabang")
	}
	return helper.JsonDeleted(c, "Berhasil menghapus cabang", fiber.Map{"branch_id": id})
}

/* ============================================
   PROFILE (extension table, upsert 1:1)
============================================ */

func (ctl *BranchController) GetProfile(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var cnt int64
	if err := ctl.DB.Model(&model.BranchModel{}).
		Where("branch_company_id = ? AND branch_id = ?", companyID, id).
		Count(&cnt).Error; err != nil || cnt == 0 {
		return httpErr(c, fiber.StatusNotFound, "Cabang tidak ditemukan")
	}

	var prof model.BranchProfileModel
	if err := ctl.DB.First(&prof, "branch_profile_branch_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Profil belum diisi")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	return helper.JsonOK(c, "OK", dto.FromBranchProfileModel(prof))
}

func (ctl *BranchController) UpsertProfile(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var cnt int64
	if err := ctl.DB.Model(&model.BranchModel{}).
		Where("branch_company_id = ? AND branch_id = ?", companyID, id).
		Count(&cnt).Error; err != nil || cnt == 0 {
		return httpErr(c, fiber.StatusNotFound, "Cabang tidak ditemukan")
	}

	var p dto.BranchProfileUpsertDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	prof := p.ToModel(id)
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "branch_profile_branch_id"}},
		UpdateAll: true,
	}).Create(&prof).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menyimpan profil")
	}
	return helper.JsonUpdated(c, "Profil cabang disimpan", dto.FromBranchProfileModel(prof))
}

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
