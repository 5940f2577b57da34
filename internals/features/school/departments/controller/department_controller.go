// file: internals/features/school/departments/controller/department_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	branchModel "sekolahku_backend/internals/features/organization/branches/model"
	schoolModel "sekolahku_backend/internals/features/organization/schools/model"
	dto "sekolahku_backend/internals/features/school/departments/dto"
	model "sekolahku_backend/internals/features/school/departments/model"
	"sekolahku_backend/internals/features/school/departments/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type DepartmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewDepartmentController(db *gorm.DB, v *validator.Validate) *DepartmentController {
	if v == nil {
		v = validator.New()
	}
	return &DepartmentController{DB: db, Validator: v}
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

func (ctl *DepartmentController) find(c *fiber.Ctx) (*model.DepartmentModel, error) {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var ent model.DepartmentModel
	if err := ctl.DB.
		First(&ent, "department_company_id = ? AND department_id = ?", companyID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Departemen tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return &ent, nil
}

// ensureRelationsOwned cek parent/school/branch semuanya milik tenant.
func (ctl *DepartmentController) ensureRelationsOwned(companyID uuid.UUID, parentID *uuid.UUID, schoolIDs, branchIDs []uuid.UUID) error {
	var cnt int64
	if parentID != nil {
		if err := ctl.DB.Model(&model.DepartmentModel{}).
			Where("department_company_id = ? AND department_id = ?", companyID, *parentID).
			Count(&cnt).Error; err != nil || cnt == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Departemen induk tidak ditemukan")
		}
	}
	if len(schoolIDs) > 0 {
		if err := ctl.DB.Model(&schoolModel.SchoolModel{}).
			Where("school_company_id = ? AND school_id IN ?", companyID, schoolIDs).
			Count(&cnt).Error; err != nil || cnt != int64(len(uniq(schoolIDs))) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Ada school_id yang tidak valid")
		}
	}
	if len(branchIDs) > 0 {
		if err := ctl.DB.Model(&branchModel.BranchModel{}).
			Where("branch_company_id = ? AND branch_id IN ?", companyID, branchIDs).
			Count(&cnt).Error; err != nil || cnt != int64(len(uniq(branchIDs))) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Ada branch_id yang tidak valid")
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

// reconcileJunctions replace-all dua junction departemen.
func reconcileJunctions(tx *gorm.DB, depID uuid.UUID, schoolIDs, branchIDs *[]uuid.UUID) error {
	if schoolIDs != nil {
		if err := helper.ReconcileJunction(tx, "department_schools",
			"department_school_department_id", "department_school_school_id",
			depID, *schoolIDs); err != nil {
			return err
		}
	}
	if branchIDs != nil {
		if err := helper.ReconcileJunction(tx, "department_branches",
			"department_branch_department_id", "department_branch_branch_id",
			depID, *branchIDs); err != nil {
			return err
		}
	}
	return nil
}

/* ============================================
   CREATE (+ junctions dalam satu transaksi)
   POST /admin/departments
============================================ */

func (ctl *DepartmentController) Create(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var p dto.DepartmentCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if err := ctl.ensureRelationsOwned(companyID, p.DepartmentParentID, p.SchoolIDs, p.BranchIDs); err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	var cnt int64
	if err := ctl.DB.Model(&model.DepartmentModel{}).
		Where("department_company_id = ? AND department_code = ?", companyID, p.DepartmentCode).
		Count(&cnt).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa kode")
	}
	if cnt > 0 {
		return httpErr(c, fiber.StatusConflict, "Kode departemen sudah dipakai")
	}

	ent := p.ToModel(companyID)

	// Create dulu (butuh id), lalu junction — satu transaksi.
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ent).Error; err != nil {
			return err
		}
		return reconcileJunctions(tx, ent.DepartmentID, &p.SchoolIDs, &p.BranchIDs)
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal membuat departemen")
	}

	return helper.JsonCreated(c, "Berhasil membuat departemen",
		dto.FromDepartmentModel(ent, uniq(p.SchoolIDs), nil, uniq(p.BranchIDs)))
}

/* ============================================
   LIST (expand nama sekolah) + GET
   GET /admin/departments
   GET /admin/departments/:id
============================================ */

func (ctl *DepartmentController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var f dto.DepartmentFilterDTO
	if err := c.QueryParser(&f); err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(&f); err != nil {
		return httpErr(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.DepartmentModel{}).
		Where("department_company_id = ?", companyID)

	if f.Q != nil && strings.TrimSpace(*f.Q) != "" {
		needle := "%" + strings.TrimSpace(*f.Q) + "%"
		q = q.Where("department_name ILIKE ? OR department_code ILIKE ?", needle, needle)
	}
	if f.Active != nil {
		q = q.Where("department_is_active = ?", *f.Active)
	}
	if f.SchoolID != nil {
		q = q.Where(`department_id IN (
			SELECT department_school_department_id FROM department_schools
			WHERE department_school_school_id = ?)`, *f.SchoolID)
	}
	if f.BranchID != nil {
		q = q.Where(`department_id IN (
			SELECT department_branch_department_id FROM department_branches
			WHERE department_branch_branch_id = ?)`, *f.BranchID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var list []model.DepartmentModel
	if err := q.Order("department_created_at ASC").
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

// expandList resolve relasi school (id + nama) dan branch per halaman (hindari N+1).
func (ctl *DepartmentController) expandList(list []model.DepartmentModel) ([]dto.DepartmentResponseDTO, error) {
	resp := make([]dto.DepartmentResponseDTO, 0, len(list))
	if len(list) == 0 {
		return resp, nil
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, it := range list {
		ids = append(ids, it.DepartmentID)
	}

	var schoolRows []model.DepartmentSchoolModel
	if err := ctl.DB.
		Where("department_school_department_id IN ?", ids).
		Find(&schoolRows).Error; err != nil {
		return nil, err
	}
	var branchRows []model.DepartmentBranchModel
	if err := ctl.DB.
		Where("department_branch_department_id IN ?", ids).
		Find(&branchRows).Error; err != nil {
		return nil, err
	}

	schoolsByDep := map[uuid.UUID][]uuid.UUID{}
	allSchoolIDs := make([]uuid.UUID, 0, len(schoolRows))
	for _, r := range schoolRows {
		schoolsByDep[r.DepartmentSchoolDepartmentID] = append(schoolsByDep[r.DepartmentSchoolDepartmentID], r.DepartmentSchoolSchoolID)
		allSchoolIDs = append(allSchoolIDs, r.DepartmentSchoolSchoolID)
	}
	branchesByDep := map[uuid.UUID][]uuid.UUID{}
	for _, r := range branchRows {
		branchesByDep[r.DepartmentBranchDepartmentID] = append(branchesByDep[r.DepartmentBranchDepartmentID], r.DepartmentBranchBranchID)
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
		sids := schoolsByDep[it.DepartmentID]
		snames := make([]string, 0, len(sids))
		for _, sid := range sids {
			if n, ok := names[sid]; ok {
				snames = append(snames, n)
			}
		}
		resp = append(resp, dto.FromDepartmentModel(it, sids, snames, branchesByDep[it.DepartmentID]))
	}
	return resp, nil
}

func (ctl *DepartmentController) GetByID(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}
	resp, err2 := ctl.expandList([]model.DepartmentModel{*ent})
	if err2 != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal resolve relasi")
	}
	return helper.JsonOK(c, "OK", resp[0])
}

/* ============================================
   TREE (hutan departemen satu tenant)
   GET /admin/departments/tree
============================================ */

func (ctl *DepartmentController) Tree(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var list []model.DepartmentModel
	if err := ctl.DB.
		Where("department_company_id = ?", companyID).
		Order("department_created_at ASC").
		Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	roots := service.BuildTree(list)
	return helper.JsonOK(c, "OK", toTreeDTO(roots))
}

func toTreeDTO(nodes []*service.DepartmentNode) []dto.DepartmentTreeNodeDTO {
	out := make([]dto.DepartmentTreeNodeDTO, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.DepartmentTreeNodeDTO{
			DepartmentID:       n.Department.DepartmentID,
			DepartmentName:     n.Department.DepartmentName,
			DepartmentCode:     n.Department.DepartmentCode,
			DepartmentParentID: n.Department.DepartmentParentID,
			DepartmentIsActive: n.Department.DepartmentIsActive,
			Children:           toTreeDTO(n.Children),
		})
	}
	return out
}

/* ============================================
   PATCH (+ junction replace-all bila dikirim)
   PATCH /admin/departments/:id
============================================ */

func (ctl *DepartmentController) Patch(c *fiber.Ctx) error {
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

	var p dto.DepartmentUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	if p.DepartmentParentID != nil && *p.DepartmentParentID == ent.DepartmentID {
		return httpErr(c, fiber.StatusUnprocessableEntity, "Departemen tidak boleh menjadi induk dirinya sendiri")
	}

	var sids, bids []uuid.UUID
	if p.SchoolIDs != nil {
		sids = *p.SchoolIDs
	}
	if p.BranchIDs != nil {
		bids = *p.BranchIDs
	}
	if err := ctl.ensureRelationsOwned(companyID, p.DepartmentParentID, sids, bids); err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if p.DepartmentCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*p.DepartmentCode))
		var cnt int64
		if err := ctl.DB.Model(&model.DepartmentModel{}).
			Where("department_company_id = ? AND department_code = ? AND department_id <> ?", companyID, code, ent.DepartmentID).
			Count(&cnt).Error; err != nil {
			return httpErr(c, fiber.StatusInternalServerError, "Gagal memeriksa kode")
		}
		if cnt > 0 {
			return httpErr(c, fiber.StatusConflict, "Kode departemen sudah dipakai")
		}
	}

	p.ApplyUpdates(ent)
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ent).Error; err != nil {
			return err
		}
		return reconcileJunctions(tx, ent.DepartmentID, p.SchoolIDs, p.BranchIDs)
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memperbarui departemen")
	}

	resp, err2 := ctl.expandList([]model.DepartmentModel{*ent})
	if err2 != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal resolve relasi")
	}
	return helper.JsonUpdated(c, "Berhasil memperbarui departemen", resp[0])
}

/* ============================================
   TOGGLE ACTIVE
   PATCH /admin/departments/:id/toggle-active
============================================ */

func (ctl *DepartmentController) ToggleActive(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Model(ent).
		Update("department_is_active", !ent.DepartmentIsActive).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal mengubah status")
	}
	ent.DepartmentIsActive = !ent.DepartmentIsActive
	return helper.JsonUpdated(c, "Status departemen diperbarui",
		dto.FromDepartmentModel(*ent, nil, nil, nil))
}

/* ============================================
   DELETE (soft) + cascade junction rows
   DELETE /admin/departments/:id
============================================ */

func (ctl *DepartmentController) Delete(c *fiber.Ctx) error {
	ent, err := ctl.find(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM department_schools WHERE department_school_department_id = ?",
			ent.DepartmentID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM department_branches WHERE department_branch_department_id = ?",
			ent.DepartmentID).Error; err != nil {
			return err
		}
		// Anak yang menunjuk departemen ini jadi dangling → ter-demote ke
		// root oleh pembangun pohon; parent id tidak perlu dibersihkan.
		return tx.Delete(ent).Error
	}); err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghapus departemen")
	}
	return helper.JsonDeleted(c, "Berhasil menghapus departemen",
		fiber.Map{"department_id": ent.DepartmentID})
}
