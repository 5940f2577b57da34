// file: internals/features/organization/wizard/controller/wizard_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	branchModel "sekolahku_backend/internals/features/organization/branches/model"
	companyModel "sekolahku_backend/internals/features/organization/companies/model"
	schoolModel "sekolahku_backend/internals/features/organization/schools/model"
	dto "sekolahku_backend/internals/features/organization/wizard/dto"
	model "sekolahku_backend/internals/features/organization/wizard/model"
	wizard "sekolahku_backend/internals/features/organization/wizard/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type WizardController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewWizardController(db *gorm.DB, v *validator.Validate) *WizardController {
	if v == nil {
		v = validator.New()
	}
	return &WizardController{DB: db, Validator: v}
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
   Internal: load + guard draft
============================================ */

func (ctl *WizardController) loadDraft(c *fiber.Ctx) (*model.OrganizationDraftModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID draft tidak valid")
	}

	var d model.OrganizationDraftModel
	if err := ctl.DB.First(&d, "organization_draft_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Draft tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil draft")
	}

	// Tenant guard: draft milik company di token (superadmin bebas).
	if !helperAuth.HasAnyRole(c, []string{constants.RoleSuperadmin}) {
		companyID, err := helperAuth.GetCompanyID(c)
		if err != nil {
			return nil, err
		}
		if d.OrganizationDraftCompanyID == nil || *d.OrganizationDraftCompanyID != companyID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Tidak boleh mengakses draft company lain")
		}
	}
	return &d, nil
}

func (ctl *WizardController) respondDraft(c *fiber.Ctx, msg string, d *model.OrganizationDraftModel) error {
	rec, err := wizard.DecodeRecord(d.OrganizationDraftRecord)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Record draft korup")
	}
	return helper.JsonOK(c, msg, dto.FromDraftModel(*d, rec))
}

func mapWizardErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, wizard.ErrDraftSubmitted):
		return httpErr(c, fiber.StatusConflict, "Draft sudah disubmit dan tidak bisa diubah")
	case errors.Is(err, wizard.ErrStepOutOfRange), errors.Is(err, wizard.ErrAlreadyAtFirst):
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, wizard.ErrStepNotReached):
		return httpErr(c, fiber.StatusUnprocessableEntity, "Step tujuan belum bisa diakses")
	case errors.Is(err, wizard.ErrUnknownKind):
		return httpErr(c, fiber.StatusBadRequest, "Jenis entity tidak dikenal")
	default:
		return httpErr(c, fiber.StatusInternalServerError, "Gagal memproses draft")
	}
}

/* ============================================
   CREATE DRAFT
   POST /admin/organization-wizard
============================================ */

func (ctl *WizardController) CreateDraft(c *fiber.Ctx) error {
	var p dto.WizardCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	isSuper := helperAuth.HasAnyRole(c, []string{constants.RoleSuperadmin})

	// Company baru hanya boleh dibuat superadmin (akar tenant).
	if p.EntityKind == model.DraftKindCompany && p.Mode == model.DraftModeCreate && !isSuper {
		return httpErr(c, fiber.StatusForbidden, constants.RoleErrorOwner("membuat company"))
	}

	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}

	var companyID *uuid.UUID
	if !isSuper || p.EntityKind != model.DraftKindCompany {
		cid, err := helperAuth.GetCompanyID(c)
		if err != nil && p.EntityKind != model.DraftKindCompany {
			return err
		}
		if err == nil {
			companyID = &cid
		}
	}

	// Mode edit: target harus ada dan satu tenant.
	if p.Mode == model.DraftModeEdit {
		if p.TargetID == nil {
			return httpErr(c, fiber.StatusBadRequest, "Mode edit membutuhkan target_id")
		}
		if err := ctl.ensureTargetExists(p.EntityKind, *p.TargetID, companyID); err != nil {
			return httpErr(c, fiber.StatusNotFound, "Target edit tidak ditemukan")
		}
	}

	d := model.OrganizationDraftModel{
		OrganizationDraftCompanyID:  companyID,
		OrganizationDraftCreatedBy:  userID,
		OrganizationDraftEntityKind: p.EntityKind,
		OrganizationDraftMode:       p.Mode,
		OrganizationDraftTargetID:   p.TargetID,
		OrganizationDraftCurrentStep: 0,
		OrganizationDraftRecord:      []byte("{}"),
	}

	// Mode edit: prefill record dari entity existing biar form tidak kosong.
	if p.Mode == model.DraftModeEdit {
		rec, err := ctl.prefillRecord(p.EntityKind, *p.TargetID)
		if err == nil && rec != nil {
			if raw, err2 := wizard.EncodeRecord(rec); err2 == nil {
				d.OrganizationDraftRecord = raw
			}
		}
	}

	if err := ctl.DB.Create(&d).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal membuat draft")
	}

	rec, _ := wizard.DecodeRecord(d.OrganizationDraftRecord)
	return helper.JsonCreated(c, "Draft wizard dibuat", dto.FromDraftModel(d, rec))
}

func (ctl *WizardController) ensureTargetExists(kind string, id uuid.UUID, companyID *uuid.UUID) error {
	var cnt int64
	switch kind {
	case model.DraftKindCompany:
		q := ctl.DB.Model(&companyModel.CompanyModel{}).Where("company_id = ?", id)
		return firstCount(q, &cnt)
	case model.DraftKindSchool:
		q := ctl.DB.Model(&schoolModel.SchoolModel{}).Where("school_id = ?", id)
		if companyID != nil {
			q = q.Where("school_company_id = ?", *companyID)
		}
		return firstCount(q, &cnt)
	case model.DraftKindBranch:
		q := ctl.DB.Model(&branchModel.BranchModel{}).Where("branch_id = ?", id)
		if companyID != nil {
			q = q.Where("branch_company_id = ?", *companyID)
		}
		return firstCount(q, &cnt)
	}
	return errors.New("kind tidak dikenal")
}

func firstCount(q *gorm.DB, cnt *int64) error {
	if err := q.Count(cnt).Error; err != nil {
		return err
	}
	if *cnt == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// prefillRecord mengisi record awal mode edit dari entity + profilnya.
func (ctl *WizardController) prefillRecord(kind string, id uuid.UUID) (map[string]any, error) {
	merged := map[string]any{}

	merge := func(src any) error {
		b, err := sonic.Marshal(src)
		if err != nil {
			return err
		}
		part := map[string]any{}
		if err := sonic.Unmarshal(b, &part); err != nil {
			return err
		}
		for k, v := range part {
			merged[k] = v
		}
		return nil
	}

	switch kind {
	case model.DraftKindCompany:
		var ent companyModel.CompanyModel
		if err := ctl.DB.First(&ent, "company_id = ?", id).Error; err != nil {
			return nil, err
		}
		if err := merge(ent); err != nil {
			return nil, err
		}
		var prof companyModel.CompanyProfileModel
		if err := ctl.DB.First(&prof, "company_profile_company_id = ?", id).Error; err == nil {
			_ = merge(prof)
		}
	case model.DraftKindSchool:
		var ent schoolModel.SchoolModel
		if err := ctl.DB.First(&ent, "school_id = ?", id).Error; err != nil {
			return nil, err
		}
		if err := merge(ent); err != nil {
			return nil, err
		}
		var prof schoolModel.SchoolProfileModel
		if err := ctl.DB.First(&prof, "school_profile_school_id = ?", id).Error; err == nil {
			_ = merge(prof)
		}
	case model.DraftKindBranch:
		var ent branchModel.BranchModel
		if err := ctl.DB.First(&ent, "branch_id = ?", id).Error; err != nil {
			return nil, err
		}
		if err := merge(ent); err != nil {
			return nil, err
		}
		var prof branchModel.BranchProfileModel
		if err := ctl.DB.First(&prof, "branch_profile_branch_id = ?", id).Error; err == nil {
			_ = merge(prof)
		}
	}

	// Buang field yang bukan input form (audit, pk, dll) dengan menyaring
	// hanya field yang dikenal wizard.
	allowed := map[string]struct{}{}
	for _, f := range wizard.CoreFieldsFor(kind) {
		allowed[f] = struct{}{}
	}
	for _, f := range wizard.ProfileFieldsFor(kind) {
		allowed[f] = struct{}{}
	}
	out := map[string]any{}
	for k, v := range merged {
		if _, ok := allowed[k]; ok && v != nil {
			out[k] = v
		}
	}
	return out, nil
}

/* ============================================
   GET DRAFT
   GET /admin/organization-wizard/:id
============================================ */

func (ctl *WizardController) GetDraft(c *fiber.Ctx) error {
	d, err := ctl.loadDraft(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}
	return ctl.respondDraft(c, "OK", d)
}

/* ============================================
   PATCH RECORD (autosave field lintas step)
   PATCH /admin/organization-wizard/:id/record
============================================ */

func (ctl *WizardController) PatchRecord(c *fiber.Ctx) error {
	d, err := ctl.loadDraft(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}
	if d.IsSubmitted() {
		return mapWizardErr(c, wizard.ErrDraftSubmitted)
	}

	var p dto.WizardPatchRecordDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	rec, err := wizard.DecodeRecord(d.OrganizationDraftRecord)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Record draft korup")
	}
	merged := wizard.MergeRecord(rec, p.Record)
	raw, err := wizard.EncodeRecord(merged)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menyimpan record")
	}
	d.OrganizationDraftRecord = raw

	if err := ctl.DB.Save(d).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menyimpan draft")
	}
	return helper.JsonUpdated(c, "Record draft disimpan", dto.FromDraftModel(*d, merged))
}

/* ============================================
   NAVIGASI STEP
   POST /admin/organization-wizard/:id/advance
   POST /admin/organization-wizard/:id/retreat
   POST /admin/organization-wizard/:id/jump
============================================ */

func (ctl *WizardController) Advance(c *fiber.Ctx) error {
	d, err := ctl.loadDraft(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	rec, err := wizard.DecodeRecord(d.OrganizationDraftRecord)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Record draft korup")
	}

	errs, err := wizard.Advance(d, rec)
	if err != nil {
		return mapWizardErr(c, err)
	}
	if len(errs) > 0 {
		// Step TIDAK berpindah; data yang sudah diketik tetap tersimpan.
		fields := map[string][]string{}
		for f, msg := range errs {
			fields[f] = []string{msg}
		}
		return helper.JsonValidationError(c, fields)
	}

	if err := ctl.DB.Save(d).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menyimpan draft")
	}
	return helper.JsonUpdated(c, "Lanjut ke step berikutnya", dto.FromDraftModel(*d, rec))
}

func (ctl *WizardController) Retreat(c *fiber.Ctx) error {
	d, err := ctl.loadDraft(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}
	if err := wizard.Retreat(d); err != nil {
		return mapWizardErr(c, err)
	}
	if err := ctl.DB.Save(d).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menyimpan draft")
	}
	return ctl.respondDraft(c, "Kembali ke step sebelumnya", d)
}

func (ctl *WizardController) Jump(c *fiber.Ctx) error {
	d, err := ctl.loadDraft(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}

	var p dto.WizardJumpDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	if err := wizard.Jump(d, p.TargetStep); err != nil {
		return mapWizardErr(c, err)
	}
	if err := ctl.DB.Save(d).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menyimpan draft")
	}
	return ctl.respondDraft(c, "Pindah step", d)
}

/* ============================================
   SUBMIT
   POST /admin/organization-wizard/:id/submit
   Validasi ulang SEMUA step, lalu tulis tabel utama + tabel profil
   dalam SATU transaksi. Gagal sebagian = rollback semua.
============================================ */

func (ctl *WizardController) Submit(c *fiber.Ctx) error {
	d, err := ctl.loadDraft(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}
	if d.IsSubmitted() {
		return mapWizardErr(c, wizard.ErrDraftSubmitted)
	}

	rec, err := wizard.DecodeRecord(d.OrganizationDraftRecord)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Record draft korup")
	}

	failStep, errs, err := wizard.ValidateAll(d.OrganizationDraftEntityKind, rec)
	if err != nil {
		return mapWizardErr(c, err)
	}
	if failStep >= 0 {
		// Arahkan klien balik ke step yang bermasalah.
		d.OrganizationDraftCurrentStep = failStep
		_ = ctl.DB.Save(d).Error
		fields := map[string][]string{}
		for f, msg := range errs {
			fields[f] = []string{msg}
		}
		return helper.JsonValidationError(c, fields)
	}

	core, ext := wizard.PartitionRecord(rec, wizard.CoreFieldsFor(d.OrganizationDraftEntityKind))
	known, extra := wizard.SplitExtension(ext, wizard.ProfileFieldsFor(d.OrganizationDraftEntityKind))

	var resultID uuid.UUID
	var entity any

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		switch d.OrganizationDraftEntityKind {
		case model.DraftKindCompany:
			resultID, entity, err = ctl.submitCompany(c, tx, d, core, known, extra)
		case model.DraftKindSchool:
			resultID, entity, err = ctl.submitSchool(c, tx, d, core, known, extra)
		case model.DraftKindBranch:
			resultID, entity, err = ctl.submitBranch(c, tx, d, core, known, extra)
		default:
			err = wizard.ErrUnknownKind
		}
		if err != nil {
			return err
		}

		// Tandai draft terminal di transaksi yang sama.
		now := time.Now()
		return tx.Model(d).Updates(map[string]any{
			"organization_draft_submitted_at": now,
			"organization_draft_result_id":    resultID,
		}).Error
	})
	if txErr != nil {
		fe := &fiber.Error{}
		if errors.As(txErr, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return httpErr(c, fiber.StatusInternalServerError, "Submit gagal, tidak ada perubahan tersimpan")
	}

	return helper.JsonCreated(c, "Wizard selesai", dto.WizardSubmitResultDTO{
		EntityKind: d.OrganizationDraftEntityKind,
		Mode:       d.OrganizationDraftMode,
		ResultID:   resultID,
		Entity:     entity,
	})
}

/* ============================================
   DELETE DRAFT (soft)
   DELETE /admin/organization-wizard/:id
============================================ */

func (ctl *WizardController) DeleteDraft(c *fiber.Ctx) error {
	d, err := ctl.loadDraft(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return err
	}
	if err := ctl.DB.Delete(d).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Gagal menghapus draft")
	}
	return helper.JsonDeleted(c, "Draft dihapus", fiber.Map{"organization_draft_id": d.OrganizationDraftID})
}
